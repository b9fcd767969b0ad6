// Package compose assembles one structured generation request from a prompt,
// an optional system prompt, and the ingested files. Compose is pure: the
// same inputs always produce a structurally identical request.
package compose

import (
	"genbridge/internal/ingest"
)

// RoleUser is the only role this server ever emits; multi-turn history is
// not modeled.
const RoleUser = "user"

// InlineData carries one file as base64 plus its MIME type.
type InlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Part is one piece of a turn: text or inline data, never both.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// Turn is one conversational turn.
type Turn struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// GenerationConfig carries the sampling parameters for one request.
type GenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

// GenerationRequest is the assembled request handed to the backend client.
// SystemInstruction empty means absent.
type GenerationRequest struct {
	Model             string           `json:"model"`
	Conversation      []Turn           `json:"conversation"`
	SystemInstruction string           `json:"systemInstruction,omitempty"`
	GenerationConfig  GenerationConfig `json:"generationConfig"`
}

// Compose builds a single user turn: the prompt text first, then one
// inline-data part per file in input order. An empty prompt is passed
// through unchecked.
func Compose(userPrompt, systemPrompt string, files []ingest.NormalizedFile, model string, temperature float64, maxOutputTokens int) GenerationRequest {
	parts := make([]Part, 0, len(files)+1)
	parts = append(parts, Part{Text: userPrompt})
	for _, f := range files {
		parts = append(parts, Part{InlineData: &InlineData{
			MIMEType: f.ContentType,
			Data:     f.Content,
		}})
	}
	return GenerationRequest{
		Model:             model,
		Conversation:      []Turn{{Role: RoleUser, Parts: parts}},
		SystemInstruction: systemPrompt,
		GenerationConfig: GenerationConfig{
			MaxOutputTokens: maxOutputTokens,
			Temperature:     temperature,
		},
	}
}
