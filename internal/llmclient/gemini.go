package llmclient

import (
	"context"
	"encoding/base64"
	"fmt"

	genai "google.golang.org/genai"

	"genbridge/internal/compose"
)

// GeminiClient is a thin wrapper around the official genai client. It only
// maps the assembled request onto the SDK; timeout and retry policy belong
// to the caller.
type GeminiClient struct {
	cli *genai.Client
}

// NewGeminiClient builds a client for the Gemini API backend. apiKey may be
// empty, in which case the genai client falls back to its own environment
// lookup.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli}, nil
}

// Generate sends one assembled request and returns the generated text.
// An empty candidate list or empty text comes back as "", nil; the caller
// decides what an empty result means.
func (g *GeminiClient) Generate(ctx context.Context, req *compose.GenerationRequest) (string, error) {
	contents, err := contentsFromRequest(req)
	if err != nil {
		return "", err
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.GenerationConfig.Temperature)),
		MaxOutputTokens: int32(req.GenerationConfig.MaxOutputTokens),
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}

	resp, err := g.cli.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %v", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// contentsFromRequest maps the composed conversation onto SDK content
// values, decoding each inline part back to raw bytes.
func contentsFromRequest(req *compose.GenerationRequest) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(req.Conversation))
	for _, turn := range req.Conversation {
		parts := make([]*genai.Part, 0, len(turn.Parts))
		for _, p := range turn.Parts {
			if p.InlineData != nil {
				raw, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("decode inline data for %s: %w", p.InlineData.MIMEType, err)
				}
				parts = append(parts, &genai.Part{
					InlineData: &genai.Blob{MIMEType: p.InlineData.MIMEType, Data: raw},
				})
				continue
			}
			parts = append(parts, &genai.Part{Text: p.Text})
		}
		contents = append(contents, &genai.Content{Role: turn.Role, Parts: parts})
	}
	return contents, nil
}
