package mcp

import (
	"time"

	"genbridge/internal/ingest"
	"genbridge/internal/llmclient"
)

// Host wires the backend client and per-process defaults for tools.
type Host struct {
	Generator       llmclient.Generator
	Limits          ingest.Limits
	DefaultModel    string
	Temperature     float64
	MaxOutputTokens int
	Timeout         time.Duration
}

// RegisterDefaultTools installs the default tool set into a registry.
func RegisterDefaultTools(r *Registry, h Host) {
	if r == nil {
		return
	}
	r.Register(newGenerateContentTool(h))
}
