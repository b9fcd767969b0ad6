package llmclient

import (
	"context"

	"genbridge/internal/compose"
)

// Generator is the single backend operation this server needs: send one
// assembled request, get generated text back. Implementations must honor
// ctx cancellation.
type Generator interface {
	Generate(ctx context.Context, req *compose.GenerationRequest) (string, error)
}
