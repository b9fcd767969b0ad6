package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"genbridge/internal/compose"
	"genbridge/internal/ingest"
)

// --------------------- generate_content ---------------------

type generateContentTool struct{ host Host }

func newGenerateContentTool(h Host) *generateContentTool { return &generateContentTool{host: h} }

var generateContentSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "prompt": {"type": "string", "description": "The prompt to generate content from."},
    "system_prompt": {"type": "string", "description": "Optional system instruction."},
    "files": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "path": {"type": "string", "description": "Path to a file readable by the server."},
          "content": {"type": "string", "description": "Base64-encoded file content."},
          "name": {"type": "string", "description": "Display name for inline content."},
          "type": {"type": "string", "description": "Explicit MIME type; overrides inference."}
        }
      }
    },
    "model": {"type": "string", "description": "Model identifier; defaults to the configured model."},
    "temperature": {"type": "number", "description": "Sampling temperature; defaults to the configured value."}
  },
  "required": ["prompt"]
}`)

func (t *generateContentTool) Spec() ToolSpec {
	return ToolSpec{
		Name:        "generate_content",
		Description: "Generate text from a prompt and an optional set of files (images, audio, video, documents, text).",
		InputSchema: generateContentSchema,
	}
}

type generateContentArgs struct {
	Prompt       string                  `json:"prompt"`
	SystemPrompt string                  `json:"system_prompt,omitempty"`
	Files        []ingest.FileDescriptor `json:"files,omitempty"`
	Model        string                  `json:"model,omitempty"`
	Temperature  *float64                `json:"temperature,omitempty"`
}

// Call runs the full pipeline: validate arguments, ingest files, compose one
// request, call the backend. Any ingest failure converts the whole
// invocation into an error; a partial request is never sent.
func (t *generateContentTool) Call(ctx context.Context, input json.RawMessage) (string, error) {
	var args generateContentArgs
	if err := json.Unmarshal(input, &args); err != nil {
		return "", fmt.Errorf("generate_content: invalid arguments: %w", err)
	}
	if strings.TrimSpace(args.Prompt) == "" {
		return "", fmt.Errorf("generate_content: prompt is required")
	}

	res, err := ingest.Ingest(args.Files, t.host.Limits)
	if err != nil {
		return "", err
	}
	if len(res.Failures) > 0 {
		return "", aggregateFailures(res.Failures)
	}

	model := strings.TrimSpace(args.Model)
	if model == "" {
		model = t.host.DefaultModel
	}
	temperature := t.host.Temperature
	if args.Temperature != nil {
		temperature = *args.Temperature
	}

	req := compose.Compose(args.Prompt, args.SystemPrompt, res.Successes, model, temperature, t.host.MaxOutputTokens)

	if t.host.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.host.Timeout)
		defer cancel()
	}
	text, err := t.host.Generator.Generate(ctx, &req)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "No content generated", nil
	}
	return text, nil
}

// aggregateFailures folds every ingest failure into one multi-line error so
// the caller sees the whole batch outcome at once.
func aggregateFailures(failures []ingest.Failure) error {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to process %d file(s):", len(failures))
	for _, f := range failures {
		name := f.DisplayName
		if name == "" {
			name = "(unnamed)"
		}
		b.WriteString("\n- " + name + ": " + f.Reason)
	}
	return fmt.Errorf("%s", b.String())
}
