package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"genbridge/internal/journal"
	"genbridge/internal/mcp"
)

type echoTool struct {
	name string
	text string
	err  error
}

func (t *echoTool) Spec() mcp.ToolSpec {
	return mcp.ToolSpec{Name: t.name, Description: "test tool"}
}

func (t *echoTool) Call(_ context.Context, _ json.RawMessage) (string, error) {
	return t.text, t.err
}

func newTestHandler(t *testing.T, tools ...mcp.Tool) *Handler {
	t.Helper()
	jr, err := journal.New(8)
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	return NewHandler(mcp.NewRegistry(tools...), jr, nil)
}

func handle(t *testing.T, h *Handler, msg string) rpcResponse {
	t.Helper()
	raw := h.Handle(context.Background(), []byte(msg))
	if raw == nil {
		t.Fatalf("expected a response for %s", msg)
	}
	var resp rpcResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func resultInto(t *testing.T, resp rpcResponse, out any) {
	t.Helper()
	raw, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("re-marshal result: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode result: %v", err)
	}
}

func TestHandleInitialize(t *testing.T) {
	h := newTestHandler(t)
	resp := handle(t, h, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	var res initializeResult
	resultInto(t, resp, &res)
	if res.ProtocolVersion != protocolVersion {
		t.Fatalf("protocol version %q", res.ProtocolVersion)
	}
	if res.ServerInfo.Name != "genbridge" {
		t.Fatalf("server name %q", res.ServerInfo.Name)
	}
}

func TestHandleToolsList(t *testing.T) {
	h := newTestHandler(t, &echoTool{name: "generate_content", text: "x"})
	resp := handle(t, h, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	var res struct {
		Tools []mcp.ToolSpec `json:"tools"`
	}
	resultInto(t, resp, &res)
	if len(res.Tools) != 1 || res.Tools[0].Name != "generate_content" {
		t.Fatalf("unexpected tools %+v", res.Tools)
	}
}

func TestHandleToolCallSuccess(t *testing.T) {
	h := newTestHandler(t, &echoTool{name: "generate_content", text: "generated text"})
	resp := handle(t, h, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"generate_content","arguments":{"prompt":"hi"}}}`)
	var res callToolResult
	resultInto(t, resp, &res)
	if res.IsError {
		t.Fatalf("unexpected error result %+v", res)
	}
	if len(res.Content) != 1 || res.Content[0].Text != "generated text" {
		t.Fatalf("unexpected content %+v", res.Content)
	}
	if got := h.Recent(10); len(got) != 1 || !got[0].OK {
		t.Fatalf("journal entry missing or wrong: %+v", got)
	}
}

func TestHandleToolCallError(t *testing.T) {
	h := newTestHandler(t, &echoTool{name: "generate_content", err: errors.New("failed to process 1 file(s):\n- x.txt: file not found")})
	resp := handle(t, h, `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"generate_content","arguments":{}}}`)
	var res callToolResult
	resultInto(t, resp, &res)
	if !res.IsError {
		t.Fatal("expected isError result")
	}
	if !strings.HasPrefix(res.Content[0].Text, "Error: ") {
		t.Fatalf("error text must carry the Error: prefix, got %q", res.Content[0].Text)
	}
	if got := h.Recent(10); len(got) != 1 || got[0].OK || got[0].Error == "" {
		t.Fatalf("journal entry missing failure detail: %+v", got)
	}
}

func TestHandleUnknownToolAndMethod(t *testing.T) {
	h := newTestHandler(t)

	resp := handle(t, h, `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"nope"}}`)
	var res callToolResult
	resultInto(t, resp, &res)
	if !res.IsError {
		t.Fatal("unknown tool must produce an error result")
	}

	resp = handle(t, h, `{"jsonrpc":"2.0","id":6,"method":"bogus/method"}`)
	if resp.Error == nil || resp.Error.Code != codeMethodNotFound {
		t.Fatalf("expected method-not-found, got %+v", resp.Error)
	}
}

func TestHandleNotificationProducesNothing(t *testing.T) {
	h := newTestHandler(t)
	if out := h.Handle(context.Background(), []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`)); out != nil {
		t.Fatalf("notification must not be answered, got %s", out)
	}
}

func TestHandleParseError(t *testing.T) {
	h := newTestHandler(t)
	resp := handle(t, h, `{not json`)
	if resp.Error == nil || resp.Error.Code != codeParseError {
		t.Fatalf("expected parse error, got %+v", resp.Error)
	}
}

func TestServeStdio(t *testing.T) {
	h := newTestHandler(t, &echoTool{name: "generate_content", text: "ok"})

	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"generate_content","arguments":{"prompt":"hi"}}}`,
		"",
	}, "\n")

	var out bytes.Buffer
	if err := ServeStdio(context.Background(), strings.NewReader(in), &out, h); err != nil {
		t.Fatalf("serve: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 responses (notification skipped), got %d: %q", len(lines), out.String())
	}
	for _, line := range lines {
		var resp rpcResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("response line not valid JSON: %v", err)
		}
	}
}
