// Package mcpserver speaks the tool protocol (JSON-RPC 2.0) over stdio and
// websocket, dispatching tool calls into the registry and recording
// outcomes.
package mcpserver

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"genbridge/internal/archive"
	"genbridge/internal/journal"
	"genbridge/internal/mcp"
)

const protocolVersion = "2024-11-05"

// Handler processes one protocol message at a time. It is safe for
// concurrent use; per-message state never escapes Handle.
type Handler struct {
	registry *mcp.Registry
	journal  *journal.Journal
	archive  *archive.S3Store
	name     string
	version  string
}

func NewHandler(reg *mcp.Registry, jr *journal.Journal, store *archive.S3Store) *Handler {
	return &Handler{
		registry: reg,
		journal:  jr,
		archive:  store,
		name:     "genbridge",
		version:  "1.0.0",
	}
}

// Handle decodes one raw message and returns the encoded response, or nil
// for notifications.
func (h *Handler) Handle(ctx context.Context, raw []byte) []byte {
	var req rpcRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return marshalResponse(rpcResponse{
			JSONRPC: jsonrpcVersion,
			ID:      json.RawMessage("null"),
			Error:   &rpcError{Code: codeParseError, Message: "parse error: " + err.Error()},
		})
	}
	if req.isNotification() {
		return nil
	}

	resp := rpcResponse{JSONRPC: jsonrpcVersion, ID: req.ID}
	switch req.Method {
	case "initialize":
		resp.Result = initializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities:    map[string]any{"tools": map[string]any{}},
			ServerInfo:      serverInfo{Name: h.name, Version: h.version},
		}
	case "ping":
		resp.Result = map[string]any{}
	case "tools/list":
		resp.Result = map[string]any{"tools": h.registry.Specs()}
	case "tools/call":
		resp.Result = h.callTool(ctx, req.Params)
	default:
		resp.Error = &rpcError{Code: codeMethodNotFound, Message: "unknown method " + req.Method}
	}
	return marshalResponse(resp)
}

// callTool dispatches into the registry and maps the outcome onto the
// protocol result shape. Tool failures become isError content so the caller
// sees a structured error rather than a broken session.
func (h *Handler) callTool(ctx context.Context, params json.RawMessage) callToolResult {
	var p callToolParams
	if err := json.Unmarshal(params, &p); err != nil {
		return errorResult("invalid tool call parameters: " + err.Error())
	}
	if p.Name == "" {
		return errorResult("tool name is required")
	}

	id := h.journal.NextID(p.Name)
	started := time.Now()
	text, err := h.registry.Call(ctx, p.Name, p.Arguments)
	entry := journal.Entry{
		ID:       id,
		Tool:     p.Name,
		Started:  started,
		Duration: time.Since(started),
		OK:       err == nil,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	h.journal.Record(entry)

	if err != nil {
		return errorResult(err.Error())
	}
	h.archiveResponse(ctx, id, text)
	return textResult(text)
}

// archiveResponse is best effort; the caller's result never depends on it.
func (h *Handler) archiveResponse(ctx context.Context, invocationID, text string) {
	if h.archive == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := h.archive.PutResponse(ctx, invocationID, text); err != nil {
		log.Printf("mcpserver: archive response %s: %v", invocationID, err)
	}
}

// Recent exposes the journal for the debug endpoint.
func (h *Handler) Recent(n int) []journal.Entry {
	return h.journal.Recent(n)
}

func marshalResponse(resp rpcResponse) []byte {
	out, err := json.Marshal(resp)
	if err != nil {
		log.Printf("mcpserver: marshal response: %v", err)
		return []byte(`{"jsonrpc":"2.0","id":null,"error":{"code":-32603,"message":"internal error"}}`)
	}
	return out
}
