package mcpserver

import (
	"bufio"
	"context"
	"io"
)

// stdio messages are newline-delimited JSON. Inline file content arrives
// base64-encoded inside a single line, so the read buffer must comfortably
// exceed the configured total file size.
const maxStdioLine = 64 << 20

// ServeStdio reads messages from r until EOF or ctx cancellation, writing
// each response to w. Messages are handled strictly in order.
func ServeStdio(ctx context.Context, r io.Reader, w io.Writer, h *Handler) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxStdioLine)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		resp := h.Handle(ctx, line)
		if resp == nil {
			continue
		}
		if _, err := w.Write(append(resp, '\n')); err != nil {
			return err
		}
	}
	return scanner.Err()
}
