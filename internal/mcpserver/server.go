package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Server is the optional websocket/HTTP side of the tool server.
type Server struct {
	httpServer *http.Server
}

func NewServer(port string, h *Handler) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", h.HandleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/debug/invocations", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(h.Recent(50))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    port,
			Handler: h2c.NewHandler(mux, &http2.Server{}),
		},
	}
}

func (s *Server) Start() error {
	log.Printf("Starting websocket transport on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
