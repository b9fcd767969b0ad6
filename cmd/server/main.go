package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"genbridge/internal/archive"
	"genbridge/internal/config"
	"genbridge/internal/ingest"
	"genbridge/internal/journal"
	"genbridge/internal/llmclient"
	"genbridge/internal/mcp"
	"genbridge/internal/mcpserver"
)

func main() {
	// stdout belongs to the stdio transport; everything else goes to stderr.
	log.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := llmclient.NewGeminiClient(ctx, cfg.APIKey)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}

	jr, err := journal.New(256)
	if err != nil {
		log.Fatalf("Failed to initialize journal: %v", err)
	}

	var store *archive.S3Store
	if cfg.Archive.Enabled {
		store, err = archive.NewS3Store(archive.S3Config{
			Endpoint:  cfg.Archive.Endpoint,
			Region:    cfg.Archive.Region,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			Bucket:    cfg.Archive.Bucket,
			UseSSL:    cfg.Archive.UseSSL,
		})
		if err != nil {
			log.Printf("Response archive disabled: %v", err)
			store = nil
		}
	}

	reg := mcp.NewRegistry()
	mcp.RegisterDefaultTools(reg, mcp.Host{
		Generator:       client,
		Limits:          ingest.Limits{MaxCount: cfg.MaxFiles, MaxTotalBytes: cfg.MaxTotalFileBytes},
		DefaultModel:    cfg.Model,
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Timeout:         cfg.Timeout,
	})

	h := mcpserver.NewHandler(reg, jr, store)

	var srv *mcpserver.Server
	if cfg.Port != "" {
		srv = mcpserver.NewServer(cfg.Port, h)
		go func() {
			if err := srv.Start(); err != nil {
				log.Printf("Server error: %v", err)
			}
		}()
	}

	stdioDone := make(chan error, 1)
	go func() {
		stdioDone <- mcpserver.ServeStdio(ctx, os.Stdin, os.Stdout, h)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-stdioDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("stdio transport error: %v", err)
		}
	case <-quit:
		log.Println("Shutting down server...")
	}
	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}

	log.Println("Server exiting")
}
