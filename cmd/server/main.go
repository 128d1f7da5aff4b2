package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdfquery/internal/config"
	"pdfquery/internal/corpus"
	"pdfquery/internal/fetch"
	"pdfquery/internal/ingest"
	"pdfquery/internal/logger"
	"pdfquery/internal/metrics"
	"pdfquery/internal/pdftext"
	"pdfquery/internal/query"
	"pdfquery/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogJSON)

	sources, err := config.LoadSources(cfg.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load sources: %v", err)
	}
	urls := sources.URLs()

	// Load every document before accepting traffic
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	loader := ingest.NewLoader(fetch.NewClient(cfg.FetchTimeout), pdftext.New(), slog.Default())
	log.Printf("Loading %d PDFs...", len(urls))
	docs := corpus.Load(ctx, loader, urls)
	stop()
	if docs.Len() == 0 {
		log.Println("Warning: no PDFs loaded; every query will return zero matches")
	} else {
		log.Printf("Loaded %d of %d PDFs", docs.Len(), len(urls))
	}

	metrics.Init(docs)

	srv := server.New(cfg)
	srv.RegisterRoutes(docs, query.NewMatcher(slog.Default()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(srv, cfg.ServerAddr, quit); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server exited")
}

type lifecycle interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// serve runs srv until a signal arrives on quit, then shuts it down. A failed
// Start is returned immediately instead of waiting for a signal.
func serve(srv lifecycle, addr string, quit <-chan os.Signal) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	log.Printf("Server started on %s", addr)

	select {
	case err := <-serverErr:
		if err == nil {
			err = errors.New("server stopped unexpectedly")
		}
		return err
	case <-quit:
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
