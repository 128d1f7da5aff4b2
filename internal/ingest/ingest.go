// Package ingest turns remote PDF URLs into documents.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"pdfquery/internal/models"
)

// Fetcher downloads the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// TextExtractor converts raw PDF bytes to plain text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// Loader fetches and extracts documents one URL at a time.
type Loader struct {
	fetcher   Fetcher
	extractor TextExtractor
	logger    *slog.Logger
}

// NewLoader creates a loader. A nil logger uses slog.Default.
func NewLoader(fetcher Fetcher, extractor TextExtractor, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fetcher: fetcher, extractor: extractor, logger: logger}
}

// Load fetches url and extracts its text.
func (l *Loader) Load(ctx context.Context, url string) (models.Document, error) {
	data, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return models.Document{}, err
	}
	text, err := l.extractor.Extract(ctx, data)
	if err != nil {
		return models.Document{}, fmt.Errorf("extract %s: %w", url, err)
	}
	return models.NewDocument(url, text), nil
}

// LoadAll loads urls sequentially in order. A URL that fails is logged and
// left out; the remaining URLs are still attempted. Cancelling ctx stops the
// loop and returns what was loaded so far.
func (l *Loader) LoadAll(ctx context.Context, urls []string) []models.Document {
	docs := make([]models.Document, 0, len(urls))
	for i, url := range urls {
		if ctx.Err() != nil {
			l.logger.Warn("document loading cancelled", "loaded", len(docs), "remaining", len(urls)-i)
			break
		}

		doc, err := l.Load(ctx, url)
		if err != nil {
			l.logger.Warn("failed to load document", "url", url, "error", err)
			continue
		}
		l.logger.Info("loaded document", "url", url, "id", doc.ID, "chars", len(doc.Text))
		docs = append(docs, doc)
	}
	return docs
}
