// Package corpus holds the documents loaded at startup.
package corpus

import (
	"context"

	"pdfquery/internal/models"
)

// Loader produces documents for a list of URLs.
type Loader interface {
	LoadAll(ctx context.Context, urls []string) []models.Document
}

// Corpus is an immutable snapshot of loaded documents in load order. It is
// safe for concurrent readers.
type Corpus struct {
	docs []models.Document
}

// New creates a corpus from docs. The slice is copied.
func New(docs []models.Document) *Corpus {
	c := &Corpus{docs: make([]models.Document, len(docs))}
	copy(c.docs, docs)
	return c
}

// Load builds a corpus by loading urls with loader.
func Load(ctx context.Context, loader Loader, urls []string) *Corpus {
	return New(loader.LoadAll(ctx, urls))
}

// Len returns the number of loaded documents. A nil corpus is empty.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.docs)
}

// Documents returns the documents in load order. Callers must not modify the
// returned slice.
func (c *Corpus) Documents() []models.Document {
	if c == nil {
		return nil
	}
	return c.docs
}
