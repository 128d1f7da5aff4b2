// Package index builds full-text search indexes from extracted records.
package index

import (
	"context"
	"errors"
	"strings"

	"pdfquery/internal/models"
)

// ErrNoRecords is returned when there is nothing to index.
var ErrNoRecords = errors.New("no records to index")

// Entry is one indexed row.
type Entry struct {
	CaseID    string
	Title     string
	Reporters string
	Source    string
	AllText   string
}

// Builder replaces the contents of an index store with entries.
type Builder interface {
	Rebuild(ctx context.Context, entries []Entry) error
}

// EntriesFromRecords flattens records into index rows: the first case id,
// and reporters joined by ",".
func EntriesFromRecords(records []models.Record) []Entry {
	entries := make([]Entry, 0, len(records))
	for i := range records {
		r := &records[i]
		entries = append(entries, Entry{
			CaseID:    r.PrimaryCaseID(),
			Title:     r.Title,
			Reporters: strings.Join(r.Reporters, ","),
			Source:    r.Source,
			AllText:   r.AllText,
		})
	}
	return entries
}

// Build rebuilds b from records and returns the number of indexed rows.
func Build(ctx context.Context, b Builder, records []models.Record) (int, error) {
	if len(records) == 0 {
		return 0, ErrNoRecords
	}
	entries := EntriesFromRecords(records)
	if err := b.Rebuild(ctx, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}
