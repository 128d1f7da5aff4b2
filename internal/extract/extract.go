// Package extract derives structured support-ticket records from document
// text and persists them for the index builder.
package extract

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"

	"pdfquery/internal/models"
)

// ErrNoRecords is returned when no document could be turned into a record.
var ErrNoRecords = errors.New("no records extracted")

var (
	caseIDPattern     = regexp.MustCompile(`(?i)\b(?:TS|SCTS)\d{5,10}\b`)
	titlePattern      = regexp.MustCompile(`(?i)(?:Case Title|Case title|Title):\s*(.+)`)
	reportedByPattern = regexp.MustCompile(`(?i)(?:Reported by|Reporter|Reported):\s*(.+)`)
	// Capitalized two or three word names at the start of a line, used only
	// when no explicit reporter label is present.
	namePattern = regexp.MustCompile(`\n([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2})\b`)
)

const minNameLength = 5

// DocumentLoader loads the documents behind a list of URLs.
type DocumentLoader interface {
	LoadAll(ctx context.Context, urls []string) []models.Document
}

// ParseRecord extracts case ids, title and reporters from doc.
func ParseRecord(doc models.Document) models.Record {
	return models.Record{
		CaseIDs:   caseIDs(doc.Text),
		Title:     title(doc.Text),
		Reporters: reporters(doc.Text),
		AllText:   doc.Text,
		Source:    doc.Source,
	}
}

// Run loads urls and parses each loaded document. Documents that fail to load
// are skipped by the loader; ErrNoRecords is returned if none remain.
func Run(ctx context.Context, loader DocumentLoader, urls []string) ([]models.Record, error) {
	docs := loader.LoadAll(ctx, urls)
	if len(docs) == 0 {
		return nil, ErrNoRecords
	}

	records := make([]models.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, ParseRecord(doc))
	}
	return records, nil
}

// caseIDs returns upper-cased ids in first-seen order.
func caseIDs(text string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, m := range caseIDPattern.FindAllString(text, -1) {
		id := strings.ToUpper(m)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return []string{models.UnknownField}
	}
	return ids
}

func title(text string) string {
	m := titlePattern.FindStringSubmatch(text)
	if m == nil {
		return models.UnknownField
	}
	line, _, _ := strings.Cut(m[1], "\r")
	if t := strings.TrimSpace(line); t != "" {
		return t
	}
	return models.UnknownField
}

func reporters(text string) []string {
	set := make(map[string]struct{})
	for _, m := range reportedByPattern.FindAllStringSubmatch(text, -1) {
		if name := strings.TrimSpace(m[1]); name != "" {
			set[name] = struct{}{}
		}
	}

	if len(set) == 0 {
		for _, m := range namePattern.FindAllStringSubmatch(text, -1) {
			if name := strings.TrimSpace(m[1]); len(name) >= minNameLength {
				set[name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
