package models

import "github.com/google/uuid"

// Document is a fetched PDF reduced to its extracted text.
type Document struct {
	ID     uuid.UUID `json:"id"`
	Source string    `json:"source"`
	Text   string    `json:"text"`
}

// NewDocument builds a document whose ID is derived from the source URL,
// so the same URL always yields the same ID across runs.
func NewDocument(source, text string) Document {
	return Document{
		ID:     uuid.NewSHA1(uuid.NameSpaceURL, []byte(source)),
		Source: source,
		Text:   text,
	}
}
