// Package testutil provides test utilities and helpers.
package testutil

import (
	"os"
	"testing"

	"pdfquery/internal/models"
)

// PostgresURL returns TEST_DATABASE_URL, skipping the test when it is unset.
func PostgresURL(t *testing.T) string {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres integration test")
	}
	return connString
}

// SampleRecords returns two records shaped like the support-ticket extracts.
func SampleRecords() []models.Record {
	return []models.Record{
		{
			CaseIDs:   []string{"TS015475137"},
			Title:     "VPN authentication failure",
			Reporters: []string{"Jane Doe"},
			AllText:   "Case Title: VPN authentication failure\nReported by: Jane Doe\nUsers see authentication errors after the upgrade.",
			Source:    "https://example.com/TS015475137_analysis.pdf",
		},
		{
			CaseIDs:   []string{"TS011853282", "SCTS12345"},
			Title:     "Disk full on build agent",
			Reporters: []string{"John Smith", "Mary Jones"},
			AllText:   "Case Title: Disk full on build agent\nThe build agent ran out of space during nightly jobs.",
			Source:    "https://example.com/TS011853282_analysis.pdf",
		},
	}
}

// SampleDocuments returns the documents the sample records were extracted from.
func SampleDocuments() []models.Document {
	records := SampleRecords()
	docs := make([]models.Document, 0, len(records))
	for _, r := range records {
		docs = append(docs, models.NewDocument(r.Source, r.AllText))
	}
	return docs
}
