package models

import "testing"

func TestRecord_PrimaryCaseID(t *testing.T) {
	tests := []struct {
		name     string
		caseIDs  []string
		expected string
	}{
		{"single id", []string{"TS015475137"}, "TS015475137"},
		{"first of many", []string{"TS011853282", "SCTS12345"}, "TS011853282"},
		{"nil ids", nil, UnknownField},
		{"empty first id", []string{""}, UnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record{CaseIDs: tt.caseIDs}
			if got := r.PrimaryCaseID(); got != tt.expected {
				t.Errorf("PrimaryCaseID() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewDocument_StableID(t *testing.T) {
	a := NewDocument("https://example.com/a.pdf", "one")
	b := NewDocument("https://example.com/a.pdf", "two")
	c := NewDocument("https://example.com/b.pdf", "one")

	if a.ID != b.ID {
		t.Errorf("same source produced different IDs: %s vs %s", a.ID, b.ID)
	}
	if a.ID == c.ID {
		t.Errorf("different sources produced the same ID %s", a.ID)
	}
	if a.Source != "https://example.com/a.pdf" || a.Text != "one" {
		t.Errorf("unexpected document fields: %+v", a)
	}
}
