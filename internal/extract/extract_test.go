package extract

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"pdfquery/internal/models"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		caseIDs   []string
		title     string
		reporters []string
	}{
		{
			name:      "labelled fields",
			text:      "Case TS015475137 analysis\nCase Title: VPN authentication failure\nReported by: Jane Doe\nReporter: John Smith",
			caseIDs:   []string{"TS015475137"},
			title:     "VPN authentication failure",
			reporters: []string{"Jane Doe", "John Smith"},
		},
		{
			name:      "ids upper-cased and de-duplicated in order",
			text:      "scts12345 then TS011853282 then SCTS12345 again\nTitle:   Disk full  \n",
			caseIDs:   []string{"SCTS12345", "TS011853282"},
			title:     "Disk full",
			reporters: []string{},
		},
		{
			name:      "ids outside the length range ignored",
			text:      "TS1234 and TS12345678901 and XTS123456",
			caseIDs:   []string{models.UnknownField},
			title:     models.UnknownField,
			reporters: []string{},
		},
		{
			name:      "fallback names from line starts",
			text:      "Case Feed\nMary Ann Jones closed\nAlice Walker commented\nBob Li replied\nalice walker again",
			caseIDs:   []string{models.UnknownField},
			title:     models.UnknownField,
			reporters: []string{"Alice Walker", "Bob Li", "Mary Ann Jones"},
		},
		{
			name:      "explicit reporter disables fallback",
			text:      "Reported: Ops Team\nAlice Walker commented",
			caseIDs:   []string{models.UnknownField},
			title:     models.UnknownField,
			reporters: []string{"Ops Team"},
		},
		{
			name:      "title on following line",
			text:      "Title:\nNetwork outage\nmore",
			caseIDs:   []string{models.UnknownField},
			title:     "Network outage",
			reporters: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := models.NewDocument("https://example.com/x.pdf", tt.text)
			r := ParseRecord(doc)

			if !reflect.DeepEqual(r.CaseIDs, tt.caseIDs) {
				t.Errorf("CaseIDs = %q, want %q", r.CaseIDs, tt.caseIDs)
			}
			if r.Title != tt.title {
				t.Errorf("Title = %q, want %q", r.Title, tt.title)
			}
			if !reflect.DeepEqual(r.Reporters, tt.reporters) {
				t.Errorf("Reporters = %q, want %q", r.Reporters, tt.reporters)
			}
			if r.AllText != tt.text || r.Source != doc.Source {
				t.Errorf("AllText/Source not carried over: %+v", r)
			}
		})
	}
}

type fakeLoader struct {
	docs []models.Document
}

func (f fakeLoader) LoadAll(_ context.Context, _ []string) []models.Document {
	return f.docs
}

func TestRun(t *testing.T) {
	loader := fakeLoader{docs: []models.Document{
		models.NewDocument("a", "TS020010126\nTitle: One"),
		models.NewDocument("b", "TS020228920\nTitle: Two"),
	}}

	records, err := Run(context.Background(), loader, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Run() returned %d records, want 2", len(records))
	}
	if records[0].Title != "One" || records[1].CaseIDs[0] != "TS020228920" {
		t.Errorf("Run() records = %+v", records)
	}
}

func TestRun_NoDocuments(t *testing.T) {
	_, err := Run(context.Background(), fakeLoader{}, []string{"a"})
	if !errors.Is(err, ErrNoRecords) {
		t.Errorf("Run() error = %v, want %v", err, ErrNoRecords)
	}
}
