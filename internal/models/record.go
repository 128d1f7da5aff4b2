package models

// UnknownField is stored when a structured field could not be captured.
const UnknownField = "Unknown"

// Record is the persisted form of an extracted document. The extract
// program writes records once; the index builder reads them once.
type Record struct {
	CaseIDs   []string `json:"case_ids"`
	Title     string   `json:"title"`
	Reporters []string `json:"reporters"`
	AllText   string   `json:"all_text"`
	Source    string   `json:"source"`
}

// PrimaryCaseID returns the first case identifier, or UnknownField.
func (r *Record) PrimaryCaseID() string {
	if len(r.CaseIDs) == 0 || r.CaseIDs[0] == "" {
		return UnknownField
	}
	return r.CaseIDs[0]
}
