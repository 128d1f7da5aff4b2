package models

// DefaultPageNumber is reported for every match; matches are not attributed to pages.
const DefaultPageNumber = 1

// MatchResult is a single matching document in a query response.
type MatchResult struct {
	Snippet    string  `json:"snippet"`
	PageNumber int     `json:"page_number"`
	Confidence float64 `json:"confidence"`
}

// QueryResponse is the body returned by GET /query.
type QueryResponse struct {
	Query        string        `json:"query"`
	RegexEnabled bool          `json:"regex_enabled"`
	MatchCount   int           `json:"match_count"`
	Results      []MatchResult `json:"results"`
	Message      string        `json:"message"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status     string `json:"status"`
	PDFsLoaded int    `json:"pdfs_loaded"`
}

// ServiceDescription is the body returned by GET /.
type ServiceDescription struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// ErrorResponse is the body returned for rejected requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
