package query

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"pdfquery/internal/models"
)

// FuzzyThreshold is the partial ratio a line must exceed for a plain query to match.
const FuzzyThreshold = 70

// Matching modes, as reported in metrics and logs.
const (
	ModeSimple = "simple"
	ModeAnd    = "and"
	ModeOr     = "or"
	ModeNot    = "not"
	ModeRegex  = "regex"
)

// Request is one search over the loaded documents.
type Request struct {
	Query         string
	UseRegex      bool
	CaseSensitive bool
}

// Outcome is the result of a search. Skipped counts documents that failed
// while being matched and were left out.
type Outcome struct {
	Mode    string
	Results []models.MatchResult
	Skipped int
}

// ErrInvalidPattern matches any *PatternError with errors.Is.
var ErrInvalidPattern = errors.New("invalid regular expression")

// PatternError reports a regex query that does not compile. It fails the
// whole search.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return "Invalid regular expression syntax: " + e.Err.Error()
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

func (e *PatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}

// matchFunc reports whether a document text matches and with what confidence.
type matchFunc func(text string) (bool, float64)

// Matcher scans documents linearly. It holds no per-search state and is safe
// for concurrent use.
type Matcher struct {
	logger *slog.Logger
}

// NewMatcher creates a matcher that logs skipped documents to logger.
func NewMatcher(logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{logger: logger}
}

// Search runs req against every document in order. A regex that fails to
// compile aborts the search before any document is scanned.
func (m *Matcher) Search(docs []models.Document, req Request) (*Outcome, error) {
	q := strings.TrimSpace(req.Query)

	var (
		mode  string
		match matchFunc
		fold  = !req.CaseSensitive
	)
	if req.UseRegex {
		re, err := compilePattern(q, req.CaseSensitive)
		if err != nil {
			return nil, &PatternError{Pattern: q, Err: err}
		}
		mode, match = ModeRegex, regexMatch(re)
		// The (?i) flag already covers case; the text is searched as-is.
		fold = false
	} else {
		mode, match = classifiedMatch(Classify(q), req.CaseSensitive)
	}

	out := &Outcome{Mode: mode, Results: make([]models.MatchResult, 0)}
	for _, doc := range docs {
		result, ok, err := matchDocument(doc, fold, match)
		if err != nil {
			m.logger.Warn("skipping document after match failure",
				"document_id", doc.ID, "source", doc.Source, "error", err)
			out.Skipped++
			continue
		}
		if ok {
			out.Results = append(out.Results, result)
		}
	}
	return out, nil
}

// matchDocument isolates a single document so that a failure only drops it.
func matchDocument(doc models.Document, fold bool, match matchFunc) (result models.MatchResult, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("panic while matching: %v", r)
		}
	}()

	text := doc.Text
	if fold {
		text = strings.ToLower(text)
	}

	matched, confidence := match(text)
	if !matched {
		return models.MatchResult{}, false, nil
	}
	return models.MatchResult{
		Snippet:    Snippet(doc.Text),
		PageNumber: models.DefaultPageNumber,
		Confidence: round2(confidence),
	}, true, nil
}

// compilePattern validates q as written so that syntax errors quote the
// user's pattern, then adds the case-insensitive flag when needed.
func compilePattern(q string, caseSensitive bool) (*regexp.Regexp, error) {
	re, err := regexp.Compile(q)
	if err != nil || caseSensitive {
		return re, err
	}
	return regexp.Compile("(?i)" + q)
}

func regexMatch(re *regexp.Regexp) matchFunc {
	return func(text string) (bool, float64) {
		if re.MatchString(text) {
			return true, 1.0
		}
		return false, 0
	}
}

func classifiedMatch(c Classification, caseSensitive bool) (string, matchFunc) {
	terms := make([]string, len(c.Terms))
	for i, t := range c.Terms {
		if caseSensitive {
			terms[i] = t
		} else {
			terms[i] = strings.ToLower(t)
		}
	}

	switch c.Op {
	case OpNot:
		return ModeNot, func(text string) (bool, float64) {
			if !strings.Contains(text, terms[0]) {
				return true, 1.0
			}
			return false, 0
		}
	case OpAnd:
		return ModeAnd, func(text string) (bool, float64) {
			for _, t := range terms {
				if !strings.Contains(text, t) {
					return false, 0
				}
			}
			return true, 1.0
		}
	case OpOr:
		return ModeOr, func(text string) (bool, float64) {
			for _, t := range terms {
				if strings.Contains(text, t) {
					return true, 1.0
				}
			}
			return false, 0
		}
	default:
		return ModeSimple, fuzzyLineMatch(terms[0])
	}
}

// fuzzyLineMatch stops at the first line scoring above the threshold; it does
// not look for the best line.
func fuzzyLineMatch(term string) matchFunc {
	return func(text string) (bool, float64) {
		for _, line := range splitLines(text) {
			if score := PartialRatio(term, line); score > FuzzyThreshold {
				return true, float64(score) / 100
			}
		}
		return false, 0
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
