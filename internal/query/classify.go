// Package query interprets search strings and matches them against
// extracted document text.
package query

import (
	"regexp"
	"strings"
)

// Operator is the boolean operator detected in a query.
type Operator string

const (
	OpSimple Operator = "SIMPLE"
	OpAnd    Operator = "AND"
	OpOr     Operator = "OR"
	OpNot    Operator = "NOT"
)

// Keywords are whole words matched case-insensitively. They are checked in
// the order NOT, AND, OR and only the first one found is honoured; there is
// no precedence and no nesting.
var (
	notKeyword = regexp.MustCompile(`(?i)\bNOT\b`)
	andKeyword = regexp.MustCompile(`(?i)\bAND\b`)
	orKeyword  = regexp.MustCompile(`(?i)\bOR\b`)
)

// Classification is the interpreted form of a query. SIMPLE and NOT carry a
// single term; AND and OR carry every term in query order.
type Classification struct {
	Op    Operator
	Terms []string
}

// Term returns the first term, which is the only one for SIMPLE and NOT.
func (c Classification) Term() string {
	if len(c.Terms) == 0 {
		return ""
	}
	return c.Terms[0]
}

// Classify interprets a raw query string.
//
// "NOT" wins over everything: the text after its first occurrence becomes the
// negated term, so "NOT fail AND error" negates "fail AND error", and any text
// before NOT is dropped.
func Classify(raw string) Classification {
	q := strings.TrimSpace(raw)

	if loc := notKeyword.FindStringIndex(q); loc != nil {
		return Classification{Op: OpNot, Terms: []string{strings.TrimSpace(q[loc[1]:])}}
	}
	if andKeyword.MatchString(q) {
		return Classification{Op: OpAnd, Terms: splitTerms(andKeyword, q)}
	}
	if orKeyword.MatchString(q) {
		return Classification{Op: OpOr, Terms: splitTerms(orKeyword, q)}
	}
	return Classification{Op: OpSimple, Terms: []string{q}}
}

// splitTerms keeps empty terms, e.g. "AND x" yields ["", "x"].
func splitTerms(keyword *regexp.Regexp, q string) []string {
	parts := keyword.Split(q, -1)
	terms := make([]string, len(parts))
	for i, p := range parts {
		terms[i] = strings.TrimSpace(p)
	}
	return terms
}
