package query

import (
	"strings"
	"unicode/utf8"
)

const (
	snippetLines    = 10
	snippetMaxRunes = 1000
)

// splitLines breaks text on the same line boundaries as Python's
// str.splitlines: \n, \r, \r\n, \v, \f, \x1c-\x1e, U+0085, U+2028 and
// U+2029. A trailing line break does not produce an empty final line.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// Snippet returns the first ten lines of text, capped at 1000 characters.
func Snippet(text string) string {
	lines := splitLines(text)
	if len(lines) > snippetLines {
		lines = lines[:snippetLines]
	}
	s := strings.Join(lines, "\n")
	if r := []rune(s); len(r) > snippetMaxRunes {
		s = string(r[:snippetMaxRunes])
	}
	return s
}
