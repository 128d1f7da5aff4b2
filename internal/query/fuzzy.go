package query

import (
	"math"

	"github.com/pmezard/go-difflib/difflib"
)

// PartialRatio scores, from 0 to 100, how well the shorter string matches the
// best-aligned window of the longer one. Each matching block between the two
// strings proposes a window of the shorter string's length in the longer
// string; the best sequence-matcher ratio over those windows wins.
func PartialRatio(s1, s2 string) int {
	if s1 == "" || s2 == "" {
		return 0
	}

	shorter, longer := runeUnits(s1), runeUnits(s2)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	best := 0.0
	for _, block := range difflib.NewMatcher(shorter, longer).GetMatchingBlocks() {
		start := block.B - block.A
		if start < 0 {
			start = 0
		}
		end := start + len(shorter)
		if end > len(longer) {
			end = len(longer)
		}

		r := difflib.NewMatcher(shorter, longer[start:end]).Ratio()
		if r > 0.995 {
			return 100
		}
		if r > best {
			best = r
		}
	}

	return int(math.RoundToEven(100 * best))
}

// runeUnits splits s into one element per rune, the unit difflib compares.
func runeUnits(s string) []string {
	units := make([]string, 0, len(s))
	for _, r := range s {
		units = append(units, string(r))
	}
	return units
}
