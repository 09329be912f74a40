package similarity

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"
	"golang.org/x/text/unicode/norm"
)

// Func scores a query against a candidate name.
type Func func(query, candidate string) float64

const (
	// AlgorithmSequence selects Ratio.
	AlgorithmSequence = "sequence"
	// AlgorithmLevenshtein selects EditRatio.
	AlgorithmLevenshtein = "levenshtein"
)

// ForAlgorithm returns the scoring function registered under name.
func ForAlgorithm(name string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", AlgorithmSequence:
		return Ratio, nil
	case AlgorithmLevenshtein:
		return EditRatio, nil
	default:
		return nil, fmt.Errorf("unknown similarity algorithm %q", name)
	}
}

// Normalize returns s in Unicode normalization form C.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// Ratio returns the matching-blocks similarity of a and b.
func Ratio(a, b string) float64 {
	ra := []rune(Normalize(a))
	rb := []rune(Normalize(b))
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	m := newMatcher(ra, rb)
	return 2.0 * float64(m.matchedRunes()) / float64(total)
}

// EditRatio returns a Levenshtein similarity of a and b, where 1 means equal.
func EditRatio(a, b string) float64 {
	a, b = Normalize(a), Normalize(b)
	if a == "" && b == "" {
		return 1.0
	}
	return levenshtein.Similarity(a, b, nil)
}
