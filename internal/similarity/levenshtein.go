package similarity

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// LevenshteinScorer scores two strings by normalized edit distance:
// 1 - distance / max(len(a), len(b)), with lengths in runes.
type LevenshteinScorer struct{}

// NewLevenshteinScorer creates a new LevenshteinScorer instance.
func NewLevenshteinScorer() Scorer {
	return &LevenshteinScorer{}
}

// Score returns the rounded normalized similarity in [0, 100].
// If either string is empty the score is 0.
func (ls *LevenshteinScorer) Score(a, b string) (int, error) {
	if a == "" || b == "" {
		return 0, nil
	}

	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	distance := levenshtein.ComputeDistance(a, b)
	score := percent(longest-distance, longest)

	return score, nil
}

// Name returns the name of this scoring method for logging and debugging.
func (ls *LevenshteinScorer) Name() string {
	return "levenshtein"
}
