// Package similarity provides pairwise string similarity scoring for the winnow CLI tool.
//
// This package implements several scoring strategies behind the Scorer interface. Every
// scorer returns an integer in [0, 100] where higher means more similar, and is symmetric:
// Score(a, b) == Score(b, a). The default strategy is a fuzzy "ratio" based on the longest
// common subsequence of the two strings, comparable to the classic fuzzywuzzy ratio.
//
// Usage Example:
//
//	scorer, err := similarity.NewScorer(similarity.Ratio)
//	score, err := scorer.Score("hoppy", "hops")
//	// score == 67
//
// The provided scorers hold no mutable state and can be shared across goroutines.
package similarity

import (
	"fmt"
	"strings"
)

// MaxScore is the score of two identical, non-empty strings.
const MaxScore = 100

// Scorer defines the interface for different similarity strategies.
type Scorer interface {
	// Score returns the similarity of a and b in the range [0, 100].
	Score(a, b string) (int, error)

	// Name returns a human-readable name for this scoring method (for logging)
	Name() string
}

// ScorerFunc adapts an ordinary function to the Scorer interface.
type ScorerFunc func(a, b string) (int, error)

// Score calls f(a, b).
func (f ScorerFunc) Score(a, b string) (int, error) {
	return f(a, b)
}

// Name returns "func".
func (f ScorerFunc) Name() string {
	return "func"
}

// Method represents the different available scoring strategies.
type Method int

const (
	// Ratio uses the LCS-based fuzzy ratio (default)
	Ratio Method = iota
	// Levenshtein uses normalized edit distance
	Levenshtein
	// Stem treats tokens with a shared English stem as identical, then falls back to Ratio
	Stem
)

// String returns the string representation of the scoring method.
func (m Method) String() string {
	switch m {
	case Ratio:
		return "ratio"
	case Levenshtein:
		return "levenshtein"
	case Stem:
		return "stem"
	default:
		return "unknown"
	}
}

// ParseMethod maps a method name (as used by flags and config files) to a Method.
// Matching is case-insensitive; an empty name selects Ratio.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ratio":
		return Ratio, nil
	case "levenshtein":
		return Levenshtein, nil
	case "stem":
		return Stem, nil
	default:
		return Ratio, fmt.Errorf("unknown scorer %q (valid: ratio, levenshtein, stem)", name)
	}
}

// NewScorer creates a new Scorer for the specified method.
// Unknown methods fall back to Ratio, mirroring how ParseMethod treats an empty name.
func NewScorer(method Method) (Scorer, error) {
	switch method {
	case Ratio:
		return NewRatioScorer(), nil
	case Levenshtein:
		return NewLevenshteinScorer(), nil
	case Stem:
		return NewStemScorer(NewRatioScorer()), nil
	default:
		return NewRatioScorer(), nil
	}
}

// percent converts a fraction in [0, 1] to a rounded score in [0, 100].
func percent(num, den int) int {
	if den <= 0 {
		return 0
	}
	// round half up in integer arithmetic
	return (200*num + den) / (2 * den)
}
