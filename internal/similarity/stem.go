package similarity

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball"
)

// StemScorer treats two tokens that reduce to the same English snowball stem as
// identical (score 100). Every other pair is delegated to the wrapped scorer.
type StemScorer struct {
	inner Scorer
}

// NewStemScorer wraps inner with stem matching. A nil inner falls back to RatioScorer.
func NewStemScorer(inner Scorer) Scorer {
	if inner == nil {
		inner = NewRatioScorer()
	}
	return &StemScorer{inner: inner}
}

// Score returns 100 for tokens sharing a stem, otherwise the inner score.
func (ss *StemScorer) Score(a, b string) (int, error) {
	if a != "" && b != "" && stem(a) == stem(b) {
		return MaxScore, nil
	}
	return ss.inner.Score(a, b)
}

// Name returns the name of this scoring method for logging and debugging.
func (ss *StemScorer) Name() string {
	return fmt.Sprintf("stem+%s", ss.inner.Name())
}

// stem lowercases and stems a token using the English snowball stemmer
func stem(token string) string {
	lowered := strings.ToLower(token)

	stemmed, err := snowball.Stem(lowered, "english", true)
	if err != nil {
		// if stemming fails, use the lowered token
		return lowered
	}
	return stemmed
}
