package dedup

import "fmt"

// InvalidInputError reports a token rejected before graph construction.
type InvalidInputError struct {
	Index  int    // position of the token in the caller's slice
	Token  string // offending token
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid token at index %d (%q): %s", e.Index, e.Token, e.Reason)
}

// ScoringError reports a pair the similarity scorer could not score.
// Any ScoringError aborts the whole run; no partial result is returned.
type ScoringError struct {
	A, B string
	Err  error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("failed to score %q against %q: %v", e.A, e.B, e.Err)
}

func (e *ScoringError) Unwrap() error {
	return e.Err
}
