package dedup

import "strings"

// TieBreaker decides between two nodes with the same neighbor count.
type TieBreaker interface {
	// Prefer reports whether candidate should replace the current best.
	Prefer(candidate, current string) bool

	// Name returns a human-readable name for this policy (for logging)
	Name() string
}

// SuffixPreference prefers tokens ending in Suffix over tokens that do not.
// With the default suffix "y" this favors forms like "fruity" over "fruit" and
// "hoppy" over "hops". It is a linguistic heuristic, not a general rule.
type SuffixPreference struct {
	Suffix string
}

// Prefer returns true when candidate ends in the suffix and current does not.
// An empty suffix never prefers anything.
func (p SuffixPreference) Prefer(candidate, current string) bool {
	if p.Suffix == "" {
		return false
	}
	return strings.HasSuffix(candidate, p.Suffix) && !strings.HasSuffix(current, p.Suffix)
}

// Name returns the policy name including the suffix
func (p SuffixPreference) Name() string {
	return "suffix:" + p.Suffix
}

// NoPreference keeps the first node found on every tie.
type NoPreference struct{}

// Prefer always returns false.
func (NoPreference) Prefer(candidate, current string) bool {
	return false
}

// Name returns "none".
func (NoPreference) Name() string {
	return "none"
}
