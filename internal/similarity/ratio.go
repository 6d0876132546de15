package similarity

// RatioScorer scores two strings by their indel similarity:
// 2*LCS / (len(a) + len(b)), where LCS is the length of the longest common
// subsequence. Lengths are measured in runes.
type RatioScorer struct{}

// NewRatioScorer creates a new RatioScorer instance.
func NewRatioScorer() Scorer {
	return &RatioScorer{}
}

// Score returns the rounded ratio in [0, 100]. If either string is empty the score is 0.
func (rs *RatioScorer) Score(a, b string) (int, error) {
	if a == "" || b == "" {
		return 0, nil
	}
	if a == b {
		return MaxScore, nil
	}

	ra, rb := []rune(a), []rune(b)
	lcs := longestCommonSubsequence(ra, rb)
	return percent(2*lcs, len(ra)+len(rb)), nil
}

// Name returns the name of this scoring method for logging and debugging.
func (rs *RatioScorer) Name() string {
	return "ratio"
}

// longestCommonSubsequence uses the classic two-row dynamic program.
func longestCommonSubsequence(a, b []rune) int {
	if len(b) > len(a) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
