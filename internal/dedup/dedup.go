// Package dedup collapses near-duplicate tokens into one representative per cluster.
//
// A Deduplicator builds an undirected similarity graph over the distinct input tokens:
// every pair scoring at or above the threshold is joined by an edge. Each connected
// component of that graph is a cluster, and one token per cluster is kept.
//
// The representative is the most connected token found while walking the cluster.
// Ties on neighbor count are settled by a TieBreaker; the default prefers tokens ending
// in "y", so {"fruit", "fruity"} reduces to "fruity".
//
// Usage Example:
//
//	uniques, err := dedup.ExtractUniques([]string{"hoppy", "hops", "malt"})
//	// uniques == []string{"hoppy", "malt"}
//
// Graph construction compares every pair of distinct tokens, so cost grows
// quadratically with the vocabulary. Rows of the comparison can be spread across
// workers; extraction itself is sequential.
package dedup

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"unicode/utf8"

	"github.com/chriscorrea/winnow/internal/similarity"
)

// DefaultThreshold is the minimum score for two tokens to be considered the same.
const DefaultThreshold = 60

// DefaultTieBreakSuffix is the suffix preferred when neighbor counts are equal.
const DefaultTieBreakSuffix = "y"

// Config holds the tunable parameters of a Deduplicator.
type Config struct {
	Threshold int               // minimum similarity score for an edge, in [0, 100]
	Scorer    similarity.Scorer // nil selects the ratio scorer
	TieBreak  TieBreaker        // nil selects the "y" suffix preference; NoPreference disables it
	Workers   int               // goroutines scoring rows; <= 1 scores sequentially

	// Progress, when set, is called after each scored row with the number of rows
	// completed and the total. It may be called from several goroutines.
	Progress func(done, total int)
}

// DefaultConfig returns the configuration matching the classic behavior:
// ratio scoring, threshold 60, "y" suffix tie-break, sequential scoring.
func DefaultConfig() Config {
	return Config{
		Threshold: DefaultThreshold,
		Scorer:    similarity.NewRatioScorer(),
		TieBreak:  SuffixPreference{Suffix: DefaultTieBreakSuffix},
		Workers:   1,
	}
}

// Cluster is one connected group of similar tokens.
type Cluster struct {
	Representative string   `json:"representative"`
	Members        []string `json:"members"` // sorted, includes the representative
}

// Size returns the number of tokens in the cluster.
func (c Cluster) Size() int {
	return len(c.Members)
}

// Stats summarizes the work done by a single run.
type Stats struct {
	Tokens      int `json:"tokens"`      // tokens supplied by the caller
	Distinct    int `json:"distinct"`    // tokens after removing exact repeats
	Comparisons int `json:"comparisons"` // scorer calls made
	Edges       int `json:"edges"`       // pairs at or above the threshold
	Clusters    int `json:"clusters"`
}

// Result holds the clusters found by a run, ordered by representative.
type Result struct {
	Clusters []Cluster `json:"clusters"`
	Stats    Stats     `json:"stats"`
}

// Uniques returns the representative of every cluster.
func (r *Result) Uniques() []string {
	uniques := make([]string, 0, len(r.Clusters))
	for _, c := range r.Clusters {
		uniques = append(uniques, c.Representative)
	}
	return uniques
}

// Deduplicator reduces token collections using a fixed configuration.
// It keeps no state between calls and is safe for concurrent use as long as its
// scorer is.
type Deduplicator struct {
	config Config
}

// New creates a Deduplicator, filling in defaults for a nil scorer or tie-breaker.
// Returns an error if the threshold lies outside [0, 100].
func New(cfg Config) (*Deduplicator, error) {
	if cfg.Threshold < 0 || cfg.Threshold > similarity.MaxScore {
		return nil, fmt.Errorf("threshold must be between 0 and %d, got %d", similarity.MaxScore, cfg.Threshold)
	}
	if cfg.Scorer == nil {
		cfg.Scorer = similarity.NewRatioScorer()
	}
	if cfg.TieBreak == nil {
		cfg.TieBreak = SuffixPreference{Suffix: DefaultTieBreakSuffix}
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	return &Deduplicator{config: cfg}, nil
}

// ExtractUniques reduces tokens with the default configuration.
func ExtractUniques(tokens []string) ([]string, error) {
	d, err := New(DefaultConfig())
	if err != nil {
		return nil, err
	}
	return d.ExtractUniques(context.Background(), tokens)
}

// ExtractUniques returns one representative per cluster, sorted.
func (d *Deduplicator) ExtractUniques(ctx context.Context, tokens []string) ([]string, error) {
	result, err := d.Run(ctx, tokens)
	if err != nil {
		return nil, err
	}
	return result.Uniques(), nil
}

// Run validates tokens, builds the similarity graph and extracts its clusters.
//
// ctx is checked between rows of the pairwise comparison; cancellation aborts the run
// with ctx.Err(). A scorer failure aborts with a *ScoringError and invalid tokens with
// an *InvalidInputError. No partial result is returned on error.
func (d *Deduplicator) Run(ctx context.Context, tokens []string) (*Result, error) {
	if err := validate(tokens); err != nil {
		return nil, err
	}

	distinct := distinctSorted(tokens)
	slog.Debug("Deduplicating tokens",
		"tokens", len(tokens),
		"distinct", len(distinct),
		"scorer", d.config.Scorer.Name(),
		"threshold", d.config.Threshold,
		"tieBreak", d.config.TieBreak.Name(),
		"workers", d.config.Workers)

	g, err := d.buildGraph(ctx, distinct)
	if err != nil {
		return nil, err
	}

	clusters := g.extractClusters(d.config.TieBreak)

	result := &Result{
		Clusters: clusters,
		Stats: Stats{
			Tokens:      len(tokens),
			Distinct:    len(distinct),
			Comparisons: g.comparisons,
			Edges:       g.edges,
			Clusters:    len(clusters),
		},
	}

	slog.Debug("Deduplication completed",
		"clusters", result.Stats.Clusters,
		"edges", result.Stats.Edges,
		"comparisons", result.Stats.Comparisons)
	return result, nil
}

// validate rejects tokens the graph cannot represent: empty strings have no last
// character to break ties on, and invalid UTF-8 cannot be scored rune by rune.
func validate(tokens []string) error {
	for i, token := range tokens {
		if token == "" {
			return &InvalidInputError{Index: i, Token: token, Reason: "empty token"}
		}
		if !utf8.ValidString(token) {
			return &InvalidInputError{Index: i, Token: token, Reason: "invalid UTF-8"}
		}
	}
	return nil
}

// distinctSorted removes repeats and sorts lexicographically, pinning iteration order.
func distinctSorted(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	distinct := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		distinct = append(distinct, token)
	}
	sort.Strings(distinct)
	return distinct
}
