// Package app contains the core application logic for the winnow CLI tool.
// It handles the main business logic separated from CLI concerns.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/chriscorrea/winnow/internal/dedup"
	"github.com/chriscorrea/winnow/internal/fetch"
	"github.com/chriscorrea/winnow/internal/similarity"
	"github.com/chriscorrea/winnow/internal/spinner"
)

// OutputFormat defines the output format for results
type OutputFormat int

const (
	// plaintext output format (default)
	Text OutputFormat = iota
	// JSON output format
	JSON
	// rounded table output format
	Table
)

// String returns the string representation of the output
func (f OutputFormat) String() string {
	switch f {
	case Text:
		return "Text"
	case JSON:
		return "JSON"
	case Table:
		return "Table"
	default:
		return "Unknown"
	}
}

// Config holds all configuration options for the winnow application.
type Config struct {
	Sources      []string          // URLs, file paths, or "-" for stdin
	Threshold    int               // minimum similarity score for an edge (0-100)
	Method       similarity.Method // pairwise similarity scorer
	TieBreak     string            // suffix preferred on equal neighbor counts; "" disables
	Workers      int               // scoring goroutines; 0 means one per CPU
	Lowercase    bool              // fold token case before comparison
	Normalize    bool              // apply NFKC normalization before comparison
	ShowClusters bool              // include cluster members in the output
	OutputFormat OutputFormat
	Quiet        bool // suppress warnings and the progress spinner
	Debug        bool // debug logging is on; the spinner stays off
}

// Run executes the main winnow application logic with the given configuration.
//
// Processing Pipeline:
// 1. Read tokens from all sources (readAllTokens)
// 2. Build the similarity graph and extract one representative per cluster
// 3. Format the result
//
// ctx allows for cancellation of fetching and of the pairwise scoring.
func Run(ctx context.Context, cfg Config) (string, error) {
	if len(cfg.Sources) == 0 {
		return "", fmt.Errorf("no sources provided")
	}

	// display spinner for longer operations
	var progress progressReporter
	if showProgress(cfg) {
		sp := spinner.New(ctx, os.Stderr, "Reading tokens...")
		sp.Start()
		defer sp.Stop()
		progress = sp
	}

	// step 1: gather tokens from every source
	tokens, err := readAllTokens(ctx, cfg)
	if err != nil {
		return "", err
	}

	// step 2: deduplicate
	result, err := deduplicate(ctx, tokens, cfg, progress)
	if err != nil {
		return "", err
	}

	// step 3: render
	return Format(result, cfg.OutputFormat, cfg.ShowClusters)
}

// progressReporter receives status updates while a run is in progress
type progressReporter interface {
	UpdateMessage(message string)
	UpdateProgress(done, total int)
}

// showProgress reports whether the spinner should be drawn. Debug logging shares
// stderr with the spinner, so the two are never combined.
func showProgress(cfg Config) bool {
	return !cfg.Quiet && !cfg.Debug
}

// readAllTokens concatenates tokens from all sources in argument order.
// A source that cannot be read is reported and skipped.
func readAllTokens(ctx context.Context, cfg Config) ([]string, error) {
	opts := fetch.TokenOptions{
		Lowercase: cfg.Lowercase,
		Normalize: cfg.Normalize,
	}

	var tokens []string
	readSources := 0
	for _, source := range cfg.Sources {
		sourceTokens, err := fetch.ReadTokens(ctx, source, opts)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !cfg.Quiet {
				fmt.Fprintf(os.Stderr, "Warning: failed to process source %q: %v\n", source, err)
			}
			continue
		}
		readSources++
		tokens = append(tokens, sourceTokens...)
	}

	if readSources == 0 {
		return nil, fmt.Errorf("no tokens read from any source")
	}

	return tokens, nil
}

// deduplicate runs the similarity graph over tokens, reporting row progress
// when progress is non-nil.
func deduplicate(ctx context.Context, tokens []string, cfg Config, progress progressReporter) (*dedup.Result, error) {
	dedupCfg, err := newDedupConfig(cfg)
	if err != nil {
		return nil, err
	}

	if progress != nil {
		progress.UpdateMessage("Scoring pairs...")
		dedupCfg.Progress = progress.UpdateProgress
	}

	d, err := dedup.New(dedupCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create deduplicator: %w", err)
	}

	result, err := d.Run(ctx, tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to deduplicate tokens: %w", err)
	}

	slog.Debug("Run statistics",
		"tokens", result.Stats.Tokens,
		"distinct", result.Stats.Distinct,
		"comparisons", result.Stats.Comparisons,
		"edges", result.Stats.Edges,
		"clusters", result.Stats.Clusters)
	return result, nil
}

// newDedupConfig translates application settings into a dedup.Config.
func newDedupConfig(cfg Config) (dedup.Config, error) {
	scorer, err := similarity.NewScorer(cfg.Method)
	if err != nil {
		return dedup.Config{}, fmt.Errorf("failed to create scorer: %w", err)
	}

	var tieBreak dedup.TieBreaker = dedup.NoPreference{}
	if cfg.TieBreak != "" {
		tieBreak = dedup.SuffixPreference{Suffix: cfg.TieBreak}
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return dedup.Config{
		Threshold: cfg.Threshold,
		Scorer:    scorer,
		TieBreak:  tieBreak,
		Workers:   workers,
	}, nil
}
