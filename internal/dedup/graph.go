package dedup

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/chriscorrea/winnow/internal/similarity"
	"golang.org/x/sync/errgroup"
)

// graph is an adjacency list over distinct tokens addressed by index.
// neighbors[i] is sorted ascending and never contains i.
type graph struct {
	tokens      []string
	neighbors   [][]int
	visited     []bool
	comparisons int
	edges       int
}

// buildGraph scores every unordered pair once and links pairs at or above the threshold.
// Row i holds the pairs (i, j) with j > i; rows are independent and may run in parallel.
func (d *Deduplicator) buildGraph(ctx context.Context, tokens []string) (*graph, error) {
	n := len(tokens)
	rows := make([][]int, n)

	var done atomic.Int64
	scoreRow := func(i int) error {
		row, err := d.scoreRow(tokens, i)
		if err != nil {
			return err
		}
		rows[i] = row
		if d.config.Progress != nil {
			d.config.Progress(int(done.Add(1)), n)
		}
		return nil
	}

	if d.config.Workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := scoreRow(i); err != nil {
				return nil, err
			}
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(d.config.Workers)
		for i := 0; i < n; i++ {
			i := i // per-iteration copy for the closure below (pre-Go 1.22 loop semantics)
			// stop queueing rows once a worker failed or the caller cancelled
			if egCtx.Err() != nil {
				break
			}
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				return scoreRow(i)
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		// errgroup only reports worker errors; a cancelled parent may have skipped rows
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	g := &graph{
		tokens:      tokens,
		neighbors:   make([][]int, n),
		visited:     make([]bool, n),
		comparisons: n * (n - 1) / 2,
	}

	// merging rows in index order leaves every neighbor list ascending
	for i, row := range rows {
		for _, j := range row {
			g.neighbors[i] = append(g.neighbors[i], j)
			g.neighbors[j] = append(g.neighbors[j], i)
			g.edges++
		}
	}

	slog.Debug("Similarity graph built", "nodes", n, "edges", g.edges, "comparisons", g.comparisons)
	return g, nil
}

// scoreRow returns the indices j > i whose score against tokens[i] meets the threshold.
func (d *Deduplicator) scoreRow(tokens []string, i int) ([]int, error) {
	var row []int
	for j := i + 1; j < len(tokens); j++ {
		a, b := tokens[i], tokens[j]

		score, err := d.config.Scorer.Score(a, b)
		if err != nil {
			return nil, &ScoringError{A: a, B: b, Err: err}
		}
		if score < 0 || score > similarity.MaxScore {
			return nil, &ScoringError{A: a, B: b, Err: fmt.Errorf("score %d outside [0, %d]", score, similarity.MaxScore)}
		}

		if score >= d.config.Threshold {
			row = append(row, j)
		}
	}
	return row, nil
}
