package similarity_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/chriscorrea/winnow/internal/similarity"
)

func TestRatioScorer(t *testing.T) {
	scorer := similarity.NewRatioScorer()

	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"identical", "hoppy", "hoppy", 100},
		{"plural-ish variant", "hoppy", "hops", 67},
		{"inserted letters", "guiness", "guinnesses", 82},
		{"y suffix", "citrusy", "citrus", 92},
		{"fruit", "fruit", "fruity", 91},
		{"classic pair", "kitten", "sitting", 62},
		{"nothing shared", "abc", "xyz", 0},
		{"unrelated words", "malt", "hops", 0},
		{"empty left", "", "hops", 0},
		{"empty right", "hops", "", 0},
		{"unicode runes", "café", "cafe", 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Score(tt.a, tt.b)
			if err != nil {
				t.Fatalf("RatioScorer.Score(%q, %q) unexpected error: %v", tt.a, tt.b, err)
			}
			if result != tt.expected {
				t.Errorf("RatioScorer.Score(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}

			// symmetry
			reversed, _ := scorer.Score(tt.b, tt.a)
			if reversed != result {
				t.Errorf("RatioScorer.Score(%q, %q) = %d, reversed = %d", tt.a, tt.b, result, reversed)
			}
		})
	}

	if scorer.Name() != "ratio" {
		t.Errorf("RatioScorer.Name() = %q, want %q", scorer.Name(), "ratio")
	}
}

func TestLevenshteinScorer(t *testing.T) {
	scorer := similarity.NewLevenshteinScorer()

	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"identical", "abc", "abc", 100},
		{"classic pair", "kitten", "sitting", 57},
		{"plural-ish variant", "hoppy", "hops", 60},
		{"unicode runes", "café", "cafe", 75},
		{"empty", "", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Score(tt.a, tt.b)
			if err != nil {
				t.Fatalf("LevenshteinScorer.Score(%q, %q) unexpected error: %v", tt.a, tt.b, err)
			}
			if result != tt.expected {
				t.Errorf("LevenshteinScorer.Score(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}
		})
	}

	if scorer.Name() != "levenshtein" {
		t.Errorf("LevenshteinScorer.Name() = %q, want %q", scorer.Name(), "levenshtein")
	}
}

func TestStemScorer(t *testing.T) {
	scorer := similarity.NewStemScorer(nil)

	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"shared stem", "hops", "hop", 100},
		{"shared stem verb", "running", "run", 100},
		{"case folded", "Hops", "hops", 100},
		{"falls back to inner", "malt", "hops", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Score(tt.a, tt.b)
			if err != nil {
				t.Fatalf("StemScorer.Score(%q, %q) unexpected error: %v", tt.a, tt.b, err)
			}
			if result != tt.expected {
				t.Errorf("StemScorer.Score(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}
		})
	}

	if scorer.Name() != "stem+ratio" {
		t.Errorf("StemScorer.Name() = %q, want %q", scorer.Name(), "stem+ratio")
	}
}

func TestStemScorerPropagatesInnerError(t *testing.T) {
	boom := errors.New("boom")
	scorer := similarity.NewStemScorer(similarity.ScorerFunc(func(a, b string) (int, error) {
		return 0, boom
	}))

	if _, err := scorer.Score("malt", "hops"); !errors.Is(err, boom) {
		t.Errorf("StemScorer.Score() error = %v, want %v", err, boom)
	}
}

func TestNewScorer(t *testing.T) {
	tests := []struct {
		name         string
		method       similarity.Method
		expectedName string
	}{
		{"ratio", similarity.Ratio, "ratio"},
		{"levenshtein", similarity.Levenshtein, "levenshtein"},
		{"stem", similarity.Stem, "stem+ratio"},
		{"unknown falls back", similarity.Method(999), "ratio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer, err := similarity.NewScorer(tt.method)
			if err != nil {
				t.Fatalf("NewScorer(%v) unexpected error: %v", tt.method, err)
			}
			if scorer.Name() != tt.expectedName {
				t.Errorf("NewScorer(%v).Name() = %q, want %q", tt.method, scorer.Name(), tt.expectedName)
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input       string
		expected    similarity.Method
		expectError bool
	}{
		{"", similarity.Ratio, false},
		{"ratio", similarity.Ratio, false},
		{"Levenshtein", similarity.Levenshtein, false},
		{" stem ", similarity.Stem, false},
		{"soundex", similarity.Ratio, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := similarity.ParseMethod(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("ParseMethod(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMethod(%q) unexpected error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestMethodString(t *testing.T) {
	tests := []struct {
		method   similarity.Method
		expected string
	}{
		{similarity.Ratio, "ratio"},
		{similarity.Levenshtein, "levenshtein"},
		{similarity.Stem, "stem"},
		{similarity.Method(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if result := tt.method.String(); result != tt.expected {
				t.Errorf("Method(%d).String() = %q, want %q", int(tt.method), result, tt.expected)
			}
		})
	}
}

func TestRatioScorerRoundsHalfUp(t *testing.T) {
	// LCS 5 over 16 runes is exactly 62.5
	score, err := similarity.NewRatioScorer().Score("abcdefgh", "abcdewxy")
	if err != nil {
		t.Fatalf("Score() unexpected error: %v", err)
	}
	if score != 63 {
		t.Errorf("Score() = %d, want 63", score)
	}
}

func TestScorersDoNotLogPerPair(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	for _, method := range []similarity.Method{similarity.Ratio, similarity.Levenshtein, similarity.Stem} {
		scorer, err := similarity.NewScorer(method)
		if err != nil {
			t.Fatalf("NewScorer(%v) unexpected error: %v", method, err)
		}
		if _, err := scorer.Score("hops", "hoppy"); err != nil {
			t.Fatalf("%s Score() unexpected error: %v", scorer.Name(), err)
		}
		if _, err := scorer.Score("running", "run"); err != nil {
			t.Fatalf("%s Score() unexpected error: %v", scorer.Name(), err)
		}
	}

	if buf.Len() != 0 {
		t.Errorf("scoring wrote log output: %q", buf.String())
	}
}
