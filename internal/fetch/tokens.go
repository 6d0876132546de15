package fetch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// maxTokenBytes caps a single whitespace-delimited token
const maxTokenBytes = 1024 * 1024

// TokenOptions controls per-token rewriting applied while reading.
type TokenOptions struct {
	Lowercase bool // fold case (Unicode-aware) so "Hops" and "hops" collapse
	Normalize bool // apply NFKC so compatibility forms compare equal
}

// ReadTokens opens source and splits its content on Unicode whitespace.
// Tokens are returned in source order, repeats included; malformed tokens
// (such as invalid UTF-8) are passed through for the caller to reject.
func ReadTokens(ctx context.Context, source string, opts TokenOptions) ([]string, error) {
	reader, err := Open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer reader.Close()

	tokens, err := ScanTokens(reader, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read tokens from %q: %w", source, err)
	}

	slog.Debug("Tokens read", "source", source, "tokenCount", len(tokens))
	return tokens, nil
}

// ScanTokens splits r on Unicode whitespace and applies opts to every token.
func ScanTokens(r io.Reader, opts TokenOptions) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTokenBytes)
	scanner.Split(bufio.ScanWords)

	// a Caser keeps state and is not safe for concurrent use, so each scan gets its own
	var lower cases.Caser
	if opts.Lowercase {
		lower = cases.Lower(language.Und)
	}

	tokens := make([]string, 0)
	for scanner.Scan() {
		token := scanner.Text()
		if opts.Normalize {
			token = norm.NFKC.String(token)
		}
		if opts.Lowercase {
			token = lower.String(token)
		}
		tokens = append(tokens, token)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return tokens, nil
}
