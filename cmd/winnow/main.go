package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/chriscorrea/winnow/internal/app"
	"github.com/chriscorrea/winnow/internal/config"
	"github.com/chriscorrea/winnow/internal/fetch"
	"github.com/chriscorrea/winnow/internal/logging"
	"github.com/chriscorrea/winnow/internal/similarity"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config and log level from the config file,
// environment, command flags and arguments (in increasing precedence)
func buildConfig(cmd *cobra.Command, args []string) (app.Config, slog.Level, error) {
	configPath, _ := cmd.Flags().GetString("config")
	fileCfg, err := config.Load(configPath)
	if err != nil {
		return app.Config{}, slog.LevelError, err
	}

	// explicitly set flags override file and environment values
	flags := cmd.Flags()
	if flags.Changed("threshold") {
		fileCfg.Dedup.Threshold, _ = flags.GetInt("threshold")
	}
	if flags.Changed("scorer") {
		fileCfg.Dedup.Scorer, _ = flags.GetString("scorer")
	}
	if flags.Changed("tie-break-suffix") {
		fileCfg.Dedup.TieBreakSuffix, _ = flags.GetString("tie-break-suffix")
	}
	if noTieBreak, _ := flags.GetBool("no-tie-break"); noTieBreak {
		fileCfg.Dedup.TieBreakSuffix = ""
	}
	if flags.Changed("workers") {
		fileCfg.Dedup.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("log-level") {
		fileCfg.Logging.Level, _ = flags.GetString("log-level")
	}

	if err := fileCfg.Validate(); err != nil {
		return app.Config{}, slog.LevelError, err
	}

	method, err := similarity.ParseMethod(fileCfg.Dedup.Scorer)
	if err != nil {
		return app.Config{}, slog.LevelError, err
	}

	// debug flag wins over any configured level
	debug, _ := flags.GetBool("debug")
	level, err := logging.ParseLevel(fileCfg.Logging.Level)
	if err != nil {
		return app.Config{}, slog.LevelError, err
	}
	if debug {
		level = slog.LevelDebug
	}

	// determine output format
	textFlag, _ := flags.GetBool("text")
	jsonFlag, _ := flags.GetBool("json")
	tableFlag, _ := flags.GetBool("table")
	var outputFormat app.OutputFormat
	switch {
	case jsonFlag:
		outputFormat = app.JSON
	case tableFlag:
		outputFormat = app.Table
	case textFlag:
		outputFormat = app.Text
	default:
		outputFormat = app.Text // default if no format flag
	}

	// use positional arguments as sources; no arguments means stdin
	sources := args
	if len(sources) == 0 {
		sources = []string{fetch.Stdin}
	}

	lowercase, _ := flags.GetBool("lowercase")
	normalize, _ := flags.GetBool("normalize")
	showClusters, _ := flags.GetBool("clusters")
	quiet, _ := flags.GetBool("quiet")

	return app.Config{
		Sources:      sources,
		Threshold:    fileCfg.Dedup.Threshold,
		Method:       method,
		TieBreak:     fileCfg.Dedup.TieBreakSuffix,
		Workers:      fileCfg.Dedup.Workers,
		Lowercase:    lowercase,
		Normalize:    normalize,
		ShowClusters: showClusters,
		OutputFormat: outputFormat,
		Quiet:        quiet,
		Debug:        debug,
	}, level, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "winnow [sources...]",
		Short: "A CLI tool for collapsing near-duplicate tokens",
		Long: `Winnow reads whitespace-separated tokens and keeps one representative for every group of similar tokens. Sources may include URLs, local files, or standard input.

Tokens are linked when their similarity score reaches the threshold; each connected group keeps its most connected token, preferring tokens ending in "y" on ties.

Examples:
  winnow vocabulary.txt
  winnow --threshold 75 --clusters words.txt more-words.txt
  cat tokens.txt | winnow --json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// build config from file, environment, flags and arguments
			cfg, level, err := buildConfig(cmd, args)
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}

			logging.Setup(level, os.Stderr)

			// create context with signal handling for graceful shutdown
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			result, err := app.Run(ctx, cfg)
			if err != nil {
				return fmt.Errorf("winnow failed: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), result)
			return nil
		},
	}

	flags := cmd.Flags()

	// similarity flags
	flags.IntP("threshold", "t", config.Default().Dedup.Threshold, "Minimum similarity score (0-100) for two tokens to be grouped")
	flags.String("scorer", similarity.Ratio.String(), "Similarity scorer: ratio, levenshtein or stem")
	flags.String("tie-break-suffix", config.Default().Dedup.TieBreakSuffix, "Prefer tokens with this suffix when neighbor counts are equal")
	flags.Bool("no-tie-break", false, "Keep the first token found on ties")
	flags.IntP("workers", "w", 0, "Goroutines scoring pairs (default: one per CPU)")

	cmd.MarkFlagsMutuallyExclusive("tie-break-suffix", "no-tie-break")

	// token input flags
	flags.Bool("lowercase", false, "Fold token case before comparing")
	flags.Bool("normalize", false, "Apply Unicode NFKC normalization before comparing")

	// output format flags
	flags.BoolP("clusters", "C", false, "Show the members of every cluster")
	flags.Bool("text", false, "Output in plain text format (default)")
	flags.Bool("json", false, "Output in JSON format")
	flags.Bool("table", false, "Output as a table")

	// output format flags are mutually exclusive
	cmd.MarkFlagsMutuallyExclusive("text", "json", "table")

	// other flags
	flags.String("config", "", "Path to a YAML config file (default: ~/.config/winnow/config.yaml)")
	flags.String("log-level", "", "Log level: error, warn, info or debug")
	flags.BoolP("quiet", "q", false, "Suppress warnings and progress output")
	flags.BoolP("debug", "D", false, "Enable debug logging")
	_ = flags.MarkHidden("debug")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
