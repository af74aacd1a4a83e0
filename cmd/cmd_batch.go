// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jcodagnone/geomap/geocache"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type batchOptions struct {
	Output string
}

var batchOpts = &batchOptions{}

// BatchLine is one line of batch output.
type BatchLine struct {
	Query  string           `json:"query"`
	Result *geocache.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// BatchStats summarizes a batch run.
type BatchStats struct {
	Total    int
	Resolved int
	Failed   int
}

type lookuper interface {
	Lookup(ctx context.Context, query any) (*geocache.Result, error)
}

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Resolve one query per line and write JSON lines",
	Long: `Reads one query per line from a file (or stdin when omitted or "-") and writes
one JSON object per query. Blank lines and lines starting with # are skipped.

Queries are sent one at a time and nothing is retried: the run stops at the
first rate limit or credential problem.

$ geomap batch places.txt > places.jsonl
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := os.Stdin
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer f.Close()

			input = f
		}

		queries, err := readQueries(input)
		if err != nil {
			return err
		}

		output := os.Stdout
		if batchOpts.Output != "" && batchOpts.Output != "-" {
			f, err := os.Create(batchOpts.Output)
			if err != nil {
				return fmt.Errorf("creating output: %w", err)
			}
			defer f.Close()

			output = f
		}

		var bar *progressbar.ProgressBar
		if isatty.IsTerminal(os.Stderr.Fd()) {
			bar = progressbar.NewOptions(len(queries),
				progressbar.OptionSetDescription("Geocoding"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		stats, runErr := runBatch(cmd.Context(), newService(), queries, output, func() {
			if bar != nil {
				_ = bar.Add(1)
			}
		})

		if bar != nil {
			_ = bar.Finish()
		}

		p := message.NewPrinter(language.English)
		p.Fprintf(os.Stderr, "✅ Resolved %d of %d queries (%d failed)\n", stats.Resolved, stats.Total, stats.Failed)

		if runErr != nil {
			return cliError(runErr)
		}

		return nil
	},
}

// readQueries reads one query per line, skipping blank lines and # comments.
func readQueries(r io.Reader) ([]string, error) {
	var queries []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		queries = append(queries, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading queries: %w", err)
	}

	return queries, nil
}

// stopsBatch reports errors that will repeat for every remaining query.
func stopsBatch(err error) bool {
	return geocache.IsRateLimitError(err) ||
		geocache.IsAuthFailure(err) ||
		geocache.IsConfigurationError(err)
}

// runBatch resolves queries sequentially, writing one BatchLine per query.
func runBatch(ctx context.Context, svc lookuper, queries []string, w io.Writer, progress func()) (BatchStats, error) {
	stats := BatchStats{Total: len(queries)}
	enc := json.NewEncoder(w)

	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		line := BatchLine{Query: q}

		result, err := svc.Lookup(ctx, q)
		if err != nil {
			if stopsBatch(err) {
				return stats, err
			}

			stats.Failed++
			line.Error = geocache.AsGeocodingError(err).Message
		} else {
			stats.Resolved++
			line.Result = result
		}

		if err := enc.Encode(line); err != nil {
			return stats, fmt.Errorf("writing output: %w", err)
		}

		progress()
	}

	return stats, nil
}

func init() {
	batchCmd.Flags().StringVarP(&batchOpts.Output, "output", "o", "", "write JSON lines to this file instead of stdout")
	rootCmd.AddCommand(batchCmd)
}
