// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/jcodagnone/geomap/geocache"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode <query…>",
	Short: "Resolve a single query and print the normalized result",
	Long: `Resolves a single query through the same path as the HTTP endpoint and prints
the normalized result as JSON.

$ geomap geocode Montevideo, Uruguay
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := newService().Lookup(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return cliError(err)
		}

		return writeJSON(os.Stdout, result, isatty.IsTerminal(os.Stdout.Fd()))
	},
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(v)
}

// cliError keeps the user-facing message of classified errors; details of
// unexpected ones are already in the log.
func cliError(err error) error {
	var geoErr *geocache.GeocodingError
	if errors.As(err, &geoErr) {
		return errors.New(geoErr.Message)
	}

	return err
}

func init() {
	rootCmd.AddCommand(geocodeCmd)
}
