// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/jcodagnone/geomap/geocache"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfg *Config

var rootCmd = &cobra.Command{
	Use:   "geomap",
	Short: "free-text location search backed by geocache.dev",
	Long: `
geomap resolves free-text location queries through the geocache.dev API and
normalizes the answer into a fixed shape suitable for putting a pin on a map.

The provider credential is read from GEOCACHE_API_KEY (a .env file in the
working directory is honored).
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := loadConfig(cmd.Flags())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		cfg = c

		logger, err := initLogger(cfg.Log)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}

		zap.ReplaceGlobals(logger)

		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = zap.L().Sync()
	},
}

var Version = "dev"

func userAgent() string {
	return fmt.Sprintf("geomap/%s (+https://github.com/jcodagnone/geomap)", Version)
}

// newService builds the geocoding service from the loaded configuration.
func newService() *geocache.Service {
	logger := zap.L()

	client := geocache.NewClient(&geocache.ClientOptions{
		Endpoint:            cfg.Endpoint,
		APIKey:              cfg.APIKey,
		UserAgent:           userAgent(),
		EnableHTTPTrace:     cfg.HTTPTrace,
		EnableHTTPBodyTrace: cfg.HTTPBodyTrace,
		Logger:              logger.Named("geocache"),
	})

	return geocache.NewService(client, logger.Named("service"))
}

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String(keyEndpoint, geocache.DefaultEndpoint, "geocache.dev geocoding endpoint")
	flags.String(keyLogLevel, "info", "log level: debug, info, warn, error")
	flags.String(keyLogFormat, "json", "log format: json or console")
	flags.Bool(keyHTTPTrace, false, "trace outbound HTTP requests at debug level")
	flags.Bool(keyHTTPBodyTrace, false, "include bodies in HTTP traces")
}
