// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/geomap/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web page and the geocoding proxy endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := zap.L()

		if logger.Core().Enabled(zapcore.DebugLevel) {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}

		if cfg.APIKey == "" {
			// Not fatal at startup: every lookup answers with a configuration error.
			logger.Error(apiKeyEnv + " is not configured; geocoding requests will fail")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.NewServer(newService(), &server.Options{
			Listen:      cfg.Listen,
			CORSOrigins: cfg.CORSOrigins,
			Version:     Version,
			Logger:      logger.Named("http"),
		})

		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String(keyListen, "localhost:8080", "address to listen on")
	serveCmd.Flags().StringSlice(keyCORSOrigins, []string{"http://localhost:3000"}, `origins allowed to call the API ("*" for any)`)
	rootCmd.AddCommand(serveCmd)
}
