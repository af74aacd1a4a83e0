// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Configuration keys. Each one is also a flag name and, upper-cased with the
// GEOMAP_ prefix, an environment variable.
const (
	keyAPIKey        = "api-key"
	keyEndpoint      = "endpoint"
	keyListen        = "listen"
	keyCORSOrigins   = "cors-origins"
	keyLogLevel      = "log-level"
	keyLogFormat     = "log-format"
	keyHTTPTrace     = "http-trace"
	keyHTTPBodyTrace = "http-body-trace"
)

// apiKeyEnv is deliberately unprefixed; it is the name deployments already use.
const apiKeyEnv = "GEOCACHE_API_KEY"

// Config holds all configuration for the application.
type Config struct {
	APIKey        string
	Endpoint      string
	Listen        string
	CORSOrigins   []string
	HTTPTrace     bool
	HTTPBodyTrace bool
	Log           LogConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// loadConfig merges, by precedence, flags, environment, .env and flag defaults.
func loadConfig(flags *pflag.FlagSet) (*Config, error) {
	// A missing .env is the normal case in production.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GEOMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv(keyAPIKey, apiKeyEnv); err != nil {
		return nil, eris.Wrap(err, "config: bind api key")
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, eris.Wrap(err, "config: bind flags")
		}
	}

	return &Config{
		APIKey:        strings.TrimSpace(v.GetString(keyAPIKey)),
		Endpoint:      v.GetString(keyEndpoint),
		Listen:        v.GetString(keyListen),
		CORSOrigins:   splitList(v.GetStringSlice(keyCORSOrigins)),
		HTTPTrace:     v.GetBool(keyHTTPTrace),
		HTTPBodyTrace: v.GetBool(keyHTTPBodyTrace),
		Log: LogConfig{
			Level:  v.GetString(keyLogLevel),
			Format: v.GetString(keyLogFormat),
		},
	}, nil
}

// splitList flattens comma separated entries, as environment variables
// carry lists as a single string.
func splitList(values []string) []string {
	var out []string

	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}

	return out
}

// initLogger builds the process-wide logger. Logs go to stderr so that
// command output on stdout stays machine readable.
func initLogger(c LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if strings.EqualFold(c.Format, "console") {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	levelName := c.Level
	if levelName == "" {
		levelName = "info"
	}

	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, eris.Wrap(err, "config: parse log level")
	}

	zapCfg.Level.SetLevel(level)
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, eris.Wrap(err, "config: build logger")
	}

	return logger, nil
}
