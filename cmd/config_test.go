// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(keyEndpoint, "https://default.example/geocode", "")
	flags.String(keyListen, "localhost:8080", "")
	flags.StringSlice(keyCORSOrigins, []string{"http://localhost:3000"}, "")
	flags.String(keyLogLevel, "info", "")
	flags.String(keyLogFormat, "json", "")
	flags.Bool(keyHTTPTrace, false, "")
	flags.Bool(keyHTTPBodyTrace, false, "")

	return flags
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"single", []string{"http://a"}, []string{"http://a"}},
		{"comma separated", []string{"http://a, http://b"}, []string{"http://a", "http://b"}},
		{"mixed", []string{"http://a", "http://b,,http://c "}, []string{"http://a", "http://b", "http://c"}},
		{"only blanks", []string{" , "}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitList(tt.in))
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(apiKeyEnv, "")

	c, err := loadConfig(testFlags())
	require.NoError(t, err)

	assert.Empty(t, c.APIKey)
	assert.Equal(t, "https://default.example/geocode", c.Endpoint)
	assert.Equal(t, "localhost:8080", c.Listen)
	assert.Equal(t, []string{"http://localhost:3000"}, c.CORSOrigins)
	assert.Equal(t, LogConfig{Level: "info", Format: "json"}, c.Log)
	assert.False(t, c.HTTPTrace)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv(apiKeyEnv, "  secret  ")
	t.Setenv("GEOMAP_LISTEN", ":9090")
	t.Setenv("GEOMAP_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("GEOMAP_LOG_LEVEL", "debug")
	t.Setenv("GEOMAP_HTTP_TRACE", "true")

	c, err := loadConfig(testFlags())
	require.NoError(t, err)

	assert.Equal(t, "secret", c.APIKey)
	assert.Equal(t, ":9090", c.Listen)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins)
	assert.Equal(t, "debug", c.Log.Level)
	assert.True(t, c.HTTPTrace)
}

func TestLoadConfig_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("GEOMAP_LISTEN", ":9090")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--listen", ":7070"}))

	c, err := loadConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, ":7070", c.Listen)
}

func TestInitLogger(t *testing.T) {
	logger, err := initLogger(LogConfig{})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = initLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = initLogger(LogConfig{Level: "loud"})
	assert.Error(t, err)
}
