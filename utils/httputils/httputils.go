// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

// Package httputils provides http.RoundTripper decorators for outbound calls.
package httputils

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	"go.uber.org/zap"
)

const redacted = "[REDACTED]"

/////////////////////////////////////////
/// RoundTrippers

// TracingRoundTripper logs every outbound transaction at debug level.
// Values of the headers listed in Redact never reach the log.
type TracingRoundTripper struct {
	Transport http.RoundTripper
	Logger    *zap.Logger
	DumpBody  bool
	Redact    []string
}

// abbreviate caps the number of lines and the width of each line of a dump.
func abbreviate(lines []string, prefix rune) []string {
	const maxLines, maxChars = 256, 512

	if len(lines) > maxLines {
		lines = append(lines[:maxLines:maxLines], "…")
	}

	for i, line := range lines {
		if len(line) > maxChars {
			line = line[0:maxChars] + "…"
		}

		lines[i] = fmt.Sprintf("%c %s", prefix, line)
	}

	return lines
}

// redactHeaders masks header values in a wire dump. Header names are
// matched case-insensitively.
func (t *TracingRoundTripper) redactHeaders(lines []string) []string {
	for i, line := range lines {
		name, _, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		for _, h := range t.Redact {
			if strings.EqualFold(strings.TrimSpace(name), h) {
				lines[i] = name + ": " + redacted

				break
			}
		}
	}

	return lines
}

func (t *TracingRoundTripper) dump(raw []byte, prefix rune) string {
	lines := strings.Split(strings.TrimRight(string(raw), "\r\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}

	return strings.Join(abbreviate(t.redactHeaders(lines), prefix), "\n")
}

// RoundTrip implements the http.RoundTripper interface.
func (t *TracingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Logger == nil || !t.Logger.Core().Enabled(zap.DebugLevel) {
		return t.Transport.RoundTrip(req)
	}

	reqDump, err := httputil.DumpRequestOut(req, t.DumpBody)
	if err != nil {
		return nil, fmt.Errorf("tracing HTTP request: %w", err)
	}

	start := time.Now()

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		t.Logger.Debug("http transaction failed",
			zap.String("request", t.dump(reqDump, '>')),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)

		return nil, err
	}

	respDump, err := httputil.DumpResponse(resp, t.DumpBody)
	if err != nil {
		return nil, fmt.Errorf("tracing HTTP response: %w", err)
	}

	t.Logger.Debug("http transaction",
		zap.String("request", t.dump(reqDump, '>')),
		zap.String("response", t.dump(respDump, '<')),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	return resp, nil
}

// HeaderRoundTripper sets fixed headers on every request.
type HeaderRoundTripper struct {
	Transport http.RoundTripper
	Headers   map[string]string
}

// RoundTrip implements the http.RoundTripper interface. The caller's
// request is cloned, as the RoundTripper contract forbids modifying it.
func (t *HeaderRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for k, v := range t.Headers {
		clone.Header.Set(k, v)
	}

	return t.Transport.RoundTrip(clone)
}
