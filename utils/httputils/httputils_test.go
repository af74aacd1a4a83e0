// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

package httputils

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// recordingRoundTripper captures the last request and answers with a fixed response.
type recordingRoundTripper struct {
	lastRequest *http.Request
	body        string
	err         error
}

func (d *recordingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	d.lastRequest = req
	if d.err != nil {
		return nil, d.err
	}

	return &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        make(http.Header),
		Body:          io.NopCloser(strings.NewReader(d.body)),
		ContentLength: int64(len(d.body)),
		Request:       req,
	}, nil
}

//////////////////////////////////
// Test TracingRoundTripper

func TestTracingRoundTripper(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	rt := &TracingRoundTripper{
		Transport: &recordingRoundTripper{body: "response body"},
		Logger:    zap.New(core),
		DumpBody:  true,
		Redact:    []string{"X-Api-Key"},
	}

	req, err := http.NewRequest(http.MethodPost, "http://example.com/v1/geocode", strings.NewReader(`{"text":"paris"}`))
	require.NoError(t, err)
	req.Header.Set("X-Api-Key", "super-secret")

	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "response body", string(body), "dumping must not consume the body")

	entries := logs.FilterMessage("http transaction").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	request, _ := fields["request"].(string)
	response, _ := fields["response"].(string)

	assert.Contains(t, request, "> POST /v1/geocode")
	assert.Contains(t, request, `{"text":"paris"}`)
	assert.Contains(t, request, redacted)
	assert.NotContains(t, request, "super-secret")
	assert.Contains(t, response, "response body")
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestTracingRoundTripper_Error(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	rt := &TracingRoundTripper{
		Transport: &recordingRoundTripper{err: errors.New("connection refused")},
		Logger:    zap.New(core),
	}

	req, err := http.NewRequest(http.MethodGet, "http://example.com/", nil)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("http transaction failed").Len())
}

func TestTracingRoundTripper_Disabled(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	inner := &recordingRoundTripper{}

	rt := &TracingRoundTripper{Transport: inner, Logger: zap.New(core)}

	req, err := http.NewRequest(http.MethodGet, "http://example.com/", nil)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Same(t, req, inner.lastRequest)
	assert.Equal(t, 0, logs.Len())
}

func TestAbbreviate(t *testing.T) {
	lines := make([]string, 300)
	for i := range lines {
		lines[i] = "x"
	}

	lines[0] = strings.Repeat("y", 600)

	got := abbreviate(lines, '>')
	require.Len(t, got, 257)
	assert.True(t, strings.HasSuffix(got[0], "…"))
	assert.Equal(t, "> x", got[1])
	assert.Equal(t, "> …", got[256])
}

//////////////////////////////////
// Test HeaderRoundTripper

func TestHeaderRoundTripper(t *testing.T) {
	inner := &recordingRoundTripper{}
	rt := &HeaderRoundTripper{
		Transport: inner,
		Headers: map[string]string{
			"X-Test-Header": "TestValue",
		},
	}

	req, err := http.NewRequest(http.MethodPost, "http://example.org", nil)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	require.NoError(t, err)

	require.NotNil(t, inner.lastRequest)
	assert.Equal(t, "TestValue", inner.lastRequest.Header.Get("X-Test-Header"))
	assert.Empty(t, req.Header.Get("X-Test-Header"), "the original request must not be modified")
}
