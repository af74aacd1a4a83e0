// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

package geocache

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/jcodagnone/geomap/utils/httputils"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultEndpoint is the geocache.dev forward geocoding endpoint.
const DefaultEndpoint = "https://api.geocache.dev/v1/geocode"

// APIKeyHeader carries the server credential.
const APIKeyHeader = "x-api-key"

// maxErrorBody bounds how much of an error response is kept for the logs.
const maxErrorBody = 64 << 10

// Provider resolves free text into a raw provider payload.
type Provider interface {
	Geocode(ctx context.Context, text string) (any, error)
}

// ClientOptions configuration for Client.
type ClientOptions struct {
	// Endpoint overrides DefaultEndpoint
	Endpoint string

	// APIKey is the provider credential; requests fail with a configuration
	// error while it is empty
	APIKey string

	// UserAgent is the User-Agent header to use in HTTP requests
	UserAgent string

	// Enables debug tracing of HTTP requests and responses
	EnableHTTPTrace bool

	// Enables full HTTP body tracing
	EnableHTTPBodyTrace bool

	// Transport is the base transport; http.DefaultTransport when nil
	Transport http.RoundTripper

	Logger *zap.Logger
}

// Client talks to the geocache.dev API.
type Client struct {
	endpoint   string
	configured bool
	httpClient *http.Client
	logger     *zap.Logger
}

type geocodeRequest struct {
	Text string `json:"text"`
}

// NewClient creates a new client with the provided options.
func NewClient(options *ClientOptions) *Client {
	if options == nil {
		options = &ClientOptions{}
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	endpoint := DefaultEndpoint
	if options.Endpoint != "" {
		endpoint = options.Endpoint
	}

	userAgent := "geomap/unknown"
	if options.UserAgent != "" {
		userAgent = options.UserAgent
	}

	transport := options.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	if options.EnableHTTPTrace {
		transport = &httputils.TracingRoundTripper{
			Transport: transport,
			Logger:    logger.Named("http"),
			DumpBody:  options.EnableHTTPBodyTrace,
			Redact:    []string{APIKeyHeader},
		}
	}

	headers := map[string]string{"User-Agent": userAgent}
	if options.APIKey != "" {
		headers[APIKeyHeader] = options.APIKey
	}

	return &Client{
		endpoint:   endpoint,
		configured: options.APIKey != "",
		// No client timeout: the caller's context bounds the request.
		httpClient: &http.Client{
			Transport: &httputils.HeaderRoundTripper{
				Transport: transport,
				Headers:   headers,
			},
		},
		logger: logger,
	}
}

// Geocode sends text to the provider and returns the decoded JSON payload
// without interpreting it.
func (c *Client) Geocode(ctx context.Context, text string) (any, error) {
	if !c.configured {
		c.logger.Error("GEOCACHE_API_KEY is not configured")

		return nil, newError(ErrorTypeConfiguration, MsgConfiguration)
	}

	body, err := json.Marshal(geocodeRequest{Text: text})
	if err != nil {
		return nil, eris.Wrap(err, "geocache: encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "geocache: build request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocache: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("geocache API error response",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", errorBody),
		)

		return nil, ClassifyHTTPError(resp.StatusCode, string(errorBody))
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, eris.Wrap(err, "geocache: decode response")
	}

	return payload, nil
}
