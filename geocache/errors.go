// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

package geocache

import (
	"errors"
	"fmt"
	"net/http"
)

// User-facing messages. None of them carries provider output.
const (
	MsgQueryRequired   = "Query parameter is required"
	MsgQueryEmpty      = "Query cannot be empty"
	MsgQueryTooLong    = "Query exceeds maximum length of 512 characters"
	MsgConfiguration   = "Server configuration error"
	MsgAuthFailure     = "Authentication failed"
	MsgRateLimited     = "Rate limit exceeded. Please try again later."
	MsgProviderFailure = "Failed to fetch location data"
	MsgEmptyResult     = "No location data found"
	MsgUnexpected      = "An unexpected error occurred"
)

// GeocodingError is an error with a known place in the proxy's error contract.
type GeocodingError struct {
	Type    ErrorType
	Message string
	// StatusCode is the upstream HTTP status, when the error came from the provider.
	StatusCode int
	Err        error
}

// ErrorType classifies geocoding errors.
type ErrorType int

const (
	// ErrorTypeUnexpected catch-all, reported as 500.
	ErrorTypeUnexpected ErrorType = iota
	// ErrorTypeInvalidInput the caller sent an unusable query.
	ErrorTypeInvalidInput
	// ErrorTypeConfiguration the server credential is missing.
	ErrorTypeConfiguration
	// ErrorTypeAuthFailure the provider rejected the server credential.
	ErrorTypeAuthFailure
	// ErrorTypeRateLimited the provider is throttling us.
	ErrorTypeRateLimited
	// ErrorTypeProvider any other non-success provider status.
	ErrorTypeProvider
	// ErrorTypeEmptyResult the provider answered but no candidate was usable.
	ErrorTypeEmptyResult
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeUnexpected:    "UnexpectedError",
	ErrorTypeInvalidInput:  "InvalidInput",
	ErrorTypeConfiguration: "ConfigurationError",
	ErrorTypeAuthFailure:   "AuthFailure",
	ErrorTypeRateLimited:   "RateLimited",
	ErrorTypeProvider:      "ProviderError",
	ErrorTypeEmptyResult:   "EmptyResult",
}

func (t ErrorType) String() string {
	if name, ok := errorTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("ErrorType(%d)", int(t))
}

func (e *GeocodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *GeocodingError) Unwrap() error {
	return e.Err
}

// HTTPStatus is the status the proxy answers with for this error.
func (e *GeocodingError) HTTPStatus() int {
	switch e.Type {
	case ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case ErrorTypeRateLimited:
		return http.StatusTooManyRequests
	case ErrorTypeEmptyResult:
		return http.StatusBadGateway
	case ErrorTypeProvider:
		// A pass-through of 1xx/2xx/3xx would not be an error response.
		if e.StatusCode >= http.StatusBadRequest && e.StatusCode <= 599 {
			return e.StatusCode
		}

		return http.StatusBadGateway
	case ErrorTypeConfiguration, ErrorTypeAuthFailure, ErrorTypeUnexpected:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func newError(t ErrorType, msg string) *GeocodingError {
	return &GeocodingError{Type: t, Message: msg}
}

func errorType(err error) (ErrorType, bool) {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type, true
	}

	return ErrorTypeUnexpected, false
}

// IsRateLimitError reports whether err is a provider rate limit.
func IsRateLimitError(err error) bool {
	t, ok := errorType(err)

	return ok && t == ErrorTypeRateLimited
}

// IsAuthFailure reports whether the provider rejected the server credential.
func IsAuthFailure(err error) bool {
	t, ok := errorType(err)

	return ok && t == ErrorTypeAuthFailure
}

// IsConfigurationError reports whether err is a deployment problem.
func IsConfigurationError(err error) bool {
	t, ok := errorType(err)

	return ok && t == ErrorTypeConfiguration
}

// IsInvalidInput reports whether err was caused by the caller's query.
func IsInvalidInput(err error) bool {
	t, ok := errorType(err)

	return ok && t == ErrorTypeInvalidInput
}

// AsGeocodingError returns err as a *GeocodingError. Errors outside the
// taxonomy become ErrorTypeUnexpected wrapping the original.
func AsGeocodingError(err error) *GeocodingError {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr
	}

	return &GeocodingError{Type: ErrorTypeUnexpected, Message: MsgUnexpected, Err: err}
}

// ClassifyHTTPError maps a non-success provider status to a geocoding
// error. The body is deliberately not part of the result.
func ClassifyHTTPError(statusCode int, _ string) *GeocodingError {
	switch statusCode {
	case http.StatusUnauthorized: // 401
		return &GeocodingError{
			Type:       ErrorTypeAuthFailure,
			Message:    MsgAuthFailure,
			StatusCode: statusCode,
		}
	case http.StatusTooManyRequests: // 429
		return &GeocodingError{
			Type:       ErrorTypeRateLimited,
			Message:    MsgRateLimited,
			StatusCode: statusCode,
		}
	default:
		return &GeocodingError{
			Type:       ErrorTypeProvider,
			Message:    MsgProviderFailure,
			StatusCode: statusCode,
		}
	}
}
