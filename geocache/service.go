// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

// Package geocache resolves free-text location queries through the
// geocache.dev provider and normalizes its answers into a fixed-shape Result.
package geocache

import (
	"context"

	"go.uber.org/zap"
)

// Service validates queries, calls the provider and normalizes the payload.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	provider  Provider
	validator *QueryValidator
	logger    *zap.Logger
}

// NewService creates a Service on top of provider.
func NewService(provider Provider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		provider:  provider,
		validator: NewQueryValidator(),
		logger:    logger,
	}
}

// Lookup resolves query. query is typed any because it comes from a decoded
// JSON body; only non-empty strings are accepted. Returned errors are
// *GeocodingError for every expected failure.
func (s *Service) Lookup(ctx context.Context, query any) (*Result, error) {
	q, err := s.validator.Validate(query)
	if err != nil {
		return nil, err
	}

	payload, err := s.provider.Geocode(ctx, q)
	if err != nil {
		if _, ok := errorType(err); !ok {
			s.logger.Error("geocache request failed", zap.Error(err))
		}

		return nil, err
	}

	result := Normalize(payload, q)
	if result == nil {
		s.logger.Warn("geocache returned no usable candidate", zap.String("query", q))

		return nil, newError(ErrorTypeEmptyResult, MsgEmptyResult)
	}

	if result.Point != nil {
		s.logger.Debug("geocoded", zap.String("query", q), zap.Stringer("point", result.Point))
	} else {
		s.logger.Debug("geocoded without point", zap.String("query", q))
	}

	return result, nil
}
