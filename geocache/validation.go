// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

package geocache

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxQueryLength is the longest accepted query, in characters, after trimming.
const MaxQueryLength = 512

var maxQueryTag = "max=" + strconv.Itoa(MaxQueryLength)

// QueryValidator checks free-text queries before they reach the provider.
type QueryValidator struct {
	v *validator.Validate
}

// NewQueryValidator creates a QueryValidator.
func NewQueryValidator() *QueryValidator {
	return &QueryValidator{v: validator.New()}
}

// Validate returns the trimmed query, or an ErrorTypeInvalidInput error.
// The value comes straight from a decoded JSON body, so anything that is
// not a string is rejected. The validator's max rule counts runes.
func (qv *QueryValidator) Validate(query any) (string, error) {
	s, ok := query.(string)
	if !ok || qv.v.Var(s, "required") != nil {
		return "", newError(ErrorTypeInvalidInput, MsgQueryRequired)
	}

	trimmed := strings.TrimSpace(s)
	if qv.v.Var(trimmed, "required") != nil {
		return "", newError(ErrorTypeInvalidInput, MsgQueryEmpty)
	}

	if qv.v.Var(trimmed, maxQueryTag) != nil {
		return "", newError(ErrorTypeInvalidInput, MsgQueryTooLong)
	}

	return trimmed, nil
}
