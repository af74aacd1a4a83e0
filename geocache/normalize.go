// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

package geocache

import (
	"github.com/jcodagnone/geomap/spatial"
)

// Result is the normalized geocoding answer served to the UI. Every field is
// always present except BBox, which is omitted unless the provider sent a
// valid one.
type Result struct {
	Input         Input          `json:"input"`
	NormalizedKey string         `json:"normalizedKey"`
	Canonical     Canonical      `json:"canonical"`
	Granularity   string         `json:"granularity"`
	Confidence    float64        `json:"confidence"`
	Flags         map[string]any `json:"flags"`
	Provider      string         `json:"provider"`
	Cache         Cache          `json:"cache"`
	Point         *spatial.Point `json:"point"`
	BBox          *spatial.BBox  `json:"bbox,omitempty"`
}

// Input echoes the query the result answers.
type Input struct {
	Raw string `json:"raw"`
}

// Canonical holds the human-readable address components.
type Canonical struct {
	CountryIso2 string `json:"countryIso2"`
	CountryName string `json:"countryName"`
	DisplayName string `json:"displayName"`
	Admin1      string `json:"admin1"`
	City        string `json:"city"`
}

// Cache is the provider's own cache report, passed through as is.
type Cache struct {
	Hit bool `json:"hit"`
}

// Normalize maps a decoded provider payload to a Result. The payload is
// either one candidate object or an array of them; it returns nil when there
// is no object to work with. Normalize does not modify payload.
func Normalize(payload any, rawQuery string) *Result {
	candidate := selectCandidate(payload)
	if candidate == nil {
		return nil
	}

	canonical := field(candidate, "canonical")
	confidence, _ := asFiniteNumber(candidate["confidence"])

	return &Result{
		Input:         Input{Raw: echoedInput(candidate["input"], rawQuery)},
		NormalizedKey: asString(candidate["normalizedKey"], ""),
		Canonical: Canonical{
			CountryIso2: asString(canonical["countryIso2"], ""),
			CountryName: asString(canonical["countryName"], ""),
			DisplayName: asString(canonical["displayName"], ""),
			Admin1:      asString(canonical["admin1"], ""),
			City:        asString(canonical["city"], ""),
		},
		Granularity: asString(candidate["granularity"], ""),
		Confidence:  confidence,
		Flags:       asFlags(candidate["flags"]),
		Provider:    asString(candidate["provider"], ""),
		Cache:       Cache{Hit: asBool(field(candidate, "cache")["hit"], false)},
		Point:       asPoint(candidate["point"]),
		BBox:        asBBox(candidate["bbox"]),
	}
}

// selectCandidate picks the first object with a usable point, falling back
// to the first object when none has one.
func selectCandidate(payload any) record {
	if r, ok := asRecord(payload); ok {
		return r
	}

	items, ok := payload.([]any)
	if !ok {
		return nil
	}

	var fallback record

	for _, item := range items {
		r, ok := asRecord(item)
		if !ok {
			continue
		}

		if asPoint(r["point"]) != nil {
			return r
		}

		if fallback == nil {
			fallback = r
		}
	}

	return fallback
}

// echoedInput prefers the provider's echo of the query ({"raw": "..."} or a
// bare string) over the caller's.
func echoedInput(v any, rawQuery string) string {
	if s := asString(v, ""); s != "" {
		return s
	}

	if r, ok := asRecord(v); ok {
		if s := asString(r["raw"], ""); s != "" {
			return s
		}
	}

	return rawQuery
}
