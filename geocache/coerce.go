// Copyright 2025 The Geomap Authors
// SPDX-License-Identifier: Apache-2.0

package geocache

import (
	"encoding/json"
	"maps"

	"github.com/jcodagnone/geomap/spatial"
)

// record is a decoded JSON object.
type record = map[string]any

// asRecord narrows v to a JSON object.
func asRecord(v any) (record, bool) {
	r, ok := v.(map[string]any)

	return r, ok && r != nil
}

// field returns r[key] narrowed to a JSON object, or nil.
func field(r record, key string) record {
	sub, _ := asRecord(r[key])

	return sub
}

// asString returns v when it is a string, def otherwise.
func asString(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}

	return def
}

// asFiniteNumber narrows v to a finite float64. Besides the float64 produced
// by encoding/json, it accepts json.Number and Go numeric types so that
// payloads built in code or decoded with UseNumber behave the same.
func asFiniteNumber(v any) (float64, bool) {
	var f float64

	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}

		f = parsed
	default:
		return 0, false
	}

	if !spatial.IsFinite(f) {
		return 0, false
	}

	return f, true
}

// asBool returns v when it is a boolean, def otherwise.
func asBool(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}

	return def
}

// asPoint extracts {lat, lon} when both are finite numbers.
func asPoint(v any) *spatial.Point {
	r, ok := asRecord(v)
	if !ok {
		return nil
	}

	lat, okLat := asFiniteNumber(r["lat"])
	lon, okLon := asFiniteNumber(r["lon"])

	if !okLat || !okLon {
		return nil
	}

	p, _ := spatial.NewPoint(lat, lon)

	return p
}

// asBBox extracts a bounding box from a JSON array of exactly four finite numbers.
func asBBox(v any) *spatial.BBox {
	var values []float64

	switch arr := v.(type) {
	case []any:
		values = make([]float64, 0, len(arr))

		for _, e := range arr {
			f, ok := asFiniteNumber(e)
			if !ok {
				return nil
			}

			values = append(values, f)
		}
	case []float64:
		values = arr
	default:
		return nil
	}

	b, _ := spatial.NewBBox(values)

	return b
}

// asFlags returns a shallow copy of an object, or an empty map.
func asFlags(v any) map[string]any {
	r, ok := asRecord(v)
	if !ok {
		return map[string]any{}
	}

	return maps.Clone(r)
}
