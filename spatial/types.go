// Copyright 2025 The Geomap Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"
	"math"
)

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewPoint returns a point when both coordinates are finite numbers.
func NewPoint(lat, lon float64) (*Point, bool) {
	if !IsFinite(lat) || !IsFinite(lon) {
		return nil, false
	}

	return &Point{Lat: lat, Lon: lon}, true
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lon, p.Lat)
}

// BBox is a bounding box as sent by the provider: four finite numbers.
// The order of the corners is whatever the provider uses; it is not
// reinterpreted here.
type BBox [4]float64

// NewBBox returns a bounding box when values holds exactly four finite numbers.
func NewBBox(values []float64) (*BBox, bool) {
	if len(values) != len(BBox{}) {
		return nil, false
	}

	var b BBox

	for i, v := range values {
		if !IsFinite(v) {
			return nil, false
		}

		b[i] = v
	}

	return &b, true
}

// IsFinite reports whether f is neither NaN nor ±Inf.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
