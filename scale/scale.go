// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale maps data values to the scaled coordinate space
// graph elements position geometry in.
package scale

import (
	"math"

	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-moremath/stats"
)

// A Scale maps raw data values to positions in a scaled space.
//
// Positions returned by Map are in "mapped space". Differences
// between mapped positions are mapped-space deltas and must never be
// passed back to Add, which expects a raw value delta.
type Scale interface {
	// Map returns the mapped position of v, or NaN if v cannot be
	// mapped.
	Map(v interface{}) float64

	// Min and Max return the mapped bounds of the scale in axis
	// order. For a reversed scale Min is greater than Max.
	Min() float64
	Max() float64

	// Fields returns the columns this scale maps.
	Fields() []string

	// Add adds the raw value delta to the mapped position from
	// and returns the resulting mapped position.
	Add(from, delta float64) float64
}

// Initer is implemented by scales that derive their domain from data.
type Initer interface {
	Init(data dataset.DataSet)
}

// Lo returns the smaller of s's bounds.
func Lo(s Scale) float64 {
	return math.Min(s.Min(), s.Max())
}

// Hi returns the larger of s's bounds.
func Hi(s Scale) float64 {
	return math.Max(s.Min(), s.Max())
}

// Clip clamps the mapped position x into the bounds of s. NaN clips
// to the lower bound.
func Clip(s Scale, x float64) float64 {
	lo, hi := Lo(s), Hi(s)
	switch {
	case math.IsNaN(x):
		return lo
	case x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}

// HasField reports whether s maps field.
func HasField(s Scale, field string) bool {
	for _, f := range s.Fields() {
		if f == field {
			return true
		}
	}
	return false
}

// measureBounds returns the bounds of the numeric values of fields in
// data, skipping NaNs and infinities. ok is false if there are none.
func measureBounds(data dataset.DataSet, fields []string, keep func(float64) bool) (lo, hi float64, ok bool) {
	var xs []float64
	for _, f := range fields {
		col := data.IndexOfHeader(f)
		if col < 0 {
			continue
		}
		for row := 0; row < data.RowCount(); row++ {
			x, isNum := dataset.Float(data.Value(col, row))
			if !isNum || math.IsNaN(x) || math.IsInf(x, 0) || !keep(x) {
				continue
			}
			xs = append(xs, x)
		}
	}
	if len(xs) == 0 {
		return 0, 0, false
	}
	lo, hi = stats.Bounds(xs)
	return lo, hi, true
}
