// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coord defines the coordinate systems geometry is laid out
// in.
package coord

import (
	"math"

	gscale "github.com/aclements/go-chartgeom/scale"
	mscale "github.com/aclements/go-moremath/scale"
)

// Coordinate describes the space scaled tuples are projected into.
type Coordinate interface {
	// Name returns a short name for the coordinate, such as
	// "rect".
	Name() string

	// Dims returns the number of axes of the coordinate.
	Dims() int
}

// Rect is a rectangular coordinate with 2 or 3 axes.
type Rect struct {
	N int
}

// NewRect returns a 2-dimensional rectangular coordinate.
func NewRect() *Rect { return &Rect{N: 2} }

// NewRect3D returns a 3-dimensional rectangular coordinate.
func NewRect3D() *Rect { return &Rect{N: 3} }

func (c *Rect) Name() string { return "rect" }
func (c *Rect) Dims() int    { return c.N }

// Polar is a polar coordinate. With one axis it lays tuples out
// around the angle only (pies); with two, angle and radius.
type Polar struct {
	N int

	// Axes is the order of the angular axes for radar charts.
	// Fields not listed follow in element dimension order.
	Axes []string
}

// NewPolar returns a polar coordinate with n axes.
func NewPolar(n int) *Polar { return &Polar{N: n} }

func (c *Polar) Name() string { return "polar" }
func (c *Polar) Dims() int    { return c.N }

// AxisIndex returns the angular position of field among dims.
func (c *Polar) AxisIndex(field string, dims []string) int {
	for i, a := range c.Axes {
		if a == field {
			return i
		}
	}
	n := len(c.Axes)
	for _, d := range dims {
		listed := false
		for _, a := range c.Axes {
			if a == d {
				listed = true
				break
			}
		}
		if listed {
			continue
		}
		if d == field {
			return n
		}
		n++
	}
	return n
}

// Pie3D is a one-axis polar coordinate drawn with depth. Interval
// elements in a Pie3D coordinate build 3D pie geometry.
type Pie3D struct {
	Depth float64
}

func (c *Pie3D) Name() string { return "pie3d" }
func (c *Pie3D) Dims() int    { return 1 }

// Normalize projects the mapped position x of scale s into [0, 1]
// along the axis, honoring reversed scales.
func Normalize(s gscale.Scale, x float64) float64 {
	lo, hi := s.Min(), s.Max()
	if lo == hi || math.IsNaN(x) {
		return 0
	}
	ls := mscale.Linear{Min: lo, Max: hi}
	if lo > hi {
		ls = mscale.Linear{Min: hi, Max: lo}
		return 1 - ls.Map(x)
	}
	return ls.Map(x)
}
