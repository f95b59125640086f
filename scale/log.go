// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"
	"math"

	"github.com/aclements/go-chartgeom/dataset"
)

// Log is a base-10 logarithmic scale. Non-positive values do not
// map.
//
// Equal value differences map to different mapped-space deltas
// depending on where they are added, so stacking on a Log scale must
// go through Add.
type Log struct {
	fields           []string
	dataMin, dataMax float64

	// Reversed flips the axis direction.
	Reversed bool
}

// NewLog returns a log scale over fields.
func NewLog(fields ...string) *Log {
	return &Log{
		fields:  append([]string(nil), fields...),
		dataMin: math.NaN(),
		dataMax: math.NaN(),
	}
}

func (s *Log) String() string {
	return fmt.Sprintf("log %v [%g,%g]", s.fields, s.dataMin, s.dataMax)
}

// Init sets the domain of s to the positive values of its fields in
// data.
func (s *Log) Init(data dataset.DataSet) {
	lo, hi, ok := measureBounds(data, s.fields, func(x float64) bool { return x > 0 })
	if ok {
		s.dataMin, s.dataMax = lo, hi
	}
}

// SetDomain fixes the domain of s. Both bounds must be positive.
func (s *Log) SetDomain(lo, hi float64) *Log {
	s.dataMin, s.dataMax = math.Min(lo, hi), math.Max(lo, hi)
	return s
}

func (s *Log) mapFloat(x float64) float64 {
	if !(x > 0) {
		return math.NaN()
	}
	m := math.Log10(x)
	if s.Reversed {
		return -m
	}
	return m
}

// Unmap returns the value mapped to the position x.
func (s *Log) Unmap(x float64) float64 {
	if s.Reversed {
		x = -x
	}
	return math.Pow(10, x)
}

func (s *Log) Map(v interface{}) float64 {
	x, ok := dataset.Float(v)
	if !ok {
		return math.NaN()
	}
	return s.mapFloat(x)
}

func (s *Log) domain() (lo, hi float64) {
	lo, hi = s.dataMin, s.dataMax
	if math.IsNaN(lo) {
		return 1, 10
	}
	return lo, hi
}

func (s *Log) Min() float64 {
	lo, _ := s.domain()
	return s.mapFloat(lo)
}

func (s *Log) Max() float64 {
	_, hi := s.domain()
	return s.mapFloat(hi)
}

func (s *Log) Fields() []string {
	return s.fields
}

func (s *Log) Add(from, delta float64) float64 {
	return s.mapFloat(s.Unmap(from) + delta)
}
