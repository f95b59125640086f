// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"
	"math"

	"github.com/aclements/go-chartgeom/dataset"
	mscale "github.com/aclements/go-moremath/scale"
)

// Linear is a continuous scale that maps a number to itself (negated
// when reversed). Its bounds come from SetMin/SetMax when given and
// otherwise from the data seen by Init and Include.
type Linear struct {
	fields []string

	min, max         float64
	dataMin, dataMax float64

	// Reversed flips the axis direction.
	Reversed bool
}

// NewLinear returns a linear scale over fields.
func NewLinear(fields ...string) *Linear {
	nan := math.NaN()
	return &Linear{
		fields:  append([]string(nil), fields...),
		min:     nan,
		max:     nan,
		dataMin: nan,
		dataMax: nan,
	}
}

func (s *Linear) String() string {
	lo, hi := s.bounds()
	return fmt.Sprintf("linear %v [%g,%g]", s.fields, lo, hi)
}

// SetMin fixes the lower bound of s's domain.
func (s *Linear) SetMin(v float64) *Linear {
	s.min = v
	return s
}

// SetMax fixes the upper bound of s's domain.
func (s *Linear) SetMax(v float64) *Linear {
	s.max = v
	return s
}

// Include expands the data domain of s to include v.
func (s *Linear) Include(v float64) *Linear {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return s
	}
	if math.IsNaN(s.dataMin) {
		s.dataMin, s.dataMax = v, v
	} else {
		s.dataMin = math.Min(s.dataMin, v)
		s.dataMax = math.Max(s.dataMax, v)
	}
	return s
}

// Init expands the data domain of s to the values of its fields in
// data.
func (s *Linear) Init(data dataset.DataSet) {
	lo, hi, ok := measureBounds(data, s.fields, func(float64) bool { return true })
	if ok {
		s.Include(lo)
		s.Include(hi)
	}
}

// bounds returns the value-space domain of s, lo <= hi.
func (s *Linear) bounds() (lo, hi float64) {
	lo, hi = s.min, s.max
	if math.IsNaN(lo) {
		lo = s.dataMin
	}
	if math.IsNaN(hi) {
		hi = s.dataMax
	}
	if math.IsNaN(lo) && math.IsNaN(hi) {
		return -1, 1
	}
	if math.IsNaN(lo) {
		lo = math.Min(0, hi)
	}
	if math.IsNaN(hi) {
		hi = math.Max(0, lo)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

func (s *Linear) Map(v interface{}) float64 {
	x, ok := dataset.Float(v)
	if !ok {
		return math.NaN()
	}
	if s.Reversed {
		return -x
	}
	return x
}

// Unmap returns the value mapped to the position x.
func (s *Linear) Unmap(x float64) float64 {
	if s.Reversed {
		return -x
	}
	return x
}

func (s *Linear) Min() float64 {
	lo, _ := s.bounds()
	return s.Map(lo)
}

func (s *Linear) Max() float64 {
	_, hi := s.bounds()
	return s.Map(hi)
}

func (s *Linear) Fields() []string {
	return s.fields
}

func (s *Linear) Add(from, delta float64) float64 {
	if s.Reversed {
		return from - delta
	}
	return from + delta
}

// Ticks returns at most max major tick values over s's domain.
func (s *Linear) Ticks(max int) []float64 {
	lo, hi := s.bounds()
	ls := mscale.Linear{Min: lo, Max: hi}
	major, _ := ls.Ticks(mscale.TickOptions{Max: max})
	return major
}

// Copy returns an independent copy of s.
func (s *Linear) Copy() *Linear {
	s2 := *s
	s2.fields = append([]string(nil), s.fields...)
	return &s2
}
