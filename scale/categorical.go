// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-gg/generic/slice"
)

// Categorical maps each distinct value to its index, 0 through n-1.
// Values are ordered by first appearance unless a comparator is set.
type Categorical struct {
	fields []string
	values []interface{}
	index  map[interface{}]int

	// Cmp, if non-nil, orders the values found by Init.
	Cmp dataset.Comparator
}

// NewCategorical returns a categorical scale over fields.
func NewCategorical(fields ...string) *Categorical {
	return &Categorical{fields: append([]string(nil), fields...)}
}

func (s *Categorical) String() string {
	return fmt.Sprintf("categorical %v %v", s.fields, s.values)
}

// Init collects the distinct values of s's fields in data.
func (s *Categorical) Init(data dataset.DataSet) {
	var cols []slice.T
	if s.values != nil {
		cols = append(cols, s.values)
	}
	for _, f := range s.fields {
		col := data.IndexOfHeader(f)
		if col < 0 {
			continue
		}
		if s.Cmp == nil {
			s.Cmp = data.Comparator(col)
		}
		vals := make([]interface{}, 0, data.RowCount())
		for row := 0; row < data.RowCount(); row++ {
			if v := data.Value(col, row); v != nil {
				vals = append(vals, v)
			}
		}
		cols = append(cols, vals)
	}
	if len(cols) == 0 {
		return
	}
	vals, _ := slice.NubAppend(cols...).([]interface{})
	if s.Cmp != nil {
		cmp := s.Cmp
		sort.SliceStable(vals, func(i, j int) bool {
			return cmp.Compare(vals[i], vals[j]) < 0
		})
	}
	s.SetValues(vals...)
}

// SetValues sets the ordered values of s.
func (s *Categorical) SetValues(vals ...interface{}) *Categorical {
	s.values = append([]interface{}(nil), vals...)
	s.index = make(map[interface{}]int, len(vals))
	for i, v := range s.values {
		if _, ok := s.index[v]; !ok {
			s.index[v] = i
		}
	}
	return s
}

// Values returns the ordered values of s.
func (s *Categorical) Values() []interface{} {
	return s.values
}

func (s *Categorical) Map(v interface{}) float64 {
	if i, ok := s.index[v]; ok {
		return float64(i)
	}
	return math.NaN()
}

func (s *Categorical) Min() float64 {
	return 0
}

func (s *Categorical) Max() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return float64(len(s.values) - 1)
}

func (s *Categorical) Fields() []string {
	return s.fields
}

func (s *Categorical) Add(from, delta float64) float64 {
	return from + delta
}

// Copy returns an independent copy of s.
func (s *Categorical) Copy() *Categorical {
	s2 := &Categorical{fields: append([]string(nil), s.fields...), Cmp: s.Cmp}
	if s.values != nil {
		s2.SetValues(s.values...)
	}
	return s2
}
