// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import "slices"

// SortKey orders rows by the values of column Col. A nil Cmp uses
// the column's configured comparator, or Natural.
type SortKey struct {
	Col int
	Cmp Comparator
}

// Sorted is a view of a DataSet with its nominal rows stably sorted.
// Calc rows of the base are kept after the sorted rows in their
// original order.
type Sorted struct {
	base DataSet
	keys []SortKey
	rows []int
}

// NewSorted returns a view of base sorted by keys, most significant
// first. Rows that compare equal under all keys keep their base
// order.
func NewSorted(base DataSet, keys ...SortKey) *Sorted {
	n := base.RowCount()
	nominal := NominalRowCount(base)
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	keys = append([]SortKey(nil), keys...)
	for i := range keys {
		if keys[i].Cmp == nil {
			keys[i].Cmp = base.Comparator(keys[i].Col)
		}
		if keys[i].Cmp == nil {
			keys[i].Cmp = Natural
		}
	}
	slices.SortStableFunc(rows[:nominal], func(a, b int) int {
		for _, k := range keys {
			if c := k.Cmp.Compare(base.Value(k.Col, a), base.Value(k.Col, b)); c != 0 {
				return c
			}
		}
		return 0
	})
	return &Sorted{base, keys, rows}
}

// Keys returns the sort keys of s.
func (s *Sorted) Keys() []SortKey {
	return s.keys
}

func (s *Sorted) Value(col, row int) interface{} {
	return s.base.Value(col, s.rows[row])
}

func (s *Sorted) RowCount() int                 { return len(s.rows) }
func (s *Sorted) ColCount() int                 { return s.base.ColCount() }
func (s *Sorted) Header(col int) string         { return s.base.Header(col) }
func (s *Sorted) IndexOfHeader(name string) int { return s.base.IndexOfHeader(name) }
func (s *Sorted) Comparator(col int) Comparator { return s.base.Comparator(col) }
func (s *Sorted) IsMeasure(col int) bool        { return s.base.IsMeasure(col) }
func (s *Sorted) Unwrap() DataSet               { return s.base }
func (s *Sorted) BaseRow(row int) int           { return s.rows[row] }
func (s *Sorted) RootRow(row int) int           { return RootRow(s.base, s.rows[row]) }
func (s *Sorted) RootCol(col int) int           { return RootCol(s.base, col) }
func (s *Sorted) CalcRowCount() int             { return CalcRowCount(s.base) }

func (s *Sorted) IncludeNull(row int) bool {
	if n, ok := s.base.(NullIncluder); ok {
		return n.IncludeNull(s.rows[row])
	}
	return false
}

func (s *Sorted) PrepareCalc(col string, rows []int, measure bool) {
	p, ok := s.base.(CalcPreparer)
	if !ok {
		return
	}
	base := make([]int, len(rows))
	for i, r := range rows {
		base[i] = s.rows[r]
	}
	p.PrepareCalc(col, base, measure)
}
