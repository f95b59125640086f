// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

// Sub is a view of the nominal rows [from, to) of a DataSet, followed
// by all of the base's calc rows.
//
// Sub does not implement CalcRowCounter; CalcRowCount borrows the
// count from the wrapped DataSet.
type Sub struct {
	base     DataSet
	from, to int
	calc     int
}

// NewSub returns a view of rows [from, to) of base. The bounds are
// clamped to the nominal rows of base.
func NewSub(base DataSet, from, to int) *Sub {
	nominal := NominalRowCount(base)
	if to > nominal {
		to = nominal
	}
	if from < 0 {
		from = 0
	}
	if from > to {
		from = to
	}
	return &Sub{base, from, to, base.RowCount() - nominal}
}

func (s *Sub) baseRow(row int) int {
	if n := s.to - s.from; row >= n {
		// Calc rows follow the base's nominal rows.
		return s.base.RowCount() - s.calc + (row - n)
	}
	return s.from + row
}

func (s *Sub) Value(col, row int) interface{} {
	return s.base.Value(col, s.baseRow(row))
}

func (s *Sub) RowCount() int                 { return s.to - s.from + s.calc }
func (s *Sub) ColCount() int                 { return s.base.ColCount() }
func (s *Sub) Header(col int) string         { return s.base.Header(col) }
func (s *Sub) IndexOfHeader(name string) int { return s.base.IndexOfHeader(name) }
func (s *Sub) Comparator(col int) Comparator { return s.base.Comparator(col) }
func (s *Sub) IsMeasure(col int) bool        { return s.base.IsMeasure(col) }
func (s *Sub) Unwrap() DataSet               { return s.base }
func (s *Sub) BaseRow(row int) int           { return s.baseRow(row) }
func (s *Sub) RootRow(row int) int           { return RootRow(s.base, s.baseRow(row)) }
func (s *Sub) RootCol(col int) int           { return RootCol(s.base, col) }

func (s *Sub) IncludeNull(row int) bool {
	if n, ok := s.base.(NullIncluder); ok {
		return n.IncludeNull(s.baseRow(row))
	}
	return false
}

func (s *Sub) PrepareCalc(col string, rows []int, measure bool) {
	p, ok := s.base.(CalcPreparer)
	if !ok {
		return
	}
	base := make([]int, len(rows))
	for i, r := range rows {
		base[i] = s.baseRow(r)
	}
	p.PrepareCalc(col, base, measure)
}
