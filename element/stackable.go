// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

import (
	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/scale"
)

// Stackable is the base of elements that stack or dodge. It sorts
// its data before building geometry so stacked and dodged geometry
// lines up.
type Stackable struct {
	Base

	// StackGroup stacks each dimension group separately rather
	// than stacking by the last dimension alone.
	StackGroup bool

	// NegGroup stacks negative values separately, downward from
	// the base.
	NegGroup bool
}

func (e *Stackable) clone() Stackable {
	e2 := *e
	e2.Base = e.Base.clone()
	return e2
}

// sortKeys returns the sort keys for data, most significant first:
//
//  1. the last dimension, by the data's comparator for the column or
//     else by mapped scale value, NaN first;
//  2. each categorical frame field that is not a dimension, in the
//     order color, line, texture, shape, size, text;
//  3. each other column of data with an explicit comparator.
//
// When stacking, a column ordered by value is followed directly by a
// natural order key on the same column, so rows of the same category
// stay adjacent when categories tie on value.
func (e *Stackable) sortKeys(rc *renderContext, data dataset.DataSet) ([]dataset.SortKey, error) {
	var keys []dataset.SortKey
	used := make(map[int]bool)
	add := func(col int, cmp dataset.Comparator) {
		if col < 0 || used[col] {
			return
		}
		used[col] = true
		keys = append(keys, dataset.SortKey{Col: col, Cmp: cmp})
		if e.Stack() && cmp != nil && dataset.IsValueOrdered(cmp) {
			keys = append(keys, dataset.SortKey{Col: col, Cmp: dataset.Natural})
		}
	}

	if n := len(e.Dims); n > 0 {
		last := e.Dims[n-1]
		if col := data.IndexOfHeader(last); col >= 0 {
			cmp := data.Comparator(col)
			if cmp == nil {
				s, err := rc.scale(last)
				if err != nil {
					return nil, err
				}
				cmp = byScale(s)
			}
			add(col, cmp)
		}
	}

	dims := make(map[string]bool)
	for _, d := range e.Dims {
		dims[d] = true
	}
	for _, f := range e.Frames() {
		if dims[f.Field()] || !f.Categorical(data) {
			continue
		}
		if col := data.IndexOfHeader(f.Field()); col >= 0 {
			add(col, data.Comparator(col))
		}
	}

	for col := 0; col < data.ColCount(); col++ {
		if cmp := data.Comparator(col); cmp != nil {
			add(col, cmp)
		}
	}
	return keys, nil
}

// sortData returns data sorted for stacking, or data itself if there
// is nothing to sort by.
func (e *Stackable) sortData(rc *renderContext, data dataset.DataSet) (dataset.DataSet, error) {
	keys, err := e.sortKeys(rc, data)
	if err != nil || len(keys) == 0 {
		return data, err
	}
	return dataset.NewSorted(data, keys...), nil
}

// positionKey identifies the stack of row: all dimensions when
// stacking by group, otherwise the last dimension.
func (e *Stackable) positionKey(rc *renderContext, row int) string {
	n := len(e.Dims)
	switch {
	case n == 0:
		return ""
	case e.StackGroup:
		return rc.key(e.Dims, row)
	}
	return rc.key(e.Dims[n-1:], row)
}

// byScale orders values by their mapped position on s. Values that do
// not map sort first.
func byScale(s scale.Scale) dataset.Comparator {
	return dataset.ComparatorFunc(func(a, b interface{}) int {
		return dataset.CompareFloats(s.Map(a), s.Map(b))
	})
}
