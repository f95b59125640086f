// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset provides the tabular data abstraction consumed by
// graph elements.
//
// A DataSet is a grid of cells addressed by column and row. Views
// such as Sorted and Sub reorder or restrict the rows of another
// DataSet while remembering how each of their rows maps back to the
// root DataSet. Optional behavior is exposed through small capability
// interfaces (RootMapper, BaseMapper, CalcRowCounter, ...), which
// consumers discover with interface assertions rather than by
// checking for concrete view types.
package dataset

import (
	"math"
	"reflect"
	"time"
)

// DataSet is a rectangular table of values.
type DataSet interface {
	// Value returns the cell at col, row. A missing value is
	// nil.
	Value(col, row int) interface{}

	// RowCount returns the number of rows, including any
	// trailing calc rows.
	RowCount() int

	// ColCount returns the number of columns.
	ColCount() int

	// Header returns the name of column col.
	Header(col int) string

	// IndexOfHeader returns the index of the column named name,
	// or -1 if there is no such column.
	IndexOfHeader(name string) int

	// Comparator returns the comparator configured for col, or
	// nil if the column uses its natural order.
	Comparator(col int) Comparator

	// IsMeasure reports whether col holds measure (numeric
	// value) data rather than dimension data.
	IsMeasure(col int) bool
}

// RootMapper is implemented by views that can map their rows and
// columns to the root DataSet they were derived from.
type RootMapper interface {
	RootRow(row int) int
	RootCol(col int) int
}

// BaseMapper is implemented by views that can map their rows to the
// rows of the DataSet they directly wrap.
type BaseMapper interface {
	BaseRow(row int) int
}

// CalcRowCounter is implemented by DataSets that carry calc rows
// (for example projected trend rows) after their nominal rows.
type CalcRowCounter interface {
	CalcRowCount() int
}

// Wrapper is implemented by views over another DataSet.
type Wrapper interface {
	Unwrap() DataSet
}

// NullIncluder is implemented by DataSets that flag rows whose
// missing values are still meaningful, such as brushed rows. Such
// rows are plotted even when a value does not scale.
type NullIncluder interface {
	IncludeNull(row int) bool
}

// CalcPreparer is implemented by DataSets with calculated columns.
// PrepareCalc computes col over rows, in the given order, before the
// values are read. measure reports whether col is read as a measure.
type CalcPreparer interface {
	PrepareCalc(col string, rows []int, measure bool)
}

// RootRow maps row of data to a row of its root DataSet.
func RootRow(data DataSet, row int) int {
	if m, ok := data.(RootMapper); ok {
		return m.RootRow(row)
	}
	return row
}

// RootCol maps col of data to a column of its root DataSet.
func RootCol(data DataSet, col int) int {
	if m, ok := data.(RootMapper); ok {
		return m.RootCol(col)
	}
	return col
}

// BaseRow maps row of data to a row of the DataSet it wraps, or
// returns row if data is not a view.
func BaseRow(data DataSet, row int) int {
	if m, ok := data.(BaseMapper); ok {
		return m.BaseRow(row)
	}
	return row
}

// CalcRowCount returns the number of trailing calc rows of data. A
// view that does not count calc rows itself borrows the count of the
// DataSet it wraps.
func CalcRowCount(data DataSet) int {
	for data != nil {
		if c, ok := data.(CalcRowCounter); ok {
			return c.CalcRowCount()
		}
		w, ok := data.(Wrapper)
		if !ok {
			break
		}
		data = w.Unwrap()
	}
	return 0
}

// NominalRowCount returns the number of rows of data excluding
// trailing calc rows.
func NominalRowCount(data DataSet) int {
	n := data.RowCount() - CalcRowCount(data)
	if n < 0 {
		return 0
	}
	return n
}

// IsCalcRow reports whether row is one of the trailing calc rows of
// data.
func IsCalcRow(data DataSet, row int) bool {
	return row >= NominalRowCount(data) && row < data.RowCount()
}

// Root returns the innermost DataSet wrapped by data.
func Root(data DataSet) DataSet {
	for {
		w, ok := data.(Wrapper)
		if !ok {
			return data
		}
		data = w.Unwrap()
	}
}

// Float converts a cell value to a float64. It reports false for nil
// and for non-numeric values. time.Time values convert to Unix
// seconds.
func Float(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case nil:
		return math.NaN(), false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case time.Time:
		return float64(v.UnixNano()) / 1e9, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	}
	return math.NaN(), false
}

// IsNull reports whether v is a missing value: nil or a NaN float.
func IsNull(v interface{}) bool {
	switch v := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	}
	return false
}
