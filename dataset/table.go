// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"reflect"
	"sync"

	"github.com/aclements/go-gg/table"
)

// Table is a root DataSet backed by a go-gg table.
//
// Columns of numeric element type are measures unless overridden with
// SetMeasure. The last CalcRowCount rows of the table are calc rows.
type Table struct {
	tab     *table.Table
	names   []string
	cols    []reflect.Value
	measure []bool
	comps   []Comparator

	calc []CalcColumn

	mu       sync.RWMutex // protects calcVals
	calcVals []map[int]interface{}

	calcRows int
	brushed  map[int]bool
}

// NewTable returns a DataSet over the columns of t.
func NewTable(t *table.Table) *Table {
	d := &Table{tab: t}
	for _, name := range t.Columns() {
		col := reflect.ValueOf(t.MustColumn(name))
		d.names = append(d.names, name)
		d.cols = append(d.cols, col)
		d.measure = append(d.measure, isNumericKind(col.Type().Elem().Kind()))
		d.comps = append(d.comps, nil)
	}
	return d
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// GGTable returns the go-gg table backing d.
func (d *Table) GGTable() *table.Table {
	return d.tab
}

func (d *Table) Value(col, row int) interface{} {
	if col >= len(d.cols) {
		d.mu.RLock()
		defer d.mu.RUnlock()
		return d.calcVals[col-len(d.cols)][row]
	}
	v := d.cols[col]
	if row < 0 || row >= v.Len() {
		return nil
	}
	return v.Index(row).Interface()
}

func (d *Table) RowCount() int {
	return d.tab.Len()
}

func (d *Table) ColCount() int {
	return len(d.names)
}

func (d *Table) Header(col int) string {
	return d.names[col]
}

func (d *Table) IndexOfHeader(name string) int {
	for i, n := range d.names {
		if n == name {
			return i
		}
	}
	return -1
}

func (d *Table) Comparator(col int) Comparator {
	return d.comps[col]
}

func (d *Table) IsMeasure(col int) bool {
	return d.measure[col]
}

// SetComparator configures the ordering of the named column. It
// returns d for chaining and ignores unknown columns.
func (d *Table) SetComparator(name string, c Comparator) *Table {
	if i := d.IndexOfHeader(name); i >= 0 {
		d.comps[i] = c
	}
	return d
}

// SetMeasure overrides whether the named column is a measure.
func (d *Table) SetMeasure(name string, measure bool) *Table {
	if i := d.IndexOfHeader(name); i >= 0 {
		d.measure[i] = measure
	}
	return d
}

// SetCalcRows marks the last n rows of the table as calc rows.
func (d *Table) SetCalcRows(n int) *Table {
	if n > d.tab.Len() {
		n = d.tab.Len()
	}
	d.calcRows = n
	return d
}

func (d *Table) CalcRowCount() int {
	return d.calcRows
}

// SetIncludeNull flags row as a row whose missing values are still
// plotted.
func (d *Table) SetIncludeNull(row int, include bool) *Table {
	if d.brushed == nil {
		d.brushed = make(map[int]bool)
	}
	d.brushed[row] = include
	return d
}

func (d *Table) IncludeNull(row int) bool {
	return d.brushed[row]
}

// AddCalcColumn appends a calculated column. Its values are computed
// by PrepareCalc and are nil until then.
func (d *Table) AddCalcColumn(c CalcColumn) *Table {
	d.calc = append(d.calc, c)
	d.mu.Lock()
	d.calcVals = append(d.calcVals, make(map[int]interface{}))
	d.mu.Unlock()
	d.names = append(d.names, c.Header())
	d.measure = append(d.measure, true)
	d.comps = append(d.comps, nil)
	return d
}

func (d *Table) PrepareCalc(col string, rows []int, measure bool) {
	i := d.IndexOfHeader(col) - len(d.cols)
	if i < 0 {
		return
	}
	vals := d.calc[i].Calculate(d, rows)
	m := make(map[int]interface{}, len(rows))
	for j, row := range rows {
		m[row] = vals[j]
	}
	d.mu.Lock()
	d.calcVals[i] = m
	d.mu.Unlock()
}
