// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"math"

	"github.com/aclements/go-moremath/vec"
)

// CalcColumn is a column computed from other columns over the rows a
// graph element plots. The result depends on the order of rows, so
// running totals follow the plotting order of a sorted view.
type CalcColumn interface {
	Header() string
	// Calculate returns one value per entry of rows.
	Calculate(data DataSet, rows []int) []interface{}
}

func measureValues(data DataSet, col string, rows []int) []float64 {
	xs := make([]float64, len(rows))
	c := data.IndexOfHeader(col)
	for i, row := range rows {
		xs[i] = math.NaN()
		if c < 0 {
			continue
		}
		if f, ok := Float(data.Value(c, row)); ok {
			xs[i] = f
		}
	}
	return xs
}

// RunningTotal accumulates column Of in row order. Missing values
// contribute nothing but still receive the running total.
type RunningTotal struct {
	Name, Of string
}

func (c RunningTotal) Header() string { return c.Name }

func (c RunningTotal) Calculate(data DataSet, rows []int) []interface{} {
	out := make([]interface{}, len(rows))
	sum := 0.0
	for i, x := range measureValues(data, c.Of, rows) {
		if !math.IsNaN(x) {
			sum += x
		}
		out[i] = sum
	}
	return out
}

// PercentOfTotal divides each value of column Of by the total of Of
// over the prepared rows.
type PercentOfTotal struct {
	Name, Of string
}

func (c PercentOfTotal) Header() string { return c.Name }

func (c PercentOfTotal) Calculate(data DataSet, rows []int) []interface{} {
	xs := measureValues(data, c.Of, rows)
	valid := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			valid = append(valid, x)
		}
	}
	total := vec.Sum(valid)
	out := make([]interface{}, len(rows))
	for i, x := range xs {
		if math.IsNaN(x) || total == 0 {
			out[i] = nil
			continue
		}
		out[i] = x / total
	}
	return out
}
