// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

import (
	"fmt"
	"math"

	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/geom"
	"github.com/aclements/go-chartgeom/graph"
	"github.com/aclements/go-moremath/vec"
)

// Mekko draws a marimekko chart: one column per value of the first
// dimension, as wide as its share of the total, divided into
// segments by the second dimension, each as tall as its share of the
// column. Negative and missing values are skipped.
type Mekko struct {
	Base
}

// NewMekko returns a mekko element with columns from x, segments from
// segment and sizes from v. An empty segment draws one segment per
// row.
func NewMekko(x, segment, v string) *Mekko {
	e := &Mekko{}
	e.Dims = []string{x}
	if segment != "" {
		e.Dims = append(e.Dims, segment)
	}
	e.Vars = []string{v}
	return e
}

func (e *Mekko) CreateGeometry(data dataset.DataSet, g *graph.Graph) error {
	return create(e, data, g)
}

func (e *Mekko) Clone() Element {
	e2 := *e
	e2.Base = e.Base.clone()
	return &e2
}

type mekkoColumn struct {
	value interface{}
	bars  []*geom.MekkoBar
	sizes []float64
}

func (e *Mekko) build(rc *renderContext) error {
	if len(e.Dims) == 0 || len(e.Vars) != 1 {
		return fmt.Errorf("mekko needs a dimension and one variable, have %d and %d", len(e.Dims), len(e.Vars))
	}
	e.begin(rc, sortByDims(rc.in, e.Dims[:1]))

	var cols []*mekkoColumn
	byKey := make(map[string]*mekkoColumn)
	name := e.Vars[0]
	for row := rc.start; row < rc.end; row++ {
		v := rc.float(name, row)
		if math.IsNaN(v) || v < 0 {
			continue
		}
		k := rc.key(e.Dims[:1], row)
		c := byKey[k]
		if c == nil {
			c = &mekkoColumn{value: rc.value(e.Dims[0], row)}
			byKey[k] = c
			cols = append(cols, c)
		}
		bar := &geom.MekkoBar{Column: c.value, Value: v, Index: rc.index(row, name), Aes: e.aes(rc, row)}
		if len(e.Dims) > 1 {
			bar.Segment = rc.value(e.Dims[1], row)
		}
		c.bars = append(c.bars, bar)
		c.sizes = append(c.sizes, v)
	}

	totals := make([]float64, len(cols))
	for i, c := range cols {
		totals[i] = vec.Sum(c.sizes)
	}
	total := vec.Sum(totals)
	x := 0.0
	for i, c := range cols {
		w := 0.0
		if total > 0 {
			w = totals[i] / total
		}
		y := 0.0
		for _, bar := range c.bars {
			h := 0.0
			if totals[i] > 0 {
				h = bar.Value / totals[i]
			}
			bar.X0, bar.X1 = x, x+w
			bar.Y0, bar.Y1 = y, y+h
			y += h
			rc.emit(bar)
		}
		x += w
	}
	return nil
}
