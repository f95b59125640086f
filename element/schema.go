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
)

// A SchemaPainter draws one row of a schema element from a fixed set
// of variables.
type SchemaPainter interface {
	// Name identifies the painter in emitted geometry.
	Name() string

	// Vars returns the variable columns the painter draws, in
	// tuple order.
	Vars() []string
}

// Candle paints candlestick bars.
type Candle struct {
	Open, High, Low, Close string
}

func (p Candle) Name() string   { return "candle" }
func (p Candle) Vars() []string { return []string{p.Open, p.High, p.Low, p.Close} }

// Stock paints high-low-close bars.
type Stock struct {
	High, Low, Close string
}

func (p Stock) Name() string   { return "stock" }
func (p Stock) Vars() []string { return []string{p.High, p.Low, p.Close} }

// BoxPlot paints box and whisker plots.
type BoxPlot struct {
	Min, Q1, Median, Q3, Max string
}

func (p BoxPlot) Name() string   { return "boxplot" }
func (p BoxPlot) Vars() []string { return []string{p.Min, p.Q1, p.Median, p.Q3, p.Max} }

// Schema draws each row with a SchemaPainter. Its variables are fixed
// by the painter.
type Schema struct {
	Base

	Painter SchemaPainter
}

// NewSchema returns a schema element over dims drawn by p.
func NewSchema(dims []string, p SchemaPainter) *Schema {
	e := &Schema{Painter: p}
	e.Dims = append([]string(nil), dims...)
	e.Vars = p.Vars()
	return e
}

// AddVar panics: a schema element's variables come from its painter.
func (e *Schema) AddVar(col string) {
	panic("element: AddVar on schema element " + e.Painter.Name())
}

func (e *Schema) CreateGeometry(data dataset.DataSet, g *graph.Graph) error {
	return create(e, data, g)
}

func (e *Schema) Clone() Element {
	e2 := *e
	e2.Base = e.Base.clone()
	return &e2
}

func (e *Schema) build(rc *renderContext) error {
	if want := e.Painter.Vars(); len(e.Vars) != len(want) {
		return fmt.Errorf("%s schema needs %d variables, have %d", e.Painter.Name(), len(want), len(e.Vars))
	}
	e.begin(rc, rc.in)
	n := len(e.Dims)
	for row := rc.start; row < rc.end; row++ {
		tuple, err := e.scaleDims(rc, row)
		if err != nil {
			return err
		}
		if tuple == nil {
			continue
		}
		incl := includeNull(rc.data, row)
		ok := true
		for _, v := range e.Vars {
			x, err := rc.mapValue(v, row)
			if err != nil {
				return err
			}
			if math.IsNaN(x) && !incl {
				ok = false
				break
			}
			tuple = append(tuple, x)
		}
		if !ok {
			continue
		}
		var name string
		if len(tuple) > n {
			name = e.Vars[0]
		}
		rc.emit(&geom.Schema{
			Painter: e.Painter.Name(),
			Tuple:   tuple,
			Index:   rc.index(row, name),
			Aes:     e.aes(rc, row),
		})
	}
	return nil
}
