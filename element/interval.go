// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

import (
	"fmt"
	"math"

	"github.com/aclements/go-chartgeom/coord"
	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/geom"
	"github.com/aclements/go-chartgeom/graph"
	"github.com/aclements/go-chartgeom/scale"
)

// Interval draws bars from a base to each variable's value. In a
// polar coordinate the bars are pie slices or rose petals. In a
// coord.Pie3D coordinate it draws 3D pies.
type Interval struct {
	Stackable

	// Bases holds an optional base column for each variable, in
	// the same order as Vars. An empty name means the bar starts
	// at the mapped position of 0.
	Bases []string
}

// NewInterval returns an interval element over dims plotting vars.
func NewInterval(dims []string, vars ...string) *Interval {
	e := &Interval{}
	e.Dims = append([]string(nil), dims...)
	e.Vars = append([]string(nil), vars...)
	return e
}

func (e *Interval) CreateGeometry(data dataset.DataSet, g *graph.Graph) error {
	return create(e, data, g)
}

func (e *Interval) Clone() Element {
	e2 := &Interval{Stackable: e.Stackable.clone()}
	e2.Bases = append([]string(nil), e.Bases...)
	return e2
}

// baseCol returns the base column of variable v, or "".
func (e *Interval) baseCol(v int) string {
	if v < len(e.Bases) {
		return e.Bases[v]
	}
	return ""
}

func (e *Interval) build(rc *renderContext) error {
	c := rc.g.Coordinate()
	if d := c.Dims(); d < 1 || d > 3 {
		return fmt.Errorf("%w: interval in %d-dimensional %s", ErrUnsupportedCoord, d, c.Name())
	}
	data, err := e.sortData(rc, rc.in)
	if err != nil {
		return err
	}
	e.begin(rc, data)
	if p, ok := c.(*coord.Pie3D); ok {
		return e.create3DPie(rc, p)
	}

	n := len(e.Dims)
	stack := e.Stack()
	st := newStacker(e.NegGroup)
	// Geometry of one outer group is buffered so negative bars
	// paint first and each group paints bottom to top.
	batch := stack && e.StackGroup && n >= 2
	var pending []geom.Geometry
	flush := func() {
		rc.emit(pending...)
		pending = pending[:0]
	}
	lastOuter, haveOuter := "", false

	for row := rc.start; row < rc.end; row++ {
		if batch {
			outer := rc.key(e.Dims[:n-1], row)
			if haveOuter && outer != lastOuter {
				flush()
			}
			lastOuter, haveOuter = outer, true
		}
		for v, name := range e.Vars {
			tuple, err := e.scale(rc, row, v)
			if err != nil {
				return err
			}
			if tuple == nil {
				continue
			}
			s, err := rc.scale(name)
			if err != nil {
				return err
			}
			val := rc.float(name, row)
			if math.IsNaN(val) {
				// Include-null row.
				val = 0
			}

			g := &geom.Interval{Var: name, Tuple: tuple, Index: rc.index(row, name), Aes: e.aes(rc, row)}
			switch bc := e.baseCol(v); {
			case bc != "":
				// An explicit base starts a new stack at
				// the base.
				flush()
				bs, err := rc.scale(bc)
				if err != nil {
					return err
				}
				g.Base = scale.Clip(bs, bs.Map(rc.value(bc, row)))
				tuple[n] = g.Base + getInterval(s, g.Base, val, g.Base, true)
			case stack:
				from, to := st.push(s, e.positionKey(rc, row), val)
				g.Base = from
				tuple[n] = to
			default:
				g.Base = zeroBase(s)
				tuple[n] = g.Base + getInterval(s, g.Base, val, g.Base, true)
			}

			if e.NegGroup && val < 0 {
				pending = append([]geom.Geometry{g}, pending...)
			} else {
				pending = append(pending, g)
			}
		}
	}
	flush()
	return nil
}

// create3DPie builds one 3D pie per variable, stacking the rows of
// each variable around the pie.
func (e *Interval) create3DPie(rc *renderContext, c *coord.Pie3D) error {
	for v, name := range e.Vars {
		s, err := rc.scale(name)
		if err != nil {
			return err
		}
		pie := &geom.Pie3D{Var: name, Depth: c.Depth}
		base := zeroBase(s)
		from := base
		for row := rc.start; row < rc.end; row++ {
			tuple, err := e.scale(rc, row, v)
			if err != nil {
				return err
			}
			val := rc.float(name, row)
			if tuple == nil || !(val >= 0) {
				continue
			}
			to := from + getInterval(s, from, val, base, from == base)
			pie.Slices = append(pie.Slices, geom.PieSlice{
				From:  from,
				To:    to,
				Index: rc.index(row, name),
				Aes:   e.aes(rc, row),
			})
			from = to
		}
		if len(pie.Slices) > 0 {
			rc.emit(pie)
		}
	}
	return nil
}
