// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

import (
	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/geom"
	"github.com/aclements/go-chartgeom/graph"
)

// Polygon draws a closed shape through the rows of each group. Rows
// are grouped by the categorical color, shape, texture and line
// fields and the group dimensions, in the order groups first appear.
// Rows that do not scale are skipped.
type Polygon struct {
	Base
}

// NewPolygon returns a polygon element over dims plotting vars.
func NewPolygon(dims []string, vars ...string) *Polygon {
	e := &Polygon{}
	e.Dims = append([]string(nil), dims...)
	e.Vars = append([]string(nil), vars...)
	return e
}

func (e *Polygon) CreateGeometry(data dataset.DataSet, g *graph.Graph) error {
	return create(e, data, g)
}

func (e *Polygon) Clone() Element {
	e2 := *e
	e2.Base = e.Base.clone()
	return &e2
}

func (e *Polygon) build(rc *renderContext) error {
	e.begin(rc, rc.in)
	breaks := e.breakFields(rc.data)
	polys := make(map[string]*geom.Polygon)
	var order []*geom.Polygon
	for row := rc.start; row < rc.end; row++ {
		var tuple []float64
		var err error
		if len(e.Vars) == 0 {
			tuple, err = e.scaleDims(rc, row)
		} else {
			tuple, err = e.scale(rc, row, 0)
		}
		if err != nil {
			return err
		}
		if tuple == nil {
			continue
		}
		group := rc.key(breaks, row)
		p := polys[group]
		if p == nil {
			p = &geom.Polygon{Group: group, Aes: e.aes(rc, row)}
			polys[group] = p
			order = append(order, p)
		}
		name := ""
		if len(e.Vars) > 0 {
			name = e.Vars[0]
		}
		p.Tuples = append(p.Tuples, tuple)
		p.Idx = append(p.Idx, rc.index(row, name))
	}
	for _, p := range order {
		rc.emit(p)
	}
	return nil
}
