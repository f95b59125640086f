// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

import (
	"errors"
	"math"

	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/geom"
	"github.com/aclements/go-chartgeom/graph"
	"github.com/aclements/go-moremath/vec"
)

// Parabox draws parallel axes, one per dimension, with a box for each
// value on an axis and links carrying the rows between boxes on
// adjacent axes. Box heights and link widths are the total weight of
// their rows, from the first variable or 1 per row.
type Parabox struct {
	Base
}

// NewParabox returns a parabox element with an axis per dim.
func NewParabox(dims []string, vars ...string) *Parabox {
	e := &Parabox{}
	e.Dims = append([]string(nil), dims...)
	e.Vars = append([]string(nil), vars...)
	return e
}

func (e *Parabox) CreateGeometry(data dataset.DataSet, g *graph.Graph) error {
	return create(e, data, g)
}

func (e *Parabox) Clone() Element {
	e2 := *e
	e2.Base = e.Base.clone()
	return &e2
}

func (e *Parabox) weight(rc *renderContext, row int) float64 {
	if len(e.Vars) == 0 {
		return 1
	}
	return rc.float(e.Vars[0], row)
}

func (e *Parabox) build(rc *renderContext) error {
	if len(e.Dims) == 0 {
		return errors.New("parabox needs at least one dimension")
	}
	e.begin(rc, sortByDims(rc.in, e.Dims))

	axes := make([][]*geom.ParaboxBox, len(e.Dims))
	boxes := make([]map[string]*geom.ParaboxBox, len(e.Dims))
	for i := range boxes {
		boxes[i] = make(map[string]*geom.ParaboxBox)
	}
	type linkKey struct {
		axis     int
		from, to string
	}
	var links []*geom.ParaboxLink
	byLink := make(map[linkKey]*geom.ParaboxLink)

	for row := rc.start; row < rc.end; row++ {
		w := e.weight(rc, row)
		if math.IsNaN(w) || w <= 0 {
			continue
		}
		keys := make([]string, len(e.Dims))
		for a, d := range e.Dims {
			keys[a] = rc.key([]string{d}, row)
			b := boxes[a][keys[a]]
			if b == nil {
				b = &geom.ParaboxBox{Axis: a, Value: rc.value(d, row)}
				boxes[a][keys[a]] = b
				axes[a] = append(axes[a], b)
			}
			b.Weight += w
			b.Idx = append(b.Idx, rc.index(row, d))
		}
		for a := 0; a+1 < len(e.Dims); a++ {
			k := linkKey{a, keys[a], keys[a+1]}
			l := byLink[k]
			if l == nil {
				l = &geom.ParaboxLink{
					Axis: a,
					From: boxes[a][keys[a]].Value,
					To:   boxes[a+1][keys[a+1]].Value,
				}
				byLink[k] = l
				links = append(links, l)
			}
			l.Weight += w
			l.Idx = append(l.Idx, rc.index(row, ""))
		}
	}

	for _, bs := range axes {
		ws := make([]float64, len(bs))
		for i, b := range bs {
			ws[i] = b.Weight
		}
		total := vec.Sum(ws)
		y := 0.0
		for _, b := range bs {
			b.Y0 = y
			y += b.Weight / total
			b.Y1 = y
			rc.emit(b)
		}
	}
	for _, l := range links {
		rc.emit(l)
	}
	return nil
}
