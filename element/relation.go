// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/geom"
	"github.com/aclements/go-chartgeom/graph"
	"github.com/aclements/go-chartgeom/layout"
)

// MaxRelationNodes is the node count above which relation graphs are
// laid out on a grid regardless of Layout.
const MaxRelationNodes = 1000

// Relation draws a node-link diagram. Each row is an edge from the
// value of the first dimension to the value of the second.
type Relation struct {
	Base

	Layout layout.GraphMode
}

// NewRelation returns a relation element with edges from the column
// source to the column target.
func NewRelation(mode layout.GraphMode, source, target string, vars ...string) *Relation {
	e := &Relation{Layout: mode}
	e.Dims = []string{source, target}
	e.Vars = append([]string(nil), vars...)
	return e
}

func (e *Relation) CreateGeometry(data dataset.DataSet, g *graph.Graph) error {
	return create(e, data, g)
}

func (e *Relation) Clone() Element {
	e2 := *e
	e2.Base = e.Base.clone()
	return &e2
}

func (e *Relation) build(rc *renderContext) error {
	if len(e.Dims) != 2 {
		return fmt.Errorf("relation needs 2 dimensions, have %d", len(e.Dims))
	}
	e.begin(rc, rc.in)

	var nodes []*geom.Node
	ids := make(map[string]int)
	node := func(row int, dim string) int {
		v := rc.value(dim, row)
		id := fmt.Sprint(v)
		if i, ok := ids[id]; ok {
			return i
		}
		n := &geom.Node{ID: id, Value: v, Size: 1, Index: rc.index(row, dim), Aes: e.aes(rc, row)}
		if e.Size != nil {
			n.Size = n.Aes.Size
		}
		ids[id] = len(nodes)
		nodes = append(nodes, n)
		return len(nodes) - 1
	}

	type pair struct{ from, to int }
	seen := make(map[pair]bool)
	var edges []layout.Edge
	var gedges []*geom.Edge
	for row := rc.start; row < rc.end; row++ {
		if dataset.IsNull(rc.value(e.Dims[0], row)) || dataset.IsNull(rc.value(e.Dims[1], row)) {
			continue
		}
		from, to := node(row, e.Dims[0]), node(row, e.Dims[1])
		if seen[pair{from, to}] || seen[pair{to, from}] {
			continue
		}
		seen[pair{from, to}] = true
		w := 1.0
		var col string
		if len(e.Vars) > 0 {
			col = e.Vars[0]
			if x := rc.float(col, row); !math.IsNaN(x) {
				w = x
			}
		}
		edges = append(edges, layout.Edge{From: from, To: to})
		gedges = append(gedges, &geom.Edge{
			From:   nodes[from].ID,
			To:     nodes[to].ID,
			Weight: w,
			Index:  rc.index(row, col),
		})
	}

	mode := e.Layout
	if len(nodes) > MaxRelationNodes && mode != layout.Grid {
		slog.Debug("relation graph too large, using grid layout", "nodes", len(nodes), "layout", mode)
		mode = layout.Grid
	}
	pts := layout.LayoutGraph(len(nodes), edges, mode)
	for i, n := range nodes {
		n.X, n.Y = pts[i].X, pts[i].Y
		rc.emit(n)
	}
	for i, ge := range gedges {
		p1, p2 := pts[edges[i].From], pts[edges[i].To]
		ge.X1, ge.Y1, ge.X2, ge.Y2 = p1.X, p1.Y, p2.X, p2.Y
		rc.emit(ge)
	}
	return nil
}
