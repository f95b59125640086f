// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	glayout "gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in the unit square.
type Point struct {
	X, Y float64
}

// Edge is a directed edge between vertex indexes.
type Edge struct {
	From, To int
}

// GraphMode selects a graph layout.
type GraphMode int

const (
	Circle GraphMode = iota
	Grid
	Tree
	Force
)

var graphModeNames = [...]string{"circle", "grid", "tree", "force"}

func (m GraphMode) String() string {
	if m < 0 || int(m) >= len(graphModeNames) {
		return fmt.Sprintf("GraphMode(%d)", int(m))
	}
	return graphModeNames[m]
}

// ParseGraphMode returns the GraphMode named s.
func ParseGraphMode(s string) (GraphMode, error) {
	for i, name := range graphModeNames {
		if name == s {
			return GraphMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown graph layout %q", s)
}

// LayoutGraph positions n vertices connected by edges using mode.
func LayoutGraph(n int, edges []Edge, mode GraphMode) []Point {
	switch mode {
	case Circle:
		return circle(n)
	case Grid:
		return grid(n)
	case Tree:
		return tree(n, edges)
	case Force:
		return force(n, edges)
	}
	panic(fmt.Sprintf("layout.LayoutGraph: bad mode %v", mode))
}

func circle(n int) []Point {
	pts := make([]Point, n)
	if n == 1 {
		pts[0] = Point{0.5, 0.5}
		return pts
	}
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{0.5 + 0.5*math.Cos(a), 0.5 + 0.5*math.Sin(a)}
	}
	return pts
}

func grid(n int) []Point {
	pts := make([]Point, n)
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols == 0 {
		return pts
	}
	rows := (n + cols - 1) / cols
	for i := range pts {
		pts[i] = Point{
			(float64(i%cols) + 0.5) / float64(cols),
			(float64(i/cols) + 0.5) / float64(rows),
		}
	}
	return pts
}

// tree places vertices in layers by their breadth-first distance
// from the roots. Roots are vertices with no incoming edges, or
// vertex 0 if every vertex has one.
func tree(n int, edges []Edge) []Point {
	out := make([][]int, n)
	indeg := make([]int, n)
	for _, e := range edges {
		out[e.From] = append(out[e.From], e.To)
		indeg[e.To]++
	}
	level := make([]int, n)
	for i := range level {
		level[i] = -1
	}
	var queue []int
	seed := func(v int) {
		if level[v] < 0 {
			level[v] = 0
			queue = append(queue, v)
		}
	}
	for v := 0; v < n; v++ {
		if indeg[v] == 0 {
			seed(v)
		}
	}
	var layers [][]int
	for len(queue) > 0 || hasUnplaced(level) {
		if len(queue) == 0 {
			// Cycle with no root. Start from the first
			// unplaced vertex.
			seed(firstUnplaced(level))
		}
		v := queue[0]
		queue = queue[1:]
		for len(layers) <= level[v] {
			layers = append(layers, nil)
		}
		layers[level[v]] = append(layers[level[v]], v)
		for _, w := range out[v] {
			if level[w] < 0 {
				level[w] = level[v] + 1
				queue = append(queue, w)
			}
		}
	}
	pts := make([]Point, n)
	for d, layer := range layers {
		for i, v := range layer {
			pts[v] = Point{
				(float64(i) + 0.5) / float64(len(layer)),
				(float64(d) + 0.5) / float64(len(layers)),
			}
		}
	}
	return pts
}

func hasUnplaced(level []int) bool { return firstUnplaced(level) >= 0 }

func firstUnplaced(level []int) int {
	for v, l := range level {
		if l < 0 {
			return v
		}
	}
	return -1
}

// force runs an Eades force-directed layout and normalizes the
// result into the unit square.
func force(n int, edges []Edge) []Point {
	if n <= 1 {
		return circle(n)
	}
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for _, e := range edges {
		if e.From == e.To || g.HasEdgeBetween(int64(e.From), int64(e.To)) {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(e.From), simple.Node(e.To)))
	}
	eades := glayout.EadesR2{Repulsion: 1, Rate: 0.05, Updates: 30, Theta: 0.2, Src: rand.NewSource(1)}
	o := glayout.NewOptimizerR2(g, eades.Update)
	for o.Update() {
	}

	vs := make([]r2.Vec, n)
	lo := r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	hi := r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for i := range vs {
		v := o.Coord2(int64(i))
		vs[i] = v
		lo = r2.Vec{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y)}
		hi = r2.Vec{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y)}
	}
	span := math.Max(hi.X-lo.X, hi.Y-lo.Y)
	pts := make([]Point, n)
	for i, v := range vs {
		if span == 0 {
			pts[i] = Point{0.5, 0.5}
			continue
		}
		pts[i] = Point{(v.X - lo.X) / span, (v.Y - lo.Y) / span}
	}
	return pts
}
