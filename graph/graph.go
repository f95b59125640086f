// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph holds the state shared by the elements of one chart:
// its scales, coordinate, shared visual frames, the geometry the
// elements emit, and advisories for the user.
package graph

import (
	"slices"
	"sync"

	"github.com/aclements/go-chartgeom/coord"
	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/frame"
	"github.com/aclements/go-chartgeom/geom"
	"github.com/aclements/go-chartgeom/internal/advisory"
	"github.com/aclements/go-chartgeom/scale"
	"golang.org/x/exp/maps"
)

// Graph is safe for concurrent use.
type Graph struct {
	coord coord.Coordinate

	mu     sync.Mutex
	scales map[string]scale.Scale
	frames map[string]frame.Frame
	geoms  []geom.Geometry
	advice advisory.Queue
}

// New returns an empty graph in coordinate c. A nil c is a 2D
// rectangular coordinate.
func New(c coord.Coordinate) *Graph {
	if c == nil {
		c = coord.NewRect()
	}
	return &Graph{
		coord:  c,
		scales: make(map[string]scale.Scale),
		frames: make(map[string]frame.Frame),
	}
}

func (g *Graph) Coordinate() coord.Coordinate {
	return g.coord
}

// SetScale binds s to each of its fields, replacing any scale
// already bound to them.
func (g *Graph) SetScale(s scale.Scale) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, f := range s.Fields() {
		g.scales[f] = s
	}
}

// Scale returns the scale bound to col. It never creates a scale.
func (g *Graph) Scale(col string) (scale.Scale, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.scales[col]
	return s, ok
}

// ResolveScale returns the scale bound to col, creating and binding a
// default scale from data if there is none. created reports whether
// the graph's scale table changed. Measure columns get a linear scale
// spanning the data and 0; other columns get a categorical scale.
//
// ResolveScale returns nil, false if col is not bound and is not a
// column of data.
func (g *Graph) ResolveScale(col string, data dataset.DataSet) (s scale.Scale, created bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok := g.scales[col]; ok {
		return s, false
	}
	idx := data.IndexOfHeader(col)
	if idx < 0 {
		return nil, false
	}
	if data.IsMeasure(idx) {
		l := scale.NewLinear(col)
		l.Init(data)
		l.Include(0)
		s = l
	} else {
		c := scale.NewCategorical(col)
		c.Init(data)
		s = c
	}
	g.scales[col] = s
	return s, true
}

// Fields returns the columns with a bound scale, in sorted order.
func (g *Graph) Fields() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	keys := maps.Keys(g.scales)
	slices.Sort(keys)
	return keys
}

// ShareFrame returns the frame registered with f's share ID,
// registering f if there is none.
func (g *Graph) ShareFrame(f frame.Frame) frame.Frame {
	if f == nil {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if f0, ok := g.frames[f.ShareID()]; ok {
		return f0
	}
	g.frames[f.ShareID()] = f
	return f
}

// AddGeometry appends geometry to the graph.
func (g *Graph) AddGeometry(gs ...geom.Geometry) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.geoms = append(g.geoms, gs...)
}

// Geometries returns the geometry added to the graph, in order.
func (g *Graph) Geometries() []geom.Geometry {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.geoms)
}

// Advise adds a user-visible advisory message. Repeated messages are
// reported once. It reports whether msg was new.
func (g *Graph) Advise(msg string) bool {
	return g.advice.Add(msg)
}

// Advisories returns the advisory messages, in the order they were
// first added.
func (g *Graph) Advisories() []string {
	return g.advice.Messages()
}
