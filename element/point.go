// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

import (
	"log/slog"
	"math"

	"github.com/aclements/go-chartgeom/coord"
	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/geom"
	"github.com/aclements/go-chartgeom/graph"
	"github.com/aclements/go-chartgeom/scale"
)

const (
	// DefaultMaxOverlap is the default number of points kept at
	// one location once overlap suppression is active.
	DefaultMaxOverlap = 20

	// overlapThreshold is the number of points above which
	// coincident points are suppressed.
	overlapThreshold = 10000

	// gridCells is the number of location cells along each axis.
	gridCells = 2000
)

// Point draws a point for each row and variable.
type Point struct {
	Stackable

	// StackValue stacks the values of points at the same position,
	// positive and negative values separately.
	StackValue bool

	// WordCloud draws the points as words labeled by the text
	// frame and weighted by the size frame. Word clouds never
	// suppress overlapping points.
	WordCloud bool

	// MaxOverlap is the number of points kept at one location
	// when a render has more than 10,000 points. Zero means
	// DefaultMaxOverlap.
	MaxOverlap int
}

// NewPoint returns a point element over dims plotting vars.
func NewPoint(dims []string, vars ...string) *Point {
	e := &Point{}
	e.Dims = append([]string(nil), dims...)
	e.Vars = append([]string(nil), vars...)
	return e
}

func (e *Point) CreateGeometry(data dataset.DataSet, g *graph.Graph) error {
	return create(e, data, g)
}

func (e *Point) Clone() Element {
	e2 := *e
	e2.Stackable = e.Stackable.clone()
	return &e2
}

func (e *Point) build(rc *renderContext) error {
	data, err := e.sortData(rc, rc.in)
	if err != nil {
		return err
	}
	e.begin(rc, data)

	nvars := max(len(e.Vars), 1)
	maxOverlap := e.MaxOverlap
	if maxOverlap <= 0 {
		maxOverlap = DefaultMaxOverlap
	}
	tr := &pointTracker{
		active: !e.WordCloud && (rc.end-rc.start)*nvars > overlapThreshold,
		max:    maxOverlap,
		counts: make(map[pointLoc]int),
	}
	if tr.active {
		if err := tr.initAxes(rc, e.axisFields()); err != nil {
			return err
		}
	}
	var st *stacker
	if e.StackValue {
		st = newStacker(true)
	}

	n := len(e.Dims)
	for row := rc.start; row < rc.end; row++ {
		if len(e.Vars) == 0 {
			tuple, err := e.scaleDims(rc, row)
			if err != nil {
				return err
			}
			if tuple != nil && tr.check(tuple) {
				rc.emit(e.newPoint(rc, row, "", tuple))
			}
			continue
		}
		for v, name := range e.Vars {
			tuple, err := e.scale(rc, row, v)
			if err != nil {
				return err
			}
			if tuple == nil {
				continue
			}
			if st != nil {
				s, err := rc.scale(name)
				if err != nil {
					return err
				}
				val := rc.float(name, row)
				if math.IsNaN(val) {
					val = 0
				}
				key := ""
				if n > 0 {
					key = rc.key(e.Dims[n-1:], row)
				}
				_, tuple[n] = st.push(s, key, val)
			}
			if tr.check(tuple) {
				rc.emit(e.newPoint(rc, row, name, tuple))
			}
		}
	}
	return nil
}

// axisFields returns the columns bound to the tuple positions.
func (e *Point) axisFields() []string {
	fields := append([]string(nil), e.Dims...)
	if len(e.Vars) > 0 {
		// All variables share the last position.
		fields = append(fields, e.Vars[0])
	}
	return fields
}

func (e *Point) newPoint(rc *renderContext, row int, name string, tuple []float64) *geom.Point {
	p := &geom.Point{Tuple: tuple, Index: rc.index(row, name), Aes: e.aes(rc, row)}
	if e.WordCloud {
		p.Weight = 1
		if e.Size != nil {
			if w, ok := e.Size.Weight(rc.value(e.Size.Field(), row)); ok {
				p.Weight = w
			}
		}
	}
	return p
}

// pointLoc is a point position quantized to the location grid.
type pointLoc struct {
	x, y int
}

// pointTracker suppresses coincident points. Each point's last two
// coordinates are quantized to a grid of gridCells cells across each
// axis, and at most max points are kept per cell.
type pointTracker struct {
	active bool
	max    int
	counts map[pointLoc]int
	axes   []scale.Scale
	warned bool
}

func (t *pointTracker) initAxes(rc *renderContext, fields []string) error {
	for _, f := range fields {
		s, err := rc.scale(f)
		if err != nil {
			return err
		}
		t.axes = append(t.axes, s)
	}
	return nil
}

func (t *pointTracker) cell(i int, x float64) int {
	if i < 0 || i >= len(t.axes) {
		return 0
	}
	return int(math.Round(coord.Normalize(t.axes[i], x) * gridCells))
}

// check records the point at tuple and reports whether to keep it.
func (t *pointTracker) check(tuple []float64) bool {
	if !t.active {
		return true
	}
	var loc pointLoc
	switch n := len(tuple); {
	case n >= 2:
		loc = pointLoc{t.cell(n-2, tuple[n-2]), t.cell(n-1, tuple[n-1])}
	case n == 1:
		loc = pointLoc{t.cell(0, tuple[0]), 0}
	}
	t.counts[loc]++
	if t.counts[loc] <= t.max {
		return true
	}
	if !t.warned {
		t.warned = true
		slog.Debug("suppressing overlapping points", "max", t.max)
	}
	return false
}
