// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

import (
	"math"
	"slices"

	"github.com/aclements/go-chartgeom/coord"
	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/geom"
	"github.com/aclements/go-chartgeom/graph"
	"github.com/aclements/go-chartgeom/scale"
	"github.com/bits-and-blooms/bitset"
)

// Line connects the rows of each variable with a line.
//
// Without variables, Line draws one line per row through the row's
// dimension values (a parallel coordinate or radar line). With
// variables, it draws one line per variable, or, when some field
// breaks lines, one line per variable and line group.
type Line struct {
	Stackable

	// IgnoreNull drops rows whose value is null instead of
	// breaking the line at them.
	IgnoreNull bool

	// FillGaps marks lines so renderers bridge null gaps with a
	// fill segment instead of breaking the line.
	FillGaps bool

	// Closed connects the last point of each line to the first.
	Closed bool
}

// NewLine returns a line element over dims plotting vars.
func NewLine(dims []string, vars ...string) *Line {
	e := &Line{}
	e.Dims = append([]string(nil), dims...)
	e.Vars = append([]string(nil), vars...)
	return e
}

func (e *Line) CreateGeometry(data dataset.DataSet, g *graph.Graph) error {
	return create(e, data, g)
}

func (e *Line) Clone() Element {
	e2 := *e
	e2.Stackable = e.Stackable.clone()
	return &e2
}

func (e *Line) build(rc *renderContext) error {
	data, err := e.sortData(rc, rc.in)
	if err != nil {
		return err
	}
	e.begin(rc, data)
	return e.buildLines(rc, false, nil, nil)
}

// lineBuilder accumulates one line. n counts the rows of the line's
// row sequence seen so far, null or not.
type lineBuilder struct {
	line  *geom.Line
	bases []float64
	n     uint
}

func (b *lineBuilder) add(tuple []float64, idx geom.Index, base float64) {
	b.line.Tuples = append(b.line.Tuples, tuple)
	b.line.Idx = append(b.line.Idx, idx)
	b.bases = append(b.bases, base)
	b.n++
}

// null records a null row at the next offset of the row sequence.
func (b *lineBuilder) null() {
	b.line.Nulls.Set(b.n)
	b.n++
}

// buildLines builds the lines of e over rc's window. If area is set,
// it emits areas down to the stack below, the given base columns or
// 0. axisOrder, if non-nil, orders the points of a line without
// variables.
func (e *Line) buildLines(rc *renderContext, area bool, bases []string, axisOrder func(dim string) int) error {
	if rc.start >= rc.end {
		return nil
	}
	if len(e.Vars) == 0 {
		return e.buildRows(rc, area, axisOrder)
	}
	breaks := e.breakFields(rc.data)
	if len(breaks) == 0 {
		return e.buildPerVar(rc, area, bases)
	}
	return e.buildGrouped(rc, area, bases, breaks)
}

func (e *Line) newBuilder(n int, name, group string, aes geom.Aes) *lineBuilder {
	return &lineBuilder{line: &geom.Line{
		Var:      name,
		Group:    group,
		Aes:      aes,
		Nulls:    bitset.New(uint(n)),
		FillGaps: e.FillGaps,
		Closed:   e.Closed,
	}}
}

// point scales row for variable v and stacks it. It returns a nil
// tuple for a null row.
func (e *Line) point(rc *renderContext, st *stacker, key string, row, v int, baseCol string) ([]float64, float64, error) {
	tuple, err := e.scale(rc, row, v)
	if tuple == nil || err != nil {
		return nil, 0, err
	}
	name := e.Vars[v]
	s, err := rc.scale(name)
	if err != nil {
		return nil, 0, err
	}
	n := len(e.Dims)
	base := zeroBase(s)
	switch {
	case baseCol != "":
		bs, err := rc.scale(baseCol)
		if err != nil {
			return nil, 0, err
		}
		base = scale.Clip(bs, bs.Map(rc.value(baseCol, row)))
	case st != nil:
		val := rc.float(name, row)
		if math.IsNaN(val) {
			val = 0
		}
		base, tuple[n] = st.push(s, key, val)
	}
	return tuple, base, nil
}

func (e *Line) emit(rc *renderContext, b *lineBuilder, area bool) {
	if len(b.line.Tuples) == 0 {
		return
	}
	if area {
		rc.emit(&geom.Area{Line: *b.line, Bases: b.bases})
		return
	}
	rc.emit(b.line)
}

func baseCol(bases []string, v int) string {
	if v < len(bases) {
		return bases[v]
	}
	return ""
}

// buildPerVar draws one line per variable through all rows.
func (e *Line) buildPerVar(rc *renderContext, area bool, bases []string) error {
	n := len(e.Dims)
	for v, name := range e.Vars {
		b := e.newBuilder(rc.end-rc.start, name, "", e.aes(rc, rc.start))
		var st *stacker
		if e.Stack() {
			st = newStacker(e.NegGroup)
		}
		for row := rc.start; row < rc.end; row++ {
			key := ""
			if n > 0 {
				key = rc.key(e.Dims[n-1:], row)
			}
			tuple, base, err := e.point(rc, st, key, row, v, baseCol(bases, v))
			if err != nil {
				return err
			}
			if tuple == nil {
				if !e.IgnoreNull {
					b.null()
				}
				continue
			}
			b.add(tuple, rc.index(row, name), base)
		}
		e.emit(rc, b, area)
	}
	return nil
}

// buildGrouped draws one line per variable and line group. Line
// groups are the distinct values of the breaking fields, in the
// order they first appear. With StackGroup, stacks are kept per
// value of all dimensions, so only lines of one group dimension value
// stack on each other. Otherwise lines stack by the last dimension.
func (e *Line) buildGrouped(rc *renderContext, area bool, bases, breaks []string) error {
	var st *stacker
	if e.Stack() {
		st = newStacker(e.NegGroup)
	}
	type groupKey struct {
		group string
		v     int
	}
	lines := make(map[groupKey]*lineBuilder)
	var order []groupKey
	for row := rc.start; row < rc.end; row++ {
		group := rc.key(breaks, row)
		pos := e.positionKey(rc, row)
		for v, name := range e.Vars {
			k := groupKey{group, v}
			b := lines[k]
			if b == nil {
				b = e.newBuilder(0, name, group, e.aes(rc, row))
				lines[k] = b
				order = append(order, k)
			}
			tuple, base, err := e.point(rc, st, pos, row, v, baseCol(bases, v))
			if err != nil {
				return err
			}
			if tuple == nil {
				if !e.IgnoreNull {
					b.null()
				}
				continue
			}
			b.add(tuple, rc.index(row, name), base)
		}
	}
	for _, k := range order {
		e.emit(rc, lines[k], area)
	}
	return nil
}

// buildRows draws one line per row through the row's dimensions.
func (e *Line) buildRows(rc *renderContext, area bool, axisOrder func(dim string) int) error {
	dims := slices.Clone(e.Dims)
	if axisOrder != nil {
		slices.SortStableFunc(dims, func(a, b string) int {
			return axisOrder(a) - axisOrder(b)
		})
	}
	for row := rc.start; row < rc.end; row++ {
		b := e.newBuilder(len(dims), "", "", e.aes(rc, row))
		idx := rc.index(row, "")
		for _, d := range dims {
			s, err := rc.scale(d)
			if err != nil {
				return err
			}
			if !scale.HasField(s, d) {
				continue
			}
			i := slices.Index(e.Dims, d)
			tuple, err := e.scale(rc, row, -(i + 1))
			if err != nil {
				return err
			}
			if tuple == nil {
				if !e.IgnoreNull {
					b.null()
				}
				continue
			}
			b.add(tuple, idx, zeroBase(s))
		}
		e.emit(rc, b, area)
	}
	return nil
}

// Area fills the area between each line and its base: the stack
// below it, an explicit base column, or the mapped position of 0.
type Area struct {
	Line

	// Bases holds an optional base column for each variable.
	Bases []string
}

// NewArea returns an area element over dims plotting vars.
func NewArea(dims []string, vars ...string) *Area {
	e := &Area{}
	e.Dims = append([]string(nil), dims...)
	e.Vars = append([]string(nil), vars...)
	return e
}

func (e *Area) CreateGeometry(data dataset.DataSet, g *graph.Graph) error {
	return create(e, data, g)
}

func (e *Area) Clone() Element {
	e2 := *e
	e2.Stackable = e.Stackable.clone()
	e2.Bases = append([]string(nil), e.Bases...)
	return &e2
}

func (e *Area) build(rc *renderContext) error {
	data, err := e.sortData(rc, rc.in)
	if err != nil {
		return err
	}
	e.begin(rc, data)
	return e.buildLines(rc, true, e.Bases, nil)
}

// Radar draws closed lines in a polar coordinate. Without variables
// each row is a line through its dimensions, ordered by the polar
// coordinate's axis order.
type Radar struct {
	Line
}

// NewRadar returns a radar element over dims plotting vars.
func NewRadar(dims []string, vars ...string) *Radar {
	e := &Radar{}
	e.Dims = append([]string(nil), dims...)
	e.Vars = append([]string(nil), vars...)
	e.Closed = true
	return e
}

func (e *Radar) CreateGeometry(data dataset.DataSet, g *graph.Graph) error {
	return create(e, data, g)
}

func (e *Radar) Clone() Element {
	e2 := *e
	e2.Stackable = e.Stackable.clone()
	return &e2
}

func (e *Radar) build(rc *renderContext) error {
	data, err := e.sortData(rc, rc.in)
	if err != nil {
		return err
	}
	e.begin(rc, data)
	var order func(string) int
	if p, ok := rc.g.Coordinate().(*coord.Polar); ok {
		order = func(d string) int { return p.AxisIndex(d, e.Dims) }
	}
	return e.buildLines(rc, false, nil, order)
}
