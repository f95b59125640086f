// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package element transforms tabular data into geometry.
//
// An Element binds data columns to the axes of a graph (its
// dimensions and variables) and to visual frames. CreateGeometry
// scales the rows of a DataSet through the graph's scales, applies
// the element's stacking, grouping, sorting and null handling, and
// adds the resulting geometry to the graph. Every geometry records
// the provenance of the rows it plots.
//
// Elements hold no per-render state: all transient state lives in a
// context created for each CreateGeometry call, so one element may
// render several data sets concurrently.
package element

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/frame"
	"github.com/aclements/go-chartgeom/geom"
	"github.com/aclements/go-chartgeom/graph"
	"github.com/aclements/go-chartgeom/scale"
)

var (
	// ErrScaleNotFound is returned when a bound column has no
	// scale in the graph and none can be created for it.
	ErrScaleNotFound = errors.New("scale not found")

	// ErrUnsupportedCoord is returned when an element cannot lay
	// out geometry in the graph's coordinate.
	ErrUnsupportedCoord = errors.New("unsupported coordinate")
)

// An Element produces geometry from data.
type Element interface {
	// CreateGeometry adds the geometry for data to g.
	CreateGeometry(data dataset.DataSet, g *graph.Graph) error

	// Clone returns a deep copy of the element.
	Clone() Element

	base() *Base
	build(rc *renderContext) error
}

// Collision is a bit set of modifiers for overlapping geometry.
type Collision int

const (
	NoCollision Collision = 0
	Center      Collision = 1 << (iota - 1)
	Dodge
	Stack
	Jitter
	Middle
)

// HugeCount is the row count at or above which truncation by
// MaxCount is routine and is only logged, not reported to the user.
const HugeCount = 100000

// Base holds the bindings common to every element.
type Base struct {
	// Dims are the dimension columns, bound to the leading axes.
	Dims []string

	// Vars are the variable columns. Each is plotted on the axis
	// after the dimensions.
	Vars []string

	Color     *frame.Color
	Size      *frame.Size
	Shape     *frame.Shape
	Texture   *frame.Texture
	LineStyle *frame.Line
	Text      *frame.Text

	Collision Collision

	// StartRow and EndRow bound the rows plotted, as a half-open
	// range of root data set rows. EndRow <= 0 means no bound.
	StartRow, EndRow int

	// MaxCount, if positive, caps the number of rows plotted.
	MaxCount int
}

func (e *Base) base() *Base { return e }

// Stack reports whether the element stacks its geometry.
func (e *Base) Stack() bool { return e.Collision&Stack != 0 }

// AddDim appends a dimension column.
func (e *Base) AddDim(col string) { e.Dims = append(e.Dims, col) }

// AddVar appends a variable column.
func (e *Base) AddVar(col string) { e.Vars = append(e.Vars, col) }

// RemoveDim removes the dimension column col.
func (e *Base) RemoveDim(col string) { e.Dims = remove(e.Dims, col) }

// RemoveVar removes the variable column col.
func (e *Base) RemoveVar(col string) { e.Vars = remove(e.Vars, col) }

func remove(xs []string, x string) []string {
	out := xs[:0]
	for _, y := range xs {
		if y != x {
			out = append(out, y)
		}
	}
	return out
}

// Frames returns the element's frames, in the order color, line,
// texture, shape, size, text.
func (e *Base) Frames() []frame.Frame {
	var fs []frame.Frame
	if e.Color != nil {
		fs = append(fs, e.Color)
	}
	if e.LineStyle != nil {
		fs = append(fs, e.LineStyle)
	}
	if e.Texture != nil {
		fs = append(fs, e.Texture)
	}
	if e.Shape != nil {
		fs = append(fs, e.Shape)
	}
	if e.Size != nil {
		fs = append(fs, e.Size)
	}
	if e.Text != nil {
		fs = append(fs, e.Text)
	}
	return fs
}

// SetFrame binds f to the element, replacing the frame of the same
// kind.
func (e *Base) SetFrame(f frame.Frame) {
	switch f := f.(type) {
	case *frame.Color:
		e.Color = f
	case *frame.Size:
		e.Size = f
	case *frame.Shape:
		e.Shape = f
	case *frame.Texture:
		e.Texture = f
	case *frame.Line:
		e.LineStyle = f
	case *frame.Text:
		e.Text = f
	default:
		panic(fmt.Sprintf("element: unknown frame type %T", f))
	}
}

// InitFrames prepares the element's frames for data.
func (e *Base) InitFrames(data dataset.DataSet) {
	for _, f := range e.Frames() {
		f.Init(data)
	}
}

// ShareFrames replaces each frame of e with the frame g has
// registered under the same share ID.
func (e *Base) ShareFrames(g *graph.Graph) {
	for _, f := range e.Frames() {
		e.SetFrame(g.ShareFrame(f))
	}
}

func (e *Base) clone() Base {
	e2 := *e
	e2.Dims = append([]string(nil), e.Dims...)
	e2.Vars = append([]string(nil), e.Vars...)
	e2.Color, e2.Size, e2.Shape, e2.Texture, e2.LineStyle, e2.Text = nil, nil, nil, nil, nil, nil
	for _, f := range e.Frames() {
		e2.SetFrame(f.Copy())
	}
	return e2
}

// create runs e over data and adds its geometry to g.
func create(e Element, data dataset.DataSet, g *graph.Graph) error {
	rc := newRenderContext(data, g)
	if err := e.build(rc); err != nil {
		return err
	}
	g.AddGeometry(rc.out...)
	return nil
}

// renderContext is the state of one CreateGeometry call.
type renderContext struct {
	g *graph.Graph

	// in is the data passed to CreateGeometry and data is the
	// element's working view of it.
	in, data dataset.DataSet

	// start and end are the row window of data.
	start, end int

	scales map[string]scale.Scale
	cols   map[string]int

	out []geom.Geometry
}

func newRenderContext(data dataset.DataSet, g *graph.Graph) *renderContext {
	return &renderContext{
		g:      g,
		in:     data,
		data:   data,
		scales: make(map[string]scale.Scale),
		cols:   make(map[string]int),
	}
}

func (rc *renderContext) emit(gs ...geom.Geometry) {
	rc.out = append(rc.out, gs...)
}

// scale returns the scale of col, creating a default scale in the
// graph if col has none.
func (rc *renderContext) scale(col string) (scale.Scale, error) {
	if s, ok := rc.scales[col]; ok {
		return s, nil
	}
	s, created := rc.g.ResolveScale(col, rc.in)
	if s == nil {
		return nil, fmt.Errorf("%w: %q", ErrScaleNotFound, col)
	}
	if created {
		slog.Debug("element created default scale", "col", col)
	}
	rc.scales[col] = s
	return s, nil
}

// col returns the index of col in the working data, or -1.
func (rc *renderContext) col(name string) int {
	if i, ok := rc.cols[name]; ok {
		return i
	}
	i := rc.data.IndexOfHeader(name)
	rc.cols[name] = i
	return i
}

// value returns the cell of column name at row of the working data.
func (rc *renderContext) value(name string, row int) interface{} {
	c := rc.col(name)
	if c < 0 {
		return nil
	}
	return rc.data.Value(c, row)
}

// float returns the numeric value of column name at row, or NaN.
func (rc *renderContext) float(name string, row int) float64 {
	x, ok := dataset.Float(rc.value(name, row))
	if !ok {
		return math.NaN()
	}
	return x
}

// mapValue maps the cell of column name at row through its scale.
func (rc *renderContext) mapValue(name string, row int) (float64, error) {
	s, err := rc.scale(name)
	if err != nil {
		return 0, err
	}
	return s.Map(rc.value(name, row)), nil
}

// index returns the provenance of row of the working data plotting
// column name. An empty name records no column.
func (rc *renderContext) index(row int, name string) geom.Index {
	col := -1
	if name != "" {
		if c := rc.col(name); c >= 0 {
			col = dataset.RootCol(rc.data, c)
		}
	}
	return geom.Index{SubRow: row, Row: dataset.RootRow(rc.data, row), Col: col}
}

// key formats the values of cols at row as a map key.
func (rc *renderContext) key(cols []string, row int) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, rc.value(c, row))
	}
	return b.String()
}

// begin sets the working data of rc, computes the row window and
// prepares calc columns over it.
func (e *Base) begin(rc *renderContext, data dataset.DataSet) {
	rc.data = data
	rc.cols = make(map[string]int)
	rc.start = e.startRow(data)
	rc.end = e.endRow(rc, data)
	e.prepareCalc(rc)
}

// startRow returns the first row of data in the element's window.
func (e *Base) startRow(data dataset.DataSet) int {
	n := dataset.NominalRowCount(data)
	if e.StartRow <= 0 {
		return 0
	}
	for i := 0; i < n; i++ {
		if dataset.RootRow(data, i) >= e.StartRow {
			return i
		}
	}
	return n
}

// endRow returns the end of the element's window in data. Calc rows
// are included when the window reaches the end of the nominal rows.
func (e *Base) endRow(rc *renderContext, data dataset.DataSet) int {
	nominal := dataset.NominalRowCount(data)
	start := e.startRow(data)
	end := nominal
	if e.EndRow > 0 {
		for i := start; i < nominal; i++ {
			if dataset.RootRow(data, i) >= e.EndRow {
				end = i
				break
			}
		}
	}
	if end == nominal {
		end = data.RowCount()
	}
	if e.MaxCount > 0 && end-start > e.MaxCount {
		if e.MaxCount < HugeCount {
			rc.g.Advise(fmt.Sprintf("Only the first %d rows are plotted.", e.MaxCount))
		} else {
			slog.Debug("element rows truncated", "max", e.MaxCount, "rows", end-start)
		}
		end = start + e.MaxCount
	}
	return end
}

// prepareCalc prepares the calc columns bound to e over the window.
func (e *Base) prepareCalc(rc *renderContext) {
	p, ok := rc.data.(dataset.CalcPreparer)
	if !ok || rc.end <= rc.start {
		return
	}
	rows := make([]int, 0, rc.end-rc.start)
	for r := rc.start; r < rc.end; r++ {
		rows = append(rows, r)
	}
	for _, d := range e.Dims {
		p.PrepareCalc(d, rows, false)
	}
	for _, v := range e.Vars {
		p.PrepareCalc(v, rows, true)
	}
}

// includeNull reports whether row is plotted even if a value does
// not scale: calc rows and rows the data flags.
func includeNull(data dataset.DataSet, row int) bool {
	if dataset.IsCalcRow(data, row) {
		return true
	}
	if n, ok := data.(dataset.NullIncluder); ok {
		return n.IncludeNull(row)
	}
	return false
}

// scale maps row into a tuple. A vidx >= 0 appends Vars[vidx] after
// the dimensions. A negative vidx maps only dimension -(vidx+1) and
// leaves the other dimensions NaN.
//
// It returns a nil tuple if a mapped value is NaN and the row is not
// an include-null row.
func (e *Base) scale(rc *renderContext, row, vidx int) ([]float64, error) {
	n := len(e.Dims)
	size := n
	if vidx >= 0 {
		size++
	}
	tuple := make([]float64, size)
	incl := includeNull(rc.data, row)
	for i, d := range e.Dims {
		if vidx < 0 && i != -(vidx+1) {
			tuple[i] = math.NaN()
			continue
		}
		x, err := rc.mapValue(d, row)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(x) && !incl {
			return nil, nil
		}
		tuple[i] = x
	}
	if vidx >= 0 {
		x, err := rc.mapValue(e.Vars[vidx], row)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(x) && !incl {
			return nil, nil
		}
		tuple[n] = x
	}
	return tuple, nil
}

// scaleDims maps the dimensions of row into a tuple, or returns nil
// if one does not map.
func (e *Base) scaleDims(rc *renderContext, row int) ([]float64, error) {
	tuple := make([]float64, len(e.Dims))
	incl := includeNull(rc.data, row)
	for i, d := range e.Dims {
		x, err := rc.mapValue(d, row)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(x) && !incl {
			return nil, nil
		}
		tuple[i] = x
	}
	return tuple, nil
}

// aes resolves the element's frames for row.
func (e *Base) aes(rc *renderContext, row int) geom.Aes {
	a := geom.NoAes()
	if e.Color != nil {
		a.Color = e.Color.Map(rc.value(e.Color.Field(), row))
	}
	if e.Size != nil {
		a.Size = e.Size.Map(rc.value(e.Size.Field(), row))
	}
	if e.Shape != nil {
		a.Shape = e.Shape.Index(rc.value(e.Shape.Field(), row))
	}
	if e.Texture != nil {
		a.Texture = e.Texture.Index(rc.value(e.Texture.Field(), row))
	}
	if e.LineStyle != nil {
		a.Line = e.LineStyle.Index(rc.value(e.LineStyle.Field(), row))
	}
	if e.Text != nil {
		a.Label = e.Text.Label(rc.value(e.Text.Field(), row))
	}
	return a
}

// breakFields returns the fields that split rows into separate
// lines or shapes: the categorical color, shape, texture and line
// fields, and the group dimensions (all but the last dimension).
// Text fields split only when they are also group dimensions.
func (e *Base) breakFields(data dataset.DataSet) []string {
	var fields []string
	seen := make(map[string]bool)
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			fields = append(fields, f)
		}
	}
	if n := len(e.Dims); n > 1 {
		for _, d := range e.Dims[:n-1] {
			add(d)
		}
	}
	for _, f := range e.Frames() {
		switch f.Kind() {
		case frame.KindColor, frame.KindShape, frame.KindTexture, frame.KindLine:
			if f.Categorical(data) {
				add(f.Field())
			}
		}
	}
	return fields
}

// getInterval returns the signed mapped-space extent of the raw value
// v stacked at the mapped position from. The first interval of a
// stack spans from base to v. Later intervals span from from to the
// position v further along the scale, which differs from the mapped
// value of v on non-linear and reversed scales.
func getInterval(s scale.Scale, from, v, base float64, first bool) float64 {
	if first {
		return s.Map(v) - base
	}
	return s.Add(from, v) - from
}

// zeroBase returns the mapped position of 0 on s, clipped to s.
func zeroBase(s scale.Scale) float64 {
	return scale.Clip(s, s.Map(0.0))
}

// stackState is a running stack top.
type stackState struct {
	top, negtop float64
}

// stacker tracks running stack tops keyed by scale and position.
type stacker struct {
	negGroup bool
	states   map[string]*stackState
}

func newStacker(negGroup bool) *stacker {
	return &stacker{negGroup: negGroup, states: make(map[string]*stackState)}
}

// push stacks raw value v at position key on s and returns the
// mapped bounds of its interval.
func (st *stacker) push(s scale.Scale, key string, v float64) (from, to float64) {
	k := strings.Join(s.Fields(), ",") + "\x00" + key
	base := zeroBase(s)
	ss, ok := st.states[k]
	if !ok {
		ss = &stackState{top: base, negtop: base}
		st.states[k] = ss
	}
	neg := st.negGroup && v < 0
	from = ss.top
	if neg {
		from = ss.negtop
	}
	to = from + getInterval(s, from, v, base, from == base)
	if neg {
		ss.negtop = to
	} else {
		ss.top = to
	}
	return from, to
}

// BaseOf returns the bindings common to every element of e.
func BaseOf(e Element) *Base {
	return e.base()
}
