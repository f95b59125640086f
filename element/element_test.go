// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/aclements/go-chartgeom/coord"
	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/frame"
	"github.com/aclements/go-chartgeom/geom"
	"github.com/aclements/go-chartgeom/graph"
	"github.com/aclements/go-chartgeom/layout"
	"github.com/aclements/go-chartgeom/scale"
	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intervals(t *testing.T, g *graph.Graph) []*geom.Interval {
	var out []*geom.Interval
	for _, gm := range g.Geometries() {
		iv, ok := gm.(*geom.Interval)
		require.True(t, ok, "unexpected geometry %T", gm)
		out = append(out, iv)
	}
	return out
}

// byRow returns the (base, top) of each interval keyed by root row
// and variable.
func byRow(ivs []*geom.Interval) map[string][2]float64 {
	m := make(map[string][2]float64)
	for _, iv := range ivs {
		m[fmt.Sprintf("%s/%d", iv.Var, iv.Index.Row)] = [2]float64{iv.Base, iv.Top()}
	}
	return m
}

func TestIntervalStack(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("month", []string{"jan", "jan", "feb"}).
		Add("sales", []float64{10, 20, 5}).
		Done())
	e := NewInterval([]string{"month"}, "sales")
	e.Collision = Stack
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))

	got := byRow(intervals(t, g))
	assert.Equal(t, map[string][2]float64{
		"sales/0": {0, 10},
		"sales/1": {10, 30},
		"sales/2": {0, 5},
	}, got)
}

func TestIntervalNegGroup(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("month", []string{"jan", "jan", "jan"}).
		Add("sales", []float64{10, -5, 20}).
		Done())

	e := NewInterval([]string{"month"}, "sales")
	e.Collision = Stack
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))
	assert.Equal(t, map[string][2]float64{
		"sales/0": {0, 10},
		"sales/1": {10, 5},
		"sales/2": {5, 25},
	}, byRow(intervals(t, g)))

	e.NegGroup = true
	g = graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))
	ivs := intervals(t, g)
	assert.Equal(t, map[string][2]float64{
		"sales/0": {0, 10},
		"sales/1": {0, -5},
		"sales/2": {10, 30},
	}, byRow(ivs))
	// Negative bars paint first.
	assert.Equal(t, 1, ivs[0].Index.Row)
}

func TestIntervalReversedScale(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("month", []string{"jan", "jan"}).
		Add("sales", []float64{10, 20}).
		Done())
	s := scale.NewLinear("sales")
	s.Reversed = true
	s.Init(data)
	s.Include(0)
	g := graph.New(nil)
	g.SetScale(s)

	e := NewInterval([]string{"month"}, "sales")
	e.Collision = Stack
	require.NoError(t, e.CreateGeometry(data, g))
	ivs := intervals(t, g)
	require.Len(t, ivs, 2)
	top := ivs[1]
	assert.Equal(t, -30.0, top.Top())
	assert.Equal(t, 30.0, s.Unmap(top.Top()))
	assert.Equal(t, -20.0, top.Delta())
}

func TestIntervalDualAxis(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("x", []string{"a", "a"}).
		Add("sales", []float64{10, 20}).
		Add("cost", []float64{10, 100}).
		Done())
	ls := scale.NewLog("cost").SetDomain(1, 1000)
	g := graph.New(nil)
	g.SetScale(ls)

	e := NewInterval([]string{"x"}, "sales", "cost")
	e.Collision = Stack
	require.NoError(t, e.CreateGeometry(data, g))
	got := byRow(intervals(t, g))

	// The linear and log variables stack separately.
	assert.Equal(t, [2]float64{0, 10}, got["sales/0"])
	assert.Equal(t, [2]float64{10, 30}, got["sales/1"])

	// The first bar of a stack spans base to Map(v), not
	// Add(base, v).
	assert.Equal(t, [2]float64{0, 1}, got["cost/0"])
	second := got["cost/1"]
	assert.Equal(t, 1.0, second[0])
	assert.InDelta(t, 110, ls.Unmap(second[1]), 1e-9)
}

func TestGetIntervalRoundTrip(t *testing.T) {
	lin := scale.NewLinear("v")
	rev := scale.NewLinear("v")
	rev.Reversed = true
	lg := scale.NewLog("v").SetDomain(1, 1000)
	type unmapper interface {
		scale.Scale
		Unmap(float64) float64
	}
	for _, s := range []unmapper{lin, rev, lg} {
		t.Run(fmt.Sprint(s), func(t *testing.T) {
			for _, c := range [][2]float64{{10, 5}, {3, 40}, {100, 0.5}} {
				from := s.Map(c[0])
				to := from + getInterval(s, from, c[1], zeroBase(s), false)
				assert.InDelta(t, c[0]+c[1], s.Unmap(to), 1e-9)
			}
		})
	}
}

func TestRowWindow(t *testing.T) {
	xs := make([]float64, 10)
	for i := range xs {
		xs[i] = float64(i)
	}
	data := dataset.NewTable(new(table.Builder).
		Add("x", xs).
		Add("y", xs).
		Done())
	e := NewInterval([]string{"x"}, "y")
	e.StartRow, e.EndRow = 2, 8
	e.MaxCount = 3
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))

	var rows []int
	for _, gm := range g.Geometries() {
		idx := gm.Indexes()
		require.Len(t, idx, 1)
		rows = append(rows, idx[0].Row)
	}
	assert.Equal(t, []int{2, 3, 4}, rows)
	assert.Equal(t, []string{"Only the first 3 rows are plotted."}, g.Advisories())

	// A different window with the same cap does not repeat it.
	e2 := NewInterval([]string{"x"}, "y")
	e2.MaxCount = 3
	require.NoError(t, e2.CreateGeometry(data, g))
	assert.Len(t, g.Advisories(), 1)

	// A huge cap truncates without an advisory.
	e.MaxCount = HugeCount
	g = graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))
	assert.Len(t, g.Geometries(), 6)
	assert.Empty(t, g.Advisories())
}

func TestCalcRowsInWindow(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("x", []float64{0, 1, 2, 3}).
		Add("y", []float64{1, 2, 3, 6}).
		Done()).SetCalcRows(1)

	e := NewInterval([]string{"x"}, "y")
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))
	assert.Len(t, g.Geometries(), 4, "calc row follows a window reaching the end")

	e.EndRow = 2
	g = graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))
	assert.Len(t, g.Geometries(), 2)
}

func TestSortOrder(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("month", []string{"b", "a", "b", "a"}).
		Add("cat", []string{"q", "p", "p", "q"}).
		Add("sales", []float64{1, 2, 3, 4}).
		Done())
	e := NewInterval([]string{"month"}, "sales")
	e.Color = frame.NewColor("cat")
	e.Collision = Stack
	e.InitFrames(data)
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))

	var rows []int
	for _, iv := range intervals(t, g) {
		rows = append(rows, iv.Index.Row)
	}
	// Month in scale order (first appearance), then color in
	// natural order.
	assert.Equal(t, []int{2, 0, 1, 3}, rows)
}

func TestErrors(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("x", []string{"a"}).
		Add("y", []float64{1}).
		Done())

	err := NewInterval([]string{"x"}, "missing").CreateGeometry(data, graph.New(nil))
	assert.True(t, errors.Is(err, ErrScaleNotFound), "got %v", err)

	err = NewInterval([]string{"x"}, "y").CreateGeometry(data, graph.New(&coord.Rect{N: 4}))
	assert.True(t, errors.Is(err, ErrUnsupportedCoord), "got %v", err)
}

func TestLineNulls(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("x", []float64{1, 2, 3}).
		Add("y", []float64{10, math.NaN(), 30}).
		Done())
	e := NewLine([]string{"x"}, "y")
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))

	gs := g.Geometries()
	require.Len(t, gs, 1)
	l := gs[0].(*geom.Line)
	require.Len(t, l.Tuples, 2)
	var subRows []int
	for _, idx := range l.Idx {
		subRows = append(subRows, idx.SubRow)
	}
	assert.Equal(t, []int{0, 2}, subRows)
	assert.False(t, l.Gap(0))
	assert.True(t, l.Gap(1))
	assert.True(t, l.Nulls.Test(1))
	assert.Equal(t, uint(1), l.Nulls.Count())

	e.IgnoreNull = true
	g = graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))
	l = g.Geometries()[0].(*geom.Line)
	assert.Len(t, l.Tuples, 2)
	assert.Equal(t, uint(0), l.Nulls.Count())
}

func TestLineGroups(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("x", []float64{1, 2, 1, 2}).
		Add("cat", []string{"a", "a", "b", "b"}).
		Add("y", []float64{1, 2, 3, 4}).
		Done())
	e := NewLine([]string{"x"}, "y")
	e.Color = frame.NewColor("cat")
	e.StackGroup = true
	e.Collision = Stack
	e.InitFrames(data)
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))

	gs := g.Geometries()
	require.Len(t, gs, 2)
	a, b := gs[0].(*geom.Line), gs[1].(*geom.Line)
	assert.Equal(t, "a", a.Group)
	assert.Equal(t, "b", b.Group)
	assert.Equal(t, [][]float64{{1, 1}, {2, 2}}, a.Tuples)
	// Group b stacks on group a at the same x.
	assert.Equal(t, [][]float64{{1, 4}, {2, 6}}, b.Tuples)
}

func TestAreaBase(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("x", []float64{1, 2, 3}).
		Add("y", []float64{50, 100, 0}).
		Done())
	e := NewArea([]string{"x"}, "y")
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))

	gs := g.Geometries()
	require.Len(t, gs, 1)
	a := gs[0].(*geom.Area)
	assert.Equal(t, []float64{0, 0, 0}, a.Bases)
	assert.Len(t, a.Indexes(), 3)
}

func TestRadar(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("speed", []float64{1, 2}).
		Add("power", []float64{3, 4}).
		Done())
	e := NewRadar([]string{"speed", "power"})
	g := graph.New(coord.NewPolar(2))
	require.NoError(t, e.CreateGeometry(data, g))

	gs := g.Geometries()
	require.Len(t, gs, 2)
	for _, gm := range gs {
		l := gm.(*geom.Line)
		assert.True(t, l.Closed)
		assert.Len(t, l.Tuples, 2)
	}
}

func coincident(n int) dataset.DataSet {
	xs, ys := make([]float64, n), make([]float64, n)
	for i := range xs {
		xs[i], ys[i] = 1, 1
	}
	return dataset.NewTable(new(table.Builder).Add("x", xs).Add("y", ys).Done())
}

func TestPointOverlap(t *testing.T) {
	for _, tc := range []struct {
		rows, want int
	}{
		{5000, 5000},
		{20000, DefaultMaxOverlap},
	} {
		t.Run(fmt.Sprint(tc.rows), func(t *testing.T) {
			g := graph.New(nil)
			require.NoError(t, NewPoint([]string{"x"}, "y").CreateGeometry(coincident(tc.rows), g))
			assert.Len(t, g.Geometries(), tc.want)
		})
	}

	e := NewPoint([]string{"x"}, "y")
	e.WordCloud = true
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(coincident(20000), g))
	assert.Len(t, g.Geometries(), 20000)
}

func TestPointStackValue(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("x", []string{"a", "a", "a"}).
		Add("y", []float64{2, -1, 3}).
		Done())
	e := NewPoint([]string{"x"}, "y")
	e.StackValue = true
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))

	tops := make(map[int]float64)
	for _, gm := range g.Geometries() {
		p := gm.(*geom.Point)
		tops[p.Index.Row] = p.Tuple[1]
	}
	assert.Equal(t, map[int]float64{0: 2, 1: -1, 2: 5}, tops)
}

func TestTreemap(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("A", []string{"x", "x", "y"}).
		Add("B", []string{"1", "2", "1"}).
		Done())
	e := NewTreemap(0, []string{"A", "B"})
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))

	byDepth := make(map[int][]*geom.TreeNode)
	for _, gm := range g.Geometries() {
		n := gm.(*geom.TreeNode)
		byDepth[n.Depth] = append(byDepth[n.Depth], n)
	}
	require.Len(t, byDepth[0], 1)
	require.Len(t, byDepth[1], 2)
	require.Len(t, byDepth[2], 3)

	root := byDepth[0][0]
	assert.Equal(t, 3.0, root.Size)
	assert.Len(t, root.Indexes(), 3)

	x, y := byDepth[1][0], byDepth[1][1]
	assert.Equal(t, []interface{}{"x"}, x.Path)
	assert.Equal(t, []interface{}{"y"}, y.Path)
	assert.Equal(t, 2.0, x.Size)
	assert.Equal(t, 1.0, y.Size)
	assert.Equal(t, root.Size, x.Size+y.Size)

	children := make(map[interface{}]int)
	for _, leaf := range byDepth[2] {
		children[leaf.Path[0]]++
		assert.Len(t, leaf.Indexes(), 1)
	}
	assert.Equal(t, map[interface{}]int{"x": 2, "y": 1}, children)
}

func TestTreemapSkipsEmpty(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("A", []string{"x", "y"}).
		Add("v", []float64{2, 0}).
		Done())
	e := NewTreemap(0, []string{"A"}, "v")
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))
	assert.Len(t, g.Geometries(), 2)
	assert.Len(t, g.Advisories(), 1)
}

func TestRelationDedup(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("src", []string{"a", "b", "a", "c"}).
		Add("dst", []string{"b", "a", "b", "a"}).
		Done())
	e := NewRelation(0, "src", "dst")
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))

	var nodes []string
	var edges []string
	for _, gm := range g.Geometries() {
		switch gm := gm.(type) {
		case *geom.Node:
			nodes = append(nodes, gm.ID)
			assert.True(t, gm.X >= 0 && gm.X <= 1 && gm.Y >= 0 && gm.Y <= 1)
		case *geom.Edge:
			edges = append(edges, gm.From+"-"+gm.To)
		}
	}
	assert.Equal(t, []string{"a", "b", "c"}, nodes)
	assert.Equal(t, []string{"a-b", "c-a"}, edges)
}

func TestMekko(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("x", []string{"p", "p", "q", "q"}).
		Add("seg", []string{"s", "t", "s", "t"}).
		Add("v", []float64{1, 3, 4, -1}).
		Done())
	g := graph.New(nil)
	require.NoError(t, NewMekko("x", "seg", "v").CreateGeometry(data, g))

	gs := g.Geometries()
	require.Len(t, gs, 3)
	b := func(i int) *geom.MekkoBar { return gs[i].(*geom.MekkoBar) }
	assert.Equal(t, [4]float64{0, 0.5, 0, 0.25}, [4]float64{b(0).X0, b(0).X1, b(0).Y0, b(0).Y1})
	assert.Equal(t, [4]float64{0, 0.5, 0.25, 1}, [4]float64{b(1).X0, b(1).X1, b(1).Y0, b(1).Y1})
	assert.Equal(t, [4]float64{0.5, 1, 0, 1}, [4]float64{b(2).X0, b(2).X1, b(2).Y0, b(2).Y1})
}

func TestParabox(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("a", []string{"u", "u", "v"}).
		Add("b", []string{"m", "n", "m"}).
		Done())
	g := graph.New(nil)
	require.NoError(t, NewParabox([]string{"a", "b"}).CreateGeometry(data, g))

	var boxes []*geom.ParaboxBox
	var links []*geom.ParaboxLink
	for _, gm := range g.Geometries() {
		switch gm := gm.(type) {
		case *geom.ParaboxBox:
			boxes = append(boxes, gm)
		case *geom.ParaboxLink:
			links = append(links, gm)
		}
	}
	require.Len(t, boxes, 4)
	assert.Equal(t, "u", boxes[0].Value)
	assert.InDelta(t, 2.0/3, boxes[0].Y1, 1e-12)
	assert.InDelta(t, 1.0, boxes[1].Y1, 1e-12)
	require.Len(t, links, 3)
	for _, l := range links {
		assert.Equal(t, 1.0, l.Weight)
	}
}

func TestPolygon(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("x", []float64{0, 1, 1, 5, 6}).
		Add("y", []float64{0, 0, 1, 5, 6}).
		Add("shape", []string{"a", "a", "a", "b", "b"}).
		Done())
	e := NewPolygon([]string{"x"}, "y")
	e.Shape = frame.NewShape("shape")
	e.InitFrames(data)
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))

	gs := g.Geometries()
	require.Len(t, gs, 2)
	assert.Len(t, gs[0].(*geom.Polygon).Tuples, 3)
	assert.Len(t, gs[1].(*geom.Polygon).Tuples, 2)
}

func TestSchema(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("day", []string{"mon", "tue"}).
		Add("open", []float64{1, 2}).
		Add("high", []float64{3, 4}).
		Add("low", []float64{0, math.NaN()}).
		Add("close", []float64{2, 3}).
		Done())
	e := NewSchema([]string{"day"}, Candle{"open", "high", "low", "close"})
	assert.Panics(t, func() { e.AddVar("volume") })

	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))
	gs := g.Geometries()
	require.Len(t, gs, 1, "rows with a null variable are skipped")
	s := gs[0].(*geom.Schema)
	assert.Equal(t, "candle", s.Painter)
	assert.Equal(t, []float64{0, 1, 3, 0, 2}, s.Tuple)

	// Adding a variable through the base is caught at build time.
	BaseOf(e).AddVar("volume")
	assert.Error(t, e.CreateGeometry(data, graph.New(nil)))
}

func TestPie3D(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("cat", []string{"a", "b", "c"}).
		Add("v", []float64{1, -2, 3}).
		Done())
	g := graph.New(&coord.Pie3D{Depth: 0.1})
	require.NoError(t, NewInterval(nil, "v").CreateGeometry(data, g))

	gs := g.Geometries()
	require.Len(t, gs, 1)
	pie := gs[0].(*geom.Pie3D)
	require.Len(t, pie.Slices, 2)
	assert.Equal(t, 0.0, pie.Slices[0].From)
	assert.Equal(t, 1.0, pie.Slices[0].To)
	assert.Equal(t, 4.0, pie.Slices[1].To)
}

func TestClone(t *testing.T) {
	e := NewInterval([]string{"month"}, "sales")
	e.Color = frame.NewColor("cat")
	e.Bases = []string{"lo"}
	e2 := e.Clone().(*Interval)

	e2.AddDim("region")
	e2.Bases[0] = "hi"
	assert.Equal(t, []string{"month"}, e.Dims)
	assert.Equal(t, []string{"lo"}, e.Bases)
	assert.NotSame(t, e.Color, e2.Color)
	assert.Equal(t, e.Color.ShareID(), e2.Color.ShareID())
}

func TestCreateGeometriesOrder(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("x", []float64{1, 2, 3, 4}).
		Add("y", []float64{4, 3, 2, 1}).
		Done())
	elems := func() []Element {
		return []Element{
			NewInterval([]string{"x"}, "y"),
			NewLine([]string{"x"}, "y"),
			NewPoint([]string{"x"}, "y"),
		}
	}

	seq := graph.New(nil)
	for _, e := range elems() {
		require.NoError(t, e.CreateGeometry(data, seq))
	}
	want := seq.Geometries()

	for i := 0; i < 10; i++ {
		g := graph.New(nil)
		require.NoError(t, CreateGeometries(context.Background(), data, g, elems()...))
		got := g.Geometries()
		require.Len(t, got, len(want))
		for j := range got {
			assert.IsType(t, want[j], got[j])
			assert.Equal(t, want[j].Indexes(), got[j].Indexes())
		}
	}

	err := CreateGeometries(context.Background(), data, graph.New(nil), NewInterval([]string{"x"}, "missing"))
	assert.True(t, errors.Is(err, ErrScaleNotFound))
}

func TestLineColorGroups(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("x", []float64{1, 2, 1, 2}).
		Add("cat", []string{"a", "a", "b", "b"}).
		Add("y", []float64{1, 2, 3, 4}).
		Done())
	e := NewLine([]string{"x"}, "y")
	e.Color = frame.NewColor("cat")
	e.InitFrames(data)
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))

	gs := g.Geometries()
	require.Len(t, gs, 2)
	a, b := gs[0].(*geom.Line), gs[1].(*geom.Line)
	assert.Equal(t, "a", a.Group)
	assert.Equal(t, [][]float64{{1, 1}, {2, 2}}, a.Tuples)
	assert.Equal(t, "b", b.Group)
	assert.Equal(t, [][]float64{{1, 3}, {2, 4}}, b.Tuples)
	assert.NotEqual(t, a.Aes.Color, b.Aes.Color)

	// Labels do not split lines.
	e = NewLine([]string{"x"}, "y")
	e.Text = frame.NewText("cat")
	e.InitFrames(data)
	g = graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))
	gs = g.Geometries()
	require.Len(t, gs, 1)
	assert.Equal(t, [][]float64{{1, 1}, {1, 3}, {2, 2}, {2, 4}}, gs[0].(*geom.Line).Tuples)
}

func TestLineNullRuns(t *testing.T) {
	nan := math.NaN()
	for _, tc := range []struct {
		name  string
		ys    []float64
		nulls []uint
		gaps  []bool
	}{
		{"leading", []float64{nan, 10, 30}, []uint{0}, []bool{false, false}},
		{"inner", []float64{10, nan, 30}, []uint{1}, []bool{false, true}},
		{"run", []float64{10, nan, nan, 30}, []uint{1, 2}, []bool{false, true}},
		{"trailing", []float64{10, 30, nan}, []uint{2}, []bool{false, false}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			xs := make([]float64, len(tc.ys))
			for i := range xs {
				xs[i] = float64(i + 1)
			}
			data := dataset.NewTable(new(table.Builder).
				Add("x", xs).
				Add("y", tc.ys).
				Done())
			g := graph.New(nil)
			require.NoError(t, NewLine([]string{"x"}, "y").CreateGeometry(data, g))
			require.Len(t, g.Geometries(), 1)
			l := g.Geometries()[0].(*geom.Line)

			var nulls []uint
			for i, ok := l.Nulls.NextSet(0); ok; i, ok = l.Nulls.NextSet(i + 1) {
				nulls = append(nulls, i)
			}
			assert.Equal(t, tc.nulls, nulls)
			var gaps []bool
			for i := range l.Tuples {
				gaps = append(gaps, l.Gap(i))
			}
			assert.Equal(t, tc.gaps, gaps)
		})
	}
}

func TestSortValueOrderTies(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("month", []string{"jan", "jan", "jan", "jan"}).
		Add("cat", []string{"a", "b", "a", "b"}).
		Add("region", []string{"x", "x", "y", "y"}).
		Add("sales", []float64{1, 2, 3, 4}).
		Done()).
		SetComparator("cat", &dataset.ValueOrder{Values: map[interface{}]float64{"a": 1, "b": 1}}).
		SetComparator("region", dataset.Natural)
	e := NewInterval([]string{"month"}, "sales")
	e.Collision = Stack
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))

	var rows []int
	for _, iv := range intervals(t, g) {
		rows = append(rows, iv.Index.Row)
	}
	// a and b tie on value, so each category stays together ahead
	// of the region ordering.
	assert.Equal(t, []int{0, 2, 1, 3}, rows)
}

func TestRowWindowSub(t *testing.T) {
	base := dataset.NewTable(new(table.Builder).
		Add("x", []float64{0, 1, 2, 3, 4, 5}).
		Add("y", []float64{1, 2, 3, 4, 5, 15}).
		Done()).SetCalcRows(1)
	// Rows 1-3 followed by the calc row 5.
	data := dataset.NewSub(base, 1, 4)

	rootRows := func(e *Interval) []int {
		g := graph.New(nil)
		require.NoError(t, e.CreateGeometry(data, g))
		var rows []int
		for _, iv := range intervals(t, g) {
			rows = append(rows, iv.Index.Row)
		}
		return rows
	}

	e := NewInterval([]string{"x"}, "y")
	assert.Equal(t, []int{1, 2, 3, 5}, rootRows(e))

	e.StartRow = 2
	assert.Equal(t, []int{2, 3, 5}, rootRows(e))

	e.EndRow = 3
	assert.Equal(t, []int{2}, rootRows(e), "calc row only follows a window reaching the end")
}

func TestStackGroupBatching(t *testing.T) {
	data := dataset.NewTable(new(table.Builder).
		Add("region", []string{"e", "e", "w", "w"}).
		Add("month", []string{"jan", "jan", "jan", "jan"}).
		Add("sales", []float64{10, -5, 20, -3}).
		Done())
	e := NewInterval([]string{"region", "month"}, "sales")
	e.Collision = Stack
	e.StackGroup = true
	e.NegGroup = true

	want := map[string][2]float64{
		"sales/0": {0, 10},
		"sales/1": {0, -5},
		"sales/2": {0, 20},
		"sales/3": {0, -3},
	}
	for i := 0; i < 2; i++ {
		g := graph.New(nil)
		require.NoError(t, e.CreateGeometry(data, g))
		ivs := intervals(t, g)
		assert.Equal(t, want, byRow(ivs))
		var rows []int
		for _, iv := range ivs {
			rows = append(rows, iv.Index.Row)
		}
		// Each region paints its negative bar first.
		assert.Equal(t, []int{1, 0, 3, 2}, rows)
	}

	// Without StackGroup the regions share one stack per month.
	e.StackGroup = false
	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))
	assert.Equal(t, map[string][2]float64{
		"sales/0": {0, 10},
		"sales/1": {0, -5},
		"sales/2": {10, 30},
		"sales/3": {-5, -8},
	}, byRow(intervals(t, g)))
}

func TestIncludeNullRows(t *testing.T) {
	newData := func() *dataset.Table {
		return dataset.NewTable(new(table.Builder).
			Add("x", []float64{1, 2, 3}).
			Add("y", []float64{1, math.NaN(), 3}).
			Done())
	}

	data := newData()
	rc := newRenderContext(data, graph.New(nil))
	e := NewInterval([]string{"x"}, "y")
	e.begin(rc, data)
	tuple, err := e.scale(rc, 1, 0)
	require.NoError(t, err)
	assert.Nil(t, tuple)

	data = newData().SetIncludeNull(1, true)
	sorted := dataset.NewSorted(data, dataset.SortKey{Col: 0})
	rc = newRenderContext(data, graph.New(nil))
	e.begin(rc, sorted)
	tuple, err = e.scale(rc, 1, 0)
	require.NoError(t, err)
	require.Len(t, tuple, 2)
	assert.Equal(t, 2.0, tuple[0])
	assert.True(t, math.IsNaN(tuple[1]))

	g := graph.New(nil)
	require.NoError(t, e.CreateGeometry(data, g))
	ivs := intervals(t, g)
	require.Len(t, ivs, 3)
	assert.Equal(t, [2]float64{0, 0}, byRow(ivs)["y/1"])
}

func TestEmptyWindow(t *testing.T) {
	full := dataset.NewTable(new(table.Builder).
		Add("x", []float64{1, 2}).
		Add("y", []float64{3, 4}).
		Add("cat", []string{"a", "b"}).
		Add("to", []string{"b", "a"}).
		Done())
	empty := dataset.NewTable(new(table.Builder).
		Add("x", []float64{}).
		Add("y", []float64{}).
		Add("cat", []string{}).
		Add("to", []string{}).
		Done())

	for _, tc := range []struct {
		name string
		new  func() Element
	}{
		{"interval", func() Element { return NewInterval([]string{"x"}, "y") }},
		{"line", func() Element { return NewLine([]string{"x"}, "y") }},
		{"area", func() Element { return NewArea([]string{"x"}, "y") }},
		{"radar", func() Element { return NewRadar([]string{"x", "y"}) }},
		{"point", func() Element { return NewPoint([]string{"x"}, "y") }},
		{"treemap", func() Element { return NewTreemap(layout.Squarify, []string{"cat"}, "y") }},
		{"relation", func() Element { return NewRelation(layout.Circle, "cat", "to") }},
		{"mekko", func() Element { return NewMekko("cat", "to", "y") }},
		{"parabox", func() Element { return NewParabox([]string{"cat", "to"}) }},
		{"polygon", func() Element { return NewPolygon([]string{"x"}, "y") }},
		{"schema", func() Element { return NewSchema([]string{"cat"}, Stock{"x", "y", "y"}) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for _, start := range []int{0, 5} {
				data := empty
				if start > 0 {
					data = full
				}
				e := tc.new()
				b := BaseOf(e)
				b.Color = frame.NewColor("cat")
				b.StartRow = start
				b.InitFrames(data)
				g := graph.New(nil)
				require.NoError(t, e.CreateGeometry(data, g))
				assert.Empty(t, g.Geometries())
			}
		})
	}
}
