// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom defines the geometry emitted by graph elements.
//
// Each geometry carries positions in the mapped space of the graph's
// scales together with provenance Indexes linking every accepted data
// row back to the data it came from. Renderers use the provenance for
// tooltips, hyperlinks and highlighting, so it must be exact.
package geom

import (
	"math"

	"github.com/bits-and-blooms/bitset"
)

// Index is the provenance of one plotted row.
type Index struct {
	// SubRow is the row in the element's working data set (after
	// sorting and sub-setting).
	SubRow int

	// Row is the row of the root data set.
	Row int

	// Col is the root column of the plotted variable, or -1 when
	// the geometry plots no variable.
	Col int
}

// A Geometry is a positioned shape.
type Geometry interface {
	// Indexes returns one Index per accepted row, in plot order.
	Indexes() []Index
}

// Aes holds the visual attributes resolved from an element's frames.
// Unset numeric attributes are NaN (Color, Size) or -1.
type Aes struct {
	Color   float64
	Size    float64
	Shape   int
	Texture int
	Line    int
	Label   string
}

// NoAes returns an Aes with every attribute unset.
func NoAes() Aes {
	return Aes{Color: math.NaN(), Size: math.NaN(), Shape: -1, Texture: -1, Line: -1}
}

// Point is a single plotted tuple.
type Point struct {
	Tuple []float64
	Index Index
	Aes   Aes

	// Weight is the word weight of a word cloud point.
	Weight float64
}

func (g *Point) Indexes() []Index { return []Index{g.Index} }

// Interval is a bar spanning [Base, Top] along the last axis of
// Tuple. Tuple's last element is Top.
type Interval struct {
	Var   string
	Tuple []float64
	Base  float64
	Index Index
	Aes   Aes
}

// Top returns the mapped end of the interval.
func (g *Interval) Top() float64 { return g.Tuple[len(g.Tuple)-1] }

// Delta returns the signed mapped extent of the interval.
func (g *Interval) Delta() float64 { return g.Top() - g.Base }

func (g *Interval) Indexes() []Index { return []Index{g.Index} }

// Line is a polyline through Tuples.
type Line struct {
	Var   string
	Group string
	Aes   Aes

	Tuples [][]float64
	Idx    []Index

	// Nulls has bit i set if row i of the line's row sequence was
	// null. Null rows have no tuple, so the tuples follow the rows
	// whose bits are clear. Renderers break the line at null rows,
	// or draw a fill segment if FillGaps is set.
	Nulls *bitset.BitSet

	FillGaps bool
	Closed   bool
}

func (g *Line) Indexes() []Index { return g.Idx }

// Gap reports whether the line breaks before point i, that is,
// whether null rows lie between Tuples[i-1] and Tuples[i]. Nulls
// before the first point do not break the line.
func (g *Line) Gap(i int) bool {
	if g.Nulls == nil || i <= 0 || i >= len(g.Tuples) {
		return false
	}
	gap := false
	for row, t := uint(0), 0; ; row++ {
		if g.Nulls.Test(row) {
			gap = true
			continue
		}
		if t == i {
			return gap
		}
		gap = false
		t++
	}
}

// Area is a Line filled down to a base line. Bases[i] is the base
// position under Tuples[i].
type Area struct {
	Line
	Bases []float64
}

// Pie3D is a pie drawn with depth. Each slice is an angular interval
// in the mapped space of the pie's scale.
type Pie3D struct {
	Var    string
	Depth  float64
	Slices []PieSlice
}

// PieSlice is one slice of a Pie3D.
type PieSlice struct {
	From, To float64
	Index    Index
	Aes      Aes
}

func (g *Pie3D) Indexes() []Index {
	idx := make([]Index, len(g.Slices))
	for i, s := range g.Slices {
		idx[i] = s.Index
	}
	return idx
}

// ShapeKind is the kind of shape a MapItem lays out.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
	ShapeArc
)

// MapItem is the laid out shape of a tree node. Rect shapes use X, Y,
// W and H; circles use X, Y (center) and R; arcs use Angle0, Angle1,
// R0 and R1.
type MapItem struct {
	Kind       ShapeKind
	X, Y, W, H float64
	R          float64

	Angle0, Angle1 float64
	R0, R1         float64
}

// TreeNode is a node of a treemap-like hierarchy.
type TreeNode struct {
	// Path holds the dimension values from the root to this node.
	Path  []interface{}
	Depth int
	Size  float64
	Item  MapItem
	Aes   Aes

	// Idx is the provenance of the leaf rows under this node.
	Idx []Index
}

func (g *TreeNode) Indexes() []Index { return g.Idx }

// Node is a vertex of a relation diagram.
type Node struct {
	ID    string
	Value interface{}
	X, Y  float64
	Size  float64
	Index Index
	Aes   Aes
}

func (g *Node) Indexes() []Index { return []Index{g.Index} }

// Edge connects two Nodes of a relation diagram.
type Edge struct {
	From, To       string
	X1, Y1, X2, Y2 float64
	Weight         float64
	Index          Index
}

func (g *Edge) Indexes() []Index { return []Index{g.Index} }

// MekkoBar is one segment of a mekko column. X and Y bounds are in
// [0, 1].
type MekkoBar struct {
	Column, Segment interface{}
	Value           float64
	X0, X1, Y0, Y1  float64
	Index           Index
	Aes             Aes
}

func (g *MekkoBar) Indexes() []Index { return []Index{g.Index} }

// ParaboxBox is the box of one value on one parallel axis. Y bounds
// are in [0, 1].
type ParaboxBox struct {
	Axis   int
	Value  interface{}
	Weight float64
	Y0, Y1 float64
	Idx    []Index
}

func (g *ParaboxBox) Indexes() []Index { return g.Idx }

// ParaboxLink is a ribbon between boxes on adjacent axes.
type ParaboxLink struct {
	Axis     int
	From, To interface{}
	Weight   float64
	Idx      []Index
}

func (g *ParaboxLink) Indexes() []Index { return g.Idx }

// Polygon is a closed shape through Tuples.
type Polygon struct {
	Group  string
	Tuples [][]float64
	Idx    []Index
	Aes    Aes
}

func (g *Polygon) Indexes() []Index { return g.Idx }

// Schema is one row drawn by a schema painter, such as a candle.
// Tuple holds the mapped dimensions followed by the mapped painter
// variables.
type Schema struct {
	Painter string
	Tuple   []float64
	Index   Index
	Aes     Aes
}

func (g *Schema) Indexes() []Index { return []Index{g.Index} }
