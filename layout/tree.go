// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout implements the layout algorithms hierarchical and
// relation elements delegate placement to.
//
// Tree layouts position a sized tree of Nodes in the unit square.
// Graph layouts position the vertices of a graph in the unit square.
package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-chartgeom/geom"
)

// Node is a node of a sized tree. Layouts fill in Item.
type Node struct {
	Size     float64
	Children []*Node
	Depth    int
	Item     geom.MapItem

	// Value is an opaque payload for the caller.
	Value interface{}
}

// Walk calls f on n and each of its descendants, parents first.
func (n *Node) Walk(f func(*Node)) {
	f(n)
	for _, c := range n.Children {
		c.Walk(f)
	}
}

// MaxDepth returns the depth of the deepest node under n.
func (n *Node) MaxDepth() int {
	d := n.Depth
	for _, c := range n.Children {
		d = max(d, c.MaxDepth())
	}
	return d
}

// TreeMode selects a tree layout.
type TreeMode int

const (
	Squarify TreeMode = iota
	SliceDice
	Binary
	CirclePack
	Sunburst
	Icicle
)

var treeModeNames = [...]string{"squarify", "slice", "binary", "circle", "sunburst", "icicle"}

func (m TreeMode) String() string {
	if m < 0 || int(m) >= len(treeModeNames) {
		return fmt.Sprintf("TreeMode(%d)", int(m))
	}
	return treeModeNames[m]
}

// ParseTreeMode returns the TreeMode named s.
func ParseTreeMode(s string) (TreeMode, error) {
	for i, n := range treeModeNames {
		if n == s {
			return TreeMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tree layout %q", s)
}

// LayoutTree lays out root in the unit square using mode.
func LayoutTree(root *Node, mode TreeMode) {
	unit := geom.MapItem{Kind: geom.ShapeRect, W: 1, H: 1}
	switch mode {
	case Squarify:
		root.Item = unit
		squarify(root)
	case SliceDice:
		root.Item = unit
		sliceDice(root)
	case Binary:
		root.Item = unit
		binary(root)
	case CirclePack:
		root.Item = geom.MapItem{Kind: geom.ShapeCircle, X: 0.5, Y: 0.5, R: 0.5}
		pack(root)
	case Sunburst:
		ring := 0.5 / float64(root.MaxDepth()-root.Depth+1)
		root.Item = geom.MapItem{Kind: geom.ShapeArc, Angle1: 2 * math.Pi, R1: ring}
		sunburst(root, ring)
	case Icicle:
		band := 1 / float64(root.MaxDepth()-root.Depth+1)
		root.Item = geom.MapItem{Kind: geom.ShapeRect, W: 1, H: band}
		icicle(root, band)
	default:
		panic(fmt.Sprintf("layout.LayoutTree: bad mode %v", mode))
	}
}

// positive returns the children of n with positive size.
func positive(n *Node) []*Node {
	var cs []*Node
	for _, c := range n.Children {
		if c.Size > 0 {
			cs = append(cs, c)
		}
	}
	return cs
}

func childSum(cs []*Node) float64 {
	var s float64
	for _, c := range cs {
		s += c.Size
	}
	return s
}

// squarify lays out the children of n in rows whose aspect ratios
// are as close to 1 as possible, largest children first.
func squarify(n *Node) {
	cs := positive(n)
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].Size > cs[j].Size })
	sum := childSum(cs)
	if sum <= 0 {
		return
	}
	free := n.Item
	scale := free.W * free.H / sum
	var row []*Node
	for len(cs) > 0 {
		c := cs[0]
		side := math.Min(free.W, free.H)
		if len(row) == 0 || worst(append(row, c), side, scale) <= worst(row, side, scale) {
			row = append(row, c)
			cs = cs[1:]
			continue
		}
		free = layoutRow(row, free, scale)
		row = nil
	}
	if len(row) > 0 {
		layoutRow(row, free, scale)
	}
	for _, c := range n.Children {
		squarify(c)
	}
}

// worst returns the worst aspect ratio of row laid along side.
func worst(row []*Node, side, scale float64) float64 {
	var sum, lo, hi float64
	for i, c := range row {
		a := c.Size * scale
		sum += a
		if i == 0 || a < lo {
			lo = a
		}
		if a > hi {
			hi = a
		}
	}
	s2, w2 := sum*sum, side*side
	return math.Max(w2*hi/s2, s2/(w2*lo))
}

// layoutRow places row along the shorter side of free and returns
// the remaining free rectangle.
func layoutRow(row []*Node, free geom.MapItem, scale float64) geom.MapItem {
	var sum float64
	for _, c := range row {
		sum += c.Size * scale
	}
	if free.W >= free.H {
		// Column on the left.
		w := sum / free.H
		y := free.Y
		for _, c := range row {
			h := c.Size * scale / w
			c.Item = geom.MapItem{Kind: geom.ShapeRect, X: free.X, Y: y, W: w, H: h}
			y += h
		}
		free.X += w
		free.W -= w
	} else {
		h := sum / free.W
		x := free.X
		for _, c := range row {
			w := c.Size * scale / h
			c.Item = geom.MapItem{Kind: geom.ShapeRect, X: x, Y: free.Y, W: w, H: h}
			x += w
		}
		free.Y += h
		free.H -= h
	}
	return free
}

// sliceDice alternates between slicing horizontally and vertically at
// each depth.
func sliceDice(n *Node) {
	cs := positive(n)
	sum := childSum(cs)
	r := n.Item
	off := 0.0
	for _, c := range cs {
		f := c.Size / sum
		if n.Depth%2 == 0 {
			c.Item = geom.MapItem{Kind: geom.ShapeRect, X: r.X + off*r.W, Y: r.Y, W: f * r.W, H: r.H}
		} else {
			c.Item = geom.MapItem{Kind: geom.ShapeRect, X: r.X, Y: r.Y + off*r.H, W: r.W, H: f * r.H}
		}
		off += f
	}
	for _, c := range cs {
		sliceDice(c)
	}
}

// binary splits the children of n into two groups of nearly equal
// size, divides the longer side of n between them and recurses.
func binary(n *Node) {
	cs := positive(n)
	splitBinary(cs, n.Item)
	for _, c := range cs {
		binary(c)
	}
}

func splitBinary(cs []*Node, r geom.MapItem) {
	switch len(cs) {
	case 0:
		return
	case 1:
		cs[0].Item = r
		return
	}
	total := childSum(cs)
	k, acc := 1, cs[0].Size
	for k < len(cs)-1 && math.Abs(total/2-(acc+cs[k].Size)) < math.Abs(total/2-acc) {
		acc += cs[k].Size
		k++
	}
	f := acc / total
	a, b := r, r
	if r.W >= r.H {
		a.W = r.W * f
		b.X, b.W = r.X+a.W, r.W-a.W
	} else {
		a.H = r.H * f
		b.Y, b.H = r.Y+a.H, r.H-a.H
	}
	splitBinary(cs[:k], a)
	splitBinary(cs[k:], b)
}

// pack places the children of n as circles inside n's circle. Each
// child is inscribed in an angular sector proportional to its size,
// so children never overlap each other or leave their parent.
func pack(n *Node) {
	cs := positive(n)
	sum := childSum(cs)
	p := n.Item
	if len(cs) == 1 {
		c := cs[0]
		c.Item = geom.MapItem{Kind: geom.ShapeCircle, X: p.X, Y: p.Y, R: p.R * 0.9}
	} else {
		angle := 0.0
		for _, c := range cs {
			theta := 2 * math.Pi * c.Size / sum
			s := math.Sin(math.Min(theta, math.Pi) / 2)
			r := math.Min(p.R*s/(1+s), p.R*math.Sqrt(c.Size/sum))
			mid := angle + theta/2
			d := p.R - r
			c.Item = geom.MapItem{Kind: geom.ShapeCircle, X: p.X + d*math.Cos(mid), Y: p.Y + d*math.Sin(mid), R: r}
			angle += theta
		}
	}
	for _, c := range cs {
		pack(c)
	}
}

// sunburst divides the angle of n among its children on the next
// ring out.
func sunburst(n *Node, ring float64) {
	cs := positive(n)
	sum := childSum(cs)
	p := n.Item
	a := p.Angle0
	for _, c := range cs {
		span := (p.Angle1 - p.Angle0) * c.Size / sum
		c.Item = geom.MapItem{
			Kind:   geom.ShapeArc,
			Angle0: a, Angle1: a + span,
			R0: p.R1, R1: p.R1 + ring,
		}
		a += span
	}
	for _, c := range cs {
		sunburst(c, ring)
	}
}

// icicle stacks each depth as a band below its parent, dividing the
// parent's width among its children.
func icicle(n *Node, band float64) {
	cs := positive(n)
	sum := childSum(cs)
	p := n.Item
	x := p.X
	for _, c := range cs {
		w := p.W * c.Size / sum
		c.Item = geom.MapItem{Kind: geom.ShapeRect, X: x, Y: p.Y + band, W: w, H: band}
		x += w
	}
	for _, c := range cs {
		icicle(c, band)
	}
}
