// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

import (
	"math"

	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/geom"
	"github.com/aclements/go-chartgeom/graph"
	"github.com/aclements/go-chartgeom/layout"
	"github.com/aclements/go-moremath/vec"
)

// Treemap nests rows into a tree by the values of its dimensions,
// outermost first, and lays the tree out with Mode.
//
// Leaf sizes come from the size frame, or else the first variable,
// or else count 1 per row. A parent's size is the sum of its
// children's sizes.
type Treemap struct {
	Base

	Mode layout.TreeMode
}

// NewTreemap returns a treemap element nesting rows by dims.
func NewTreemap(mode layout.TreeMode, dims []string, vars ...string) *Treemap {
	e := &Treemap{Mode: mode}
	e.Dims = append([]string(nil), dims...)
	e.Vars = append([]string(nil), vars...)
	return e
}

func (e *Treemap) CreateGeometry(data dataset.DataSet, g *graph.Graph) error {
	return create(e, data, g)
}

func (e *Treemap) Clone() Element {
	e2 := *e
	e2.Base = e.Base.clone()
	return &e2
}

// treeItem is the payload of a tree node.
type treeItem struct {
	path []interface{}
	aes  geom.Aes
	idx  []geom.Index
}

// sortByDims returns data sorted by dims, outermost first.
func sortByDims(data dataset.DataSet, dims []string) dataset.DataSet {
	var keys []dataset.SortKey
	for _, d := range dims {
		if col := data.IndexOfHeader(d); col >= 0 {
			keys = append(keys, dataset.SortKey{Col: col})
		}
	}
	if len(keys) == 0 {
		return data
	}
	return dataset.NewSorted(data, keys...)
}

func (e *Treemap) build(rc *renderContext) error {
	e.begin(rc, sortByDims(rc.in, e.Dims))
	root := e.buildTree(rc)
	if len(root.Children) == 0 {
		return nil
	}
	sumTree(root)
	layout.LayoutTree(root, e.Mode)
	root.Walk(func(n *layout.Node) {
		it := n.Value.(*treeItem)
		rc.emit(&geom.TreeNode{
			Path:  it.path,
			Depth: n.Depth,
			Size:  n.Size,
			Item:  n.Item,
			Aes:   it.aes,
			Idx:   it.idx,
		})
	})
	return nil
}

// buildTree nests the rows of rc's window. Consecutive rows sharing
// a prefix of dimension values share the nodes of that prefix.
func (e *Treemap) buildTree(rc *renderContext) *layout.Node {
	root := &layout.Node{Value: &treeItem{aes: geom.NoAes()}}
	open := []*layout.Node{root}
	var openPath []interface{}
	for row := rc.start; row < rc.end; row++ {
		size, ok := e.leafSize(rc, row)
		if !ok {
			rc.g.Advise("Treemap rows with a zero, negative or missing size are not shown.")
			continue
		}
		path := make([]interface{}, len(e.Dims))
		for i, d := range e.Dims {
			path[i] = rc.value(d, row)
		}
		k := commonPrefix(openPath, path)
		open, openPath = open[:k+1], openPath[:k]
		for i := k; i < len(path); i++ {
			parent := open[len(open)-1]
			n := &layout.Node{
				Depth: i + 1,
				Value: &treeItem{path: path[:i+1:i+1], aes: e.aes(rc, row)},
			}
			parent.Children = append(parent.Children, n)
			open = append(open, n)
			openPath = append(openPath, path[i])
		}
		leaf := open[len(open)-1]
		leaf.Size += size
		it := leaf.Value.(*treeItem)
		it.idx = append(it.idx, rc.index(row, e.sizeColumn()))
	}
	return root
}

// commonPrefix returns the length of the common prefix of a and b.
func commonPrefix(a, b []interface{}) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if dataset.Natural.Compare(a[i], b[i]) != 0 {
			return i
		}
	}
	return n
}

// sizeColumn returns the column leaf sizes come from, or "".
func (e *Treemap) sizeColumn() string {
	if e.Size != nil {
		return e.Size.Field()
	}
	if len(e.Vars) > 0 {
		return e.Vars[0]
	}
	return ""
}

// leafSize returns the size of row. It reports false if the size is
// not positive.
func (e *Treemap) leafSize(rc *renderContext, row int) (float64, bool) {
	col := e.sizeColumn()
	if col == "" {
		return 1, true
	}
	v := rc.float(col, row)
	if math.IsNaN(v) || v <= 0 {
		return 0, false
	}
	return v, true
}

// sumTree sets the size of each interior node under n to the sum of
// its children's sizes and collects their provenance.
func sumTree(n *layout.Node) {
	if len(n.Children) == 0 {
		return
	}
	sizes := make([]float64, len(n.Children))
	it := n.Value.(*treeItem)
	for i, c := range n.Children {
		sumTree(c)
		sizes[i] = c.Size
		it.idx = append(it.idx, c.Value.(*treeItem).idx...)
	}
	n.Size = vec.Sum(sizes)
}
