// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/aclements/go-chartgeom/geom"
	"github.com/aclements/go-gg/table"
)

// geometryTable summarizes gs as a table with one row per geometry.
func geometryTable(gs []geom.Geometry) *table.Table {
	var kinds, vars, pos []string
	var rows, ns []int
	for _, g := range gs {
		kind := strings.ToLower(strings.TrimPrefix(fmt.Sprintf("%T", g), "*geom."))
		v, p := describe(g)
		row := -1
		if idx := g.Indexes(); len(idx) > 0 {
			row = idx[0].Row
		}
		kinds = append(kinds, kind)
		vars = append(vars, v)
		pos = append(pos, p)
		rows = append(rows, row)
		ns = append(ns, len(g.Indexes()))
	}
	return new(table.Builder).
		Add("geom", kinds).
		Add("var", vars).
		Add("row", rows).
		Add("n", ns).
		Add("pos", pos).
		Done()
}

// describe returns the variable a geometry plots, if any, and its
// position in coordinate space.
func describe(g geom.Geometry) (string, string) {
	switch g := g.(type) {
	case *geom.Point:
		return "", tuple(g.Tuple)
	case *geom.Interval:
		return g.Var, fmt.Sprintf("%s base %.4g", tuple(g.Tuple), g.Base)
	case *geom.Line:
		return g.Var, tuples(g.Tuples)
	case *geom.Area:
		return g.Var, tuples(g.Tuples)
	case *geom.Pie3D:
		parts := make([]string, len(g.Slices))
		for i, s := range g.Slices {
			parts[i] = fmt.Sprintf("%.4g-%.4g", s.From, s.To)
		}
		return g.Var, strings.Join(parts, " ")
	case *geom.TreeNode:
		return fmt.Sprint(g.Path...), fmt.Sprintf("(%.4g,%.4g %.4gx%.4g) size %.4g", g.Item.X, g.Item.Y, g.Item.W, g.Item.H, g.Size)
	case *geom.Node:
		return g.ID, fmt.Sprintf("(%.4g,%.4g)", g.X, g.Y)
	case *geom.Edge:
		return g.From + "-" + g.To, fmt.Sprintf("(%.4g,%.4g)-(%.4g,%.4g)", g.X1, g.Y1, g.X2, g.Y2)
	case *geom.MekkoBar:
		return fmt.Sprint(g.Column, "/", g.Segment), fmt.Sprintf("x %.4g-%.4g y %.4g-%.4g", g.X0, g.X1, g.Y0, g.Y1)
	case *geom.ParaboxBox:
		return fmt.Sprint(g.Value), fmt.Sprintf("axis %d y %.4g-%.4g", g.Axis, g.Y0, g.Y1)
	case *geom.ParaboxLink:
		return fmt.Sprint(g.From, "-", g.To), fmt.Sprintf("axis %d weight %.4g", g.Axis, g.Weight)
	case *geom.Polygon:
		return g.Group, tuples(g.Tuples)
	case *geom.Schema:
		return g.Painter, tuple(g.Tuple)
	}
	return "", ""
}

func tuple(t []float64) string {
	parts := make([]string, len(t))
	for i, x := range t {
		parts[i] = fmt.Sprintf("%.4g", x)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func tuples(ts [][]float64) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = tuple(t)
	}
	return strings.Join(parts, " ")
}
