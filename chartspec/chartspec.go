// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chartspec describes charts declaratively and builds the
// graph and elements they describe.
//
// A chart is usually loaded from a YAML file:
//
//	coord:
//	  type: rect
//	scales:
//	  - type: log
//	    fields: [cost]
//	elements:
//	  - type: interval
//	    dims: [month]
//	    vars: [sales]
//	    color: region
//	    collision: [stack]
//
// Elements can also be described on a command line with
// ParseElementArgs, for example "interval -dims month -vars sales
// -stack".
package chartspec

import (
	"errors"
	"fmt"
	"os"

	"github.com/aclements/go-chartgeom/coord"
	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/element"
	"github.com/aclements/go-chartgeom/frame"
	"github.com/aclements/go-chartgeom/graph"
	"github.com/aclements/go-chartgeom/layout"
	"github.com/aclements/go-chartgeom/scale"
	"gopkg.in/yaml.v3"
)

// ErrUnknownElement is returned for an element type that does not
// exist.
var ErrUnknownElement = errors.New("unknown element type")

// Chart is the root of a chart description.
type Chart struct {
	Coord    CoordSpec     `yaml:"coord"`
	Scales   []ScaleSpec   `yaml:"scales"`
	Elements []ElementSpec `yaml:"elements"`
}

// CoordSpec selects the coordinate of a chart.
type CoordSpec struct {
	// Type is rect, polar or pie3d.
	Type string `yaml:"type"`

	// Axes is the number of axes of a rect or polar coordinate.
	Axes int `yaml:"axes"`

	// AxisOrder orders the angular axes of a polar coordinate.
	AxisOrder []string `yaml:"axis_order"`

	// Depth is the depth of a pie3d coordinate.
	Depth float64 `yaml:"depth"`
}

// ScaleSpec describes a scale bound to one or more columns. Columns
// without a scale get a default scale from their data.
type ScaleSpec struct {
	// Type is linear, log or categorical.
	Type     string   `yaml:"type"`
	Fields   []string `yaml:"fields"`
	Reversed bool     `yaml:"reversed"`

	// Min and Max fix the domain of linear and log scales.
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`

	// Values fixes the order of a categorical scale.
	Values []string `yaml:"values"`
}

// ElementSpec describes one element.
type ElementSpec struct {
	Type  string   `yaml:"type"`
	Dims  []string `yaml:"dims"`
	Vars  []string `yaml:"vars"`
	Bases []string `yaml:"bases"`

	Color   string `yaml:"color"`
	Size    string `yaml:"size"`
	Shape   string `yaml:"shape"`
	Texture string `yaml:"texture"`
	Line    string `yaml:"line"`
	Text    string `yaml:"text"`

	// Collision lists collision modifiers: center, dodge, stack,
	// jitter, middle.
	Collision  []string `yaml:"collision"`
	StackGroup bool     `yaml:"stack_group"`
	NegGroup   bool     `yaml:"neg_group"`

	IgnoreNull bool `yaml:"ignore_null"`
	FillGaps   bool `yaml:"fill_gaps"`

	StackValue bool `yaml:"stack_value"`
	WordCloud  bool `yaml:"word_cloud"`
	MaxOverlap int  `yaml:"max_overlap"`

	// Layout names the tree layout of a treemap or the graph
	// layout of a relation.
	Layout string `yaml:"layout"`

	// Painter is candle, stock or boxplot. The painter's columns
	// are taken from Vars in order.
	Painter string `yaml:"painter"`

	StartRow int `yaml:"start_row"`
	EndRow   int `yaml:"end_row"`
	MaxCount int `yaml:"max_count"`
}

// Default returns an empty chart in a 2D rectangular coordinate.
func Default() *Chart {
	return &Chart{Coord: CoordSpec{Type: "rect", Axes: 2}}
}

// Load reads a chart from the YAML file at path.
func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chart: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse parses a YAML chart description over Default.
func Parse(data []byte) (*Chart, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing chart: %w", err)
	}
	for _, e := range c.Elements {
		if !knownElement(e.Type) {
			return nil, fmt.Errorf("%w %q", ErrUnknownElement, e.Type)
		}
	}
	return c, nil
}

// Build returns a graph for data with the chart's coordinate and
// scales, and the chart's elements with their frames initialized
// from data and shared through the graph.
func (c *Chart) Build(data dataset.DataSet) (*graph.Graph, []element.Element, error) {
	co, err := c.Coord.coordinate()
	if err != nil {
		return nil, nil, err
	}
	g := graph.New(co)
	for _, ss := range c.Scales {
		s, err := ss.scale(data)
		if err != nil {
			return nil, nil, err
		}
		g.SetScale(s)
	}
	var elems []element.Element
	for _, es := range c.Elements {
		e, err := es.Element()
		if err != nil {
			return nil, nil, err
		}
		b := element.BaseOf(e)
		b.InitFrames(data)
		b.ShareFrames(g)
		elems = append(elems, e)
	}
	return g, elems, nil
}

func (cs CoordSpec) coordinate() (coord.Coordinate, error) {
	switch cs.Type {
	case "", "rect":
		if cs.Axes == 0 {
			return coord.NewRect(), nil
		}
		return &coord.Rect{N: cs.Axes}, nil
	case "polar":
		n := cs.Axes
		if n == 0 {
			n = 1
		}
		return &coord.Polar{N: n, Axes: cs.AxisOrder}, nil
	case "pie3d":
		return &coord.Pie3D{Depth: cs.Depth}, nil
	}
	return nil, fmt.Errorf("unknown coordinate %q", cs.Type)
}

func (ss ScaleSpec) scale(data dataset.DataSet) (scale.Scale, error) {
	if len(ss.Fields) == 0 {
		return nil, fmt.Errorf("%s scale has no fields", ss.Type)
	}
	switch ss.Type {
	case "", "linear":
		s := scale.NewLinear(ss.Fields...)
		s.Reversed = ss.Reversed
		s.Init(data)
		if ss.Min != nil {
			s.SetMin(*ss.Min)
		}
		if ss.Max != nil {
			s.SetMax(*ss.Max)
		}
		return s, nil
	case "log":
		s := scale.NewLog(ss.Fields...)
		s.Reversed = ss.Reversed
		if ss.Min != nil && ss.Max != nil {
			s.SetDomain(*ss.Min, *ss.Max)
		} else {
			s.Init(data)
		}
		return s, nil
	case "categorical":
		s := scale.NewCategorical(ss.Fields...)
		if len(ss.Values) > 0 {
			vals := make([]interface{}, len(ss.Values))
			for i, v := range ss.Values {
				vals[i] = v
			}
			s.SetValues(vals...)
		} else {
			s.Init(data)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown scale type %q", ss.Type)
}

var elementTypes = []string{
	"interval", "line", "area", "radar", "point",
	"treemap", "relation", "mekko", "parabox", "polygon", "schema",
}

func knownElement(typ string) bool {
	for _, t := range elementTypes {
		if t == typ {
			return true
		}
	}
	return false
}

var collisions = map[string]element.Collision{
	"center": element.Center,
	"dodge":  element.Dodge,
	"stack":  element.Stack,
	"jitter": element.Jitter,
	"middle": element.Middle,
}

// Element returns the element described by es.
func (es ElementSpec) Element() (element.Element, error) {
	var e element.Element
	var st *element.Stackable
	switch es.Type {
	case "interval":
		iv := element.NewInterval(es.Dims, es.Vars...)
		iv.Bases = append([]string(nil), es.Bases...)
		e, st = iv, &iv.Stackable
	case "line":
		l := element.NewLine(es.Dims, es.Vars...)
		l.IgnoreNull, l.FillGaps = es.IgnoreNull, es.FillGaps
		e, st = l, &l.Stackable
	case "area":
		a := element.NewArea(es.Dims, es.Vars...)
		a.Bases = append([]string(nil), es.Bases...)
		a.IgnoreNull, a.FillGaps = es.IgnoreNull, es.FillGaps
		e, st = a, &a.Stackable
	case "radar":
		r := element.NewRadar(es.Dims, es.Vars...)
		r.IgnoreNull, r.FillGaps = es.IgnoreNull, es.FillGaps
		e, st = r, &r.Stackable
	case "point":
		p := element.NewPoint(es.Dims, es.Vars...)
		p.StackValue, p.WordCloud, p.MaxOverlap = es.StackValue, es.WordCloud, es.MaxOverlap
		e, st = p, &p.Stackable
	case "treemap":
		mode := layout.Squarify
		if es.Layout != "" {
			var err error
			if mode, err = layout.ParseTreeMode(es.Layout); err != nil {
				return nil, err
			}
		}
		e = element.NewTreemap(mode, es.Dims, es.Vars...)
	case "relation":
		if len(es.Dims) != 2 {
			return nil, fmt.Errorf("relation needs source and target dims, have %v", es.Dims)
		}
		mode := layout.Circle
		if es.Layout != "" {
			var err error
			if mode, err = layout.ParseGraphMode(es.Layout); err != nil {
				return nil, err
			}
		}
		e = element.NewRelation(mode, es.Dims[0], es.Dims[1], es.Vars...)
	case "mekko":
		if len(es.Dims) < 1 || len(es.Dims) > 2 || len(es.Vars) != 1 {
			return nil, fmt.Errorf("mekko needs 1 or 2 dims and 1 var, have %v and %v", es.Dims, es.Vars)
		}
		seg := ""
		if len(es.Dims) == 2 {
			seg = es.Dims[1]
		}
		e = element.NewMekko(es.Dims[0], seg, es.Vars[0])
	case "parabox":
		e = element.NewParabox(es.Dims, es.Vars...)
	case "polygon":
		e = element.NewPolygon(es.Dims, es.Vars...)
	case "schema":
		p, err := painter(es.Painter, es.Vars)
		if err != nil {
			return nil, err
		}
		e = element.NewSchema(es.Dims, p)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownElement, es.Type)
	}

	if st != nil {
		st.StackGroup, st.NegGroup = es.StackGroup, es.NegGroup
	}
	b := element.BaseOf(e)
	for _, c := range es.Collision {
		bit, ok := collisions[c]
		if !ok {
			return nil, fmt.Errorf("unknown collision %q", c)
		}
		b.Collision |= bit
	}
	b.StartRow, b.EndRow, b.MaxCount = es.StartRow, es.EndRow, es.MaxCount
	for _, f := range []struct {
		kind  frame.Kind
		field string
	}{
		{frame.KindColor, es.Color},
		{frame.KindSize, es.Size},
		{frame.KindShape, es.Shape},
		{frame.KindTexture, es.Texture},
		{frame.KindLine, es.Line},
		{frame.KindText, es.Text},
	} {
		if f.field != "" {
			b.SetFrame(sharedFrame(f.kind, f.field))
		}
	}
	return e, nil
}

// sharedFrame returns a frame of kind k over field that shares its
// mapping with every other chart frame of the same kind and field.
func sharedFrame(k frame.Kind, field string) frame.Frame {
	f := frame.New(k, field)
	if s, ok := f.(interface{ SetShareID(string) }); ok {
		s.SetShareID(k.String() + ":" + field)
	}
	return f
}

func painter(name string, vars []string) (element.SchemaPainter, error) {
	need := map[string]int{"candle": 4, "stock": 3, "boxplot": 5}
	n, ok := need[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema painter %q", name)
	}
	if len(vars) != n {
		return nil, fmt.Errorf("%s painter needs %d vars, have %d", name, n, len(vars))
	}
	switch name {
	case "candle":
		return element.Candle{Open: vars[0], High: vars[1], Low: vars[2], Close: vars[3]}, nil
	case "stock":
		return element.Stock{High: vars[0], Low: vars[1], Close: vars[2]}, nil
	}
	return element.BoxPlot{Min: vars[0], Q1: vars[1], Median: vars[2], Q3: vars[3], Max: vars[4]}, nil
}
