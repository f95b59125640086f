// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chartspec

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// listFlag is a comma-separated list flag. Repeating the flag
// appends to the list.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(s string) error {
	for _, x := range strings.Split(s, ",") {
		if x = strings.TrimSpace(x); x != "" {
			*l = append(*l, x)
		}
	}
	return nil
}

// ParseElementArgs parses a command-line element description. args[0]
// is the element type and the remaining arguments are flags, for
// example
//
//	interval -dims month -vars sales,profit -color region -stack
func ParseElementArgs(args []string) (ElementSpec, error) {
	var es ElementSpec
	if len(args) == 0 {
		return es, errors.New("empty element description")
	}
	es.Type = args[0]
	if !knownElement(es.Type) {
		return es, fmt.Errorf("%w %q", ErrUnknownElement, es.Type)
	}

	fs := flag.NewFlagSet(es.Type, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var dims, vars, bases, collision listFlag
	fs.Var(&dims, "dims", "dimension `columns`")
	fs.Var(&vars, "vars", "variable `columns`")
	fs.Var(&bases, "bases", "interval base `columns`, one per variable")
	fs.Var(&collision, "collision", "collision `modifiers`")
	stack := fs.Bool("stack", false, "stack geometry (same as -collision stack)")
	fs.StringVar(&es.Color, "color", "", "color `column`")
	fs.StringVar(&es.Size, "size", "", "size `column`")
	fs.StringVar(&es.Shape, "shape", "", "shape `column`")
	fs.StringVar(&es.Texture, "texture", "", "texture `column`")
	fs.StringVar(&es.Line, "line", "", "line style `column`")
	fs.StringVar(&es.Text, "text", "", "label `column`")
	fs.BoolVar(&es.StackGroup, "stackgroup", false, "stack each dimension group separately")
	fs.BoolVar(&es.NegGroup, "neggroup", false, "stack negative values separately")
	fs.BoolVar(&es.IgnoreNull, "ignorenull", false, "drop null rows instead of breaking lines")
	fs.BoolVar(&es.FillGaps, "fillgaps", false, "bridge null gaps")
	fs.BoolVar(&es.StackValue, "stackvalue", false, "stack point values")
	fs.BoolVar(&es.WordCloud, "wordcloud", false, "draw points as a word cloud")
	fs.IntVar(&es.MaxOverlap, "maxoverlap", 0, "points kept per location in large charts")
	fs.StringVar(&es.Layout, "layout", "", "tree or graph `layout`")
	fs.StringVar(&es.Painter, "painter", "", "schema `painter`")
	fs.IntVar(&es.StartRow, "start", 0, "first `row` to plot")
	fs.IntVar(&es.EndRow, "end", 0, "end `row` to plot")
	fs.IntVar(&es.MaxCount, "maxcount", 0, "maximum `rows` to plot")
	if err := fs.Parse(args[1:]); err != nil {
		return es, fmt.Errorf("%s: %w", es.Type, err)
	}
	if fs.NArg() > 0 {
		return es, fmt.Errorf("%s: unexpected arguments %q", es.Type, fs.Args())
	}
	es.Dims, es.Vars, es.Bases, es.Collision = dims, vars, bases, collision
	if *stack {
		es.Collision = append(es.Collision, "stack")
	}
	return es, nil
}
