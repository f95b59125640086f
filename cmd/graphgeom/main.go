// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command graphgeom turns a table of data into chart geometry.
//
// graphgeom reads a CSV or XLSX file whose first row holds column
// names, builds the elements of a chart over it, and prints the
// resulting geometry as a table, one row per plotted data row.
//
// Elements come from a YAML chart file (-chart) and from -element
// flags, each a shell-quoted element description:
//
//	graphgeom -element "interval -dims month -vars sales -stack" sales.csv
//
// Without elements, or with -table, graphgeom prints the input table.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/aclements/go-chartgeom/chartspec"
	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/element"
	"github.com/aclements/go-gg/table"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

var (
	flagChart      string
	flagElements   []string
	flagSheet      string
	flagAgg        string
	flagAggFn      string
	flagOut        string
	flagTable      bool
	flagVerbose    bool
	flagCPUProfile string
	flagMemProfile string
)

func main() {
	log.SetPrefix("graphgeom: ")
	log.SetFlags(0)

	rootCmd := &cobra.Command{
		Use:   "graphgeom [flags] data.csv|data.xlsx",
		Short: "Compute chart geometry for a table of data",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	f := rootCmd.Flags()
	f.StringVar(&flagChart, "chart", "", "read the chart description from YAML `file`")
	f.StringArrayVar(&flagElements, "element", nil, "add an element described by `desc` (repeatable)")
	f.StringVar(&flagSheet, "sheet", "", "read `sheet` of an XLSX file (default: first sheet)")
	f.StringVar(&flagAgg, "agg", "", "aggregate measures over rows with equal `cols` (comma-separated)")
	f.StringVar(&flagAggFn, "aggfn", "mean", "aggregate with `fn`: mean, min, max or geomean")
	f.StringVarP(&flagOut, "output", "o", "", "write output to `file` (default: stdout)")
	f.BoolVar(&flagTable, "table", false, "print the input table instead of geometry")
	f.BoolVarP(&flagVerbose, "verbose", "v", false, "log debug messages")
	f.StringVar(&flagCPUProfile, "cpuprofile", "", "write CPU profile to `file`")
	f.StringVar(&flagMemProfile, "memprofile", "", "write heap profile to `file`")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if flagCPUProfile != "" {
		f, err := os.Create(flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if flagMemProfile != "" {
		defer func() {
			runtime.GC()
			f, err := os.Create(flagMemProfile)
			if err != nil {
				log.Fatal(err)
			}
			pprof.WriteHeapProfile(f)
			f.Close()
		}()
	}

	// Load the chart.
	chart := chartspec.Default()
	if flagChart != "" {
		var err error
		if chart, err = chartspec.Load(flagChart); err != nil {
			return err
		}
	}
	for _, desc := range flagElements {
		words, err := shellquote.Split(desc)
		if err != nil {
			return fmt.Errorf("element %q: %w", desc, err)
		}
		es, err := chartspec.ParseElementArgs(words)
		if err != nil {
			return err
		}
		chart.Elements = append(chart.Elements, es)
	}

	// Load the data.
	tab, err := readTable(args[0], flagSheet)
	if err != nil {
		return err
	}
	if flagAgg != "" {
		if tab, err = aggregate(tab, strings.Split(flagAgg, ","), flagAggFn); err != nil {
			return err
		}
	}

	// Prepare for output.
	var w io.Writer = os.Stdout
	if flagOut != "" {
		f, err := os.Create(flagOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if flagTable || len(chart.Elements) == 0 {
		table.Fprint(w, tab)
		return nil
	}

	// Build geometry.
	data := dataset.NewTable(tab)
	g, elems, err := chart.Build(data)
	if err != nil {
		return err
	}
	if err := element.CreateGeometries(context.Background(), data, g, elems...); err != nil {
		return err
	}
	for _, msg := range g.Advisories() {
		log.Print(msg)
	}
	table.Fprint(w, geometryTable(g.Geometries()))
	return nil
}
