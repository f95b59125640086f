// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/xuri/excelize/v2"
)

// readTable reads the table in the CSV or XLSX file at path. sheet
// selects the sheet of an XLSX file.
func readTable(path, sheet string) (*table.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path, sheet)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readCSV(f)
}

func readCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return recordsToTable(records)
}

func readXLSX(path, sheet string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recordsToTable(rows)
}

// recordsToTable builds a table from a header record and data
// records. A column whose non-empty cells all parse as numbers
// becomes a float64 column with NaN for empty cells. Other columns
// are strings.
func recordsToTable(records [][]string) (*table.Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	header, rows := records[0], records[1:]
	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	b := new(table.Builder)
	for i, name := range header {
		strs := make([]string, len(rows))
		nums := make([]float64, len(rows))
		numeric, nonEmpty := true, false
		for r, row := range rows {
			s := cell(row, i)
			strs[r] = s
			if s == "" {
				nums[r] = math.NaN()
				continue
			}
			nonEmpty = true
			x, err := strconv.ParseFloat(s, 64)
			if err != nil {
				numeric = false
				continue
			}
			nums[r] = x
		}
		if numeric && nonEmpty {
			b.Add(name, nums)
		} else {
			b.Add(name, strs)
		}
	}
	return b.Done(), nil
}

var aggPrefix = map[string]string{
	"mean":    "mean ",
	"min":     "min ",
	"max":     "max ",
	"geomean": "geomean ",
}

// aggregate collapses the rows of tab with equal values of cols into
// one row, aggregating every other float64 column with fn.
func aggregate(tab *table.Table, cols []string, fn string) (*table.Table, error) {
	prefix, ok := aggPrefix[fn]
	if !ok {
		return nil, fmt.Errorf("unknown aggregate %q", fn)
	}
	for _, c := range cols {
		if tab.Column(c) == nil {
			return nil, fmt.Errorf("unknown column %q", c)
		}
	}
	var measures []string
	for _, c := range tab.Columns() {
		if _, ok := tab.Column(c).([]float64); ok && !slices.Contains(cols, c) {
			measures = append(measures, c)
		}
	}
	if len(measures) == 0 {
		return nil, fmt.Errorf("no numeric columns to aggregate")
	}

	agg := ggstat.Agg(cols...)
	var g table.Grouping
	switch fn {
	case "mean":
		g = agg(ggstat.AggMean(measures...)).F(tab)
	case "min":
		g = agg(ggstat.AggMin(measures...)).F(tab)
	case "max":
		g = agg(ggstat.AggMax(measures...)).F(tab)
	case "geomean":
		g = agg(ggstat.AggGeoMean(measures...)).F(tab)
	}
	for _, m := range measures {
		g = table.Rename(g, prefix+m, m)
	}
	return table.Flatten(g), nil
}
