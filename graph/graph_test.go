// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"sync"
	"testing"

	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/frame"
	"github.com/aclements/go-chartgeom/geom"
	"github.com/aclements/go-chartgeom/scale"
	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData() dataset.DataSet {
	return dataset.NewTable(new(table.Builder).
		Add("month", []string{"jan", "feb", "mar"}).
		Add("sales", []float64{10, 20, 30}).
		Done())
}

func TestResolveScale(t *testing.T) {
	g := New(nil)
	data := testData()

	_, ok := g.Scale("sales")
	assert.False(t, ok, "Scale must not create")

	s, created := g.ResolveScale("sales", data)
	require.NotNil(t, s)
	assert.True(t, created)
	assert.IsType(t, &scale.Linear{}, s)
	assert.Equal(t, 0.0, s.Min())
	assert.Equal(t, 30.0, s.Max())

	s2, created := g.ResolveScale("sales", data)
	assert.False(t, created)
	assert.Same(t, s, s2)

	c, created := g.ResolveScale("month", data)
	assert.True(t, created)
	assert.IsType(t, &scale.Categorical{}, c)
	assert.Equal(t, 1.0, c.Map("feb"))

	none, created := g.ResolveScale("profit", data)
	assert.Nil(t, none)
	assert.False(t, created)

	assert.Equal(t, []string{"month", "sales"}, g.Fields())
}

func TestSetScale(t *testing.T) {
	g := New(nil)
	s := scale.NewLinear("sales", "profit")
	g.SetScale(s)
	for _, f := range []string{"sales", "profit"} {
		got, ok := g.Scale(f)
		require.True(t, ok)
		assert.Same(t, s, got)
	}
	assert.Equal(t, "rect", g.Coordinate().Name())
}

func TestShareFrame(t *testing.T) {
	g := New(nil)
	a := frame.NewColor("month")
	b := frame.NewColor("month")
	b.SetShareID(a.ShareID())
	assert.Same(t, a, g.ShareFrame(a))
	assert.Same(t, a, g.ShareFrame(b))

	c := frame.NewColor("month")
	assert.Same(t, c, g.ShareFrame(c))
	assert.Nil(t, g.ShareFrame(nil))
}

func TestConcurrentAdd(t *testing.T) {
	g := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				g.AddGeometry(&geom.Point{Index: geom.Index{SubRow: j, Row: j, Col: i}})
				g.Advise("truncated")
			}
		}(i)
	}
	wg.Wait()
	assert.Len(t, g.Geometries(), 800)
	assert.Equal(t, []string{"truncated"}, g.Advisories())
}
