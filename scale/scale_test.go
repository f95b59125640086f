// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"math"
	"testing"

	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
)

func testData() dataset.DataSet {
	return dataset.NewTable(new(table.Builder).
		Add("month", []string{"feb", "jan", "feb", "mar"}).
		Add("sales", []float64{20, -5, math.NaN(), 100}).
		Add("qty", []float64{2, 1, 4, 1000}).
		Done())
}

func TestLinear(t *testing.T) {
	s := NewLinear("sales")
	s.Init(testData())
	assert.Equal(t, -5.0, s.Min())
	assert.Equal(t, 100.0, s.Max())
	assert.Equal(t, 20.0, s.Map(20))
	assert.True(t, math.IsNaN(s.Map("x")))
	assert.Equal(t, 30.0, s.Add(20, 10))

	s.SetMin(0)
	assert.Equal(t, 0.0, s.Min())
	assert.Equal(t, 0.0, Clip(s, -5))
	assert.Equal(t, 100.0, Clip(s, 200))
	assert.Equal(t, 0.0, Clip(s, math.NaN()))

	s.Reversed = true
	assert.Equal(t, -0.0, s.Min())
	assert.Equal(t, -100.0, s.Max())
	assert.Equal(t, -20.0, s.Map(20))
	assert.Equal(t, -30.0, s.Add(-20, 10))
	assert.Equal(t, -100.0, Lo(s))
	assert.Equal(t, 0.0, Hi(s))
	assert.Equal(t, 0.0, Clip(s, s.Map(-10)))
}

func TestLinearDefaults(t *testing.T) {
	s := NewLinear("y")
	assert.Equal(t, -1.0, s.Min())
	assert.Equal(t, 1.0, s.Max())
	s.Include(5)
	assert.Equal(t, 5.0, s.Min())
	s.Include(0)
	assert.Equal(t, 0.0, s.Min())
	assert.Equal(t, 5.0, s.Max())

	s2 := s.Copy()
	s2.Include(50)
	assert.Equal(t, 5.0, s.Max())
	assert.Equal(t, 50.0, s2.Max())
}

func TestLinearTicks(t *testing.T) {
	s := NewLinear("y").SetMin(0).SetMax(100)
	ticks := s.Ticks(6)
	assert.NotEmpty(t, ticks)
	assert.LessOrEqual(t, len(ticks), 6)
	for _, x := range ticks {
		assert.GreaterOrEqual(t, x, 0.0)
		assert.LessOrEqual(t, x, 100.0)
	}
}

func TestLog(t *testing.T) {
	s := NewLog("qty")
	s.Init(testData())
	assert.Equal(t, 0.0, s.Min())
	assert.Equal(t, 3.0, s.Max())
	assert.InDelta(t, 2.0, s.Map(100), 1e-12)
	assert.True(t, math.IsNaN(s.Map(0)))

	// Value-space add: 10 + 90 = 100.
	assert.InDelta(t, 2.0, s.Add(1, 90), 1e-12)

	s.Reversed = true
	assert.InDelta(t, -2.0, s.Map(100), 1e-12)
	assert.InDelta(t, -2.0, s.Add(-1, 90), 1e-12)
}

func TestCategorical(t *testing.T) {
	s := NewCategorical("month")
	s.Init(testData())
	assert.Equal(t, []interface{}{"feb", "jan", "mar"}, s.Values())
	assert.Equal(t, 1.0, s.Map("jan"))
	assert.True(t, math.IsNaN(s.Map("apr")))
	assert.Equal(t, 0.0, s.Min())
	assert.Equal(t, 2.0, s.Max())
	assert.True(t, HasField(s, "month"))
	assert.False(t, HasField(s, "sales"))

	s2 := NewCategorical("month")
	s2.Cmp = dataset.Reverse(dataset.Natural)
	s2.Init(testData())
	assert.Equal(t, []interface{}{"mar", "jan", "feb"}, s2.Values())
}
