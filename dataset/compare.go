// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders cell values. Compare returns a negative number
// if a sorts before b, a positive number if a sorts after b, and 0
// if they are equivalent.
type Comparator interface {
	Compare(a, b interface{}) int
}

// ComparatorFunc adapts a function to a Comparator.
type ComparatorFunc func(a, b interface{}) int

func (f ComparatorFunc) Compare(a, b interface{}) int {
	return f(a, b)
}

// ValueOrderer is implemented by comparators that rank values by
// some measure associated with them (for example a top-N ranking)
// rather than by the values themselves. Two distinct values may rank
// equal under such a comparator.
type ValueOrderer interface {
	ValueOrdered() bool
}

// IsValueOrdered reports whether c ranks values by an associated
// measure.
func IsValueOrdered(c Comparator) bool {
	v, ok := c.(ValueOrderer)
	return ok && v.ValueOrdered()
}

// Natural is the default ordering of cell values. nil sorts first,
// then numbers (NaN before all other numbers), then times, then
// strings in collation order, then anything else by its formatted
// value.
var Natural Comparator = naturalComparator{}

type naturalComparator struct{}

var collator = struct {
	sync.Mutex
	c *collate.Collator
}{c: collate.New(language.Und)}

// CompareStrings compares a and b in locale-independent collation
// order.
func CompareStrings(a, b string) int {
	collator.Lock()
	defer collator.Unlock()
	return collator.c.CompareString(a, b)
}

// CompareFloats orders a and b numerically. NaN sorts before every
// number and equal to other NaNs.
func CompareFloats(a, b float64) int {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an:
		return -1
	case bn:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func rank(v interface{}) int {
	switch v.(type) {
	case nil:
		return 0
	case time.Time:
		return 2
	case string:
		return 3
	}
	if _, ok := Float(v); ok {
		return 1
	}
	return 4
}

func (naturalComparator) Compare(a, b interface{}) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra - rb
	}
	switch ra {
	case 0:
		return 0
	case 1:
		fa, _ := Float(a)
		fb, _ := Float(b)
		return CompareFloats(fa, fb)
	case 2:
		return a.(time.Time).Compare(b.(time.Time))
	case 3:
		return CompareStrings(a.(string), b.(string))
	}
	return CompareStrings(fmt.Sprint(a), fmt.Sprint(b))
}

// Reverse returns a Comparator with the opposite order of c.
func Reverse(c Comparator) Comparator {
	return ComparatorFunc(func(a, b interface{}) int {
		return c.Compare(b, a)
	})
}

// ValueOrder orders values by a measure associated with each value,
// such as the total sales of a category. Values missing from Values
// rank as NaN, before every other value.
type ValueOrder struct {
	Values     map[interface{}]float64
	Descending bool
}

func (c *ValueOrder) Compare(a, b interface{}) int {
	va, ok := c.Values[a]
	if !ok {
		va = math.NaN()
	}
	vb, ok := c.Values[b]
	if !ok {
		vb = math.NaN()
	}
	r := CompareFloats(va, vb)
	if c.Descending {
		return -r
	}
	return r
}

func (c *ValueOrder) ValueOrdered() bool {
	return true
}
