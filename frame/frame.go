// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame implements visual frames, which bind a data field to
// a visual attribute of geometry such as its color or size.
//
// Frames are a closed set of kinds. Each kind is a concrete type with
// an explicit Copy method.
package frame

import (
	"fmt"
	"math"

	"github.com/aclements/go-chartgeom/dataset"
	"github.com/aclements/go-chartgeom/scale"
	mscale "github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
	"github.com/google/uuid"
)

// Kind identifies the visual attribute a frame controls.
type Kind int

const (
	KindColor Kind = iota
	KindSize
	KindShape
	KindTexture
	KindLine
	KindText
)

var kindNames = [...]string{"color", "size", "shape", "texture", "line", "text"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown frame kind %q", s)
}

// A Frame binds a field to a visual attribute.
type Frame interface {
	Kind() Kind

	// Field returns the bound column name.
	Field() string

	// ShareID identifies the frame across elements. Elements whose
	// frames have the same ShareID share a legend and a mapping.
	ShareID() string

	// Categorical reports whether the frame maps the values of its
	// field in data as discrete categories.
	Categorical(data dataset.DataSet) bool

	// Init prepares the frame's mapping from the values in data.
	Init(data dataset.DataSet)

	// Copy returns an independent copy of the frame with the same
	// ShareID.
	Copy() Frame
}

// binding is the state common to every frame kind.
type binding struct {
	field   string
	shareID string

	// forced marks the field categorical even if it is a measure.
	forced bool

	cats *scale.Categorical
}

func newBinding(field string) binding {
	return binding{field: field, shareID: uuid.NewString()}
}

func (b *binding) Field() string   { return b.field }
func (b *binding) ShareID() string { return b.shareID }

// SetShareID sets the share ID of the frame.
func (b *binding) SetShareID(id string) { b.shareID = id }

// SetCategorical forces the field to be treated as categorical.
func (b *binding) SetCategorical(v bool) { b.forced = v }

func (b *binding) Categorical(data dataset.DataSet) bool {
	if b.forced {
		return true
	}
	col := data.IndexOfHeader(b.field)
	return col >= 0 && !data.IsMeasure(col)
}

func (b *binding) initCategories(data dataset.DataSet) {
	if !b.Categorical(data) {
		b.cats = nil
		return
	}
	b.cats = scale.NewCategorical(b.field)
	b.cats.Init(data)
}

// Index returns the category index of v, or -1 if v is not a known
// category.
func (b *binding) Index(v interface{}) int {
	if b.cats == nil {
		return -1
	}
	x := b.cats.Map(v)
	if math.IsNaN(x) {
		return -1
	}
	return int(x)
}

func (b binding) copy() binding {
	if b.cats != nil {
		b.cats = b.cats.Copy()
	}
	return b
}

// Color maps a field to a color. Categorical fields map to a palette
// index; continuous fields map to a position in [0, 1] along a
// gradient.
type Color struct {
	binding
	lo, hi float64
}

func NewColor(field string) *Color {
	return &Color{binding: newBinding(field), lo: math.NaN(), hi: math.NaN()}
}

func (f *Color) Kind() Kind { return KindColor }

func (f *Color) Init(data dataset.DataSet) {
	f.initCategories(data)
	if f.cats == nil {
		f.lo, f.hi = fieldBounds(data, f.field)
	}
}

// Map returns the palette index of v for a categorical field or its
// gradient position for a continuous one. It returns NaN if v cannot
// be mapped.
func (f *Color) Map(v interface{}) float64 {
	if f.cats != nil {
		return f.cats.Map(v)
	}
	return normalize(f.lo, f.hi, v)
}

func (f *Color) Copy() Frame {
	f2 := *f
	f2.binding = f.binding.copy()
	return &f2
}

// Size maps a field to a size between MinSize and MaxSize. It also
// supplies leaf weights to hierarchical elements.
type Size struct {
	binding
	lo, hi float64

	MinSize, MaxSize float64
}

func NewSize(field string) *Size {
	return &Size{binding: newBinding(field), lo: math.NaN(), hi: math.NaN(), MinSize: 1, MaxSize: 30}
}

func (f *Size) Kind() Kind { return KindSize }

func (f *Size) Init(data dataset.DataSet) {
	f.initCategories(data)
	if f.cats == nil {
		f.lo, f.hi = fieldBounds(data, f.field)
	}
}

// Map returns the size of v.
func (f *Size) Map(v interface{}) float64 {
	var t float64
	if f.cats != nil {
		i := f.cats.Map(v)
		if n := len(f.cats.Values()); n > 1 {
			t = i / float64(n-1)
		} else {
			t = i
		}
	} else {
		t = normalize(f.lo, f.hi, v)
	}
	if math.IsNaN(t) {
		return f.MinSize
	}
	return f.MinSize + t*(f.MaxSize-f.MinSize)
}

// Weight returns the raw numeric value of v, for use as a weight. It
// reports false if v is not a number.
func (f *Size) Weight(v interface{}) (float64, bool) {
	return dataset.Float(v)
}

func (f *Size) Copy() Frame {
	f2 := *f
	f2.binding = f.binding.copy()
	return &f2
}

// Shape maps a categorical field to a shape index.
type Shape struct{ binding }

func NewShape(field string) *Shape { return &Shape{newBinding(field)} }

func (f *Shape) Kind() Kind                { return KindShape }
func (f *Shape) Init(data dataset.DataSet) { f.initCategories(data) }
func (f *Shape) Copy() Frame               { return &Shape{f.binding.copy()} }

// Texture maps a categorical field to a fill texture index.
type Texture struct{ binding }

func NewTexture(field string) *Texture { return &Texture{newBinding(field)} }

func (f *Texture) Kind() Kind                { return KindTexture }
func (f *Texture) Init(data dataset.DataSet) { f.initCategories(data) }
func (f *Texture) Copy() Frame               { return &Texture{f.binding.copy()} }

// Line maps a categorical field to a line style index.
type Line struct{ binding }

func NewLine(field string) *Line { return &Line{newBinding(field)} }

func (f *Line) Kind() Kind                { return KindLine }
func (f *Line) Init(data dataset.DataSet) { f.initCategories(data) }
func (f *Line) Copy() Frame               { return &Line{f.binding.copy()} }

// Text labels geometry with the values of a field.
type Text struct {
	binding

	// Format is a fmt verb used for numeric values, such as
	// "%.1f". The default is "%v".
	Format string
}

func NewText(field string) *Text { return &Text{binding: newBinding(field)} }

func (f *Text) Kind() Kind                { return KindText }
func (f *Text) Init(data dataset.DataSet) { f.initCategories(data) }

// Label formats v.
func (f *Text) Label(v interface{}) string {
	if v == nil {
		return ""
	}
	if f.Format != "" {
		if x, ok := dataset.Float(v); ok {
			return fmt.Sprintf(f.Format, x)
		}
	}
	return fmt.Sprint(v)
}

func (f *Text) Copy() Frame {
	f2 := *f
	f2.binding = f.binding.copy()
	return &f2
}

// New returns a new frame of kind k bound to field.
func New(k Kind, field string) Frame {
	switch k {
	case KindColor:
		return NewColor(field)
	case KindSize:
		return NewSize(field)
	case KindShape:
		return NewShape(field)
	case KindTexture:
		return NewTexture(field)
	case KindLine:
		return NewLine(field)
	case KindText:
		return NewText(field)
	}
	panic(fmt.Sprintf("frame.New: bad kind %v", k))
}

// Categorical reports whether f is non-nil and categorical over data.
func Categorical(f Frame, data dataset.DataSet) bool {
	return f != nil && f.Categorical(data)
}

func fieldBounds(data dataset.DataSet, field string) (lo, hi float64) {
	col := data.IndexOfHeader(field)
	if col < 0 {
		return math.NaN(), math.NaN()
	}
	var xs []float64
	for row := 0; row < data.RowCount(); row++ {
		if x, ok := dataset.Float(data.Value(col, row)); ok && !math.IsNaN(x) && !math.IsInf(x, 0) {
			xs = append(xs, x)
		}
	}
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	return stats.Bounds(xs)
}

func normalize(lo, hi float64, v interface{}) float64 {
	x, ok := dataset.Float(v)
	if !ok || math.IsNaN(lo) {
		return math.NaN()
	}
	if lo == hi {
		return 0
	}
	return mscale.Linear{Min: lo, Max: hi}.Map(x)
}
