// Package data defines the values that may be bound to template variables.
package data

import (
	"fmt"
	"math"
	"strconv"
)

// Value is a value bound to a template variable. It is one of Text, Int,
// Real, Template or Opaque.
type Value interface {
	// Kind reports which variant this value is.
	Kind() Kind

	// String formats this value for display without any locale formatting.
	String() string
}

// Kind enumerates the value variants.
type Kind int

const (
	KindUnsupported Kind = iota
	KindText
	KindInt
	KindReal
	KindTemplate
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "integer"
	case KindReal:
		return "real"
	case KindTemplate:
		return "template"
	}
	return "unsupported"
}

// Nested is a template bound as the value of another template's variable.
type Nested interface {
	// Gender returns the template's gender tag, or "".
	Gender() string

	// Render renders the template with its own bindings.
	Render() (string, error)
}

// Value types
type (
	Text string
	Int  int64
	Real float64

	// Template refers to a nested template. The host template borrows it
	// for the duration of each render.
	Template struct {
		Nested Nested
	}

	// Opaque holds a Go value with no template representation. Rendering
	// it is an error.
	Opaque struct {
		V interface{}
	}
)

func (Text) Kind() Kind     { return KindText }
func (Int) Kind() Kind      { return KindInt }
func (Real) Kind() Kind     { return KindReal }
func (Template) Kind() Kind { return KindTemplate }
func (Opaque) Kind() Kind   { return KindUnsupported }

func (v Text) String() string { return string(v) }
func (v Int) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v Real) String() string { return strconv.FormatFloat(float64(v), 'f', -1, 64) }

func (v Template) String() string {
	if v.Nested == nil {
		return "<nil template>"
	}
	s, err := v.Nested.Render()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return s
}

func (v Opaque) String() string { return fmt.Sprintf("%T(%v)", v.V, v.V) }

// Integer returns the value as an integer. Reals are truncated toward zero;
// NaN and reals outside the int64 range report false.
func Integer(v Value) (int64, bool) {
	switch v := v.(type) {
	case Int:
		return int64(v), true
	case Real:
		if math.IsNaN(float64(v)) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

// Float returns the value as a float.
func Float(v Value) (float64, bool) {
	switch v := v.(type) {
	case Int:
		return float64(v), true
	case Real:
		return float64(v), true
	}
	return 0, false
}
