package data

import (
	"math"
	"reflect"
)

// Marshaler is implemented by types that convert themselves to a Value.
type Marshaler interface {
	MarshalValue() Value
}

var nestedType = reflect.TypeOf((*Nested)(nil)).Elem()

// New converts the given Go value into a template value.
//
//	string kinds           -> Text
//	signed/unsigned ints   -> Int
//	float32, float64       -> Real
//	Nested implementations -> Template
//
// Pointers and interfaces are followed. Nil pointers, unsigned values above
// math.MaxInt64 and anything else become Opaque.
func New(value interface{}) Value {
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return Opaque{value}
	}

	// quick return if we're passed an existing data.Value
	switch val := value.(type) {
	case Value:
		return val
	case Marshaler:
		return val.MarshalValue()
	case Nested:
		return Template{val}
	case nil:
		return Opaque{}
	}

	// drill through pointers and interfaces to the underlying type
	var v = reflect.ValueOf(value)
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return Opaque{value}
		}
		if v.Type().Implements(nestedType) {
			return Template{v.Interface().(Nested)}
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if v.Uint() > math.MaxInt64 {
			return Opaque{value}
		}
		return Int(v.Uint())
	case reflect.Float32, reflect.Float64:
		return Real(v.Float())
	case reflect.String:
		return Text(v.String())
	}
	return Opaque{value}
}
