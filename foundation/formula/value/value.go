// File: value.go
// Title: Formula Runtime Values
// Description: Runtime value model of the formula language: numbers,
//              strings, booleans, arrays, ordered objects, data matrices and
//              function signatures, plus normalisation of host data and
//              display formatting.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18
//
// Change History:
// - 2025-10-18 v0.1.0: Initial value model

package value

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Value is any runtime value: nil, float64, string, bool, []Value, *Object,
// Matrix, Signature or *Future.
type Value = any

// Signature is the result of evaluating a function(...) literal
type Signature struct {
	Params []string
}

// String renders the signature in source form
func (s Signature) String() string {
	return "function(" + strings.Join(s.Params, ", ") + ")"
}

// TypeName returns the language-level type of v
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []Value:
		return "array"
	case *Object:
		return "object"
	case Matrix:
		return "matrix"
	case Signature:
		return "function"
	case *Future:
		return "future"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// AsNumber returns v as float64 when it is a number
func AsNumber(v Value) (float64, bool) {
	n, ok := v.(float64)
	return n, ok
}

// Truthy reports the boolean interpretation of v: false, 0, "", null and
// empty collections are false.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	case []Value:
		return len(t) > 0
	case Matrix:
		return len(t) > 0
	case *Object:
		return t.Len() > 0
	default:
		return true
	}
}

// Flatten returns the scalar leaves of arrays, matrices and objects in order
func Flatten(values ...Value) []Value {
	var out []Value
	for _, v := range values {
		switch t := v.(type) {
		case []Value:
			out = append(out, Flatten(t...)...)
		case Matrix:
			for _, row := range t {
				out = append(out, Flatten(row...)...)
			}
		case *Object:
			for _, key := range t.Keys() {
				item, _ := t.Get(key)
				out = append(out, Flatten(item)...)
			}
		default:
			out = append(out, v)
		}
	}
	return out
}

// Equal compares two values structurally; NaN equals NaN
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		if !ok {
			return false
		}
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	case []Value:
		y, ok := b.([]Value)
		return ok && equalSlices(x, y)
	case Matrix:
		y, ok := b.(Matrix)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equalSlices(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		if !ok {
			return false
		}
		if x == nil || y == nil {
			return x == y
		}
		if !reflect.DeepEqual(x.keys, y.keys) {
			return false
		}
		for _, k := range x.keys {
			if !Equal(x.values[k], y.values[k]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

func equalSlices(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Normalize converts host data into runtime values: every integer and
// float kind becomes float64, slices of slices become a Matrix, other
// slices become arrays and string-keyed maps become objects with sorted
// keys.
func Normalize(data any) Value {
	switch v := data.(type) {
	case nil, float64, string, bool, Signature, *Future, *Object:
		return v
	case Matrix:
		out := make(Matrix, len(v))
		for i, row := range v {
			out[i] = normalizeSlice(row)
		}
		return out
	case []Value:
		if isMatrix(v) {
			return toMatrix(v)
		}
		return normalizeSlice(v)
	}

	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		if isMatrix(items) {
			return toMatrix(items)
		}
		return normalizeSlice(items)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return data
		}
		obj := NewObject()
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			obj.Set(k.String(), Normalize(rv.MapIndex(k).Interface()))
		}
		return obj
	case reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		return Normalize(rv.Elem().Interface())
	}
	return data
}

func normalizeSlice(items []Value) []Value {
	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = Normalize(item)
	}
	return out
}

// isMatrix reports whether items is a non-empty list of lists
func isMatrix(items []Value) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		switch item.(type) {
		case nil, Matrix, []byte:
			return false
		case []Value:
			continue
		}
		k := reflect.TypeOf(item).Kind()
		if k != reflect.Slice && k != reflect.Array {
			return false
		}
	}
	return true
}

func toMatrix(items []Value) Matrix {
	m := make(Matrix, len(items))
	for i, item := range items {
		row, _ := Normalize(item).([]Value)
		m[i] = row
	}
	return m
}

// Format renders v for display, in source-like form
func Format(v Value) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case float64:
		return FormatNumber(t)
	case string:
		return strconv.Quote(t)
	case bool:
		return strconv.FormatBool(t)
	case []Value:
		return "[" + formatList(t) + "]"
	case Matrix:
		rows := make([]string, len(t))
		for i, row := range t {
			rows[i] = "[" + formatList(row) + "]"
		}
		return "[" + strings.Join(rows, ", ") + "]"
	case *Object:
		return t.String()
	case Signature:
		return t.String()
	case *Future:
		return "<pending>"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// JSONSafe returns v with every infinite or NaN number replaced by its
// text form ("+Inf", "-Inf", "NaN"), which JSON cannot represent as numbers
func JSONSafe(v Value) Value {
	switch t := v.(type) {
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return FormatNumber(t)
		}
		return t
	case []Value:
		out := make([]Value, len(t))
		for i, item := range t {
			out[i] = JSONSafe(item)
		}
		return out
	case Matrix:
		out := make(Matrix, len(t))
		for i, row := range t {
			out[i] = make([]Value, len(row))
			for j, item := range row {
				out[i][j] = JSONSafe(item)
			}
		}
		return out
	case *Object:
		out := NewObject()
		for _, k := range t.Keys() {
			item, _ := t.Get(k)
			out.Set(k, JSONSafe(item))
		}
		return out
	default:
		return v
	}
}

// FormatNumber renders a number without trailing zeros
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func formatList(items []Value) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = Format(item)
	}
	return strings.Join(parts, ", ")
}
