// File: object.go
// Title: Ordered Object
// Description: Name to value mapping that preserves insertion order, used
//              for object literals and normalised host maps.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-18
// Modified: 2025-10-18

package value

import (
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Object is an ordered name to value mapping
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject creates an empty object
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set adds or replaces key; a replaced key keeps its position
func (o *Object) Set(key string, v Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value stored under key
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of entries
func (o *Object) Len() int {
	return len(o.keys)
}

// String renders the object in source form
func (o *Object) String() string {
	parts := make([]string, len(o.keys))
	for i, k := range o.keys {
		parts[i] = strconv.Quote(k) + ": " + Format(o.values[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MarshalJSON writes the entries in insertion order
func (o *Object) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(nil)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, k := range o.keys {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(k)
		stream.WriteVal(o.values[k])
	}
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}
