// Package optional provides a tri-state value for partial updates: a field can be
// absent from the request, explicitly null, or carry a value.
package optional

import (
	"bytes"
	"encoding/json"
)

type state uint8

const (
	absent state = iota
	null
	present
)

// Field is absent in its zero value. When decoded from JSON it becomes Null for a
// literal null and Set otherwise; a missing key leaves it absent because the
// decoder never calls UnmarshalJSON for it.
type Field[T any] struct {
	state state
	value T
}

// Of returns a field holding v.
func Of[T any](v T) Field[T] { return Field[T]{state: present, value: v} }

// Null returns an explicitly null field.
func Null[T any]() Field[T] { return Field[T]{state: null} }

// IsAbsent reports whether the field was not supplied at all.
func (f Field[T]) IsAbsent() bool { return f.state == absent }

// IsNull reports whether the field was supplied as null.
func (f Field[T]) IsNull() bool { return f.state == null }

// IsSet reports whether the field was supplied (null or value).
func (f Field[T]) IsSet() bool { return f.state != absent }

// Value returns the held value and whether one is present.
func (f Field[T]) Value() (T, bool) { return f.value, f.state == present }

// Ptr returns nil for absent and null fields.
func (f Field[T]) Ptr() *T {
	if f.state != present {
		return nil
	}
	v := f.value
	return &v
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.state, f.value = null, zero
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.state, f.value = present, v
	return nil
}

// MarshalJSON renders absent and null fields as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.state != present {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
