package wscutils

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes three states of a JSON field in a request:
//
//   - absent: the key is missing (Present=false)
//   - null: the key is sent with a null value (Present=true, Null=true)
//   - value: the key is sent with a value (Present=true, Null=false)
//
// Plain Go fields cannot tell a missing key from a zero value, which matters
// for partial updates where a missing key means "leave unchanged".
type Optional[T any] struct {
	Value   T
	Present bool
	Null    bool
}

// NewOptional returns an Optional holding v.
func NewOptional[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

// NewOptionalNull returns an Optional that was sent as an explicit null.
func NewOptionalNull[T any]() Optional[T] {
	return Optional[T]{Present: true, Null: true}
}

// NewOptionalAbsent returns an Optional that was not sent at all.
func NewOptionalAbsent[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and true only when a non-null value was sent.
func (o Optional[T]) Get() (T, bool) {
	if !o.Present || o.Null {
		var zero T
		return zero, false
	}
	return o.Value, true
}

// OrElse returns the value when a non-null value was sent, fallback otherwise.
func (o Optional[T]) OrElse(fallback T) T {
	if v, ok := o.Get(); ok {
		return v
	}
	return fallback
}

// IsZero reports whether the field was absent. It lets the omitzero json
// option drop absent fields from responses.
func (o Optional[T]) IsZero() bool {
	return !o.Present
}

// UnmarshalJSON is only called by encoding/json when the key is present.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		o.Present = true
		o.Null = true
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = v
	o.Present = true
	o.Null = false
	return nil
}

// MarshalJSON writes null for explicit nulls and the value otherwise. Absent
// fields marshal as their zero value unless the field carries omitzero.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
