package models

import (
	"bytes"
	"encoding/json"
)

// Nullable distinguishes an absent field from an explicit null in a partial update
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some returns a Nullable carrying v
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

// Null returns a Nullable that clears the column
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON is only called when the field is present in the payload
func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Valid = false
		var zero T
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(b, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// columnValue returns the value to write, nil meaning NULL
func (n Nullable[T]) columnValue() interface{} {
	if !n.Valid {
		return nil
	}
	return n.Value
}

// changeSet accumulates the columns a partial update supplies
type changeSet map[string]interface{}

func setField[T any](c changeSet, column string, v *T) {
	if v != nil {
		c[column] = *v
	}
}

func setNullable[T any](c changeSet, column string, v Nullable[T]) {
	if v.Set {
		c[column] = v.columnValue()
	}
}
