package schema

import "encoding/json"

// Optional tags a value with whether it was explicitly provided, so a field
// set to its zero value is distinguishable from a field left out entirely.
// The zero Optional is "not set".
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Get returns the value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// IsZero reports whether the Optional is unset, which lets the json
// "omitzero" option drop absent fields from marshalled output.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

// MarshalJSON encodes the inner value. Callers are expected to pair the
// field with "omitzero" so unset Optionals never reach the wire.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}

// UnmarshalJSON marks the Optional as set and decodes into the inner value.
// It only runs when the key is present in the JSON document, which is
// exactly the present/absent distinction. A JSON null counts as set with
// the zero value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}
