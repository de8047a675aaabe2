package httpapi

import "encoding/json"

// Optional is a tri-state JSON field for PATCH bodies:
// absent (Set=false) means "leave unchanged", an explicit null
// (Set=true, Null=true) means "clear", and a value sets it.
// Zero values are never used to infer intent.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// Get returns a pointer update suitable for store inputs: nil pointer when
// the field should be cleared, the value otherwise. Callers must check Set
// before using it.
func (o Optional[T]) Get() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}
