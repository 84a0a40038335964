package ontology

// Optional is a single-valued field that may be absent.
//
// The accessor contract is "return the value if present, else the provided
// default".
type Optional[T any] struct {
	value   T
	present bool
}

// Some creates an Optional holding the given value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

// None creates an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// OrDefault returns the value if present, else def.
func (o Optional[T]) OrDefault(def T) T {
	if o.present {
		return o.value
	}

	return def
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.present
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}
