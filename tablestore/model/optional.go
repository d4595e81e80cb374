package model

import "fmt"

// Optional carries a value that may be unset. Unset is distinct from the zero
// value of T: a capacity of None means "not specified", Some(0) means zero.
type Optional[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Optional[T] { return Optional[T]{value: v, ok: true} }

func None[T any]() Optional[T] { return Optional[T]{} }

func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

func (o Optional[T]) IsSet() bool { return o.ok }

// OrElse returns the value, or def when unset.
func (o Optional[T]) OrElse(def T) T {
	if !o.ok {
		return def
	}
	return o.value
}

func (o Optional[T]) String() string {
	if !o.ok {
		return "<unset>"
	}
	return fmt.Sprint(o.value)
}
