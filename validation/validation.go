/*
Package validation holds the Validatable capability shared by every request
parameter and nested entity.

Each entity owns its own rules. Composite entities validate themselves first, then
hand their children to All or Each in declaration order, so the first failure is
always the same for the same input.
*/
package validation

import (
	"reflect"
)

// Validatable is implemented by anything that can check itself before it is sent.
type Validatable interface {
	Validate() error
}

// All validates items in order and returns the first failure. Nil items, including
// typed nil pointers, are skipped so optional children can be passed directly.
func All(items ...Validatable) error {
	for _, item := range items {
		if IsNil(item) {
			continue
		}
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Each validates every element of a list in order and returns the first failure.
func Each[T Validatable](items []T) error {
	for _, item := range items {
		if IsNil(item) {
			continue
		}
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Func adapts a plain check so it can take part in All.
type Func func() error

func (check Func) Validate() error {
	return check()
}

// IsNil reports whether value is nil or a typed nil pointer, map, slice, or
// interface.
func IsNil(value interface{}) bool {
	if value == nil {
		return true
	}
	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return reflected.IsNil()
	}
	return false
}
