// Package strut contains the small runtime surface referenced by generated
// creator code. Generated setters and factory methods embed these checks so
// that misuse fails at the call site of the generated program, not during
// generation.
package strut

import (
	"fmt"
	"reflect"
)

// MustNotBeNil returns value unchanged, panicking if it is nil. Generated
// setters with a fail-fast null policy route their parameter through this
// check before assigning the backing field.
func MustNotBeNil[T any](value T) T {
	if isNil(value) {
		panic("strut: required value is nil")
	}
	return value
}

// CheckBuilderRequirement panics with a descriptive message when a required
// builder field is still unset at factory time
func CheckBuilderRequirement[T any](value T, typeName string) {
	if isNil(value) {
		panic(fmt.Sprintf("strut: %s must be set", typeName))
	}
}

// RepeatedModule returns the error raised by setters for modules inherited
// from an enclosing component
func RepeatedModule(typeName string) error {
	return fmt.Errorf("%s cannot be set because it is inherited from the enclosing component", typeName)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
