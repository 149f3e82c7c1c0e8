package viewmodel

import (
	"reflect"

	"github.com/aretw0/navkit/pkg/domain"
)

// As returns params viewed as T.
// A nil params yields the zero value when T admits nil (pointer, interface,
// map, slice, func, chan). Any other mismatch returns a *domain.TypeMismatchError
// naming both types.
func As[T any](params any) (T, error) {
	if v, ok := params.(T); ok {
		return v, nil
	}

	var zero T
	expected := reflect.TypeOf((*T)(nil)).Elem()
	if params == nil && nilable(expected) {
		return zero, nil
	}
	return zero, domain.NewTypeMismatchError(expected, params)
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}
