package domain

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnregisteredScreen is returned when a screen has no view-model in the registration table.
var ErrUnregisteredScreen = errors.New("screen has no registered view-model")

// ErrTypeMismatch is matched by every *TypeMismatchError.
var ErrTypeMismatch = errors.New("parameter type mismatch")

// ErrViewModelDisposed is returned when a disposed view-model would be initialized again.
var ErrViewModelDisposed = errors.New("view-model already disposed")

// ErrNestedOverlay is returned when an overlay is opened while another one is open
// and nested overlays are not enabled.
var ErrNestedOverlay = errors.New("nested overlay navigation is not supported")

// ErrOverlayOpen is returned by forward navigations attempted while an overlay is open.
var ErrOverlayOpen = errors.New("overlay is open")

// ConfigurationError reports a startup wiring defect, such as navigating to a
// screen that was never registered.
type ConfigurationError struct {
	Screen ScreenID
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("navkit: configuration error for screen %q: %v", e.Screen, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// TypeMismatchError reports an initialization parameter that does not match the
// type expected by the view-model. A nil Expected means the view-model takes no
// parameters; a nil Actual means no value was supplied.
type TypeMismatchError struct {
	Expected reflect.Type
	Actual   reflect.Type
}

// NewTypeMismatchError builds the error from the expected type and the received value.
func NewTypeMismatchError(expected reflect.Type, received any) *TypeMismatchError {
	return &TypeMismatchError{Expected: expected, Actual: reflect.TypeOf(received)}
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("navkit: expected parameter of type %s, but got %s", typeName(e.Expected), typeName(e.Actual))
}

// Is makes every TypeMismatchError match ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "none"
	}
	return t.String()
}

// IsConfigurationError checks if err is or wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsTypeMismatch checks if err is or wraps a *TypeMismatchError.
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}
