package domain

// Disposable releases the resources held by a view-model.
// Disposal is terminal.
type Disposable interface {
	Dispose()
}

// ViewModel is the minimal contract the navigation service manages.
// Everything else is an optional capability.
type ViewModel interface {
	Disposable
}

// Initializable view-models accept caller parameters once per navigation.
// Implementations project params into their expected type and return a
// *TypeMismatchError when it does not fit.
type Initializable interface {
	Initialize(params any) error
}

// Refreshable view-models reload state when they become active again after
// back-navigation.
type Refreshable interface {
	Refresh()
}

// DisposedReporter exposes the terminal disposed flag.
type DisposedReporter interface {
	Disposed() bool
}

// IsDisposed reports whether vm says it has been disposed.
// View-models that do not report their state are assumed live.
func IsDisposed(vm ViewModel) bool {
	if r, ok := vm.(DisposedReporter); ok {
		return r.Disposed()
	}
	return false
}
