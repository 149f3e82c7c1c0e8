package viewmodel

import "github.com/aretw0/navkit/pkg/domain"

// Base implements domain.ViewModel and domain.DisposedReporter.
// Embed it and register cleanup with OnDispose instead of overriding Dispose.
type Base struct {
	disposed  bool
	callbacks []func()
}

// Dispose runs the registered cleanups in reverse order, once.
func (b *Base) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	for i := len(b.callbacks) - 1; i >= 0; i-- {
		b.callbacks[i]()
	}
	b.callbacks = nil
}

// Disposed reports whether Dispose has run.
func (b *Base) Disposed() bool {
	return b.disposed
}

// OnDispose registers fn to run on disposal.
// On an already disposed view-model fn runs immediately.
func (b *Base) OnDispose(fn func()) {
	if b.disposed {
		fn()
		return
	}
	b.callbacks = append(b.callbacks, fn)
}

// Guard returns domain.ErrViewModelDisposed once the view-model is disposed.
func (b *Base) Guard() error {
	if b.disposed {
		return domain.ErrViewModelDisposed
	}
	return nil
}
