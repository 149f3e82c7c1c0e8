package viewmodel

import (
	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/ports"
)

// Shell is the root view-model of a window: it follows the navigation store
// and republishes "current page changed" to the rendering layer.
type Shell struct {
	Base
	store     ports.NavigationStore
	listeners []func(*domain.Page)
}

// NewShell subscribes to store. Disposing the shell removes the subscription.
func NewShell(store ports.NavigationStore) *Shell {
	s := &Shell{store: store}
	unsubscribe := store.Subscribe(s.onChange)
	s.OnDispose(unsubscribe)
	return s
}

// Current returns the page currently displayed.
func (s *Shell) Current() *domain.Page {
	return s.store.Current()
}

// OnChange registers a listener for page changes.
func (s *Shell) OnChange(fn func(*domain.Page)) {
	if s.Disposed() {
		return
	}
	s.listeners = append(s.listeners, fn)
}

func (s *Shell) onChange(_, next *domain.Page) {
	for _, fn := range s.listeners {
		fn(next)
	}
}
