// Package store provides the in-memory NavigationStore: a passive observable
// cell holding the page that is currently displayed.
package store

import (
	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/ports"
)

type subscription struct {
	id int
	fn ports.ChangeFunc
}

// Store implements ports.NavigationStore.
// It is not safe for concurrent use; the navigation service is its only writer.
type Store struct {
	current *domain.Page
	subs    []subscription
	nextID  int
}

var _ ports.NavigationStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Current returns the active page, or nil before the first navigation.
func (s *Store) Current() *domain.Page {
	return s.current
}

// SetCurrent stores page and notifies subscribers synchronously, in
// subscription order. Subscribers added during notification are not called
// for the change in progress.
func (s *Store) SetCurrent(page *domain.Page) {
	prev := s.current
	s.current = page

	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	for _, sub := range subs {
		sub.fn(prev, page)
	}
}

// Subscribe registers fn and returns its cancel function.
func (s *Store) Subscribe(fn ports.ChangeFunc) func() {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (s *Store) Subscribers() int {
	return len(s.subs)
}
