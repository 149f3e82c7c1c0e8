package ports

import "github.com/aretw0/navkit/pkg/domain"

// ChangeFunc receives the previous and the new active page.
type ChangeFunc func(prev, next *domain.Page)

// NavigationStore is the single source of truth for what is displayed.
// It performs no validation; all policy lives in the navigation service.
type NavigationStore interface {
	// Current returns the last page set, or nil.
	Current() *domain.Page

	// SetCurrent replaces the active page and notifies every subscriber.
	SetCurrent(page *domain.Page)

	// Subscribe registers fn for change notifications.
	// The returned function removes the subscription.
	Subscribe(fn ChangeFunc) (unsubscribe func())
}
