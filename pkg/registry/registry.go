// Package registry holds the registration table that maps every navigable
// screen to the view-model kind that must back it.
//
// The table is assembled once at startup with a Builder and is read-only
// afterwards; the navigation service receives it through its constructor.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/navkit/pkg/domain"
)

// ErrEmptyID is returned by Build when a registration has an empty screen or kind.
var ErrEmptyID = errors.New("registry: empty identifier")

// Builder collects registrations.
type Builder struct {
	routes map[domain.ScreenID]domain.ViewModelKind
	errs   []error
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		routes: make(map[domain.ScreenID]domain.ViewModelKind),
	}
}

// Register maps screen to kind.
// If the screen is already registered, it is overwritten.
func (b *Builder) Register(screen domain.ScreenID, kind domain.ViewModelKind) *Builder {
	if screen == "" || kind == "" {
		b.errs = append(b.errs, fmt.Errorf("%w: screen=%q kind=%q", ErrEmptyID, screen, kind))
		return b
	}
	b.routes[screen] = kind
	return b
}

// Build freezes the registrations into a Table.
// The builder may keep being used; later registrations do not affect the table.
func (b *Builder) Build() (*Table, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	routes := make(map[domain.ScreenID]domain.ViewModelKind, len(b.routes))
	for screen, kind := range b.routes {
		routes[screen] = kind
	}
	return &Table{routes: routes}, nil
}

// MustBuild is like Build but panics on error. Intended for static wiring.
func (b *Builder) MustBuild() *Table {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// Table is an immutable screen → view-model kind mapping.
type Table struct {
	routes map[domain.ScreenID]domain.ViewModelKind
}

// Lookup returns the kind registered for screen.
func (t *Table) Lookup(screen domain.ScreenID) (domain.ViewModelKind, bool) {
	if t == nil {
		return "", false
	}
	kind, ok := t.routes[screen]
	return kind, ok
}

// Screens returns the registered screen ids, sorted.
func (t *Table) Screens() []domain.ScreenID {
	if t == nil {
		return nil
	}
	screens := make([]domain.ScreenID, 0, len(t.routes))
	for screen := range t.routes {
		screens = append(screens, screen)
	}
	sort.Slice(screens, func(i, j int) bool { return screens[i] < screens[j] })
	return screens
}

// Len returns the number of registrations.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.routes)
}
