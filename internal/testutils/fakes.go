// Package testutils holds recording fakes shared by the navkit test suites.
package testutils

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/registry"
	"github.com/aretw0/navkit/pkg/viewmodel"
	"github.com/stretchr/testify/require"
)

// ViewModel records every lifecycle call it receives.
type ViewModel struct {
	viewmodel.Base

	Kind      domain.ViewModelKind
	Inits     []any
	Refreshes int
	Disposals int

	// InitErr is returned by Initialize when set.
	InitErr error
}

func (v *ViewModel) Initialize(params any) error {
	v.Inits = append(v.Inits, params)
	return v.InitErr
}

func (v *ViewModel) Refresh() {
	v.Refreshes++
}

// Dispose counts every call, including repeated ones, and then disposes the base.
func (v *ViewModel) Dispose() {
	v.Disposals++
	v.Base.Dispose()
}

// Pair is the parameter type accepted by PairViewModel.
type Pair struct {
	Number int
	Text   string
}

// PairViewModel only accepts a Pair.
type PairViewModel struct {
	ViewModel
	Got Pair
}

func (v *PairViewModel) Initialize(params any) error {
	v.Inits = append(v.Inits, params)
	p, err := viewmodel.As[Pair](params)
	if err != nil {
		return err
	}
	v.Got = p
	return nil
}

// PlainViewModel has no optional capabilities at all.
type PlainViewModel struct {
	Disposals int
}

func (v *PlainViewModel) Dispose() {
	v.Disposals++
}

// Screen records the view-model it was bound to.
type Screen struct {
	ID    domain.ScreenID
	Bound domain.ViewModel
}

func (s *Screen) Bind(vm domain.ViewModel) {
	s.Bound = vm
}

// Resolver is a scriptable ports.Resolver.
type Resolver struct {
	factories  map[domain.ViewModelKind]func() domain.ViewModel
	singletons map[domain.ViewModelKind]domain.ViewModel
	shared     map[domain.ViewModelKind]bool

	// Err, when set, is returned by every Resolve call.
	Err   error
	Calls int
}

// NewResolver creates a resolver with no factories.
func NewResolver() *Resolver {
	return &Resolver{
		factories:  make(map[domain.ViewModelKind]func() domain.ViewModel),
		singletons: make(map[domain.ViewModelKind]domain.ViewModel),
		shared:     make(map[domain.ViewModelKind]bool),
	}
}

// Register adds a transient factory.
func (r *Resolver) Register(kind domain.ViewModelKind, factory func() domain.ViewModel) *Resolver {
	r.factories[kind] = factory
	return r
}

// RegisterSingleton adds a factory whose first instance is returned forever.
func (r *Resolver) RegisterSingleton(kind domain.ViewModelKind, factory func() domain.ViewModel) *Resolver {
	r.factories[kind] = factory
	r.shared[kind] = true
	return r
}

// Resolve implements ports.Resolver.
func (r *Resolver) Resolve(ctx context.Context, screen domain.ScreenID, kind domain.ViewModelKind) (domain.Screen, domain.ViewModel, error) {
	r.Calls++
	if r.Err != nil {
		return nil, nil, r.Err
	}
	factory, ok := r.factories[kind]
	if !ok {
		return nil, nil, fmt.Errorf("no factory for kind %q", kind)
	}

	if !r.shared[kind] {
		return &Screen{ID: screen}, factory(), nil
	}
	vm, ok := r.singletons[kind]
	if !ok {
		vm = factory()
		r.singletons[kind] = vm
	}
	return &Screen{ID: screen}, vm, nil
}

// Recording returns a factory producing *ViewModel of the given kind.
func Recording(kind domain.ViewModelKind) func() domain.ViewModel {
	return func() domain.ViewModel {
		return &ViewModel{Kind: kind}
	}
}

// Table registers every screen against a kind of the same name.
func Table(t *testing.T, screens ...domain.ScreenID) *registry.Table {
	t.Helper()

	b := registry.NewBuilder()
	for _, s := range screens {
		b.Register(s, domain.ViewModelKind(s))
	}
	table, err := b.Build()
	require.NoError(t, err, "Failed to build registration table")
	return table
}

// EventRecorder captures every lifecycle event.
type EventRecorder struct {
	Events []domain.NavigationEvent
}

// Hooks returns hooks that append to the recorder.
func (r *EventRecorder) Hooks() domain.LifecycleHooks {
	record := func(_ context.Context, ev *domain.NavigationEvent) {
		r.Events = append(r.Events, *ev)
	}
	return domain.LifecycleHooks{
		OnNavigate:     record,
		OnEvict:        record,
		OnDispose:      record,
		OnOverlayOpen:  record,
		OnOverlayClose: record,
	}
}

// Types returns the recorded event types in order.
func (r *EventRecorder) Types() []domain.EventType {
	out := make([]domain.EventType, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.Type
	}
	return out
}
