// Package container provides an in-memory ports.Resolver.
//
// View-models are registered per kind with a lifetime, screens per screen id.
// Transient kinds produce a new instance on every resolution; singleton kinds
// share one instance until it is disposed, after which the next resolution
// creates a new one.
package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/navkit/internal/logging"
	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/ports"
)

// Lifetime decides whether resolutions share an instance.
type Lifetime string

const (
	// Transient creates a new view-model for each resolution.
	Transient Lifetime = "transient"
	// Singleton shares a single view-model across resolutions.
	Singleton Lifetime = "singleton"
)

// ErrNoBinding is returned when a kind was never registered.
var ErrNoBinding = errors.New("no binding for view-model kind")

var errNilViewModel = errors.New("factory returned nil view-model")

// ResolutionError reports a kind that could not be produced.
type ResolutionError struct {
	Kind domain.ViewModelKind
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("container: cannot resolve %q: %v", e.Kind, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Factory builds a view-model.
type Factory func(ctx context.Context) (domain.ViewModel, error)

// ScreenFactory builds the screen for a freshly resolved view-model.
type ScreenFactory func(vm domain.ViewModel) domain.Screen

type binding struct {
	lifetime Lifetime
	factory  Factory
}

// Container implements ports.Resolver.
// Safe for concurrent use.
type Container struct {
	mu         sync.Mutex
	bindings   map[domain.ViewModelKind]binding
	singletons map[domain.ViewModelKind]domain.ViewModel
	screens    map[domain.ScreenID]ScreenFactory
	logger     *slog.Logger
}

var _ ports.Resolver = (*Container)(nil)

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		bindings:   make(map[domain.ViewModelKind]binding),
		singletons: make(map[domain.ViewModelKind]domain.ViewModel),
		screens:    make(map[domain.ScreenID]ScreenFactory),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register binds kind to factory. A later registration replaces the earlier
// one and drops any cached singleton.
func (c *Container) Register(kind domain.ViewModelKind, lifetime Lifetime, factory Factory) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()

	if lifetime != Singleton {
		lifetime = Transient
	}
	c.bindings[kind] = binding{lifetime: lifetime, factory: factory}
	delete(c.singletons, kind)
	return c
}

// RegisterScreen binds the screen built for id.
// Screens without a factory resolve to nil.
func (c *Container) RegisterScreen(id domain.ScreenID, factory ScreenFactory) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screens[id] = factory
	return c
}

// Has reports whether kind is bound.
func (c *Container) Has(kind domain.ViewModelKind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.bindings[kind]
	return ok
}

// Kinds returns the bound kinds, sorted.
func (c *Container) Kinds() []domain.ViewModelKind {
	c.mu.Lock()
	defer c.mu.Unlock()

	kinds := make([]domain.ViewModelKind, 0, len(c.bindings))
	for k := range c.bindings {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Resolve implements ports.Resolver.
func (c *Container) Resolve(ctx context.Context, screen domain.ScreenID, kind domain.ViewModelKind) (domain.Screen, domain.ViewModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.bindings[kind]
	if !ok {
		return nil, nil, &ResolutionError{Kind: kind, Err: ErrNoBinding}
	}

	vm, err := c.instance(ctx, kind, b)
	if err != nil {
		return nil, nil, &ResolutionError{Kind: kind, Err: err}
	}

	var s domain.Screen
	if f, ok := c.screens[screen]; ok && f != nil {
		s = f(vm)
	}
	return s, vm, nil
}

func (c *Container) instance(ctx context.Context, kind domain.ViewModelKind, b binding) (domain.ViewModel, error) {
	if b.lifetime == Singleton {
		if vm, ok := c.singletons[kind]; ok {
			if !domain.IsDisposed(vm) {
				return vm, nil
			}
			c.logger.Debug("recreating disposed singleton", "kind", kind)
			delete(c.singletons, kind)
		}
	}

	vm, err := b.factory(ctx)
	if err != nil {
		return nil, err
	}
	if vm == nil {
		return nil, errNilViewModel
	}
	if b.lifetime == Singleton {
		c.singletons[kind] = vm
	}
	return vm, nil
}
