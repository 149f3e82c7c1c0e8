package navkit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/navkit/internal/logging"
	"github.com/aretw0/navkit/internal/runtime"
	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/ports"
	"github.com/aretw0/navkit/pkg/registry"
)

var (
	// ErrMissingResolver is returned by New when no resolver was configured.
	ErrMissingResolver = errors.New("navkit: a resolver is required")
	// ErrMissingTable is returned by New when no registration table was configured.
	ErrMissingTable = errors.New("navkit: a registration table is required")
)

// Navigator is the high-level entry point for the navkit library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Navigator struct {
	runtime *runtime.Service
	table   *registry.Table

	resolver       ports.Resolver
	store          ports.NavigationStore
	maxHistory     int
	nestedOverlays bool
	clearPolicy    domain.ClearPolicy
	hooks          domain.LifecycleHooks
	logger         *slog.Logger
}

var _ ports.Navigator = (*Navigator)(nil)

// Option defines a functional option for configuring the Navigator.
type Option func(*Navigator)

// WithResolver sets the collaborator that builds screen/view-model pairs.
func WithResolver(r ports.Resolver) Option {
	return func(n *Navigator) {
		n.resolver = r
	}
}

// WithTable sets the registration table.
func WithTable(t *registry.Table) Option {
	return func(n *Navigator) {
		n.table = t
	}
}

// WithMaxHistory bounds the history. Zero means unbounded.
func WithMaxHistory(limit int) Option {
	return func(n *Navigator) {
		n.maxHistory = limit
	}
}

// WithNestedOverlays allows overlays on top of overlays.
func WithNestedOverlays(enabled bool) Option {
	return func(n *Navigator) {
		n.nestedOverlays = enabled
	}
}

// WithClearPolicy decides whether ResetAndNavigate disposes the history it drops.
func WithClearPolicy(p domain.ClearPolicy) Option {
	return func(n *Navigator) {
		n.clearPolicy = p
	}
}

// WithStore injects the store the active page is published to.
func WithStore(s ports.NavigationStore) Option {
	return func(n *Navigator) {
		n.store = s
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(n *Navigator) {
		n.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the navigator.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// New initializes a Navigator. WithResolver and WithTable are mandatory.
func New(opts ...Option) (*Navigator, error) {
	nav := &Navigator{clearPolicy: domain.ClearDispose}
	for _, opt := range opts {
		opt(nav)
	}

	if nav.resolver == nil {
		return nil, ErrMissingResolver
	}
	if nav.table == nil {
		return nil, ErrMissingTable
	}
	if nav.logger == nil {
		nav.logger = logging.NewNop()
	}

	nav.runtime = runtime.NewService(nav.resolver, nav.table,
		runtime.WithStore(nav.store),
		runtime.WithMaxHistory(nav.maxHistory),
		runtime.WithNestedOverlays(nav.nestedOverlays),
		runtime.WithClearPolicy(nav.clearPolicy),
		runtime.WithLifecycleHooks(nav.hooks),
		runtime.WithLogger(nav.logger),
	)
	return nav, nil
}

// To creates a parameterless request for screen.
func To(screen domain.ScreenID) domain.Request {
	return domain.To(screen)
}

// Navigate activates the requested screen and keeps the current one for back-navigation.
func (n *Navigator) Navigate(ctx context.Context, req domain.Request) error {
	return n.runtime.Navigate(ctx, req)
}

// NavigateAndForget activates the requested screen without recording the current one.
func (n *Navigator) NavigateAndForget(ctx context.Context, req domain.Request) error {
	return n.runtime.NavigateAndForget(ctx, req)
}

// DestroyAndNavigate disposes the current view-model and activates the requested screen.
func (n *Navigator) DestroyAndNavigate(ctx context.Context, req domain.Request) error {
	return n.runtime.DestroyAndNavigate(ctx, req)
}

// ResetAndNavigate is DestroyAndNavigate followed by clearing the history.
func (n *Navigator) ResetAndNavigate(ctx context.Context, req domain.Request) error {
	return n.runtime.ResetAndNavigate(ctx, req)
}

// NavigateBack returns to the previous screen, or closes the open overlay.
func (n *Navigator) NavigateBack(ctx context.Context) bool {
	return n.runtime.NavigateBack(ctx)
}

// NavigateOverlay layers the requested screen over the current one.
func (n *Navigator) NavigateOverlay(ctx context.Context, req domain.Request, onResolved ports.OverlayFunc, onClose func()) error {
	return n.runtime.NavigateOverlay(ctx, req, onResolved, onClose)
}

// CloseOverlay closes the top overlay.
func (n *Navigator) CloseOverlay(ctx context.Context) bool {
	return n.runtime.CloseOverlay(ctx)
}

// Current returns the active page, or nil.
func (n *Navigator) Current() *domain.Page { return n.runtime.Current() }

// History returns a copy of the history, oldest first.
func (n *Navigator) History() []domain.Page { return n.runtime.History() }

// HistoryLen returns the number of history entries.
func (n *Navigator) HistoryLen() int { return n.runtime.HistoryLen() }

// CanGoBack reports whether NavigateBack has an entry to return to.
func (n *Navigator) CanGoBack() bool { return n.runtime.CanGoBack() }

// OverlayDepth returns the number of open overlays.
func (n *Navigator) OverlayDepth() int { return n.runtime.OverlayDepth() }

// Status returns the state machine mode.
func (n *Navigator) Status() domain.Status { return n.runtime.Status() }

// ID returns the navigator instance id reported in lifecycle events.
func (n *Navigator) ID() string {
	return n.runtime.ID()
}

// Store returns the navigation store.
func (n *Navigator) Store() ports.NavigationStore {
	return n.runtime.Store()
}

// Table returns the registration table.
func (n *Navigator) Table() *registry.Table {
	return n.table
}
