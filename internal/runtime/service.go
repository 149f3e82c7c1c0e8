package runtime

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"time"

	"github.com/aretw0/navkit/internal/logging"
	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/ports"
	"github.com/aretw0/navkit/pkg/registry"
	"github.com/aretw0/navkit/pkg/store"
	"github.com/google/uuid"
)

var errNilViewModel = errors.New("resolver returned no view-model")

// Service is the navigation state machine.
// It owns the history stack and the overlay frames and is the only writer of
// the navigation store. It is not safe for concurrent use: every call is
// expected to come from the UI event loop.
type Service struct {
	id       string
	resolver ports.Resolver
	table    *registry.Table
	store    ports.NavigationStore

	history  *history
	overlays []overlayFrame

	nestedOverlays bool
	clearPolicy    domain.ClearPolicy
	hooks          domain.LifecycleHooks
	logger         *slog.Logger
	now            func() time.Time
}

var _ ports.Navigator = (*Service)(nil)

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithStore replaces the default in-memory store.
func WithStore(s ports.NavigationStore) Option {
	return func(svc *Service) {
		if s != nil {
			svc.store = s
		}
	}
}

// WithMaxHistory bounds the history stack. Zero or negative means unbounded.
func WithMaxHistory(n int) Option {
	return func(svc *Service) {
		svc.history = newHistory(n)
	}
}

// WithNestedOverlays allows an overlay to be opened on top of another one.
// Each level keeps its own close callback.
func WithNestedOverlays(enabled bool) Option {
	return func(svc *Service) {
		svc.nestedOverlays = enabled
	}
}

// WithClearPolicy decides whether ResetAndNavigate disposes the entries it drops.
func WithClearPolicy(p domain.ClearPolicy) Option {
	return func(svc *Service) {
		if p.Valid() {
			svc.clearPolicy = p
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(svc *Service) {
		svc.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(svc *Service) {
		if logger != nil {
			svc.logger = logger
		}
	}
}

// WithID overrides the generated navigator id reported in events.
func WithID(id string) Option {
	return func(svc *Service) {
		svc.id = id
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) {
		svc.now = now
	}
}

// NewService creates a navigation service over resolver and table.
// The table is treated as read-only.
func NewService(resolver ports.Resolver, table *registry.Table, opts ...Option) *Service {
	svc := &Service{
		id:          uuid.NewString(),
		resolver:    resolver,
		table:       table,
		store:       store.New(),
		history:     newHistory(0),
		clearPolicy: domain.ClearDispose,
		logger:      logging.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.logger = svc.logger.With("navigator", svc.id)
	return svc
}

// ID returns the navigator id.
func (s *Service) ID() string {
	return s.id
}

// Store returns the navigation store the service publishes to.
func (s *Service) Store() ports.NavigationStore {
	return s.store
}

// Navigate activates req.Screen and keeps the current page as a back target.
func (s *Service) Navigate(ctx context.Context, req domain.Request) error {
	if err := s.ensureNoOverlay(); err != nil {
		return err
	}
	page, err := s.resolve(ctx, req)
	if err != nil {
		return err
	}

	prev := s.store.Current()
	if prev != nil {
		s.push(ctx, *prev, page)
	}
	s.activate(ctx, domain.ModePush, prev, page)
	return nil
}

// NavigateAndForget activates req.Screen without touching the history.
// The previous view-model is left alive.
func (s *Service) NavigateAndForget(ctx context.Context, req domain.Request) error {
	if err := s.ensureNoOverlay(); err != nil {
		return err
	}
	page, err := s.resolve(ctx, req)
	if err != nil {
		return err
	}

	s.activate(ctx, domain.ModeForget, s.store.Current(), page)
	return nil
}

// DestroyAndNavigate disposes the current view-model, then activates req.Screen.
// The history is not touched.
func (s *Service) DestroyAndNavigate(ctx context.Context, req domain.Request) error {
	if err := s.ensureNoOverlay(); err != nil {
		return err
	}
	page, err := s.resolve(ctx, req)
	if err != nil {
		return err
	}

	s.replace(ctx, domain.ModeDestroy, page)
	return nil
}

// ResetAndNavigate closes any open overlay, performs DestroyAndNavigate and
// clears the history according to the clear policy.
func (s *Service) ResetAndNavigate(ctx context.Context, req domain.Request) error {
	page, err := s.resolve(ctx, req)
	if err != nil {
		return err
	}

	for len(s.overlays) > 0 {
		s.closeOverlay(ctx, s.store.Current(), page)
	}
	s.replace(ctx, domain.ModeReset, page)
	s.clearHistory(ctx, page)
	return nil
}

// NavigateBack disposes the current view-model and reactivates the most
// recent history entry, refreshing it. With an overlay open it closes the
// overlay instead. It returns false when there is nothing to go back to.
func (s *Service) NavigateBack(ctx context.Context) bool {
	if len(s.overlays) > 0 {
		return s.CloseOverlay(ctx)
	}
	if s.history.empty() {
		s.logger.Error("navigate back with empty history")
		return false
	}

	prev := s.store.Current()
	entry := s.history.pop()
	if prev != nil {
		s.release(ctx, *prev, &entry)
	}
	s.activate(ctx, domain.ModeBack, prev, &entry)
	s.refresh(&entry)
	return true
}

// Current returns the active page.
func (s *Service) Current() *domain.Page {
	return s.store.Current()
}

// History returns a copy of the history, oldest first.
func (s *Service) History() []domain.Page {
	return s.history.snapshot()
}

// HistoryLen returns the number of history entries.
func (s *Service) HistoryLen() int {
	return s.history.len()
}

// CanGoBack reports whether the history is not empty.
func (s *Service) CanGoBack() bool {
	return !s.history.empty()
}

// OverlayDepth returns the number of open overlays.
func (s *Service) OverlayDepth() int {
	return len(s.overlays)
}

// Status returns the state machine mode.
func (s *Service) Status() domain.Status {
	switch {
	case len(s.overlays) > 0:
		return domain.StatusOverlayOpen
	case s.store.Current() != nil:
		return domain.StatusActive
	default:
		return domain.StatusIdle
	}
}

// resolve looks up the kind, asks the resolver for the pair, initializes the
// view-model and binds the screen. It never mutates navigation state.
func (s *Service) resolve(ctx context.Context, req domain.Request) (*domain.Page, error) {
	kind, ok := s.table.Lookup(req.Screen)
	if !ok {
		return nil, &domain.ConfigurationError{Screen: req.Screen, Err: domain.ErrUnregisteredScreen}
	}

	screen, vm, err := s.resolver.Resolve(ctx, req.Screen, kind)
	if err != nil {
		return nil, err
	}
	if vm == nil {
		return nil, &domain.ConfigurationError{Screen: req.Screen, Err: errNilViewModel}
	}

	if req.HasParams {
		if err := s.initialize(vm, req.Params); err != nil {
			return nil, err
		}
	}

	if b, ok := screen.(domain.Binder); ok {
		b.Bind(vm)
	}
	return &domain.Page{ID: req.Screen, Screen: screen, ViewModel: vm}, nil
}

func (s *Service) initialize(vm domain.ViewModel, params any) error {
	if domain.IsDisposed(vm) {
		return domain.ErrViewModelDisposed
	}
	initializer, ok := vm.(domain.Initializable)
	if !ok {
		if params == nil {
			return nil
		}
		return &domain.TypeMismatchError{Actual: reflect.TypeOf(params)}
	}
	return initializer.Initialize(params)
}

func (s *Service) refresh(page *domain.Page) {
	if domain.IsDisposed(page.ViewModel) {
		s.logger.Error("skipping refresh of disposed view-model",
			"screen", page.ID,
			"view_model", vmType(page.ViewModel),
		)
		return
	}
	if r, ok := page.ViewModel.(domain.Refreshable); ok {
		r.Refresh()
	}
}

// replace disposes the current view-model and activates page.
func (s *Service) replace(ctx context.Context, mode domain.NavigationMode, page *domain.Page) {
	prev := s.store.Current()
	if prev != nil {
		s.release(ctx, *prev, page)
	}
	s.activate(ctx, mode, prev, page)
}

func (s *Service) activate(ctx context.Context, mode domain.NavigationMode, prev, next *domain.Page) {
	s.store.SetCurrent(next)

	var from domain.ScreenID
	if prev != nil {
		from = prev.ID
	}
	s.logger.Info("navigated",
		"screen", next.ID,
		"mode", mode,
		"from", from,
		"history", s.history.len(),
	)
	s.emit(ctx, s.hooks.OnNavigate, &domain.NavigationEvent{
		Type: domain.EventNavigate,
		Mode: mode,
		From: from,
		To:   next.ID,
	})
}

// release disposes page's view-model unless it is still referenced by the
// history or by one of keep. Resolvers with a singleton policy hand out the
// same instance for every navigation, and a live slot must never hold a
// disposed view-model.
func (s *Service) release(ctx context.Context, page domain.Page, keep ...*domain.Page) bool {
	for _, k := range keep {
		if k != nil && sameViewModel(k.ViewModel, page.ViewModel) {
			return false
		}
	}
	if s.history.references(page.ViewModel) {
		return false
	}
	s.dispose(ctx, page)
	return true
}

func (s *Service) dispose(ctx context.Context, page domain.Page) {
	page.ViewModel.Dispose()
	s.logger.Debug("view-model disposed", "screen", page.ID, "view_model", vmType(page.ViewModel))
	s.emit(ctx, s.hooks.OnDispose, &domain.NavigationEvent{
		Type:   domain.EventDispose,
		Screen: page.ID,
	})
}

func (s *Service) ensureNoOverlay() error {
	if len(s.overlays) > 0 {
		return domain.ErrOverlayOpen
	}
	return nil
}

func sameViewModel(a, b domain.ViewModel) bool {
	if a == nil || b == nil {
		return false
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func vmType(vm domain.ViewModel) string {
	if vm == nil {
		return "<nil>"
	}
	return reflect.TypeOf(vm).String()
}
