// Package http exposes a navigator over a JSON control API.
//
// A navigator is not safe for concurrent use, so the handler serializes every
// request that touches it through one mutex.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/navkit"
	"github.com/aretw0/navkit/internal/logging"
	"github.com/aretw0/navkit/internal/presentation/graph"
	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/ports"
	"github.com/aretw0/navkit/pkg/registry"
	"github.com/go-chi/chi/v5"
)

// Navigator is the navigation surface the server drives.
type Navigator interface {
	ports.Navigator
	ID() string
}

// ParamDecoder turns the raw params of a request into the value handed to the
// view-model of screen.
type ParamDecoder func(screen domain.ScreenID, raw json.RawMessage) (any, error)

// Server holds the handlers of the control API.
type Server struct {
	mu      sync.Mutex
	nav     Navigator
	decode  ParamDecoder
	metrics http.Handler
	logger  *slog.Logger
	Streams *StreamManager

	sessions SessionSource
	once     sync.Once
	router   http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithParamDecoder replaces the default decoder, which unmarshals params into any.
func WithParamDecoder(d ParamDecoder) Option {
	return func(s *Server) {
		if d != nil {
			s.decode = d
		}
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithSessions mounts the per-session API under /sessions.
func WithSessions(src SessionSource) Option {
	return func(s *Server) {
		s.sessions = src
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a server for nav.
func NewServer(nav Navigator, opts ...Option) *Server {
	s := &Server{
		nav:     nav,
		decode:  DecodeAny,
		logger:  logging.NewNop(),
		Streams: NewStreamManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler is shorthand for NewServer(nav, opts...).Handler().
func NewHandler(nav Navigator, opts ...Option) http.Handler {
	return NewServer(nav, opts...).Handler()
}

// Handler returns the chi router, built on first use.
func (s *Server) Handler() http.Handler {
	s.once.Do(func() {
		r := chi.NewRouter()
		r.Get("/health", s.GetHealth)
		r.Get("/info", s.GetInfo)
		r.Get("/state", s.GetState)
		r.Post("/navigate", s.Navigate)
		r.Post("/back", s.Back)
		r.Post("/overlay", s.OpenOverlay)
		r.Post("/overlay/close", s.CloseOverlay)
		r.Get("/events", s.SubscribeEvents)
		r.Get("/graph", s.GetGraph)
		if s.metrics != nil {
			r.Handle("/metrics", s.metrics)
		}
		if s.sessions != nil {
			r.Get("/sessions", s.ListSessions)
			r.Delete("/sessions/{id}", s.DeleteSession)
			r.HandleFunc("/sessions/{id}/*", s.ForwardSession)
		}
		s.router = r
	})
	return s.router
}

// DecodeAny unmarshals raw into a generic value. Empty params decode to nil.
func DecodeAny(_ domain.ScreenID, raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// PageView is the JSON form of a page.
type PageView struct {
	Screen    domain.ScreenID `json:"screen"`
	ViewModel string          `json:"view_model"`
}

// StateView is the JSON form of the navigator state.
type StateView struct {
	NavigatorID  string        `json:"navigator_id"`
	Status       domain.Status `json:"status"`
	Current      *PageView     `json:"current,omitempty"`
	History      []PageView    `json:"history"`
	OverlayDepth int           `json:"overlay_depth"`
	CanGoBack    bool          `json:"can_go_back"`
}

// NavigateRequest is the body of POST /navigate and POST /overlay.
type NavigateRequest struct {
	Screen domain.ScreenID `json:"screen"`
	// Mode is one of push (default), forget, destroy or reset.
	Mode   domain.NavigationMode `json:"mode,omitempty"`
	Params json.RawMessage       `json:"params,omitempty"`
}

// BackResponse is the body returned by POST /back and POST /overlay/close.
type BackResponse struct {
	OK    bool      `json:"ok"`
	State StateView `json:"state"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "navkit-http",
		"version": strings.TrimSpace(navkit.Version),
	})
}

// GetState handles the GET /state request.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	state := s.snapshot()
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, state)
}

// GetGraph handles the GET /graph request: the route table as a Mermaid
// flowchart with the current back stack highlighted.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	routed, ok := s.nav.(interface{ Table() *registry.Table })
	if !ok {
		http.Error(w, "route table not available", http.StatusNotImplemented)
		return
	}

	s.mu.Lock()
	state := &graph.StateOverlay{Overlays: s.nav.OverlayDepth()}
	for _, p := range s.nav.History() {
		state.History = append(state.History, p.ID)
	}
	if cur := s.nav.Current(); cur != nil {
		state.Current = cur.ID
	}
	s.mu.Unlock()

	entry := state.Current
	if len(state.History) > 0 {
		entry = state.History[0]
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(graph.RoutesFromTable(routed.Table()), entry, state))
}

// Navigate handles the POST /navigate request.
func (s *Server) Navigate(w http.ResponseWriter, r *http.Request) {
	var body NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Navigate: Invalid request body", "error", err)
		return
	}
	req, err := s.request(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid params: %v", err), http.StatusBadRequest)
		return
	}

	var navigate func(context.Context, domain.Request) error
	switch body.Mode {
	case "", domain.ModePush:
		navigate = s.nav.Navigate
	case domain.ModeForget:
		navigate = s.nav.NavigateAndForget
	case domain.ModeDestroy:
		navigate = s.nav.DestroyAndNavigate
	case domain.ModeReset:
		navigate = s.nav.ResetAndNavigate
	default:
		http.Error(w, fmt.Sprintf("Unknown mode %q", body.Mode), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := navigate(r.Context(), req); err != nil {
		s.fail(w, "Navigate", err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.snapshot())
}

// Back handles the POST /back request.
func (s *Server) Back(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.nav.NavigateBack(r.Context())
	s.writeJSON(w, http.StatusOK, BackResponse{OK: ok, State: s.snapshot()})
}

// OpenOverlay handles the POST /overlay request.
// The resolved overlay is announced on the event stream.
func (s *Server) OpenOverlay(w http.ResponseWriter, r *http.Request) {
	var body NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("OpenOverlay: Invalid request body", "error", err)
		return
	}
	req, err := s.request(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid params: %v", err), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.nav.NavigateOverlay(r.Context(), req, nil, nil); err != nil {
		s.fail(w, "OpenOverlay", err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.snapshot())
}

// CloseOverlay handles the POST /overlay/close request.
func (s *Server) CloseOverlay(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.nav.CloseOverlay(r.Context())
	s.writeJSON(w, http.StatusOK, BackResponse{OK: ok, State: s.snapshot()})
}

// Publish broadcasts e to /events subscribers.
func (s *Server) Publish(_ context.Context, e *domain.NavigationEvent) {
	bytes, err := json.Marshal(e)
	if err != nil {
		s.logger.Error("event encode failed", "error", err)
		return
	}
	s.Streams.Broadcast(string(bytes))
}

// Close ends the /events streams of the server.
func (s *Server) Close() {
	s.Streams.CloseAll()
}

// Hooks returns lifecycle hooks that publish every event.
func (s *Server) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNavigate:     s.Publish,
		OnEvict:        s.Publish,
		OnDispose:      s.Publish,
		OnOverlayOpen:  s.Publish,
		OnOverlayClose: s.Publish,
	}
}

func (s *Server) request(body NavigateRequest) (domain.Request, error) {
	req := domain.To(body.Screen)
	if len(body.Params) == 0 {
		return req, nil
	}
	params, err := s.decode(body.Screen, body.Params)
	if err != nil {
		return req, err
	}
	return req.With(params), nil
}

// snapshot must be called with s.mu held.
func (s *Server) snapshot() StateView {
	history := s.nav.History()
	view := StateView{
		NavigatorID:  s.nav.ID(),
		Status:       s.nav.Status(),
		History:      make([]PageView, len(history)),
		OverlayDepth: s.nav.OverlayDepth(),
		CanGoBack:    s.nav.CanGoBack(),
	}
	for i, p := range history {
		view.History[i] = pageView(p)
	}
	if cur := s.nav.Current(); cur != nil {
		pv := pageView(*cur)
		view.Current = &pv
	}
	return view
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	} else {
		s.logger.Warn(op+" rejected", "error", err)
	}
	http.Error(w, fmt.Sprintf("%s error: %v", op, err), status)
}

func statusFor(err error) int {
	switch {
	case domain.IsConfigurationError(err):
		return http.StatusNotFound
	case domain.IsTypeMismatch(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrOverlayOpen),
		errors.Is(err, domain.ErrNestedOverlay),
		errors.Is(err, domain.ErrViewModelDisposed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func pageView(p domain.Page) PageView {
	return PageView{Screen: p.ID, ViewModel: fmt.Sprintf("%T", p.ViewModel)}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
