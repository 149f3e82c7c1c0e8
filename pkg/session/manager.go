package session

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/navkit/internal/logging"
)

// ErrEmptyID is returned for a blank session id.
var ErrEmptyID = errors.New("session id is empty")

// Factory creates the value of a new session.
type Factory[T any] func(ctx context.Context, id string) (T, error)

// entry holds one session, the mutex serializing access to it and the number
// of callers currently using it.
type entry[T any] struct {
	mu       sync.Mutex
	refs     int
	ready    bool
	value    T
	lastUsed time.Time
}

// Manager orchestrates session access, ensuring safe concurrent operations.
type Manager[T any] struct {
	factory Factory[T]
	onClose func(id string, value T)

	mu       sync.Mutex
	sessions map[string]*entry[T]

	logger *slog.Logger
	now    func() time.Time
}

// Option configures the Manager.
type Option func(*options)

type options struct {
	logger *slog.Logger
	now    func() time.Time
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock replaces time.Now for idle tracking.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// NewManager creates a manager building sessions with factory.
func NewManager[T any](factory Factory[T], opts ...Option) *Manager[T] {
	o := options{logger: logging.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager[T]{
		factory:  factory,
		sessions: make(map[string]*entry[T]),
		logger:   o.logger,
		now:      o.now,
	}
}

// OnClose registers fn to run for every session removed by Delete or Sweep.
func (m *Manager[T]) OnClose(fn func(id string, value T)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClose = fn
}

// acquire gets or creates the entry of id and increments its reference count.
// The caller must call release(id) when done.
func (m *Manager[T]) acquire(id string) *entry[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		e = &entry[T]{}
		m.sessions[id] = e
	}
	e.refs++
	e.lastUsed = m.now()
	return e
}

// release decrements the reference count. An entry whose session never
// started is dropped once nobody references it.
func (m *Manager[T]) release(id string, e *entry[T]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.refs--
	if e.refs <= 0 && !e.ready && m.sessions[id] == e {
		delete(m.sessions, id)
	}
}

// WithLock runs fn with the value of session id while holding its lock,
// creating the session first when needed.
func (m *Manager[T]) WithLock(ctx context.Context, id string, fn func(context.Context, T) error) error {
	if id == "" {
		return ErrEmptyID
	}

	e := m.acquire(id)
	e.mu.Lock()
	defer func() {
		e.mu.Unlock()
		m.release(id, e)
	}()

	if !e.ready {
		value, err := m.factory(ctx, id)
		if err != nil {
			m.logger.Warn("session start failed", "session_id", id, "err", err)
			return err
		}
		m.mu.Lock()
		e.value, e.ready = value, true
		m.mu.Unlock()
		m.logger.Info("session started", "session_id", id)
	}
	return fn(ctx, e.value)
}

// Get returns the value of session id, creating it when needed.
func (m *Manager[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := m.WithLock(ctx, id, func(_ context.Context, v T) error {
		out = v
		return nil
	})
	return out, err
}

// Delete removes session id. It reports whether the session existed.
func (m *Manager[T]) Delete(id string) bool {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if !ok || !e.ready {
		m.mu.Unlock()
		return false
	}
	delete(m.sessions, id)
	onClose := m.onClose
	m.mu.Unlock()

	m.logger.Info("session deleted", "session_id", id)
	if onClose != nil {
		onClose(id, e.value)
	}
	return true
}

// Sweep removes the sessions unused for longer than idle and returns their
// ids, sorted. Sessions held by a caller are kept.
func (m *Manager[T]) Sweep(idle time.Duration) []string {
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	var removed []string
	values := make(map[string]T)
	for id, e := range m.sessions {
		if e.ready && e.refs == 0 && e.lastUsed.Before(cutoff) {
			removed = append(removed, id)
			values[id] = e.value
			delete(m.sessions, id)
		}
	}
	onClose := m.onClose
	m.mu.Unlock()

	sort.Strings(removed)
	for _, id := range removed {
		m.logger.Info("session expired", "session_id", id, "idle", idle)
		if onClose != nil {
			onClose(id, values[id])
		}
	}
	return removed
}

// List returns the ids of the started sessions, sorted.
func (m *Manager[T]) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.sessions))
	for id, e := range m.sessions {
		if e.ready {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of started sessions.
func (m *Manager[T]) Len() int {
	return len(m.List())
}
