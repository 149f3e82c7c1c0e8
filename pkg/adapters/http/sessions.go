package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SessionSource yields the server of a client session, creating it on first use.
// *session.Manager[*Server] implements it.
type SessionSource interface {
	Get(ctx context.Context, id string) (*Server, error)
	Delete(id string) bool
	List() []string
}

// SessionsView is the body returned by GET /sessions.
type SessionsView struct {
	Sessions []string `json:"sessions"`
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, SessionsView{Sessions: s.sessions.List()})
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Delete(chi.URLParam(r, "id")) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ForwardSession serves /sessions/{id}/<path> with the server of session id,
// as if <path> had been requested from it directly.
func (s *Server) ForwardSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	target, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		s.fail(w, "session", err)
		return
	}

	u := *r.URL
	u.Path = "/" + chi.URLParam(r, "*")
	u.RawPath = ""
	// Drop the routing context so the session router starts from the new path.
	inner := r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, nil))
	inner.URL = &u
	target.Handler().ServeHTTP(w, inner)
}
