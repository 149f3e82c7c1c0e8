package runtime

import (
	"context"

	"github.com/aretw0/navkit/pkg/domain"
)

// history is the bounded back stack, most recent last.
type history struct {
	entries []domain.Page
	max     int
}

func newHistory(max int) *history {
	if max < 0 {
		max = 0
	}
	return &history{max: max}
}

// push appends p. When the stack is at capacity the bottom entry is removed
// first and returned. The top pinned entries belong to open overlays and are
// never evicted, so the stack may exceed max while they are open.
func (h *history) push(p domain.Page, pinned int) (evicted domain.Page, ok bool) {
	if h.max > 0 && len(h.entries) >= h.max && len(h.entries) > pinned {
		evicted = h.entries[0]
		h.entries = append(h.entries[:0], h.entries[1:]...)
		ok = true
	}
	h.entries = append(h.entries, p)
	return evicted, ok
}

// popIf pops the top entry when it is the page of screen id.
func (h *history) popIf(id domain.ScreenID) bool {
	if h.empty() || h.entries[len(h.entries)-1].ID != id {
		return false
	}
	h.pop()
	return true
}

func (h *history) pop() domain.Page {
	last := h.entries[len(h.entries)-1]
	h.entries[len(h.entries)-1] = domain.Page{}
	h.entries = h.entries[:len(h.entries)-1]
	return last
}

// drain empties the stack and returns its former entries, oldest first.
func (h *history) drain() []domain.Page {
	entries := h.entries
	h.entries = nil
	return entries
}

func (h *history) references(vm domain.ViewModel) bool {
	for _, e := range h.entries {
		if sameViewModel(e.ViewModel, vm) {
			return true
		}
	}
	return false
}

func (h *history) snapshot() []domain.Page {
	out := make([]domain.Page, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *history) len() int    { return len(h.entries) }
func (h *history) empty() bool { return len(h.entries) == 0 }

// push records entry as a back target. When the history is full the oldest
// entry that no open overlay owns is evicted and released before the push
// completes.
func (s *Service) push(ctx context.Context, entry domain.Page, keep ...*domain.Page) {
	evicted, ok := s.history.push(entry, len(s.overlays))
	if !ok {
		return
	}

	s.logger.Warn("history entry evicted",
		"screen", evicted.ID,
		"view_model", vmType(evicted.ViewModel),
		"max_history", s.history.max,
	)
	s.emit(ctx, s.hooks.OnEvict, &domain.NavigationEvent{
		Type:   domain.EventEvict,
		Screen: evicted.ID,
	})
	s.release(ctx, evicted, keep...)
}

// clearHistory drops every entry. Under ClearDispose each distinct view-model
// that is not the active one is disposed once.
func (s *Service) clearHistory(ctx context.Context, active *domain.Page) {
	entries := s.history.drain()
	if s.clearPolicy == domain.ClearRetain {
		if len(entries) > 0 {
			s.logger.Debug("history cleared without disposal", "dropped", len(entries))
		}
		return
	}

	released := make([]*domain.Page, 0, len(entries)+1)
	released = append(released, active)
	for i := range entries {
		if s.release(ctx, entries[i], released...) {
			released = append(released, &entries[i])
		}
	}
}

func (s *Service) emit(ctx context.Context, hook func(context.Context, *domain.NavigationEvent), ev *domain.NavigationEvent) {
	if hook == nil {
		return
	}
	ev.Timestamp = s.now()
	ev.NavigatorID = s.id
	ev.HistoryLen = s.history.len()
	hook(ctx, ev)
}
