package runtime

import (
	"context"

	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/ports"
)

// overlayFrame is one open overlay level. Its page sits on top of the history
// entries of the frames opened before it.
type overlayFrame struct {
	page  domain.Page
	close func()
}

// NavigateOverlay resolves req.Screen and hands it to onResolved so the active
// screen can render it as a layer. The active page in the store is not changed.
// On close, onResolved receives nil and then onClose runs.
func (s *Service) NavigateOverlay(ctx context.Context, req domain.Request, onResolved ports.OverlayFunc, onClose func()) error {
	if len(s.overlays) > 0 && !s.nestedOverlays {
		return domain.ErrNestedOverlay
	}
	page, err := s.resolve(ctx, req)
	if err != nil {
		return err
	}

	if onResolved != nil {
		onResolved(page)
	}

	s.push(ctx, *page, s.store.Current())
	s.overlays = append(s.overlays, overlayFrame{
		page: *page,
		close: func() {
			if onResolved != nil {
				onResolved(nil)
			}
			if onClose != nil {
				onClose()
			}
		},
	})

	s.logger.Info("overlay opened", "screen", page.ID, "depth", len(s.overlays))
	s.emit(ctx, s.hooks.OnOverlayOpen, &domain.NavigationEvent{
		Type:   domain.EventOverlayOpen,
		Mode:   domain.ModeOverlay,
		Screen: page.ID,
	})
	return nil
}

// CloseOverlay pops the top overlay from the history, disposes its view-model
// and runs its close callback. It returns false when no overlay is open.
func (s *Service) CloseOverlay(ctx context.Context) bool {
	if s.history.empty() {
		s.logger.Error("close overlay with empty history")
		return false
	}
	if len(s.overlays) == 0 {
		s.logger.Error("close overlay without an open overlay", "history", s.history.len())
		return false
	}
	s.closeOverlay(ctx, s.store.Current())
	return true
}

// closeOverlay closes the top frame. Its view-model is kept when it is
// referenced by keep or by the remaining history.
func (s *Service) closeOverlay(ctx context.Context, keep ...*domain.Page) {
	frame := s.overlays[len(s.overlays)-1]
	s.overlays = s.overlays[:len(s.overlays)-1]

	if !s.history.popIf(frame.page.ID) {
		s.logger.Error("overlay page missing from history", "screen", frame.page.ID, "history", s.history.len())
	}
	s.release(ctx, frame.page, keep...)
	frame.close()

	s.logger.Info("overlay closed", "screen", frame.page.ID, "depth", len(s.overlays))
	s.emit(ctx, s.hooks.OnOverlayClose, &domain.NavigationEvent{
		Type:   domain.EventOverlayClose,
		Mode:   domain.ModeOverlay,
		Screen: frame.page.ID,
	})
}
