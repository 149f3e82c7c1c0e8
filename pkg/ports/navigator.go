package ports

import (
	"context"

	"github.com/aretw0/navkit/pkg/domain"
)

// OverlayFunc is called with the overlay page when it opens and with nil when it closes.
type OverlayFunc func(page *domain.Page)

// Navigator is the public surface of the navigation service.
// It is the only mutation path into history and overlay state.
type Navigator interface {
	Navigate(ctx context.Context, req domain.Request) error
	NavigateAndForget(ctx context.Context, req domain.Request) error
	DestroyAndNavigate(ctx context.Context, req domain.Request) error
	ResetAndNavigate(ctx context.Context, req domain.Request) error
	NavigateBack(ctx context.Context) bool
	NavigateOverlay(ctx context.Context, req domain.Request, onResolved OverlayFunc, onClose func()) error
	CloseOverlay(ctx context.Context) bool

	Current() *domain.Page
	History() []domain.Page
	HistoryLen() int
	CanGoBack() bool
	OverlayDepth() int
	Status() domain.Status
}
