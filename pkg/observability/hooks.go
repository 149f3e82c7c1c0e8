package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/navkit/pkg/domain"
)

type hookFunc = func(context.Context, *domain.NavigationEvent)

// Combine returns hooks that call every non-nil hook of each set, in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	pick := func(get func(domain.LifecycleHooks) hookFunc) hookFunc {
		var fns []hookFunc
		for _, s := range sets {
			if fn := get(s); fn != nil {
				fns = append(fns, fn)
			}
		}
		if len(fns) == 0 {
			return nil
		}
		return func(ctx context.Context, e *domain.NavigationEvent) {
			for _, fn := range fns {
				fn(ctx, e)
			}
		}
	}

	return domain.LifecycleHooks{
		OnNavigate:     pick(func(h domain.LifecycleHooks) hookFunc { return h.OnNavigate }),
		OnEvict:        pick(func(h domain.LifecycleHooks) hookFunc { return h.OnEvict }),
		OnDispose:      pick(func(h domain.LifecycleHooks) hookFunc { return h.OnDispose }),
		OnOverlayOpen:  pick(func(h domain.LifecycleHooks) hookFunc { return h.OnOverlayOpen }),
		OnOverlayClose: pick(func(h domain.LifecycleHooks) hookFunc { return h.OnOverlayClose }),
	}
}

// LoggingHooks writes every event to logger at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	log := func(ctx context.Context, e *domain.NavigationEvent) {
		logger.DebugContext(ctx, string(e.Type),
			"navigator", e.NavigatorID,
			"mode", e.Mode,
			"from", e.From,
			"to", e.To,
			"screen", e.Screen,
			"history", e.HistoryLen,
		)
	}
	return domain.LifecycleHooks{
		OnNavigate:     log,
		OnEvict:        log,
		OnDispose:      log,
		OnOverlayOpen:  log,
		OnOverlayClose: log,
	}
}
