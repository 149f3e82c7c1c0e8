package ports

import (
	"context"

	"github.com/aretw0/navkit/pkg/domain"
)

// Resolver produces a freshly usable screen/view-model pair.
// Whether instances are shared between calls is the resolver's own lifetime policy.
// Errors are propagated to the navigation caller unchanged.
type Resolver interface {
	Resolve(ctx context.Context, screen domain.ScreenID, kind domain.ViewModelKind) (domain.Screen, domain.ViewModel, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, screen domain.ScreenID, kind domain.ViewModelKind) (domain.Screen, domain.ViewModel, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, screen domain.ScreenID, kind domain.ViewModelKind) (domain.Screen, domain.ViewModel, error) {
	return f(ctx, screen, kind)
}
