// Package demo is a small user manager built on navkit: a start page, a user
// list, create and edit pages, a detail overlay and a confirmation overlay.
package demo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/navkit"
	"github.com/aretw0/navkit/internal/users"
	"github.com/aretw0/navkit/pkg/adapters/container"
	"github.com/aretw0/navkit/pkg/config"
	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/ports"
)

// Screens routed by config.Default.
const (
	ScreenStart      domain.ScreenID = "start"
	ScreenUsers      domain.ScreenID = "users"
	ScreenShowUser   domain.ScreenID = "users.show"
	ScreenCreateUser domain.ScreenID = "users.create"
	ScreenEditUser   domain.ScreenID = "users.edit"
	ScreenConfirm    domain.ScreenID = "confirm"
)

// View-model kinds bound by NewContainer.
const (
	KindStart      domain.ViewModelKind = "start"
	KindUserList   domain.ViewModelKind = "users.list"
	KindShowUser   domain.ViewModelKind = "users.show"
	KindCreateUser domain.ViewModelKind = "users.create"
	KindEditUser   domain.ViewModelKind = "users.edit"
	KindConfirm    domain.ViewModelKind = "confirm"
)

// NavigatorFunc returns the navigator the view-models drive. It is called when
// a view-model is created, after the navigator exists.
type NavigatorFunc func() ports.Navigator

// NewContainer binds every demo view-model and screen.
// The start page is a singleton; everything else is transient.
func NewContainer(repo users.Repository, nav NavigatorFunc, logger *slog.Logger) *container.Container {
	c := container.New(container.WithLogger(logger))

	c.Register(KindStart, container.Singleton, func(context.Context) (domain.ViewModel, error) {
		return NewStart(nav()), nil
	})
	c.Register(KindUserList, container.Transient, func(ctx context.Context) (domain.ViewModel, error) {
		return NewUserList(ctx, nav(), repo), nil
	})
	c.Register(KindShowUser, container.Transient, func(context.Context) (domain.ViewModel, error) {
		return NewShowUser(nav(), repo), nil
	})
	c.Register(KindCreateUser, container.Transient, func(context.Context) (domain.ViewModel, error) {
		return NewCreateUser(nav(), repo), nil
	})
	c.Register(KindEditUser, container.Transient, func(context.Context) (domain.ViewModel, error) {
		return NewEditUser(nav(), repo), nil
	})
	c.Register(KindConfirm, container.Transient, func(context.Context) (domain.ViewModel, error) {
		return NewConfirm(nav()), nil
	})

	for id, render := range views {
		c.RegisterScreen(id, newViewFactory(render))
	}
	return c
}

// Unbound returns the configured kinds that c has no factory for.
func Unbound(cfg *config.Config, c *container.Container) []domain.ViewModelKind {
	var missing []domain.ViewModelKind
	for _, screen := range cfg.Screens() {
		kind := domain.ViewModelKind(cfg.Routes[string(screen)])
		if !c.Has(kind) {
			missing = append(missing, kind)
		}
	}
	return missing
}

// Build wires a navigator over repo from cfg. Extra options are applied last.
func Build(cfg *config.Config, repo users.Repository, logger *slog.Logger, opts ...navkit.Option) (*navkit.Navigator, error) {
	var nav *navkit.Navigator
	c := NewContainer(repo, func() ports.Navigator { return nav }, logger)
	if missing := Unbound(cfg, c); len(missing) > 0 {
		return nil, fmt.Errorf("%w: no view-model bound for %v", config.ErrInvalid, missing)
	}

	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}

	all := append([]navkit.Option{
		navkit.WithResolver(c),
		navkit.WithTable(table),
		navkit.WithLogger(logger),
	}, cfg.Options()...)
	nav, err = navkit.New(append(all, opts...)...)
	if err != nil {
		return nil, err
	}
	return nav, nil
}
