/*
Package navkit is a navigation controller for MVVM presentation layers.

It decides which screen is active, keeps a bounded history for back-navigation,
layers transient overlays on top of the active screen and drives the lifecycle
of the view-models it activates: initialization with parameters, refresh on
return and disposal when a screen is replaced or discarded.

# Concept

A screen id is registered against a view-model kind in an immutable
registration table. When a screen is requested, a Resolver (usually a
dependency injection container) builds the screen/view-model pair for that
kind. The navigator initializes the view-model, publishes the new page to a
NavigationStore and disposes whatever it replaced.

Rendering, input and persistence are left to the host. The navigator is not
safe for concurrent use; every call is expected to come from the UI loop.

# Navigation modes

  - Navigate: keep the current page in the history.
  - NavigateAndForget: switch without recording or disposing the current page.
  - DestroyAndNavigate: dispose the current view-model, then switch.
  - ResetAndNavigate: DestroyAndNavigate and clear the history.
  - NavigateBack: dispose the current view-model and refresh the previous one.
  - NavigateOverlay / CloseOverlay: open and close a layer over the active screen.

# Usage

	table := registry.NewBuilder().
		Register("start", "start").
		Register("users.edit", "users.edit").
		MustBuild()

	c := container.New().
		Register("start", container.Singleton, newStartViewModel).
		Register("users.edit", container.Transient, newEditViewModel)

	nav, err := navkit.New(
		navkit.WithResolver(c),
		navkit.WithTable(table),
		navkit.WithMaxHistory(20),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := nav.Navigate(ctx, navkit.To("start")); err != nil {
		log.Fatal(err)
	}
	if err := nav.Navigate(ctx, navkit.To("users.edit").With(42)); err != nil {
		log.Fatal(err)
	}
	nav.NavigateBack(ctx)

View-models receive parameters through Initialize and project them with
viewmodel.As, which reports a *domain.TypeMismatchError instead of guessing.
*/
package navkit
