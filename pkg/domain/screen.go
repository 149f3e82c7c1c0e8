package domain

import "fmt"

// ScreenID identifies a navigable screen in the registration table.
type ScreenID string

// ViewModelKind identifies the view-model type that must back a screen.
// The resolver decides how a kind maps to a concrete instance.
type ViewModelKind string

// Screen is the renderable unit produced by the resolver.
// The core never inspects it; it only stores it next to its view-model.
type Screen any

// Binder is implemented by screens that want to receive the view-model they
// are bound to before they become visible.
type Binder interface {
	Bind(vm ViewModel)
}

// Page is a screen bound to its view-model.
type Page struct {
	ID        ScreenID
	Screen    Screen
	ViewModel ViewModel
}

// String returns the screen id and the dynamic view-model type.
func (p *Page) String() string {
	if p == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s(%T)", p.ID, p.ViewModel)
}

// Request describes a navigation target.
// Params are only handed to the view-model when HasParams is set, so that an
// explicit nil can be told apart from "no parameters".
type Request struct {
	Screen    ScreenID
	Params    any
	HasParams bool
}

// To creates a parameterless request for the given screen.
func To(screen ScreenID) Request {
	return Request{Screen: screen}
}

// With returns a copy of the request carrying initialization parameters.
func (r Request) With(params any) Request {
	r.Params = params
	r.HasParams = true
	return r
}
