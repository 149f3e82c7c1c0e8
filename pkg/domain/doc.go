/*
Package domain contains the core models of the navkit navigation state machine.

It defines the vocabulary shared by the service, its collaborators and its
adapters. This package is kept pure and free of I/O, following Hexagonal
Architecture principles.

# Key Entities

  - ScreenID / ViewModelKind: identities used by the registration table.
  - Screen: the opaque renderable companion of a view-model.
  - ViewModel: the behavioral unit, described by capability interfaces
    (Disposable, Initializable, Refreshable).
  - Page: a screen bound to its view-model; what the history stack holds.
  - Request: a navigation target plus optional initialization parameters.
  - LifecycleHooks: observability callbacks fired on every transition.
*/
package domain
