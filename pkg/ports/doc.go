/*
Package ports defines the interfaces between the navkit core and its collaborators.

These interfaces decouple the navigation state machine from the dependency
container that builds screens, from the observable cell that renderers watch,
and from the transports that drive navigation.

# Key Interfaces

  - Resolver: builds a screen and its view-model for a registered screen id.
  - NavigationStore: holds the active page and notifies subscribers on change.
  - Navigator: the public operation set of the navigation service.
*/
package ports
