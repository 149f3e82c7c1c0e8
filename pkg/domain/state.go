package domain

// Status describes the mode of the navigation state machine.
type Status string

const (
	StatusIdle        Status = "idle"         // No active screen
	StatusActive      Status = "active"       // One active screen, history of any length
	StatusOverlayOpen Status = "overlay_open" // An overlay is layered on top of the active screen
)

// NavigationMode names the operation that produced a transition.
type NavigationMode string

const (
	ModePush    NavigationMode = "push"
	ModeForget  NavigationMode = "forget"
	ModeDestroy NavigationMode = "destroy"
	ModeReset   NavigationMode = "reset"
	ModeBack    NavigationMode = "back"
	ModeOverlay NavigationMode = "overlay"
)

// ClearPolicy decides what happens to history entries dropped by a reset.
type ClearPolicy string

const (
	// ClearDispose disposes every entry that is still in the history.
	ClearDispose ClearPolicy = "dispose"
	// ClearRetain drops entries without disposing them.
	ClearRetain ClearPolicy = "retain"
)

// Valid reports whether p is a known policy.
func (p ClearPolicy) Valid() bool {
	return p == ClearDispose || p == ClearRetain
}
