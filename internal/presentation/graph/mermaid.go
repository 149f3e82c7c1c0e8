package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/registry"
)

// Route is one registration of the table.
type Route struct {
	Screen domain.ScreenID
	Kind   domain.ViewModelKind
}

// RoutesFromTable lists the registrations of t in screen order.
func RoutesFromTable(t *registry.Table) []Route {
	screens := t.Screens()
	routes := make([]Route, 0, len(screens))
	for _, s := range screens {
		kind, _ := t.Lookup(s)
		routes = append(routes, Route{Screen: s, Kind: kind})
	}
	return routes
}

// StateOverlay contains the navigator state to visualize on the graph.
type StateOverlay struct {
	History  []domain.ScreenID // Oldest first; overlay pages included
	Current  domain.ScreenID
	Overlays int // Number of history entries, counted from the top, that are overlays
}

// GenerateMermaid produces a Mermaid flowchart of the registered screens.
// Shapes:
// - Entry screen: ((Circle))
// - Default: [Rectangle]
// With a state overlay the back chain is drawn from the oldest entry to the
// current screen, overlays as dotted edges, and visited/current styles applied.
func GenerateMermaid(routes []Route, entry domain.ScreenID, state *StateOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, r := range routes {
		safeID := sanitizeMermaidID(string(r.Screen))
		opener, closer := "[", "]"
		if r.Screen == entry {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s <br/> %s\"%s\n", safeID, opener, r.Screen, r.Kind, closer)
	}

	if state == nil {
		return sb.String()
	}

	// Back chain: every page in the history leads to the one above it. The
	// current screen sits below the overlays.
	base := len(state.History) - state.Overlays
	if base < 0 {
		base = 0
	}
	chain := append([]domain.ScreenID{}, state.History[:base]...)
	if state.Current != "" {
		chain = append(chain, state.Current)
	}
	for i := 1; i < len(chain); i++ {
		fmt.Fprintf(&sb, "    %s --> %s\n", sanitizeMermaidID(string(chain[i-1])), sanitizeMermaidID(string(chain[i])))
	}
	prev := state.Current
	for _, o := range state.History[base:] {
		if prev != "" {
			fmt.Fprintf(&sb, "    %s -. overlay .-> %s\n", sanitizeMermaidID(string(prev)), sanitizeMermaidID(string(o)))
		}
		prev = o
	}

	sb.WriteString("\n    %% State Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	visited := make(map[string]bool)
	for _, id := range state.History {
		safeID := sanitizeMermaidID(string(id))
		if !visited[safeID] && safeID != "" && id != state.Current {
			visited[safeID] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
		}
	}
	if state.Current != "" {
		fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(string(state.Current)))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
