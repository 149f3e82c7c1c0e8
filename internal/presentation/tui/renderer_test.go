package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/navkit/internal/presentation/tui"
	"github.com/aretw0/navkit/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type markdownScreen string

func (s markdownScreen) Markdown() string { return string(s) }

type stubState struct {
	page    *domain.Page
	history int
	depth   int
}

func (s stubState) Current() *domain.Page { return s.page }
func (s stubState) HistoryLen() int       { return s.history }
func (s stubState) OverlayDepth() int     { return s.depth }

func TestRenderer_Plain(t *testing.T) {
	list := &domain.Page{ID: "users.list", Screen: markdownScreen("# Users\n\n1. Ada")}

	tests := []struct {
		name    string
		state   stubState
		overlay *domain.Page
		want    string
	}{
		{
			name:  "Idle",
			state: stubState{},
			want:  "(nothing to show)\n",
		},
		{
			name:  "Page",
			state: stubState{page: list, history: 2},
			want:  "[users.list | history 2]\n\n# Users\n\n1. Ada\n",
		},
		{
			name:    "Page With Overlay",
			state:   stubState{page: list, history: 3, depth: 1},
			overlay: &domain.Page{ID: "confirm", Screen: markdownScreen("Delete Ada?")},
			want:    "[users.list | history 3 | overlay confirm]\n\n# Users\n\n1. Ada\n\n---\n\nDelete Ada?\n",
		},
		{
			name:  "Screen Without View",
			state: stubState{page: &domain.Page{ID: "start"}, depth: 1},
			want:  "[start | history 0 | overlays 1]\n\n_start has no view_\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r, err := tui.NewRenderer(&buf, tui.WithPlain())
			require.NoError(t, err)

			require.NoError(t, r.Render(tt.state, tt.overlay))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderer_Glamour(t *testing.T) {
	var buf bytes.Buffer
	r, err := tui.NewRenderer(&buf, tui.WithStyle("notty"), tui.WithWidth(60), tui.WithColorProfile(termenv.Ascii))
	require.NoError(t, err)

	state := stubState{
		page:    &domain.Page{ID: "users.list", Screen: markdownScreen("# Users\n\nAda Lovelace")},
		history: 1,
	}
	require.NoError(t, r.Render(state, nil))

	out := buf.String()
	assert.Contains(t, out, "users.list | history 1")
	assert.Contains(t, out, "Users")
	assert.Contains(t, out, "Ada Lovelace")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, termenv.Ascii, "1.2.3")

	out := buf.String()
	assert.Contains(t, out, `|_| |_|\__,_|`)
	assert.Contains(t, out, "v1.2.3")
	assert.NotContains(t, out, "\x1b[")
}
