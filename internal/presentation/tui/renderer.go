package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/navkit/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Markdowner is implemented by screens that can draw themselves.
type Markdowner interface {
	Markdown() string
}

// State is the part of a navigator the renderer reads.
type State interface {
	Current() *domain.Page
	HistoryLen() int
	OverlayDepth() int
}

// Renderer draws the active page, and an optional overlay on top of it, to a writer.
type Renderer struct {
	out   io.Writer
	plain bool

	md  *glamour.TermRenderer
	bar lipgloss.Style
	dim lipgloss.Style
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	style   string
	width   int
	plain   bool
	profile *termenv.Profile
}

// WithStyle selects a glamour style ("dark", "light", "notty", "ascii").
// The default detects the terminal background.
func WithStyle(style string) RendererOption {
	return func(c *rendererConfig) { c.style = style }
}

// WithWidth sets the word wrap column.
func WithWidth(width int) RendererOption {
	return func(c *rendererConfig) {
		if width > 0 {
			c.width = width
		}
	}
}

// WithPlain writes raw markdown without glamour or ANSI styling.
func WithPlain() RendererOption {
	return func(c *rendererConfig) { c.plain = true }
}

// WithColorProfile forces the color profile of the status bar.
func WithColorProfile(p termenv.Profile) RendererOption {
	return func(c *rendererConfig) { c.profile = &p }
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, opts ...RendererOption) (*Renderer, error) {
	cfg := rendererConfig{width: 80}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Renderer{out: out, plain: cfg.plain}
	if cfg.plain {
		return r, nil
	}

	styleOpt := glamour.WithAutoStyle()
	if cfg.style != "" {
		styleOpt = glamour.WithStandardStyle(cfg.style)
	}
	md, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(cfg.width))
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	r.md = md

	lr := lipgloss.NewRenderer(out)
	if cfg.profile != nil {
		lr.SetColorProfile(*cfg.profile)
	}
	r.bar = lr.NewStyle().Bold(true).Foreground(lipgloss.Color("#a78bfa"))
	r.dim = lr.NewStyle().Faint(true)
	return r, nil
}

// Render draws s. overlay may be nil.
func (r *Renderer) Render(s State, overlay *domain.Page) error {
	page := s.Current()
	if page == nil {
		_, err := fmt.Fprintln(r.out, "(nothing to show)")
		return err
	}

	var doc strings.Builder
	doc.WriteString(Markdown(page))
	if overlay != nil {
		doc.WriteString("\n\n---\n\n")
		doc.WriteString(Markdown(overlay))
	}

	body := doc.String()
	if r.md != nil {
		out, err := r.md.Render(body)
		if err != nil {
			return fmt.Errorf("render %s: %w", page.ID, err)
		}
		body = out
	}

	_, err := fmt.Fprintf(r.out, "%s\n\n%s\n", r.status(s, page, overlay), strings.TrimRight(body, "\n"))
	return err
}

func (r *Renderer) status(s State, page, overlay *domain.Page) string {
	parts := []string{
		string(page.ID),
		fmt.Sprintf("history %d", s.HistoryLen()),
	}
	if overlay != nil {
		parts = append(parts, fmt.Sprintf("overlay %s", overlay.ID))
	} else if depth := s.OverlayDepth(); depth > 0 {
		parts = append(parts, fmt.Sprintf("overlays %d", depth))
	}

	if r.plain {
		return "[" + strings.Join(parts, " | ") + "]"
	}
	return r.bar.Render(parts[0]) + r.dim.Render(" | "+strings.Join(parts[1:], " | "))
}

// Markdown returns the markdown of a page, or a placeholder when its screen
// cannot draw itself.
func Markdown(page *domain.Page) string {
	if m, ok := page.Screen.(Markdowner); ok {
		return m.Markdown()
	}
	return fmt.Sprintf("_%s has no view_", page.ID)
}
