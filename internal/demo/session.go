package demo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/navkit"
	"github.com/aretw0/navkit/internal/presentation/tui"
	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/viewmodel"
)

// ErrUnknownCommand is returned by Exec for a command no one accepts.
var ErrUnknownCommand = errors.New("unknown command")

// Session is a line oriented terminal front end over a navigator.
type Session struct {
	nav      *navkit.Navigator
	shell    *viewmodel.Shell
	renderer *tui.Renderer
	out      io.Writer

	// changed is set by the shell when the active page changes.
	changed bool
}

// NewSession creates a session writing to out through r.
func NewSession(nav *navkit.Navigator, r *tui.Renderer, out io.Writer) *Session {
	s := &Session{
		nav:      nav,
		shell:    viewmodel.NewShell(nav.Store()),
		renderer: r,
		out:      out,
	}
	s.shell.OnChange(func(*domain.Page) { s.changed = true })
	return s
}

// Close detaches the session from the navigation store.
func (s *Session) Close() {
	s.shell.Dispose()
}

// Overlay returns the overlay shown on top of the active page, if any.
func (s *Session) Overlay() *domain.Page {
	page := s.shell.Current()
	if page == nil {
		return nil
	}
	if host, ok := page.ViewModel.(OverlayHost); ok {
		return host.Overlay()
	}
	return nil
}

// Active returns the view-model receiving commands: the overlay when one is
// open, the active page otherwise.
func (s *Session) Active() domain.ViewModel {
	if o := s.Overlay(); o != nil {
		return o.ViewModel
	}
	if page := s.shell.Current(); page != nil {
		return page.ViewModel
	}
	return nil
}

// Commands lists the commands accepted right now, page commands first.
func (s *Session) Commands() []Command {
	var cmds []Command
	if c, ok := s.Active().(Commander); ok {
		cmds = append(cmds, c.Commands()...)
	}
	return append(cmds, s.globals()...)
}

func (s *Session) globals() []Command {
	return []Command{
		{
			Name: "back",
			Help: "go back, or close the overlay",
			Run: func(ctx context.Context, _ []string) error {
				if !s.nav.NavigateBack(ctx) {
					fmt.Fprintln(s.out, "nothing to go back to")
				}
				return nil
			},
		},
		{
			Name: "history",
			Help: "list the back stack, oldest first",
			Run: func(context.Context, []string) error {
				for i, p := range s.nav.History() {
					fmt.Fprintf(s.out, "%d. %s\n", i+1, p.ID)
				}
				return nil
			},
		},
		{
			Name: "help",
			Help: "list the commands",
			Run: func(context.Context, []string) error {
				for _, c := range s.Commands() {
					fmt.Fprintf(s.out, "  %-32s %s\n", c.Usage(), c.Help)
				}
				return nil
			},
		},
	}
}

// Exec runs one command line. It reports quit for "quit" and "exit".
func (s *Session) Exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := fields[0], fields[1:]
	if name == "quit" || name == "exit" {
		return true, nil
	}

	for _, c := range s.Commands() {
		if c.Name == name {
			return false, c.Run(ctx, args)
		}
	}
	return false, fmt.Errorf("%w: %q, type help", ErrUnknownCommand, name)
}

// Render draws the active page.
func (s *Session) Render() error {
	s.changed = false
	return s.renderer.Render(s.nav, s.Overlay())
}

// Changed reports whether the active page changed since the last Render.
func (s *Session) Changed() bool {
	return s.changed
}

// Run opens start and reads commands from in until EOF, quit or ctx is done.
func (s *Session) Run(ctx context.Context, start domain.ScreenID, in io.Reader) error {
	if err := s.nav.Navigate(ctx, navkit.To(start)); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := s.Render(); err != nil {
			return err
		}
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		quit, err := s.Exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}
