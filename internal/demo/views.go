package demo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/navkit/internal/users"
	"github.com/aretw0/navkit/pkg/adapters/container"
	"github.com/aretw0/navkit/pkg/domain"
)

// view is the screen of every demo page. It renders its view-model as markdown.
type view struct {
	vm     domain.ViewModel
	render func(domain.ViewModel) string
}

func newViewFactory(render func(domain.ViewModel) string) container.ScreenFactory {
	return func(vm domain.ViewModel) domain.Screen {
		return &view{vm: vm, render: render}
	}
}

func (v *view) Bind(vm domain.ViewModel) { v.vm = vm }

// Markdown implements tui.Markdowner.
func (v *view) Markdown() string {
	var b strings.Builder
	b.WriteString(v.render(v.vm))
	if c, ok := v.vm.(Commander); ok {
		b.WriteString("\n\n")
		b.WriteString(commandLine(c.Commands()))
	}
	return b.String()
}

var views = map[domain.ScreenID]func(domain.ViewModel) string{
	ScreenStart:      renderStart,
	ScreenUsers:      renderUserList,
	ScreenShowUser:   renderShowUser,
	ScreenCreateUser: renderCreateUser,
	ScreenEditUser:   renderEditUser,
	ScreenConfirm:    renderConfirm,
}

func commandLine(cmds []Command) string {
	parts := make([]string, len(cmds))
	for i, c := range cmds {
		parts[i] = "`" + c.Usage() + "`"
	}
	return "Commands: " + strings.Join(parts, ", ")
}

func renderStart(domain.ViewModel) string {
	return "# navkit\n\nA small user manager. Type `users` to begin."
}

func renderUserList(vm domain.ViewModel) string {
	l, ok := vm.(*UserList)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString("# Users\n\n")
	switch {
	case l.Err != nil:
		fmt.Fprintf(&b, "**Error:** %v", l.Err)
	case len(l.Users) == 0:
		b.WriteString("_No users yet._")
	default:
		b.WriteString("| Id | Name | Email |\n|---|---|---|\n")
		for _, u := range l.Users {
			fmt.Fprintf(&b, "| %d | %s | %s |\n", u.ID, u.FullName(), u.Email)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderShowUser(vm domain.ViewModel) string {
	s, ok := vm.(*ShowUser)
	if !ok {
		return ""
	}
	if s.Err != nil {
		return userError(s.Err)
	}
	return "## " + s.User.FullName() + "\n\n" + userDetails(s.User)
}

func renderCreateUser(vm domain.ViewModel) string {
	var b strings.Builder
	b.WriteString("# New user")
	if c, ok := vm.(*CreateUser); ok && c.Err != nil {
		b.WriteString("\n\n" + formError(c.Err))
	}
	return b.String()
}

func renderEditUser(vm domain.ViewModel) string {
	e, ok := vm.(*EditUser)
	if !ok {
		return ""
	}
	if e.User.ID == 0 && e.Err != nil {
		return userError(e.Err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Edit %s\n\n%s", e.User.FullName(), userDetails(e.User))
	if e.Err != nil {
		b.WriteString("\n\n" + formError(e.Err))
	}
	return b.String()
}

func renderConfirm(vm domain.ViewModel) string {
	c, ok := vm.(*Confirm)
	if !ok {
		return ""
	}
	return "## " + c.Title
}

func userDetails(u users.User) string {
	lines := []string{
		fmt.Sprintf("- **Id:** %d", u.ID),
		fmt.Sprintf("- **Email:** %s", u.Email),
		fmt.Sprintf("- **Added:** %s", u.Added.Format("2006-01-02 15:04")),
	}
	if u.Edited != nil {
		lines = append(lines, fmt.Sprintf("- **Edited:** %s", u.Edited.Format("2006-01-02 15:04")))
	}
	return strings.Join(lines, "\n")
}

func userError(err error) string {
	if errors.Is(err, users.ErrNotFound) {
		return "_User not found._"
	}
	return fmt.Sprintf("**Error:** %v", err)
}

func formError(err error) string {
	return strings.ReplaceAll(fmt.Sprintf("**Error:** %v", err), "\n", "; ")
}
