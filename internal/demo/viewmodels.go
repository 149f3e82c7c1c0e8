package demo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aretw0/navkit"
	"github.com/aretw0/navkit/internal/users"
	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/ports"
	"github.com/aretw0/navkit/pkg/viewmodel"
)

// ErrUsage is returned when a command gets the wrong arguments.
var ErrUsage = errors.New("usage")

// Command is one action a view-model offers to the terminal.
type Command struct {
	Name string
	Args string
	Help string
	Run  func(ctx context.Context, args []string) error
}

// Usage returns the command line form of c.
func (c Command) Usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

// Commander is implemented by view-models that accept commands.
type Commander interface {
	Commands() []Command
}

// OverlayHost is implemented by view-models that display overlays.
type OverlayHost interface {
	Overlay() *domain.Page
}

func usage(c string) error {
	return fmt.Errorf("%w: %s", ErrUsage, c)
}

func idArg(name string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, usage(name + " <id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s <id>: %q is not a number", ErrUsage, name, args[0])
	}
	return id, nil
}

func userArgs(name string, args []string) (users.User, error) {
	if len(args) != 3 {
		return users.User{}, usage(name + " <name> <surname> <email>")
	}
	return users.User{Name: args[0], Surname: args[1], Email: args[2]}, nil
}

// Start is the landing page.
type Start struct {
	viewmodel.Base
	nav ports.Navigator
}

// NewStart creates the landing page.
func NewStart(nav ports.Navigator) *Start {
	return &Start{nav: nav}
}

// Commands implements Commander.
func (vm *Start) Commands() []Command {
	return []Command{{
		Name: "users",
		Help: "open the user list",
		Run: func(ctx context.Context, _ []string) error {
			return vm.nav.Navigate(ctx, navkit.To(ScreenUsers))
		},
	}}
}

// UserList shows every user and hosts the detail and confirmation overlays.
// It reloads whenever it becomes active again.
type UserList struct {
	viewmodel.Base
	nav  ports.Navigator
	repo users.Repository

	Users []users.User
	Err   error

	overlay *domain.Page
}

// NewUserList creates the list and loads the users.
func NewUserList(ctx context.Context, nav ports.Navigator, repo users.Repository) *UserList {
	vm := &UserList{nav: nav, repo: repo}
	vm.load(ctx)
	return vm
}

func (vm *UserList) load(ctx context.Context) {
	vm.Users, vm.Err = vm.repo.All(ctx)
}

// Refresh reloads the users.
func (vm *UserList) Refresh() {
	vm.load(context.Background())
}

// Overlay returns the overlay page on top of the list, if any.
func (vm *UserList) Overlay() *domain.Page {
	return vm.overlay
}

func (vm *UserList) setOverlay(page *domain.Page) {
	vm.overlay = page
}

// Commands implements Commander.
func (vm *UserList) Commands() []Command {
	return []Command{
		{
			Name: "show",
			Args: "<id>",
			Help: "show a user",
			Run: func(ctx context.Context, args []string) error {
				id, err := idArg("show", args)
				if err != nil {
					return err
				}
				return vm.nav.NavigateOverlay(ctx, navkit.To(ScreenShowUser).With(id), vm.setOverlay, vm.Refresh)
			},
		},
		{
			Name: "add",
			Help: "create a user",
			Run: func(ctx context.Context, _ []string) error {
				return vm.nav.Navigate(ctx, navkit.To(ScreenCreateUser))
			},
		},
		{
			Name: "edit",
			Args: "<id>",
			Help: "edit a user",
			Run: func(ctx context.Context, args []string) error {
				id, err := idArg("edit", args)
				if err != nil {
					return err
				}
				return vm.nav.Navigate(ctx, navkit.To(ScreenEditUser).With(id))
			},
		},
		{
			Name: "delete",
			Args: "<id>",
			Help: "delete a user after confirmation",
			Run: func(ctx context.Context, args []string) error {
				id, err := idArg("delete", args)
				if err != nil {
					return err
				}
				return vm.confirmDelete(ctx, id)
			},
		},
		{
			Name: "home",
			Help: "go to the start page, dropping the history",
			Run: func(ctx context.Context, _ []string) error {
				return vm.nav.ResetAndNavigate(ctx, navkit.To(ScreenStart))
			},
		},
	}
}

func (vm *UserList) confirmDelete(ctx context.Context, id int) error {
	u, err := vm.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Delete %s?", u.FullName())
	onResolved := func(page *domain.Page) {
		vm.setOverlay(page)
		if page == nil {
			return
		}
		if c, ok := page.ViewModel.(*Confirm); ok {
			c.OnConfirm(func(ctx context.Context) error {
				return vm.repo.Delete(ctx, id)
			})
		}
	}
	return vm.nav.NavigateOverlay(ctx, navkit.To(ScreenConfirm).With(title), onResolved, vm.Refresh)
}

// ShowUser is the read-only detail overlay. It takes the user id as parameter.
type ShowUser struct {
	viewmodel.Base
	nav  ports.Navigator
	repo users.Repository

	id   int
	User users.User
	Err  error
}

// NewShowUser creates an empty detail overlay.
func NewShowUser(nav ports.Navigator, repo users.Repository) *ShowUser {
	return &ShowUser{nav: nav, repo: repo}
}

// Initialize takes the int id of the user to show.
func (vm *ShowUser) Initialize(params any) error {
	id, err := viewmodel.As[int](params)
	if err != nil {
		return err
	}
	vm.id = id
	vm.Refresh()
	return nil
}

// Refresh reloads the user.
func (vm *ShowUser) Refresh() {
	vm.User, vm.Err = vm.repo.Get(context.Background(), vm.id)
}

// Commands implements Commander.
func (vm *ShowUser) Commands() []Command {
	return []Command{{
		Name: "close",
		Help: "close the details",
		Run: func(ctx context.Context, _ []string) error {
			vm.nav.CloseOverlay(ctx)
			return nil
		},
	}}
}

// CreateUser is the form for a new user.
type CreateUser struct {
	viewmodel.Base
	nav  ports.Navigator
	repo users.Repository

	Err error
}

// NewCreateUser creates an empty form.
func NewCreateUser(nav ports.Navigator, repo users.Repository) *CreateUser {
	return &CreateUser{nav: nav, repo: repo}
}

// Commands implements Commander.
func (vm *CreateUser) Commands() []Command {
	return []Command{
		{
			Name: "save",
			Args: "<name> <surname> <email>",
			Help: "create the user and go back",
			Run: func(ctx context.Context, args []string) error {
				u, err := userArgs("save", args)
				if err != nil {
					return err
				}
				if _, err := vm.repo.Create(ctx, u); err != nil {
					vm.Err = err
					return err
				}
				vm.nav.NavigateBack(ctx)
				return nil
			},
		},
		cancel(vm.nav),
	}
}

// EditUser edits an existing user. It takes the user id as parameter.
type EditUser struct {
	viewmodel.Base
	nav  ports.Navigator
	repo users.Repository

	id   int
	User users.User
	Err  error
}

// NewEditUser creates the form. Initialize selects the user.
func NewEditUser(nav ports.Navigator, repo users.Repository) *EditUser {
	return &EditUser{nav: nav, repo: repo}
}

// Initialize takes the int id of the user to edit.
func (vm *EditUser) Initialize(params any) error {
	id, err := viewmodel.As[int](params)
	if err != nil {
		return err
	}
	vm.id = id
	vm.Refresh()
	return nil
}

// Refresh reloads the user being edited.
func (vm *EditUser) Refresh() {
	vm.User, vm.Err = vm.repo.Get(context.Background(), vm.id)
}

// Commands implements Commander.
func (vm *EditUser) Commands() []Command {
	return []Command{
		{
			Name: "save",
			Args: "<name> <surname> <email>",
			Help: "update the user and go back",
			Run: func(ctx context.Context, args []string) error {
				u, err := userArgs("save", args)
				if err != nil {
					return err
				}
				u.ID = vm.id
				if err := vm.repo.Update(ctx, u); err != nil {
					vm.Err = err
					return err
				}
				vm.nav.NavigateBack(ctx)
				return nil
			},
		},
		cancel(vm.nav),
	}
}

func cancel(nav ports.Navigator) Command {
	return Command{
		Name: "cancel",
		Help: "go back without saving",
		Run: func(ctx context.Context, _ []string) error {
			nav.NavigateBack(ctx)
			return nil
		},
	}
}

// Confirm asks a yes/no question in an overlay. It takes an optional title.
type Confirm struct {
	viewmodel.Base
	nav ports.Navigator

	Title  string
	action func(context.Context) error
}

// NewConfirm creates a confirmation with the default title.
func NewConfirm(nav ports.Navigator) *Confirm {
	vm := &Confirm{nav: nav, Title: "Confirm the action?"}
	vm.OnDispose(func() { vm.action = nil })
	return vm
}

// Initialize accepts nil or a string title.
func (vm *Confirm) Initialize(params any) error {
	if params == nil {
		return nil
	}
	title, err := viewmodel.As[string](params)
	if err != nil {
		return err
	}
	vm.Title = title
	return nil
}

// OnConfirm sets the action run by the yes command.
func (vm *Confirm) OnConfirm(fn func(context.Context) error) {
	if vm.Disposed() {
		return
	}
	vm.action = fn
}

// Armed reports whether a confirm action is set.
func (vm *Confirm) Armed() bool {
	return vm.action != nil
}

// Commands implements Commander.
func (vm *Confirm) Commands() []Command {
	return []Command{
		{
			Name: "yes",
			Help: "confirm",
			Run: func(ctx context.Context, _ []string) error {
				var err error
				if vm.action != nil {
					err = vm.action(ctx)
				}
				vm.nav.CloseOverlay(ctx)
				return err
			},
		},
		{
			Name: "no",
			Help: "dismiss",
			Run: func(ctx context.Context, _ []string) error {
				vm.nav.CloseOverlay(ctx)
				return nil
			},
		},
	}
}
