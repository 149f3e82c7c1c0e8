package demo_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/navkit"
	"github.com/aretw0/navkit/internal/demo"
	"github.com/aretw0/navkit/internal/presentation/tui"
	"github.com/aretw0/navkit/internal/users"
	"github.com/aretw0/navkit/pkg/config"
	"github.com/aretw0/navkit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	nav     *navkit.Navigator
	repo    *users.CSVRepository
	session *demo.Session
	out     *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo, err := users.NewCSVRepository(filepath.Join(t.TempDir(), "users.csv"))
	require.NoError(t, err)

	nav, err := demo.Build(config.Default(), repo, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	r, err := tui.NewRenderer(&out, tui.WithPlain())
	require.NoError(t, err)

	s := demo.NewSession(nav, r, &out)
	t.Cleanup(s.Close)
	return &fixture{nav: nav, repo: repo, session: s, out: &out}
}

func (f *fixture) exec(t *testing.T, line string) {
	t.Helper()
	quit, err := f.session.Exec(context.Background(), line)
	require.NoError(t, err, "command %q", line)
	require.False(t, quit)
}

func active[T any](t *testing.T, f *fixture) T {
	t.Helper()
	vm, ok := f.session.Active().(T)
	require.True(t, ok, "active view-model is %T", f.session.Active())
	return vm
}

func TestSession_UserLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.nav.Navigate(ctx, navkit.To(demo.ScreenStart)))
	start := active[*demo.Start](t, f)

	f.exec(t, "users")
	list := active[*demo.UserList](t, f)
	assert.Empty(t, list.Users)
	assert.Equal(t, 1, f.nav.HistoryLen())

	t.Run("Create Refreshes The List On Back", func(t *testing.T) {
		f.exec(t, "add")
		active[*demo.CreateUser](t, f)
		assert.Equal(t, 2, f.nav.HistoryLen())

		f.exec(t, "save Ada Lovelace ada@example.org")
		assert.Same(t, list, active[*demo.UserList](t, f))
		require.Len(t, list.Users, 1)
		assert.Equal(t, 1, list.Users[0].ID)
		assert.Equal(t, "Ada Lovelace", list.Users[0].FullName())
	})

	t.Run("Show Opens An Overlay", func(t *testing.T) {
		f.exec(t, "show 1")
		show := active[*demo.ShowUser](t, f)
		assert.Equal(t, "ada@example.org", show.User.Email)
		assert.Equal(t, 1, f.nav.OverlayDepth())
		assert.Same(t, list, f.nav.Current().ViewModel)

		_, err := f.session.Exec(ctx, "edit 1")
		assert.ErrorIs(t, err, demo.ErrUnknownCommand, "page commands are hidden behind the overlay")

		f.exec(t, "close")
		assert.Nil(t, f.session.Overlay())
		assert.True(t, show.Disposed())
		assert.Zero(t, f.nav.OverlayDepth())
	})

	t.Run("Edit Takes The Id As Parameter", func(t *testing.T) {
		f.exec(t, "edit 1")
		edit := active[*demo.EditUser](t, f)
		assert.Equal(t, "Lovelace", edit.User.Surname)

		f.exec(t, "save Ada King ada@example.org")
		assert.True(t, edit.Disposed())
		require.Len(t, list.Users, 1)
		assert.Equal(t, "Ada King", list.Users[0].FullName())
		assert.NotNil(t, list.Users[0].Edited)
	})

	t.Run("Delete Asks For Confirmation", func(t *testing.T) {
		f.exec(t, "delete 1")
		confirm := active[*demo.Confirm](t, f)
		assert.Equal(t, "Delete Ada King?", confirm.Title)
		assert.True(t, confirm.Armed())

		f.exec(t, "yes")
		assert.True(t, confirm.Disposed())
		assert.False(t, confirm.Armed())
		assert.Empty(t, list.Users)

		all, err := f.repo.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("Home Resets The History", func(t *testing.T) {
		f.exec(t, "home")
		assert.Same(t, start, active[*demo.Start](t, f))
		assert.False(t, start.Disposed())
		assert.True(t, list.Disposed())
		assert.Zero(t, f.nav.HistoryLen())

		f.out.Reset()
		f.exec(t, "back")
		assert.Equal(t, "nothing to go back to\n", f.out.String())
	})
}

func TestSession_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.nav.Navigate(ctx, navkit.To(demo.ScreenUsers)))
	f.exec(t, "add")

	t.Run("Usage", func(t *testing.T) {
		_, err := f.session.Exec(ctx, "save Ada")
		assert.ErrorIs(t, err, demo.ErrUsage)
	})

	t.Run("Invalid User Stays On The Form", func(t *testing.T) {
		_, err := f.session.Exec(ctx, "save Ada Lovelace not-an-email")
		assert.ErrorIs(t, err, users.ErrInvalidUser)

		form := active[*demo.CreateUser](t, f)
		assert.ErrorIs(t, form.Err, users.ErrInvalidUser)
		assert.Equal(t, 1, f.nav.HistoryLen())
	})

	t.Run("Unknown Command", func(t *testing.T) {
		_, err := f.session.Exec(ctx, "fly")
		assert.ErrorIs(t, err, demo.ErrUnknownCommand)
	})

	t.Run("Bad Id", func(t *testing.T) {
		f.exec(t, "cancel")
		_, err := f.session.Exec(ctx, "edit one")
		assert.ErrorIs(t, err, demo.ErrUsage)
	})

	t.Run("Params Type Is Checked", func(t *testing.T) {
		err := f.nav.Navigate(ctx, navkit.To(demo.ScreenEditUser).With("1"))
		assert.True(t, domain.IsTypeMismatch(err))
		active[*demo.UserList](t, f)
	})
}

func TestSession_Render(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.repo.Create(ctx, users.User{Name: "Ada", Surname: "Lovelace", Email: "ada@example.org"})
	require.NoError(t, err)

	require.NoError(t, f.nav.Navigate(ctx, navkit.To(demo.ScreenStart)))
	f.exec(t, "users")
	f.exec(t, "show 1")
	assert.True(t, f.session.Changed())

	f.out.Reset()
	require.NoError(t, f.session.Render())
	assert.False(t, f.session.Changed())

	out := f.out.String()
	assert.True(t, strings.HasPrefix(out, "[users | history 2 | overlay users.show]\n"), out)
	assert.Contains(t, out, "# Users")
	assert.Contains(t, out, "| 1 | Ada Lovelace | ada@example.org |")
	assert.Contains(t, out, "## Ada Lovelace")
	assert.Contains(t, out, "Commands: `close`")
}

func TestSession_Run(t *testing.T) {
	f := newFixture(t)

	in := strings.NewReader("users\nhelp\nquit\n")
	require.NoError(t, f.session.Run(context.Background(), demo.ScreenStart, in))

	out := f.out.String()
	assert.Contains(t, out, "# navkit")
	assert.Contains(t, out, "[users | history 1]")
	assert.Contains(t, out, "delete <id>")
	assert.Contains(t, out, "list the back stack")
}

func TestBuild_RejectsUnboundRoutes(t *testing.T) {
	cfg := config.Default()
	cfg.Routes["reports"] = "reports.monthly"

	repo, err := users.NewCSVRepository(filepath.Join(t.TempDir(), "users.csv"))
	require.NoError(t, err)

	c := demo.NewContainer(repo, nil, nil)
	assert.Equal(t, []domain.ViewModelKind{"reports.monthly"}, demo.Unbound(cfg, c))
	assert.Empty(t, demo.Unbound(config.Default(), c))

	_, err = demo.Build(cfg, repo, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
