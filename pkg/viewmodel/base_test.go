package viewmodel_test

import (
	"testing"

	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/store"
	"github.com/aretw0/navkit/pkg/viewmodel"
	"github.com/stretchr/testify/assert"
)

func TestBase_Dispose(t *testing.T) {
	var b viewmodel.Base
	var order []int
	b.OnDispose(func() { order = append(order, 1) })
	b.OnDispose(func() { order = append(order, 2) })

	assert.NoError(t, b.Guard())
	assert.False(t, b.Disposed())
	assert.False(t, domain.IsDisposed(&b))

	b.Dispose()
	b.Dispose()

	assert.Equal(t, []int{2, 1}, order, "cleanups run once, last registered first")
	assert.True(t, b.Disposed())
	assert.True(t, domain.IsDisposed(&b))
	assert.ErrorIs(t, b.Guard(), domain.ErrViewModelDisposed)

	late := false
	b.OnDispose(func() { late = true })
	assert.True(t, late)
}

func TestShell_FollowsStore(t *testing.T) {
	s := store.New()
	shell := viewmodel.NewShell(s)

	var seen []domain.ScreenID
	shell.OnChange(func(p *domain.Page) {
		if p != nil {
			seen = append(seen, p.ID)
		}
	})

	s.SetCurrent(&domain.Page{ID: "start"})
	s.SetCurrent(&domain.Page{ID: "main"})
	assert.Equal(t, domain.ScreenID("main"), shell.Current().ID)

	shell.Dispose()
	assert.Equal(t, 0, s.Subscribers())

	s.SetCurrent(&domain.Page{ID: "edit"})
	assert.Equal(t, []domain.ScreenID{"start", "main"}, seen)
}
