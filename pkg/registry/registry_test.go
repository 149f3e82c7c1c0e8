package registry_test

import (
	"testing"

	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	b := registry.NewBuilder().
		Register("start", "vm.start").
		Register("main", "vm.main").
		Register("main", "vm.main.v2")

	table, err := b.Build()
	require.NoError(t, err)

	kind, ok := table.Lookup("main")
	assert.True(t, ok)
	assert.Equal(t, domain.ViewModelKind("vm.main.v2"), kind)

	_, ok = table.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, []domain.ScreenID{"main", "start"}, table.Screens())
	assert.Equal(t, 2, table.Len())
}

func TestBuilder_TableIsFrozen(t *testing.T) {
	b := registry.NewBuilder().Register("start", "vm.start")
	table := b.MustBuild()

	b.Register("late", "vm.late")

	_, ok := table.Lookup("late")
	assert.False(t, ok, "registrations after Build must not leak into the table")
}

func TestBuilder_EmptyIDs(t *testing.T) {
	_, err := registry.NewBuilder().
		Register("", "vm.x").
		Register("screen", "").
		Build()

	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrEmptyID)
	assert.Panics(t, func() {
		registry.NewBuilder().Register("", "").MustBuild()
	})
}

func TestTable_Nil(t *testing.T) {
	var table *registry.Table
	_, ok := table.Lookup("x")
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Screens())
}
