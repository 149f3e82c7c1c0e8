package ports

import (
	"testing"

	"github.com/aretw0/navkit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunNavigationStoreContract runs a suite of tests to verify that a NavigationStore
// implementation adheres to the defined interface contract.
// newStore must return an empty store on every call.
func RunNavigationStoreContract(t *testing.T, newStore func() NavigationStore) {
	t.Run("Initially Empty", func(t *testing.T) {
		store := newStore()
		assert.Nil(t, store.Current())
	})

	t.Run("Set and Get", func(t *testing.T) {
		store := newStore()
		page := &domain.Page{ID: "home"}

		store.SetCurrent(page)
		require.NotNil(t, store.Current())
		assert.Same(t, page, store.Current())
	})

	t.Run("Notifies Subscribers In Order", func(t *testing.T) {
		store := newStore()
		first := &domain.Page{ID: "first"}
		second := &domain.Page{ID: "second"}

		var calls []string
		store.Subscribe(func(prev, next *domain.Page) {
			calls = append(calls, "a:"+prev.String()+"->"+next.String())
		})
		store.Subscribe(func(prev, next *domain.Page) {
			calls = append(calls, "b:"+prev.String()+"->"+next.String())
		})

		store.SetCurrent(first)
		store.SetCurrent(second)

		assert.Equal(t, []string{
			"a:<none>->" + first.String(),
			"b:<none>->" + first.String(),
			"a:" + first.String() + "->" + second.String(),
			"b:" + first.String() + "->" + second.String(),
		}, calls)
	})

	t.Run("Unsubscribe", func(t *testing.T) {
		store := newStore()
		count := 0
		unsubscribe := store.Subscribe(func(prev, next *domain.Page) { count++ })

		store.SetCurrent(&domain.Page{ID: "a"})
		unsubscribe()
		unsubscribe() // second call is a no-op
		store.SetCurrent(&domain.Page{ID: "b"})

		assert.Equal(t, 1, count)
	})

	t.Run("Setting Nil Notifies", func(t *testing.T) {
		store := newStore()
		store.SetCurrent(&domain.Page{ID: "a"})

		var got *domain.Page = &domain.Page{}
		store.Subscribe(func(prev, next *domain.Page) { got = next })
		store.SetCurrent(nil)

		assert.Nil(t, got)
		assert.Nil(t, store.Current())
	})
}
