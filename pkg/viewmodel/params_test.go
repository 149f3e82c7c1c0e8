package viewmodel_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/viewmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	N int
	S string
}

type animal struct {
	Name string
	Age  int
}

func TestAs(t *testing.T) {
	t.Run("Value Type", func(t *testing.T) {
		got, err := viewmodel.As[pair](pair{12, "s"})
		require.NoError(t, err)
		assert.Equal(t, pair{12, "s"}, got)
	})

	t.Run("Reference Type", func(t *testing.T) {
		a := &animal{Name: "Foo", Age: 10}
		got, err := viewmodel.As[*animal](a)
		require.NoError(t, err)
		assert.Same(t, a, got)
	})

	t.Run("Interface Type", func(t *testing.T) {
		got, err := viewmodel.As[error](errors.New("boom"))
		require.NoError(t, err)
		assert.EqualError(t, got, "boom")
	})

	t.Run("Nil Into Nilable", func(t *testing.T) {
		got, err := viewmodel.As[*animal](nil)
		require.NoError(t, err)
		assert.Nil(t, got)

		m, err := viewmodel.As[map[string]int](nil)
		require.NoError(t, err)
		assert.Nil(t, m)
	})

	t.Run("Nil Into Value", func(t *testing.T) {
		_, err := viewmodel.As[int](nil)
		require.Error(t, err)

		var mismatch *domain.TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, reflect.TypeOf((*int)(nil)).Elem(), mismatch.Expected)
		assert.Nil(t, mismatch.Actual)
		assert.Equal(t, "navkit: expected parameter of type int, but got none", err.Error())
	})

	t.Run("Mismatch Names Both Types", func(t *testing.T) {
		_, err := viewmodel.As[pair](42)
		require.Error(t, err)
		assert.True(t, domain.IsTypeMismatch(err))

		var mismatch *domain.TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, reflect.TypeOf((*pair)(nil)).Elem(), mismatch.Expected)
		assert.Equal(t, reflect.TypeOf((*int)(nil)).Elem(), mismatch.Actual)
		assert.Contains(t, err.Error(), "viewmodel_test.pair")
		assert.Contains(t, err.Error(), "int")
	})

	t.Run("Typed Nil Pointer Of Other Type", func(t *testing.T) {
		var p *pair
		_, err := viewmodel.As[*animal](p)
		assert.ErrorIs(t, err, domain.ErrTypeMismatch)
	})
}
