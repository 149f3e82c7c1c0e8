package runtime_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/navkit/internal/logging"
	"github.com/aretw0/navkit/internal/runtime"
	"github.com/aretw0/navkit/internal/testutils"
	"github.com/aretw0/navkit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// overlayProbe records the callbacks handed to NavigateOverlay.
type overlayProbe struct {
	resolved []*domain.Page
	closed   int
}

func (p *overlayProbe) onResolved(page *domain.Page) { p.resolved = append(p.resolved, page) }
func (p *overlayProbe) onClose()                     { p.closed++ }

func TestService_Overlay(t *testing.T) {
	ctx := context.Background()

	t.Run("Open And Close Are Symmetric", func(t *testing.T) {
		rec := &testutils.EventRecorder{}
		svc, _ := newFixture(t, runtime.WithLifecycleHooks(rec.Hooks()))
		vms := goTo(t, svc, "a", "b")
		active := vms[1]
		require.Equal(t, 1, svc.HistoryLen())

		probe := &overlayProbe{}
		require.NoError(t, svc.NavigateOverlay(ctx, domain.To("overlay"), probe.onResolved, probe.onClose))

		require.Len(t, probe.resolved, 1)
		overlay, ok := probe.resolved[0].ViewModel.(*testutils.ViewModel)
		require.True(t, ok)
		assert.Equal(t, domain.ViewModelKind("overlay"), overlay.Kind)
		assert.Equal(t, domain.StatusOverlayOpen, svc.Status())
		assert.Equal(t, 1, svc.OverlayDepth())
		assert.Equal(t, 2, svc.HistoryLen())
		assert.Same(t, active, current(t, svc), "the store is not changed")

		require.True(t, svc.CloseOverlay(ctx))

		require.Len(t, probe.resolved, 2)
		assert.Nil(t, probe.resolved[1])
		assert.Equal(t, 1, probe.closed)
		assert.Equal(t, 1, overlay.Disposals)
		assert.Equal(t, 1, svc.HistoryLen())
		assert.Zero(t, svc.OverlayDepth())
		assert.Equal(t, domain.StatusActive, svc.Status())
		assert.Same(t, active, current(t, svc))
		assert.Zero(t, active.Disposals)
		assert.Zero(t, active.Refreshes)

		assert.Contains(t, rec.Types(), domain.EventOverlayOpen)
		assert.Contains(t, rec.Types(), domain.EventOverlayClose)
	})

	t.Run("Params Reach The Overlay", func(t *testing.T) {
		svc, _ := newFixture(t)
		goTo(t, svc, "a")

		probe := &overlayProbe{}
		pair := testutils.Pair{Number: 7, Text: "delete?"}
		require.NoError(t, svc.NavigateOverlay(ctx, domain.To("pair").With(pair), probe.onResolved, nil))

		vm, ok := probe.resolved[0].ViewModel.(*testutils.PairViewModel)
		require.True(t, ok)
		assert.Equal(t, pair, vm.Got)
	})

	t.Run("Nested Overlay Is Rejected By Default", func(t *testing.T) {
		svc, resolver := newFixture(t)
		goTo(t, svc, "a")
		require.NoError(t, svc.NavigateOverlay(ctx, domain.To("overlay"), nil, nil))
		calls := resolver.Calls

		err := svc.NavigateOverlay(ctx, domain.To("b"), nil, nil)
		assert.ErrorIs(t, err, domain.ErrNestedOverlay)
		assert.Equal(t, calls, resolver.Calls)
		assert.Equal(t, 1, svc.OverlayDepth())
		assert.Equal(t, 1, svc.HistoryLen())
	})

	t.Run("Nested Overlays Stack When Enabled", func(t *testing.T) {
		svc, _ := newFixture(t, runtime.WithNestedOverlays(true))
		goTo(t, svc, "a")

		outer, inner := &overlayProbe{}, &overlayProbe{}
		require.NoError(t, svc.NavigateOverlay(ctx, domain.To("overlay"), outer.onResolved, outer.onClose))
		require.NoError(t, svc.NavigateOverlay(ctx, domain.To("b"), inner.onResolved, inner.onClose))
		assert.Equal(t, 2, svc.OverlayDepth())

		require.True(t, svc.CloseOverlay(ctx))
		assert.Equal(t, 1, inner.closed)
		assert.Zero(t, outer.closed)
		assert.Equal(t, []domain.ScreenID{"overlay"}, screenIDs(svc.History()))

		require.True(t, svc.CloseOverlay(ctx))
		assert.Equal(t, 1, outer.closed)
		assert.Equal(t, 1, inner.closed)
		assert.Zero(t, svc.HistoryLen())
	})

	t.Run("Forward Navigation Is Blocked", func(t *testing.T) {
		svc, _ := newFixture(t)
		goTo(t, svc, "a")
		require.NoError(t, svc.NavigateOverlay(ctx, domain.To("overlay"), nil, nil))

		assert.ErrorIs(t, svc.Navigate(ctx, domain.To("b")), domain.ErrOverlayOpen)
		assert.ErrorIs(t, svc.NavigateAndForget(ctx, domain.To("b")), domain.ErrOverlayOpen)
		assert.ErrorIs(t, svc.DestroyAndNavigate(ctx, domain.To("b")), domain.ErrOverlayOpen)
		assert.Equal(t, domain.ScreenID("a"), svc.Current().ID)
	})

	t.Run("Back Closes The Overlay", func(t *testing.T) {
		svc, _ := newFixture(t)
		vms := goTo(t, svc, "a", "b")

		probe := &overlayProbe{}
		require.NoError(t, svc.NavigateOverlay(ctx, domain.To("overlay"), probe.onResolved, probe.onClose))

		require.True(t, svc.NavigateBack(ctx))
		assert.Equal(t, 1, probe.closed)
		assert.Same(t, vms[1], current(t, svc))
		assert.Equal(t, []domain.ScreenID{"a"}, screenIDs(svc.History()))
		assert.Zero(t, vms[1].Disposals)
	})

	t.Run("Resolution Failure Leaves No Frame", func(t *testing.T) {
		svc, _ := newFixture(t)
		goTo(t, svc, "a")

		probe := &overlayProbe{}
		err := svc.NavigateOverlay(ctx, domain.To("missing"), probe.onResolved, probe.onClose)
		assert.True(t, domain.IsConfigurationError(err))
		assert.Empty(t, probe.resolved)
		assert.Zero(t, svc.OverlayDepth())
		assert.Zero(t, svc.HistoryLen())
	})

	t.Run("Overlay Push Respects The Bound", func(t *testing.T) {
		svc, _ := newFixture(t, runtime.WithMaxHistory(1))
		vms := goTo(t, svc, "a", "b")

		require.NoError(t, svc.NavigateOverlay(ctx, domain.To("overlay"), nil, nil))
		assert.Equal(t, 1, svc.HistoryLen())
		assert.Equal(t, 1, vms[0].Disposals)
		assert.Zero(t, vms[1].Disposals)
	})

	t.Run("Nested Overlays Are Never Evicted", func(t *testing.T) {
		svc, _ := newFixture(t, runtime.WithNestedOverlays(true), runtime.WithMaxHistory(1))
		goTo(t, svc, "a")

		outer, inner := &overlayProbe{}, &overlayProbe{}
		require.NoError(t, svc.NavigateOverlay(ctx, domain.To("overlay"), outer.onResolved, outer.onClose))
		require.NoError(t, svc.NavigateOverlay(ctx, domain.To("b"), inner.onResolved, inner.onClose))
		outerVM := outer.resolved[0].ViewModel.(*testutils.ViewModel)

		assert.Equal(t, 2, svc.OverlayDepth())
		assert.Equal(t, []domain.ScreenID{"overlay", "b"}, screenIDs(svc.History()))
		assert.Zero(t, outerVM.Disposals, "an open overlay stays alive")

		require.True(t, svc.CloseOverlay(ctx))
		require.True(t, svc.CloseOverlay(ctx))
		assert.Equal(t, 1, inner.closed)
		assert.Equal(t, 1, outer.closed)
		assert.Equal(t, 1, outerVM.Disposals)
		assert.Zero(t, svc.HistoryLen())
		assert.Equal(t, domain.StatusActive, svc.Status())

		require.NoError(t, svc.Navigate(ctx, domain.To("c")))
		require.NoError(t, svc.ResetAndNavigate(ctx, domain.To("d")))
		assert.Equal(t, domain.ScreenID("d"), svc.Current().ID)
	})

	t.Run("Reset Closes Nested Overlays Over A Bounded History", func(t *testing.T) {
		svc, _ := newFixture(t, runtime.WithNestedOverlays(true), runtime.WithMaxHistory(1))
		goTo(t, svc, "a", "b")

		outer, inner := &overlayProbe{}, &overlayProbe{}
		require.NoError(t, svc.NavigateOverlay(ctx, domain.To("overlay"), outer.onResolved, outer.onClose))
		require.NoError(t, svc.NavigateOverlay(ctx, domain.To("c"), inner.onResolved, inner.onClose))

		require.NoError(t, svc.ResetAndNavigate(ctx, domain.To("d")))
		assert.Equal(t, 1, inner.closed)
		assert.Equal(t, 1, outer.closed)
		assert.Zero(t, svc.OverlayDepth())
		assert.Zero(t, svc.HistoryLen())
		assert.Equal(t, domain.ScreenID("d"), svc.Current().ID)
	})

	t.Run("Reset Onto A Singleton Overlay Keeps It Alive", func(t *testing.T) {
		svc, _ := newFixture(t)
		a := goTo(t, svc, "a")[0]

		probe := &overlayProbe{}
		require.NoError(t, svc.NavigateOverlay(ctx, domain.To("shared"), probe.onResolved, probe.onClose))
		shared := probe.resolved[0].ViewModel.(*testutils.ViewModel)

		require.NoError(t, svc.ResetAndNavigate(ctx, domain.To("shared")))
		assert.Same(t, shared, current(t, svc))
		assert.False(t, shared.Disposed())
		assert.Zero(t, shared.Disposals)
		assert.Equal(t, 1, probe.closed)
		assert.Equal(t, 1, a.Disposals)
		assert.Zero(t, svc.OverlayDepth())
	})
}

func TestService_EmptyHistorySafety(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	svc, _ := newFixture(t, runtime.WithLogger(logging.NewWithWriter(&buf, slog.LevelDebug)))

	t.Run("Idle", func(t *testing.T) {
		assert.False(t, svc.NavigateBack(ctx))
		assert.False(t, svc.CloseOverlay(ctx))
		assert.Nil(t, svc.Current())
		assert.Equal(t, domain.StatusIdle, svc.Status())
	})

	t.Run("Active", func(t *testing.T) {
		vm := goTo(t, svc, "a")[0]

		assert.False(t, svc.NavigateBack(ctx))
		assert.False(t, svc.CloseOverlay(ctx))
		assert.Same(t, vm, current(t, svc))
		assert.Zero(t, vm.Disposals)
		assert.Zero(t, vm.Refreshes)
	})

	t.Run("Close Without Overlay", func(t *testing.T) {
		vms := goTo(t, svc, "b")

		assert.False(t, svc.CloseOverlay(ctx))
		assert.Same(t, vms[0], current(t, svc))
		assert.Equal(t, 1, svc.HistoryLen())
	})

	out := buf.String()
	assert.Contains(t, out, "navigate back with empty history")
	assert.Contains(t, out, "close overlay with empty history")
	assert.Contains(t, out, "close overlay without an open overlay")
}
