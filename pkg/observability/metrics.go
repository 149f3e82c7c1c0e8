package observability

import (
	"context"

	"github.com/aretw0/navkit/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "navkit"

// Metrics records navigation events as Prometheus series.
type Metrics struct {
	navigations  *prometheus.CounterVec
	evictions    *prometheus.CounterVec
	disposals    *prometheus.CounterVec
	overlays     *prometheus.CounterVec
	historyDepth prometheus.Gauge
	overlayDepth prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		navigations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "navigations_total",
				Help:      "Total number of completed navigations",
			},
			[]string{"mode", "screen"},
		),
		evictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "history_evictions_total",
				Help:      "History entries dropped because the history was full",
			},
			[]string{"screen"},
		),
		disposals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "viewmodel_disposals_total",
				Help:      "View-models disposed by the navigator",
			},
			[]string{"screen"},
		),
		overlays: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "overlays_total",
				Help:      "Overlay open and close transitions",
			},
			[]string{"action"},
		),
		historyDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_length",
			Help:      "Current number of history entries",
		}),
		overlayDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overlay_depth",
			Help:      "Current number of open overlays",
		}),
	}

	for _, c := range []prometheus.Collector{m.navigations, m.evictions, m.disposals, m.overlays, m.historyDepth, m.overlayDepth} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNavigate: func(_ context.Context, e *domain.NavigationEvent) {
			m.navigations.WithLabelValues(string(e.Mode), string(e.To)).Inc()
			m.historyDepth.Set(float64(e.HistoryLen))
		},
		OnEvict: func(_ context.Context, e *domain.NavigationEvent) {
			m.evictions.WithLabelValues(string(e.Screen)).Inc()
		},
		OnDispose: func(_ context.Context, e *domain.NavigationEvent) {
			m.disposals.WithLabelValues(string(e.Screen)).Inc()
		},
		OnOverlayOpen: func(_ context.Context, e *domain.NavigationEvent) {
			m.overlays.WithLabelValues("open").Inc()
			m.overlayDepth.Inc()
			m.historyDepth.Set(float64(e.HistoryLen))
		},
		OnOverlayClose: func(_ context.Context, e *domain.NavigationEvent) {
			m.overlays.WithLabelValues("close").Inc()
			m.overlayDepth.Dec()
			m.historyDepth.Set(float64(e.HistoryLen))
		},
	}
}
