package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/navkit"
	"github.com/aretw0/navkit/internal/demo"
	navhttp "github.com/aretw0/navkit/pkg/adapters/http"
	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/observability"
	"github.com/aretw0/navkit/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP control API",
	Long: `Starts the user manager behind a JSON API over HTTP. Navigation events are
streamed on /events and Prometheus metrics are exposed on /metrics. Every
client may also drive a private navigator under /sessions/{id}/.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")

		handler, err := newServeHandler(cmd)
		if err != nil {
			fmt.Printf("Error initializing navkit: %v\n", err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting navkit server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("navkit server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Duration("session-idle", 30*time.Minute, "Drop client sessions unused for this long (0 keeps them)")
}

func newServeHandler(cmd *cobra.Command) (http.Handler, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)
	idle, _ := cmd.Flags().GetDuration("session-idle")

	repo, err := openUsers(cmd)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	// newServer wraps a fresh navigator. The server publishes the events of
	// the navigator it wraps, so it is bound late.
	newServer := func(logger *slog.Logger, extra domain.LifecycleHooks, opts ...navhttp.Option) (*navhttp.Server, error) {
		var srv *navhttp.Server
		publish := func(ctx context.Context, e *domain.NavigationEvent) { srv.Publish(ctx, e) }
		hooks := observability.Combine(
			extra,
			observability.LoggingHooks(logger),
			domain.LifecycleHooks{
				OnNavigate:     publish,
				OnEvict:        publish,
				OnDispose:      publish,
				OnOverlayOpen:  publish,
				OnOverlayClose: publish,
			},
		)
		nav, err := demo.Build(cfg, repo, logger, navkit.WithLifecycleHooks(hooks))
		if err != nil {
			return nil, err
		}
		opts = append([]navhttp.Option{
			navhttp.WithParamDecoder(demo.DecodeParams),
			navhttp.WithLogger(logger),
		}, opts...)
		srv = navhttp.NewServer(nav, opts...)
		return srv, nil
	}

	// Sessions share the user file but not the gauges of the root navigator.
	sessions := session.NewManager(func(_ context.Context, id string) (*navhttp.Server, error) {
		return newServer(logger.With("session_id", id), domain.LifecycleHooks{})
	}, session.WithLogger(logger))
	sessions.OnClose(func(id string, srv *navhttp.Server) {
		logger.Info("session closed", "session_id", id, "subscribers", srv.Streams.Len())
		srv.Close()
	})
	if idle > 0 {
		go sweep(cmd.Context(), sessions, idle)
	}

	srv, err := newServer(logger, metrics.Hooks(),
		navhttp.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		navhttp.WithSessions(sessions),
	)
	if err != nil {
		return nil, err
	}
	logger.Info("navigator ready", "routes", len(cfg.Routes), "users", repo.Path(), "session_idle", idle)
	return srv.Handler(), nil
}

func sweep(ctx context.Context, sessions *session.Manager[*navhttp.Server], idle time.Duration) {
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.Sweep(idle)
		}
	}
}
