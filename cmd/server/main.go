package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/janisto/huma-hello/internal/config"
	"github.com/janisto/huma-hello/internal/http/health"
	applog "github.com/janisto/huma-hello/internal/platform/logging"
	"github.com/janisto/huma-hello/internal/platform/metrics"
)

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(context.Background(), "invalid configuration", err)
	}
	applog.SetDebug(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		applog.LogError(context.Background(), "server failed", err)
		_ = applog.Sync()
		os.Exit(1)
	}
	applog.LogInfo(context.Background(), "server exited")
}

// run binds the public listener (and the admin listener with metrics and
// health when configured) and serves until ctx is cancelled.
func run(ctx context.Context, cfg config.Config) error {
	var (
		httpMetrics *metrics.HTTP
		adminSrv    *http.Server
		adminLn     net.Listener
	)
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m, err := metrics.NewHTTP(reg)
		if err != nil {
			return err
		}
		httpMetrics = m

		adminSrv = newServer(cfg.MetricsAddr, adminHandler(reg, time.Now()))
		if adminLn, err = net.Listen("tcp", cfg.MetricsAddr); err != nil {
			return fmt.Errorf("listen metrics %s: %w", cfg.MetricsAddr, err)
		}
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		if adminLn != nil {
			_ = adminLn.Close()
		}
		return fmt.Errorf("listen %s: %w", cfg.Addr(), err)
	}
	srv := newServer(cfg.Addr(), newRouter(cfg, httpMetrics))

	errs := make(chan error, 2)
	go func() { errs <- serve(ctx, srv, ln, cfg.ShutdownTimeout) }()
	if adminSrv != nil {
		go func() { errs <- serve(ctx, adminSrv, adminLn, cfg.ShutdownTimeout) }()
	}

	first := <-errs
	if adminSrv != nil {
		// One listener failing must take the other down too.
		if first != nil {
			_ = srv.Close()
			_ = adminSrv.Close()
		}
		if second := <-errs; first == nil {
			first = second
		}
	}
	return first
}

// adminHandler serves operational endpoints that stay off the public port.
func adminHandler(g prometheus.Gatherer, started time.Time) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metrics.Handler(g))
	mux.Handle("GET /healthz", health.Handler(Version, started))
	return mux
}

func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}

// serve runs srv on ln until ctx is done, then shuts it down gracefully within
// timeout. It returns nil after a clean shutdown.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case err, ok := <-listenErr:
		if ok {
			return fmt.Errorf("serve %s: %w", ln.Addr(), err)
		}
		return nil
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received", zap.String("addr", ln.Addr().String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown %s: %w", ln.Addr(), err)
	}
	return nil
}
