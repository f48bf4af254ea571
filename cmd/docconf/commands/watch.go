package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/docconf/internal/config"
	"git.home.luguber.info/inful/docconf/internal/engine"
	dcerrors "git.home.luguber.info/inful/docconf/internal/errors"
	"git.home.luguber.info/inful/docconf/internal/logfields"
	"git.home.luguber.info/inful/docconf/internal/metrics"
	"git.home.luguber.info/inful/docconf/internal/retry"
	"git.home.luguber.info/inful/docconf/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	BuildFlags
	Debounce    time.Duration `help:"Quiet period before a rebuild" default:"500ms"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9102)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root.Config)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	var rec metrics.Recorder = metrics.NoopRecorder{}
	if w.MetricsAddr != "" {
		reg := prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
		srv := &http.Server{Addr: w.MetricsAddr, Handler: metricsMux(reg), ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			slog.Info("Serving metrics", slog.String("addr", w.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	session := &watchSession{
		configPath: root.Config,
		sourceDir:  root.Source,
		flags:      &w.BuildFlags,
		builder:    w.NewBuilder(rec),
		recorder:   rec,
		reload:     retry.NewPolicy(retry.BackoffFixed, w.Debounce/5, w.Debounce, 2),
		cfg:        cfg,
	}

	watcher, err := watch.New(watch.Options{
		ConfigPath: session.watchedConfig(),
		Roots:      []string{root.Source},
		Ignore:     []string{w.Output},
		Debounce:   w.Debounce,
	}, session.rebuild)
	if err != nil {
		cancel()
		_ = g.Wait()
		return err
	}

	g.Go(func() error {
		// An initial failure is reported but does not stop watching.
		if err := session.rebuild(gctx, watch.Event{}); err != nil {
			slog.Warn("Initial build failed", logfields.Error(err))
		}
		return watcher.Run(gctx)
	})
	return g.Wait()
}

func metricsMux(reg *prom.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	return mux
}

// watchSession holds the configuration that rebuilds use.
type watchSession struct {
	configPath string
	sourceDir  string
	flags      *BuildFlags
	builder    *engine.Builder
	recorder   metrics.Recorder
	reload     retry.Policy

	mu  sync.Mutex
	cfg *config.BuildConfig
}

// watchedConfig returns the configuration file to watch, or "" when the
// built-in configuration is in use.
func (s *watchSession) watchedConfig() string {
	if s.configPath == DefaultConfigPath {
		if _, err := os.Stat(s.configPath); err != nil {
			return ""
		}
	}
	return s.configPath
}

// reloadRetryable reports whether a reload may succeed on a later attempt.
// Validation failures are final; unreadable or unparsable files may still
// be mid-write.
func reloadRetryable(err error) bool {
	return dcerrors.IsRetryable(err) || dcerrors.IsCategory(err, dcerrors.CategoryConfig)
}

func (s *watchSession) rebuild(ctx context.Context, ev watch.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.ConfigChanged {
		// Editors may leave a partially written file behind the first event.
		var cfg *config.BuildConfig
		err := s.reload.Do(ctx, reloadRetryable, func() error {
			var loadErr error
			cfg, loadErr = LoadConfig(s.configPath)
			return loadErr
		})
		s.recorder.IncConfigReload(err == nil)
		if err != nil {
			// Keep building with the last good configuration.
			slog.Error("Configuration reload failed",
				slog.String("category", string(dcerrors.GetCategory(err))),
				logfields.Error(err))
		} else {
			if cfg.Snapshot() != s.cfg.Snapshot() {
				slog.Info("Configuration changed", logfields.Snapshot(cfg.Snapshot()))
			}
			s.cfg = cfg
		}
	}

	if len(ev.Paths) > 0 {
		slog.Info("Rebuilding", slog.Int("changed", len(ev.Paths)))
	}
	_, err := s.builder.Build(ctx, s.flags.Request(s.cfg, s.sourceDir))
	return err
}
