// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/artpar/thermogate/adapters/clock"
	"github.com/artpar/thermogate/adapters/hasher"
	apihttp "github.com/artpar/thermogate/adapters/http"
	"github.com/artpar/thermogate/adapters/idgen"
	"github.com/artpar/thermogate/adapters/memory"
	"github.com/artpar/thermogate/adapters/metrics"
	"github.com/artpar/thermogate/adapters/postgres"
	"github.com/artpar/thermogate/adapters/random"
	"github.com/artpar/thermogate/adapters/sqlite"
	"github.com/artpar/thermogate/app"
	"github.com/artpar/thermogate/config"
	"github.com/artpar/thermogate/domain/key"
	"github.com/artpar/thermogate/ports"
)

// Version is reported by /version. Set by the binary at startup.
var Version = "dev"

// App represents the running application.
type App struct {
	Logger     zerolog.Logger
	Config     *config.Config // as loaded at startup
	HTTPServer *http.Server
	Metrics    *metrics.Collector
	Registry   *prometheus.Registry

	// Services and stores
	Keys        *app.KeyService
	Counters    ports.UsageCounters
	Subscribers ports.SubscriberStore

	recorder *UsageRecorder
	holder   *config.Holder
	logOut   *logOutput
}

// New creates and initializes the application.
func New(cfg *config.Config) (*App, error) {
	logger, out := setupLogger(cfg.Logging)
	return newApp(cfg, logger, out)
}

// NewWithHotReload creates the application and reloads the config file on
// change or SIGHUP. Only the fields listed by config.ReloadableFields take
// effect without a restart.
func NewWithHotReload(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, out := setupLogger(cfg.Logging)

	holder, err := config.NewHolder(configPath, logger)
	if err != nil {
		return nil, err
	}

	a, err := newApp(holder.Get(), logger, out)
	if err != nil {
		return nil, err
	}
	a.attachHolder(holder)

	if err := holder.WatchFile(); err != nil {
		logger.Warn().Err(err).Msg("config file watch disabled")
	}
	holder.WatchSignals()

	return a, nil
}

func newApp(cfg *config.Config, logger zerolog.Logger, out *logOutput) (*App, error) {
	logger.Info().Str("version", Version).Msg("initializing thermogate")

	a := &App{
		Logger: logger,
		Config: cfg,
		logOut: out,
	}

	subs, err := openSubscriberStore(context.Background(), cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	a.Subscribers = subs

	secretHasher, err := hasher.NewRandomBlake2b(random.Real{})
	if err != nil {
		subs.Close()
		return nil, fmt.Errorf("init hasher: %w", err)
	}

	format := key.Format{Prefix: cfg.Auth.KeyPrefix, Length: cfg.Auth.TokenLength}
	keyStore := memory.NewKeyStore(secretHasher, random.Real{}, format)

	counters := memory.NewUsageCounters()
	a.Counters = counters
	a.recorder = NewUsageRecorder(counters, cfg.Usage.QueueSize)

	var observer app.KeyObserver
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		a.Registry = prometheus.NewRegistry()
		a.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		a.Metrics = metrics.NewWithRegistry(a.Registry)
		a.Metrics.ObserveKeyStore(keyStore)
		a.Metrics.ObserveUsage(counters)
		observer = a.Metrics
		metricsHandler = promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})
		logger.Info().Str("path", cfg.Metrics.Path).Msg("prometheus metrics enabled")
	}

	a.Keys = app.NewKeyService(keyStore, format, keyPolicy(cfg.Auth), observer, logger)

	router := apihttp.NewRouter(apihttp.RouterConfig{
		Keys:           a.Keys,
		Conversions:    app.NewConversionService(a.recorder),
		Subscribers:    app.NewSubscriberService(subs, idgen.UUID{}, clock.Real{}, logger),
		Usage:          counters,
		Health:         subs,
		Metrics:        a.Metrics,
		MetricsHandler: metricsHandler,
		MetricsPath:    cfg.Metrics.Path,
		EnableOpenAPI:  cfg.OpenAPI.Enabled,
		Version:        Version,
		Timeout:        cfg.Server.WriteTimeout,
	}, logger)

	a.HTTPServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info().Str("addr", a.HTTPServer.Addr).Msg("http server configured")
	return a, nil
}

func keyPolicy(cfg config.AuthConfig) app.KeyPolicy {
	return app.KeyPolicy{
		MaskRevokeNotFound: cfg.MaskRevokeNotFound,
		AllowForeignRevoke: cfg.AllowForeignRevoke,
	}
}

func openSubscriberStore(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (ports.SubscriberStore, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.DSN)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info().Str("dsn", cfg.DSN).Msg("sqlite subscriber store ready")
		return sqlite.NewSubscriberStore(db), nil

	case config.DriverPostgres:
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		pool, err := postgres.Connect(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		store := postgres.NewSubscriberStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		logger.Info().Msg("postgres subscriber store ready")
		return store, nil

	default:
		logger.Info().Msg("in-memory subscriber store, subscribers are lost on restart")
		return memory.NewSubscriberStore(), nil
	}
}

// attachHolder applies reloaded configuration to the running services.
func (a *App) attachHolder(h *config.Holder) {
	a.holder = h

	h.OnChange(func(cfg *config.Config) {
		a.logOut.apply(cfg.Logging)
		a.Keys.SetPolicy(keyPolicy(cfg.Auth))
		if a.Metrics != nil {
			a.Metrics.ConfigReloads.Inc()
		}
	})
	h.OnError(func(error) {
		if a.Metrics != nil {
			a.Metrics.ConfigReloadErrors.Inc()
		}
	})
}

// CurrentConfig returns the configuration in effect, including reloads.
func (a *App) CurrentConfig() *config.Config {
	if a.holder != nil {
		return a.holder.Get()
	}
	return a.Config
}

// Reload re-reads the config file. It fails when hot reload is not enabled.
func (a *App) Reload() error {
	if a.holder == nil {
		return fmt.Errorf("reload: hot reload not enabled")
	}
	return a.holder.Reload()
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.HTTPServer.Handler
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		a.Shutdown()
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application: HTTP first, then the usage
// recorder, then the database.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.holder != nil {
		a.holder.Stop()
	}

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("usage recorder close error")
		}
	}

	if a.Subscribers != nil {
		if err := a.Subscribers.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("database close error")
		}
	}

	a.Logger.Info().
		Uint64("conversions", a.Counters.Snapshot().Total()).
		Msg("shutdown complete")
	return nil
}
