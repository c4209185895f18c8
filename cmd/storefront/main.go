package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/scent-storefront/api/routes"
	"github.com/angelmondragon/scent-storefront/internal/gateway"
	product "github.com/angelmondragon/scent-storefront/internal/products"
	"github.com/angelmondragon/scent-storefront/internal/workspace"
	"github.com/angelmondragon/scent-storefront/pkg/config"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/metrics"
	"github.com/angelmondragon/scent-storefront/pkg/redis"
	"github.com/angelmondragon/scent-storefront/pkg/tracing"
)

const shutdownTimeout = 15 * time.Second

var exit = os.Exit

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: cfg.Telemetry.ServiceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(cfg.Telemetry, os.Stdout)
	if err != nil {
		logg.Error(ctx, "failed to set up tracing", err)
		os.Exit(1)
	}
	var closers shutdownStack
	closers.push(shutdownTracing)
	defer closers.run(logg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	gatewayMetrics := metrics.NewGatewayMetrics(registry)
	jobMetrics := metrics.NewJobMetrics(registry)

	deps := routes.Deps{
		Metrics: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	settings := workspace.Settings{
		CacheTTL:        cfg.Redis.IdentityTTL,
		LoginPath:       cfg.Session.LoginPath,
		SearchDelay:     cfg.Search.Debounce,
		SearchPageSize:  cfg.Search.PageSize,
		SuggestionLimit: cfg.Search.SuggestionLimit,
	}

	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			closers.abort(ctx, logg, "failed to bootstrap redis", err)
		}
		closers.push(func(context.Context) error { return redisClient.Close() })
		settings.Cache = redisClient
		deps.Cache = redisClient
		deps.Limiter = redisClient
	} else {
		logg.Warn(ctx, "redis disabled; identity cache and checkout rate limit are off")
	}

	opts := []gateway.Option{
		gateway.WithTimeout(cfg.Backend.Timeout),
		gateway.WithMetrics(gatewayMetrics),
	}
	if cfg.Backend.APIKey != "" {
		opts = append(opts, gateway.WithAPIKey(cfg.Backend.APIKeyHeader, cfg.Backend.APIKey))
	}
	client, err := gateway.NewClient(cfg.Backend.BaseURL, opts...)
	if err != nil {
		closers.abort(ctx, logg, "failed to create backend client", err)
	}

	products, err := product.NewService(client, logg)
	if err != nil {
		closers.abort(ctx, logg, "failed to create product service", err)
	}
	deps.Products = products

	workspaces, err := workspace.NewRegistry(workspace.RegistryParams{
		Backend:  client,
		Settings: settings,
		IdleTTL:  cfg.Session.IdleTTL,
		MaxLive:  cfg.Session.MaxWorkspaces,
		Logger:   logg,
		Metrics:  jobMetrics,
	})
	if err != nil {
		closers.abort(ctx, logg, "failed to create workspace registry", err)
	}
	closers.push(func(context.Context) error {
		workspaces.Close()
		return nil
	})
	deps.Workspaces = workspaces

	sweeper, err := workspace.NewSweeper(workspace.SweeperParams{
		Registry: workspaces,
		Interval: cfg.Session.SweepInterval,
		Logger:   logg,
		Metrics:  jobMetrics,
	})
	if err != nil {
		closers.abort(ctx, logg, "failed to create workspace sweeper", err)
	}

	var handler http.Handler = routes.NewRouter(cfg, logg, deps)
	if cfg.Telemetry.TracingEnabled {
		handler = otelhttp.NewHandler(handler, "storefront")
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Backend.BaseURL,
	})
	logg.Info(runCtx, "starting storefront server")

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		if err := sweeper.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logg.Info(runCtx, "shutting down storefront server")
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		closers.abort(runCtx, logg, "storefront server stopped unexpectedly", err)
	}
}

// shutdownStack releases resources in reverse creation order.
type shutdownStack struct {
	fns  []func(context.Context) error
	done bool
}

func (s *shutdownStack) push(fn func(context.Context) error) {
	s.fns = append(s.fns, fn)
}

// abort releases what was acquired so far before exiting non-zero.
func (s *shutdownStack) abort(ctx context.Context, logg *logger.Logger, msg string, err error) {
	logg.Error(ctx, msg, err)
	s.run(logg)
	exit(1)
}

func (s *shutdownStack) run(logg *logger.Logger) {
	if s.done {
		return
	}
	s.done = true
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	var errs []error
	for i := len(s.fns) - 1; i >= 0; i-- {
		errs = append(errs, s.fns[i](ctx))
	}
	if err := multierr.Combine(errs...); err != nil {
		logg.Error(ctx, "error releasing resources", err)
	}
}
