package di

import (
	"context"
	"fmt"
	"time"

	"AstroInsight/internal/domain/repository"
	domsvc "AstroInsight/internal/domain/service"
	"AstroInsight/internal/handler/api"
	"AstroInsight/internal/handler/ws"
	"AstroInsight/internal/service/ratelimit"
	"AstroInsight/internal/services/ephemeris"
	"AstroInsight/internal/usecase"
	"AstroInsight/pkg/cache"
	"AstroInsight/pkg/config"
	xhttp "AstroInsight/pkg/http"
	"AstroInsight/pkg/http/middleware"
	applogger "AstroInsight/pkg/logger"
	"AstroInsight/pkg/metrics"
	"AstroInsight/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: "astroinsight",
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideRegistry creates the Prometheus registry scraped on /metrics.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(cfg *config.Config, reg *prometheus.Registry) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Nop{}
	}
	return metrics.NewWithRegistry(reg)
}

// ProvideCache creates the ephemeris cache: memory only, or memory in front
// of Redis when Redis is enabled and reachable.
func ProvideCache(cfg *config.Config, l *applogger.Logger) cache.Service {
	memory := func() cache.Service {
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize),
			cache.WithMemoryCleanup(cfg.Cache.MemoryCleanup),
			cache.WithMemoryDefaultTTL(cfg.Ephemeris.CacheTTL),
		)
	}
	rcfg := cfg.Cache.Redis
	if !rcfg.Enabled {
		return memory()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rc, err := cache.NewRedisCache(ctx,
		cache.WithRedisAddr(rcfg.Addr),
		cache.WithRedisPassword(rcfg.Password),
		cache.WithRedisDB(rcfg.DB),
		cache.WithRedisPool(rcfg.PoolSize, 0, 0),
		cache.WithRedisPrefix(rcfg.Prefix),
	)
	if err != nil {
		l.Warn("redis unavailable, using memory cache only", applogger.Error(err))
		return memory()
	}
	l.Info("redis cache connected", applogger.String("addr", rcfg.Addr), applogger.String("prefix", rcfg.Prefix))
	return cache.NewLayeredCache(rc,
		cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize),
		cache.WithLayeredL1TTL(cfg.Ephemeris.CacheTTL),
	)
}

// ProvideFixture loads the fixture used by the file and auto backends; the
// http backend gets nil.
func ProvideFixture(cfg *config.Config) (*ephemeris.FileProvider, error) {
	if cfg.Ephemeris.Backend == config.BackendHTTP {
		return nil, nil
	}
	fp, err := ephemeris.LoadFile(cfg.Ephemeris.Fixture)
	if err != nil {
		return nil, fmt.Errorf("ephemeris fixture: %w", err)
	}
	return fp, nil
}

// ProvideEphemeris creates the configured sky backend, cached when a TTL is set.
func ProvideEphemeris(cfg *config.Config, fixture *ephemeris.FileProvider, c cache.Service, m repository.Metrics, l *applogger.Logger) (domsvc.Ephemeris, error) {
	var eph domsvc.Ephemeris
	switch cfg.Ephemeris.Backend {
	case config.BackendFile:
		if fixture == nil {
			return nil, fmt.Errorf("ephemeris fixture not loaded")
		}
		eph = fixture
	case config.BackendHTTP:
		eph = ephemeris.NewHTTPProvider(cfg.Ephemeris.URL, cfg.Ephemeris.Timeout,
			ephemeris.WithRetries(cfg.Ephemeris.Retries),
		)
	case config.BackendAuto:
		if fixture == nil {
			return nil, fmt.Errorf("ephemeris fixture not loaded")
		}
		remote := ephemeris.NewHTTPProvider(cfg.Ephemeris.URL, cfg.Ephemeris.Timeout,
			ephemeris.WithRetries(cfg.Ephemeris.Retries),
		)
		eph = ephemeris.NewFallbackProvider(remote, fixture, l)
	default:
		return nil, fmt.Errorf("unknown ephemeris backend %q", cfg.Ephemeris.Backend)
	}
	l.Info("ephemeris backend ready",
		applogger.String("backend", cfg.Ephemeris.Backend),
		applogger.Duration("cache_ttl_ms", cfg.Ephemeris.CacheTTL),
	)

	if cfg.Ephemeris.CacheTTL <= 0 {
		return eph, nil
	}
	return ephemeris.NewCachedProvider(eph, c, cfg.Ephemeris.CacheTTL, m, l), nil
}

// ProvideWorkers lists the background tasks run next to the HTTP server.
func ProvideWorkers(cfg *config.Config, fixture *ephemeris.FileProvider, l *applogger.Logger) []server.Worker {
	var ws []server.Worker
	if cfg.Ephemeris.Watch && fixture != nil {
		ws = append(ws, server.Worker{
			Name: "fixture-watch",
			Run:  func(ctx context.Context) error { return fixture.Watch(ctx, l) },
		})
	}
	return ws
}

// ProvideChartOptions maps the chart section onto use case options.
func ProvideChartOptions(cfg *config.Config) usecase.ChartOptions {
	ch := cfg.Chart
	return usecase.ChartOptions{
		Limits: usecase.Limits{
			Natal:      ch.Limits.Natal,
			Transits:   ch.Limits.Transits,
			Synastry:   ch.Limits.Synastry,
			Strengths:  ch.Limits.Strengths,
			Challenges: ch.Limits.Challenges,
		},
		OrbMajor:         ch.OrbMajor,
		OrbMinor:         ch.OrbMinor,
		Permutations:     ch.Patterns.Permutations,
		SingleLegCross:   ch.Patterns.SingleLegCross,
		DefaultLatitude:  ch.DefaultLatitude,
		DefaultLongitude: ch.DefaultLongitude,
	}
}

// ProvideChartService creates the chart use cases.
func ProvideChartService(eph domsvc.Ephemeris, opts usecase.ChartOptions, m repository.Metrics, l *applogger.Logger) *usecase.ChartService {
	return usecase.NewChartService(eph, opts, m, l)
}

// ProvideLimiter creates the per-client limiter, or nil when disabled.
func ProvideLimiter(cfg *config.Config) middleware.Allower {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.Rate, cfg.RateLimit.Burst)
}

// ProvideHandlers collects every route group.
func ProvideHandlers(cfg *config.Config, charts *usecase.ChartService, l *applogger.Logger) []xhttp.Handler {
	return []xhttp.Handler{
		api.NewChartEchoHandler(l, charts, server.Version),
		ws.NewSkyStream(charts, cfg.Stream.Interval, l),
	}
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, handlers []xhttp.Handler, reg *prometheus.Registry, limiter middleware.Allower) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(l, handlers,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithMetrics(metricsPath, reg),
		xhttp.WithRateLimit(limiter),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, srv *xhttp.Server, c cache.Service, workers []server.Worker, l *applogger.Logger) *server.App {
	return server.New(cfg, srv, c, workers, l)
}

// Toolkit is the chart stack without the HTTP surface, used by the CLI.
type Toolkit struct {
	Charts *usecase.ChartService
	Logger *applogger.Logger
	cache  cache.Service
}

// Close releases the cache connections.
func (t *Toolkit) Close() error {
	if t.cache == nil {
		return nil
	}
	return t.cache.Close()
}

// ProvideToolkit bundles the chart service with the resources it holds.
func ProvideToolkit(charts *usecase.ChartService, c cache.Service, l *applogger.Logger) *Toolkit {
	return &Toolkit{Charts: charts, Logger: l, cache: c}
}
