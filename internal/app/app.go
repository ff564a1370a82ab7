package app

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/riskibarqy/espn-fantasy-mcp/external/espn"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/config"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/league"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/player"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/infrastructure/provider/cache"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/infrastructure/provider/memory"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/interfaces/httpapi"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/interfaces/mcpapi"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/observability"
	basecache "github.com/riskibarqy/espn-fantasy-mcp/internal/platform/cache"
	idgen "github.com/riskibarqy/espn-fantasy-mcp/internal/platform/id"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/logging"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/metrics"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/resilience"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/usecase"
)

// Options select how the provider is built.
type Options struct {
	// Demo serves the seeded in-memory league instead of calling ESPN.
	Demo bool
	// Provider overrides the provider entirely. Used by tests.
	Provider usecase.LeagueProvider
}

// App is the wired service: one provider, the services over it and the
// MCP server exposing them.
type App struct {
	cfg     config.Config
	logger  *logging.Logger
	metrics *metrics.Registry
	server  *mcpapi.Server
}

func New(cfg config.Config, logger *logging.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.SettingsCacheTTL <= 0 {
		return nil, fmt.Errorf("settings cache ttl must be > 0")
	}

	var registry *metrics.Registry
	if cfg.MetricsEnabled {
		registry = metrics.New("espn_mcp")
	}

	defaults := mcpapi.Defaults{
		SeasonYear: cfg.SeasonYear,
		TeamID:     cfg.TeamID,
	}
	if cfg.LeagueID > 0 {
		defaults.LeagueID = strconv.FormatInt(cfg.LeagueID, 10)
	}

	provider := opts.Provider
	switch {
	case provider != nil:
	case opts.Demo:
		provider = memory.New(memory.DemoSeed())
		defaults.LeagueID = memory.DemoLeagueID
		defaults.SeasonYear = memory.DemoSeasonYear
		if defaults.TeamID == nil {
			first := 0
			defaults.TeamID = &first
		}
		logger.Info("serving demo league", "league_id", memory.DemoLeagueID)
	default:
		if !cfg.HasCredentials() {
			logger.Warn("ESPN_S2 and ESPN_SWID not set, only public leagues can be read and lineup commits will fail")
		}
		provider = espn.NewClient(espn.ClientConfig{
			ReadsBaseURL:  cfg.ReadsBaseURL,
			WritesBaseURL: cfg.WritesBaseURL,
			S2:            cfg.ESPNS2,
			SWID:          cfg.ESPNSWID,
			Timeout:       cfg.ESPNTimeout,
			MaxRetries:    cfg.ESPNMaxRetries,
			RateLimit:     cfg.ESPNRateLimit,
			RateBurst:     cfg.ESPNRateBurst,
			Logger:        logger.With("component", "espn"),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ESPNCircuitEnabled,
				FailureThreshold: cfg.ESPNCircuitFailureCount,
				OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
			},
			Metrics: registry,
		})
	}
	provider = cache.NewLeagueProvider(provider, basecache.NewStore[league.Settings](cfg.SettingsCacheTTL))

	handler := mcpapi.NewHandler(mcpapi.HandlerConfig{
		LeagueService: usecase.NewLeagueService(provider),
		PlayerService: usecase.NewPlayerService(provider, player.ResolveOptions{
			Limit:    cfg.ResolverLimit,
			MinScore: cfg.ResolverMinScore,
		}),
		LineupService: usecase.NewLineupService(provider, idgen.NewUUIDGenerator(), logger.With("component", "lineup")),
		Defaults:      defaults,
		Logger:        logger.With("component", "mcp"),
		Metrics:       registry,
	})

	return &App{
		cfg:     cfg,
		logger:  logger,
		metrics: registry,
		server:  mcpapi.NewServer(mcpapi.Info{Name: cfg.ServiceName, Version: cfg.ServiceVersion}, handler),
	}, nil
}

func (a *App) MCP() *mcpapi.Server {
	return a.server
}

func (a *App) Router() http.Handler {
	return httpapi.NewRouter(httpapi.RouterConfig{
		MCP:                a.server,
		MCPPath:            a.cfg.MCPPath,
		Metrics:            a.metrics,
		APIKey:             a.cfg.MCPAPIKey,
		CORSAllowedOrigins: a.cfg.CORSAllowedOrigins,
		Logger:             a.logger.With("component", "http"),
		Version:            a.cfg.ServiceVersion,
	})
}

func (a *App) NewHTTPServer() (*http.Server, error) {
	if a.cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	return &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      a.Router(),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}, nil
}

// Run starts tracing and profiling, serves the configured transport until
// ctx is done, and then flushes telemetry.
func (a *App) Run(ctx context.Context) error {
	shutdownTracing, err := observability.InitUptrace(a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			a.logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("init pyroscope: %w", err)
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			a.logger.Warn("pyroscope stop failed", "error", err)
		}
	}()

	pprofSrv, err := observability.StartPprofServer(a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("start pprof: %w", err)
	}
	defer func() {
		if err := observability.StopPprofServer(pprofSrv, a.logger, a.cfg.ShutdownTimeout); err != nil {
			a.logger.Warn("pprof shutdown failed", "error", err)
		}
	}()

	if a.cfg.Transport == config.TransportHTTP {
		srv, err := a.NewHTTPServer()
		if err != nil {
			return err
		}
		return httpapi.Serve(ctx, srv, a.cfg.ShutdownTimeout, a.logger)
	}

	a.logger.Info("mcp stdio transport ready", "service", a.cfg.ServiceName)
	if err := a.server.RunStdio(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio transport: %w", err)
	}
	return nil
}
