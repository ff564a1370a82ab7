package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/interfaces/mcpapi"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/logging"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/metrics"
)

const DefaultMCPPath = "/mcp"

type RouterConfig struct {
	MCP                *mcpapi.Server
	MCPPath            string
	Metrics            *metrics.Registry
	APIKey             string
	CORSAllowedOrigins []string
	Logger             *logging.Logger
	Version            string
}

type Handler struct {
	catalogue []mcpapi.ToolInfo
	version   string
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok", "version": h.version})
}

// Tools lists the registered MCP tools for clients that cannot call
// tools/list, such as health dashboards.
func (h *Handler) Tools(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{"tools": h.catalogue})
}

// NewRouter mounts the streamable MCP endpoint next to health, catalogue
// and metrics routes. Only the MCP endpoint and the catalogue require the
// API key.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	path := cfg.MCPPath
	if path == "" {
		path = DefaultMCPPath
	}
	h := &Handler{catalogue: cfg.MCP.Catalogue(), version: cfg.Version}

	r := chi.NewRouter()
	r.Use(recoverPanic(logger))
	r.Use(RequestLogging(logger))
	r.Use(CORS(cfg.CORSAllowedOrigins))

	r.Get("/healthz", h.Healthz)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}
	r.Group(func(r chi.Router) {
		r.Use(RequireAPIKey(cfg.APIKey))
		r.Get("/tools", h.Tools)
		r.Handle(path, cfg.MCP.HTTPHandler())
	})

	return RequestTracing(r)
}

// Serve runs srv until ctx is cancelled and then shuts it down, giving
// in-flight requests shutdownTimeout to finish.
func Serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
