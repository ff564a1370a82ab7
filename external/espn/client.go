package espn

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/logging"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/metrics"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/resilience"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	DefaultReadsBaseURL  = "https://lm-api-reads.fantasy.espn.com/apis/v3"
	DefaultWritesBaseURL = "https://lm-api-writes.fantasy.espn.com/apis/v3"

	maxResponseBytes = 6 << 20
	userAgent        = "espn-fantasy-mcp"
)

var (
	errESPNTransient = crerr.New("espn transient failure")
	errNotSent       = crerr.New("espn request not sent")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	ReadsBaseURL   string
	WritesBaseURL  string
	S2             string
	SWID           string
	Timeout        time.Duration
	MaxRetries     int
	RateLimit      float64
	RateBurst      int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Metrics        *metrics.Registry
}

// Client talks to the ESPN fantasy baseball API with the session cookies
// of one account. Reads are retried on transient failures; lineup writes
// are sent at most once.
type Client struct {
	httpClient     *http.Client
	readsBaseURL   string
	writesBaseURL  string
	s2             string
	swid           string
	maxRetries     int
	limiter        *rate.Limiter
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight[[]byte]
	metrics        *metrics.Registry
	backoff        func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.HTTPClient != nil {
		clone := *cfg.HTTPClient
		httpClient = &clone
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	httpClient.Transport = otelhttp.NewTransport(base,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "espn " + r.Method
		}),
	)

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}
	breakerCfg := cfg.CircuitBreaker.Normalize()
	breakerCfg.OnStateChange = func(from, to resilience.CircuitState) {
		logger.Warn("espn circuit breaker state changed", "from", string(from), "to", string(to))
		cfg.Metrics.ObserveCircuitState("espn", string(to))
	}

	return &Client{
		httpClient:     httpClient,
		readsBaseURL:   baseURL(cfg.ReadsBaseURL, DefaultReadsBaseURL),
		writesBaseURL:  baseURL(cfg.WritesBaseURL, DefaultWritesBaseURL),
		s2:             strings.TrimSpace(cfg.S2),
		swid:           strings.TrimSpace(cfg.SWID),
		maxRetries:     max(cfg.MaxRetries, 0),
		limiter:        rate.NewLimiter(limit, burst),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		metrics:        cfg.Metrics,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
}

type apiRequest struct {
	op     string
	method string
	url    string
	filter string
	body   []byte
	retry  bool
}

// getJSON reads one league endpoint and decodes it into target.
// Concurrent identical reads share one request unless ctx asks for a
// fresh read.
func (c *Client) getJSON(ctx context.Context, op string, ref usecase.LeagueRef, query url.Values, filter string, target any) error {
	if err := c.allow(ctx, op); err != nil {
		return err
	}

	req := apiRequest{
		op:     op,
		method: http.MethodGet,
		url:    c.readsBaseURL + leaguePath(ref) + "?" + query.Encode(),
		filter: filter,
		retry:  true,
	}
	fetch := func(ctx context.Context) ([]byte, error) {
		raw, err := c.do(ctx, req)
		c.record(err)
		return raw, err
	}
	var (
		raw []byte
		err error
	)
	if usecase.IsFreshRead(ctx) {
		raw, err = fetch(ctx)
	} else {
		raw, err, _ = c.flight.DoContext(ctx, req.url+"|"+filter, fetch)
	}
	if err != nil {
		return classifyRead(err)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode espn %s payload: %v", usecase.ErrDependencyUnavailable, op, err)
	}
	return nil
}

// postJSON sends a write exactly once.
func (c *Client) postJSON(ctx context.Context, op string, ref usecase.LeagueRef, path string, body []byte, target any) error {
	if err := c.allow(ctx, op); err != nil {
		return err
	}

	raw, err := c.do(ctx, apiRequest{
		op:     op,
		method: http.MethodPost,
		url:    c.writesBaseURL + leaguePath(ref) + path,
		body:   body,
	})
	c.record(err)
	if err != nil {
		return classifyWrite(err)
	}

	if len(bytes.TrimSpace(raw)) == 0 || target == nil {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		c.logger.WarnContext(ctx, "decode espn write response failed", "operation", op, "error", err)
	}
	return nil
}

func (c *Client) allow(ctx context.Context, op string) error {
	if !c.circuitEnabled {
		return nil
	}
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "operation", op, "state", c.breaker.State())
		c.metrics.ObserveProviderRequest(op, "circuit_open", 0)
		return fmt.Errorf("%w: espn is temporarily unavailable: %v", usecase.ErrDependencyUnavailable, err)
	}
	return nil
}

func (c *Client) record(err error) {
	if !c.circuitEnabled {
		return
	}
	if err != nil && crerr.Is(err, errESPNTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func (c *Client) do(ctx context.Context, req apiRequest) ([]byte, error) {
	attempts := 1
	if req.retry {
		attempts += c.maxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		raw, err := c.roundTrip(ctx, req)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !crerr.Is(err, errESPNTransient) || attempt == attempts-1 {
			break
		}

		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "espn request failed",
		"operation", req.op,
		"method", req.method,
		"url", req.url,
		"error", lastErr,
	)
	return nil, lastErr
}

func (c *Client) roundTrip(ctx context.Context, req apiRequest) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, crerr.Mark(fmt.Errorf("wait for rate limiter: %w", err), errNotSent)
	}

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, body)
	if err != nil {
		return nil, crerr.Mark(fmt.Errorf("build request: %w", err), errNotSent)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.filter != "" {
		httpReq.Header.Set("x-fantasy-filter", req.filter)
	}
	if c.s2 != "" {
		httpReq.AddCookie(&http.Cookie{Name: "espn_s2", Value: c.s2})
	}
	if c.swid != "" {
		httpReq.AddCookie(&http.Cookie{Name: "SWID", Value: c.swid})
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveProviderRequest(req.op, "transport_error", time.Since(started))
		return nil, fmt.Errorf("%w: send request: %s", errESPNTransient, c.sanitize(err.Error()))
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	c.metrics.ObserveProviderRequest(req.op, strconv.Itoa(resp.StatusCode), time.Since(started))
	if readErr != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errESPNTransient, readErr)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	return nil, statusError(resp.StatusCode, raw)
}

func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	for _, secret := range []string{c.s2, c.swid} {
		if secret != "" {
			value = strings.ReplaceAll(value, secret, "REDACTED")
		}
	}
	return value
}

// statusError maps an ESPN status code onto the usecase sentinels. 429
// and 5xx are also marked transient so reads retry them.
func statusError(code int, body []byte) error {
	detail := providerMessage(body)
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: espn status=%d, espn_s2 and SWID cookies are missing or expired", usecase.ErrUnauthorized, code)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: espn status=%d: %s", usecase.ErrLeagueNotFound, code, detail)
	case code == http.StatusTooManyRequests:
		return crerr.Mark(fmt.Errorf("%w: espn status=%d: %s", usecase.ErrRemoteRejected, code, detail), errESPNTransient)
	case code >= http.StatusInternalServerError:
		return crerr.Mark(fmt.Errorf("espn status=%d: %s", code, detail), errESPNTransient)
	default:
		return fmt.Errorf("%w: espn status=%d: %s", usecase.ErrRemoteRejected, code, detail)
	}
}

func classifyRead(err error) error {
	switch {
	case crerr.Is(err, usecase.ErrUnauthorized), crerr.Is(err, usecase.ErrLeagueNotFound):
		return err
	default:
		return fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
	}
}

// classifyWrite says how far a failed write got: not sent, rejected, or
// possibly applied.
func classifyWrite(err error) error {
	switch {
	case crerr.Is(err, usecase.ErrUnauthorized),
		crerr.Is(err, usecase.ErrLeagueNotFound),
		crerr.Is(err, usecase.ErrRemoteRejected):
		return err
	case crerr.Is(err, errNotSent):
		return fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", usecase.ErrOutcomeUnknown, err)
	}
}

type errorPayload struct {
	Messages []string `json:"messages"`
	Details  []struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"details"`
}

// providerMessage extracts ESPN's error text, falling back to the body.
func providerMessage(body []byte) string {
	var payload errorPayload
	if err := sonic.Unmarshal(body, &payload); err == nil {
		parts := make([]string, 0, len(payload.Messages)+len(payload.Details))
		parts = append(parts, payload.Messages...)
		for _, d := range payload.Details {
			if d.Message != "" {
				parts = append(parts, d.Message)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}
	return abbreviateBody(body)
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func baseURL(value, fallback string) string {
	value = strings.TrimRight(strings.TrimSpace(value), "/")
	if value == "" {
		return fallback
	}
	return value
}

func leaguePath(ref usecase.LeagueRef) string {
	return fmt.Sprintf("/games/flb/seasons/%d/segments/0/leagues/%s", ref.SeasonYear, url.PathEscape(ref.LeagueID))
}
