package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/logging"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	LogLevel                   logging.Level
	ESPNS2                     string
	ESPNSWID                   string
	LeagueID                   int64
	SeasonYear                 int
	TeamID                     *int
	ReadsBaseURL               string
	WritesBaseURL              string
	ESPNTimeout                time.Duration
	ESPNMaxRetries             int
	ESPNRateLimit              float64
	ESPNRateBurst              int
	ESPNCircuitEnabled         bool
	ESPNCircuitFailureCount    int
	ESPNCircuitOpenTimeout     time.Duration
	ESPNCircuitHalfOpenMaxReq  int
	SettingsCacheTTL           time.Duration
	ResolverLimit              int
	ResolverMinScore           int
	Transport                  string
	HTTPAddr                   string
	MCPPath                    string
	MCPAPIKey                  string
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	ShutdownTimeout            time.Duration
	MetricsEnabled             bool
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// HasCredentials reports whether both ESPN session cookies are set.
// Public leagues can be read without them.
func (c Config) HasCredentials() bool {
	return c.ESPNS2 != "" && c.ESPNSWID != ""
}

// WithTransport overrides MCP_TRANSPORT, as the serve command's flag does,
// and re-applies the production API key rule.
func (c Config) WithTransport(v string) (Config, error) {
	transport, err := parseTransport(v)
	if err != nil {
		return Config{}, err
	}
	if c.AppEnv == EnvProd && transport == TransportHTTP && c.MCPAPIKey == "" {
		return Config{}, fmt.Errorf("MCP_API_KEY is required when APP_ENV=prod and MCP_TRANSPORT=http")
	}
	c.Transport = transport
	return c, nil
}

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	espnS2 := strings.TrimSpace(getEnv("ESPN_S2", ""))
	espnSWID := strings.TrimSpace(getEnv("ESPN_SWID", ""))
	if (espnS2 == "") != (espnSWID == "") {
		return Config{}, fmt.Errorf("ESPN_S2 and ESPN_SWID must be set together")
	}

	var leagueID int64
	if raw := strings.TrimSpace(getEnv("ESPN_LEAGUE_ID", "")); raw != "" {
		leagueID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse ESPN_LEAGUE_ID: %w", err)
		}
		if leagueID <= 0 {
			return Config{}, fmt.Errorf("ESPN_LEAGUE_ID must be > 0")
		}
	}

	seasonYear, err := getEnvAsInt("ESPN_SEASON_YEAR", 2024)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_SEASON_YEAR: %w", err)
	}
	if seasonYear < 2000 {
		return Config{}, fmt.Errorf("ESPN_SEASON_YEAR must be >= 2000")
	}

	var teamID *int
	if raw := strings.TrimSpace(getEnv("ESPN_TEAM_ID", "")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse ESPN_TEAM_ID: %w", err)
		}
		if v < 0 {
			return Config{}, fmt.Errorf("ESPN_TEAM_ID must be >= 0")
		}
		teamID = &v
	}

	espnTimeout, err := time.ParseDuration(getEnv("ESPN_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_TIMEOUT: %w", err)
	}
	if espnTimeout <= 0 {
		return Config{}, fmt.Errorf("ESPN_TIMEOUT must be > 0")
	}
	espnMaxRetries, err := getEnvAsInt("ESPN_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_MAX_RETRIES: %w", err)
	}
	if espnMaxRetries < 0 {
		return Config{}, fmt.Errorf("ESPN_MAX_RETRIES must be >= 0")
	}

	espnRateLimit, err := strconv.ParseFloat(getEnv("ESPN_RATE_LIMIT_RPS", "5"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_RATE_LIMIT_RPS: %w", err)
	}
	if espnRateLimit < 0 {
		return Config{}, fmt.Errorf("ESPN_RATE_LIMIT_RPS must be >= 0")
	}
	espnRateBurst, err := getEnvAsInt("ESPN_RATE_LIMIT_BURST", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_RATE_LIMIT_BURST: %w", err)
	}
	if espnRateBurst < 1 {
		return Config{}, fmt.Errorf("ESPN_RATE_LIMIT_BURST must be >= 1")
	}

	espnCircuitEnabled, err := strconv.ParseBool(getEnv("ESPN_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_ENABLED: %w", err)
	}
	espnCircuitFailureCount, err := getEnvAsInt("ESPN_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if espnCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("ESPN_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	espnCircuitOpenTimeout, err := time.ParseDuration(getEnv("ESPN_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if espnCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("ESPN_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	espnCircuitHalfOpenMaxReq, err := getEnvAsInt("ESPN_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if espnCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("ESPN_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	settingsCacheTTL, err := time.ParseDuration(getEnv("SETTINGS_CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SETTINGS_CACHE_TTL: %w", err)
	}
	if settingsCacheTTL <= 0 {
		return Config{}, fmt.Errorf("SETTINGS_CACHE_TTL must be > 0")
	}

	resolverLimit, err := getEnvAsInt("RESOLVER_LIMIT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse RESOLVER_LIMIT: %w", err)
	}
	if resolverLimit < 1 {
		return Config{}, fmt.Errorf("RESOLVER_LIMIT must be >= 1")
	}
	resolverMinScore, err := getEnvAsInt("RESOLVER_MIN_SCORE", 70)
	if err != nil {
		return Config{}, fmt.Errorf("parse RESOLVER_MIN_SCORE: %w", err)
	}
	if resolverMinScore < 1 || resolverMinScore > 100 {
		return Config{}, fmt.Errorf("RESOLVER_MIN_SCORE must be between 1 and 100")
	}

	transport, err := parseTransport(getEnv("MCP_TRANSPORT", TransportStdio))
	if err != nil {
		return Config{}, err
	}
	mcpPath := strings.TrimSpace(getEnv("MCP_HTTP_PATH", "/mcp"))
	if !strings.HasPrefix(mcpPath, "/") {
		return Config{}, fmt.Errorf("MCP_HTTP_PATH must start with /")
	}
	apiKey := strings.TrimSpace(getEnv("MCP_API_KEY", ""))
	if appEnv == EnvProd && transport == TransportHTTP && apiKey == "" {
		return Config{}, fmt.Errorf("MCP_API_KEY is required when APP_ENV=prod and MCP_TRANSPORT=http")
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	// Lineup commits wait on ESPN, so the write timeout sits above ESPN_TIMEOUT.
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(getEnv("HTTP_SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_SHUTDOWN_TIMEOUT: %w", err)
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", "127.0.0.1:6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	serviceName := getEnv("SERVICE_NAME", "espn-fantasy-mcp")

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                serviceName,
		ServiceVersion:             getEnv("SERVICE_VERSION", "dev"),
		LogLevel:                   logging.ParseLevel(getEnv("LOG_LEVEL", "info")),
		ESPNS2:                     espnS2,
		ESPNSWID:                   espnSWID,
		LeagueID:                   leagueID,
		SeasonYear:                 seasonYear,
		TeamID:                     teamID,
		ReadsBaseURL:               strings.TrimSpace(getEnv("ESPN_READS_BASE_URL", "")),
		WritesBaseURL:              strings.TrimSpace(getEnv("ESPN_WRITES_BASE_URL", "")),
		ESPNTimeout:                espnTimeout,
		ESPNMaxRetries:             espnMaxRetries,
		ESPNRateLimit:              espnRateLimit,
		ESPNRateBurst:              espnRateBurst,
		ESPNCircuitEnabled:         espnCircuitEnabled,
		ESPNCircuitFailureCount:    espnCircuitFailureCount,
		ESPNCircuitOpenTimeout:     espnCircuitOpenTimeout,
		ESPNCircuitHalfOpenMaxReq:  espnCircuitHalfOpenMaxReq,
		SettingsCacheTTL:           settingsCacheTTL,
		ResolverLimit:              resolverLimit,
		ResolverMinScore:           resolverMinScore,
		Transport:                  transport,
		HTTPAddr:                   getEnv("HTTP_ADDR", ":8080"),
		MCPPath:                    mcpPath,
		MCPAPIKey:                  apiKey,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		ShutdownTimeout:            shutdownTimeout,
		MetricsEnabled:             metricsEnabled,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAppName:           strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", serviceName)),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("HTTP timeouts must be > 0")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseTransport(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case TransportStdio, TransportHTTP:
		return value, nil
	default:
		return "", fmt.Errorf("invalid MCP_TRANSPORT %q: valid values are %s, %s", v, TransportStdio, TransportHTTP)
	}
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
