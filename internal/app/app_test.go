package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/config"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/infrastructure/provider/memory"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "espn-fantasy-mcp",
		ServiceVersion:     "test",
		SeasonYear:         2024,
		SettingsCacheTTL:   time.Minute,
		ResolverLimit:      5,
		ResolverMinScore:   70,
		Transport:          config.TransportHTTP,
		HTTPAddr:           "127.0.0.1:0",
		MCPPath:            "/mcp",
		CORSAllowedOrigins: []string{"*"},
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		ShutdownTimeout:    time.Second,
		MetricsEnabled:     true,
	}
}

func TestNew_RejectsZeroCacheTTL(t *testing.T) {
	cfg := testConfig()
	cfg.SettingsCacheTTL = 0

	_, err := New(cfg, logging.NewNop(), Options{Demo: true})
	assert.Error(t, err)
}

func TestNew_ESPNProviderRegistersTools(t *testing.T) {
	a, err := New(testConfig(), logging.NewNop(), Options{})
	require.NoError(t, err)

	names := make([]string, 0)
	for _, tool := range a.MCP().Catalogue() {
		names = append(names, tool.Name)
	}
	assert.Len(t, names, 7)
	assert.Contains(t, names, "modify_lineup")
}

func TestApp_DemoServesRosterOverHTTP(t *testing.T) {
	a, err := New(testConfig(), logging.NewNop(), Options{Demo: true})
	require.NoError(t, err)

	srv := httptest.NewServer(a.Router())
	t.Cleanup(srv.Close)

	client := mcp.NewClient(&mcp.Implementation{Name: "app-test", Version: "v0"}, nil)
	session, err := client.Connect(t.Context(), &mcp.StreamableClientTransport{Endpoint: srv.URL + "/mcp"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	res, err := session.CallTool(t.Context(), &mcp.CallToolParams{
		Name:      "get_roster",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Team struct {
				TeamID int `json:"team_id"`
			} `json:"team"`
			Entries []map[string]any `json:"entries"`
		} `json:"data"`
	}
	require.NoError(t, sonic.ConfigStd.UnmarshalFromString(text.Text, &body))
	assert.True(t, body.Success)
	assert.Equal(t, 0, body.Data.Team.TeamID)
	assert.NotEmpty(t, body.Data.Entries)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `espn_mcp_tool_calls_total{outcome="ok",tool="get_roster"} 1`)
}

func TestApp_NewHTTPServerNeedsAddr(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPAddr = ""
	a, err := New(cfg, logging.NewNop(), Options{Demo: true})
	require.NoError(t, err)

	_, err = a.NewHTTPServer()
	assert.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	a, err := New(testConfig(), logging.NewNop(), Options{Provider: memory.New(memory.DemoSeed())})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
