package main

import (
	"bytes"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "ESPN_S2", "ESPN_SWID", "ESPN_LEAGUE_ID", "ESPN_TEAM_ID",
		"MCP_TRANSPORT", "MCP_API_KEY", "UPTRACE_ENABLED", "PYROSCOPE_ENABLED", "SERVICE_VERSION",
	} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestToolsCmd_PrintsCatalogue(t *testing.T) {
	clearConfigEnv(t)

	out, err := execute(t, "tools")
	require.NoError(t, err)

	var body struct {
		Tools []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"tools"`
	}
	require.NoError(t, sonic.ConfigStd.UnmarshalFromString(out, &body))
	require.Len(t, body.Tools, 7)

	names := make([]string, 0, len(body.Tools))
	for _, tool := range body.Tools {
		assert.NotEmpty(t, tool.Description, tool.Name)
		names = append(names, tool.Name)
	}
	assert.Contains(t, names, "get_roster")
	assert.Contains(t, names, "modify_lineup")
}

func TestToolsCmd_RejectsBadConfig(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("ESPN_S2", "cookie-without-swid")

	_, err := execute(t, "tools")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "espn-mcp dev\n", out)
}

func TestServeCmd_RejectsUnknownTransport(t *testing.T) {
	clearConfigEnv(t)

	_, err := execute(t, "serve", "--transport", "grpc")
	require.Error(t, err)
}
