package mcpapi

import (
	"context"
	"errors"
	"fmt"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T", result.Content[0])

	var body map[string]any
	require.NoError(t, sonic.UnmarshalString(text.Text, &body))
	return body
}

func TestWriteSuccess_Envelope(t *testing.T) {
	result := writeSuccess(context.Background(), map[string]any{"valid": true})

	assert.False(t, result.IsError)
	body := decodeEnvelope(t, result)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"valid": true}, body["data"])
	assert.NotContains(t, body, "error")
}

func TestWriteError_Envelope(t *testing.T) {
	result, kind := writeError(context.Background(), fmt.Errorf("%w: league_id is required", usecase.ErrInvalidInput))

	assert.True(t, result.IsError)
	assert.Equal(t, KindInvalidInput, kind)
	body := decodeEnvelope(t, result)
	assert.Equal(t, map[string]any{
		"success": false,
		"error":   "InvalidInput",
		"message": "invalid input: league_id is required",
	}, body)
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	result, kind := writeError(context.Background(), errors.New("nil pointer in mapper"))

	assert.Equal(t, KindInternalError, kind)
	body := decodeEnvelope(t, result)
	assert.Equal(t, "InternalError", body["error"])
	assert.Equal(t, internalErrorMessage, body["message"])
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "invalid input", err: fmt.Errorf("%w: size", usecase.ErrInvalidInput), want: KindInvalidInput},
		{name: "unauthorized", err: fmt.Errorf("read: %w", usecase.ErrUnauthorized), want: KindAuthenticationRequired},
		{name: "league not found", err: usecase.ErrLeagueNotFound, want: KindLeagueNotFound},
		{name: "team not found", err: usecase.ErrTeamNotFound, want: KindTeamNotFound},
		{name: "provider down", err: fmt.Errorf("%w: circuit open", usecase.ErrDependencyUnavailable), want: KindProviderUnavailable},
		{
			name: "commit not sent",
			err:  fmt.Errorf("%w: not sent: %w", usecase.ErrRemoteCommitFailed, usecase.ErrDependencyUnavailable),
			want: KindRemoteCommitFailed,
		},
		{
			name: "commit unconfirmed",
			err:  fmt.Errorf("%w: %w", usecase.ErrRemoteCommitFailed, usecase.ErrOutcomeUnknown),
			want: KindRemoteCommitFailed,
		},
		{
			name: "commit unauthorized keeps auth kind",
			err:  fmt.Errorf("lineup not committed: %w", usecase.ErrUnauthorized),
			want: KindAuthenticationRequired,
		},
		{name: "anything else", err: errors.New("boom"), want: KindInternalError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mapError(tc.err))
		})
	}
}
