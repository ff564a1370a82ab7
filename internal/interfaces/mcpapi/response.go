package mcpapi

import (
	"context"
	"errors"

	sonic "github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/usecase"
)

// ErrorKind is the error field of a failed envelope.
type ErrorKind string

const (
	KindInvalidInput           ErrorKind = "InvalidInput"
	KindAuthenticationRequired ErrorKind = "AuthenticationRequired"
	KindLeagueNotFound         ErrorKind = "LeagueNotFound"
	KindTeamNotFound           ErrorKind = "TeamNotFound"
	KindRemoteCommitFailed     ErrorKind = "RemoteCommitFailed"
	KindProviderUnavailable    ErrorKind = "ProviderUnavailable"
	KindInternalError          ErrorKind = "InternalError"
)

const internalErrorMessage = "internal error"

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   ErrorKind `json:"error"`
	Message string    `json:"message"`
}

func writeSuccess(ctx context.Context, data any) *mcp.CallToolResult {
	ctx, span := startSpan(ctx, "mcpapi.writeSuccess")
	defer span.End()

	return writeJSON(ctx, successEnvelope{Success: true, Data: data}, false)
}

// writeError renders err as a failed envelope. Internal errors keep their
// detail out of the message.
func writeError(ctx context.Context, err error) (*mcp.CallToolResult, ErrorKind) {
	ctx, span := startSpan(ctx, "mcpapi.writeError")
	defer span.End()

	kind := mapError(err)
	message := err.Error()
	if kind == KindInternalError {
		message = internalErrorMessage
	}
	return writeJSON(ctx, errorEnvelope{Success: false, Error: kind, Message: message}, true), kind
}

func writeJSON(_ context.Context, payload any, isError bool) *mcp.CallToolResult {
	raw, err := sonic.ConfigStd.Marshal(payload)
	if err != nil {
		raw = []byte(`{"success":false,"error":"InternalError","message":"encode tool result failed"}`)
		isError = true
	}
	return &mcp.CallToolResult{
		IsError: isError,
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// mapError picks the most specific kind. Commit failures are checked
// before provider availability because a commit that was never sent
// carries both.
func mapError(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, usecase.ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, usecase.ErrUnauthorized):
		return KindAuthenticationRequired
	case errors.Is(err, usecase.ErrLeagueNotFound):
		return KindLeagueNotFound
	case errors.Is(err, usecase.ErrTeamNotFound):
		return KindTeamNotFound
	case errors.Is(err, usecase.ErrRemoteCommitFailed):
		return KindRemoteCommitFailed
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return KindProviderUnavailable
	default:
		return KindInternalError
	}
}
