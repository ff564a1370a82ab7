package httpapi

import (
	"context"
	"net/http"

	sonic "github.com/bytedance/sonic"
)

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(_ context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

// writeError uses the same envelope shape as tool results.
func writeError(ctx context.Context, w http.ResponseWriter, status int, kind, message string) {
	writeJSON(ctx, w, status, errorBody{Success: false, Error: kind, Message: message})
}
