package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CountsObservations(t *testing.T) {
	r := New("")

	r.ObserveToolCall("modify_lineup", "ok", 30*time.Millisecond)
	r.ObserveToolCall("modify_lineup", "ok", 10*time.Millisecond)
	r.ObserveToolCall("get_roster", "AuthenticationRequired", time.Millisecond)
	r.ObserveLineupTransaction("COMMITTED")
	r.ObserveProviderRequest("fetch_roster", "2xx", 80*time.Millisecond)
	r.ObserveCircuitState("espn", "open")
	r.ObserveCircuitState("espn", "bogus")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.toolCalls.WithLabelValues("modify_lineup", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.toolCalls.WithLabelValues("get_roster", "AuthenticationRequired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.lineupTransactions.WithLabelValues("COMMITTED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.providerRequests.WithLabelValues("fetch_roster", "2xx")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.circuitState.WithLabelValues("espn")))
}

func TestRegistry_HandlerExposesMetrics(t *testing.T) {
	r := New("espn_mcp")
	r.ObserveLineupTransaction("PREVIEWED")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `espn_mcp_lineup_transactions_total{state="PREVIEWED"} 1`)
}

func TestRegistry_NilSafe(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.ObserveToolCall("get_team", "ok", time.Millisecond)
		r.ObserveLineupTransaction("REJECTED")
		r.ObserveProviderRequest("fetch_settings", "5xx", time.Millisecond)
		r.ObserveCircuitState("espn", "closed")
		_ = r.Handler()
	})
}
