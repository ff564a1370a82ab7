package espn

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/league"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/lineup"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/player"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/logging"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/metrics"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/resilience"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testS2   = "AEBsecretS2cookie"
	testSWID = "{11111111-2222-3333-4444-555555555555}"
)

var testRef = usecase.LeagueRef{LeagueID: "12345", SeasonYear: 2024}

const leagueFixture = `{
  "id": 12345,
  "seasonId": 2024,
  "scoringPeriodId": 42,
  "status": {"currentMatchupPeriod": 6},
  "settings": {
    "name": "Backyard League",
    "size": 2,
    "isPublic": false,
    "restrictionType": "NONE",
    "rosterSettings": {"lineupSlotCounts": {"0": 1, "5": 3, "12": 1, "13": 2, "16": 3, "17": 1, "19": 0}},
    "scheduleSettings": {"matchupPeriodCount": 21, "playoffTeamCount": 4},
    "scoringSettings": {"scoringType": "H2H_CATEGORY", "scoringItems": [{"statId": 5}, {"statId": 48}, {"statId": 5}]},
    "tradeSettings": {"max": -1}
  },
  "members": [
    {"id": "{OWNER-A}", "displayName": "pat_r"},
    {"id": "{OWNER-B}", "firstName": "Sam", "lastName": "Ortiz"}
  ],
  "teams": [
    {
      "id": 7, "abbrev": "BB", "location": "Bullpen", "nickname": "Bandits",
      "owners": ["{OWNER-B}"], "primaryOwner": "{OWNER-B}", "playoffSeed": 2,
      "record": {"overall": {"wins": 10, "losses": 9, "ties": 1, "pointsFor": 101.5, "pointsAgainst": 99}},
      "roster": {"entries": [
        {"playerId": 39832, "lineupSlotId": 12, "playerPoolEntry": {"id": 39832, "onTeamId": 7, "player": {"id": 39832, "fullName": "Shohei Ohtani", "defaultPositionId": 10, "proTeamId": 19, "eligibleSlots": [11, 12, 16, 17]}}}
      ]}
    },
    {
      "id": 3, "abbrev": "DK", "name": "Diamond Kings",
      "owners": ["{OWNER-A}"], "primaryOwner": "{OWNER-A}", "rankCalculatedFinal": 1, "playoffSeed": 1,
      "record": {"overall": {"wins": 14, "losses": 6}},
      "roster": {"entries": [
        {"playerId": 4140653, "lineupSlotId": 16, "playerPoolEntry": {"id": 4140653, "onTeamId": 3, "player": {"id": 4140653, "fullName": "Logan Webb", "defaultPositionId": 1, "proTeamId": 26, "eligibleSlots": [13, 14, 16, 17]}}},
        {"playerId": 33192, "lineupSlotId": 5, "injuryStatus": "TEN_DAY_DL", "playerPoolEntry": {"id": 33192, "onTeamId": 3, "player": {"id": 33192, "fullName": "Aaron Judge", "defaultPositionId": 9, "proTeamId": 10, "eligibleSlots": [5, 10, 12, 16, 17]}}}
      ]}
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*ClientConfig)) (*Client, *metrics.Registry) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	registry := metrics.New("espn_mcp")
	cfg := ClientConfig{
		HTTPClient:     server.Client(),
		ReadsBaseURL:   server.URL + "/reads",
		WritesBaseURL:  server.URL + "/writes",
		S2:             testS2,
		SWID:           testSWID,
		Timeout:        5 * time.Second,
		MaxRetries:     2,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
		Metrics:        registry,
	}
	for _, fn := range mutate {
		fn(&cfg)
	}
	client := NewClient(cfg)
	client.backoff = func(int) time.Duration { return time.Millisecond }
	return client, registry
}

func TestClient_FetchRosterMapsTeamByIndex(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reads/games/flb/seasons/2024/segments/0/leagues/12345", r.URL.Path)
		assert.ElementsMatch(t, []string{"mTeam", "mRoster", "mSettings"}, r.URL.Query()["view"])
		assert.Equal(t, "42", r.URL.Query().Get("scoringPeriodId"))

		if s2, err := r.Cookie("espn_s2"); assert.NoError(t, err) {
			assert.Equal(t, testS2, s2.Value)
		}
		if swid, err := r.Cookie("SWID"); assert.NoError(t, err) {
			assert.Equal(t, testSWID, swid.Value)
		}

		_, _ = io.WriteString(w, leagueFixture)
	})

	snapshot, err := client.FetchRoster(t.Context(), testRef, 0, 42)
	require.NoError(t, err)

	assert.Equal(t, 3, snapshot.Team.ProviderID, "index 0 is the lowest provider id")
	assert.Equal(t, "Diamond Kings", snapshot.Team.Name)
	assert.Equal(t, 42, snapshot.ScoringPeriod)
	require.Len(t, snapshot.Roster, 2)

	webb, ok := snapshot.Roster.Find(4140653)
	require.True(t, ok)
	assert.Equal(t, lineup.SlotBench, webb.Slot)
	assert.Equal(t, "SF", webb.Player.ProTeam)
	assert.Equal(t, "SP", webb.Player.Position)
	assert.Equal(t, "ACTIVE", webb.Player.InjuryStatus)
	assert.Equal(t, player.StatusRostered, webb.Player.Status)
	require.NotNil(t, webb.Player.Team)
	assert.Equal(t, 0, webb.Player.Team.Index)
	assert.True(t, webb.Player.EligibleFor(lineup.SlotPitcher))

	judge, _ := snapshot.Roster.Find(33192)
	assert.Equal(t, "TEN_DAY_DL", judge.Player.InjuryStatus, "roster entry status fills a blank pool status")

	limit, bounded := snapshot.Rules.Capacity(lineup.SlotPitcher)
	assert.True(t, bounded)
	assert.Equal(t, 2, limit)
	limit, _ = snapshot.Rules.Capacity(lineup.SlotInfield)
	assert.Zero(t, limit)
}

func TestClient_FetchRosterUnknownTeam(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, leagueFixture)
	})

	_, err := client.FetchRoster(t.Context(), testRef, 2, 0)
	assert.ErrorIs(t, err, usecase.ErrTeamNotFound)
}

func TestClient_FetchTeamsResolvesOwners(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.ElementsMatch(t, []string{"mTeam", "mStandings"}, r.URL.Query()["view"])
		_, _ = io.WriteString(w, leagueFixture)
	})

	teams, err := client.FetchTeams(t.Context(), testRef)
	require.NoError(t, err)
	require.Len(t, teams, 2)

	assert.Equal(t, league.Team{
		Index: 1, ProviderID: 7, Name: "Bullpen Bandits", Abbrev: "BB",
		Owners: []string{"Sam Ortiz"}, PrimaryOwner: "Sam Ortiz",
		Wins: 10, Losses: 9, Ties: 1, PointsFor: 101.5, PointsAgainst: 99, Standing: 2,
	}, teams[1])
	assert.Equal(t, []string{"pat_r"}, teams[0].Owners)
	assert.Equal(t, 1, teams[0].Standing)
}

func TestClient_FetchSettings(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, leagueFixture)
	})

	settings, err := client.FetchSettings(t.Context(), testRef)
	require.NoError(t, err)

	assert.Equal(t, "Backyard League", settings.Name)
	assert.Equal(t, 2, settings.Size)
	assert.False(t, settings.IsPublic)
	assert.Equal(t, "H2H_CATEGORY", settings.ScoringType)
	assert.Equal(t, 21, settings.MatchupPeriodCount)
	assert.Equal(t, 4, settings.PlayoffTeamCount)
	assert.Equal(t, 42, settings.CurrentScoringPeriod)
	assert.Equal(t, 6, settings.CurrentMatchupPeriod)
	assert.Equal(t, 3, settings.SlotCounts[lineup.SlotOutfield])
	assert.Equal(t, []league.ScoringCategory{
		{StatID: 5, Label: "HR"},
		{StatID: 48, Label: "K", Pitching: true},
	}, settings.ScoringCategories)
	assert.Contains(t, settings.Sections, "trade")
	assert.Contains(t, settings.Sections, "roster")
	assert.Equal(t, "ERA", settings.StatLabels[47])
}

func TestClient_FetchFreeAgentsSendsFilter(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"kona_player_info"}, r.URL.Query()["view"])

		var filter freeAgentFilter
		assert.NoError(t, sonic.UnmarshalString(r.Header.Get("x-fantasy-filter"), &filter))
		assert.Equal(t, []string{"FREEAGENT", "WAIVERS"}, filter.Players.FilterStatus.Value)
		if assert.NotNil(t, filter.Players.FilterSlotIDs) {
			assert.Equal(t, []int{lineup.SlotReliefPitcher}, filter.Players.FilterSlotIDs.Value)
		}
		assert.Equal(t, 25, filter.Players.Limit)
		assert.False(t, filter.Players.SortPercOwned.SortAsc)

		_, _ = io.WriteString(w, `{"players": [
			{"id": 1, "status": "WAIVERS", "player": {"id": 1, "fullName": "Josh Hader", "defaultPositionId": 11, "proTeamId": 18, "eligibleSlots": [13, 15, 16, 17]}},
			{"id": 2, "status": "FREEAGENT", "player": {"id": 2, "fullName": "Kenley Jansen", "defaultPositionId": 11, "proTeamId": 2, "eligibleSlots": [13, 15, 16, 17]}},
			{"id": 3, "status": "ONTEAM", "player": {"id": 3, "fullName": "Rostered Arm"}}
		]}`)
	})

	slot := lineup.SlotReliefPitcher
	players, err := client.FetchFreeAgents(t.Context(), testRef, usecase.FreeAgentQuery{Size: 25, SlotID: &slot})
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, player.StatusWaivers, players[0].Status)
	assert.Equal(t, "Hou", players[0].ProTeam)
	assert.Equal(t, "RP", players[0].Position)
	assert.Nil(t, players[0].Team)
	assert.Equal(t, player.StatusFreeAgent, players[1].Status)
}

func TestClient_SubmitLineupPostsTransaction(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/writes/games/flb/seasons/2024/segments/0/leagues/12345/transactions/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var body lineupTransactionPayload
		assert.NoError(t, sonic.Unmarshal(raw, &body))
		assert.Equal(t, lineupTransactionPayload{
			TeamID:          3,
			MemberID:        testSWID,
			Type:            "ROSTER",
			ScoringPeriodID: 42,
			ExecutionType:   "EXECUTE",
			Items: []lineupItemPayload{
				{PlayerID: 4140653, Type: "LINEUP", FromLineupSlotID: 16, ToLineupSlotID: 13},
			},
		}, body)

		_, _ = io.WriteString(w, `{"id": "c7f0b9d2", "status": "EXECUTED", "scoringPeriodId": 42}`)
	})

	receipt, err := client.SubmitLineup(t.Context(), testRef, usecase.LineupSubmission{
		Team:          league.Team{Index: 0, ProviderID: 3},
		ScoringPeriod: 42,
		Moves:         []lineup.Move{{PlayerID: 4140653, FromSlot: 16, ToSlot: 13}},
	})
	require.NoError(t, err)
	assert.Equal(t, usecase.LineupReceipt{TransactionID: "c7f0b9d2", Status: "EXECUTED", ScoringPeriod: 42}, receipt)
	assert.EqualValues(t, 1, calls.Load())
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		write     bool
		wantIs    []error
		wantCalls int32
		wantText  string
	}{
		{name: "read unauthorized", status: 401, wantIs: []error{usecase.ErrUnauthorized}, wantCalls: 1},
		{name: "read forbidden", status: 403, wantIs: []error{usecase.ErrUnauthorized}, wantCalls: 1},
		{name: "read league missing", status: 404, wantIs: []error{usecase.ErrLeagueNotFound}, wantCalls: 1},
		{name: "read server error retried", status: 503, wantIs: []error{usecase.ErrDependencyUnavailable}, wantCalls: 3},
		{name: "read throttled retried", status: 429, wantIs: []error{usecase.ErrDependencyUnavailable}, wantCalls: 3},
		{name: "write server error not retried", status: 500, write: true, wantIs: []error{usecase.ErrOutcomeUnknown}, wantCalls: 1},
		{name: "write throttled is rejected", status: 429, write: true, wantIs: []error{usecase.ErrRemoteRejected}, wantCalls: 1},
		{
			name:      "write rejected with details",
			status:    409,
			body:      `{"messages": [], "details": [{"message": "Lineup is locked", "type": "LINEUP_LOCKED"}]}`,
			write:     true,
			wantIs:    []error{usecase.ErrRemoteRejected},
			wantCalls: 1,
			wantText:  "Lineup is locked",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})

			var err error
			if tc.write {
				_, err = client.SubmitLineup(t.Context(), testRef, usecase.LineupSubmission{
					Team:  league.Team{ProviderID: 3},
					Moves: []lineup.Move{{PlayerID: 1, FromSlot: 16, ToSlot: 13}},
				})
			} else {
				_, err = client.FetchTeams(t.Context(), testRef)
			}

			require.Error(t, err)
			for _, want := range tc.wantIs {
				assert.True(t, errors.Is(err, want), "expected %v in %v", want, err)
			}
			assert.Equal(t, tc.wantCalls, calls.Load())
			if tc.wantText != "" {
				assert.Contains(t, err.Error(), tc.wantText)
			}
		})
	}
}

func TestClient_TransportFailureOnWriteIsUnconfirmed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			return
		}
		if conn, _, err := hj.Hijack(); err == nil {
			_ = conn.Close()
		}
	}))
	defer server.Close()

	client := NewClient(ClientConfig{WritesBaseURL: server.URL, S2: testS2, SWID: testSWID, Logger: logging.NewNop()})
	_, err := client.SubmitLineup(t.Context(), testRef, usecase.LineupSubmission{
		Team:  league.Team{ProviderID: 3},
		Moves: []lineup.Move{{PlayerID: 1, FromSlot: 16, ToSlot: 13}},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, usecase.ErrOutcomeUnknown)
	assert.NotContains(t, err.Error(), testS2)
}

func TestClient_CircuitBreakerStopsRequests(t *testing.T) {
	var calls atomic.Int32
	client, registry := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, func(cfg *ClientConfig) {
		cfg.MaxRetries = 0
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Hour}
	})

	_, err := client.FetchTeams(t.Context(), testRef)
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)

	_, err = client.SubmitLineup(t.Context(), testRef, usecase.LineupSubmission{
		Team:  league.Team{ProviderID: 3},
		Moves: []lineup.Move{{PlayerID: 1, FromSlot: 16, ToSlot: 13}},
	})
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.False(t, errors.Is(err, usecase.ErrOutcomeUnknown))
	assert.EqualValues(t, 1, calls.Load())

	text := gatherText(t, registry)
	assert.Contains(t, text, `operation="submit_lineup",status="circuit_open"`)
	assert.Contains(t, text, `provider_circuit_state{breaker="espn"} 2`)
}

func TestClient_RecordsProviderMetrics(t *testing.T) {
	client, registry := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, leagueFixture)
	})

	_, err := client.FetchSettings(t.Context(), testRef)
	require.NoError(t, err)

	assert.Contains(t, gatherText(t, registry), `operation="settings",status="200"`)
}

func TestClient_FreshReadSkipsInFlightRead(t *testing.T) {
	var calls atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			close(entered)
			<-release
		}
		_, _ = io.WriteString(w, leagueFixture)
	})

	slow := make(chan error, 1)
	go func() {
		_, err := client.FetchRoster(t.Context(), testRef, 0, 0)
		slow <- err
	}()
	<-entered

	snapshot, err := client.FetchRoster(usecase.WithFreshRead(t.Context()), testRef, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Diamond Kings", snapshot.Team.Name)
	assert.EqualValues(t, 2, calls.Load(), "fresh read must issue its own request")

	close(release)
	require.NoError(t, <-slow)
}

func TestClient_JoinedReadSurvivesOtherCallerCancel(t *testing.T) {
	var calls atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			close(entered)
			<-release
		}
		_, _ = io.WriteString(w, leagueFixture)
	})

	leaderCtx, cancelLeader := context.WithCancel(t.Context())
	leader := make(chan error, 1)
	go func() {
		_, err := client.FetchTeams(leaderCtx, testRef)
		leader <- err
	}()
	<-entered

	follower := make(chan error, 1)
	go func() {
		_, err := client.FetchTeams(t.Context(), testRef)
		follower <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancelLeader()
	require.Error(t, <-leader)
	close(release)

	require.NoError(t, <-follower)
	assert.EqualValues(t, 1, calls.Load())
}

func gatherText(t *testing.T, registry *metrics.Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	registry.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Body.String()
}

func TestStatLabel(t *testing.T) {
	assert.Equal(t, "WHIP", StatLabel(41))
	assert.Equal(t, "1000", StatLabel(1000))
	assert.Equal(t, "FA", proTeamAbbrev(99))
	assert.Equal(t, "SF", proTeamAbbrev(26))
}
