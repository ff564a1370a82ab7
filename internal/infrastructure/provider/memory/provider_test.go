package memory

import (
	"errors"
	"testing"

	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/lineup"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/player"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var demoRef = usecase.LeagueRef{LeagueID: DemoLeagueID, SeasonYear: DemoSeasonYear}

func TestProvider_FetchRosterDefaultsToCurrentPeriod(t *testing.T) {
	p := New(DemoSeed())

	snapshot, err := p.FetchRoster(t.Context(), demoRef, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, DemoScoringPeriod, snapshot.ScoringPeriod)
	assert.Equal(t, "Diamond Kings", snapshot.Team.Name)
	e, ok := snapshot.Roster.Find(DemoBenchPitcherID)
	require.True(t, ok)
	assert.Equal(t, lineup.SlotBench, e.Slot)
	require.NotNil(t, e.Player.Team)
	assert.Equal(t, 0, e.Player.Team.Index)
	assert.Equal(t, player.StatusRostered, e.Player.Status)

	limit, _ := snapshot.Rules.Capacity(lineup.SlotPitcher)
	assert.Equal(t, 3, limit)
}

func TestProvider_FetchRosterErrors(t *testing.T) {
	p := New(DemoSeed())

	_, err := p.FetchRoster(t.Context(), demoRef, 9, 0)
	assert.ErrorIs(t, err, usecase.ErrTeamNotFound)

	_, err = p.FetchRoster(t.Context(), usecase.LeagueRef{LeagueID: "1", SeasonYear: 2024}, 0, 0)
	assert.ErrorIs(t, err, usecase.ErrLeagueNotFound)

	p.Fail(OpFetchRoster, usecase.ErrUnauthorized)
	_, err = p.FetchRoster(t.Context(), demoRef, 0, 0)
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)

	p.Fail(OpFetchRoster, nil)
	_, err = p.FetchRoster(t.Context(), demoRef, 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, 4, p.Calls(OpFetchRoster))
}

func TestProvider_SubmitLineupAppliesMoves(t *testing.T) {
	p := New(DemoSeed())
	before, err := p.FetchRoster(t.Context(), demoRef, 0, 0)
	require.NoError(t, err)

	receipt, err := p.SubmitLineup(t.Context(), demoRef, usecase.LineupSubmission{
		Team:          before.Team,
		ScoringPeriod: before.ScoringPeriod,
		Moves:         []lineup.Move{{PlayerID: DemoBenchPitcherID, FromSlot: lineup.SlotBench, ToSlot: lineup.SlotPitcher}},
	})
	require.NoError(t, err)
	assert.Equal(t, "memory-txn-1", receipt.TransactionID)

	after, err := p.FetchRoster(t.Context(), demoRef, 0, 0)
	require.NoError(t, err)
	e, _ := after.Roster.Find(DemoBenchPitcherID)
	assert.Equal(t, lineup.SlotPitcher, e.Slot)

	e, _ = before.Roster.Find(DemoBenchPitcherID)
	assert.Equal(t, lineup.SlotBench, e.Slot, "snapshots are copies")
	assert.Len(t, p.Submissions(), 1)
}

func TestProvider_SubmitLineupRejectsStaleMove(t *testing.T) {
	p := New(DemoSeed())
	snapshot, err := p.FetchRoster(t.Context(), demoRef, 0, 0)
	require.NoError(t, err)

	_, err = p.SubmitLineup(t.Context(), demoRef, usecase.LineupSubmission{
		Team:  snapshot.Team,
		Moves: []lineup.Move{{PlayerID: DemoBenchPitcherID, FromSlot: lineup.SlotOutfield, ToSlot: lineup.SlotPitcher}},
	})
	assert.True(t, errors.Is(err, usecase.ErrRemoteRejected))
	assert.Empty(t, p.Submissions())
}

func TestProvider_FreeAgentsFilterBySlot(t *testing.T) {
	p := New(DemoSeed())
	slot := lineup.SlotReliefPitcher

	players, err := p.FetchFreeAgents(t.Context(), demoRef, usecase.FreeAgentQuery{Size: 10, SlotID: &slot})
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Josh Hader", players[0].Name)
	assert.Equal(t, player.StatusWaivers, players[0].Status)

	players, err = p.FetchFreeAgents(t.Context(), demoRef, usecase.FreeAgentQuery{Size: 2})
	require.NoError(t, err)
	assert.Len(t, players, 2)
}

func TestProvider_RosteredPlayersCoverEveryTeam(t *testing.T) {
	p := New(DemoSeed())

	players, err := p.FetchRosteredPlayers(t.Context(), demoRef)
	require.NoError(t, err)
	assert.Len(t, players, 23)
	for _, pl := range players {
		assert.NoError(t, pl.Validate())
	}
}
