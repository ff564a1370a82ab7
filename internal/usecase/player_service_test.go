package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/lineup"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/player"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/infrastructure/provider/memory"
	usecasemock "github.com/riskibarqy/espn-fantasy-mcp/internal/mocks/usecase"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlayerService_GetPlayerInfo(t *testing.T) {
	svc := usecase.NewPlayerService(memory.New(memory.DemoSeed()), player.DefaultResolveOptions())

	tests := []struct {
		name       string
		query      string
		wantFound  bool
		wantID     int64
		wantStatus player.Status
	}{
		{name: "rostered exact", query: "logan webb", wantFound: true, wantID: memory.DemoBenchPitcherID, wantStatus: player.StatusRostered},
		{name: "waiver player without accent", query: "Ronald Acuna Jr", wantFound: true, wantID: 800, wantStatus: player.StatusWaivers},
		{name: "free agent with punctuation", query: "JD Martinez", wantFound: true, wantID: 805, wantStatus: player.StatusFreeAgent},
		{name: "typo suggests", query: "Shohei Ohtanu", wantID: 501},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := svc.GetPlayerInfo(t.Context(), demoRef, tc.query)
			require.NoError(t, err)

			assert.Equal(t, tc.wantFound, out.Found)
			assert.Positive(t, out.Searched)
			if tc.wantFound {
				require.NotNil(t, out.Player)
				assert.Equal(t, tc.wantID, out.Player.ID)
				assert.Equal(t, tc.wantStatus, out.Player.Status)
				assert.Empty(t, out.Suggestions)
				return
			}
			assert.Nil(t, out.Player)
			require.NotEmpty(t, out.Suggestions)
			assert.Equal(t, tc.wantID, out.Suggestions[0].Player.ID)
		})
	}
}

func TestPlayerService_GetPlayerInfoRosteredWinsDuplicateNames(t *testing.T) {
	svc := usecase.NewPlayerService(memory.New(memory.DemoSeed()), player.DefaultResolveOptions())

	out, err := svc.GetPlayerInfo(t.Context(), demoRef, "Will Smith")
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, int64(502), out.Player.ID)
	require.NotNil(t, out.Player.Team)
	assert.Equal(t, "Bullpen Bandits", out.Player.Team.Name)
}

func TestPlayerService_GetPlayerInfoJoinsBothPools(t *testing.T) {
	ctx := t.Context()
	provider := usecasemock.NewLeagueProvider(t)
	provider.On("FetchRosteredPlayers", mock.Anything, demoRef).Return(nil, errors.New("boom")).Once()
	provider.On("FetchFreeAgents", mock.Anything, demoRef, usecase.FreeAgentQuery{Size: 1000}).
		Return(func(ctx context.Context, _ usecase.LeagueRef, _ usecase.FreeAgentQuery) ([]player.Player, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).Once()

	svc := usecase.NewPlayerService(provider, player.DefaultResolveOptions())
	_, err := svc.GetPlayerInfo(ctx, demoRef, "Aaron Judge")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch rostered players")
}

func TestPlayerService_GetPlayerInfoValidation(t *testing.T) {
	provider := usecasemock.NewLeagueProvider(t)
	svc := usecase.NewPlayerService(provider, player.DefaultResolveOptions())

	_, err := svc.GetPlayerInfo(t.Context(), demoRef, "   ")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = svc.GetPlayerInfo(t.Context(), usecase.LeagueRef{}, "Aaron Judge")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestPlayerService_ListFreeAgents(t *testing.T) {
	svc := usecase.NewPlayerService(memory.New(memory.DemoSeed()), player.DefaultResolveOptions())

	all, err := svc.ListFreeAgents(t.Context(), demoRef, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 7)

	relievers, err := svc.ListFreeAgents(t.Context(), demoRef, "rp", 5)
	require.NoError(t, err)
	require.Len(t, relievers, 1)
	assert.True(t, relievers[0].EligibleFor(lineup.SlotReliefPitcher))

	limited, err := svc.ListFreeAgents(t.Context(), demoRef, "3B", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestPlayerService_ListFreeAgentsInvalidInput(t *testing.T) {
	provider := usecasemock.NewLeagueProvider(t)
	svc := usecase.NewPlayerService(provider, player.DefaultResolveOptions())

	for _, tc := range []struct {
		position string
		size     int
	}{
		{position: "QB", size: 10},
		{size: -1},
		{size: 1001},
	} {
		_, err := svc.ListFreeAgents(t.Context(), demoRef, tc.position, tc.size)
		assert.ErrorIs(t, err, usecase.ErrInvalidInput, "position=%q size=%d", tc.position, tc.size)
	}
}
