package usecase_test

import (
	"testing"

	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/league"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/infrastructure/provider/memory"
	usecasemock "github.com/riskibarqy/espn-fantasy-mcp/internal/mocks/usecase"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLeagueService_ListStandings(t *testing.T) {
	svc := usecase.NewLeagueService(memory.New(memory.DemoSeed()))

	teams, err := svc.ListStandings(t.Context(), demoRef)
	require.NoError(t, err)

	names := make([]string, 0, len(teams))
	for _, team := range teams {
		names = append(names, team.Name)
	}
	assert.Equal(t, []string{"Diamond Kings", "Bullpen Bandits", "Walk-Off Wonders", "Curveball Crew"}, names)
}

func TestLeagueService_GetTeam(t *testing.T) {
	svc := usecase.NewLeagueService(memory.New(memory.DemoSeed()))

	team, err := svc.GetTeam(t.Context(), demoRef, 2)
	require.NoError(t, err)
	assert.Equal(t, "Curveball Crew", team.Name)
	assert.Equal(t, 3, team.ProviderID)

	_, err = svc.GetTeam(t.Context(), demoRef, 4)
	assert.ErrorIs(t, err, usecase.ErrTeamNotFound)

	_, err = svc.GetTeam(t.Context(), demoRef, -1)
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestLeagueService_GetSettingsPassesProviderErrors(t *testing.T) {
	provider := usecasemock.NewLeagueProvider(t)
	provider.On("FetchSettings", mock.Anything, demoRef).Return(league.Settings{}, usecase.ErrUnauthorized).Once()

	_, err := usecase.NewLeagueService(provider).GetSettings(t.Context(), demoRef)
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestLeagueService_GetRoster(t *testing.T) {
	svc := usecase.NewLeagueService(memory.New(memory.DemoSeed()))

	snapshot, err := svc.GetRoster(t.Context(), demoRef, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, snapshot.ScoringPeriod)
	assert.Len(t, snapshot.Roster, 14)

	_, err = svc.GetRoster(t.Context(), demoRef, 0, -3)
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}
