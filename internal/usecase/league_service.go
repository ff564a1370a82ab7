package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/league"
	"go.opentelemetry.io/otel/attribute"
)

type LeagueService struct {
	provider LeagueProvider
}

func NewLeagueService(provider LeagueProvider) *LeagueService {
	return &LeagueService{provider: provider}
}

func (s *LeagueService) GetSettings(ctx context.Context, ref LeagueRef) (out league.Settings, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetSettings", attribute.String("league.id", ref.LeagueID))
	defer func() { endSpan(span, err) }()

	if err := ref.Validate(); err != nil {
		return league.Settings{}, err
	}
	settings, err := s.provider.FetchSettings(ctx, ref)
	if err != nil {
		return league.Settings{}, fmt.Errorf("fetch settings: %w", err)
	}
	return settings, nil
}

// ListStandings returns the league's teams ordered by standing.
func (s *LeagueService) ListStandings(ctx context.Context, ref LeagueRef) (out []league.Team, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListStandings", attribute.String("league.id", ref.LeagueID))
	defer func() { endSpan(span, err) }()

	if err := ref.Validate(); err != nil {
		return nil, err
	}
	teams, err := s.provider.FetchTeams(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}
	return league.Standings(teams), nil
}

func (s *LeagueService) GetTeam(ctx context.Context, ref LeagueRef, teamIndex int) (out league.Team, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetTeam",
		attribute.String("league.id", ref.LeagueID),
		attribute.Int("team.index", teamIndex),
	)
	defer func() { endSpan(span, err) }()

	if err := ref.Validate(); err != nil {
		return league.Team{}, err
	}
	if teamIndex < 0 {
		return league.Team{}, fmt.Errorf("%w: team_id must not be negative", ErrInvalidInput)
	}
	teams, err := s.provider.FetchTeams(ctx, ref)
	if err != nil {
		return league.Team{}, fmt.Errorf("fetch teams: %w", err)
	}
	team, ok := league.TeamAt(teams, teamIndex)
	if !ok {
		return league.Team{}, fmt.Errorf("%w: team_id=%d, league has %d teams", ErrTeamNotFound, teamIndex, len(teams))
	}
	return team, nil
}

// GetRoster reads one team's lineup. A zero scoringPeriod reads the
// current period.
func (s *LeagueService) GetRoster(ctx context.Context, ref LeagueRef, teamIndex, scoringPeriod int) (out RosterSnapshot, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetRoster",
		attribute.String("league.id", ref.LeagueID),
		attribute.Int("team.index", teamIndex),
	)
	defer func() { endSpan(span, err) }()

	if err := ref.Validate(); err != nil {
		return RosterSnapshot{}, err
	}
	if teamIndex < 0 {
		return RosterSnapshot{}, fmt.Errorf("%w: team_id must not be negative", ErrInvalidInput)
	}
	if scoringPeriod < 0 {
		return RosterSnapshot{}, fmt.Errorf("%w: scoring_period_id must not be negative", ErrInvalidInput)
	}
	snapshot, err := s.provider.FetchRoster(ctx, ref, teamIndex, scoringPeriod)
	if err != nil {
		return RosterSnapshot{}, fmt.Errorf("fetch roster: %w", err)
	}
	return snapshot, nil
}
