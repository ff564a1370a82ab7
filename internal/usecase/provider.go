package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/league"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/lineup"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/player"
)

// LeagueRef addresses one league in one season.
type LeagueRef struct {
	LeagueID   string
	SeasonYear int
}

func (r LeagueRef) Validate() error {
	if strings.TrimSpace(r.LeagueID) == "" {
		return fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}
	if r.SeasonYear <= 0 {
		return fmt.Errorf("%w: season_year must be positive", ErrInvalidInput)
	}
	return nil
}

// RosterSnapshot is the live lineup of one team. ScoringPeriod is the
// period the provider reported for the read.
type RosterSnapshot struct {
	Team          league.Team
	ScoringPeriod int
	Roster        lineup.Roster
	Rules         lineup.SlotRules
}

type FreeAgentQuery struct {
	Size   int
	SlotID *int
}

type LineupSubmission struct {
	Team          league.Team
	ScoringPeriod int
	Moves         []lineup.Move
}

// LineupReceipt is the provider's acknowledgement of a lineup transaction.
type LineupReceipt struct {
	TransactionID string
	Status        string
	ScoringPeriod int
}

// LeagueProvider is the boundary to the fantasy data provider. Errors are
// wrapped with the sentinels in errors.go.
type LeagueProvider interface {
	FetchSettings(ctx context.Context, ref LeagueRef) (league.Settings, error)
	FetchTeams(ctx context.Context, ref LeagueRef) ([]league.Team, error)
	// FetchRoster reads the roster of the team at teamIndex. A zero
	// scoringPeriod means the league's current period.
	FetchRoster(ctx context.Context, ref LeagueRef, teamIndex, scoringPeriod int) (RosterSnapshot, error)
	FetchRosteredPlayers(ctx context.Context, ref LeagueRef) ([]player.Player, error)
	FetchFreeAgents(ctx context.Context, ref LeagueRef, query FreeAgentQuery) ([]player.Player, error)
	SubmitLineup(ctx context.Context, ref LeagueRef, submission LineupSubmission) (LineupReceipt, error)
}

type freshReadKey struct{}

// WithFreshRead marks ctx so a provider does not answer the read from a
// request that was already in flight when the call was made.
func WithFreshRead(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshReadKey{}, true)
}

// IsFreshRead reports whether ctx was marked by WithFreshRead.
func IsFreshRead(ctx context.Context) bool {
	fresh, _ := ctx.Value(freshReadKey{}).(bool)
	return fresh
}
