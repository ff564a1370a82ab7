package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/league"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/player"
	basecache "github.com/riskibarqy/espn-fantasy-mcp/internal/platform/cache"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/usecase"
)

// LeagueProvider caches league settings in front of next. Rosters, teams
// and players always go to next, so lineup validation never sees a
// cached roster.
type LeagueProvider struct {
	next     usecase.LeagueProvider
	settings *basecache.Store[league.Settings]
}

func NewLeagueProvider(next usecase.LeagueProvider, settings *basecache.Store[league.Settings]) *LeagueProvider {
	return &LeagueProvider{next: next, settings: settings}
}

func (p *LeagueProvider) FetchSettings(ctx context.Context, ref usecase.LeagueRef) (league.Settings, error) {
	v, err := p.settings.GetOrLoad(ctx, settingsKey(ref), func(ctx context.Context) (league.Settings, error) {
		return p.next.FetchSettings(ctx, ref)
	})
	if err != nil {
		return league.Settings{}, err
	}
	return cloneSettings(v), nil
}

func (p *LeagueProvider) FetchTeams(ctx context.Context, ref usecase.LeagueRef) ([]league.Team, error) {
	return p.next.FetchTeams(ctx, ref)
}

func (p *LeagueProvider) FetchRoster(ctx context.Context, ref usecase.LeagueRef, teamIndex, scoringPeriod int) (usecase.RosterSnapshot, error) {
	return p.next.FetchRoster(ctx, ref, teamIndex, scoringPeriod)
}

func (p *LeagueProvider) FetchRosteredPlayers(ctx context.Context, ref usecase.LeagueRef) ([]player.Player, error) {
	return p.next.FetchRosteredPlayers(ctx, ref)
}

func (p *LeagueProvider) FetchFreeAgents(ctx context.Context, ref usecase.LeagueRef, query usecase.FreeAgentQuery) ([]player.Player, error) {
	return p.next.FetchFreeAgents(ctx, ref, query)
}

func (p *LeagueProvider) SubmitLineup(ctx context.Context, ref usecase.LeagueRef, submission usecase.LineupSubmission) (usecase.LineupReceipt, error) {
	return p.next.SubmitLineup(ctx, ref, submission)
}

func settingsKey(ref usecase.LeagueRef) string {
	return "settings:" + ref.LeagueID + ":" + strconv.Itoa(ref.SeasonYear)
}

func cloneSettings(in league.Settings) league.Settings {
	out := in
	if in.SlotCounts != nil {
		out.SlotCounts = make(map[int]int, len(in.SlotCounts))
		for k, v := range in.SlotCounts {
			out.SlotCounts[k] = v
		}
	}
	out.ScoringCategories = append([]league.ScoringCategory(nil), in.ScoringCategories...)
	return out
}
