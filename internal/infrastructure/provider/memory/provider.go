package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/league"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/lineup"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/player"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/usecase"
)

// Operation names a provider method for failure injection and call counts.
type Operation string

const (
	OpFetchSettings        Operation = "FetchSettings"
	OpFetchTeams           Operation = "FetchTeams"
	OpFetchRoster          Operation = "FetchRoster"
	OpFetchRosteredPlayers Operation = "FetchRosteredPlayers"
	OpFetchFreeAgents      Operation = "FetchFreeAgents"
	OpSubmitLineup         Operation = "SubmitLineup"
)

// Seed is the initial state of one league.
type Seed struct {
	Settings   league.Settings
	Teams      []league.Team
	Rosters    map[int]lineup.Roster
	FreeAgents []player.Player
}

type leagueState struct {
	settings   league.Settings
	teams      []league.Team
	rosters    map[int]lineup.Roster
	freeAgents []player.Player
}

// Provider serves seeded leagues and applies submitted lineups to its own
// state, so a commit is visible to the next read.
type Provider struct {
	mu          sync.RWMutex
	leagues     map[usecase.LeagueRef]*leagueState
	failures    map[Operation]error
	calls       map[Operation]int
	submissions []usecase.LineupSubmission
	nextTxn     int
}

func New(seeds ...Seed) *Provider {
	p := &Provider{
		leagues:  make(map[usecase.LeagueRef]*leagueState, len(seeds)),
		failures: make(map[Operation]error),
		calls:    make(map[Operation]int),
	}
	for _, seed := range seeds {
		ref := usecase.LeagueRef{LeagueID: seed.Settings.LeagueID, SeasonYear: seed.Settings.SeasonYear}
		teams := league.OrderTeams(seed.Teams)
		rosters := make(map[int]lineup.Roster, len(seed.Rosters))
		for idx, roster := range seed.Rosters {
			rosters[idx] = attachTeam(roster.Clone(), teams, idx)
		}
		p.leagues[ref] = &leagueState{
			settings:   seed.Settings,
			teams:      teams,
			rosters:    rosters,
			freeAgents: append([]player.Player(nil), seed.FreeAgents...),
		}
	}
	return p
}

// Fail makes every later call of op return err until it is cleared with a
// nil err.
func (p *Provider) Fail(op Operation, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err == nil {
		delete(p.failures, op)
		return
	}
	p.failures[op] = err
}

func (p *Provider) Calls(op Operation) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.calls[op]
}

func (p *Provider) Submissions() []usecase.LineupSubmission {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]usecase.LineupSubmission(nil), p.submissions...)
}

// MovePlayer changes a slot outside of any lineup transaction, the way a
// manager editing the lineup on the website would.
func (p *Provider) MovePlayer(ref usecase.LeagueRef, teamIndex int, playerID int64, slot int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	state, ok := p.leagues[ref]
	if !ok {
		return usecase.ErrLeagueNotFound
	}
	roster := state.rosters[teamIndex]
	i, ok := roster.IndexOf(playerID)
	if !ok {
		return fmt.Errorf("player %d is not on team %d", playerID, teamIndex)
	}
	roster[i].Slot = slot
	return nil
}

func (p *Provider) FetchSettings(_ context.Context, ref usecase.LeagueRef) (league.Settings, error) {
	state, err := p.begin(OpFetchSettings, ref)
	if err != nil {
		return league.Settings{}, err
	}
	defer p.mu.RUnlock()

	out := state.settings
	out.SlotCounts = lineup.NewSlotRules(state.settings.SlotCounts).Counts()
	out.ScoringCategories = append([]league.ScoringCategory(nil), state.settings.ScoringCategories...)
	return out, nil
}

func (p *Provider) FetchTeams(_ context.Context, ref usecase.LeagueRef) ([]league.Team, error) {
	state, err := p.begin(OpFetchTeams, ref)
	if err != nil {
		return nil, err
	}
	defer p.mu.RUnlock()

	return append([]league.Team(nil), state.teams...), nil
}

func (p *Provider) FetchRoster(_ context.Context, ref usecase.LeagueRef, teamIndex, scoringPeriod int) (usecase.RosterSnapshot, error) {
	state, err := p.begin(OpFetchRoster, ref)
	if err != nil {
		return usecase.RosterSnapshot{}, err
	}
	defer p.mu.RUnlock()

	team, ok := league.TeamAt(state.teams, teamIndex)
	if !ok {
		return usecase.RosterSnapshot{}, fmt.Errorf("%w: team_id=%d", usecase.ErrTeamNotFound, teamIndex)
	}
	if scoringPeriod == 0 {
		scoringPeriod = state.settings.CurrentScoringPeriod
	}
	return usecase.RosterSnapshot{
		Team:          team,
		ScoringPeriod: scoringPeriod,
		Roster:        state.rosters[teamIndex].Clone(),
		Rules:         lineup.NewSlotRules(state.settings.SlotCounts),
	}, nil
}

func (p *Provider) FetchRosteredPlayers(_ context.Context, ref usecase.LeagueRef) ([]player.Player, error) {
	state, err := p.begin(OpFetchRosteredPlayers, ref)
	if err != nil {
		return nil, err
	}
	defer p.mu.RUnlock()

	var out []player.Player
	for _, team := range state.teams {
		for _, e := range state.rosters[team.Index] {
			out = append(out, e.Player.Clone())
		}
	}
	return out, nil
}

func (p *Provider) FetchFreeAgents(_ context.Context, ref usecase.LeagueRef, query usecase.FreeAgentQuery) ([]player.Player, error) {
	state, err := p.begin(OpFetchFreeAgents, ref)
	if err != nil {
		return nil, err
	}
	defer p.mu.RUnlock()

	out := make([]player.Player, 0, len(state.freeAgents))
	for _, fa := range state.freeAgents {
		if query.SlotID != nil && !fa.EligibleFor(*query.SlotID) {
			continue
		}
		out = append(out, fa.Clone())
		if query.Size > 0 && len(out) == query.Size {
			break
		}
	}
	return out, nil
}

// SubmitLineup records the submission and applies its moves as given.
func (p *Provider) SubmitLineup(_ context.Context, ref usecase.LeagueRef, submission usecase.LineupSubmission) (usecase.LineupReceipt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls[OpSubmitLineup]++
	if err := p.failures[OpSubmitLineup]; err != nil {
		return usecase.LineupReceipt{}, err
	}
	state, ok := p.leagues[ref]
	if !ok {
		return usecase.LineupReceipt{}, fmt.Errorf("%w: league_id=%s", usecase.ErrLeagueNotFound, ref.LeagueID)
	}

	roster := state.rosters[submission.Team.Index]
	for _, m := range submission.Moves {
		i, ok := roster.IndexOf(m.PlayerID)
		if !ok || roster[i].Slot != m.FromSlot {
			return usecase.LineupReceipt{}, fmt.Errorf("%w: player %d cannot move from slot %d", usecase.ErrRemoteRejected, m.PlayerID, m.FromSlot)
		}
	}
	for _, m := range submission.Moves {
		i, _ := roster.IndexOf(m.PlayerID)
		roster[i].Slot = m.ToSlot
	}

	p.submissions = append(p.submissions, submission)
	p.nextTxn++
	return usecase.LineupReceipt{
		TransactionID: fmt.Sprintf("memory-txn-%d", p.nextTxn),
		Status:        "EXECUTED",
		ScoringPeriod: submission.ScoringPeriod,
	}, nil
}

// begin counts the call and returns the league state with the read lock
// held on success.
func (p *Provider) begin(op Operation, ref usecase.LeagueRef) (*leagueState, error) {
	p.mu.Lock()
	p.calls[op]++
	failure := p.failures[op]
	p.mu.Unlock()
	if failure != nil {
		return nil, failure
	}

	p.mu.RLock()
	state, ok := p.leagues[ref]
	if !ok {
		p.mu.RUnlock()
		return nil, fmt.Errorf("%w: league_id=%s season=%d", usecase.ErrLeagueNotFound, ref.LeagueID, ref.SeasonYear)
	}
	return state, nil
}

func attachTeam(roster lineup.Roster, teams []league.Team, index int) lineup.Roster {
	team, ok := league.TeamAt(teams, index)
	if !ok {
		return roster
	}
	for i := range roster {
		roster[i].Player.Status = player.StatusRostered
		roster[i].Player.Team = &player.TeamRef{
			Index:      team.Index,
			ProviderID: team.ProviderID,
			Name:       team.Name,
			Abbrev:     team.Abbrev,
		}
	}
	return roster
}
