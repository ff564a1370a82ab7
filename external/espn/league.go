package espn

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/league"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/lineup"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/player"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	viewSettings   = "mSettings"
	viewTeam       = "mTeam"
	viewRoster     = "mRoster"
	viewStandings  = "mStandings"
	viewPlayerInfo = "kona_player_info"
)

var _ usecase.LeagueProvider = (*Client)(nil)

func (c *Client) FetchSettings(ctx context.Context, ref usecase.LeagueRef) (league.Settings, error) {
	var payload leaguePayload
	if err := c.getJSON(ctx, "settings", ref, views(viewSettings), "", &payload); err != nil {
		return league.Settings{}, fmt.Errorf("fetch league settings league_id=%s: %w", ref.LeagueID, err)
	}
	return mapSettings(ref, payload), nil
}

func (c *Client) FetchTeams(ctx context.Context, ref usecase.LeagueRef) ([]league.Team, error) {
	var payload leaguePayload
	if err := c.getJSON(ctx, "teams", ref, views(viewTeam, viewStandings), "", &payload); err != nil {
		return nil, fmt.Errorf("fetch teams league_id=%s: %w", ref.LeagueID, err)
	}
	return mapTeams(payload), nil
}

// FetchRoster reads teams, rosters and settings in one request so the
// roster and the slot capacities describe the same moment.
func (c *Client) FetchRoster(ctx context.Context, ref usecase.LeagueRef, teamIndex, scoringPeriod int) (usecase.RosterSnapshot, error) {
	query := views(viewTeam, viewRoster, viewSettings)
	if scoringPeriod > 0 {
		query.Set("scoringPeriodId", strconv.Itoa(scoringPeriod))
	}

	var payload leaguePayload
	if err := c.getJSON(ctx, "roster", ref, query, "", &payload); err != nil {
		return usecase.RosterSnapshot{}, fmt.Errorf("fetch roster league_id=%s: %w", ref.LeagueID, err)
	}

	teams := mapTeams(payload)
	team, ok := league.TeamAt(teams, teamIndex)
	if !ok {
		return usecase.RosterSnapshot{}, fmt.Errorf("%w: team_id=%d, league has %d teams", usecase.ErrTeamNotFound, teamIndex, len(teams))
	}

	var entries []rosterEntryPayload
	for _, t := range payload.Teams {
		if t.ID == team.ProviderID && t.Roster != nil {
			entries = t.Roster.Entries
			break
		}
	}

	period := scoringPeriod
	if period == 0 {
		period = payload.ScoringPeriodID
	}
	settings := mapSettings(ref, payload)
	return usecase.RosterSnapshot{
		Team:          team,
		ScoringPeriod: period,
		Roster:        mapRoster(entries, team),
		Rules:         lineup.NewSlotRules(settings.SlotCounts),
	}, nil
}

// FetchRosteredPlayers lists every player on every team of the league.
func (c *Client) FetchRosteredPlayers(ctx context.Context, ref usecase.LeagueRef) ([]player.Player, error) {
	var payload leaguePayload
	if err := c.getJSON(ctx, "rostered_players", ref, views(viewTeam, viewRoster), "", &payload); err != nil {
		return nil, fmt.Errorf("fetch rostered players league_id=%s: %w", ref.LeagueID, err)
	}

	byProviderID := make(map[int]teamPayload, len(payload.Teams))
	for _, t := range payload.Teams {
		byProviderID[t.ID] = t
	}

	var out []player.Player
	for _, team := range mapTeams(payload) {
		t := byProviderID[team.ProviderID]
		if t.Roster == nil {
			continue
		}
		for _, e := range mapRoster(t.Roster.Entries, team) {
			out = append(out, e.Player)
		}
	}
	return out, nil
}

// FetchFreeAgents reads the FREEAGENT and WAIVERS pools ordered by
// percent owned.
func (c *Client) FetchFreeAgents(ctx context.Context, ref usecase.LeagueRef, query usecase.FreeAgentQuery) ([]player.Player, error) {
	size := query.Size
	if size <= 0 {
		size = usecase.DefaultFreeAgentSize
	}
	filter := freeAgentFilter{Players: freeAgentPlayersFilter{
		FilterStatus:  filterValues[string]{Value: []string{"FREEAGENT", "WAIVERS"}},
		Limit:         size,
		SortPercOwned: sortSpec{SortPriority: 1, SortAsc: false},
	}}
	if query.SlotID != nil {
		filter.Players.FilterSlotIDs = &filterValues[int]{Value: []int{*query.SlotID}}
	}
	header, err := sonic.MarshalString(filter)
	if err != nil {
		return nil, fmt.Errorf("encode free agent filter: %w", err)
	}

	var payload playersPayload
	if err := c.getJSON(ctx, "free_agents", ref, views(viewPlayerInfo), header, &payload); err != nil {
		return nil, fmt.Errorf("fetch free agents league_id=%s: %w", ref.LeagueID, err)
	}

	out := make([]player.Player, 0, len(payload.Players))
	for _, entry := range payload.Players {
		p := mapPlayer(entry, "")
		if p.ID == 0 || p.Name == "" || p.Status == player.StatusRostered {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// SubmitLineup posts one ROSTER transaction with a LINEUP item per move.
func (c *Client) SubmitLineup(ctx context.Context, ref usecase.LeagueRef, submission usecase.LineupSubmission) (usecase.LineupReceipt, error) {
	body, err := encodeLineupTransaction(c.swid, submission)
	if err != nil {
		return usecase.LineupReceipt{}, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
	}

	var receipt transactionReceiptPayload
	if err := c.postJSON(ctx, "submit_lineup", ref, "/transactions/", body, &receipt); err != nil {
		return usecase.LineupReceipt{}, fmt.Errorf("submit lineup team_id=%d: %w", submission.Team.ProviderID, err)
	}

	period := receipt.ScoringPeriodID
	if period == 0 {
		period = submission.ScoringPeriod
	}
	return usecase.LineupReceipt{
		TransactionID: receipt.ID,
		Status:        receipt.Status,
		ScoringPeriod: period,
	}, nil
}

func encodeLineupTransaction(swid string, submission usecase.LineupSubmission) ([]byte, error) {
	payload := lineupTransactionPayload{
		IsLeagueManager: false,
		TeamID:          submission.Team.ProviderID,
		MemberID:        swid,
		Type:            "ROSTER",
		ScoringPeriodID: submission.ScoringPeriod,
		ExecutionType:   "EXECUTE",
		Items:           make([]lineupItemPayload, 0, len(submission.Moves)),
	}
	for _, m := range submission.Moves {
		payload.Items = append(payload.Items, lineupItemPayload{
			PlayerID:         m.PlayerID,
			Type:             "LINEUP",
			FromLineupSlotID: m.FromSlot,
			ToLineupSlotID:   m.ToSlot,
		})
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("encode lineup transaction: %w", err)
	}
	return append([]byte(nil), buf.B...), nil
}

func views(names ...string) url.Values {
	values := url.Values{}
	for _, name := range names {
		values.Add("view", name)
	}
	return values
}
