package mcpapi

import (
	"sort"
	"strconv"

	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/league"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/lineup"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/player"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/usecase"
)

type slotCountDTO struct {
	SlotID int    `json:"slot_id"`
	Slot   string `json:"slot"`
	Count  int    `json:"count"`
}

type statCategoryDTO struct {
	StatID int    `json:"stat_id"`
	Label  string `json:"label"`
}

type statCategoriesDTO struct {
	Batting  []statCategoryDTO `json:"batting"`
	Pitching []statCategoryDTO `json:"pitching"`
}

type settingsDTO struct {
	LeagueID            string                    `json:"league_id"`
	SeasonYear          int                       `json:"season_year"`
	Name                string                    `json:"name"`
	TeamCount           int                       `json:"team_count"`
	PlayoffTeamCount    int                       `json:"playoff_team_count"`
	RegularSeasonLength int                       `json:"reg_season_count"`
	ScoringType         string                    `json:"scoring_type"`
	ExperienceType      string                    `json:"experience_type,omitempty"`
	IsPublic            bool                      `json:"is_public"`
	RestrictionType     string                    `json:"restriction_type,omitempty"`
	ScoringPeriodID     int                       `json:"scoring_period_id"`
	MatchupPeriodID     int                       `json:"matchup_period_id"`
	LineupSlots         []slotCountDTO            `json:"lineup_slots"`
	StatCategories      statCategoriesDTO         `json:"stat_categories"`
	StatIDMap           map[string]string         `json:"stat_id_map"`
	Sections            map[string]map[string]any `json:"settings"`
}

type teamDTO struct {
	TeamID         int      `json:"team_id"`
	ProviderTeamID int      `json:"provider_team_id"`
	Name           string   `json:"name"`
	Abbrev         string   `json:"abbrev"`
	Owners         []string `json:"owners"`
	PrimaryOwner   string   `json:"primary_owner,omitempty"`
	Wins           int      `json:"wins"`
	Losses         int      `json:"losses"`
	Ties           int      `json:"ties"`
	PointsFor      float64  `json:"points_for"`
	PointsAgainst  float64  `json:"points_against"`
	Standing       int      `json:"standing"`
}

type playerDTO struct {
	PlayerID          int64    `json:"player_id"`
	Name              string   `json:"name"`
	ProTeam           string   `json:"pro_team"`
	Position          string   `json:"position"`
	EligibleSlots     []string `json:"eligible_slots"`
	InjuryStatus      string   `json:"injury_status"`
	Status            string   `json:"status"`
	FantasyTeamID     *int     `json:"fantasy_team_id,omitempty"`
	FantasyTeamName   string   `json:"fantasy_team_name,omitempty"`
	FantasyTeamAbbrev string   `json:"fantasy_team_abbrev,omitempty"`
}

type rosterEntryDTO struct {
	SlotID int    `json:"slot_id"`
	Slot   string `json:"slot"`
	playerDTO
}

type rosterDTO struct {
	Team            teamDTO          `json:"team"`
	ScoringPeriodID int              `json:"scoring_period_id"`
	SlotCapacities  []slotCountDTO   `json:"slot_capacities"`
	Entries         []rosterEntryDTO `json:"entries"`
}

type suggestionDTO struct {
	Score  int       `json:"score"`
	Player playerDTO `json:"player"`
}

type playerLookupDTO struct {
	Query       string          `json:"query"`
	Found       bool            `json:"found"`
	Player      *playerDTO      `json:"player,omitempty"`
	Suggestions []suggestionDTO `json:"suggestions"`
	Searched    int             `json:"searched"`
}

type freeAgentsDTO struct {
	Count   int         `json:"count"`
	Players []playerDTO `json:"players"`
}

type moveDTO struct {
	PlayerID   int64  `json:"player_id"`
	PlayerName string `json:"player_name,omitempty"`
	FromSlotID int    `json:"from_slot"`
	FromSlot   string `json:"from_slot_label"`
	ToSlotID   int    `json:"to_slot"`
	ToSlot     string `json:"to_slot_label"`
}

type violationDTO struct {
	Kind      lineup.ErrorKind `json:"kind"`
	MoveIndex *int             `json:"move_index,omitempty"`
	PlayerID  int64            `json:"player_id,omitempty"`
	SlotID    int              `json:"slot_id"`
	Slot      string           `json:"slot"`
	PlayerIDs []int64          `json:"player_ids,omitempty"`
	Message   string           `json:"message"`
}

type transactionDTO struct {
	TransactionID   string `json:"transaction_id"`
	Status          string `json:"status"`
	ScoringPeriodID int    `json:"scoring_period_id"`
}

// lineupDTO is the modify_lineup result. ProjectedRoster is reported for
// previews and rejections; Roster after a commit.
type lineupDTO struct {
	OperationID     string           `json:"operation_id"`
	State           string           `json:"state"`
	Valid           bool             `json:"valid"`
	Committed       bool             `json:"committed"`
	Team            teamDTO          `json:"team"`
	ScoringPeriodID int              `json:"scoring_period_id"`
	Moves           []moveDTO        `json:"moves"`
	Errors          []violationDTO   `json:"errors"`
	ProjectedRoster []rosterEntryDTO `json:"projected_roster,omitempty"`
	Roster          []rosterEntryDTO `json:"roster,omitempty"`
	RosterSource    string           `json:"roster_source,omitempty"`
	Transaction     *transactionDTO  `json:"transaction,omitempty"`
	Instructions    string           `json:"instructions,omitempty"`
}

func settingsToDTO(s league.Settings) settingsDTO {
	out := settingsDTO{
		LeagueID:            s.LeagueID,
		SeasonYear:          s.SeasonYear,
		Name:                s.Name,
		TeamCount:           s.Size,
		PlayoffTeamCount:    s.PlayoffTeamCount,
		RegularSeasonLength: s.MatchupPeriodCount,
		ScoringType:         s.ScoringType,
		ExperienceType:      s.ExperienceType,
		IsPublic:            s.IsPublic,
		RestrictionType:     s.RestrictionType,
		ScoringPeriodID:     s.CurrentScoringPeriod,
		MatchupPeriodID:     s.CurrentMatchupPeriod,
		LineupSlots:         slotCountsToDTO(s.SlotCounts),
		StatCategories: statCategoriesDTO{
			Batting:  []statCategoryDTO{},
			Pitching: []statCategoryDTO{},
		},
		StatIDMap: make(map[string]string, len(s.StatLabels)),
		Sections:  s.Sections,
	}
	for _, c := range s.ScoringCategories {
		item := statCategoryDTO{StatID: c.StatID, Label: c.Label}
		if c.Pitching {
			out.StatCategories.Pitching = append(out.StatCategories.Pitching, item)
		} else {
			out.StatCategories.Batting = append(out.StatCategories.Batting, item)
		}
	}
	for id, label := range s.StatLabels {
		out.StatIDMap[strconv.Itoa(id)] = label
	}
	if out.Sections == nil {
		out.Sections = map[string]map[string]any{}
	}
	return out
}

func slotCountsToDTO(counts map[int]int) []slotCountDTO {
	out := make([]slotCountDTO, 0, len(counts))
	for slot, n := range counts {
		out = append(out, slotCountDTO{SlotID: slot, Slot: lineup.SlotLabel(slot), Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlotID < out[j].SlotID })
	return out
}

func teamToDTO(t league.Team) teamDTO {
	owners := t.Owners
	if owners == nil {
		owners = []string{}
	}
	return teamDTO{
		TeamID:         t.Index,
		ProviderTeamID: t.ProviderID,
		Name:           t.Name,
		Abbrev:         t.Abbrev,
		Owners:         owners,
		PrimaryOwner:   t.PrimaryOwner,
		Wins:           t.Wins,
		Losses:         t.Losses,
		Ties:           t.Ties,
		PointsFor:      t.PointsFor,
		PointsAgainst:  t.PointsAgainst,
		Standing:       t.Standing,
	}
}

func teamsToDTO(teams []league.Team) []teamDTO {
	out := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamToDTO(t))
	}
	return out
}

func playerToDTO(p player.Player) playerDTO {
	out := playerDTO{
		PlayerID:      p.ID,
		Name:          p.Name,
		ProTeam:       p.ProTeam,
		Position:      p.Position,
		EligibleSlots: make([]string, 0, len(p.EligibleSlots)),
		InjuryStatus:  p.InjuryStatus,
		Status:        string(p.Status),
	}
	for _, slot := range p.EligibleSlots {
		out.EligibleSlots = append(out.EligibleSlots, lineup.SlotLabel(slot))
	}
	if p.Team != nil {
		index := p.Team.Index
		out.FantasyTeamID = &index
		out.FantasyTeamName = p.Team.Name
		out.FantasyTeamAbbrev = p.Team.Abbrev
	}
	return out
}

func playersToDTO(players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(p))
	}
	return out
}

func rosterEntriesToDTO(roster lineup.Roster) []rosterEntryDTO {
	out := make([]rosterEntryDTO, 0, len(roster))
	for _, e := range roster {
		out = append(out, rosterEntryDTO{
			SlotID:    e.Slot,
			Slot:      lineup.SlotLabel(e.Slot),
			playerDTO: playerToDTO(e.Player),
		})
	}
	return out
}

func rosterToDTO(s usecase.RosterSnapshot) rosterDTO {
	return rosterDTO{
		Team:            teamToDTO(s.Team),
		ScoringPeriodID: s.ScoringPeriod,
		SlotCapacities:  slotCountsToDTO(s.Rules.Counts()),
		Entries:         rosterEntriesToDTO(s.Roster),
	}
}

func lookupToDTO(l usecase.PlayerLookup) playerLookupDTO {
	out := playerLookupDTO{
		Query:       l.Query,
		Found:       l.Found,
		Suggestions: make([]suggestionDTO, 0, len(l.Suggestions)),
		Searched:    l.Searched,
	}
	if l.Player != nil {
		p := playerToDTO(*l.Player)
		out.Player = &p
	}
	for _, s := range l.Suggestions {
		out.Suggestions = append(out.Suggestions, suggestionDTO{Score: s.Score, Player: playerToDTO(s.Player)})
	}
	return out
}

const confirmInstructions = "No changes were made. Call modify_lineup again with the same moves and confirm=true to apply them."

func lineupToDTO(o usecase.LineupOutcome) lineupDTO {
	out := lineupDTO{
		OperationID:     o.OperationID,
		State:           string(o.State),
		Valid:           o.Validation.Valid,
		Committed:       o.State == usecase.StateCommitted,
		Team:            teamToDTO(o.Team),
		ScoringPeriodID: o.ScoringPeriod,
		Moves:           make([]moveDTO, 0, len(o.Moves)),
		Errors:          make([]violationDTO, 0, len(o.Validation.Violations)),
	}
	for _, m := range o.Moves {
		out.Moves = append(out.Moves, moveDTO{
			PlayerID:   m.PlayerID,
			PlayerName: m.PlayerName,
			FromSlotID: m.FromSlot,
			FromSlot:   lineup.SlotLabel(m.FromSlot),
			ToSlotID:   m.ToSlot,
			ToSlot:     lineup.SlotLabel(m.ToSlot),
		})
	}
	for _, v := range o.Validation.Violations {
		item := violationDTO{
			Kind:      v.Kind,
			PlayerID:  v.PlayerID,
			SlotID:    v.Slot,
			Slot:      lineup.SlotLabel(v.Slot),
			PlayerIDs: v.PlayerIDs,
			Message:   v.Message,
		}
		if v.MoveIndex >= 0 {
			index := v.MoveIndex
			item.MoveIndex = &index
		}
		out.Errors = append(out.Errors, item)
	}

	switch o.State {
	case usecase.StateCommitted:
		out.Roster = rosterEntriesToDTO(o.Roster)
		out.RosterSource = string(o.RosterSource)
		if o.Receipt != nil {
			out.Transaction = &transactionDTO{
				TransactionID:   o.Receipt.TransactionID,
				Status:          o.Receipt.Status,
				ScoringPeriodID: o.Receipt.ScoringPeriod,
			}
		}
	default:
		out.ProjectedRoster = rosterEntriesToDTO(o.Roster)
	}
	if o.State == usecase.StatePreviewed {
		out.Instructions = confirmInstructions
	}
	return out
}
