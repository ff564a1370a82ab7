package espn

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/league"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/lineup"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/player"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/usecase"
)

var positionLabels = map[int]string{
	1:  "SP",
	2:  "C",
	3:  "1B",
	4:  "2B",
	5:  "3B",
	6:  "SS",
	7:  "LF",
	8:  "CF",
	9:  "RF",
	10: "DH",
	11: "RP",
}

var proTeamAbbrevs = map[int]string{
	0: "FA", 1: "Bal", 2: "Bos", 3: "LAA", 4: "ChW", 5: "Cle", 6: "Det", 7: "KC",
	8: "Mil", 9: "Min", 10: "NYY", 11: "Oak", 12: "Sea", 13: "Tex", 14: "Tor",
	15: "Atl", 16: "ChC", 17: "Cin", 18: "Hou", 19: "LAD", 20: "Wsh", 21: "NYM",
	22: "Phi", 23: "Pit", 24: "StL", 25: "SD", 26: "SF", 27: "Col", 28: "Mia",
	29: "Ari", 30: "TB",
}

// statLabels is ESPN's baseball stat id vocabulary.
var statLabels = map[int]string{
	0: "AB", 1: "H", 2: "AVG", 3: "2B", 4: "3B", 5: "HR", 6: "XBH", 7: "1B",
	8: "TB", 9: "SLG", 10: "B_BB", 11: "B_IBB", 12: "HBP", 13: "SF", 14: "SH",
	15: "SAC", 16: "PA", 17: "OBP", 18: "OPS", 19: "RC", 20: "R", 21: "RBI",
	23: "SB", 24: "CS", 25: "SB-CS", 26: "GDP", 27: "B_SO", 28: "PS", 29: "PPA",
	31: "CYC", 32: "GP", 33: "GS", 34: "OUTS", 35: "TBF", 36: "P", 37: "P_H",
	38: "OBA", 39: "P_BB", 40: "P_IBB", 41: "WHIP", 42: "HBP", 43: "OOBP",
	44: "P_R", 45: "ER", 46: "P_HR", 47: "ERA", 48: "K", 49: "K/9", 50: "WP",
	51: "BLK", 52: "PK", 53: "W", 54: "L", 55: "WPCT", 56: "SVO", 57: "SV",
	58: "BLSV", 59: "SV%", 60: "HLD", 62: "CG", 63: "QS", 65: "NH", 66: "PG",
	67: "TC", 68: "PO", 69: "A", 70: "OFA", 71: "FPCT", 72: "E", 73: "DP",
	81: "G", 82: "K/BB", 83: "SVHD", 99: "STARTER",
}

var pitchingStats = map[string]struct{}{
	"GP": {}, "GS": {}, "OUTS": {}, "TBF": {}, "P_H": {}, "P_BB": {}, "WHIP": {},
	"P_R": {}, "ER": {}, "P_HR": {}, "ERA": {}, "K": {}, "W": {}, "L": {},
	"SV": {}, "QS": {}, "HLD": {}, "BLSV": {}, "K/BB": {}, "SVHD": {}, "WP": {},
	"BLK": {}, "PK": {}, "SVO": {}, "CG": {}, "WPCT": {}, "OBA": {}, "OOBP": {},
	"P_IBB": {}, "SV%": {}, "K/9": {}, "NH": {}, "PG": {},
}

var settingsSections = []string{
	"acquisitionSettings",
	"draftSettings",
	"financeSettings",
	"rosterSettings",
	"scheduleSettings",
	"scoringSettings",
	"tradeSettings",
}

func StatLabel(id int) string {
	if label, ok := statLabels[id]; ok {
		return label
	}
	return strconv.Itoa(id)
}

func mapSettings(ref usecase.LeagueRef, payload leaguePayload) league.Settings {
	raw := payload.Settings
	schedule := getMap(raw, "scheduleSettings")
	scoring := getMap(raw, "scoringSettings")
	roster := getMap(raw, "rosterSettings")

	out := league.Settings{
		LeagueID:             ref.LeagueID,
		SeasonYear:           ref.SeasonYear,
		Name:                 getString(raw, "name"),
		Size:                 getInt(raw, "size"),
		IsPublic:             getBool(raw, "isPublic", true),
		RestrictionType:      getString(raw, "restrictionType"),
		ExperienceType:       getString(raw, "experienceType"),
		ScoringType:          getString(scoring, "scoringType"),
		MatchupPeriodCount:   getInt(schedule, "matchupPeriodCount"),
		PlayoffTeamCount:     getInt(schedule, "playoffTeamCount"),
		CurrentScoringPeriod: payload.ScoringPeriodID,
		CurrentMatchupPeriod: payload.Status.CurrentMatchupPeriod,
		SlotCounts:           slotCounts(getMap(roster, "lineupSlotCounts")),
		ScoringCategories:    scoringCategories(getSlice(scoring, "scoringItems")),
		StatLabels:           make(map[int]string, len(statLabels)),
		Sections:             make(map[string]map[string]any, len(settingsSections)),
	}
	if out.Size == 0 {
		out.Size = len(payload.Teams)
	}
	for id, label := range statLabels {
		out.StatLabels[id] = label
	}
	for _, key := range settingsSections {
		if section := getMap(raw, key); section != nil {
			out.Sections[strings.TrimSuffix(key, "Settings")] = section
		}
	}
	return out
}

// slotCounts parses lineupSlotCounts, whose keys are slot ids as strings.
func slotCounts(raw map[string]any) map[int]int {
	out := make(map[int]int, len(raw))
	for key := range raw {
		slot, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			continue
		}
		out[slot] = getInt(raw, key)
	}
	return out
}

func scoringCategories(items []any) []league.ScoringCategory {
	out := make([]league.ScoringCategory, 0, len(items))
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := m["statId"]; !ok {
			continue
		}
		id := getInt(m, "statId")
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		label := StatLabel(id)
		_, pitching := pitchingStats[label]
		out = append(out, league.ScoringCategory{StatID: id, Label: label, Pitching: pitching})
	}
	return out
}

// mapTeams converts ESPN teams, orders them by provider id and resolves
// owner member ids to display names.
func mapTeams(payload leaguePayload) []league.Team {
	members := make(map[string]string, len(payload.Members))
	for _, m := range payload.Members {
		members[m.ID] = memberName(m)
	}
	ownerName := func(id string) string {
		if name, ok := members[id]; ok && name != "" {
			return name
		}
		return id
	}

	teams := make([]league.Team, 0, len(payload.Teams))
	for _, t := range payload.Teams {
		owners := make([]string, 0, len(t.Owners))
		for _, id := range t.Owners {
			owners = append(owners, ownerName(id))
		}
		primary := ""
		if t.PrimaryOwner != "" {
			primary = ownerName(t.PrimaryOwner)
		} else if len(owners) > 0 {
			primary = owners[0]
		}
		rec := t.Record.Overall
		teams = append(teams, league.Team{
			ProviderID:    t.ID,
			Name:          teamName(t),
			Abbrev:        strings.TrimSpace(t.Abbrev),
			Owners:        owners,
			PrimaryOwner:  primary,
			Wins:          rec.Wins,
			Losses:        rec.Losses,
			Ties:          rec.Ties,
			PointsFor:     rec.PointsFor,
			PointsAgainst: rec.PointsAgainst,
			Standing:      firstPositive(t.RankCalculatedFinal, t.PlayoffSeed, t.CurrentProjectedRank),
		})
	}
	return league.OrderTeams(teams)
}

func mapRoster(entries []rosterEntryPayload, team league.Team) lineup.Roster {
	ref := teamRef(team)
	out := make(lineup.Roster, 0, len(entries))
	for _, e := range entries {
		p := mapPlayer(e.PlayerPoolEntry, e.InjuryStatus)
		if p.ID == 0 {
			p.ID = e.PlayerID
		}
		p.Status = player.StatusRostered
		p.Team = ref
		out = append(out, lineup.Entry{Player: p, Slot: e.LineupSlotID})
	}
	return out
}

// mapPlayer maps a player pool entry. Ownership is filled in by the
// caller except for the free-agent pools. fallbackInjury is used when the
// pool entry carries no injury status; ACTIVE applies when both are blank.
func mapPlayer(entry playerEntryPayload, fallbackInjury string) player.Player {
	src := entry.Player
	id := src.ID
	if id == 0 {
		id = entry.ID
	}
	injury := strings.TrimSpace(src.InjuryStatus)
	if injury == "" {
		injury = strings.TrimSpace(fallbackInjury)
	}
	if injury == "" {
		injury = "ACTIVE"
	}
	return player.Player{
		ID:            id,
		Name:          strings.TrimSpace(src.FullName),
		ProTeam:       proTeamAbbrev(src.ProTeamID),
		Position:      positionLabel(src.DefaultPositionID),
		EligibleSlots: append([]int(nil), src.EligibleSlots...),
		InjuryStatus:  injury,
		Status:        poolStatus(entry.Status),
	}
}

func poolStatus(status string) player.Status {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "WAIVERS":
		return player.StatusWaivers
	case "ONTEAM":
		return player.StatusRostered
	default:
		return player.StatusFreeAgent
	}
}

func teamRef(team league.Team) *player.TeamRef {
	return &player.TeamRef{
		Index:      team.Index,
		ProviderID: team.ProviderID,
		Name:       team.Name,
		Abbrev:     team.Abbrev,
	}
}

func teamName(t teamPayload) string {
	if name := strings.TrimSpace(t.Name); name != "" {
		return name
	}
	name := strings.TrimSpace(strings.TrimSpace(t.Location) + " " + strings.TrimSpace(t.Nickname))
	if name == "" {
		return "Team " + strconv.Itoa(t.ID)
	}
	return name
}

func memberName(m memberPayload) string {
	if name := strings.TrimSpace(m.DisplayName); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(m.FirstName) + " " + strings.TrimSpace(m.LastName))
}

func positionLabel(id int) string {
	if label, ok := positionLabels[id]; ok {
		return label
	}
	return strconv.Itoa(id)
}

func proTeamAbbrev(id int) string {
	if abbrev, ok := proTeamAbbrevs[id]; ok {
		return abbrev
	}
	return "FA"
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func getMap(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	m, _ := src[key].(map[string]any)
	return m
}

func getSlice(src map[string]any, key string) []any {
	if src == nil {
		return nil
	}
	s, _ := src[key].([]any)
	return s
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	value, ok := src[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func getBool(src map[string]any, key string, fallback bool) bool {
	if src == nil {
		return fallback
	}
	value, ok := src[key].(bool)
	if !ok {
		return fallback
	}
	return value
}

func getInt(src map[string]any, key string) int {
	if src == nil {
		return 0
	}
	switch typed := src[key].(type) {
	case float64:
		return int(typed)
	case int:
		return typed
	case int64:
		return int(typed)
	case string:
		v, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}
