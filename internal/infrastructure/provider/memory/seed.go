package memory

import (
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/league"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/lineup"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/player"
)

const (
	DemoLeagueID      = "424242"
	DemoSeasonYear    = 2024
	DemoScoringPeriod = 12

	// DemoBenchPitcherID sits on the bench of team 0 and may start at P.
	DemoBenchPitcherID int64 = 4140653
)

// DemoSeed is a small head-to-head league used by tests and the demo
// server.
func DemoSeed() Seed {
	return Seed{
		Settings: league.Settings{
			LeagueID:             DemoLeagueID,
			SeasonYear:           DemoSeasonYear,
			Name:                 "Sandlot Keepers",
			Size:                 4,
			IsPublic:             false,
			RestrictionType:      "NONE",
			ScoringType:          "H2H_CATEGORY",
			MatchupPeriodCount:   21,
			PlayoffTeamCount:     2,
			CurrentScoringPeriod: DemoScoringPeriod,
			CurrentMatchupPeriod: 2,
			SlotCounts: map[int]int{
				lineup.SlotCatcher:     1,
				lineup.SlotFirstBase:   1,
				lineup.SlotSecondBase:  1,
				lineup.SlotThirdBase:   1,
				lineup.SlotShortstop:   1,
				lineup.SlotOutfield:    3,
				lineup.SlotUtility:     1,
				lineup.SlotPitcher:     3,
				lineup.SlotBench:       3,
				lineup.SlotInjuredList: 2,
			},
			ScoringCategories: []league.ScoringCategory{
				{StatID: 20, Label: "R"},
				{StatID: 5, Label: "HR"},
				{StatID: 21, Label: "RBI"},
				{StatID: 23, Label: "SB"},
				{StatID: 2, Label: "AVG"},
				{StatID: 48, Label: "K", Pitching: true},
				{StatID: 53, Label: "W", Pitching: true},
				{StatID: 57, Label: "SV", Pitching: true},
				{StatID: 47, Label: "ERA", Pitching: true},
				{StatID: 41, Label: "WHIP", Pitching: true},
			},
		},
		Teams: []league.Team{
			{ProviderID: 1, Name: "Diamond Kings", Abbrev: "DK", Owners: []string{"Pat Rivera"}, PrimaryOwner: "Pat Rivera", Wins: 14, Losses: 6, PointsFor: 118, PointsAgainst: 92, Standing: 1},
			{ProviderID: 2, Name: "Bullpen Bandits", Abbrev: "BB", Owners: []string{"Sam Ortiz"}, PrimaryOwner: "Sam Ortiz", Wins: 10, Losses: 9, Ties: 1, PointsFor: 101, PointsAgainst: 99, Standing: 2},
			{ProviderID: 3, Name: "Curveball Crew", Abbrev: "CC", Owners: []string{"Jordan Lee", "Casey Kim"}, PrimaryOwner: "Jordan Lee", Wins: 8, Losses: 12, PointsFor: 90, PointsAgainst: 104, Standing: 4},
			{ProviderID: 4, Name: "Walk-Off Wonders", Abbrev: "WOW", Owners: []string{"Alex Moreno"}, PrimaryOwner: "Alex Moreno", Wins: 8, Losses: 11, Ties: 1, PointsFor: 93, PointsAgainst: 107, Standing: 3},
		},
		Rosters: map[int]lineup.Roster{
			0: {
				entry(100, "Adley Rutschman", "Bal", "C", lineup.SlotCatcher, lineup.SlotCatcher, lineup.SlotUtility),
				entry(300, "Freddie Freeman", "LAD", "1B", lineup.SlotFirstBase, lineup.SlotFirstBase, lineup.SlotCornerInfield, lineup.SlotUtility),
				entry(301, "Marcus Semien", "Tex", "2B", lineup.SlotSecondBase, lineup.SlotSecondBase, lineup.SlotMiddleInfield, lineup.SlotUtility),
				entry(302, "Austin Riley", "Atl", "3B", lineup.SlotThirdBase, lineup.SlotThirdBase, lineup.SlotCornerInfield, lineup.SlotUtility),
				entry(303, "Corey Seager", "Tex", "SS", lineup.SlotShortstop, lineup.SlotShortstop, lineup.SlotMiddleInfield, lineup.SlotUtility),
				entry(200, "Kyle Tucker", "Hou", "RF", lineup.SlotOutfield, lineup.SlotOutfield, lineup.SlotRightField, lineup.SlotUtility),
				entry(201, "Julio Rodriguez", "Sea", "CF", lineup.SlotOutfield, lineup.SlotOutfield, lineup.SlotCenterField, lineup.SlotUtility),
				entry(202, "Mookie Betts", "LAD", "RF", lineup.SlotOutfield, lineup.SlotOutfield, lineup.SlotSecondBase, lineup.SlotShortstop, lineup.SlotMiddleInfield, lineup.SlotUtility),
				entry(203, "Yordan Alvarez", "Hou", "LF", lineup.SlotUtility, lineup.SlotOutfield, lineup.SlotLeftField, lineup.SlotDesignatedHitter, lineup.SlotUtility),
				entry(400, "Gerrit Cole", "NYY", "SP", lineup.SlotPitcher, lineup.SlotPitcher, lineup.SlotStartingPitcher),
				entry(401, "Zack Wheeler", "Phi", "SP", lineup.SlotPitcher, lineup.SlotPitcher, lineup.SlotStartingPitcher),
				entry(DemoBenchPitcherID, "Logan Webb", "SF", "SP", lineup.SlotBench, lineup.SlotPitcher, lineup.SlotStartingPitcher),
				entry(402, "Emmanuel Clase", "Cle", "RP", lineup.SlotBench, lineup.SlotPitcher, lineup.SlotReliefPitcher),
				injured(entry(403, "Spencer Strider", "Atl", "SP", lineup.SlotInjuredList, lineup.SlotPitcher, lineup.SlotStartingPitcher), "TEN_DAY_DL"),
			},
			1: {
				entry(500, "Aaron Judge", "NYY", "RF", lineup.SlotOutfield, lineup.SlotOutfield, lineup.SlotRightField, lineup.SlotUtility),
				entry(501, "Shohei Ohtani", "LAD", "DH", lineup.SlotUtility, lineup.SlotDesignatedHitter, lineup.SlotUtility),
				entry(502, "Will Smith", "LAD", "C", lineup.SlotCatcher, lineup.SlotCatcher, lineup.SlotUtility),
				entry(503, "Tarik Skubal", "Det", "SP", lineup.SlotPitcher, lineup.SlotPitcher, lineup.SlotStartingPitcher),
			},
			2: {
				entry(600, "Will Smith", "Atl", "RP", lineup.SlotPitcher, lineup.SlotPitcher, lineup.SlotReliefPitcher),
				entry(601, "Bobby Witt Jr.", "KC", "SS", lineup.SlotShortstop, lineup.SlotShortstop, lineup.SlotMiddleInfield, lineup.SlotUtility),
				entry(602, "Gunnar Henderson", "Bal", "SS", lineup.SlotThirdBase, lineup.SlotThirdBase, lineup.SlotShortstop, lineup.SlotUtility),
			},
			3: {
				entry(700, "Juan Soto", "NYY", "RF", lineup.SlotOutfield, lineup.SlotOutfield, lineup.SlotRightField, lineup.SlotUtility),
				entry(701, "Corbin Burnes", "Bal", "SP", lineup.SlotPitcher, lineup.SlotPitcher, lineup.SlotStartingPitcher),
			},
		},
		FreeAgents: []player.Player{
			freeAgent(800, "Ronald Acuña Jr.", "Atl", "RF", player.StatusWaivers, lineup.SlotOutfield, lineup.SlotRightField, lineup.SlotUtility),
			freeAgent(801, "Jazz Chisholm Jr.", "NYY", "3B", player.StatusFreeAgent, lineup.SlotThirdBase, lineup.SlotSecondBase, lineup.SlotOutfield, lineup.SlotUtility),
			freeAgent(802, "Ke'Bryan Hayes", "Pit", "3B", player.StatusFreeAgent, lineup.SlotThirdBase, lineup.SlotCornerInfield, lineup.SlotUtility),
			freeAgent(803, "Chris Sale", "Atl", "SP", player.StatusFreeAgent, lineup.SlotPitcher, lineup.SlotStartingPitcher),
			freeAgent(804, "Josh Hader", "Hou", "RP", player.StatusWaivers, lineup.SlotPitcher, lineup.SlotReliefPitcher),
			freeAgent(805, "J.D. Martinez", "NYM", "DH", player.StatusFreeAgent, lineup.SlotDesignatedHitter, lineup.SlotUtility),
			freeAgent(806, "José Ramírez", "Cle", "3B", player.StatusFreeAgent, lineup.SlotThirdBase, lineup.SlotCornerInfield, lineup.SlotUtility),
		},
	}
}

// entry builds a roster entry; bench and IL eligibility is added for
// every player, as ESPN does.
func entry(id int64, name, proTeam, position string, slot int, eligible ...int) lineup.Entry {
	slots := append(append([]int(nil), eligible...), lineup.SlotBench, lineup.SlotInjuredList)
	return lineup.Entry{
		Player: player.Player{
			ID:            id,
			Name:          name,
			ProTeam:       proTeam,
			Position:      position,
			EligibleSlots: slots,
			InjuryStatus:  "ACTIVE",
			Status:        player.StatusRostered,
		},
		Slot: slot,
	}
}

func injured(e lineup.Entry, status string) lineup.Entry {
	e.Player.InjuryStatus = status
	return e
}

func freeAgent(id int64, name, proTeam, position string, status player.Status, eligible ...int) player.Player {
	return player.Player{
		ID:            id,
		Name:          name,
		ProTeam:       proTeam,
		Position:      position,
		EligibleSlots: append(append([]int(nil), eligible...), lineup.SlotBench, lineup.SlotInjuredList),
		InjuryStatus:  "ACTIVE",
		Status:        status,
	}
}
