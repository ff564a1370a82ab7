package league

import (
	"fmt"
	"sort"
)

// ScoringCategory is one stat counted by the league's scoring system.
type ScoringCategory struct {
	StatID   int
	Label    string
	Pitching bool
}

// Settings is the league configuration as reported by the provider. The
// raw sections are kept so callers can surface fields the typed view does
// not model.
type Settings struct {
	LeagueID             string
	SeasonYear           int
	Name                 string
	Size                 int
	IsPublic             bool
	RestrictionType      string
	ExperienceType       string
	ScoringType          string
	MatchupPeriodCount   int
	PlayoffTeamCount     int
	CurrentScoringPeriod int
	CurrentMatchupPeriod int
	SlotCounts           map[int]int
	ScoringCategories    []ScoringCategory
	StatLabels           map[int]string
	Sections             map[string]map[string]any
}

func (s Settings) Validate() error {
	if s.LeagueID == "" {
		return fmt.Errorf("league id is required")
	}
	if s.SeasonYear <= 0 {
		return fmt.Errorf("season year must be positive")
	}
	return nil
}

// Team is one fantasy team. Index is its 0-based position when the
// league's teams are ordered by ProviderID; tools address teams by Index.
type Team struct {
	Index         int
	ProviderID    int
	Name          string
	Abbrev        string
	Owners        []string
	PrimaryOwner  string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
	Standing      int
}

// OrderTeams sorts teams by provider id and assigns their indexes.
func OrderTeams(teams []Team) []Team {
	out := append([]Team(nil), teams...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ProviderID < out[j].ProviderID })
	for i := range out {
		out[i].Index = i
	}
	return out
}

// Standings orders teams by standing, unranked teams last, then by index.
func Standings(teams []Team) []Team {
	out := append([]Team(nil), teams...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Standing, out[j].Standing
		if (a > 0) != (b > 0) {
			return a > 0
		}
		if a != b {
			return a < b
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// TeamAt returns the team with the given index.
func TeamAt(teams []Team, index int) (Team, bool) {
	for _, t := range teams {
		if t.Index == index {
			return t, true
		}
	}
	return Team{}, false
}
