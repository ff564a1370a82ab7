package espn

type leaguePayload struct {
	ID              int64           `json:"id"`
	SeasonID        int             `json:"seasonId"`
	ScoringPeriodID int             `json:"scoringPeriodId"`
	Status          statusPayload   `json:"status"`
	Settings        map[string]any  `json:"settings"`
	Teams           []teamPayload   `json:"teams"`
	Members         []memberPayload `json:"members"`
}

type statusPayload struct {
	CurrentMatchupPeriod int `json:"currentMatchupPeriod"`
	LatestScoringPeriod  int `json:"latestScoringPeriod"`
}

type teamPayload struct {
	ID                   int            `json:"id"`
	Abbrev               string         `json:"abbrev"`
	Name                 string         `json:"name"`
	Location             string         `json:"location"`
	Nickname             string         `json:"nickname"`
	Owners               []string       `json:"owners"`
	PrimaryOwner         string         `json:"primaryOwner"`
	PlayoffSeed          int            `json:"playoffSeed"`
	RankCalculatedFinal  int            `json:"rankCalculatedFinal"`
	CurrentProjectedRank int            `json:"currentProjectedRank"`
	Record               recordsPayload `json:"record"`
	Roster               *rosterPayload `json:"roster"`
}

type recordsPayload struct {
	Overall recordPayload `json:"overall"`
}

type recordPayload struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

type rosterPayload struct {
	Entries []rosterEntryPayload `json:"entries"`
}

type rosterEntryPayload struct {
	PlayerID        int64              `json:"playerId"`
	LineupSlotID    int                `json:"lineupSlotId"`
	InjuryStatus    string             `json:"injuryStatus"`
	PlayerPoolEntry playerEntryPayload `json:"playerPoolEntry"`
}

type playerEntryPayload struct {
	ID       int64         `json:"id"`
	OnTeamID int           `json:"onTeamId"`
	Status   string        `json:"status"`
	Player   playerPayload `json:"player"`
}

type playerPayload struct {
	ID                int64  `json:"id"`
	FullName          string `json:"fullName"`
	DefaultPositionID int    `json:"defaultPositionId"`
	ProTeamID         int    `json:"proTeamId"`
	EligibleSlots     []int  `json:"eligibleSlots"`
	InjuryStatus      string `json:"injuryStatus"`
	Injured           bool   `json:"injured"`
}

type memberPayload struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

type playersPayload struct {
	Players []playerEntryPayload `json:"players"`
}

type lineupTransactionPayload struct {
	IsLeagueManager bool                `json:"isLeagueManager"`
	TeamID          int                 `json:"teamId"`
	MemberID        string              `json:"memberId"`
	Type            string              `json:"type"`
	ScoringPeriodID int                 `json:"scoringPeriodId"`
	ExecutionType   string              `json:"executionType"`
	Items           []lineupItemPayload `json:"items"`
}

type lineupItemPayload struct {
	PlayerID         int64  `json:"playerId"`
	Type             string `json:"type"`
	FromLineupSlotID int    `json:"fromLineupSlotId"`
	ToLineupSlotID   int    `json:"toLineupSlotId"`
}

type transactionReceiptPayload struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	ScoringPeriodID int    `json:"scoringPeriodId"`
}

// freeAgentFilter is sent in the x-fantasy-filter header of
// kona_player_info reads.
type freeAgentFilter struct {
	Players freeAgentPlayersFilter `json:"players"`
}

type freeAgentPlayersFilter struct {
	FilterStatus  filterValues[string] `json:"filterStatus"`
	FilterSlotIDs *filterValues[int]   `json:"filterSlotIds,omitempty"`
	Limit         int                  `json:"limit"`
	SortPercOwned sortSpec             `json:"sortPercOwned"`
}

type filterValues[T any] struct {
	Value []T `json:"value"`
}

type sortSpec struct {
	SortPriority int  `json:"sortPriority"`
	SortAsc      bool `json:"sortAsc"`
}
