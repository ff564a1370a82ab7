package mcpapi

// Optional numeric fields are pointers where zero is a meaningful value.

type LeagueArgs struct {
	LeagueID   int64 `json:"league_id,omitempty" jsonschema:"ESPN league id, defaults to ESPN_LEAGUE_ID" validate:"omitempty,gt=0"`
	SeasonYear int   `json:"season_year,omitempty" jsonschema:"Season year, defaults to ESPN_SEASON_YEAR" validate:"omitempty,gte=1990,lte=2100"`
}

type TeamArgs struct {
	LeagueID   int64 `json:"league_id,omitempty" jsonschema:"ESPN league id, defaults to ESPN_LEAGUE_ID" validate:"omitempty,gt=0"`
	TeamID     *int  `json:"team_id,omitempty" jsonschema:"0-based index of the team in the league's team list, defaults to ESPN_TEAM_ID" validate:"omitempty,gte=0"`
	SeasonYear int   `json:"season_year,omitempty" jsonschema:"Season year, defaults to ESPN_SEASON_YEAR" validate:"omitempty,gte=1990,lte=2100"`
}

type RosterArgs struct {
	LeagueID        int64 `json:"league_id,omitempty" jsonschema:"ESPN league id, defaults to ESPN_LEAGUE_ID" validate:"omitempty,gt=0"`
	TeamID          *int  `json:"team_id,omitempty" jsonschema:"0-based index of the team in the league's team list, defaults to ESPN_TEAM_ID" validate:"omitempty,gte=0"`
	SeasonYear      int   `json:"season_year,omitempty" jsonschema:"Season year, defaults to ESPN_SEASON_YEAR" validate:"omitempty,gte=1990,lte=2100"`
	ScoringPeriodID int   `json:"scoring_period_id,omitempty" jsonschema:"Scoring period (day), 0 or omitted for the current one" validate:"omitempty,gte=0"`
}

type FreeAgentArgs struct {
	LeagueID   int64  `json:"league_id,omitempty" jsonschema:"ESPN league id, defaults to ESPN_LEAGUE_ID" validate:"omitempty,gt=0"`
	SeasonYear int    `json:"season_year,omitempty" jsonschema:"Season year, defaults to ESPN_SEASON_YEAR" validate:"omitempty,gte=1990,lte=2100"`
	Position   string `json:"position,omitempty" jsonschema:"Slot label to filter by, for example OF, SP, RP or C" validate:"omitempty,max=8"`
	Size       int    `json:"size,omitempty" jsonschema:"Number of players to return (1-1000, default 50)" validate:"omitempty,min=1,max=1000"`
}

type PlayerInfoArgs struct {
	PlayerName string `json:"player_name,omitempty" jsonschema:"Player name, matched fuzzily" validate:"required,max=120"`
	LeagueID   int64  `json:"league_id,omitempty" jsonschema:"ESPN league id, defaults to ESPN_LEAGUE_ID" validate:"omitempty,gt=0"`
	SeasonYear int    `json:"season_year,omitempty" jsonschema:"Season year, defaults to ESPN_SEASON_YEAR" validate:"omitempty,gte=1990,lte=2100"`
}

type MoveArgs struct {
	PlayerID *int64 `json:"player_id,omitempty" jsonschema:"ESPN player id" validate:"required,gt=0"`
	FromSlot *int   `json:"from_slot,omitempty" jsonschema:"Slot id the player is in now (16 is bench)" validate:"required,gte=0"`
	ToSlot   *int   `json:"to_slot,omitempty" jsonschema:"Slot id to move the player to" validate:"required,gte=0"`
}

type ModifyLineupArgs struct {
	LeagueID        int64      `json:"league_id,omitempty" jsonschema:"ESPN league id, defaults to ESPN_LEAGUE_ID" validate:"omitempty,gt=0"`
	TeamID          *int       `json:"team_id,omitempty" jsonschema:"0-based index of the team in the league's team list, defaults to ESPN_TEAM_ID" validate:"omitempty,gte=0"`
	Moves           []MoveArgs `json:"moves,omitempty" jsonschema:"Moves applied in order as one batch" validate:"required,min=1,max=50,dive"`
	ScoringPeriodID int        `json:"scoring_period_id,omitempty" jsonschema:"Scoring period (day), 0 or omitted for the current one" validate:"omitempty,gte=0"`
	SeasonYear      int        `json:"season_year,omitempty" jsonschema:"Season year, defaults to ESPN_SEASON_YEAR" validate:"omitempty,gte=1990,lte=2100"`
	Confirm         bool       `json:"confirm,omitempty" jsonschema:"false previews the change, true applies it"`
}
