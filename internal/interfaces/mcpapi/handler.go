package mcpapi

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/grafana/pyroscope-go"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/lineup"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/logging"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/metrics"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/usecase"
	"go.opentelemetry.io/otel/codes"
)

// Defaults fill in arguments a tool call leaves out.
type Defaults struct {
	LeagueID   string
	SeasonYear int
	TeamID     *int
}

type HandlerConfig struct {
	LeagueService *usecase.LeagueService
	PlayerService *usecase.PlayerService
	LineupService *usecase.LineupService
	Defaults      Defaults
	Logger        *logging.Logger
	Metrics       *metrics.Registry
}

type Handler struct {
	leagueService *usecase.LeagueService
	playerService *usecase.PlayerService
	lineupService *usecase.LineupService
	defaults      Defaults
	logger        *logging.Logger
	metrics       *metrics.Registry
	validator     *validator.Validate
}

func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		leagueService: cfg.LeagueService,
		playerService: cfg.PlayerService,
		lineupService: cfg.LineupService,
		defaults:      cfg.Defaults,
		logger:        logger,
		metrics:       cfg.Metrics,
		validator:     validator.New(),
	}
}

// call runs one tool body and renders its envelope. Failures are reported
// in the envelope, never as protocol errors.
func (h *Handler) call(ctx context.Context, tool string, args any, fn func(context.Context) (any, error)) (*mcp.CallToolResult, any, error) {
	ctx, span := startToolSpan(ctx, tool)
	defer span.End()

	started := time.Now()
	data, err := h.run(ctx, tool, args, fn)
	elapsed := time.Since(started)

	if err != nil {
		result, kind := writeError(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(kind))
		h.metrics.ObserveToolCall(tool, string(kind), elapsed)
		log := h.logger.WarnContext
		if kind == KindInternalError {
			log = h.logger.ErrorContext
		}
		log(ctx, "tool call",
			"tool", tool,
			"duration_ms", elapsed.Milliseconds(),
			"outcome", string(kind),
			"error", err,
		)
		return result, nil, nil
	}

	h.metrics.ObserveToolCall(tool, "ok", elapsed)
	h.logger.InfoContext(ctx, "tool call",
		"tool", tool,
		"duration_ms", elapsed.Milliseconds(),
		"outcome", "ok",
	)
	return writeSuccess(ctx, data), nil, nil
}

// run validates args and calls fn under a "tool" profiling label, so
// continuous profiles split CPU and allocations per tool.
func (h *Handler) run(ctx context.Context, tool string, args any, fn func(context.Context) (any, error)) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool panic: %v", r)
		}
	}()
	if err := h.validateArgs(ctx, args); err != nil {
		return nil, err
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels("tool", tool), func(ctx context.Context) {
		data, err = fn(ctx)
	})
	return data, err
}

func (h *Handler) validateArgs(ctx context.Context, args any) error {
	ctx, span := startSpan(ctx, "mcpapi.Handler.validateArgs")
	defer span.End()

	if err := h.validator.StructCtx(ctx, args); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) leagueRef(leagueID int64, seasonYear int) usecase.LeagueRef {
	ref := usecase.LeagueRef{LeagueID: h.defaults.LeagueID, SeasonYear: h.defaults.SeasonYear}
	if leagueID > 0 {
		ref.LeagueID = strconv.FormatInt(leagueID, 10)
	}
	if seasonYear > 0 {
		ref.SeasonYear = seasonYear
	}
	return ref
}

func (h *Handler) teamIndex(teamID *int) (int, error) {
	switch {
	case teamID != nil:
		return *teamID, nil
	case h.defaults.TeamID != nil:
		return *h.defaults.TeamID, nil
	default:
		return 0, fmt.Errorf("%w: team_id is required when ESPN_TEAM_ID is not set", usecase.ErrInvalidInput)
	}
}

func (h *Handler) GetLeagueSettings(ctx context.Context, _ *mcp.CallToolRequest, args LeagueArgs) (*mcp.CallToolResult, any, error) {
	return h.call(ctx, ToolGetLeagueSettings, args, func(ctx context.Context) (any, error) {
		settings, err := h.leagueService.GetSettings(ctx, h.leagueRef(args.LeagueID, args.SeasonYear))
		if err != nil {
			return nil, err
		}
		return settingsToDTO(settings), nil
	})
}

func (h *Handler) GetStandings(ctx context.Context, _ *mcp.CallToolRequest, args LeagueArgs) (*mcp.CallToolResult, any, error) {
	return h.call(ctx, ToolGetStandings, args, func(ctx context.Context) (any, error) {
		teams, err := h.leagueService.ListStandings(ctx, h.leagueRef(args.LeagueID, args.SeasonYear))
		if err != nil {
			return nil, err
		}
		return map[string]any{"teams": teamsToDTO(teams)}, nil
	})
}

func (h *Handler) GetTeam(ctx context.Context, _ *mcp.CallToolRequest, args TeamArgs) (*mcp.CallToolResult, any, error) {
	return h.call(ctx, ToolGetTeam, args, func(ctx context.Context) (any, error) {
		index, err := h.teamIndex(args.TeamID)
		if err != nil {
			return nil, err
		}
		team, err := h.leagueService.GetTeam(ctx, h.leagueRef(args.LeagueID, args.SeasonYear), index)
		if err != nil {
			return nil, err
		}
		return teamToDTO(team), nil
	})
}

func (h *Handler) GetRoster(ctx context.Context, _ *mcp.CallToolRequest, args RosterArgs) (*mcp.CallToolResult, any, error) {
	return h.call(ctx, ToolGetRoster, args, func(ctx context.Context) (any, error) {
		index, err := h.teamIndex(args.TeamID)
		if err != nil {
			return nil, err
		}
		snapshot, err := h.leagueService.GetRoster(ctx, h.leagueRef(args.LeagueID, args.SeasonYear), index, args.ScoringPeriodID)
		if err != nil {
			return nil, err
		}
		return rosterToDTO(snapshot), nil
	})
}

func (h *Handler) GetFreeAgents(ctx context.Context, _ *mcp.CallToolRequest, args FreeAgentArgs) (*mcp.CallToolResult, any, error) {
	return h.call(ctx, ToolGetFreeAgents, args, func(ctx context.Context) (any, error) {
		players, err := h.playerService.ListFreeAgents(ctx, h.leagueRef(args.LeagueID, args.SeasonYear), args.Position, args.Size)
		if err != nil {
			return nil, err
		}
		return freeAgentsDTO{Count: len(players), Players: playersToDTO(players)}, nil
	})
}

func (h *Handler) GetPlayerInfo(ctx context.Context, _ *mcp.CallToolRequest, args PlayerInfoArgs) (*mcp.CallToolResult, any, error) {
	return h.call(ctx, ToolGetPlayerInfo, args, func(ctx context.Context) (any, error) {
		lookup, err := h.playerService.GetPlayerInfo(ctx, h.leagueRef(args.LeagueID, args.SeasonYear), args.PlayerName)
		if err != nil {
			return nil, err
		}
		return lookupToDTO(lookup), nil
	})
}

func (h *Handler) ModifyLineup(ctx context.Context, _ *mcp.CallToolRequest, args ModifyLineupArgs) (*mcp.CallToolResult, any, error) {
	return h.call(ctx, ToolModifyLineup, args, func(ctx context.Context) (any, error) {
		index, err := h.teamIndex(args.TeamID)
		if err != nil {
			return nil, err
		}

		moves := make([]lineup.Move, 0, len(args.Moves))
		for _, m := range args.Moves {
			moves = append(moves, lineup.Move{PlayerID: *m.PlayerID, FromSlot: *m.FromSlot, ToSlot: *m.ToSlot})
		}

		outcome, err := h.lineupService.Handle(ctx, usecase.LineupRequest{
			League:        h.leagueRef(args.LeagueID, args.SeasonYear),
			TeamIndex:     index,
			ScoringPeriod: args.ScoringPeriodID,
			Moves:         moves,
		}, args.Confirm)
		if terminalState(outcome.State) {
			h.metrics.ObserveLineupTransaction(string(outcome.State))
		}
		if err != nil {
			return nil, err
		}
		return lineupToDTO(outcome), nil
	})
}

func terminalState(state usecase.LineupState) bool {
	switch state {
	case usecase.StatePreviewed, usecase.StateRejected, usecase.StateCommitted, usecase.StateCommitFailed:
		return true
	default:
		return false
	}
}
