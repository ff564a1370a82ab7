package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/league"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/lineup"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/id"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// LineupState is a step of one lineup transaction.
type LineupState string

const (
	StateReceived     LineupState = "RECEIVED"
	StateValidating   LineupState = "VALIDATING"
	StatePreviewed    LineupState = "PREVIEWED"
	StateRejected     LineupState = "REJECTED"
	StateCommitting   LineupState = "COMMITTING"
	StateCommitted    LineupState = "COMMITTED"
	StateCommitFailed LineupState = "COMMIT_FAILED"
)

type RosterSource string

const (
	RosterFromProvider   RosterSource = "provider"
	RosterFromProjection RosterSource = "projection"
)

type LineupRequest struct {
	League    LeagueRef
	TeamIndex int
	// ScoringPeriod zero targets the league's current period.
	ScoringPeriod int
	Moves         []lineup.Move
}

// PlannedMove restates a requested move with the player's name.
type PlannedMove struct {
	lineup.Move
	PlayerName string
}

// LineupOutcome describes where a transaction ended. Roster is the
// projection for previews and rejections, and the provider's post-state
// after a commit when it could be read back.
type LineupOutcome struct {
	OperationID   string
	State         LineupState
	Team          league.Team
	ScoringPeriod int
	Moves         []PlannedMove
	Validation    lineup.ValidationResult
	Receipt       *LineupReceipt
	Roster        lineup.Roster
	RosterSource  RosterSource
}

type LineupService struct {
	provider LeagueProvider
	ids      id.Generator
	logger   *logging.Logger
}

func NewLineupService(provider LeagueProvider, ids id.Generator, logger *logging.Logger) *LineupService {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LineupService{
		provider: provider,
		ids:      ids,
		logger:   logger,
	}
}

// Handle previews the batch, or commits it when confirm is set.
func (s *LineupService) Handle(ctx context.Context, req LineupRequest, confirm bool) (LineupOutcome, error) {
	if confirm {
		return s.Commit(ctx, req)
	}
	return s.Preview(ctx, req)
}

// Preview validates the batch against the live roster and never writes.
func (s *LineupService) Preview(ctx context.Context, req LineupRequest) (out LineupOutcome, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Preview", requestAttrs(req)...)
	defer func() { endSpan(span, err) }()

	out, _, err = s.validateLive(ctx, req)
	if err != nil {
		return out, err
	}
	if out.Validation.Valid {
		s.transition(ctx, &out, StatePreviewed)
	}
	return out, nil
}

// Commit re-validates the batch against the live roster and submits it
// once when it is valid. A failed submission is never retried.
func (s *LineupService) Commit(ctx context.Context, req LineupRequest) (out LineupOutcome, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Commit", requestAttrs(req)...)
	defer func() { endSpan(span, err) }()

	out, batch, err := s.validateLive(ctx, req)
	if err != nil || !out.Validation.Valid {
		return out, err
	}

	s.transition(ctx, &out, StateCommitting)
	receipt, err := s.provider.SubmitLineup(ctx, req.League, LineupSubmission{
		Team:          out.Team,
		ScoringPeriod: out.ScoringPeriod,
		Moves:         batch.Moves(),
	})
	if err != nil {
		s.transition(ctx, &out, StateCommitFailed, "error", err)
		return out, commitFailure(err)
	}

	out.Receipt = &receipt
	s.transition(ctx, &out, StateCommitted, "transaction_id", receipt.TransactionID, "status", receipt.Status)

	after, readErr := s.provider.FetchRoster(WithFreshRead(ctx), req.League, req.TeamIndex, out.ScoringPeriod)
	if readErr != nil {
		s.logger.WarnContext(ctx, "read back roster after commit failed, returning projection",
			"operation_id", out.OperationID,
			"error", readErr,
		)
		return out, nil
	}
	out.Roster = after.Roster
	out.RosterSource = RosterFromProvider
	return out, nil
}

// validateLive is the single validation entry point for preview and
// commit. It always reads a fresh roster.
func (s *LineupService) validateLive(ctx context.Context, req LineupRequest) (LineupOutcome, lineup.Batch, error) {
	opID, err := s.ids.NewID()
	if err != nil {
		return LineupOutcome{}, lineup.Batch{}, fmt.Errorf("new operation id: %w", err)
	}
	out := LineupOutcome{OperationID: opID, ScoringPeriod: req.ScoringPeriod}
	s.transition(ctx, &out, StateReceived, "team_index", req.TeamIndex, "moves", len(req.Moves))

	batch, err := req.batch()
	if err != nil {
		return out, lineup.Batch{}, err
	}

	s.transition(ctx, &out, StateValidating)
	snapshot, err := s.provider.FetchRoster(ctx, req.League, req.TeamIndex, req.ScoringPeriod)
	if err != nil {
		return out, lineup.Batch{}, fmt.Errorf("fetch roster: %w", err)
	}
	if err := snapshot.Roster.Validate(); err != nil {
		return out, lineup.Batch{}, fmt.Errorf("%w: inconsistent roster from provider: %v", ErrDependencyUnavailable, err)
	}

	out.Team = snapshot.Team
	if snapshot.ScoringPeriod > 0 {
		out.ScoringPeriod = snapshot.ScoringPeriod
	}
	out.Moves = planMoves(batch, snapshot.Roster)
	out.Validation = lineup.Validate(batch, snapshot.Roster, snapshot.Rules)
	out.Roster = out.Validation.Projected
	out.RosterSource = RosterFromProjection

	if !out.Validation.Valid {
		s.transition(ctx, &out, StateRejected, "violations", len(out.Validation.Violations))
	}
	return out, batch, nil
}

func (s *LineupService) transition(ctx context.Context, out *LineupOutcome, state LineupState, args ...any) {
	out.State = state
	fields := append([]any{
		"operation_id", out.OperationID,
		"state", string(state),
		"team_id", out.Team.ProviderID,
		"scoring_period", out.ScoringPeriod,
	}, args...)
	if state == StateCommitFailed {
		s.logger.WarnContext(ctx, "lineup transaction", fields...)
		return
	}
	s.logger.InfoContext(ctx, "lineup transaction", fields...)
}

func (r LineupRequest) batch() (lineup.Batch, error) {
	if err := r.League.Validate(); err != nil {
		return lineup.Batch{}, err
	}
	if r.TeamIndex < 0 {
		return lineup.Batch{}, fmt.Errorf("%w: team_id must not be negative", ErrInvalidInput)
	}
	if r.ScoringPeriod < 0 {
		return lineup.Batch{}, fmt.Errorf("%w: scoring_period_id must not be negative", ErrInvalidInput)
	}
	batch, err := lineup.NewBatch(r.Moves)
	if err != nil {
		return lineup.Batch{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return batch, nil
}

func planMoves(batch lineup.Batch, roster lineup.Roster) []PlannedMove {
	moves := batch.Moves()
	out := make([]PlannedMove, 0, len(moves))
	for _, m := range moves {
		planned := PlannedMove{Move: m}
		if e, ok := roster.Find(m.PlayerID); ok {
			planned.PlayerName = e.Player.Name
		}
		out = append(out, planned)
	}
	return out
}

// commitFailure explains a failed submission. Session and league errors
// keep their own kind; everything else becomes ErrRemoteCommitFailed with
// a note on whether the request could have reached the provider.
func commitFailure(err error) error {
	const unchanged = "no local state was changed"
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrLeagueNotFound):
		return fmt.Errorf("lineup not committed, %s: %w", unchanged, err)
	case errors.Is(err, ErrDependencyUnavailable):
		return fmt.Errorf("%w: request was not sent to the provider, %s: %w", ErrRemoteCommitFailed, unchanged, err)
	case errors.Is(err, ErrRemoteRejected):
		return fmt.Errorf("%w: provider rejected the lineup change, %s: %w", ErrRemoteCommitFailed, unchanged, err)
	case errors.Is(err, ErrOutcomeUnknown):
		return fmt.Errorf("%w: remote outcome is unconfirmed, some moves may have been applied; verify the roster before retrying, %s: %w",
			ErrRemoteCommitFailed, unchanged, err)
	default:
		return fmt.Errorf("%w: %w: remote outcome is unconfirmed, some moves may have been applied; verify the roster before retrying, %s: %w",
			ErrRemoteCommitFailed, ErrOutcomeUnknown, unchanged, err)
	}
}

func requestAttrs(req LineupRequest) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("league.id", req.League.LeagueID),
		attribute.Int("league.season", req.League.SeasonYear),
		attribute.Int("team.index", req.TeamIndex),
		attribute.Int("lineup.moves", len(req.Moves)),
	}
}
