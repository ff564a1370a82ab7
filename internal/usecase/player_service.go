package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/lineup"
	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/player"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultFreeAgentSize = 50
	MaxFreeAgentSize     = 1000

	// lookupFreeAgentPool is how many free agents a name lookup searches.
	lookupFreeAgentPool = 1000
)

// PlayerLookup is the result of a name lookup. Player is set only for an
// exact match; otherwise Suggestions holds the ranked near misses.
type PlayerLookup struct {
	Query       string
	Found       bool
	Player      *player.Player
	Suggestions []player.Suggestion
	Searched    int
}

type PlayerService struct {
	provider LeagueProvider
	opts     player.ResolveOptions
}

func NewPlayerService(provider LeagueProvider, opts player.ResolveOptions) *PlayerService {
	return &PlayerService{
		provider: provider,
		opts:     opts,
	}
}

// GetPlayerInfo resolves name against every rostered player of the league
// and the free-agent pool. Rostered players come first, so they win ties.
func (s *PlayerService) GetPlayerInfo(ctx context.Context, ref LeagueRef, name string) (out PlayerLookup, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayerInfo", attribute.String("league.id", ref.LeagueID))
	defer func() { endSpan(span, err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return PlayerLookup{}, fmt.Errorf("%w: player_name is required", ErrInvalidInput)
	}
	if err := ref.Validate(); err != nil {
		return PlayerLookup{}, err
	}

	var rostered, available []player.Player
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.provider.FetchRosteredPlayers(ctx, ref)
		if err != nil {
			return fmt.Errorf("fetch rostered players: %w", err)
		}
		rostered = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.provider.FetchFreeAgents(ctx, ref, FreeAgentQuery{Size: lookupFreeAgentPool})
		if err != nil {
			return fmt.Errorf("fetch free agents: %w", err)
		}
		available = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return PlayerLookup{}, err
	}

	candidates := make([]player.Player, 0, len(rostered)+len(available))
	candidates = append(candidates, rostered...)
	candidates = append(candidates, available...)

	best, suggestions := player.Resolve(name, candidates, s.opts)
	return PlayerLookup{
		Query:       name,
		Found:       best != nil,
		Player:      best,
		Suggestions: suggestions,
		Searched:    len(candidates),
	}, nil
}

// ListFreeAgents lists free agents and waiver players, optionally only
// those eligible for the slot named by position.
func (s *PlayerService) ListFreeAgents(ctx context.Context, ref LeagueRef, position string, size int) (out []player.Player, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListFreeAgents", attribute.String("league.id", ref.LeagueID))
	defer func() { endSpan(span, err) }()

	if err := ref.Validate(); err != nil {
		return nil, err
	}
	if size == 0 {
		size = DefaultFreeAgentSize
	}
	if size < 1 || size > MaxFreeAgentSize {
		return nil, fmt.Errorf("%w: size must be between 1 and %d", ErrInvalidInput, MaxFreeAgentSize)
	}

	query := FreeAgentQuery{Size: size}
	if position = strings.TrimSpace(position); position != "" {
		slot, ok := lineup.SlotByLabel(position)
		if !ok {
			return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, position)
		}
		query.SlotID = &slot
	}

	players, err := s.provider.FetchFreeAgents(ctx, ref, query)
	if err != nil {
		return nil, fmt.Errorf("fetch free agents: %w", err)
	}
	if len(players) > size {
		players = players[:size]
	}
	return players, nil
}
