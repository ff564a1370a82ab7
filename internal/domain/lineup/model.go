package lineup

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/espn-fantasy-mcp/internal/domain/player"
)

var (
	ErrEmptyBatch          = errors.New("lineup batch has no moves")
	ErrDuplicatePlayerMove = errors.New("player appears in more than one move")
	ErrInvalidMove         = errors.New("invalid lineup move")
)

// Entry places one player in one lineup slot.
type Entry struct {
	Player player.Player
	Slot   int
}

// Roster holds the entries of one team for one scoring period. A player
// id appears at most once.
type Roster []Entry

func (r Roster) Clone() Roster {
	out := make(Roster, len(r))
	for i, e := range r {
		out[i] = Entry{Player: e.Player.Clone(), Slot: e.Slot}
	}
	return out
}

func (r Roster) IndexOf(playerID int64) (int, bool) {
	for i, e := range r {
		if e.Player.ID == playerID {
			return i, true
		}
	}
	return -1, false
}

func (r Roster) Find(playerID int64) (Entry, bool) {
	i, ok := r.IndexOf(playerID)
	if !ok {
		return Entry{}, false
	}
	return r[i], true
}

// Occupants returns the ids of players in slot, in roster order.
func (r Roster) Occupants(slot int) []int64 {
	var out []int64
	for _, e := range r {
		if e.Slot == slot {
			out = append(out, e.Player.ID)
		}
	}
	return out
}

func (r Roster) Validate() error {
	seen := make(map[int64]struct{}, len(r))
	for _, e := range r {
		if _, dup := seen[e.Player.ID]; dup {
			return fmt.Errorf("player %d appears twice on roster", e.Player.ID)
		}
		seen[e.Player.ID] = struct{}{}
	}
	return nil
}

// Move is a requested transition of one player between slots.
type Move struct {
	PlayerID int64
	FromSlot int
	ToSlot   int
}

func (m Move) Validate() error {
	if m.PlayerID <= 0 {
		return fmt.Errorf("%w: player id must be positive", ErrInvalidMove)
	}
	if m.FromSlot < 0 || m.ToSlot < 0 {
		return fmt.Errorf("%w: slot ids must not be negative", ErrInvalidMove)
	}
	return nil
}

// Batch is an ordered set of moves for one team and scoring period with
// at most one move per player.
type Batch struct {
	moves []Move
}

func NewBatch(moves []Move) (Batch, error) {
	if len(moves) == 0 {
		return Batch{}, ErrEmptyBatch
	}

	seen := make(map[int64]int, len(moves))
	out := make([]Move, 0, len(moves))
	for i, m := range moves {
		if err := m.Validate(); err != nil {
			return Batch{}, fmt.Errorf("move %d: %w", i+1, err)
		}
		if first, dup := seen[m.PlayerID]; dup {
			return Batch{}, fmt.Errorf("%w: player %d in moves %d and %d", ErrDuplicatePlayerMove, m.PlayerID, first+1, i+1)
		}
		seen[m.PlayerID] = i
		out = append(out, m)
	}
	return Batch{moves: out}, nil
}

func (b Batch) Moves() []Move {
	return append([]Move(nil), b.moves...)
}

func (b Batch) Len() int {
	return len(b.moves)
}
