package lineup

import (
	"fmt"
	"sort"
)

// ErrorKind classifies why a move or batch failed validation.
type ErrorKind string

const (
	KindPlayerNotOnRoster    ErrorKind = "PlayerNotOnRoster"
	KindSlotMismatch         ErrorKind = "SlotMismatch"
	KindIneligibleSlot       ErrorKind = "IneligibleSlot"
	KindSlotCapacityExceeded ErrorKind = "SlotCapacityExceeded"
)

// Violation is one diagnostic. Per-move violations carry MoveIndex and
// PlayerID; capacity violations carry Slot and the occupying PlayerIDs.
type Violation struct {
	Kind      ErrorKind
	MoveIndex int
	PlayerID  int64
	Slot      int
	PlayerIDs []int64
	Message   string
}

// ValidationResult is recomputed on every call and never stored.
// Projected is the fully staged roster even when Valid is false.
type ValidationResult struct {
	Valid      bool
	Violations []Violation
	Projected  Roster
}

// SlotRules holds per-league slot capacities, keyed by slot id.
type SlotRules struct {
	counts map[int]int
}

func NewSlotRules(counts map[int]int) SlotRules {
	if len(counts) == 0 {
		return SlotRules{}
	}
	out := make(map[int]int, len(counts))
	for slot, n := range counts {
		if n < 0 {
			n = 0
		}
		out[slot] = n
	}
	return SlotRules{counts: out}
}

// Capacity returns how many players slot may hold. bounded is false for
// catch-all slots the league did not configure.
func (r SlotRules) Capacity(slot int) (limit int, bounded bool) {
	if n, ok := r.counts[slot]; ok {
		return n, true
	}
	if IsCatchAll(slot) {
		return 0, false
	}
	return 1, true
}

// Counts returns a copy of the configured capacities.
func (r SlotRules) Counts() map[int]int {
	out := make(map[int]int, len(r.counts))
	for slot, n := range r.counts {
		out[slot] = n
	}
	return out
}

// Validate stages every move of batch against a copy of current, in
// order, and then checks slot capacity on the staged result. The batch is
// valid only if no move and no slot produced a violation.
func Validate(batch Batch, current Roster, rules SlotRules) ValidationResult {
	working := current.Clone()
	violations := make([]Violation, 0)
	filled := make(map[int]struct{})

	for i, move := range batch.moves {
		idx, ok := working.IndexOf(move.PlayerID)
		if !ok {
			violations = append(violations, Violation{
				Kind:      KindPlayerNotOnRoster,
				MoveIndex: i,
				PlayerID:  move.PlayerID,
				Slot:      move.FromSlot,
				Message:   fmt.Sprintf("move %d: player %d is not on the team roster", i+1, move.PlayerID),
			})
			continue
		}

		entry := working[idx]
		if entry.Slot != move.FromSlot {
			violations = append(violations, Violation{
				Kind:      KindSlotMismatch,
				MoveIndex: i,
				PlayerID:  move.PlayerID,
				Slot:      entry.Slot,
				Message: fmt.Sprintf("move %d: %s is in slot %s, not %s",
					i+1, entry.Player.Name, SlotLabel(entry.Slot), SlotLabel(move.FromSlot)),
			})
			continue
		}

		if !IsCatchAll(move.ToSlot) && !entry.Player.EligibleFor(move.ToSlot) {
			violations = append(violations, Violation{
				Kind:      KindIneligibleSlot,
				MoveIndex: i,
				PlayerID:  move.PlayerID,
				Slot:      move.ToSlot,
				Message: fmt.Sprintf("move %d: %s is not eligible for slot %s",
					i+1, entry.Player.Name, SlotLabel(move.ToSlot)),
			})
			continue
		}

		working[idx].Slot = move.ToSlot
		filled[move.ToSlot] = struct{}{}
	}

	for _, slot := range sortedSlots(filled) {
		limit, bounded := rules.Capacity(slot)
		if !bounded {
			continue
		}
		occupants := working.Occupants(slot)
		if len(occupants) <= limit {
			continue
		}
		violations = append(violations, Violation{
			Kind:      KindSlotCapacityExceeded,
			MoveIndex: -1,
			Slot:      slot,
			PlayerIDs: occupants,
			Message: fmt.Sprintf("slot %s holds %d players, capacity is %d",
				SlotLabel(slot), len(occupants), limit),
		})
	}

	return ValidationResult{
		Valid:      len(violations) == 0,
		Violations: violations,
		Projected:  working,
	}
}

func sortedSlots(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for slot := range set {
		out = append(out, slot)
	}
	sort.Ints(out)
	return out
}
