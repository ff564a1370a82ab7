package player

import "fmt"

// Status is a player's ownership state within one league.
type Status string

const (
	StatusRostered  Status = "rostered"
	StatusWaivers   Status = "waivers"
	StatusFreeAgent Status = "free_agent"
)

// TeamRef points at the fantasy team that owns a player. Index is the
// 0-based position of the team in the league's team list.
type TeamRef struct {
	Index      int
	ProviderID int
	Name       string
	Abbrev     string
}

// Player is a snapshot of one player as returned by the provider.
type Player struct {
	ID            int64
	Name          string
	ProTeam       string
	Position      string
	EligibleSlots []int
	InjuryStatus  string
	Status        Status
	Team          *TeamRef
}

func (p Player) EligibleFor(slot int) bool {
	for _, s := range p.EligibleSlots {
		if s == slot {
			return true
		}
	}
	return false
}

func (p Player) Clone() Player {
	out := p
	out.EligibleSlots = append([]int(nil), p.EligibleSlots...)
	if p.Team != nil {
		team := *p.Team
		out.Team = &team
	}
	return out
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be positive")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	switch p.Status {
	case StatusRostered:
		if p.Team == nil {
			return fmt.Errorf("rostered player %d has no team", p.ID)
		}
	case StatusWaivers, StatusFreeAgent:
	default:
		return fmt.Errorf("invalid player status: %q", p.Status)
	}
	return nil
}
