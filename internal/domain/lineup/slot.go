package lineup

import (
	"sort"
	"strconv"
	"strings"
)

// ESPN baseball lineup slot ids.
const (
	SlotCatcher          = 0
	SlotFirstBase        = 1
	SlotSecondBase       = 2
	SlotThirdBase        = 3
	SlotShortstop        = 4
	SlotOutfield         = 5
	SlotMiddleInfield    = 6
	SlotCornerInfield    = 7
	SlotLeftField        = 8
	SlotCenterField      = 9
	SlotRightField       = 10
	SlotDesignatedHitter = 11
	SlotUtility          = 12
	SlotPitcher          = 13
	SlotStartingPitcher  = 14
	SlotReliefPitcher    = 15
	SlotBench            = 16
	SlotInjuredList      = 17
	SlotInfield          = 19
)

// Slot is a lineup position id with its display label.
type Slot struct {
	ID    int
	Label string
}

var slotLabels = map[int]string{
	SlotCatcher:          "C",
	SlotFirstBase:        "1B",
	SlotSecondBase:       "2B",
	SlotThirdBase:        "3B",
	SlotShortstop:        "SS",
	SlotOutfield:         "OF",
	SlotMiddleInfield:    "2B/SS",
	SlotCornerInfield:    "1B/3B",
	SlotLeftField:        "LF",
	SlotCenterField:      "CF",
	SlotRightField:       "RF",
	SlotDesignatedHitter: "DH",
	SlotUtility:          "UTIL",
	SlotPitcher:          "P",
	SlotStartingPitcher:  "SP",
	SlotReliefPitcher:    "RP",
	SlotBench:            "BE",
	SlotInjuredList:      "IL",
	SlotInfield:          "IF",
}

// SlotLabel returns the label for id, or the id itself when the slot is
// not part of the known vocabulary.
func SlotLabel(id int) string {
	if label, ok := slotLabels[id]; ok {
		return label
	}
	return strconv.Itoa(id)
}

// SlotByLabel resolves a label such as "of" or "SP" to its slot id.
func SlotByLabel(label string) (int, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" {
		return 0, false
	}
	for id, l := range slotLabels {
		if l == label {
			return id, true
		}
	}
	return 0, false
}

// IsCatchAll reports whether any rostered player may occupy slot
// regardless of position eligibility.
func IsCatchAll(slot int) bool {
	return slot == SlotBench || slot == SlotInjuredList
}

func KnownSlot(slot int) bool {
	_, ok := slotLabels[slot]
	return ok
}

// Slots lists the vocabulary ordered by id.
func Slots() []Slot {
	out := make([]Slot, 0, len(slotLabels))
	for id, label := range slotLabels {
		out = append(out, Slot{ID: id, Label: label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
