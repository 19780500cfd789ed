package lineup

import "time"

const (
	StartersCount = 5
	BenchCount    = 3
	// CaptainMarker tags the one starter slot whose points count double.
	CaptainMarker = "CPT"
)

// Slot references one squad player inside a lineup.
type Slot struct {
	PlayerID     string
	Starter      bool
	SlotPosition string
}

// Lineup is one fantasy team's starter/bench selection for one gameweek.
// Unique per (team, gameweek); saves fully replace the slot set.
type Lineup struct {
	ID         string
	TeamID     string
	GameWeekID string
	Slots      []Slot
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CaptainID returns the captain-tagged starter, if any.
func (l Lineup) CaptainID() (string, bool) {
	for _, s := range l.Slots {
		if s.Starter && s.SlotPosition == CaptainMarker {
			return s.PlayerID, true
		}
	}
	return "", false
}

// Starters returns the starter slots in insertion order.
func (l Lineup) Starters() []Slot {
	out := make([]Slot, 0, StartersCount)
	for _, s := range l.Slots {
		if s.Starter {
			out = append(out, s)
		}
	}
	return out
}
