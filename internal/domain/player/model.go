package player

import "fmt"

// Position represents basketball position categories.
type Position string

const (
	PositionPointGuard    Position = "PG"
	PositionShootingGuard Position = "SG"
	PositionSmallForward  Position = "SF"
	PositionPowerForward  Position = "PF"
	PositionCenter        Position = "C"
)

var AllPositions = map[Position]struct{}{
	PositionPointGuard:    {},
	PositionShootingGuard: {},
	PositionSmallForward:  {},
	PositionPowerForward:  {},
	PositionCenter:        {},
}

// Player is a selectable athlete in the player pool. MarketValue is the
// current fantasy price in hundredths (10.50 is stored as 1050).
type Player struct {
	ID          string
	TeamID      string
	FirstName   string
	LastName    string
	Position    Position
	MarketValue int64
	Active      bool
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.LastName == "" {
		return fmt.Errorf("player last name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.MarketValue < 0 {
		return fmt.Errorf("player market value cannot be negative")
	}

	return nil
}
