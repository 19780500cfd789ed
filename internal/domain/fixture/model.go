package fixture

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusLive      Status = "LIVE"
	StatusFinished  Status = "FINISHED"
	StatusCancelled Status = "CANCELLED"
)

// Fixture is one scheduled match between two basketball teams inside a
// gameweek.
type Fixture struct {
	ID         string
	GameWeekID string
	HomeTeamID string
	AwayTeamID string
	KickoffAt  time.Time
	Venue      string
	Status     Status
}

func (f Fixture) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("fixture id is required")
	}
	if f.GameWeekID == "" {
		return fmt.Errorf("fixture gameweek id is required")
	}
	if f.HomeTeamID == "" || f.AwayTeamID == "" {
		return fmt.Errorf("fixture team ids are required")
	}
	if f.HomeTeamID == f.AwayTeamID {
		return fmt.Errorf("fixture cannot pair a team against itself")
	}

	return nil
}
