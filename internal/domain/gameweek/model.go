package gameweek

import (
	"fmt"
	"time"
)

// Status is the lifecycle state gating lineup and transfer mutations.
type Status string

const (
	StatusUpcoming  Status = "UPCOMING"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
)

var AllStatuses = map[Status]struct{}{
	StatusUpcoming:  {},
	StatusActive:    {},
	StatusCompleted: {},
}

// GameWeek is one scheduling epoch: the scoring aggregation boundary and
// the mutation-permission gate.
type GameWeek struct {
	ID        string
	Number    int
	Status    Status
	StartDate time.Time
	EndDate   time.Time
}

// MutationsOpen reports whether lineup and transfer changes are still
// allowed. UPCOMING and ACTIVE are both mutable.
func (gw GameWeek) MutationsOpen() bool {
	return gw.Status != StatusCompleted
}

func (gw GameWeek) Validate() error {
	if gw.ID == "" {
		return fmt.Errorf("gameweek id is required")
	}
	if gw.Number <= 0 {
		return fmt.Errorf("gameweek number must be greater than zero")
	}
	if _, ok := AllStatuses[gw.Status]; !ok {
		return fmt.Errorf("invalid gameweek status: %s", gw.Status)
	}
	if !gw.EndDate.IsZero() && gw.EndDate.Before(gw.StartDate) {
		return fmt.Errorf("gameweek end date cannot precede start date")
	}

	return nil
}
