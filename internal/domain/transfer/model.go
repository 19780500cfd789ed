package transfer

import "time"

const (
	// FreeTransfersPerWeek is the number of penalty-free swaps per gameweek.
	FreeTransfersPerWeek = 1
	// PenaltyPerExtra is the point deduction per transfer beyond the free one.
	PenaltyPerExtra = 10
)

// Record is one append-only log entry per executed swap. PriceDifference
// is incoming price minus outgoing price, in hundredths.
type Record struct {
	ID              string
	TeamID          string
	GameWeekID      string
	PlayerOutID     string
	PlayerInID      string
	PriceDifference int64
	CreatedAt       time.Time
}

// PenaltyCharge is the per-(team, gameweek) ledger of penalty points
// already deducted, so each transfer only applies the delta.
type PenaltyCharge struct {
	TeamID     string
	GameWeekID string
	Points     int
	UpdatedAt  time.Time
}

// Penalty returns the total deduction owed for n transfers in one
// gameweek: 10*max(0, n-1).
func Penalty(n int) int {
	extras := n - FreeTransfersPerWeek
	if extras < 0 {
		extras = 0
	}
	return extras * PenaltyPerExtra
}
