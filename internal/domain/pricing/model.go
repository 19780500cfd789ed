package pricing

import "time"

// PriceChange is one append-only audit row for a market value update.
// Prices are in hundredths.
type PriceChange struct {
	ID               string
	PlayerID         string
	GameWeekID       string
	OldPrice         int64
	NewPrice         int64
	OwnershipPct     float64
	PerformanceScore float64
	Reason           string
	CreatedAt        time.Time
}
