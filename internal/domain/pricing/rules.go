package pricing

import (
	"math"

	"github.com/Alislimm/fantasy-ms/internal/domain/scoring"
)

const (
	// MinPrice and MaxPrice bound every market value, in hundredths.
	MinPrice int64 = 400
	MaxPrice int64 = 1500
	// MinPersistedChange is the smallest price move worth persisting.
	MinPersistedChange int64 = 10
	// MaxChangeFactor caps one update at 10% of the pre-change price.
	MaxChangeFactor = 0.10

	// DefaultPerformanceScore is assumed when a player has no recorded
	// performances yet.
	DefaultPerformanceScore = 15.0

	HighPerformanceThreshold = 25.0
	LowPerformanceThreshold  = 5.0
	HighOwnershipThreshold   = 20.0
	LowOwnershipThreshold    = 5.0

	// RecentPerformanceWindow is how many recent performances feed the score.
	RecentPerformanceWindow = 3
)

// PerformanceScore averages the weighted fantasy value of the given
// performances (expected newest-first, already limited to the window).
func PerformanceScore(perfs []scoring.Performance) float64 {
	if len(perfs) == 0 {
		return DefaultPerformanceScore
	}

	total := 0.0
	for _, p := range perfs {
		total += weightedPoints(p)
	}
	return total / float64(len(perfs))
}

func weightedPoints(p scoring.Performance) float64 {
	points := 0.0
	if p.Points != nil {
		points += float64(*p.Points) * 1.0
	}
	if p.Rebounds != nil {
		points += float64(*p.Rebounds) * 1.2
	}
	if p.Assists != nil {
		points += float64(*p.Assists) * 1.5
	}
	if p.Steals != nil {
		points += float64(*p.Steals) * 3.0
	}
	if p.Blocks != nil {
		points += float64(*p.Blocks) * 3.0
	}
	if p.Turnovers != nil {
		points -= float64(*p.Turnovers) * 1.0
	}
	return points
}

// Multiplier derives the price multiplier from performance and ownership.
// The two adjustments are independent and additive.
func Multiplier(performanceScore, ownershipPct float64) float64 {
	multiplier := 1.0

	if performanceScore >= HighPerformanceThreshold {
		multiplier += 0.05
	} else if performanceScore <= LowPerformanceThreshold {
		multiplier -= 0.05
	}

	if ownershipPct >= HighOwnershipThreshold {
		multiplier += 0.03
	} else if ownershipPct <= LowOwnershipThreshold {
		multiplier -= 0.02
	}

	return multiplier
}

// NextPrice applies the multiplier to the current price: the change is
// capped at MaxChangeFactor of the current price, the result clamped to
// [MinPrice, MaxPrice] and rounded half-up to a whole hundredth.
func NextPrice(current int64, multiplier float64) int64 {
	change := float64(current) * (multiplier - 1.0)
	maxChange := float64(current) * MaxChangeFactor
	if math.Abs(change) > maxChange {
		if change >= 0 {
			change = maxChange
		} else {
			change = -maxChange
		}
	}

	next := int64(math.Floor(float64(current) + change + 0.5))
	if next < MinPrice {
		next = MinPrice
	} else if next > MaxPrice {
		next = MaxPrice
	}
	return next
}
