package scoring

import "time"

// Metric keys used by the admin-managed rule table.
const (
	MetricPoint     = "POINT"
	MetricRebound   = "REBOUND"
	MetricAssist    = "ASSIST"
	MetricSteal     = "STEAL"
	MetricBlock     = "BLOCK"
	MetricTurnover  = "TURNOVER"
	MetricThreeMade = "THREE_MADE"
)

// Rule maps one statistical metric to its points-per-unit multiplier.
// Admin-managed and read-only to the scoring path.
type Rule struct {
	Metric        string
	PointsPerUnit float64
}

// RuleMap is the lookup form consumed by CalculatePoints.
type RuleMap map[string]float64

func BuildRuleMap(rules []Rule) RuleMap {
	out := make(RuleMap, len(rules))
	for _, r := range rules {
		out[r.Metric] = r.PointsPerUnit
	}
	return out
}

// Performance holds one player's raw counting stats for one fixture.
// Immutable once recorded for a finished fixture. Nil stat pointers mean
// the stat was not reported and its term contributes zero.
type Performance struct {
	ID            string
	FixtureID     string
	PlayerID      string
	Points        *int
	Rebounds      *int
	Assists       *int
	Steals        *int
	Blocks        *int
	Turnovers     *int
	ThreeMade     *int
	FantasyPoints *int
	RecordedAt    time.Time
}

// TeamGameWeekScore is the per-(fantasy team, gameweek) contribution
// record that makes gameweek scoring idempotent: the team total is only
// ever adjusted by the delta against this row.
type TeamGameWeekScore struct {
	TeamID       string
	GameWeekID   string
	Points       int
	CalculatedAt time.Time
}
