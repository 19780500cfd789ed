package scoring

// Default points-per-unit multipliers used when the rule table has no row
// for a metric.
const (
	defaultPointRate     = 1
	defaultReboundRate   = 1
	defaultAssistRate    = 1
	defaultStealRate     = 3
	defaultBlockRate     = 3
	defaultTurnoverRate  = 1
	defaultThreeMadeRate = 1
)

// CalculatePoints converts one performance into fantasy points. Pure:
// same inputs always produce the same output, and absent stats zero their
// term. Stored rule decimals truncate toward zero; the turnover term is
// always a deduction.
func CalculatePoints(p Performance, rules RuleMap) int {
	points := 0
	points += statValue(p.Points) * rate(rules, MetricPoint, defaultPointRate)
	points += statValue(p.Rebounds) * rate(rules, MetricRebound, defaultReboundRate)
	points += statValue(p.Assists) * rate(rules, MetricAssist, defaultAssistRate)
	points += statValue(p.Steals) * rate(rules, MetricSteal, defaultStealRate)
	points += statValue(p.Blocks) * rate(rules, MetricBlock, defaultBlockRate)
	points -= statValue(p.Turnovers) * rate(rules, MetricTurnover, defaultTurnoverRate)
	points += statValue(p.ThreeMade) * rate(rules, MetricThreeMade, defaultThreeMadeRate)

	return points
}

func rate(rules RuleMap, metric string, defaultRate int) int {
	v, ok := rules[metric]
	if !ok {
		return defaultRate
	}

	multiplier := int(v) // truncation toward zero, no rounding
	if metric == MetricTurnover && multiplier < 0 {
		multiplier = -multiplier
	}
	return multiplier
}

func statValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
