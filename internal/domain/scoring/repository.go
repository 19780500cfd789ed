package scoring

import "context"

// RuleRepository reads the admin-managed rule table.
type RuleRepository interface {
	List(ctx context.Context) ([]Rule, error)
}

// PerformanceRepository stores per-(fixture, player) raw statistics.
type PerformanceRepository interface {
	Create(ctx context.Context, p Performance) error
	ListByFixtures(ctx context.Context, fixtureIDs []string) ([]Performance, error)
	// ListRecentByPlayer returns the newest performances first, at most limit rows.
	ListRecentByPlayer(ctx context.Context, playerID string, limit int) ([]Performance, error)
	GetByFixtureAndPlayer(ctx context.Context, fixtureID, playerID string) (Performance, bool, error)
}

// ScoreRepository stores the per-(team, gameweek) contribution records.
type ScoreRepository interface {
	GetTeamGameWeekScore(ctx context.Context, teamID, gameWeekID string) (TeamGameWeekScore, bool, error)
	UpsertTeamGameWeekScore(ctx context.Context, score TeamGameWeekScore) error
	ListByGameWeek(ctx context.Context, gameWeekID string) ([]TeamGameWeekScore, error)
}
