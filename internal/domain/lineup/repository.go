package lineup

import "context"

// Repository exposes lineup persistence operations. Upsert must replace
// the full slot set in one transaction.
type Repository interface {
	GetByTeamAndGameWeek(ctx context.Context, teamID, gameWeekID string) (Lineup, bool, error)
	ListByGameWeek(ctx context.Context, gameWeekID string) ([]Lineup, error)
	Upsert(ctx context.Context, l Lineup) error
}
