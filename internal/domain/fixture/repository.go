package fixture

import "context"

// Repository exposes fixture persistence operations.
type Repository interface {
	GetByID(ctx context.Context, id string) (Fixture, bool, error)
	ListByGameWeek(ctx context.Context, gameWeekID string) ([]Fixture, error)
	Create(ctx context.Context, f Fixture) error
	UpdateStatus(ctx context.Context, id string, status Status) error
}
