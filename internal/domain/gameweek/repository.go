package gameweek

import "context"

// Repository exposes gameweek persistence operations.
type Repository interface {
	GetByID(ctx context.Context, id string) (GameWeek, bool, error)
	GetByNumber(ctx context.Context, number int) (GameWeek, bool, error)
	List(ctx context.Context) ([]GameWeek, error)
	Create(ctx context.Context, gw GameWeek) error
	UpdateStatus(ctx context.Context, id string, status Status) error
}
