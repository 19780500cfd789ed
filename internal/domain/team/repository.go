package team

import "context"

// Repository describes basketball team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id string) (Team, bool, error)
	List(ctx context.Context) ([]Team, error)
}
