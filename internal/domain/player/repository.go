package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id string) (Player, bool, error)
	GetByIDs(ctx context.Context, ids []string) ([]Player, error)
	ListActive(ctx context.Context) ([]Player, error)
	UpdateMarketValue(ctx context.Context, playerID string, marketValue int64) error
}
