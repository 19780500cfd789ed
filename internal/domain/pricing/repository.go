package pricing

import "context"

// Repository stores the append-only price audit trail.
type Repository interface {
	Append(ctx context.Context, change PriceChange) error
	ListByPlayer(ctx context.Context, playerID string) ([]PriceChange, error)
}
