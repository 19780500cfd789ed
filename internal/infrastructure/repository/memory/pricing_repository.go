package memory

import (
	"context"
	"sync"

	"github.com/Alislimm/fantasy-ms/internal/domain/pricing"
)

type PricingRepository struct {
	mu    sync.RWMutex
	items []pricing.PriceChange
}

func NewPricingRepository() *PricingRepository {
	return &PricingRepository{}
}

func (r *PricingRepository) Append(_ context.Context, change pricing.PriceChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, change)
	return nil
}

func (r *PricingRepository) ListByPlayer(_ context.Context, playerID string) ([]pricing.PriceChange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pricing.PriceChange, 0, 8)
	for _, change := range r.items {
		if change.PlayerID == playerID {
			out = append(out, change)
		}
	}

	return out, nil
}
