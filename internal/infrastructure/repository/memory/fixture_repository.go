package memory

import (
	"context"
	"sync"

	"github.com/Alislimm/fantasy-ms/internal/domain/fixture"
)

type FixtureRepository struct {
	mu     sync.RWMutex
	items  map[string]fixture.Fixture
	orders []string
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	items := make(map[string]fixture.Fixture, len(fixtures))
	orders := make([]string, 0, len(fixtures))

	for _, f := range fixtures {
		items[f.ID] = f
		orders = append(orders, f.ID)
	}

	return &FixtureRepository{
		items:  items,
		orders: orders,
	}
}

func (r *FixtureRepository) GetByID(_ context.Context, id string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.items[id]
	if !ok {
		return fixture.Fixture{}, false, nil
	}

	return f, true, nil
}

func (r *FixtureRepository) ListByGameWeek(_ context.Context, gameWeekID string) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.orders))
	for _, id := range r.orders {
		if f := r.items[id]; f.GameWeekID == gameWeekID {
			out = append(out, f)
		}
	}

	return out, nil
}

func (r *FixtureRepository) Create(_ context.Context, f fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[f.ID]; !exists {
		r.orders = append(r.orders, f.ID)
	}
	r.items[f.ID] = f

	return nil
}

func (r *FixtureRepository) UpdateStatus(_ context.Context, id string, status fixture.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.items[id]
	if !ok {
		return nil
	}
	f.Status = status
	r.items[id] = f

	return nil
}
