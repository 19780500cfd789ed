package memory

import (
	"context"
	"sync"

	"github.com/Alislimm/fantasy-ms/internal/domain/gameweek"
)

type GameWeekRepository struct {
	mu     sync.RWMutex
	items  map[string]gameweek.GameWeek
	orders []string
}

func NewGameWeekRepository(gameWeeks []gameweek.GameWeek) *GameWeekRepository {
	items := make(map[string]gameweek.GameWeek, len(gameWeeks))
	orders := make([]string, 0, len(gameWeeks))

	for _, gw := range gameWeeks {
		items[gw.ID] = gw
		orders = append(orders, gw.ID)
	}

	return &GameWeekRepository{
		items:  items,
		orders: orders,
	}
}

func (r *GameWeekRepository) GetByID(_ context.Context, id string) (gameweek.GameWeek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gw, ok := r.items[id]
	if !ok {
		return gameweek.GameWeek{}, false, nil
	}

	return gw, true, nil
}

func (r *GameWeekRepository) GetByNumber(_ context.Context, number int) (gameweek.GameWeek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		if gw := r.items[id]; gw.Number == number {
			return gw, true, nil
		}
	}

	return gameweek.GameWeek{}, false, nil
}

func (r *GameWeekRepository) List(_ context.Context) ([]gameweek.GameWeek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.GameWeek, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *GameWeekRepository) Create(_ context.Context, gw gameweek.GameWeek) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[gw.ID]; !exists {
		r.orders = append(r.orders, gw.ID)
	}
	r.items[gw.ID] = gw

	return nil
}

func (r *GameWeekRepository) UpdateStatus(_ context.Context, id string, status gameweek.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gw, ok := r.items[id]
	if !ok {
		return nil
	}
	gw.Status = status
	r.items[id] = gw

	return nil
}
