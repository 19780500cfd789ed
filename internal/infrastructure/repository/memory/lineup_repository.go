package memory

import (
	"context"
	"sync"

	"github.com/Alislimm/fantasy-ms/internal/domain/lineup"
)

type LineupRepository struct {
	mu    sync.RWMutex
	items map[string]lineup.Lineup
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{items: make(map[string]lineup.Lineup)}
}

func (r *LineupRepository) GetByTeamAndGameWeek(_ context.Context, teamID, gameWeekID string) (lineup.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[lineupKey(teamID, gameWeekID)]
	if !ok {
		return lineup.Lineup{}, false, nil
	}

	return cloneLineup(l), true, nil
}

func (r *LineupRepository) ListByGameWeek(_ context.Context, gameWeekID string) ([]lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lineup.Lineup, 0, len(r.items))
	for _, l := range r.items {
		if l.GameWeekID == gameWeekID {
			out = append(out, cloneLineup(l))
		}
	}

	return out, nil
}

func (r *LineupRepository) Upsert(_ context.Context, l lineup.Lineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[lineupKey(l.TeamID, l.GameWeekID)] = cloneLineup(l)
	return nil
}

func lineupKey(teamID, gameWeekID string) string {
	return teamID + "::" + gameWeekID
}

func cloneLineup(l lineup.Lineup) lineup.Lineup {
	copied := l
	copied.Slots = append([]lineup.Slot(nil), l.Slots...)
	return copied
}
