package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Alislimm/fantasy-ms/internal/domain/scoring"
)

type RuleRepository struct {
	mu    sync.RWMutex
	items []scoring.Rule
}

func NewRuleRepository(rules []scoring.Rule) *RuleRepository {
	return &RuleRepository{items: append([]scoring.Rule(nil), rules...)}
}

func (r *RuleRepository) List(_ context.Context) ([]scoring.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]scoring.Rule(nil), r.items...), nil
}

type PerformanceRepository struct {
	mu     sync.RWMutex
	items  map[string]scoring.Performance
	orders []string
}

func NewPerformanceRepository() *PerformanceRepository {
	return &PerformanceRepository{items: make(map[string]scoring.Performance)}
}

func (r *PerformanceRepository) Create(_ context.Context, p scoring.Performance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; !exists {
		r.orders = append(r.orders, p.ID)
	}
	r.items[p.ID] = clonePerformance(p)

	return nil
}

func (r *PerformanceRepository) ListByFixtures(_ context.Context, fixtureIDs []string) ([]scoring.Performance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(fixtureIDs))
	for _, id := range fixtureIDs {
		wanted[id] = struct{}{}
	}

	out := make([]scoring.Performance, 0, len(r.orders))
	for _, id := range r.orders {
		p := r.items[id]
		if _, ok := wanted[p.FixtureID]; ok {
			out = append(out, clonePerformance(p))
		}
	}

	return out, nil
}

func (r *PerformanceRepository) ListRecentByPlayer(_ context.Context, playerID string, limit int) ([]scoring.Performance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Performance, 0, limit)
	for _, id := range r.orders {
		if p := r.items[id]; p.PlayerID == playerID {
			out = append(out, clonePerformance(p))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *PerformanceRepository) GetByFixtureAndPlayer(_ context.Context, fixtureID, playerID string) (scoring.Performance, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		p := r.items[id]
		if p.FixtureID == fixtureID && p.PlayerID == playerID {
			return clonePerformance(p), true, nil
		}
	}

	return scoring.Performance{}, false, nil
}

type ScoreRepository struct {
	mu    sync.RWMutex
	items map[string]scoring.TeamGameWeekScore
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{items: make(map[string]scoring.TeamGameWeekScore)}
}

func (r *ScoreRepository) GetTeamGameWeekScore(_ context.Context, teamID, gameWeekID string) (scoring.TeamGameWeekScore, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	score, ok := r.items[scoreKey(teamID, gameWeekID)]
	if !ok {
		return scoring.TeamGameWeekScore{}, false, nil
	}

	return score, true, nil
}

func (r *ScoreRepository) UpsertTeamGameWeekScore(_ context.Context, score scoring.TeamGameWeekScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[scoreKey(score.TeamID, score.GameWeekID)] = score
	return nil
}

func (r *ScoreRepository) ListByGameWeek(_ context.Context, gameWeekID string) ([]scoring.TeamGameWeekScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.TeamGameWeekScore, 0, len(r.items))
	for _, score := range r.items {
		if score.GameWeekID == gameWeekID {
			out = append(out, score)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })

	return out, nil
}

func scoreKey(teamID, gameWeekID string) string {
	return teamID + "::" + gameWeekID
}

func clonePerformance(p scoring.Performance) scoring.Performance {
	copied := p
	copied.Points = cloneIntPtr(p.Points)
	copied.Rebounds = cloneIntPtr(p.Rebounds)
	copied.Assists = cloneIntPtr(p.Assists)
	copied.Steals = cloneIntPtr(p.Steals)
	copied.Blocks = cloneIntPtr(p.Blocks)
	copied.Turnovers = cloneIntPtr(p.Turnovers)
	copied.ThreeMade = cloneIntPtr(p.ThreeMade)
	copied.FantasyPoints = cloneIntPtr(p.FantasyPoints)
	return copied
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
