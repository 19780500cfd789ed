package memory

import (
	"context"
	"sync"

	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	"github.com/Alislimm/fantasy-ms/internal/domain/transfer"
)

// FantasyRepository keeps the whole team aggregate in one store so the
// multi-row write paths stay atomic under a single lock. It also serves
// the read side of the transfer log and penalty ledger.
type FantasyRepository struct {
	mu         sync.RWMutex
	teams      map[string]fantasy.Team
	teamOrders []string
	links      map[string]fantasy.TeamPlayer
	linkOrders []string
	transfers  []transfer.Record
	penalties  map[string]transfer.PenaltyCharge
}

func NewFantasyRepository() *FantasyRepository {
	return &FantasyRepository{
		teams:     make(map[string]fantasy.Team),
		links:     make(map[string]fantasy.TeamPlayer),
		penalties: make(map[string]transfer.PenaltyCharge),
	}
}

func (r *FantasyRepository) GetByID(_ context.Context, id string) (fantasy.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[id]
	if !ok {
		return fantasy.Team{}, false, nil
	}

	return t, true, nil
}

func (r *FantasyRepository) GetByOwner(_ context.Context, ownerID string) (fantasy.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.teamOrders {
		if t := r.teams[id]; t.OwnerID == ownerID {
			return t, true, nil
		}
	}

	return fantasy.Team{}, false, nil
}

func (r *FantasyRepository) List(_ context.Context) ([]fantasy.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Team, 0, len(r.teamOrders))
	for _, id := range r.teamOrders {
		out = append(out, r.teams[id])
	}

	return out, nil
}

func (r *FantasyRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.teams), nil
}

func (r *FantasyRepository) Create(_ context.Context, t fantasy.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[t.ID]; !exists {
		r.teamOrders = append(r.teamOrders, t.ID)
	}
	r.teams[t.ID] = t

	return nil
}

func (r *FantasyRepository) Save(_ context.Context, t fantasy.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.saveLocked(t)
}

func (r *FantasyRepository) ListActivePlayers(_ context.Context, teamID string) ([]fantasy.TeamPlayer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.TeamPlayer, 0, 8)
	for _, id := range r.linkOrders {
		if link := r.links[id]; link.TeamID == teamID && link.Active {
			out = append(out, cloneTeamPlayer(link))
		}
	}

	return out, nil
}

func (r *FantasyRepository) GetActivePlayer(_ context.Context, teamID, playerID string) (fantasy.TeamPlayer, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.linkOrders {
		link := r.links[id]
		if link.TeamID == teamID && link.PlayerID == playerID && link.Active {
			return cloneTeamPlayer(link), true, nil
		}
	}

	return fantasy.TeamPlayer{}, false, nil
}

func (r *FantasyRepository) CountActiveTeamsByPlayer(_ context.Context, playerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	holders := make(map[string]struct{})
	for _, id := range r.linkOrders {
		if link := r.links[id]; link.PlayerID == playerID && link.Active {
			holders[link.TeamID] = struct{}{}
		}
	}

	return len(holders), nil
}

func (r *FantasyRepository) BuildSquad(_ context.Context, t fantasy.Team, links []fantasy.TeamPlayer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.saveLocked(t); err != nil {
		return err
	}
	for _, link := range links {
		r.links[link.ID] = cloneTeamPlayer(link)
		r.linkOrders = append(r.linkOrders, link.ID)
	}

	return nil
}

func (r *FantasyRepository) ExecuteTransfer(
	_ context.Context,
	t fantasy.Team,
	out fantasy.TeamPlayer,
	in fantasy.TeamPlayer,
	record transfer.Record,
	charge transfer.PenaltyCharge,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.saveLocked(t); err != nil {
		return err
	}

	r.links[out.ID] = cloneTeamPlayer(out)
	if _, exists := r.links[in.ID]; !exists {
		r.linkOrders = append(r.linkOrders, in.ID)
	}
	r.links[in.ID] = cloneTeamPlayer(in)

	r.transfers = append(r.transfers, record)
	r.penalties[penaltyKey(charge.TeamID, charge.GameWeekID)] = charge

	return nil
}

func (r *FantasyRepository) CountByTeamAndGameWeek(_ context.Context, teamID, gameWeekID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, record := range r.transfers {
		if record.TeamID == teamID && record.GameWeekID == gameWeekID {
			count++
		}
	}

	return count, nil
}

func (r *FantasyRepository) CountByTeam(_ context.Context, teamID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, record := range r.transfers {
		if record.TeamID == teamID {
			count++
		}
	}

	return count, nil
}

func (r *FantasyRepository) ListByTeam(_ context.Context, teamID string) ([]transfer.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]transfer.Record, 0, 8)
	for _, record := range r.transfers {
		if record.TeamID == teamID {
			out = append(out, record)
		}
	}

	return out, nil
}

func (r *FantasyRepository) GetPenaltyCharged(_ context.Context, teamID, gameWeekID string) (transfer.PenaltyCharge, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	charge, ok := r.penalties[penaltyKey(teamID, gameWeekID)]
	if !ok {
		return transfer.PenaltyCharge{}, false, nil
	}

	return charge, true, nil
}

// saveLocked writes the team row with an optimistic version bump. Callers
// hold the write lock.
func (r *FantasyRepository) saveLocked(t fantasy.Team) error {
	stored, ok := r.teams[t.ID]
	if !ok {
		return fantasy.ErrVersionMismatch
	}
	if stored.Version != t.Version {
		return fantasy.ErrVersionMismatch
	}

	t.Version++
	r.teams[t.ID] = t

	return nil
}

func penaltyKey(teamID, gameWeekID string) string {
	return teamID + "::" + gameWeekID
}

func cloneTeamPlayer(link fantasy.TeamPlayer) fantasy.TeamPlayer {
	copied := link
	if link.ReleasedAt != nil {
		releasedAt := *link.ReleasedAt
		copied.ReleasedAt = &releasedAt
	}
	return copied
}
