package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	"github.com/Alislimm/fantasy-ms/internal/domain/player"
	idgen "github.com/Alislimm/fantasy-ms/internal/platform/id"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

// BuildSquadInput is the incoming payload for the one-time initial build.
type BuildSquadInput struct {
	TeamID    string
	PlayerIDs []string
}

// SquadPlayer is one roster entry joined with its player row.
type SquadPlayer struct {
	Link   fantasy.TeamPlayer
	Player player.Player
}

type SquadService struct {
	fantasyRepo fantasy.Repository
	playerRepo  player.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewSquadService(
	fantasyRepo fantasy.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *SquadService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SquadService{
		fantasyRepo: fantasyRepo,
		playerRepo:  playerRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// BuildInitialSquad creates all eight roster links and debits the budget
// atomically. It is only allowed while the squad is empty; afterwards
// membership changes go through the transfer service alone.
func (s *SquadService) BuildInitialSquad(ctx context.Context, input BuildSquadInput) (fantasy.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.BuildInitialSquad")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.TeamID == "" {
		return fantasy.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	playerIDs, err := cleanPlayerIDs(input.PlayerIDs)
	if err != nil {
		return fantasy.Team{}, err
	}
	if len(playerIDs) != fantasy.SquadSize {
		return fantasy.Team{}, fmt.Errorf("%w: initial squad must contain exactly %d players", ErrInvalidInput, fantasy.SquadSize)
	}

	team, exists, err := s.fantasyRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return fantasy.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}

	existing, err := s.fantasyRepo.ListActivePlayers(ctx, team.ID)
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("list active squad players: %w", err)
	}
	if len(existing) > 0 {
		return fantasy.Team{}, fmt.Errorf("%w: squad already built, use transfers to change membership", ErrInvalidInput)
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("get players by ids: %w", err)
	}
	playerByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}

	now := s.now().UTC()
	var totalCost int64
	links := make([]fantasy.TeamPlayer, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		p, ok := playerByID[playerID]
		if !ok {
			return fantasy.Team{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
		}
		if !p.Active {
			return fantasy.Team{}, fmt.Errorf("%w: player %s is not active", ErrInvalidInput, playerID)
		}

		linkID, err := s.idGen.NewID()
		if err != nil {
			return fantasy.Team{}, fmt.Errorf("generate squad link id: %w", err)
		}
		totalCost += p.MarketValue
		links = append(links, fantasy.TeamPlayer{
			ID:            linkID,
			TeamID:        team.ID,
			PlayerID:      p.ID,
			PurchasePrice: p.MarketValue,
			Active:        true,
			AcquiredAt:    now,
		})
	}

	if totalCost > team.Budget {
		return fantasy.Team{}, fmt.Errorf("%w: squad cost %d exceeds budget %d", ErrInvalidInput, totalCost, team.Budget)
	}

	team.Budget -= totalCost
	team.UpdatedAt = now

	if err := s.fantasyRepo.BuildSquad(ctx, team, links); err != nil {
		if errors.Is(err, fantasy.ErrVersionMismatch) {
			return fantasy.Team{}, fmt.Errorf("%w: squad build lost a concurrent update", ErrConflict)
		}
		return fantasy.Team{}, fmt.Errorf("build squad: %w", err)
	}

	s.logger.InfoContext(ctx, "initial squad built",
		"team_id", team.ID,
		"player_count", len(links),
		"total_cost", totalCost,
		"remaining_budget", team.Budget,
	)

	return team, nil
}

// GetSquad returns the active roster joined with player rows.
func (s *SquadService) GetSquad(ctx context.Context, teamID string) ([]SquadPlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetSquad")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	if _, exists, err := s.fantasyRepo.GetByID(ctx, teamID); err != nil {
		return nil, fmt.Errorf("get team by id: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	links, err := s.fantasyRepo.ListActivePlayers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list active squad players: %w", err)
	}
	if len(links) == 0 {
		return []SquadPlayer{}, nil
	}

	ids := make([]string, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	playerByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}

	out := make([]SquadPlayer, 0, len(links))
	for _, link := range links {
		out = append(out, SquadPlayer{Link: link, Player: playerByID[link.PlayerID]})
	}

	return out, nil
}

func cleanPlayerIDs(playerIDs []string) ([]string, error) {
	cleaned := make([]string, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: duplicate player id %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}

	return cleaned, nil
}
