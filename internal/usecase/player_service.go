package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	"github.com/Alislimm/fantasy-ms/internal/domain/player"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

// PlayerListing is one player row enriched with market signals.
type PlayerListing struct {
	Player       player.Player `json:"player"`
	OwnershipPct float64       `json:"ownership_pct"`
}

type PlayerService struct {
	playerRepo  player.Repository
	fantasyRepo fantasy.Repository
	logger      *logging.Logger
}

func NewPlayerService(playerRepo player.Repository, fantasyRepo fantasy.Repository, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo:  playerRepo,
		fantasyRepo: fantasyRepo,
		logger:      logger,
	}
}

func (s *PlayerService) GetPlayer(ctx context.Context, id string) (PlayerListing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return PlayerListing{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return PlayerListing{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return PlayerListing{}, fmt.Errorf("%w: player=%s", ErrNotFound, id)
	}

	teamCount, err := s.fantasyRepo.Count(ctx)
	if err != nil {
		return PlayerListing{}, fmt.Errorf("count fantasy teams: %w", err)
	}
	pct, err := ownershipPercentage(ctx, s.fantasyRepo, p.ID, teamCount)
	if err != nil {
		return PlayerListing{}, err
	}

	return PlayerListing{Player: p, OwnershipPct: pct}, nil
}

// ListPlayers returns all active players with their ownership percentage.
func (s *PlayerService) ListPlayers(ctx context.Context) ([]PlayerListing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	players, err := s.playerRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active players: %w", err)
	}
	teamCount, err := s.fantasyRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count fantasy teams: %w", err)
	}

	listings := make([]PlayerListing, 0, len(players))
	for _, p := range players {
		pct, err := ownershipPercentage(ctx, s.fantasyRepo, p.ID, teamCount)
		if err != nil {
			return nil, err
		}
		listings = append(listings, PlayerListing{Player: p, OwnershipPct: pct})
	}

	return listings, nil
}

// ownershipPercentage is (active-holding teams / total teams) * 100, rounded
// half-up to 2 decimals. Zero teams means zero ownership.
func ownershipPercentage(ctx context.Context, repo fantasy.Repository, playerID string, teamCount int) (float64, error) {
	if teamCount == 0 {
		return 0, nil
	}
	holders, err := repo.CountActiveTeamsByPlayer(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("count active holders for player %s: %w", playerID, err)
	}
	pct := float64(holders) / float64(teamCount) * 100
	return math.Floor(pct*100+0.5) / 100, nil
}
