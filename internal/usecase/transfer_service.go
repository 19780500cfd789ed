package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	"github.com/Alislimm/fantasy-ms/internal/domain/gameweek"
	"github.com/Alislimm/fantasy-ms/internal/domain/player"
	"github.com/Alislimm/fantasy-ms/internal/domain/transfer"
	idgen "github.com/Alislimm/fantasy-ms/internal/platform/id"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

// TransferPolicy tunes the optional business checks around a swap.
// EnforceBudget rejects swaps the team cannot afford and settles the price
// difference against the budget; when false, swaps are budget-neutral.
type TransferPolicy struct {
	EnforceBudget bool
}

type MakeTransferInput struct {
	TeamID      string
	GameWeekID  string
	PlayerOutID string
	PlayerInID  string
}

type TransferService struct {
	fantasyRepo  fantasy.Repository
	playerRepo   player.Repository
	gameWeekRepo gameweek.Repository
	transferRepo transfer.Repository
	policy       TransferPolicy
	idGen        idgen.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewTransferService(
	fantasyRepo fantasy.Repository,
	playerRepo player.Repository,
	gameWeekRepo gameweek.Repository,
	transferRepo transfer.Repository,
	policy TransferPolicy,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TransferService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TransferService{
		fantasyRepo:  fantasyRepo,
		playerRepo:   playerRepo,
		gameWeekRepo: gameWeekRepo,
		transferRepo: transferRepo,
		policy:       policy,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

// MakeTransfer swaps one squad player for another within a gameweek. The
// deactivate/activate/log/penalty writes are a single atomic unit; the first
// transfer of a gameweek is free and each extra one charges 10 points,
// reconciled against what this gameweek already charged.
func (s *TransferService) MakeTransfer(ctx context.Context, input MakeTransferInput) (transfer.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.MakeTransfer")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.GameWeekID = strings.TrimSpace(input.GameWeekID)
	input.PlayerOutID = strings.TrimSpace(input.PlayerOutID)
	input.PlayerInID = strings.TrimSpace(input.PlayerInID)
	if input.TeamID == "" {
		return transfer.Record{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.GameWeekID == "" {
		return transfer.Record{}, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}
	if input.PlayerOutID == "" || input.PlayerInID == "" {
		return transfer.Record{}, fmt.Errorf("%w: player_out_id and player_in_id are required", ErrInvalidInput)
	}
	if input.PlayerOutID == input.PlayerInID {
		return transfer.Record{}, fmt.Errorf("%w: player_out_id and player_in_id must differ", ErrInvalidInput)
	}

	team, exists, err := s.fantasyRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return transfer.Record{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return transfer.Record{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}

	gw, exists, err := s.gameWeekRepo.GetByID(ctx, input.GameWeekID)
	if err != nil {
		return transfer.Record{}, fmt.Errorf("get gameweek by id: %w", err)
	}
	if !exists {
		return transfer.Record{}, fmt.Errorf("%w: gameweek=%s", ErrNotFound, input.GameWeekID)
	}
	if !gw.MutationsOpen() {
		return transfer.Record{}, fmt.Errorf("%w: transfers closed for completed gameweek %d", ErrInvalidInput, gw.Number)
	}

	outLink, exists, err := s.fantasyRepo.GetActivePlayer(ctx, team.ID, input.PlayerOutID)
	if err != nil {
		return transfer.Record{}, fmt.Errorf("get outgoing squad player: %w", err)
	}
	if !exists {
		return transfer.Record{}, fmt.Errorf("%w: player %s is not active in team squad", ErrInvalidInput, input.PlayerOutID)
	}

	_, alreadyOwned, err := s.fantasyRepo.GetActivePlayer(ctx, team.ID, input.PlayerInID)
	if err != nil {
		return transfer.Record{}, fmt.Errorf("get incoming squad player: %w", err)
	}
	if alreadyOwned {
		return transfer.Record{}, fmt.Errorf("%w: player %s is already in team squad", ErrInvalidInput, input.PlayerInID)
	}

	inPlayer, exists, err := s.playerRepo.GetByID(ctx, input.PlayerInID)
	if err != nil {
		return transfer.Record{}, fmt.Errorf("get incoming player: %w", err)
	}
	if !exists {
		return transfer.Record{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerInID)
	}
	if !inPlayer.Active {
		return transfer.Record{}, fmt.Errorf("%w: player %s is not active", ErrInvalidInput, input.PlayerInID)
	}

	inPrice := inPlayer.MarketValue
	if inPrice < 0 {
		inPrice = 0
	}
	outPrice := outLink.PurchasePrice
	priceDiff := inPrice - outPrice

	if s.policy.EnforceBudget {
		if team.Budget-priceDiff < 0 {
			return transfer.Record{}, fmt.Errorf("%w: budget %d does not cover price difference %d", ErrInvalidInput, team.Budget, priceDiff)
		}
		team.Budget -= priceDiff
	}

	priorCount, err := s.transferRepo.CountByTeamAndGameWeek(ctx, team.ID, gw.ID)
	if err != nil {
		return transfer.Record{}, fmt.Errorf("count gameweek transfers: %w", err)
	}
	charged, _, err := s.transferRepo.GetPenaltyCharged(ctx, team.ID, gw.ID)
	if err != nil {
		return transfer.Record{}, fmt.Errorf("get charged penalty: %w", err)
	}

	penalty := transfer.Penalty(priorCount + 1)
	penaltyDelta := penalty - charged.Points
	if penaltyDelta < 0 {
		penaltyDelta = 0
	}

	team.TotalPoints -= penaltyDelta
	if team.TotalPoints < 0 {
		team.TotalPoints = 0
	}

	now := s.now().UTC()
	team.UpdatedAt = now

	recordID, err := s.idGen.NewID()
	if err != nil {
		return transfer.Record{}, fmt.Errorf("generate transfer id: %w", err)
	}
	inLinkID, err := s.idGen.NewID()
	if err != nil {
		return transfer.Record{}, fmt.Errorf("generate squad link id: %w", err)
	}

	outLink.Active = false
	outLink.ReleasedAt = &now

	inLink := fantasy.TeamPlayer{
		ID:            inLinkID,
		TeamID:        team.ID,
		PlayerID:      inPlayer.ID,
		PurchasePrice: inPrice,
		Active:        true,
		AcquiredAt:    now,
	}

	record := transfer.Record{
		ID:              recordID,
		TeamID:          team.ID,
		GameWeekID:      gw.ID,
		PlayerOutID:     input.PlayerOutID,
		PlayerInID:      input.PlayerInID,
		PriceDifference: priceDiff,
		CreatedAt:       now,
	}
	charge := transfer.PenaltyCharge{
		TeamID:     team.ID,
		GameWeekID: gw.ID,
		Points:     penalty,
		UpdatedAt:  now,
	}

	if err := s.fantasyRepo.ExecuteTransfer(ctx, team, outLink, inLink, record, charge); err != nil {
		if errors.Is(err, fantasy.ErrVersionMismatch) {
			return transfer.Record{}, fmt.Errorf("%w: team %s was modified concurrently", ErrConflict, team.ID)
		}
		return transfer.Record{}, fmt.Errorf("execute transfer: %w", err)
	}

	s.logger.InfoContext(ctx, "transfer executed",
		"team_id", team.ID,
		"gameweek_id", gw.ID,
		"player_out_id", input.PlayerOutID,
		"player_in_id", input.PlayerInID,
		"price_difference", priceDiff,
		"penalty_points", penaltyDelta,
	)

	return record, nil
}

func (s *TransferService) ListTransfers(ctx context.Context, teamID string) ([]transfer.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.ListTransfers")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	records, err := s.transferRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list transfers by team: %w", err)
	}

	return records, nil
}
