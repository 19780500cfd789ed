package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	"github.com/Alislimm/fantasy-ms/internal/domain/player"
	"github.com/Alislimm/fantasy-ms/internal/domain/pricing"
	"github.com/Alislimm/fantasy-ms/internal/domain/scoring"
	idgen "github.com/Alislimm/fantasy-ms/internal/platform/id"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

const defaultPricingWorkers = 8

type RecalculatePricesInput struct {
	GameWeekID string
	MaxWorkers int
}

type PriceUpdateResult struct {
	PlayerID         string  `json:"player_id"`
	OldPrice         int64   `json:"old_price"`
	NewPrice         int64   `json:"new_price"`
	PerformanceScore float64 `json:"performance_score"`
	OwnershipPct     float64 `json:"ownership_pct"`
	Reason           string  `json:"reason"`
}

type RecalculatePricesResult struct {
	PlayerCount  int                 `json:"player_count"`
	UpdatedCount int                 `json:"updated_count"`
	SkippedCount int                 `json:"skipped_count"`
	FailedCount  int                 `json:"failed_count"`
	WorkerCount  int                 `json:"worker_count"`
	Updates      []PriceUpdateResult `json:"updates"`
}

type PricingService struct {
	playerRepo  player.Repository
	fantasyRepo fantasy.Repository
	perfRepo    scoring.PerformanceRepository
	pricingRepo pricing.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewPricingService(
	playerRepo player.Repository,
	fantasyRepo fantasy.Repository,
	perfRepo scoring.PerformanceRepository,
	pricingRepo pricing.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *PricingService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PricingService{
		playerRepo:  playerRepo,
		fantasyRepo: fantasyRepo,
		perfRepo:    perfRepo,
		pricingRepo: pricingRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// RecalculatePrices reprices every active player from recent performance and
// current ownership. Moves smaller than 0.10 are dropped without a write;
// persisted moves update the player row and append one audit entry.
func (s *PricingService) RecalculatePrices(ctx context.Context, input RecalculatePricesInput) (RecalculatePricesResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PricingService.RecalculatePrices")
	defer span.End()

	input.GameWeekID = strings.TrimSpace(input.GameWeekID)

	players, err := s.playerRepo.ListActive(ctx)
	if err != nil {
		return RecalculatePricesResult{}, fmt.Errorf("list active players: %w", err)
	}
	teamCount, err := s.fantasyRepo.Count(ctx)
	if err != nil {
		return RecalculatePricesResult{}, fmt.Errorf("count fantasy teams: %w", err)
	}

	workerCount := input.MaxWorkers
	if workerCount < 1 {
		workerCount = defaultPricingWorkers
	}
	if workerCount > len(players) && len(players) > 0 {
		workerCount = len(players)
	}

	result := RecalculatePricesResult{
		PlayerCount: len(players),
		WorkerCount: workerCount,
	}
	if len(players) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecalculatePricesResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		updatedCount atomic.Int64
		skippedCount atomic.Int64
		failedCount  atomic.Int64
	)
	updates := make(chan PriceUpdateResult, len(players))

	var workers sync.WaitGroup
	for _, p := range players {
		p := p
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			update, persisted, err := s.repricePlayer(ctx, p, teamCount, input.GameWeekID)
			if err != nil {
				failedCount.Add(1)
				s.logger.ErrorContext(ctx, "player reprice failed", "player_id", p.ID, "error", err.Error())
				return
			}
			if !persisted {
				skippedCount.Add(1)
				return
			}
			updatedCount.Add(1)
			updates <- update
		}); err != nil {
			workers.Done()
			return RecalculatePricesResult{}, fmt.Errorf("submit player to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(updates)

	for update := range updates {
		result.Updates = append(result.Updates, update)
	}
	sort.SliceStable(result.Updates, func(i, j int) bool {
		return result.Updates[i].PlayerID < result.Updates[j].PlayerID
	})

	result.UpdatedCount = int(updatedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "prices recalculated",
		"players", result.PlayerCount,
		"updated", result.UpdatedCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)

	return result, nil
}

func (s *PricingService) repricePlayer(ctx context.Context, p player.Player, teamCount int, gameWeekID string) (PriceUpdateResult, bool, error) {
	recent, err := s.perfRepo.ListRecentByPlayer(ctx, p.ID, pricing.RecentPerformanceWindow)
	if err != nil {
		return PriceUpdateResult{}, false, fmt.Errorf("list recent performances: %w", err)
	}
	perfScore := pricing.PerformanceScore(recent)

	ownershipPct, err := ownershipPercentage(ctx, s.fantasyRepo, p.ID, teamCount)
	if err != nil {
		return PriceUpdateResult{}, false, err
	}

	multiplier := pricing.Multiplier(perfScore, ownershipPct)
	newPrice := pricing.NextPrice(p.MarketValue, multiplier)

	change := newPrice - p.MarketValue
	if change < 0 {
		change = -change
	}
	if change < pricing.MinPersistedChange {
		return PriceUpdateResult{}, false, nil
	}

	reason := fmt.Sprintf("performance score %.1f, ownership %.2f%%: price %s -> %s",
		perfScore, ownershipPct, formatPrice(p.MarketValue), formatPrice(newPrice))

	changeID, err := s.idGen.NewID()
	if err != nil {
		return PriceUpdateResult{}, false, fmt.Errorf("generate price change id: %w", err)
	}

	if err := s.playerRepo.UpdateMarketValue(ctx, p.ID, newPrice); err != nil {
		return PriceUpdateResult{}, false, fmt.Errorf("update market value: %w", err)
	}
	if err := s.pricingRepo.Append(ctx, pricing.PriceChange{
		ID:               changeID,
		PlayerID:         p.ID,
		GameWeekID:       gameWeekID,
		OldPrice:         p.MarketValue,
		NewPrice:         newPrice,
		OwnershipPct:     ownershipPct,
		PerformanceScore: perfScore,
		Reason:           reason,
		CreatedAt:        s.now().UTC(),
	}); err != nil {
		return PriceUpdateResult{}, false, fmt.Errorf("append price change: %w", err)
	}

	return PriceUpdateResult{
		PlayerID:         p.ID,
		OldPrice:         p.MarketValue,
		NewPrice:         newPrice,
		PerformanceScore: perfScore,
		OwnershipPct:     ownershipPct,
		Reason:           reason,
	}, true, nil
}

// formatPrice renders hundredths as a decimal string, e.g. 1250 -> "12.50".
func formatPrice(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
