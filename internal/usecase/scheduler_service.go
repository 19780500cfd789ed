package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/gameweek"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
	"github.com/Alislimm/fantasy-ms/internal/platform/resilience"
)

type CloseDueGameWeeksResult struct {
	ClosedCount  int      `json:"closed_count"`
	ScoredPoints int      `json:"scored_points"`
	PricesRun    bool     `json:"prices_run"`
	GameWeekIDs  []string `json:"gameweek_ids"`
	Shared       bool     `json:"shared"`
}

// SchedulerService runs the externally triggered maintenance pass. It never
// schedules itself; an HTTP job endpoint or cron drives it.
type SchedulerService struct {
	gameWeekRepo    gameweek.Repository
	gameWeekService *GameWeekService
	pricingService  *PricingService
	logger          *logging.Logger
	now             func() time.Time

	group resilience.SingleFlight
}

func NewSchedulerService(
	gameWeekRepo gameweek.Repository,
	gameWeekService *GameWeekService,
	pricingService *PricingService,
	logger *logging.Logger,
) *SchedulerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SchedulerService{
		gameWeekRepo:    gameWeekRepo,
		gameWeekService: gameWeekService,
		pricingService:  pricingService,
		logger:          logger,
		now:             time.Now,
	}
}

// CloseDueGameWeeks flips every active gameweek whose end date has passed to
// completed, scores each newly completed one, then runs the pricing engine
// once when anything closed. Concurrent triggers collapse into one run.
func (s *SchedulerService) CloseDueGameWeeks(ctx context.Context) (CloseDueGameWeeksResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SchedulerService.CloseDueGameWeeks")
	defer span.End()

	value, err, shared := s.group.Do("close-due-gameweeks", func() (any, error) {
		return s.closeDueGameWeeks(ctx)
	})
	if err != nil {
		return CloseDueGameWeeksResult{}, err
	}

	result := value.(CloseDueGameWeeksResult)
	result.Shared = shared
	return result, nil
}

func (s *SchedulerService) closeDueGameWeeks(ctx context.Context) (CloseDueGameWeeksResult, error) {
	now := s.now().UTC()

	gameWeeks, err := s.gameWeekRepo.List(ctx)
	if err != nil {
		return CloseDueGameWeeksResult{}, fmt.Errorf("list gameweeks: %w", err)
	}

	var result CloseDueGameWeeksResult
	for _, gw := range gameWeeks {
		if gw.Status != gameweek.StatusActive || gw.EndDate.After(now) {
			continue
		}

		if err := s.gameWeekRepo.UpdateStatus(ctx, gw.ID, gameweek.StatusCompleted); err != nil {
			return result, fmt.Errorf("complete gameweek %d: %w", gw.Number, err)
		}
		result.ClosedCount++
		result.GameWeekIDs = append(result.GameWeekIDs, gw.ID)

		delta, err := s.gameWeekService.CalculateGameWeekPoints(ctx, gw.ID)
		if err != nil {
			return result, fmt.Errorf("score gameweek %d: %w", gw.Number, err)
		}
		result.ScoredPoints += delta

		s.logger.InfoContext(ctx, "gameweek closed",
			"gameweek_id", gw.ID,
			"number", gw.Number,
			"points_delta", delta,
		)
	}

	if result.ClosedCount > 0 {
		lastID := result.GameWeekIDs[len(result.GameWeekIDs)-1]
		if _, err := s.pricingService.RecalculatePrices(ctx, RecalculatePricesInput{GameWeekID: lastID}); err != nil {
			return result, fmt.Errorf("recalculate prices: %w", err)
		}
		result.PricesRun = true
	}

	return result, nil
}
