package usecase

import (
	"sort"
	"testing"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/player"
	"github.com/Alislimm/fantasy-ms/internal/infrastructure/repository/memory"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

func TestPricingService_RecalculatePrices_OwnershipMovesPrices(t *testing.T) {
	now := time.Date(2026, 1, 12, 3, 0, 0, 0, time.UTC)
	fx := newSquadFixture(t, now)
	pricingRepo := memory.NewPricingRepository()

	service := NewPricingService(fx.playerRepo, fx.fantasyRepo, memory.NewPerformanceRepository(), pricingRepo, newSeqIDGenerator("chg"), logging.NewNop())
	service.now = func() time.Time { return now }

	result, err := service.RecalculatePrices(t.Context(), RecalculatePricesInput{GameWeekID: memory.GameWeekID1})
	if err != nil {
		t.Fatalf("recalculate prices failed: %v", err)
	}

	if result.PlayerCount != 12 {
		t.Fatalf("expected 12 players considered, got %d", result.PlayerCount)
	}
	if result.UpdatedCount != 12 || result.FailedCount != 0 {
		t.Fatalf("expected 12 updates and no failures, got updated=%d failed=%d", result.UpdatedCount, result.FailedCount)
	}

	// Owned by the one team: 100% ownership, neutral performance -> x1.03.
	owned, _, err := fx.playerRepo.GetByID(t.Context(), "lal-pg-01")
	if err != nil {
		t.Fatalf("get player failed: %v", err)
	}
	if owned.MarketValue != 1288 {
		t.Fatalf("expected lal-pg-01 at 1288, got %d", owned.MarketValue)
	}

	// Unowned: zero ownership -> x0.98.
	unowned, _, err := fx.playerRepo.GetByID(t.Context(), "den-pg-01")
	if err != nil {
		t.Fatalf("get player failed: %v", err)
	}
	if unowned.MarketValue != 1019 {
		t.Fatalf("expected den-pg-01 at 1019, got %d", unowned.MarketValue)
	}

	changes, err := pricingRepo.ListByPlayer(t.Context(), "lal-pg-01")
	if err != nil {
		t.Fatalf("list price changes failed: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(changes))
	}
	if changes[0].OldPrice != 1250 || changes[0].NewPrice != 1288 {
		t.Fatalf("unexpected audit entry: old=%d new=%d", changes[0].OldPrice, changes[0].NewPrice)
	}
	if changes[0].GameWeekID != memory.GameWeekID1 {
		t.Fatalf("expected audit tied to %s, got %s", memory.GameWeekID1, changes[0].GameWeekID)
	}

	if !sort.SliceIsSorted(result.Updates, func(i, j int) bool {
		return result.Updates[i].PlayerID < result.Updates[j].PlayerID
	}) {
		t.Fatal("expected updates sorted by player id")
	}
}

func TestPricingService_RecalculatePrices_SkipsSmallMoves(t *testing.T) {
	// A floor-priced unowned player computes a move that clamps back to the
	// floor, which is below the persistence threshold.
	playerRepo := memory.NewPlayerRepository([]player.Player{{
		ID:          "min-c-01",
		TeamID:      memory.TeamIDNuggets,
		FirstName:   "Emil",
		LastName:    "Novak",
		Position:    player.PositionCenter,
		MarketValue: 400,
		Active:      true,
	}})
	pricingRepo := memory.NewPricingRepository()

	service := NewPricingService(playerRepo, memory.NewFantasyRepository(), memory.NewPerformanceRepository(), pricingRepo, newSeqIDGenerator("chg"), logging.NewNop())

	result, err := service.RecalculatePrices(t.Context(), RecalculatePricesInput{})
	if err != nil {
		t.Fatalf("recalculate prices failed: %v", err)
	}
	if result.SkippedCount != 1 || result.UpdatedCount != 0 {
		t.Fatalf("expected one skip and no updates, got skipped=%d updated=%d", result.SkippedCount, result.UpdatedCount)
	}

	unchanged, _, err := playerRepo.GetByID(t.Context(), "min-c-01")
	if err != nil {
		t.Fatalf("get player failed: %v", err)
	}
	if unchanged.MarketValue != 400 {
		t.Fatalf("expected price untouched at 400, got %d", unchanged.MarketValue)
	}

	changes, err := pricingRepo.ListByPlayer(t.Context(), "min-c-01")
	if err != nil {
		t.Fatalf("list price changes failed: %v", err)
	}
	if len(changes) != 0 {
		t.Fatalf("expected no audit entries for a skipped move, got %d", len(changes))
	}
}

func TestPricingService_RecalculatePrices_WorkerSizing(t *testing.T) {
	now := time.Date(2026, 1, 12, 3, 0, 0, 0, time.UTC)
	fx := newSquadFixture(t, now)

	service := NewPricingService(fx.playerRepo, fx.fantasyRepo, memory.NewPerformanceRepository(), memory.NewPricingRepository(), newSeqIDGenerator("chg"), logging.NewNop())

	capped, err := service.RecalculatePrices(t.Context(), RecalculatePricesInput{MaxWorkers: 64})
	if err != nil {
		t.Fatalf("recalculate prices failed: %v", err)
	}
	if capped.WorkerCount != 12 {
		t.Fatalf("expected worker count capped at 12 players, got %d", capped.WorkerCount)
	}

	defaulted, err := service.RecalculatePrices(t.Context(), RecalculatePricesInput{})
	if err != nil {
		t.Fatalf("recalculate prices failed: %v", err)
	}
	if defaulted.WorkerCount != defaultPricingWorkers {
		t.Fatalf("expected default worker count %d, got %d", defaultPricingWorkers, defaulted.WorkerCount)
	}
}
