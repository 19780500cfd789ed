package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	"github.com/Alislimm/fantasy-ms/internal/domain/gameweek"
	"github.com/Alislimm/fantasy-ms/internal/domain/player"
	"github.com/Alislimm/fantasy-ms/internal/domain/transfer"
	"github.com/Alislimm/fantasy-ms/internal/infrastructure/repository/memory"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

func newTransferService(fx squadFixture, policy TransferPolicy) *TransferService {
	return NewTransferService(fx.fantasyRepo, fx.playerRepo, fx.gameWeekRepo, fx.fantasyRepo, policy, newSeqIDGenerator("transfer"), logging.NewNop())
}

func TestTransferService_MakeTransfer_FirstIsFree(t *testing.T) {
	now := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	fx := newSquadFixture(t, now)

	service := newTransferService(fx, TransferPolicy{EnforceBudget: true})
	service.now = func() time.Time { return now }

	// Out lal-c-01 bought at 980, in den-pf-01 priced 920.
	record, err := service.MakeTransfer(t.Context(), MakeTransferInput{
		TeamID:      fx.team.ID,
		GameWeekID:  memory.GameWeekID1,
		PlayerOutID: "lal-c-01",
		PlayerInID:  "den-pf-01",
	})
	if err != nil {
		t.Fatalf("make transfer failed: %v", err)
	}

	if record.PriceDifference != -60 {
		t.Fatalf("expected price difference -60, got %d", record.PriceDifference)
	}

	team, _, err := fx.fantasyRepo.GetByID(t.Context(), fx.team.ID)
	if err != nil {
		t.Fatalf("get team failed: %v", err)
	}
	if team.Budget != fx.team.Budget+60 {
		t.Fatalf("expected budget %d after cheaper swap, got %d", fx.team.Budget+60, team.Budget)
	}
	if team.TotalPoints != 0 {
		t.Fatalf("expected no penalty on first transfer, got %d points deducted", -team.TotalPoints)
	}

	if _, exists, _ := fx.fantasyRepo.GetActivePlayer(t.Context(), team.ID, "lal-c-01"); exists {
		t.Fatal("expected outgoing player released")
	}
	link, exists, _ := fx.fantasyRepo.GetActivePlayer(t.Context(), team.ID, "den-pf-01")
	if !exists {
		t.Fatal("expected incoming player active")
	}
	if link.PurchasePrice != 920 {
		t.Fatalf("expected purchase price 920, got %d", link.PurchasePrice)
	}
}

func TestTransferService_MakeTransfer_PenaltyLedger(t *testing.T) {
	now := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	fx := newSquadFixture(t, now)

	// Give the team a points cushion so deductions are visible.
	team, _, err := fx.fantasyRepo.GetByID(t.Context(), fx.team.ID)
	if err != nil {
		t.Fatalf("get team failed: %v", err)
	}
	team.TotalPoints = 50
	if err := fx.fantasyRepo.Save(t.Context(), team); err != nil {
		t.Fatalf("save team failed: %v", err)
	}

	service := newTransferService(fx, TransferPolicy{EnforceBudget: true})
	service.now = func() time.Time { return now }

	swaps := []struct {
		out, in    string
		wantPoints int
		wantCharge int
	}{
		{out: "lal-c-01", in: "den-pf-01", wantPoints: 50, wantCharge: 0},
		{out: "bos-pf-01", in: "den-pg-01", wantPoints: 40, wantCharge: 10},
		{out: "gsw-c-01", in: "den-c-01", wantPoints: 30, wantCharge: 20},
	}
	for i, swap := range swaps {
		if _, err := service.MakeTransfer(t.Context(), MakeTransferInput{
			TeamID:      fx.team.ID,
			GameWeekID:  memory.GameWeekID1,
			PlayerOutID: swap.out,
			PlayerInID:  swap.in,
		}); err != nil {
			t.Fatalf("transfer %d failed: %v", i+1, err)
		}

		team, _, err := fx.fantasyRepo.GetByID(t.Context(), fx.team.ID)
		if err != nil {
			t.Fatalf("get team failed: %v", err)
		}
		if team.TotalPoints != swap.wantPoints {
			t.Fatalf("transfer %d: expected %d total points, got %d", i+1, swap.wantPoints, team.TotalPoints)
		}

		charge, _, err := fx.fantasyRepo.GetPenaltyCharged(t.Context(), fx.team.ID, memory.GameWeekID1)
		if err != nil {
			t.Fatalf("get penalty charged failed: %v", err)
		}
		if charge.Points != swap.wantCharge {
			t.Fatalf("transfer %d: expected charged penalty %d, got %d", i+1, swap.wantCharge, charge.Points)
		}
	}

	count, err := service.transferRepo.CountByTeamAndGameWeek(t.Context(), fx.team.ID, memory.GameWeekID1)
	if err != nil {
		t.Fatalf("count transfers failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 logged transfers, got %d", count)
	}
}

func TestTransferService_MakeTransfer_PenaltyFloorsAtZero(t *testing.T) {
	now := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	fx := newSquadFixture(t, now)

	service := newTransferService(fx, TransferPolicy{EnforceBudget: true})
	service.now = func() time.Time { return now }

	for _, swap := range [][2]string{
		{"lal-c-01", "den-pf-01"},
		{"bos-pf-01", "den-pg-01"},
	} {
		if _, err := service.MakeTransfer(t.Context(), MakeTransferInput{
			TeamID:      fx.team.ID,
			GameWeekID:  memory.GameWeekID1,
			PlayerOutID: swap[0],
			PlayerInID:  swap[1],
		}); err != nil {
			t.Fatalf("transfer failed: %v", err)
		}
	}

	team, _, err := fx.fantasyRepo.GetByID(t.Context(), fx.team.ID)
	if err != nil {
		t.Fatalf("get team failed: %v", err)
	}
	if team.TotalPoints != 0 {
		t.Fatalf("expected total points floored at zero, got %d", team.TotalPoints)
	}
}

func TestTransferService_MakeTransfer_BudgetEnforced(t *testing.T) {
	now := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)

	players := append(memory.SeedPlayers(), player.Player{
		ID:          "star-pg-99",
		TeamID:      memory.TeamIDWarriors,
		FirstName:   "Zion",
		LastName:    "Marsh",
		Position:    player.PositionPointGuard,
		MarketValue: 9000,
		Active:      true,
	})

	fx := newSquadFixture(t, now)
	fx.playerRepo = memory.NewPlayerRepository(players)

	service := newTransferService(fx, TransferPolicy{EnforceBudget: true})
	service.now = func() time.Time { return now }

	// Price difference 9000-860=8140 against a 1780 budget.
	_, err := service.MakeTransfer(t.Context(), MakeTransferInput{
		TeamID:      fx.team.ID,
		GameWeekID:  memory.GameWeekID1,
		PlayerOutID: "gsw-c-01",
		PlayerInID:  "star-pg-99",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unaffordable swap, got %v", err)
	}

	relaxed := newTransferService(fx, TransferPolicy{EnforceBudget: false})
	relaxed.now = func() time.Time { return now }

	if _, err := relaxed.MakeTransfer(t.Context(), MakeTransferInput{
		TeamID:      fx.team.ID,
		GameWeekID:  memory.GameWeekID1,
		PlayerOutID: "gsw-c-01",
		PlayerInID:  "star-pg-99",
	}); err != nil {
		t.Fatalf("expected budget-neutral swap to pass, got %v", err)
	}

	team, _, err := fx.fantasyRepo.GetByID(t.Context(), fx.team.ID)
	if err != nil {
		t.Fatalf("get team failed: %v", err)
	}
	if team.Budget != fx.team.Budget {
		t.Fatalf("expected budget untouched at %d, got %d", fx.team.Budget, team.Budget)
	}
}

func TestTransferService_MakeTransfer_MembershipChecks(t *testing.T) {
	now := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	fx := newSquadFixture(t, now)

	service := newTransferService(fx, TransferPolicy{EnforceBudget: true})
	service.now = func() time.Time { return now }

	// den-c-01 was never part of the squad.
	_, err := service.MakeTransfer(t.Context(), MakeTransferInput{
		TeamID:      fx.team.ID,
		GameWeekID:  memory.GameWeekID1,
		PlayerOutID: "den-c-01",
		PlayerInID:  "den-pf-01",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-member outgoing player, got %v", err)
	}

	// lal-pg-01 is already on the roster.
	_, err = service.MakeTransfer(t.Context(), MakeTransferInput{
		TeamID:      fx.team.ID,
		GameWeekID:  memory.GameWeekID1,
		PlayerOutID: "lal-c-01",
		PlayerInID:  "lal-pg-01",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for already-owned incoming player, got %v", err)
	}

	_, err = service.MakeTransfer(t.Context(), MakeTransferInput{
		TeamID:      fx.team.ID,
		GameWeekID:  memory.GameWeekID1,
		PlayerOutID: "lal-c-01",
		PlayerInID:  "lal-c-01",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for same in and out player, got %v", err)
	}
}

func TestTransferService_MakeTransfer_RejectsCompletedGameWeek(t *testing.T) {
	now := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)
	fx := newSquadFixture(t, now)
	if err := fx.gameWeekRepo.UpdateStatus(t.Context(), memory.GameWeekID1, gameweek.StatusCompleted); err != nil {
		t.Fatalf("update gameweek status failed: %v", err)
	}

	service := newTransferService(fx, TransferPolicy{EnforceBudget: true})
	_, err := service.MakeTransfer(t.Context(), MakeTransferInput{
		TeamID:      fx.team.ID,
		GameWeekID:  memory.GameWeekID1,
		PlayerOutID: "lal-c-01",
		PlayerInID:  "den-pf-01",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for completed gameweek, got %v", err)
	}
}

// conflictFantasyRepo forces the atomic write to report a lost race.
type conflictFantasyRepo struct {
	*memory.FantasyRepository
}

func (r *conflictFantasyRepo) ExecuteTransfer(
	_ context.Context,
	_ fantasy.Team,
	_ fantasy.TeamPlayer,
	_ fantasy.TeamPlayer,
	_ transfer.Record,
	_ transfer.PenaltyCharge,
) error {
	return fantasy.ErrVersionMismatch
}

func TestTransferService_MakeTransfer_ConcurrentModification(t *testing.T) {
	now := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	fx := newSquadFixture(t, now)

	conflicting := &conflictFantasyRepo{FantasyRepository: fx.fantasyRepo}
	service := NewTransferService(conflicting, fx.playerRepo, fx.gameWeekRepo, fx.fantasyRepo, TransferPolicy{EnforceBudget: true}, newSeqIDGenerator("transfer"), logging.NewNop())
	service.now = func() time.Time { return now }

	_, err := service.MakeTransfer(t.Context(), MakeTransferInput{
		TeamID:      fx.team.ID,
		GameWeekID:  memory.GameWeekID1,
		PlayerOutID: "lal-c-01",
		PlayerInID:  "den-pf-01",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on version mismatch, got %v", err)
	}
}

func TestTransferService_ListTransfers(t *testing.T) {
	now := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	fx := newSquadFixture(t, now)

	service := newTransferService(fx, TransferPolicy{EnforceBudget: true})
	service.now = func() time.Time { return now }

	if _, err := service.MakeTransfer(t.Context(), MakeTransferInput{
		TeamID:      fx.team.ID,
		GameWeekID:  memory.GameWeekID1,
		PlayerOutID: "lal-c-01",
		PlayerInID:  "den-pf-01",
	}); err != nil {
		t.Fatalf("make transfer failed: %v", err)
	}

	records, err := service.ListTransfers(t.Context(), fx.team.ID)
	if err != nil {
		t.Fatalf("list transfers failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 transfer record, got %d", len(records))
	}
	if records[0].PlayerOutID != "lal-c-01" || records[0].PlayerInID != "den-pf-01" {
		t.Fatalf("unexpected transfer record: %+v", records[0])
	}
}
