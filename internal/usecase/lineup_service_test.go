package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/gameweek"
	"github.com/Alislimm/fantasy-ms/internal/domain/lineup"
	"github.com/Alislimm/fantasy-ms/internal/infrastructure/repository/memory"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

func newLineupService(fx squadFixture, lineupRepo *memory.LineupRepository) *LineupService {
	return NewLineupService(fx.fantasyRepo, fx.gameWeekRepo, lineupRepo, newSeqIDGenerator("lineup"), logging.NewNop())
}

func TestLineupService_SetLineup_SavesSlotsAndCaptain(t *testing.T) {
	now := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	fx := newSquadFixture(t, now)
	lineupRepo := memory.NewLineupRepository()

	service := newLineupService(fx, lineupRepo)
	service.now = func() time.Time { return now }

	saved, err := service.SetLineup(t.Context(), SetLineupInput{
		TeamID:     fx.team.ID,
		GameWeekID: memory.GameWeekID1,
		Starters:   []string{"lal-pg-01", "lal-sf-01", "lal-c-01", "bos-pg-01", "bos-sg-01"},
		Bench:      []string{"bos-pf-01", "gsw-sf-01", "gsw-c-01"},
		CaptainID:  "lal-pg-01",
	})
	if err != nil {
		t.Fatalf("set lineup failed: %v", err)
	}

	if len(saved.Slots) != lineup.StartersCount+lineup.BenchCount {
		t.Fatalf("expected %d slots, got %d", lineup.StartersCount+lineup.BenchCount, len(saved.Slots))
	}
	if got := len(saved.Starters()); got != lineup.StartersCount {
		t.Fatalf("expected %d starters, got %d", lineup.StartersCount, got)
	}

	captainID, ok := saved.CaptainID()
	if !ok || captainID != "lal-pg-01" {
		t.Fatalf("expected captain lal-pg-01, got %q (ok=%v)", captainID, ok)
	}

	stored, exists, err := lineupRepo.GetByTeamAndGameWeek(t.Context(), fx.team.ID, memory.GameWeekID1)
	if err != nil || !exists {
		t.Fatalf("expected stored lineup, exists=%v err=%v", exists, err)
	}
	if stored.ID != saved.ID {
		t.Fatalf("expected stored lineup id %s, got %s", saved.ID, stored.ID)
	}
}

func TestLineupService_SetLineup_ResavePreservesIdentity(t *testing.T) {
	firstNow := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	fx := newSquadFixture(t, firstNow)
	lineupRepo := memory.NewLineupRepository()

	service := newLineupService(fx, lineupRepo)
	service.now = func() time.Time { return firstNow }

	input := SetLineupInput{
		TeamID:     fx.team.ID,
		GameWeekID: memory.GameWeekID1,
		Starters:   []string{"lal-pg-01", "lal-sf-01", "lal-c-01", "bos-pg-01", "bos-sg-01"},
		Bench:      []string{"bos-pf-01", "gsw-sf-01", "gsw-c-01"},
		CaptainID:  "lal-pg-01",
	}
	first, err := service.SetLineup(t.Context(), input)
	if err != nil {
		t.Fatalf("first set lineup failed: %v", err)
	}

	secondNow := firstNow.Add(2 * time.Hour)
	service.now = func() time.Time { return secondNow }

	// Swap captain and rotate one bench player in.
	input.Starters = []string{"lal-pg-01", "lal-sf-01", "lal-c-01", "bos-pg-01", "bos-pf-01"}
	input.Bench = []string{"bos-sg-01", "gsw-sf-01", "gsw-c-01"}
	input.CaptainID = "lal-sf-01"

	second, err := service.SetLineup(t.Context(), input)
	if err != nil {
		t.Fatalf("second set lineup failed: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected same lineup id on resave, got %s vs %s", second.ID, first.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("expected created_at unchanged, got %v vs %v", second.CreatedAt, first.CreatedAt)
	}
	if !second.UpdatedAt.Equal(secondNow) {
		t.Fatalf("expected updated_at %v, got %v", secondNow, second.UpdatedAt)
	}

	captainID, ok := second.CaptainID()
	if !ok || captainID != "lal-sf-01" {
		t.Fatalf("expected captain lal-sf-01 after resave, got %q (ok=%v)", captainID, ok)
	}
}

func TestLineupService_SetLineup_Validation(t *testing.T) {
	now := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	fx := newSquadFixture(t, now)
	service := newLineupService(fx, memory.NewLineupRepository())

	base := SetLineupInput{
		TeamID:     fx.team.ID,
		GameWeekID: memory.GameWeekID1,
		Starters:   []string{"lal-pg-01", "lal-sf-01", "lal-c-01", "bos-pg-01", "bos-sg-01"},
		Bench:      []string{"bos-pf-01", "gsw-sf-01", "gsw-c-01"},
		CaptainID:  "lal-pg-01",
	}

	shortStarters := base
	shortStarters.Starters = base.Starters[:4]
	if _, err := service.SetLineup(t.Context(), shortStarters); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for four starters, got %v", err)
	}

	overlap := base
	overlap.Bench = []string{"lal-pg-01", "gsw-sf-01", "gsw-c-01"}
	if _, err := service.SetLineup(t.Context(), overlap); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for starter on bench, got %v", err)
	}

	benchCaptain := base
	benchCaptain.CaptainID = "bos-pf-01"
	if _, err := service.SetLineup(t.Context(), benchCaptain); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bench captain, got %v", err)
	}

	outsider := base
	outsider.Starters = []string{"den-c-01", "lal-sf-01", "lal-c-01", "bos-pg-01", "bos-sg-01"}
	outsider.CaptainID = ""
	if _, err := service.SetLineup(t.Context(), outsider); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for player outside squad, got %v", err)
	}
}

func TestLineupService_SetLineup_RejectsCompletedGameWeek(t *testing.T) {
	now := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)
	fx := newSquadFixture(t, now)
	if err := fx.gameWeekRepo.UpdateStatus(t.Context(), memory.GameWeekID1, gameweek.StatusCompleted); err != nil {
		t.Fatalf("update gameweek status failed: %v", err)
	}

	service := newLineupService(fx, memory.NewLineupRepository())
	_, err := service.SetLineup(t.Context(), SetLineupInput{
		TeamID:     fx.team.ID,
		GameWeekID: memory.GameWeekID1,
		Starters:   []string{"lal-pg-01", "lal-sf-01", "lal-c-01", "bos-pg-01", "bos-sg-01"},
		Bench:      []string{"bos-pf-01", "gsw-sf-01", "gsw-c-01"},
		CaptainID:  "lal-pg-01",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for completed gameweek, got %v", err)
	}
}

func TestLineupService_GetLineup_NotFound(t *testing.T) {
	now := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	fx := newSquadFixture(t, now)
	service := newLineupService(fx, memory.NewLineupRepository())

	_, exists, err := service.GetLineup(t.Context(), fx.team.ID, memory.GameWeekID1)
	if err != nil {
		t.Fatalf("get lineup failed: %v", err)
	}
	if exists {
		t.Fatal("expected no lineup for fresh team")
	}
}
