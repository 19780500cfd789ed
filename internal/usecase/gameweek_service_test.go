package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/fixture"
	"github.com/Alislimm/fantasy-ms/internal/domain/gameweek"
	"github.com/Alislimm/fantasy-ms/internal/domain/scoring"
	"github.com/Alislimm/fantasy-ms/internal/infrastructure/repository/memory"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

// scoringHarness wires a gameweek service with every repository a scoring
// run touches.
type scoringHarness struct {
	fx          squadFixture
	fixtureRepo *memory.FixtureRepository
	lineupRepo  *memory.LineupRepository
	perfRepo    *memory.PerformanceRepository
	scoreRepo   *memory.ScoreRepository
	service     *GameWeekService
}

func newScoringHarness(t *testing.T, at time.Time) scoringHarness {
	t.Helper()

	fx := newSquadFixture(t, at)
	fixtureRepo := memory.NewFixtureRepository(memory.SeedFixtures())
	lineupRepo := memory.NewLineupRepository()
	perfRepo := memory.NewPerformanceRepository()
	scoreRepo := memory.NewScoreRepository()

	service := NewGameWeekService(
		fx.gameWeekRepo,
		fixtureRepo,
		memory.NewTeamRepository(memory.SeedTeams()),
		lineupRepo,
		fx.fantasyRepo,
		memory.NewRuleRepository(memory.SeedScoringRules()),
		perfRepo,
		scoreRepo,
		newSeqIDGenerator("gw"),
		logging.NewNop(),
	)
	service.now = func() time.Time { return at }

	return scoringHarness{
		fx:          fx,
		fixtureRepo: fixtureRepo,
		lineupRepo:  lineupRepo,
		perfRepo:    perfRepo,
		scoreRepo:   scoreRepo,
		service:     service,
	}
}

func (h scoringHarness) saveLineup(t *testing.T, captainID string) {
	t.Helper()

	lineupService := NewLineupService(h.fx.fantasyRepo, h.fx.gameWeekRepo, h.lineupRepo, newSeqIDGenerator("lineup"), logging.NewNop())
	if _, err := lineupService.SetLineup(t.Context(), SetLineupInput{
		TeamID:     h.fx.team.ID,
		GameWeekID: memory.GameWeekID1,
		Starters:   []string{"lal-pg-01", "lal-sf-01", "lal-c-01", "bos-pg-01", "bos-sg-01"},
		Bench:      []string{"bos-pf-01", "gsw-sf-01", "gsw-c-01"},
		CaptainID:  captainID,
	}); err != nil {
		t.Fatalf("set lineup failed: %v", err)
	}
}

func (h scoringHarness) recordPerformance(t *testing.T, id, fixtureID, playerID string, pts, reb, ast, stl, blk, to, threes int) {
	t.Helper()

	if err := h.perfRepo.Create(t.Context(), scoring.Performance{
		ID:         id,
		FixtureID:  fixtureID,
		PlayerID:   playerID,
		Points:     statPtr(pts),
		Rebounds:   statPtr(reb),
		Assists:    statPtr(ast),
		Steals:     statPtr(stl),
		Blocks:     statPtr(blk),
		Turnovers:  statPtr(to),
		ThreeMade:  statPtr(threes),
		RecordedAt: time.Date(2026, 1, 7, 22, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("create performance failed: %v", err)
	}
}

func TestGameWeekService_CreateGameWeek(t *testing.T) {
	h := newScoringHarness(t, time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC))

	start := time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 25, 23, 59, 59, 0, time.UTC)

	gw, err := h.service.CreateGameWeek(t.Context(), CreateGameWeekInput{Number: 3, StartDate: start, EndDate: end})
	if err != nil {
		t.Fatalf("create gameweek failed: %v", err)
	}
	if gw.Status != gameweek.StatusUpcoming {
		t.Fatalf("expected upcoming status, got %s", gw.Status)
	}

	// Number 1 is already seeded.
	if _, err := h.service.CreateGameWeek(t.Context(), CreateGameWeekInput{Number: 1, StartDate: start, EndDate: end}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate number, got %v", err)
	}

	if _, err := h.service.CreateGameWeek(t.Context(), CreateGameWeekInput{Number: 4, StartDate: end, EndDate: start}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for inverted dates, got %v", err)
	}
}

func TestGameWeekService_AddFixture(t *testing.T) {
	h := newScoringHarness(t, time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC))

	kickoff := time.Date(2026, 1, 9, 19, 0, 0, 0, time.UTC)
	created, err := h.service.AddFixture(t.Context(), AddFixtureInput{
		GameWeekID: memory.GameWeekID1,
		HomeTeamID: memory.TeamIDCeltics,
		AwayTeamID: memory.TeamIDNuggets,
		KickoffAt:  kickoff,
		Venue:      "TD Garden",
	})
	if err != nil {
		t.Fatalf("add fixture failed: %v", err)
	}
	if created.Status != fixture.StatusScheduled {
		t.Fatalf("expected scheduled status, got %s", created.Status)
	}

	fixtures, err := h.service.ListFixtures(t.Context(), memory.GameWeekID1)
	if err != nil {
		t.Fatalf("list fixtures failed: %v", err)
	}
	if len(fixtures) != 3 {
		t.Fatalf("expected 3 fixtures, got %d", len(fixtures))
	}

	_, err = h.service.AddFixture(t.Context(), AddFixtureInput{
		GameWeekID: memory.GameWeekID1,
		HomeTeamID: "nba-xyz",
		AwayTeamID: memory.TeamIDNuggets,
		KickoffAt:  kickoff,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown basketball team, got %v", err)
	}

	_, err = h.service.AddFixture(t.Context(), AddFixtureInput{
		GameWeekID: memory.GameWeekID1,
		HomeTeamID: memory.TeamIDNuggets,
		AwayTeamID: memory.TeamIDNuggets,
		KickoffAt:  kickoff,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self-match, got %v", err)
	}
}

func TestGameWeekService_CalculateGameWeekPoints_RequiresCompleted(t *testing.T) {
	h := newScoringHarness(t, time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC))

	if _, err := h.service.CalculateGameWeekPoints(t.Context(), memory.GameWeekID1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for active gameweek, got %v", err)
	}
}

func TestGameWeekService_CalculateGameWeekPoints_CaptainDoublesBenchIgnored(t *testing.T) {
	h := newScoringHarness(t, time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC))
	h.saveLineup(t, "lal-pg-01")

	// 30+5+10+2*3+0-3+4 = 52, doubled to 104 as captain.
	h.recordPerformance(t, "perf-001", "fx-gw1-lal-bos", "lal-pg-01", 30, 5, 10, 2, 0, 3, 4)
	// 12+8+2+0+1*3-1+1 = 25.
	h.recordPerformance(t, "perf-002", "fx-gw1-lal-bos", "lal-sf-01", 12, 8, 2, 0, 1, 1, 1)
	// Bench player, must not count.
	h.recordPerformance(t, "perf-003", "fx-gw1-gsw-den", "gsw-c-01", 50, 10, 5, 3, 3, 0, 0)

	if err := h.fx.gameWeekRepo.UpdateStatus(t.Context(), memory.GameWeekID1, gameweek.StatusCompleted); err != nil {
		t.Fatalf("complete gameweek failed: %v", err)
	}

	delta, err := h.service.CalculateGameWeekPoints(t.Context(), memory.GameWeekID1)
	if err != nil {
		t.Fatalf("calculate points failed: %v", err)
	}
	if delta != 129 {
		t.Fatalf("expected 129 points applied, got %d", delta)
	}

	team, _, err := h.fx.fantasyRepo.GetByID(t.Context(), h.fx.team.ID)
	if err != nil {
		t.Fatalf("get team failed: %v", err)
	}
	if team.TotalPoints != 129 {
		t.Fatalf("expected team total 129, got %d", team.TotalPoints)
	}

	contribution, exists, err := h.scoreRepo.GetTeamGameWeekScore(t.Context(), h.fx.team.ID, memory.GameWeekID1)
	if err != nil || !exists {
		t.Fatalf("expected contribution row, exists=%v err=%v", exists, err)
	}
	if contribution.Points != 129 {
		t.Fatalf("expected contribution 129, got %d", contribution.Points)
	}
}

func TestGameWeekService_CalculateGameWeekPoints_Idempotent(t *testing.T) {
	h := newScoringHarness(t, time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC))
	h.saveLineup(t, "lal-pg-01")
	h.recordPerformance(t, "perf-001", "fx-gw1-lal-bos", "lal-pg-01", 30, 5, 10, 2, 0, 3, 4)

	if err := h.fx.gameWeekRepo.UpdateStatus(t.Context(), memory.GameWeekID1, gameweek.StatusCompleted); err != nil {
		t.Fatalf("complete gameweek failed: %v", err)
	}

	first, err := h.service.CalculateGameWeekPoints(t.Context(), memory.GameWeekID1)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if first != 104 {
		t.Fatalf("expected first delta 104, got %d", first)
	}

	second, err := h.service.CalculateGameWeekPoints(t.Context(), memory.GameWeekID1)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if second != 0 {
		t.Fatalf("expected zero delta on replay, got %d", second)
	}

	team, _, err := h.fx.fantasyRepo.GetByID(t.Context(), h.fx.team.ID)
	if err != nil {
		t.Fatalf("get team failed: %v", err)
	}
	if team.TotalPoints != 104 {
		t.Fatalf("expected total unchanged at 104, got %d", team.TotalPoints)
	}
}

func TestGameWeekService_CalculateGameWeekPoints_LateStatsApplyDifference(t *testing.T) {
	h := newScoringHarness(t, time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC))
	h.saveLineup(t, "")
	h.recordPerformance(t, "perf-001", "fx-gw1-lal-bos", "lal-pg-01", 20, 0, 0, 0, 0, 0, 0)

	if err := h.fx.gameWeekRepo.UpdateStatus(t.Context(), memory.GameWeekID1, gameweek.StatusCompleted); err != nil {
		t.Fatalf("complete gameweek failed: %v", err)
	}

	if _, err := h.service.CalculateGameWeekPoints(t.Context(), memory.GameWeekID1); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// A second starter's stat line lands after the first run.
	h.recordPerformance(t, "perf-002", "fx-gw1-lal-bos", "bos-pg-01", 10, 0, 0, 0, 0, 0, 0)

	delta, err := h.service.CalculateGameWeekPoints(t.Context(), memory.GameWeekID1)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if delta != 10 {
		t.Fatalf("expected delta 10 for the late line, got %d", delta)
	}

	team, _, err := h.fx.fantasyRepo.GetByID(t.Context(), h.fx.team.ID)
	if err != nil {
		t.Fatalf("get team failed: %v", err)
	}
	if team.TotalPoints != 30 {
		t.Fatalf("expected team total 30, got %d", team.TotalPoints)
	}
}

func TestGameWeekService_CalculateGameWeekPoints_DuplicatePlayerConflicts(t *testing.T) {
	h := newScoringHarness(t, time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC))
	h.saveLineup(t, "lal-pg-01")

	h.recordPerformance(t, "perf-001", "fx-gw1-lal-bos", "lal-pg-01", 30, 5, 10, 2, 0, 3, 4)
	h.recordPerformance(t, "perf-002", "fx-gw1-gsw-den", "lal-pg-01", 10, 2, 1, 0, 0, 1, 0)

	if err := h.fx.gameWeekRepo.UpdateStatus(t.Context(), memory.GameWeekID1, gameweek.StatusCompleted); err != nil {
		t.Fatalf("complete gameweek failed: %v", err)
	}

	if _, err := h.service.CalculateGameWeekPoints(t.Context(), memory.GameWeekID1); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate performances, got %v", err)
	}
}

func TestGameWeekService_CalculateGameWeekPoints_FloorsTotalAtZero(t *testing.T) {
	h := newScoringHarness(t, time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC))
	h.saveLineup(t, "")

	// Ten turnovers and nothing else: -10 for the week.
	h.recordPerformance(t, "perf-001", "fx-gw1-lal-bos", "lal-sf-01", 0, 0, 0, 0, 0, 10, 0)

	if err := h.fx.gameWeekRepo.UpdateStatus(t.Context(), memory.GameWeekID1, gameweek.StatusCompleted); err != nil {
		t.Fatalf("complete gameweek failed: %v", err)
	}

	delta, err := h.service.CalculateGameWeekPoints(t.Context(), memory.GameWeekID1)
	if err != nil {
		t.Fatalf("calculate points failed: %v", err)
	}
	if delta != -10 {
		t.Fatalf("expected delta -10, got %d", delta)
	}

	team, _, err := h.fx.fantasyRepo.GetByID(t.Context(), h.fx.team.ID)
	if err != nil {
		t.Fatalf("get team failed: %v", err)
	}
	if team.TotalPoints != 0 {
		t.Fatalf("expected team total floored at zero, got %d", team.TotalPoints)
	}
}
