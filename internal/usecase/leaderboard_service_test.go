package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	"github.com/Alislimm/fantasy-ms/internal/domain/transfer"
	"github.com/Alislimm/fantasy-ms/internal/infrastructure/repository/memory"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

// stubTransferCounts serves fixed lifetime transfer counts per team.
type stubTransferCounts map[string]int

func (s stubTransferCounts) CountByTeamAndGameWeek(context.Context, string, string) (int, error) {
	return 0, nil
}

func (s stubTransferCounts) CountByTeam(_ context.Context, teamID string) (int, error) {
	return s[teamID], nil
}

func (s stubTransferCounts) ListByTeam(context.Context, string) ([]transfer.Record, error) {
	return nil, nil
}

func (s stubTransferCounts) GetPenaltyCharged(context.Context, string, string) (transfer.PenaltyCharge, bool, error) {
	return transfer.PenaltyCharge{}, false, nil
}

func TestLeaderboardService_GetLeaderboard_RankingAndTieBreaks(t *testing.T) {
	fantasyRepo := memory.NewFantasyRepository()

	base := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	teams := []fantasy.Team{
		{ID: "team-a", OwnerID: "owner-a", Name: "Alley Oops", TotalPoints: 100, Version: 1, CreatedAt: base},
		{ID: "team-b", OwnerID: "owner-b", Name: "Buzzer Beaters", TotalPoints: 100, Version: 1, CreatedAt: base.Add(time.Hour)},
		{ID: "team-c", OwnerID: "owner-c", Name: "Crossovers", TotalPoints: 200, Version: 1, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "team-d", OwnerID: "owner-d", Name: "Dunk Dynasty", TotalPoints: 100, Version: 1, CreatedAt: base.Add(3 * time.Hour)},
	}
	for _, team := range teams {
		if err := fantasyRepo.Create(t.Context(), team); err != nil {
			t.Fatalf("create team failed: %v", err)
		}
	}

	// team-a and team-b tie on points; team-a made fewer transfers.
	// team-b and team-d tie on points and transfers; team-b is older.
	counts := stubTransferCounts{"team-a": 1, "team-b": 3, "team-c": 5, "team-d": 3}

	service := NewLeaderboardService(fantasyRepo, counts, logging.NewNop())
	entries, err := service.GetLeaderboard(t.Context())
	if err != nil {
		t.Fatalf("get leaderboard failed: %v", err)
	}

	wantOrder := []string{"team-c", "team-a", "team-b", "team-d"}
	if len(entries) != len(wantOrder) {
		t.Fatalf("expected %d entries, got %d", len(wantOrder), len(entries))
	}
	for i, want := range wantOrder {
		if entries[i].TeamID != want {
			t.Fatalf("position %d: expected %s, got %s", i+1, want, entries[i].TeamID)
		}
		if entries[i].Rank != i+1 {
			t.Fatalf("expected rank %d, got %d", i+1, entries[i].Rank)
		}
	}

	if entries[0].TotalPoints != 200 || entries[0].TransferCount != 5 {
		t.Fatalf("unexpected top entry: %+v", entries[0])
	}
}

func TestLeaderboardService_GetLeaderboard_Empty(t *testing.T) {
	service := NewLeaderboardService(memory.NewFantasyRepository(), stubTransferCounts{}, logging.NewNop())

	entries, err := service.GetLeaderboard(t.Context())
	if err != nil {
		t.Fatalf("get leaderboard failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty leaderboard, got %d entries", len(entries))
	}
}
