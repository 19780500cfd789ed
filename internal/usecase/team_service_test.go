package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	"github.com/Alislimm/fantasy-ms/internal/infrastructure/repository/memory"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

func TestTeamService_CreateTeam_StartsWithFullBudget(t *testing.T) {
	fantasyRepo := memory.NewFantasyRepository()
	service := NewTeamService(fantasyRepo, newSeqIDGenerator("team"), logging.NewNop())

	now := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	team, err := service.CreateTeam(t.Context(), CreateTeamInput{
		OwnerID: "owner-1",
		Name:    "Hardwood Heroes",
	})
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}

	if team.ID != "team-001" {
		t.Fatalf("expected team id team-001, got %s", team.ID)
	}
	if team.Budget != fantasy.InitialBudget {
		t.Fatalf("expected budget %d, got %d", fantasy.InitialBudget, team.Budget)
	}
	if team.TotalPoints != 0 {
		t.Fatalf("expected zero total points, got %d", team.TotalPoints)
	}
	if team.Version != 1 {
		t.Fatalf("expected version 1, got %d", team.Version)
	}
	if !team.CreatedAt.Equal(now) || !team.UpdatedAt.Equal(now) {
		t.Fatalf("expected created/updated at %v, got created=%v updated=%v", now, team.CreatedAt, team.UpdatedAt)
	}
}

func TestTeamService_CreateTeam_OnePerOwner(t *testing.T) {
	fantasyRepo := memory.NewFantasyRepository()
	service := NewTeamService(fantasyRepo, newSeqIDGenerator("team"), logging.NewNop())

	if _, err := service.CreateTeam(t.Context(), CreateTeamInput{OwnerID: "owner-1", Name: "First Five"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := service.CreateTeam(t.Context(), CreateTeamInput{OwnerID: "owner-1", Name: "Second Unit"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for second team, got %v", err)
	}
}

func TestTeamService_CreateTeam_InvalidInput(t *testing.T) {
	service := NewTeamService(memory.NewFantasyRepository(), newSeqIDGenerator("team"), logging.NewNop())

	if _, err := service.CreateTeam(t.Context(), CreateTeamInput{OwnerID: " ", Name: "No Owner"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank owner, got %v", err)
	}
	if _, err := service.CreateTeam(t.Context(), CreateTeamInput{OwnerID: "owner-1", Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestTeamService_GetByOwner(t *testing.T) {
	fantasyRepo := memory.NewFantasyRepository()
	service := NewTeamService(fantasyRepo, newSeqIDGenerator("team"), logging.NewNop())

	created, err := service.CreateTeam(t.Context(), CreateTeamInput{OwnerID: "owner-1", Name: "Hardwood Heroes"})
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}

	found, err := service.GetByOwner(t.Context(), "owner-1")
	if err != nil {
		t.Fatalf("get by owner failed: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected team %s, got %s", created.ID, found.ID)
	}

	if _, err := service.GetByOwner(t.Context(), "owner-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown owner, got %v", err)
	}
}

func TestTeamService_GetTeam_NotFound(t *testing.T) {
	service := NewTeamService(memory.NewFantasyRepository(), newSeqIDGenerator("team"), logging.NewNop())

	if _, err := service.GetTeam(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
