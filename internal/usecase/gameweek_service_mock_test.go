package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Alislimm/fantasy-ms/internal/domain/team"
	"github.com/Alislimm/fantasy-ms/internal/infrastructure/repository/memory"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

type teamRepositoryMock struct {
	mock.Mock
}

func (m *teamRepositoryMock) GetByID(ctx context.Context, id string) (team.Team, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(team.Team), args.Bool(1), args.Error(2)
}

func (m *teamRepositoryMock) List(ctx context.Context) ([]team.Team, error) {
	args := m.Called(ctx)
	return args.Get(0).([]team.Team), args.Error(1)
}

func TestGameWeekService_AddFixture_LooksUpBothTeams(t *testing.T) {
	teamRepo := &teamRepositoryMock{}
	teamRepo.
		On("GetByID", mock.Anything, memory.TeamIDLakers).
		Return(team.Team{ID: memory.TeamIDLakers}, true, nil).
		Once()
	teamRepo.
		On("GetByID", mock.Anything, memory.TeamIDCeltics).
		Return(team.Team{ID: memory.TeamIDCeltics}, true, nil).
		Once()

	service := NewGameWeekService(
		memory.NewGameWeekRepository(memory.SeedGameWeeks()),
		memory.NewFixtureRepository(nil),
		teamRepo,
		memory.NewLineupRepository(),
		memory.NewFantasyRepository(),
		memory.NewRuleRepository(memory.SeedScoringRules()),
		memory.NewPerformanceRepository(),
		memory.NewScoreRepository(),
		newSeqIDGenerator("fx"),
		logging.NewNop(),
	)

	_, err := service.AddFixture(t.Context(), AddFixtureInput{
		GameWeekID: memory.GameWeekID1,
		HomeTeamID: memory.TeamIDLakers,
		AwayTeamID: memory.TeamIDCeltics,
		KickoffAt:  time.Date(2026, 1, 9, 19, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add fixture failed: %v", err)
	}

	teamRepo.AssertExpectations(t)
}

func TestGameWeekService_AddFixture_TeamLookupError(t *testing.T) {
	repoErr := errors.New("connection reset")

	teamRepo := &teamRepositoryMock{}
	teamRepo.
		On("GetByID", mock.Anything, memory.TeamIDLakers).
		Return(team.Team{}, false, repoErr).
		Once()

	service := NewGameWeekService(
		memory.NewGameWeekRepository(memory.SeedGameWeeks()),
		memory.NewFixtureRepository(nil),
		teamRepo,
		memory.NewLineupRepository(),
		memory.NewFantasyRepository(),
		memory.NewRuleRepository(memory.SeedScoringRules()),
		memory.NewPerformanceRepository(),
		memory.NewScoreRepository(),
		newSeqIDGenerator("fx"),
		logging.NewNop(),
	)

	_, err := service.AddFixture(t.Context(), AddFixtureInput{
		GameWeekID: memory.GameWeekID1,
		HomeTeamID: memory.TeamIDLakers,
		AwayTeamID: memory.TeamIDCeltics,
		KickoffAt:  time.Date(2026, 1, 9, 19, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error surfaced, got %v", err)
	}

	teamRepo.AssertExpectations(t)
}
