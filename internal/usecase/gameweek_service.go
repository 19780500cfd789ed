package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	"github.com/Alislimm/fantasy-ms/internal/domain/fixture"
	"github.com/Alislimm/fantasy-ms/internal/domain/gameweek"
	"github.com/Alislimm/fantasy-ms/internal/domain/lineup"
	"github.com/Alislimm/fantasy-ms/internal/domain/scoring"
	"github.com/Alislimm/fantasy-ms/internal/domain/team"
	idgen "github.com/Alislimm/fantasy-ms/internal/platform/id"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

type CreateGameWeekInput struct {
	Number    int
	StartDate time.Time
	EndDate   time.Time
}

type AddFixtureInput struct {
	GameWeekID string
	HomeTeamID string
	AwayTeamID string
	KickoffAt  time.Time
	Venue      string
}

type GameWeekService struct {
	gameWeekRepo gameweek.Repository
	fixtureRepo  fixture.Repository
	teamRepo     team.Repository
	lineupRepo   lineup.Repository
	fantasyRepo  fantasy.Repository
	ruleRepo     scoring.RuleRepository
	perfRepo     scoring.PerformanceRepository
	scoreRepo    scoring.ScoreRepository
	idGen        idgen.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewGameWeekService(
	gameWeekRepo gameweek.Repository,
	fixtureRepo fixture.Repository,
	teamRepo team.Repository,
	lineupRepo lineup.Repository,
	fantasyRepo fantasy.Repository,
	ruleRepo scoring.RuleRepository,
	perfRepo scoring.PerformanceRepository,
	scoreRepo scoring.ScoreRepository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *GameWeekService {
	if logger == nil {
		logger = logging.Default()
	}

	return &GameWeekService{
		gameWeekRepo: gameWeekRepo,
		fixtureRepo:  fixtureRepo,
		teamRepo:     teamRepo,
		lineupRepo:   lineupRepo,
		fantasyRepo:  fantasyRepo,
		ruleRepo:     ruleRepo,
		perfRepo:     perfRepo,
		scoreRepo:    scoreRepo,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *GameWeekService) CreateGameWeek(ctx context.Context, input CreateGameWeekInput) (gameweek.GameWeek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameWeekService.CreateGameWeek")
	defer span.End()

	if input.Number < 1 {
		return gameweek.GameWeek{}, fmt.Errorf("%w: gameweek number must be positive", ErrInvalidInput)
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return gameweek.GameWeek{}, fmt.Errorf("%w: start_date and end_date are required", ErrInvalidInput)
	}
	if !input.EndDate.After(input.StartDate) {
		return gameweek.GameWeek{}, fmt.Errorf("%w: end_date must be after start_date", ErrInvalidInput)
	}

	_, exists, err := s.gameWeekRepo.GetByNumber(ctx, input.Number)
	if err != nil {
		return gameweek.GameWeek{}, fmt.Errorf("get gameweek by number: %w", err)
	}
	if exists {
		return gameweek.GameWeek{}, fmt.Errorf("%w: gameweek number %d already exists", ErrInvalidInput, input.Number)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return gameweek.GameWeek{}, fmt.Errorf("generate gameweek id: %w", err)
	}

	gw := gameweek.GameWeek{
		ID:        id,
		Number:    input.Number,
		Status:    gameweek.StatusUpcoming,
		StartDate: input.StartDate.UTC(),
		EndDate:   input.EndDate.UTC(),
	}
	if err := s.gameWeekRepo.Create(ctx, gw); err != nil {
		return gameweek.GameWeek{}, fmt.Errorf("create gameweek: %w", err)
	}

	s.logger.InfoContext(ctx, "gameweek created", "gameweek_id", gw.ID, "number", gw.Number)

	return gw, nil
}

func (s *GameWeekService) GetGameWeek(ctx context.Context, id string) (gameweek.GameWeek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameWeekService.GetGameWeek")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return gameweek.GameWeek{}, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}

	gw, exists, err := s.gameWeekRepo.GetByID(ctx, id)
	if err != nil {
		return gameweek.GameWeek{}, fmt.Errorf("get gameweek by id: %w", err)
	}
	if !exists {
		return gameweek.GameWeek{}, fmt.Errorf("%w: gameweek=%s", ErrNotFound, id)
	}

	return gw, nil
}

func (s *GameWeekService) ListGameWeeks(ctx context.Context) ([]gameweek.GameWeek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameWeekService.ListGameWeeks")
	defer span.End()

	items, err := s.gameWeekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}

	return items, nil
}

func (s *GameWeekService) AddFixture(ctx context.Context, input AddFixtureInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameWeekService.AddFixture")
	defer span.End()

	input.GameWeekID = strings.TrimSpace(input.GameWeekID)
	input.HomeTeamID = strings.TrimSpace(input.HomeTeamID)
	input.AwayTeamID = strings.TrimSpace(input.AwayTeamID)
	input.Venue = strings.TrimSpace(input.Venue)
	if input.GameWeekID == "" {
		return fixture.Fixture{}, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}
	if input.KickoffAt.IsZero() {
		return fixture.Fixture{}, fmt.Errorf("%w: kickoff_at is required", ErrInvalidInput)
	}

	gw, exists, err := s.gameWeekRepo.GetByID(ctx, input.GameWeekID)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get gameweek by id: %w", err)
	}
	if !exists {
		return fixture.Fixture{}, fmt.Errorf("%w: gameweek=%s", ErrNotFound, input.GameWeekID)
	}

	for _, teamID := range []string{input.HomeTeamID, input.AwayTeamID} {
		if teamID == "" {
			return fixture.Fixture{}, fmt.Errorf("%w: home_team_id and away_team_id are required", ErrInvalidInput)
		}
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return fixture.Fixture{}, fmt.Errorf("get basketball team by id: %w", err)
		}
		if !exists {
			return fixture.Fixture{}, fmt.Errorf("%w: basketball team=%s", ErrNotFound, teamID)
		}
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("generate fixture id: %w", err)
	}

	item := fixture.Fixture{
		ID:         id,
		GameWeekID: gw.ID,
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		KickoffAt:  input.KickoffAt.UTC(),
		Venue:      input.Venue,
		Status:     fixture.StatusScheduled,
	}
	if err := item.Validate(); err != nil {
		return fixture.Fixture{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.fixtureRepo.Create(ctx, item); err != nil {
		return fixture.Fixture{}, fmt.Errorf("create fixture: %w", err)
	}

	return item, nil
}

func (s *GameWeekService) ListFixtures(ctx context.Context, gameWeekID string) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameWeekService.ListFixtures")
	defer span.End()

	gameWeekID = strings.TrimSpace(gameWeekID)
	if gameWeekID == "" {
		return nil, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}

	items, err := s.fixtureRepo.ListByGameWeek(ctx, gameWeekID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by gameweek: %w", err)
	}

	return items, nil
}

// CalculateGameWeekPoints scores every saved lineup of a completed gameweek
// and settles team totals through per-(team, gameweek) contribution records.
// Re-running it applies only the difference against what was already
// credited, so a replay after a partial failure is safe. Returns the sum of
// point deltas applied this run.
func (s *GameWeekService) CalculateGameWeekPoints(ctx context.Context, gameWeekID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameWeekService.CalculateGameWeekPoints")
	defer span.End()

	gameWeekID = strings.TrimSpace(gameWeekID)
	if gameWeekID == "" {
		return 0, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}

	gw, exists, err := s.gameWeekRepo.GetByID(ctx, gameWeekID)
	if err != nil {
		return 0, fmt.Errorf("get gameweek by id: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: gameweek=%s", ErrNotFound, gameWeekID)
	}
	if gw.Status != gameweek.StatusCompleted {
		return 0, fmt.Errorf("%w: gameweek %d is not completed", ErrInvalidInput, gw.Number)
	}

	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list scoring rules: %w", err)
	}
	ruleMap := scoring.BuildRuleMap(rules)

	playerPoints, err := s.gameWeekPlayerPoints(ctx, gw.ID, ruleMap)
	if err != nil {
		return 0, err
	}

	lineups, err := s.lineupRepo.ListByGameWeek(ctx, gw.ID)
	if err != nil {
		return 0, fmt.Errorf("list lineups by gameweek: %w", err)
	}

	totalDelta := 0
	calculatedAt := s.now().UTC()
	for _, l := range lineups {
		score := 0
		for _, slot := range l.Slots {
			if !slot.Starter {
				continue
			}
			points := playerPoints[slot.PlayerID]
			if slot.SlotPosition == lineup.CaptainMarker {
				points *= 2
			}
			score += points
		}

		previous, _, err := s.scoreRepo.GetTeamGameWeekScore(ctx, l.TeamID, gw.ID)
		if err != nil {
			return totalDelta, fmt.Errorf("get team gameweek score: %w", err)
		}
		delta := score - previous.Points
		if delta == 0 {
			continue
		}

		t, exists, err := s.fantasyRepo.GetByID(ctx, l.TeamID)
		if err != nil {
			return totalDelta, fmt.Errorf("get team by id: %w", err)
		}
		if !exists {
			return totalDelta, fmt.Errorf("%w: team=%s", ErrNotFound, l.TeamID)
		}

		t.TotalPoints += delta
		if t.TotalPoints < 0 {
			t.TotalPoints = 0
		}
		t.UpdatedAt = calculatedAt
		if err := s.fantasyRepo.Save(ctx, t); err != nil {
			if errors.Is(err, fantasy.ErrVersionMismatch) {
				return totalDelta, fmt.Errorf("%w: team %s was modified concurrently", ErrConflict, t.ID)
			}
			return totalDelta, fmt.Errorf("save team total: %w", err)
		}

		contribution := scoring.TeamGameWeekScore{
			TeamID:       l.TeamID,
			GameWeekID:   gw.ID,
			Points:       score,
			CalculatedAt: calculatedAt,
		}
		if err := s.scoreRepo.UpsertTeamGameWeekScore(ctx, contribution); err != nil {
			return totalDelta, fmt.Errorf("upsert team gameweek score: %w", err)
		}

		totalDelta += delta
	}

	s.logger.InfoContext(ctx, "gameweek scored",
		"gameweek_id", gw.ID,
		"lineups", len(lineups),
		"points_delta", totalDelta,
	)

	return totalDelta, nil
}

// gameWeekPlayerPoints maps each player who appeared this gameweek to their
// fantasy points. A player recorded in two fixtures of the same gameweek
// violates the one-match-per-week invariant and aborts scoring.
func (s *GameWeekService) gameWeekPlayerPoints(ctx context.Context, gameWeekID string, ruleMap scoring.RuleMap) (map[string]int, error) {
	fixtures, err := s.fixtureRepo.ListByGameWeek(ctx, gameWeekID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by gameweek: %w", err)
	}

	fixtureIDs := make([]string, 0, len(fixtures))
	for _, f := range fixtures {
		fixtureIDs = append(fixtureIDs, f.ID)
	}

	performances, err := s.perfRepo.ListByFixtures(ctx, fixtureIDs)
	if err != nil {
		return nil, fmt.Errorf("list performances by fixtures: %w", err)
	}

	points := make(map[string]int, len(performances))
	for _, p := range performances {
		if _, duplicate := points[p.PlayerID]; duplicate {
			return nil, fmt.Errorf("%w: player %s has multiple performances in gameweek %s", ErrConflict, p.PlayerID, gameWeekID)
		}
		points[p.PlayerID] = scoring.CalculatePoints(p, ruleMap)
	}

	return points, nil
}
