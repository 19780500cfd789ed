package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Alislimm/fantasy-ms/internal/domain/fixture"
	"github.com/Alislimm/fantasy-ms/internal/domain/player"
	"github.com/Alislimm/fantasy-ms/internal/domain/scoring"
	idgen "github.com/Alislimm/fantasy-ms/internal/platform/id"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
)

// BoxScoreLine is one player's raw counting stats as reported by the feed.
type BoxScoreLine struct {
	PlayerID  string
	Points    int
	Rebounds  int
	Assists   int
	Steals    int
	Blocks    int
	Turnovers int
	ThreeMade int
}

// BoxScore is the provider's view of one finished fixture.
type BoxScore struct {
	FixtureID string
	Final     bool
	Lines     []BoxScoreLine
}

// StatsProvider pulls raw box scores from the external feed.
type StatsProvider interface {
	FetchBoxScore(ctx context.Context, fixtureID string) (BoxScore, error)
}

type IngestBoxScoreResult struct {
	FixtureID    string `json:"fixture_id"`
	CreatedCount int    `json:"created_count"`
	SkippedCount int    `json:"skipped_count"`
}

type IngestionService struct {
	provider    StatsProvider
	fixtureRepo fixture.Repository
	playerRepo  player.Repository
	perfRepo    scoring.PerformanceRepository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewIngestionService(
	provider StatsProvider,
	fixtureRepo fixture.Repository,
	playerRepo player.Repository,
	perfRepo scoring.PerformanceRepository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &IngestionService{
		provider:    provider,
		fixtureRepo: fixtureRepo,
		playerRepo:  playerRepo,
		perfRepo:    perfRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// IngestBoxScore pulls the feed's box score for a fixture and records one
// immutable performance row per player. Lines already recorded are skipped,
// so re-running after a partial failure is safe. The fixture is flipped to
// finished once its lines are stored.
func (s *IngestionService) IngestBoxScore(ctx context.Context, fixtureID string) (IngestBoxScoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestBoxScore")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return IngestBoxScoreResult{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	f, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return IngestBoxScoreResult{}, fmt.Errorf("get fixture by id: %w", err)
	}
	if !exists {
		return IngestBoxScoreResult{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}
	if f.Status == fixture.StatusCancelled {
		return IngestBoxScoreResult{}, fmt.Errorf("%w: fixture %s is cancelled", ErrInvalidInput, fixtureID)
	}

	box, err := s.provider.FetchBoxScore(ctx, fixtureID)
	if err != nil {
		return IngestBoxScoreResult{}, fmt.Errorf("fetch box score: %w", err)
	}
	if !box.Final {
		return IngestBoxScoreResult{}, fmt.Errorf("%w: fixture %s box score is not final yet", ErrInvalidInput, fixtureID)
	}

	result := IngestBoxScoreResult{FixtureID: fixtureID}
	recordedAt := s.now().UTC()
	for _, line := range box.Lines {
		playerID := strings.TrimSpace(line.PlayerID)
		if playerID == "" {
			return result, fmt.Errorf("%w: box score line without player id", ErrInvalidInput)
		}

		_, exists, err := s.playerRepo.GetByID(ctx, playerID)
		if err != nil {
			return result, fmt.Errorf("get player by id: %w", err)
		}
		if !exists {
			return result, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
		}

		_, recorded, err := s.perfRepo.GetByFixtureAndPlayer(ctx, fixtureID, playerID)
		if err != nil {
			return result, fmt.Errorf("get performance: %w", err)
		}
		if recorded {
			result.SkippedCount++
			continue
		}

		perfID, err := s.idGen.NewID()
		if err != nil {
			return result, fmt.Errorf("generate performance id: %w", err)
		}

		line := line
		perf := scoring.Performance{
			ID:         perfID,
			FixtureID:  fixtureID,
			PlayerID:   playerID,
			Points:     &line.Points,
			Rebounds:   &line.Rebounds,
			Assists:    &line.Assists,
			Steals:     &line.Steals,
			Blocks:     &line.Blocks,
			Turnovers:  &line.Turnovers,
			ThreeMade:  &line.ThreeMade,
			RecordedAt: recordedAt,
		}
		if err := s.perfRepo.Create(ctx, perf); err != nil {
			return result, fmt.Errorf("create performance: %w", err)
		}
		result.CreatedCount++
	}

	if f.Status != fixture.StatusFinished {
		if err := s.fixtureRepo.UpdateStatus(ctx, fixtureID, fixture.StatusFinished); err != nil {
			return result, fmt.Errorf("finish fixture: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "box score ingested",
		"fixture_id", fixtureID,
		"created", result.CreatedCount,
		"skipped", result.SkippedCount,
	)

	return result, nil
}
