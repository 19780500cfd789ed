package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Alislimm/fantasy-ms/external/statsfeed"
	"github.com/Alislimm/fantasy-ms/internal/config"
	"github.com/Alislimm/fantasy-ms/internal/domain/fantasy"
	"github.com/Alislimm/fantasy-ms/internal/domain/fixture"
	"github.com/Alislimm/fantasy-ms/internal/domain/gameweek"
	"github.com/Alislimm/fantasy-ms/internal/domain/lineup"
	"github.com/Alislimm/fantasy-ms/internal/domain/player"
	"github.com/Alislimm/fantasy-ms/internal/domain/pricing"
	"github.com/Alislimm/fantasy-ms/internal/domain/scoring"
	"github.com/Alislimm/fantasy-ms/internal/domain/team"
	"github.com/Alislimm/fantasy-ms/internal/domain/transfer"
	"github.com/Alislimm/fantasy-ms/internal/infrastructure/repository/memory"
	"github.com/Alislimm/fantasy-ms/internal/infrastructure/repository/postgres"
	"github.com/Alislimm/fantasy-ms/internal/interfaces/httpapi"
	idgen "github.com/Alislimm/fantasy-ms/internal/platform/id"
	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
	"github.com/Alislimm/fantasy-ms/internal/usecase"
)

// App bundles the HTTP server with the background scheduler and the
// resources both need released on shutdown.
type App struct {
	Server    *http.Server
	Scheduler *usecase.SchedulerService

	cfg    config.Config
	logger *logging.Logger
	db     *sqlx.DB
}

type repositories struct {
	teamRepo     team.Repository
	playerRepo   player.Repository
	gameWeekRepo gameweek.Repository
	fixtureRepo  fixture.Repository
	fantasyRepo  fantasy.Repository
	transferRepo transfer.Repository
	lineupRepo   lineup.Repository
	ruleRepo     scoring.RuleRepository
	perfRepo     scoring.PerformanceRepository
	scoreRepo    scoring.ScoreRepository
	pricingRepo  pricing.Repository
}

// New wires repositories, services and the HTTP surface. With an empty
// DB_URL it runs fully in memory on seeded reference data; otherwise every
// repository is Postgres-backed.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	app := &App{cfg: cfg, logger: logger}

	var repos repositories
	if cfg.DBURL == "" {
		logger.Info("storage mode", "backend", "memory")
		repos = newMemoryRepositories()
	} else {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.db = db
		logger.Info("storage mode", "backend", "postgres", "database", dbNameFromURL(cfg.DBURL))
		repos = newPostgresRepositories(db)
	}

	idGen := idgen.NewRandomGenerator()

	teamSvc := usecase.NewTeamService(repos.fantasyRepo, idGen, logger)
	squadSvc := usecase.NewSquadService(repos.fantasyRepo, repos.playerRepo, idGen, logger)
	playerSvc := usecase.NewPlayerService(repos.playerRepo, repos.fantasyRepo, logger)
	lineupSvc := usecase.NewLineupService(repos.fantasyRepo, repos.gameWeekRepo, repos.lineupRepo, idGen, logger)
	transferSvc := usecase.NewTransferService(
		repos.fantasyRepo,
		repos.playerRepo,
		repos.gameWeekRepo,
		repos.transferRepo,
		usecase.TransferPolicy{EnforceBudget: cfg.TransferBudgetEnforced},
		idGen,
		logger,
	)
	gameWeekSvc := usecase.NewGameWeekService(
		repos.gameWeekRepo,
		repos.fixtureRepo,
		repos.teamRepo,
		repos.lineupRepo,
		repos.fantasyRepo,
		repos.ruleRepo,
		repos.perfRepo,
		repos.scoreRepo,
		idGen,
		logger,
	)
	pricingSvc := usecase.NewPricingService(
		repos.playerRepo,
		repos.fantasyRepo,
		repos.perfRepo,
		repos.pricingRepo,
		idGen,
		logger,
	)
	leaderboardSvc := usecase.NewLeaderboardService(repos.fantasyRepo, repos.transferRepo, logger)
	schedulerSvc := usecase.NewSchedulerService(repos.gameWeekRepo, gameWeekSvc, pricingSvc, logger)

	statsClient := statsfeed.NewClient(statsfeed.ClientConfig{
		BaseURL:    cfg.StatsFeedBaseURL,
		APIKey:     cfg.StatsFeedAPIKey,
		Timeout:    cfg.StatsFeedTimeout,
		MaxRetries: cfg.StatsFeedMaxRetries,
		Logger:     logger,
	})
	ingestionSvc := usecase.NewIngestionService(
		statsClient,
		repos.fixtureRepo,
		repos.playerRepo,
		repos.perfRepo,
		idGen,
		logger,
	)

	handler := httpapi.NewHandler(
		teamSvc,
		squadSvc,
		playerSvc,
		lineupSvc,
		transferSvc,
		gameWeekSvc,
		pricingSvc,
		leaderboardSvc,
		schedulerSvc,
		ingestionSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		app.close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	app.Server = server
	app.Scheduler = schedulerSvc

	return app, nil
}

// RunGameWeekCloseLoop drives the scheduler on a fixed interval until ctx
// is cancelled. Errors are logged and the loop keeps running.
func (a *App) RunGameWeekCloseLoop(ctx context.Context) {
	if !a.cfg.GameWeekCloseLoopEnabled {
		a.logger.Info("gameweek close loop disabled", "reason", "GAMEWEEK_CLOSE_LOOP_ENABLED=false")
		return
	}

	ticker := time.NewTicker(a.cfg.GameWeekCloseInterval)
	defer ticker.Stop()

	a.logger.Info("gameweek close loop starting", "interval", a.cfg.GameWeekCloseInterval.String())
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("gameweek close loop stopped")
			return
		case <-ticker.C:
			result, err := a.Scheduler.CloseDueGameWeeks(ctx)
			if err != nil {
				a.logger.ErrorContext(ctx, "close due gameweeks failed", "error", err)
				continue
			}
			if result.ClosedCount > 0 {
				a.logger.InfoContext(ctx, "gameweeks closed",
					"closed_count", result.ClosedCount,
					"scored_points", result.ScoredPoints,
				)
			}
		}
	}
}

// Shutdown stops the HTTP server and releases storage resources.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Server.Shutdown(ctx)
	a.close()
	return err
}

func (a *App) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("close database", "error", err)
		}
	}
}

func newMemoryRepositories() repositories {
	fantasyRepo := memory.NewFantasyRepository()

	return repositories{
		teamRepo:     memory.NewTeamRepository(memory.SeedTeams()),
		playerRepo:   memory.NewPlayerRepository(memory.SeedPlayers()),
		gameWeekRepo: memory.NewGameWeekRepository(memory.SeedGameWeeks()),
		fixtureRepo:  memory.NewFixtureRepository(memory.SeedFixtures()),
		fantasyRepo:  fantasyRepo,
		transferRepo: fantasyRepo,
		lineupRepo:   memory.NewLineupRepository(),
		ruleRepo:     memory.NewRuleRepository(memory.SeedScoringRules()),
		perfRepo:     memory.NewPerformanceRepository(),
		scoreRepo:    memory.NewScoreRepository(),
		pricingRepo:  memory.NewPricingRepository(),
	}
}

func newPostgresRepositories(db *sqlx.DB) repositories {
	fantasyRepo := postgres.NewFantasyRepository(db)

	return repositories{
		teamRepo:     postgres.NewTeamRepository(db),
		playerRepo:   postgres.NewPlayerRepository(db),
		gameWeekRepo: postgres.NewGameWeekRepository(db),
		fixtureRepo:  postgres.NewFixtureRepository(db),
		fantasyRepo:  fantasyRepo,
		transferRepo: fantasyRepo,
		lineupRepo:   postgres.NewLineupRepository(db),
		ruleRepo:     postgres.NewRuleRepository(db),
		perfRepo:     postgres.NewPerformanceRepository(db),
		scoreRepo:    postgres.NewScoreRepository(db),
		pricingRepo:  postgres.NewPricingRepository(db),
	}
}
