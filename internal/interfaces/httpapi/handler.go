package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Alislimm/fantasy-ms/internal/platform/logging"
	"github.com/Alislimm/fantasy-ms/internal/usecase"
)

type Handler struct {
	teamService        *usecase.TeamService
	squadService       *usecase.SquadService
	playerService      *usecase.PlayerService
	lineupService      *usecase.LineupService
	transferService    *usecase.TransferService
	gameWeekService    *usecase.GameWeekService
	pricingService     *usecase.PricingService
	leaderboardService *usecase.LeaderboardService
	schedulerService   *usecase.SchedulerService
	ingestionService   *usecase.IngestionService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	squadService *usecase.SquadService,
	playerService *usecase.PlayerService,
	lineupService *usecase.LineupService,
	transferService *usecase.TransferService,
	gameWeekService *usecase.GameWeekService,
	pricingService *usecase.PricingService,
	leaderboardService *usecase.LeaderboardService,
	schedulerService *usecase.SchedulerService,
	ingestionService *usecase.IngestionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:        teamService,
		squadService:       squadService,
		playerService:      playerService,
		lineupService:      lineupService,
		transferService:    transferService,
		gameWeekService:    gameWeekService,
		pricingService:     pricingService,
		leaderboardService: leaderboardService,
		schedulerService:   schedulerService,
		ingestionService:   ingestionService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
