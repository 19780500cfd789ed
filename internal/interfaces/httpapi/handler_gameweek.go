package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/Alislimm/fantasy-ms/internal/usecase"
)

type createGameWeekRequest struct {
	Number    int    `json:"number" validate:"required,gt=0"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type addFixtureRequest struct {
	HomeTeamID string `json:"home_team_id" validate:"required"`
	AwayTeamID string `json:"away_team_id" validate:"required"`
	KickoffAt  string `json:"kickoff_at" validate:"required"`
	Venue      string `json:"venue" validate:"omitempty,max=200"`
}

func (h *Handler) CreateGameWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGameWeek")
	defer span.End()

	var req createGameWeekRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	startDate, err := parseTimeRFC3339(req.StartDate)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid start_date: %v", usecase.ErrInvalidInput, err))
		return
	}
	endDate, err := parseTimeRFC3339(req.EndDate)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid end_date: %v", usecase.ErrInvalidInput, err))
		return
	}

	created, err := h.gameWeekService.CreateGameWeek(ctx, usecase.CreateGameWeekInput{
		Number:    req.Number,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create gameweek failed", "number", req.Number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameWeekToDTO(ctx, created))
}

func (h *Handler) GetGameWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameWeek")
	defer span.End()

	gameWeekID := strings.TrimSpace(r.PathValue("gameWeekID"))
	item, err := h.gameWeekService.GetGameWeek(ctx, gameWeekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get gameweek failed", "game_week_id", gameWeekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameWeekToDTO(ctx, item))
}

func (h *Handler) ListGameWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameWeeks")
	defer span.End()

	gameWeeks, err := h.gameWeekService.ListGameWeeks(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list gameweeks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameWeekDTO, 0, len(gameWeeks))
	for _, gw := range gameWeeks {
		items = append(items, gameWeekToDTO(ctx, gw))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddFixture")
	defer span.End()

	gameWeekID := strings.TrimSpace(r.PathValue("gameWeekID"))

	var req addFixtureRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	kickoffAt, err := parseTimeRFC3339(req.KickoffAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid kickoff_at: %v", usecase.ErrInvalidInput, err))
		return
	}

	created, err := h.gameWeekService.AddFixture(ctx, usecase.AddFixtureInput{
		GameWeekID: gameWeekID,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		KickoffAt:  kickoffAt,
		Venue:      req.Venue,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add fixture failed", "game_week_id", gameWeekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, fixtureToDTO(ctx, created))
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	gameWeekID := strings.TrimSpace(r.PathValue("gameWeekID"))
	fixtures, err := h.gameWeekService.ListFixtures(ctx, gameWeekID)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "game_week_id", gameWeekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureToDTO(ctx, f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CalculateGameWeekPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CalculateGameWeekPoints")
	defer span.End()

	gameWeekID := strings.TrimSpace(r.PathValue("gameWeekID"))
	delta, err := h.gameWeekService.CalculateGameWeekPoints(ctx, gameWeekID)
	if err != nil {
		h.logger.WarnContext(ctx, "calculate gameweek points failed", "game_week_id", gameWeekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameWeekPointsDTO{
		GameWeekID:  gameWeekID,
		PointsDelta: delta,
	})
}

func parseTimeRFC3339(v string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(v))
}
