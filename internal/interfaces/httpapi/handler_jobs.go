package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/Alislimm/fantasy-ms/internal/usecase"
)

type recalculatePricesRequest struct {
	GameWeekID string `json:"game_week_id" validate:"omitempty"`
	MaxWorkers int    `json:"max_workers" validate:"omitempty,gte=0,lte=64"`
}

type ingestBoxScoreRequest struct {
	FixtureID string `json:"fixture_id" validate:"required"`
}

func (h *Handler) RunCloseGameWeeksJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunCloseGameWeeksJob")
	defer span.End()

	result, err := h.schedulerService.CloseDueGameWeeks(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "close gameweeks job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunRecalculatePricesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalculatePricesJob")
	defer span.End()

	var req recalculatePricesRequest
	if r.Body != nil && r.ContentLength != 0 {
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
	}

	result, err := h.pricingService.RecalculatePrices(ctx, usecase.RecalculatePricesInput{
		GameWeekID: req.GameWeekID,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "recalculate prices job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) IngestBoxScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestBoxScore")
	defer span.End()

	var req ingestBoxScoreRequest
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

	result, err := h.ingestionService.IngestBoxScore(ctx, req.FixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "box score ingestion failed", "fixture_id", req.FixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
