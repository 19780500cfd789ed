package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/Alislimm/fantasy-ms/internal/usecase"
)

type setLineupRequest struct {
	Starters  []string `json:"starters" validate:"required,len=5,dive,required"`
	Bench     []string `json:"bench" validate:"required,len=3,dive,required"`
	CaptainID string   `json:"captain_id" validate:"required"`
}

func (h *Handler) SetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetLineup")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	gameWeekID := strings.TrimSpace(r.PathValue("gameWeekID"))

	var req setLineupRequest
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

	saved, err := h.lineupService.SetLineup(ctx, usecase.SetLineupInput{
		TeamID:     teamID,
		GameWeekID: gameWeekID,
		Starters:   req.Starters,
		Bench:      req.Bench,
		CaptainID:  req.CaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set lineup failed", "team_id", teamID, "game_week_id", gameWeekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, saved))
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	gameWeekID := strings.TrimSpace(r.PathValue("gameWeekID"))

	item, exists, err := h.lineupService.GetLineup(ctx, teamID, gameWeekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get lineup failed", "team_id", teamID, "game_week_id", gameWeekID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}
