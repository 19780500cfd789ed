package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/Alislimm/fantasy-ms/internal/usecase"
)

type makeTransferRequest struct {
	GameWeekID  string `json:"game_week_id" validate:"required"`
	PlayerOutID string `json:"player_out_id" validate:"required"`
	PlayerInID  string `json:"player_in_id" validate:"required"`
}

func (h *Handler) MakeTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MakeTransfer")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))

	var req makeTransferRequest
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

	record, err := h.transferService.MakeTransfer(ctx, usecase.MakeTransferInput{
		TeamID:      teamID,
		GameWeekID:  req.GameWeekID,
		PlayerOutID: req.PlayerOutID,
		PlayerInID:  req.PlayerInID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "make transfer failed",
			"team_id", teamID,
			"game_week_id", req.GameWeekID,
			"player_out_id", req.PlayerOutID,
			"player_in_id", req.PlayerInID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, transferToDTO(ctx, record))
}

func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTransfers")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	records, err := h.transferService.ListTransfers(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list transfers failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]transferDTO, 0, len(records))
	for _, record := range records {
		items = append(items, transferToDTO(ctx, record))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
