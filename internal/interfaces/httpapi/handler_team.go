package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/Alislimm/fantasy-ms/internal/usecase"
)

type createTeamRequest struct {
	OwnerID string `json:"owner_id" validate:"required"`
	Name    string `json:"name" validate:"required,max=100"`
}

type buildSquadRequest struct {
	PlayerIDs []string `json:"player_ids" validate:"required,len=8,dive,required"`
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
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

	created, err := h.teamService.CreateTeam(ctx, usecase.CreateTeamInput{
		OwnerID: req.OwnerID,
		Name:    req.Name,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "owner_id", req.OwnerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, fantasyTeamToDTO(ctx, created))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	item, err := h.teamService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fantasyTeamToDTO(ctx, item))
}

func (h *Handler) GetTeamByOwner(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamByOwner")
	defer span.End()

	ownerID := strings.TrimSpace(r.PathValue("ownerID"))
	item, err := h.teamService.GetByOwner(ctx, ownerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team by owner failed", "owner_id", ownerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fantasyTeamToDTO(ctx, item))
}

func (h *Handler) BuildSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BuildSquad")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))

	var req buildSquadRequest
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

	updated, err := h.squadService.BuildInitialSquad(ctx, usecase.BuildSquadInput{
		TeamID:    teamID,
		PlayerIDs: req.PlayerIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "build squad failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fantasyTeamToDTO(ctx, updated))
}

func (h *Handler) GetSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquad")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	squad, err := h.squadService.GetSquad(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]squadPlayerDTO, 0, len(squad))
	for _, sp := range squad {
		items = append(items, squadPlayerToDTO(ctx, sp))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
