package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sut-badminton/registration/services"
)

type AdminHandler struct {
	responder
	adminService services.AdminService
}

func NewAdminHandler(as services.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{responder: newResponder(logger), adminService: as}
}

type updateStatusRequest struct {
	TeamID    int    `json:"team_id"`
	NewStatus string `json:"new_status"`
}

// ListTeams godoc
// @Summary List all teams
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /api/admin/teams [get]
func (h *AdminHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.adminService.ListTeams(r.Context())
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// GetTeamDetails godoc
// @Summary Team with its players
// @Tags admin
// @Produce json
// @Param teamId path int true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/admin/team-details/{teamId} [get]
func (h *AdminHandler) GetTeamDetails(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamId")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	team, err := h.adminService.GetTeamDetails(r.Context(), teamID)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateStatus godoc
// @Summary Change a team's status
// @Tags admin
// @Accept json
// @Produce json
// @Param input body updateStatusRequest true "Team id and new status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Unknown status or illegal transition"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /api/admin/update-status [post]
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input updateStatusRequest
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if input.TeamID <= 0 {
		h.badRequestResponse(w, r, errors.New("team_id must be a positive integer"))
		return
	}

	team, err := h.adminService.UpdateStatus(r.Context(), input.TeamID, input.NewStatus)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": fmt.Sprintf("team %d status set to %s", team.ID, team.Status),
		"team":    team,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
