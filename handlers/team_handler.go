package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sut-badminton/registration/services"
)

type TeamHandler struct {
	responder
	teamService services.TeamService
}

func NewTeamHandler(ts services.TeamService, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{responder: newResponder(logger), teamService: ts}
}

// GetStatusByName godoc
// @Summary Check registration status by team name
// @Tags status
// @Produce json
// @Param teamName path string true "Team name"
// @Success 200 {object} services.TeamStatusView
// @Failure 404 {object} map[string]string
// @Router /api/status/name/{teamName} [get]
func (h *TeamHandler) GetStatusByName(w http.ResponseWriter, r *http.Request) {
	name, err := getPathParam(r, "teamName")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		h.badRequestResponse(w, r, errors.New("team name is required"))
		return
	}

	view, err := h.teamService.GetStatusByName(r.Context(), name)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// GetStatusByCode godoc
// @Summary Check registration status by team code
// @Tags status
// @Produce json
// @Param teamCode path string true "Team code, e.g. SUT25-A001"
// @Success 200 {object} services.TeamStatusView
// @Failure 404 {object} map[string]string
// @Router /api/status/{teamCode} [get]
func (h *TeamHandler) GetStatusByCode(w http.ResponseWriter, r *http.Request) {
	code, err := getPathParam(r, "teamCode")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	view, err := h.teamService.GetStatusByCode(r.Context(), code)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UploadSlip godoc
// @Summary Upload a payment slip
// @Tags payment
// @Accept multipart/form-data
// @Produce json
// @Param teamCode path string true "Team code"
// @Param slip formData file true "Transfer slip"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string "Team has not passed evaluation"
// @Failure 404 {object} map[string]string
// @Router /api/upload-slip/{teamCode} [post]
func (h *TeamHandler) UploadSlip(w http.ResponseWriter, r *http.Request) {
	code, err := getPathParam(r, "teamCode")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	if err := parseMultipart(w, r); err != nil {
		h.multipartErrorResponse(w, r, err)
		return
	}

	slip, closer, err := formFile(r, "slip")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	defer closeFile(closer)
	if slip == nil {
		h.badRequestResponse(w, r, services.ErrFileRequired)
		return
	}

	team, err := h.teamService.UploadSlip(r.Context(), code, slip)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "slip uploaded, your team is now awaiting payment verification",
		"status":  team.Status,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// CountByLevel godoc
// @Summary Registered and passed team counts per level
// @Tags status
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/team-count-by-level [get]
func (h *TeamHandler) CountByLevel(w http.ResponseWriter, r *http.Request) {
	counts, err := h.teamService.CountByLevel(r.Context())
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"counts": counts}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
