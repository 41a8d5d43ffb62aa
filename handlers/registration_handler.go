package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sut-badminton/registration/services"
)

type RegistrationHandler struct {
	responder
	registrationService services.RegistrationService
}

func NewRegistrationHandler(rs services.RegistrationService, logger *slog.Logger) *RegistrationHandler {
	return &RegistrationHandler{responder: newResponder(logger), registrationService: rs}
}

// Register godoc
// @Summary Register a team
// @Tags registration
// @Accept multipart/form-data
// @Produce json
// @Param team_name formData string true "Team name"
// @Param level formData string true "Level A-E"
// @Param p1_name formData string true "Player 1 full name"
// @Param p1_id formData string true "Player 1 student/staff id"
// @Param p1_type formData string true "student or staff"
// @Param p1_photo formData file true "Player 1 photo"
// @Param p2_name formData string true "Player 2 full name"
// @Param p2_id formData string true "Player 2 student/staff id"
// @Param p2_type formData string true "student or staff"
// @Param p2_photo formData file true "Player 2 photo"
// @Param eval_method formData string false "Evaluation method"
// @Param eval_link formData string false "Evaluation clip link"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /api/register [post]
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r); err != nil {
		h.multipartErrorResponse(w, r, err)
		return
	}

	p1Photo, p1Closer, err := formFile(r, "p1_photo")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	defer closeFile(p1Closer)

	p2Photo, p2Closer, err := formFile(r, "p2_photo")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	defer closeFile(p2Closer)

	input := services.RegisterTeamInput{
		TeamName:   r.FormValue("team_name"),
		Level:      r.FormValue("level"),
		EvalMethod: r.FormValue("eval_method"),
		EvalLink:   r.FormValue("eval_link"),
		Player1: services.PlayerInput{
			FullName:   r.FormValue("p1_name"),
			StdStaffID: r.FormValue("p1_id"),
			Type:       r.FormValue("p1_type"),
			Photo:      p1Photo,
		},
		Player2: services.PlayerInput{
			FullName:   r.FormValue("p2_name"),
			StdStaffID: r.FormValue("p2_id"),
			Type:       r.FormValue("p2_type"),
			Photo:      p2Photo,
		},
	}

	team, err := h.registrationService.Register(r.Context(), input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message":   "registration successful, keep your team code to track the status",
		"team_code": team.TeamCode,
		"total_fee": team.TotalFee,
		"status":    team.Status,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
