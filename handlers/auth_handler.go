package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sut-badminton/registration/middleware"
	"github.com/sut-badminton/registration/services"
)

type AuthHandler struct {
	responder
	authService services.AuthService
	jwtSecret   []byte
	tokenTTL    time.Duration
	now         func() time.Time
}

func NewAuthHandler(authService services.AuthService, jwtSecret string, tokenTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		responder:   newResponder(logger),
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		now:         time.Now,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login godoc
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Admin password"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/admin/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginRequest
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	if err := h.authService.LoginAdmin(r.Context(), input.Password); err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.NewAdminClaims(h.now(), h.tokenTTL))
	tokenString, err := token.SignedString(h.jwtSecret)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"token": tokenString}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
