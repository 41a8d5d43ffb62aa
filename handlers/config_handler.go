package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sut-badminton/registration/services"
)

type ConfigHandler struct {
	responder
	configService services.ConfigService
}

func NewConfigHandler(cs services.ConfigService, logger *slog.Logger) *ConfigHandler {
	return &ConfigHandler{responder: newResponder(logger), configService: cs}
}

// UploadQRCode godoc
// @Summary Replace the payment QR code
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param qr_code formData file true "QR code image"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/admin/upload-qr [post]
func (h *ConfigHandler) UploadQRCode(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r); err != nil {
		h.multipartErrorResponse(w, r, err)
		return
	}

	qr, closer, err := formFile(r, "qr_code")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	defer closeFile(closer)
	if qr == nil {
		h.badRequestResponse(w, r, services.ErrFileRequired)
		return
	}

	url, err := h.configService.UploadQRCode(r.Context(), qr)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "QR code uploaded",
		"url":     url,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// GetQRCodePath godoc
// @Summary Current payment QR code URL
// @Tags config
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/config/qr_code_path [get]
func (h *ConfigHandler) GetQRCodePath(w http.ResponseWriter, r *http.Request) {
	path, err := h.configService.GetQRCodePath(r.Context())
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"qr_code_path": path}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
