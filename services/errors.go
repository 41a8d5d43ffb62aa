package services

import "errors"

// Ошибки сервисного слоя; маппинг в HTTP-статусы живёт в handlers.
var (
	// Ошибки валидации (400)
	ErrTeamNameRequired        = errors.New("team name is required")
	ErrInvalidLevel            = errors.New("level must be one of A, B, C, D, E")
	ErrPlayerNameRequired      = errors.New("both player names are required")
	ErrPlayerIDRequired        = errors.New("both player student/staff ids are required")
	ErrPlayerTypeRequired      = errors.New("both player types are required")
	ErrPhotosRequired          = errors.New("photos of both players are required")
	ErrFileRequired            = errors.New("file is required")
	ErrInvalidStatus           = errors.New("invalid team status")
	ErrInvalidStatusTransition = errors.New("invalid team status transition")

	// Не найдено (404)
	ErrTeamNotFound        = errors.New("team not found")
	ErrQRCodeNotConfigured = errors.New("payment QR code is not configured")

	// Нарушение предусловия по статусу (403)
	ErrTeamNotPassedEvaluation = errors.New("team has not passed evaluation yet; wait for the admin to review it")

	// Конфликты (409)
	ErrStatusConflict   = errors.New("team status was changed by another request, reload and retry")
	ErrTeamCodeConflict = errors.New("team code already in use")

	// Аутентификация (401)
	ErrAuthInvalidCredentials = errors.New("invalid admin credentials")

	// Ошибки интеграции (500)
	ErrUploadFailed = errors.New("failed to upload file")
)
