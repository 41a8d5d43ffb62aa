package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sut-badminton/registration/live"
	"github.com/sut-badminton/registration/metrics"
	"github.com/sut-badminton/registration/models"
	"github.com/sut-badminton/registration/repositories"
	"github.com/sut-badminton/registration/storage"
)

// ConfigService owns the payment QR code setting.
type ConfigService interface {
	GetQRCodePath(ctx context.Context) (string, error)
	// LookupQRCodePath returns nil when no QR code is configured or it could not be read.
	LookupQRCodePath(ctx context.Context) *string
	UploadQRCode(ctx context.Context, file *models.File) (string, error)
}

type configService struct {
	configRepo repositories.ConfigRepository
	files      *storage.Gateway
	events     live.Publisher
	metrics    *metrics.Collectors
	logger     *slog.Logger
}

func NewConfigService(
	configRepo repositories.ConfigRepository,
	files *storage.Gateway,
	events live.Publisher,
	m *metrics.Collectors,
	logger *slog.Logger,
) ConfigService {
	return &configService{
		configRepo: configRepo,
		files:      files,
		events:     publisherOrNop(events),
		metrics:    m,
		logger:     loggerOrDefault(logger),
	}
}

func (s *configService) GetQRCodePath(ctx context.Context) (string, error) {
	path, err := s.configRepo.Get(ctx, models.ConfigKeyQRCodePath)
	if err != nil {
		if errors.Is(err, repositories.ErrConfigNotFound) {
			return "", ErrQRCodeNotConfigured
		}
		return "", fmt.Errorf("failed to read QR code path: %w", err)
	}
	if path == "" {
		return "", ErrQRCodeNotConfigured
	}
	return path, nil
}

func (s *configService) LookupQRCodePath(ctx context.Context) *string {
	path, err := s.GetQRCodePath(ctx)
	if err != nil {
		if !errors.Is(err, ErrQRCodeNotConfigured) {
			s.logger.Warn("treating QR code path as absent", slog.Any("error", err))
		}
		return nil
	}
	return &path
}

func (s *configService) UploadQRCode(ctx context.Context, file *models.File) (string, error) {
	if file == nil || file.Body == nil {
		return "", ErrFileRequired
	}

	res, err := s.files.Put(ctx, "config_qr_code", file)
	s.metrics.ObserveUpload("qr", err)
	if err != nil {
		return "", fmt.Errorf("%w: QR code: %w", ErrUploadFailed, err)
	}

	if err := s.configRepo.Set(ctx, models.ConfigKeyQRCodePath, res.Location); err != nil {
		discardUploads(ctx, s.files, s.logger, res)
		return "", fmt.Errorf("failed to save QR code path: %w", err)
	}

	s.logger.Info("payment QR code updated", slog.String("url", res.Location))
	s.events.Publish(live.EventQRCodeUpdated, map[string]string{"qr_code_path": res.Location})
	return res.Location, nil
}
