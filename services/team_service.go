package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sut-badminton/registration/live"
	"github.com/sut-badminton/registration/metrics"
	"github.com/sut-badminton/registration/models"
	"github.com/sut-badminton/registration/repositories"
	"github.com/sut-badminton/registration/storage"
)

// TeamStatusView is what a team sees when it checks its registration.
// QRCodePath is only set while the team is expected to pay.
type TeamStatusView struct {
	Team       *models.Team `json:"team"`
	QRCodePath *string      `json:"qr_code_path"`
}

type TeamService interface {
	GetStatusByName(ctx context.Context, name string) (*TeamStatusView, error)
	GetStatusByCode(ctx context.Context, code string) (*TeamStatusView, error)
	UploadSlip(ctx context.Context, code string, file *models.File) (*models.Team, error)
	CountByLevel(ctx context.Context) ([]models.LevelCount, error)
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	config     ConfigService
	files      *storage.Gateway
	events     live.Publisher
	metrics    *metrics.Collectors
	logger     *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	config ConfigService,
	files *storage.Gateway,
	events live.Publisher,
	m *metrics.Collectors,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		config:     config,
		files:      files,
		events:     publisherOrNop(events),
		metrics:    m,
		logger:     loggerOrDefault(logger),
	}
}

func mapTeamLookupError(err error, what string) error {
	if errors.Is(err, repositories.ErrTeamNotFound) {
		return ErrTeamNotFound
	}
	return fmt.Errorf("failed to get team by %s: %w", what, err)
}

func (s *teamService) GetStatusByName(ctx context.Context, name string) (*TeamStatusView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	team, err := s.teamRepo.GetByName(ctx, name)
	if err != nil {
		return nil, mapTeamLookupError(err, "name")
	}
	return s.statusView(ctx, team)
}

func (s *teamService) GetStatusByCode(ctx context.Context, code string) (*TeamStatusView, error) {
	team, err := s.teamRepo.GetByCode(ctx, normalizeTeamCode(code))
	if err != nil {
		return nil, mapTeamLookupError(err, "code")
	}
	return s.statusView(ctx, team)
}

func (s *teamService) statusView(ctx context.Context, team *models.Team) (*TeamStatusView, error) {
	players, err := s.playerRepo.ListByTeamID(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load players of team %s: %w", team.TeamCode, err)
	}
	team.Players = players

	view := &TeamStatusView{Team: team}
	if team.Status == models.StatusPassedEvaluation {
		view.QRCodePath = s.config.LookupQRCodePath(ctx)
	}
	return view, nil
}

// UploadSlip stores a payment slip for a team that passed evaluation and moves
// it to awaiting_payment_verification. Teams in any other status are refused
// without touching storage or the database.
func (s *teamService) UploadSlip(ctx context.Context, code string, file *models.File) (*models.Team, error) {
	if file == nil || file.Body == nil {
		return nil, ErrFileRequired
	}

	code = normalizeTeamCode(code)
	team, err := s.teamRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, mapTeamLookupError(err, "code")
	}
	if team.Status != models.StatusPassedEvaluation {
		return nil, ErrTeamNotPassedEvaluation
	}

	res, err := s.files.Put(ctx, "slip_"+code, file)
	s.metrics.ObserveUpload("slip", err)
	if err != nil {
		return nil, fmt.Errorf("%w: slip: %w", ErrUploadFailed, err)
	}

	err = s.teamRepo.AttachSlip(ctx, team.ID, res.Location, models.StatusPassedEvaluation, models.StatusAwaitingPaymentVerification)
	if err != nil {
		discardUploads(ctx, s.files, s.logger, res)
		if errors.Is(err, repositories.ErrTeamStatusConflict) {
			return nil, ErrTeamNotPassedEvaluation
		}
		return nil, fmt.Errorf("failed to attach slip to team %s: %w", code, err)
	}

	team.SlipPath = &res.Location
	team.Status = models.StatusAwaitingPaymentVerification

	s.logger.Info("payment slip uploaded", slog.String("team_code", code))
	s.events.Publish(live.EventSlipUploaded, map[string]interface{}{
		"team_id":   team.ID,
		"team_code": team.TeamCode,
		"slip_path": res.Location,
		"status":    team.Status,
	})
	return team, nil
}

// CountByLevel always reports all five levels, zero-filled.
func (s *teamService) CountByLevel(ctx context.Context) ([]models.LevelCount, error) {
	rows, err := s.teamRepo.CountByLevel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count teams by level: %w", err)
	}

	byLevel := make(map[models.Level]models.LevelCount, len(rows))
	for _, row := range rows {
		byLevel[models.Level(strings.ToUpper(strings.TrimSpace(string(row.Level))))] = row
	}

	counts := make([]models.LevelCount, 0, len(models.AllLevels))
	for _, level := range models.AllLevels {
		c := byLevel[level]
		counts = append(counts, models.LevelCount{Level: level, Total: c.Total, Passed: c.Passed})
	}
	return counts, nil
}
