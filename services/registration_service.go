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
	"golang.org/x/sync/errgroup"
)

type RegistrationService interface {
	Register(ctx context.Context, input RegisterTeamInput) (*models.Team, error)
}

type PlayerInput struct {
	FullName   string
	StdStaffID string
	Type       string
	Photo      *models.File
}

type RegisterTeamInput struct {
	TeamName   string
	Level      string
	EvalMethod string
	EvalLink   string
	Player1    PlayerInput
	Player2    PlayerInput
}

type registrationService struct {
	tx         repositories.Transactor
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	files      *storage.Gateway
	events     live.Publisher
	metrics    *metrics.Collectors
	logger     *slog.Logger
}

func NewRegistrationService(
	tx repositories.Transactor,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	files *storage.Gateway,
	events live.Publisher,
	m *metrics.Collectors,
	logger *slog.Logger,
) RegistrationService {
	return &registrationService{
		tx:         tx,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		files:      files,
		events:     publisherOrNop(events),
		metrics:    m,
		logger:     loggerOrDefault(logger),
	}
}

func validateRegistration(input *RegisterTeamInput) (models.Level, error) {
	if input.Player1.Photo == nil || input.Player1.Photo.Body == nil ||
		input.Player2.Photo == nil || input.Player2.Photo.Body == nil {
		return "", ErrPhotosRequired
	}

	input.TeamName = strings.TrimSpace(input.TeamName)
	if input.TeamName == "" {
		return "", ErrTeamNameRequired
	}

	level, err := models.ParseLevel(input.Level)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidLevel, err)
	}

	for _, p := range []*PlayerInput{&input.Player1, &input.Player2} {
		p.FullName = strings.TrimSpace(p.FullName)
		p.StdStaffID = strings.TrimSpace(p.StdStaffID)
		p.Type = strings.ToLower(strings.TrimSpace(p.Type))
		switch {
		case p.FullName == "":
			return "", ErrPlayerNameRequired
		case p.StdStaffID == "":
			return "", ErrPlayerIDRequired
		case p.Type == "":
			return "", ErrPlayerTypeRequired
		}
	}

	return level, nil
}

// Register allocates a team code, stores both photos and then writes the team
// and its two players in one transaction. If the transaction fails the photos
// are deleted again, so a failed registration leaves nothing behind except a
// consumed sequence number.
func (s *registrationService) Register(ctx context.Context, input RegisterTeamInput) (*models.Team, error) {
	level, err := validateRegistration(&input)
	if err != nil {
		return nil, err
	}

	p1Type := models.PlayerType(input.Player1.Type)
	p2Type := models.PlayerType(input.Player2.Type)
	totalFee := calculateTotalFee(p1Type, p2Type)

	code, err := s.teamRepo.NextTeamCode(ctx, level)
	if err != nil {
		return nil, err
	}

	var p1Photo, p2Photo *storage.UploadResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.files.Put(gctx, "p1_"+code, input.Player1.Photo)
		s.metrics.ObserveUpload("photo", err)
		if err != nil {
			return fmt.Errorf("player 1 photo: %w", err)
		}
		p1Photo = res
		return nil
	})
	g.Go(func() error {
		res, err := s.files.Put(gctx, "p2_"+code, input.Player2.Photo)
		s.metrics.ObserveUpload("photo", err)
		if err != nil {
			return fmt.Errorf("player 2 photo: %w", err)
		}
		p2Photo = res
		return nil
	})
	if err := g.Wait(); err != nil {
		discardUploads(ctx, s.files, s.logger, p1Photo, p2Photo)
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	team := &models.Team{
		TeamCode:   code,
		TeamName:   input.TeamName,
		Level:      level,
		TotalFee:   totalFee,
		EvalMethod: strings.TrimSpace(input.EvalMethod),
		EvalLink:   strings.TrimSpace(input.EvalLink),
		Status:     models.StatusPendingEvaluation,
	}
	players := []*models.Player{
		{
			FullName:    input.Player1.FullName,
			StdStaffID:  input.Player1.StdStaffID,
			Type:        p1Type,
			PhotoPath:   p1Photo.Location,
			IsPlayerOne: true,
		},
		{
			FullName:    input.Player2.FullName,
			StdStaffID:  input.Player2.StdStaffID,
			Type:        p2Type,
			PhotoPath:   p2Photo.Location,
			IsPlayerOne: false,
		},
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.teamRepo.Create(ctx, exec, team); err != nil {
			return err
		}
		for _, p := range players {
			p.TeamID = team.ID
		}
		return s.playerRepo.CreateBatch(ctx, exec, players)
	})
	if err != nil {
		discardUploads(ctx, s.files, s.logger, p1Photo, p2Photo)
		if errors.Is(err, repositories.ErrTeamCodeConflict) {
			return nil, fmt.Errorf("%w: %s", ErrTeamCodeConflict, code)
		}
		return nil, fmt.Errorf("failed to save registration %s: %w", code, err)
	}

	team.Players = make([]models.Player, 0, len(players))
	for _, p := range players {
		team.Players = append(team.Players, *p)
	}

	s.metrics.ObserveRegistration(string(level))
	s.logger.Info("team registered",
		slog.String("team_code", team.TeamCode),
		slog.String("level", string(team.Level)),
		slog.Int("total_fee", team.TotalFee),
	)
	s.events.Publish(live.EventTeamRegistered, team)
	return team, nil
}
