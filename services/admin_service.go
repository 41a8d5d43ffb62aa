package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sut-badminton/registration/live"
	"github.com/sut-badminton/registration/models"
	"github.com/sut-badminton/registration/repositories"
)

type AdminService interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeamDetails(ctx context.Context, teamID int) (*models.Team, error)
	UpdateStatus(ctx context.Context, teamID int, newStatus string) (*models.Team, error)
}

type adminService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	events     live.Publisher
	logger     *slog.Logger
}

func NewAdminService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	events live.Publisher,
	logger *slog.Logger,
) AdminService {
	return &adminService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		events:     publisherOrNop(events),
		logger:     loggerOrDefault(logger),
	}
}

func (s *adminService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if teams == nil {
		return []models.Team{}, nil
	}
	return teams, nil
}

func (s *adminService) GetTeamDetails(ctx context.Context, teamID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, mapTeamLookupError(err, "id")
	}
	players, err := s.playerRepo.ListByTeamID(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load players of team %d: %w", teamID, err)
	}
	team.Players = players
	return team, nil
}

func (s *adminService) UpdateStatus(ctx context.Context, teamID int, newStatus string) (*models.Team, error) {
	next, err := models.ParseTeamStatus(newStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStatus, err)
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, mapTeamLookupError(err, "id")
	}

	current := team.Status
	if current == next {
		return team, nil
	}
	if !isValidStatusTransition(current, next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current, next)
	}

	if err := s.applyTransition(ctx, team.ID, current, next); err != nil {
		if errors.Is(err, repositories.ErrTeamStatusConflict) {
			return nil, ErrStatusConflict
		}
		return nil, fmt.Errorf("failed to update status of team %d: %w", teamID, err)
	}
	team.Status = next
	if slipRejected(current, next) {
		team.SlipPath = nil
	}

	s.logger.Info("team status updated",
		slog.Int("team_id", team.ID),
		slog.String("team_code", team.TeamCode),
		slog.String("from", string(current)),
		slog.String("to", string(next)),
	)
	s.events.Publish(live.EventTeamStatusChanged, map[string]interface{}{
		"team_id":   team.ID,
		"team_code": team.TeamCode,
		"from":      current,
		"to":        next,
	})
	return team, nil
}

// A slip sent back for re-upload is cleared along with the status change.
func (s *adminService) applyTransition(ctx context.Context, teamID int, current, next models.TeamStatus) error {
	if slipRejected(current, next) {
		return s.teamRepo.DetachSlip(ctx, teamID, current, next)
	}
	return s.teamRepo.TransitionStatus(ctx, nil, teamID, current, next)
}

func slipRejected(current, next models.TeamStatus) bool {
	return current == models.StatusAwaitingPaymentVerification && next == models.StatusPassedEvaluation
}
