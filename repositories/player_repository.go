package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sut-badminton/registration/models"
)

type PlayerRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, players []*models.Player) error
	ListByTeamID(ctx context.Context, teamID int) ([]models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// CreateBatch inserts all players atomically. When exec is already a *sql.Tx
// the caller owns commit and rollback.
func (r *postgresPlayerRepository) CreateBatch(ctx context.Context, exec SQLExecutor, players []*models.Player) (err error) {
	executor := r.getExecutor(exec)
	if len(players) == 0 {
		return nil
	}

	tx, isExternalTx := executor.(*sql.Tx)
	if !isExternalTx {
		tx, err = r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("CreateBatch failed to begin transaction: %w", err)
		}
		defer func() {
			if p := recover(); p != nil {
				_ = tx.Rollback()
				panic(p)
			} else if err != nil {
				_ = tx.Rollback()
			} else {
				err = tx.Commit()
			}
		}()
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO players (team_id, full_name, std_staff_id, type, photo_path, is_player_one)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`)
	if err != nil {
		return fmt.Errorf("CreateBatch failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range players {
		err = stmt.QueryRowContext(ctx,
			p.TeamID, p.FullName, p.StdStaffID, string(p.Type), p.PhotoPath, p.IsPlayerOne,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("CreateBatch failed for team_id %d, player %q: %w", p.TeamID, p.FullName, err)
		}
	}
	return nil
}

// ListByTeamID returns the roster with player one first.
func (r *postgresPlayerRepository) ListByTeamID(ctx context.Context, teamID int) ([]models.Player, error) {
	query := `
		SELECT id, team_id, full_name, std_staff_id, type, photo_path, is_player_one
		FROM players
		WHERE team_id = $1
		ORDER BY is_player_one DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %d: %w", teamID, err)
	}
	defer rows.Close()

	players := make([]models.Player, 0, 2)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.TeamID, &p.FullName, &p.StdStaffID, &p.Type, &p.PhotoPath, &p.IsPlayerOne); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}
