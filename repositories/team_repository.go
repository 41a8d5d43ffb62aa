package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sut-badminton/registration/models"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamCodeConflict   = errors.New("team code conflict")
	ErrTeamStatusConflict = errors.New("team status changed concurrently")
)

type TeamRepository interface {
	NextTeamCode(ctx context.Context, level models.Level) (string, error)
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByCode(ctx context.Context, code string) (*models.Team, error)
	GetByName(ctx context.Context, name string) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	TransitionStatus(ctx context.Context, exec SQLExecutor, id int, from, to models.TeamStatus) error
	AttachSlip(ctx context.Context, id int, slipPath string, from, to models.TeamStatus) error
	DetachSlip(ctx context.Context, id int, from, to models.TeamStatus) error
	CountByLevel(ctx context.Context) ([]models.LevelCount, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const teamColumns = `id, team_code, team_name, level, total_fee, eval_method, eval_link, status, slip_path, created_at`

func scanTeam(row interface{ Scan(dest ...interface{}) error }, t *models.Team) error {
	return row.Scan(
		&t.ID, &t.TeamCode, &t.TeamName, &t.Level, &t.TotalFee,
		&t.EvalMethod, &t.EvalLink, &t.Status, &t.SlipPath, &t.CreatedAt,
	)
}

// NextTeamCode asks the database sequence function for the next code of a level.
// Codes are unique even under concurrent registrations because nextval is atomic.
func (r *postgresTeamRepository) NextTeamCode(ctx context.Context, level models.Level) (string, error) {
	var code string
	err := r.db.QueryRowContext(ctx, `SELECT generate_team_code($1)`, string(level)).Scan(&code)
	if err != nil {
		return "", fmt.Errorf("failed to generate team code for level %s: %w", level, err)
	}
	return code, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, t *models.Team) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO teams (
			team_code, team_name, level, total_fee, eval_method, eval_link, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	err := executor.QueryRowContext(ctx, query,
		t.TeamCode, t.TeamName, string(t.Level), t.TotalFee, t.EvalMethod, t.EvalLink, string(t.Status), t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err, "teams_team_code_key") {
			return ErrTeamCodeConflict
		}
		return fmt.Errorf("failed to insert team %s: %w", t.TeamCode, err)
	}
	return nil
}

func (r *postgresTeamRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE ` + where

	t := &models.Team{}
	if err := scanTeam(r.db.QueryRowContext(ctx, query, arg), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *postgresTeamRepository) GetByCode(ctx context.Context, code string) (*models.Team, error) {
	return r.getOne(ctx, `team_code = $1`, code)
}

// GetByName returns the most recently registered team with that name.
// Names are not unique in the schema.
func (r *postgresTeamRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	return r.getOne(ctx, `team_name = $1 ORDER BY created_at DESC, id DESC LIMIT 1`, name)
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := scanTeam(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

// TransitionStatus moves a team from one status to another. It fails with
// ErrTeamStatusConflict if the team is no longer in the from status.
func (r *postgresTeamRepository) TransitionStatus(ctx context.Context, exec SQLExecutor, id int, from, to models.TeamStatus) error {
	executor := r.getExecutor(exec)
	query := `UPDATE teams SET status = $1 WHERE id = $2 AND status = $3`

	result, err := executor.ExecContext(ctx, query, string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("failed to update status of team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamStatusConflict)
}

func (r *postgresTeamRepository) AttachSlip(ctx context.Context, id int, slipPath string, from, to models.TeamStatus) error {
	query := `UPDATE teams SET slip_path = $1, status = $2 WHERE id = $3 AND status = $4`

	result, err := r.db.ExecContext(ctx, query, slipPath, string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("failed to attach slip to team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamStatusConflict)
}

// DetachSlip clears slip_path while moving the team from one status to
// another. Fails with ErrTeamStatusConflict like TransitionStatus.
func (r *postgresTeamRepository) DetachSlip(ctx context.Context, id int, from, to models.TeamStatus) error {
	query := `UPDATE teams SET slip_path = NULL, status = $1 WHERE id = $2 AND status = $3`

	result, err := r.db.ExecContext(ctx, query, string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("failed to detach slip of team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamStatusConflict)
}

// CountByLevel returns one row per level present in the table.
func (r *postgresTeamRepository) CountByLevel(ctx context.Context) ([]models.LevelCount, error) {
	passed := make([]interface{}, 0, len(models.AllStatuses))
	placeholders := make([]string, 0, len(models.AllStatuses))
	for _, st := range models.AllStatuses {
		if st.CountsAsPassed() {
			passed = append(passed, string(st))
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(passed)))
		}
	}

	query := `
		SELECT level, COUNT(*), SUM(CASE WHEN status IN (` + strings.Join(placeholders, ", ") + `) THEN 1 ELSE 0 END)
		FROM teams
		GROUP BY level`

	rows, err := r.db.QueryContext(ctx, query, passed...)
	if err != nil {
		return nil, fmt.Errorf("failed to count teams by level: %w", err)
	}
	defer rows.Close()

	counts := make([]models.LevelCount, 0, len(models.AllLevels))
	for rows.Next() {
		var c models.LevelCount
		if err := rows.Scan(&c.Level, &c.Total, &c.Passed); err != nil {
			return nil, fmt.Errorf("failed to scan level count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
