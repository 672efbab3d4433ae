package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-predictor/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	GetByID(ctx context.Context, id models.TeamID) (*models.Team, error)
	ListAll(ctx context.Context) ([]models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

type teamScanner interface {
	Scan(dest ...interface{}) error
}

func scanTeam(row teamScanner) (models.Team, error) {
	var (
		team models.Team
		rank sql.NullInt64
	)
	if err := row.Scan(&team.ID, &team.Name, &team.Code, &rank); err != nil {
		return models.Team{}, err
	}
	if rank.Valid {
		r, err := models.NewTeamRank(int(rank.Int64))
		if err != nil {
			return models.Team{}, fmt.Errorf("team %d: %w", team.ID, err)
		}
		team.Rank = r
	}
	return team, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id models.TeamID) (*models.Team, error) {
	query := `SELECT id, name, fifa_code, rank_ FROM teams WHERE id = $1`
	team, err := scanTeam(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *postgresTeamRepository) ListAll(ctx context.Context) ([]models.Team, error) {
	query := `SELECT id, name, fifa_code, rank_ FROM teams ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		team, scanErr := scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}
