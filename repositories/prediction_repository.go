package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-predictor/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound          = errors.New("player not found")
	ErrPredictionGameInvalid   = errors.New("prediction game conflict or invalid")
	ErrPredictionPlayerInvalid = errors.New("prediction player conflict or invalid")
)

type PredictionRepository interface {
	Upsert(ctx context.Context, p models.Prediction) error
	ListAll(ctx context.Context) ([]models.Prediction, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	GetPlayer(ctx context.Context, id int) (*models.Player, error)
}

type postgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) PredictionRepository {
	return &postgresPredictionRepository{db: db}
}

func (r *postgresPredictionRepository) Upsert(ctx context.Context, p models.Prediction) error {
	query := `
		INSERT INTO predictions (player_id, game_id, home_result, away_result)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (player_id, game_id)
		DO UPDATE SET home_result = EXCLUDED.home_result, away_result = EXCLUDED.away_result`
	_, err := r.db.ExecContext(ctx, query, p.PlayerID, p.GameID, p.HomeGoals.Int(), p.AwayGoals.Int())
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "predictions_game_id_fkey":
				return ErrPredictionGameInvalid
			case "predictions_player_id_fkey":
				return ErrPredictionPlayerInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresPredictionRepository) ListAll(ctx context.Context) ([]models.Prediction, error) {
	query := `SELECT player_id, game_id, home_result, away_result FROM predictions ORDER BY player_id, game_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := make([]models.Prediction, 0)
	for rows.Next() {
		var (
			p          models.Prediction
			home, away int
		)
		if scanErr := rows.Scan(&p.PlayerID, &p.GameID, &home, &away); scanErr != nil {
			return nil, scanErr
		}
		if p.HomeGoals, err = models.NewGoalCount(home); err != nil {
			return nil, fmt.Errorf("prediction %d/%d: %w", p.PlayerID, p.GameID, err)
		}
		if p.AwayGoals, err = models.NewGoalCount(away); err != nil {
			return nil, fmt.Errorf("prediction %d/%d: %w", p.PlayerID, p.GameID, err)
		}
		predictions = append(predictions, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return predictions, nil
}

func (r *postgresPredictionRepository) ListPlayers(ctx context.Context) ([]models.Player, error) {
	query := `SELECT id, name, role, created_at FROM players ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if scanErr := rows.Scan(&p.ID, &p.Name, &p.Role, &p.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPredictionRepository) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT id, name, role, created_at FROM players WHERE id = $1`
	var p models.Player
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Role, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}
