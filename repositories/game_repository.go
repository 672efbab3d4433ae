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
	ErrGameNotFound    = errors.New("game not found")
	ErrGameTeamInvalid = errors.New("game team conflict or invalid")
)

// GameRepository stores group games. Rows are mapped to the played and
// unplayed variants here; nothing above this layer sees a nullable
// result column.
type GameRepository interface {
	ListGroups(ctx context.Context) ([]models.Group, error)
	NextGameID(ctx context.Context) (models.GameID, error)
	CreateGroupGames(ctx context.Context, group models.GroupID, games []models.UnplayedGame) error
	SetResult(ctx context.Context, exec SQLExecutor, game models.PlayedGame) error
	ClearResult(ctx context.Context, exec SQLExecutor, gameID models.GameID) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

type groupGameRow struct {
	id         models.GameID
	group      string
	home, away models.TeamID
	homeResult sql.NullInt64
	awayResult sql.NullInt64
	homeCards  pq.Int64Array
	awayCards  pq.Int64Array
	played     bool
}

func (row groupGameRow) game() (models.Game, error) {
	if !row.played {
		g, err := models.NewUnplayedGame(row.id, row.home, row.away)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	hg, err := goalCount(row.homeResult, "home_result", row.id)
	if err != nil {
		return nil, err
	}
	ag, err := goalCount(row.awayResult, "away_result", row.id)
	if err != nil {
		return nil, err
	}
	g, err := models.NewPlayedGame(row.id, row.home, row.away, hg, ag)
	if err != nil {
		return nil, err
	}
	hc, err := models.CardsFromArray(row.homeCards)
	if err != nil {
		return nil, fmt.Errorf("game %d home_cards: %w", row.id, err)
	}
	ac, err := models.CardsFromArray(row.awayCards)
	if err != nil {
		return nil, fmt.Errorf("game %d away_cards: %w", row.id, err)
	}
	return g.WithCards(hc, ac), nil
}

func (r *postgresGameRepository) ListGroups(ctx context.Context) ([]models.Group, error) {
	query := `
		SELECT g.id, m.group_id_, g.home_team, g.away_team, g.home_result, g.away_result,
		       g.home_cards, g.away_cards, g.played
		FROM games g
		JOIN group_game_map m ON m.game_id = g.id
		WHERE g.type_ = 'group'
		ORDER BY m.group_id_ ASC, g.id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type bucket struct {
		played   []models.PlayedGame
		unplayed []models.UnplayedGame
	}
	var order []models.GroupID
	buckets := make(map[models.GroupID]*bucket)

	for rows.Next() {
		var row groupGameRow
		if scanErr := rows.Scan(&row.id, &row.group, &row.home, &row.away, &row.homeResult, &row.awayResult, &row.homeCards, &row.awayCards, &row.played); scanErr != nil {
			return nil, scanErr
		}
		groupID, err := models.ParseGroupID(row.group)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", row.id, err)
		}
		game, err := row.game()
		if err != nil {
			return nil, err
		}
		b, ok := buckets[groupID]
		if !ok {
			b = &bucket{}
			buckets[groupID] = b
			order = append(order, groupID)
		}
		switch g := game.(type) {
		case models.PlayedGame:
			b.played = append(b.played, g)
		case models.UnplayedGame:
			b.unplayed = append(b.unplayed, g)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	groups := make([]models.Group, 0, len(order))
	for _, id := range order {
		g, err := models.NewGroup(id, buckets[id].played, buckets[id].unplayed)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func (r *postgresGameRepository) NextGameID(ctx context.Context) (models.GameID, error) {
	var next models.GameID
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM games`).Scan(&next)
	return next, err
}

func (r *postgresGameRepository) CreateGroupGames(ctx context.Context, group models.GroupID, games []models.UnplayedGame) error {
	if len(games) == 0 {
		return nil
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, g := range games {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO games (id, type_, home_team, away_team, played) VALUES ($1, 'group', $2, $3, FALSE)`,
				g.ID, g.Home, g.Away)
			if err != nil {
				var pqErr *pq.Error
				if errors.As(err, &pqErr) && pqErr.Code == "23503" {
					return fmt.Errorf("game %d: %w", g.ID, ErrGameTeamInvalid)
				}
				return fmt.Errorf("failed to insert game %d: %w", g.ID, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO group_game_map (game_id, group_id_) VALUES ($1, $2)`,
				g.ID, group.String()); err != nil {
				return fmt.Errorf("failed to map game %d to group %s: %w", g.ID, group, err)
			}
		}
		return nil
	})
}

// SetResult stores the score and cards of a played game. A side without
// cards is stored as NULL.
func (r *postgresGameRepository) SetResult(ctx context.Context, exec SQLExecutor, game models.PlayedGame) error {
	query := `
		UPDATE games
		SET home_result = $1, away_result = $2, home_cards = $3, away_cards = $4, played = TRUE
		WHERE id = $5 AND type_ = 'group'`
	result, err := getExecutor(r.db, exec).ExecContext(ctx, query,
		game.HomeGoals.Int(), game.AwayGoals.Int(), cardsArg(game.HomeCards), cardsArg(game.AwayCards), game.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) ClearResult(ctx context.Context, exec SQLExecutor, gameID models.GameID) error {
	query := `
		UPDATE games
		SET home_result = NULL, away_result = NULL, home_cards = NULL, away_cards = NULL, played = FALSE
		WHERE id = $1 AND type_ = 'group'`
	result, err := getExecutor(r.db, exec).ExecContext(ctx, query, gameID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func cardsArg(c models.Cards) any {
	if c.IsZero() {
		return nil
	}
	a := c.Array()
	return pq.Array(a[:])
}
