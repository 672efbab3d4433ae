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
	ErrPlayoffGameNotFound = errors.New("playoff game not found")
	ErrPlayoffExists       = errors.New("playoff already created")
	ErrInvalidTeamSource   = errors.New("invalid playoff team source")
)

// Values of the source_type and outcome columns.
const (
	sourceGroupOutcome = "group_outcome"
	sourceWinnerOf     = "winner_of"
	sourceLoserOf      = "loser_of"

	outcomeWinner     = "winner"
	outcomeRunnerUp   = "runner_up"
	outcomeThirdPlace = "third_place"
)

type PlayoffRepository interface {
	ListGames(ctx context.Context) ([]models.PlayoffGame, error)
	CreatePlayoff(ctx context.Context, games []models.PlayoffGame) error
	SetResult(ctx context.Context, exec SQLExecutor, gameID models.GameID, home, away models.TeamID, score models.PlayoffScore) error
	ClearResult(ctx context.Context, exec SQLExecutor, gameID models.GameID) error
}

type postgresPlayoffRepository struct {
	db *sql.DB
}

func NewPostgresPlayoffRepository(db *sql.DB) PlayoffRepository {
	return &postgresPlayoffRepository{db: db}
}

// sourceRow is one side of a playoff_team_sources row.
type sourceRow struct {
	sourceType       string
	groupID          sql.NullString
	outcome          sql.NullString
	thirdPlaceGroups []string
	thirdPlaceRank   sql.NullInt64
	sourceGameID     sql.NullInt64
}

func (s *sourceRow) dest() []interface{} {
	return []interface{}{
		&s.sourceType, &s.groupID, &s.outcome,
		pq.Array(&s.thirdPlaceGroups), &s.thirdPlaceRank, &s.sourceGameID,
	}
}

func (s sourceRow) toSource() (models.TeamSource, error) {
	switch s.sourceType {
	case sourceWinnerOf, sourceLoserOf:
		if !s.sourceGameID.Valid {
			return nil, fmt.Errorf("%w: %s without source game", ErrInvalidTeamSource, s.sourceType)
		}
		game := models.GameID(s.sourceGameID.Int64)
		if s.sourceType == sourceWinnerOf {
			return models.WinnerOf{Game: game}, nil
		}
		return models.LoserOf{Game: game}, nil
	case sourceGroupOutcome:
		outcome, err := s.toOutcome()
		if err != nil {
			return nil, err
		}
		return models.GroupOutcome{Outcome: outcome}, nil
	default:
		return nil, fmt.Errorf("%w: source type %q", ErrInvalidTeamSource, s.sourceType)
	}
}

func (s sourceRow) toOutcome() (models.Outcome, error) {
	if s.outcome.String == outcomeThirdPlace {
		if len(s.thirdPlaceGroups) == 0 {
			return nil, fmt.Errorf("%w: third place without candidate groups", ErrInvalidTeamSource)
		}
		candidates := make([]models.GroupID, len(s.thirdPlaceGroups))
		for i, g := range s.thirdPlaceGroups {
			id, err := models.ParseGroupID(g)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidTeamSource, err)
			}
			candidates[i] = id
		}
		return models.ThirdPlace{Candidates: candidates, Place: int(s.thirdPlaceRank.Int64)}, nil
	}

	group, err := models.ParseGroupID(s.groupID.String)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTeamSource, err)
	}
	switch s.outcome.String {
	case outcomeWinner:
		return models.Winner{Group: group}, nil
	case outcomeRunnerUp:
		return models.RunnerUp{Group: group}, nil
	default:
		return nil, fmt.Errorf("%w: outcome %q", ErrInvalidTeamSource, s.outcome.String)
	}
}

// fromSource is the inverse of toSource.
func fromSource(src models.TeamSource) (sourceRow, error) {
	switch src := src.(type) {
	case models.WinnerOf:
		return sourceRow{sourceType: sourceWinnerOf, sourceGameID: sql.NullInt64{Int64: int64(src.Game), Valid: true}}, nil
	case models.LoserOf:
		return sourceRow{sourceType: sourceLoserOf, sourceGameID: sql.NullInt64{Int64: int64(src.Game), Valid: true}}, nil
	case models.GroupOutcome:
		row := sourceRow{sourceType: sourceGroupOutcome}
		switch o := src.Outcome.(type) {
		case models.Winner:
			row.outcome = sql.NullString{String: outcomeWinner, Valid: true}
			row.groupID = sql.NullString{String: o.Group.String(), Valid: true}
		case models.RunnerUp:
			row.outcome = sql.NullString{String: outcomeRunnerUp, Valid: true}
			row.groupID = sql.NullString{String: o.Group.String(), Valid: true}
		case models.ThirdPlace:
			row.outcome = sql.NullString{String: outcomeThirdPlace, Valid: true}
			for _, g := range o.Candidates {
				row.thirdPlaceGroups = append(row.thirdPlaceGroups, g.String())
			}
			row.thirdPlaceRank = sql.NullInt64{Int64: int64(o.Rank()), Valid: true}
		default:
			return sourceRow{}, fmt.Errorf("%w: outcome %T", ErrInvalidTeamSource, o)
		}
		return row, nil
	default:
		return sourceRow{}, fmt.Errorf("%w: %T", ErrInvalidTeamSource, src)
	}
}

func (s sourceRow) args() []interface{} {
	var groups interface{}
	if s.thirdPlaceGroups != nil {
		groups = pq.Array(s.thirdPlaceGroups)
	}
	return []interface{}{s.sourceType, s.groupID, s.outcome, groups, s.thirdPlaceRank, s.sourceGameID}
}

type playoffScoreRow struct {
	played      bool
	homeResult  sql.NullInt64
	awayResult  sql.NullInt64
	homePenalty sql.NullInt64
	awayPenalty sql.NullInt64
}

func (p playoffScoreRow) score(gameID models.GameID) (*models.PlayoffScore, error) {
	if !p.played {
		return nil, nil
	}
	home, err := goalCount(p.homeResult, "home_result", gameID)
	if err != nil {
		return nil, err
	}
	away, err := goalCount(p.awayResult, "away_result", gameID)
	if err != nil {
		return nil, err
	}
	var penalties *models.Penalties
	if p.homePenalty.Valid && p.awayPenalty.Valid {
		hp, err := goalCount(p.homePenalty, "home_penalty", gameID)
		if err != nil {
			return nil, err
		}
		ap, err := goalCount(p.awayPenalty, "away_penalty", gameID)
		if err != nil {
			return nil, err
		}
		penalties = &models.Penalties{Home: hp, Away: ap}
	}
	score, err := models.NewPlayoffScore(home, away, penalties)
	if err != nil {
		return nil, fmt.Errorf("game %d: %w", gameID, err)
	}
	return &score, nil
}

func (r *postgresPlayoffRepository) ListGames(ctx context.Context) ([]models.PlayoffGame, error) {
	query := `
		SELECT g.id, g.played, g.home_result, g.away_result, g.home_penalty, g.away_penalty,
			s.home_source_type, s.home_group_id, s.home_outcome, s.home_third_place_groups, s.home_third_place_rank, s.home_source_game_id,
			s.away_source_type, s.away_group_id, s.away_outcome, s.away_third_place_groups, s.away_third_place_rank, s.away_source_game_id
		FROM games g
		JOIN playoff_team_sources s ON s.game_id = g.id
		WHERE g.type_ = 'playoff'
		ORDER BY g.id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.PlayoffGame, 0)
	for rows.Next() {
		var (
			id         models.GameID
			sc         playoffScoreRow
			home, away sourceRow
		)
		dest := []interface{}{&id, &sc.played, &sc.homeResult, &sc.awayResult, &sc.homePenalty, &sc.awayPenalty}
		dest = append(dest, home.dest()...)
		dest = append(dest, away.dest()...)
		if scanErr := rows.Scan(dest...); scanErr != nil {
			return nil, scanErr
		}

		game := models.PlayoffGame{ID: id}
		if game.Home, err = home.toSource(); err != nil {
			return nil, fmt.Errorf("game %d home: %w", id, err)
		}
		if game.Away, err = away.toSource(); err != nil {
			return nil, fmt.Errorf("game %d away: %w", id, err)
		}
		if game.Score, err = sc.score(id); err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *postgresPlayoffRepository) CreatePlayoff(ctx context.Context, games []models.PlayoffGame) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var existing int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM games WHERE type_ = 'playoff'`).Scan(&existing); err != nil {
			return err
		}
		if existing > 0 {
			return ErrPlayoffExists
		}

		for _, g := range games {
			home, err := fromSource(g.Home)
			if err != nil {
				return fmt.Errorf("game %d home: %w", g.ID, err)
			}
			away, err := fromSource(g.Away)
			if err != nil {
				return fmt.Errorf("game %d away: %w", g.ID, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO games (id, type_, played) VALUES ($1, 'playoff', FALSE)`, g.ID); err != nil {
				return fmt.Errorf("failed to insert playoff game %d: %w", g.ID, err)
			}
			args := append([]interface{}{g.ID}, home.args()...)
			args = append(args, away.args()...)
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO playoff_team_sources (game_id,
					home_source_type, home_group_id, home_outcome, home_third_place_groups, home_third_place_rank, home_source_game_id,
					away_source_type, away_group_id, away_outcome, away_third_place_groups, away_third_place_rank, away_source_game_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`, args...); err != nil {
				return fmt.Errorf("failed to insert sources of playoff game %d: %w", g.ID, err)
			}
		}
		return nil
	})
}

func (r *postgresPlayoffRepository) SetResult(ctx context.Context, exec SQLExecutor, gameID models.GameID, home, away models.TeamID, score models.PlayoffScore) error {
	var homePenalty, awayPenalty sql.NullInt64
	if p, ok := score.Penalties(); ok {
		homePenalty = sql.NullInt64{Int64: int64(p.Home.Int()), Valid: true}
		awayPenalty = sql.NullInt64{Int64: int64(p.Away.Int()), Valid: true}
	}
	query := `
		UPDATE games
		SET home_team = $1, away_team = $2, home_result = $3, away_result = $4,
			home_penalty = $5, away_penalty = $6, played = TRUE
		WHERE id = $7 AND type_ = 'playoff'`
	result, err := getExecutor(r.db, exec).ExecContext(ctx, query,
		home, away, score.HomeGoals().Int(), score.AwayGoals().Int(), homePenalty, awayPenalty, gameID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayoffGameNotFound)
}

func (r *postgresPlayoffRepository) ClearResult(ctx context.Context, exec SQLExecutor, gameID models.GameID) error {
	query := `
		UPDATE games
		SET home_team = NULL, away_team = NULL, home_result = NULL, away_result = NULL,
			home_penalty = NULL, away_penalty = NULL, played = FALSE
		WHERE id = $1 AND type_ = 'playoff'`
	result, err := getExecutor(r.db, exec).ExecContext(ctx, query, gameID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayoffGameNotFound)
}
