package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/tournament-predictor/models"
	"github.com/lib/pq"
)

var (
	ErrFormatNotFound     = errors.New("format not found")
	ErrFormatNameConflict = errors.New("format name conflict")
)

// FormatRepository stores tournament rule sets. Exactly one format is
// active at a time.
type FormatRepository interface {
	Create(ctx context.Context, format *models.Format) error
	GetByID(ctx context.Context, id int) (*models.Format, error)
	GetActive(ctx context.Context) (*models.Format, error)
	GetAll(ctx context.Context) ([]models.Format, error)
	Activate(ctx context.Context, id int) error
}

type postgresFormatRepository struct {
	db *sql.DB
}

func NewPostgresFormatRepository(db *sql.DB) FormatRepository {
	return &postgresFormatRepository{db: db}
}

func (r *postgresFormatRepository) Create(ctx context.Context, format *models.Format) error {
	query := `
		INSERT INTO formats (name, settings_json)
		VALUES ($1, $2)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, format.Name, format.SettingsJSON).Scan(&format.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "formats_name_key" {
				return ErrFormatNameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresFormatRepository) scanOne(ctx context.Context, query string, args ...interface{}) (*models.Format, error) {
	format := &models.Format{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&format.ID, &format.Name, &format.SettingsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFormatNotFound
		}
		return nil, err
	}
	if format.ParsedSettings, err = format.GetSettings(); err != nil {
		return nil, err
	}
	return format, nil
}

func (r *postgresFormatRepository) GetByID(ctx context.Context, id int) (*models.Format, error) {
	return r.scanOne(ctx, `SELECT id, name, settings_json FROM formats WHERE id = $1`, id)
}

func (r *postgresFormatRepository) GetActive(ctx context.Context) (*models.Format, error) {
	return r.scanOne(ctx, `SELECT id, name, settings_json FROM formats WHERE active ORDER BY id LIMIT 1`)
}

func (r *postgresFormatRepository) GetAll(ctx context.Context) ([]models.Format, error) {
	query := `
		SELECT id, name, settings_json
		FROM formats
		ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	formats := make([]models.Format, 0)
	for rows.Next() {
		var format models.Format
		if scanErr := rows.Scan(&format.ID, &format.Name, &format.SettingsJSON); scanErr != nil {
			return nil, scanErr
		}
		if format.ParsedSettings, err = format.GetSettings(); err != nil {
			return nil, err
		}
		formats = append(formats, format)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return formats, nil
}

func (r *postgresFormatRepository) Activate(ctx context.Context, id int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE formats SET active = FALSE WHERE active`); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `UPDATE formats SET active = TRUE WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return checkAffectedRows(result, ErrFormatNotFound)
	})
}
