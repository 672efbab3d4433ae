package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-predictor/models"
	"github.com/Dosada05/tournament-predictor/repositories"
	"github.com/Dosada05/tournament-predictor/standings"
)

var (
	ErrFormatNameRequired   = errors.New("format name is required")
	ErrFormatCreationFailed = errors.New("failed to create format")
	ErrInvalidFormatRules   = errors.New("invalid format rules")
)

// FormatService manages the rule sets a tournament can be played under.
type FormatService interface {
	CreateFormat(ctx context.Context, input CreateFormatInput) (*models.Format, error)
	GetFormatByID(ctx context.Context, id int) (*models.Format, error)
	GetAllFormats(ctx context.Context) ([]models.Format, error)
	ActivateFormat(ctx context.Context, id int) (*models.Format, error)
}

type CreateFormatInput struct {
	Name     string          `json:"name"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

type formatService struct {
	formatRepo repositories.FormatRepository
}

func NewFormatService(formatRepo repositories.FormatRepository) FormatService {
	return &formatService{
		formatRepo: formatRepo,
	}
}

func (s *formatService) CreateFormat(ctx context.Context, input CreateFormatInput) (*models.Format, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrFormatNameRequired
	}

	format := &models.Format{Name: name}
	if len(input.Settings) > 0 && string(input.Settings) != "null" {
		raw := string(input.Settings)
		format.SettingsJSON = &raw
	}
	settings, err := format.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormatRules, err)
	}
	// Team ranks are not known here; criteria and presets are checked
	// without them.
	if _, err := standings.PolicyFromSettings(settings, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormatRules, err)
	}
	format.ParsedSettings = settings

	if err := s.formatRepo.Create(ctx, format); err != nil {
		if errors.Is(err, repositories.ErrFormatNameConflict) {
			return nil, ErrFormatNameConflict
		}
		return nil, fmt.Errorf("%w: %w", ErrFormatCreationFailed, err)
	}
	return format, nil
}

func (s *formatService) GetFormatByID(ctx context.Context, id int) (*models.Format, error) {
	format, err := s.formatRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrFormatNotFound) {
			return nil, ErrFormatNotFound
		}
		return nil, fmt.Errorf("failed to get format by id %d: %w", id, err)
	}
	return format, nil
}

func (s *formatService) GetAllFormats(ctx context.Context) ([]models.Format, error) {
	formats, err := s.formatRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all formats: %w", err)
	}
	if formats == nil {
		return []models.Format{}, nil
	}
	return formats, nil
}

// ActivateFormat makes the format the one standings and brackets are
// computed under.
func (s *formatService) ActivateFormat(ctx context.Context, id int) (*models.Format, error) {
	if err := s.formatRepo.Activate(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrFormatNotFound) {
			return nil, ErrFormatNotFound
		}
		return nil, fmt.Errorf("failed to activate format %d: %w", id, err)
	}
	return s.GetFormatByID(ctx, id)
}
