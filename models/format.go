package models

import (
	"encoding/json"
	"fmt"
)

// FormatSettings are the tournament rules stored as JSON next to the format.
// Fields left out fall back to the preset named in Preset.
type FormatSettings struct {
	Preset             string   `json:"preset,omitempty"` // "default", "fifa2018", "euro2020"
	NumberOfRounds     int      `json:"number_of_rounds"` // 1 for single round-robin, 2 for double
	PointsForWin       *uint    `json:"points_for_win,omitempty"`
	PointsForDraw      *uint    `json:"points_for_draw,omitempty"`
	PointsForLoss      *uint    `json:"points_for_loss,omitempty"`
	Criteria           []string `json:"criteria,omitempty"`
	ThirdPlaceCriteria []string `json:"third_place_criteria,omitempty"`
	FairPlayWeights    string   `json:"fair_play_weights,omitempty"` // "fifa" or "uefa"
}

type Format struct {
	ID           int     `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	SettingsJSON *string `json:"-" db:"settings_json"` // Raw JSON string from DB

	ParsedSettings *FormatSettings `json:"settings,omitempty" db:"-"`
}

// GetSettings unmarshals SettingsJSON. A format without settings yields
// the zero FormatSettings with a single round-robin.
func (f *Format) GetSettings() (*FormatSettings, error) {
	settings := &FormatSettings{NumberOfRounds: 1}
	if f.SettingsJSON == nil || *f.SettingsJSON == "" {
		return settings, nil
	}
	if err := json.Unmarshal([]byte(*f.SettingsJSON), settings); err != nil {
		return nil, fmt.Errorf("invalid settings for format %d: %w", f.ID, err)
	}
	if settings.NumberOfRounds < 1 || settings.NumberOfRounds > 2 {
		settings.NumberOfRounds = 1
	}
	return settings, nil
}
