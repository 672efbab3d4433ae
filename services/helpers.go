package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Dosada05/tournament-predictor/models"
	"github.com/Dosada05/tournament-predictor/standings"
	"github.com/Dosada05/tournament-predictor/storage"
)

// Object keys of the published JSON snapshots.
const (
	SnapshotStandingsKey   = "snapshots/standings.json"
	SnapshotBracketKey     = "snapshots/bracket.json"
	SnapshotLeaderboardKey = "snapshots/leaderboard.json"
)

// Broadcaster pushes live updates to connected clients.
type Broadcaster interface {
	Broadcast(eventType string, payload interface{})
}

// LeaderboardRefresher recomputes the prediction leaderboard after a
// result changes.
type LeaderboardRefresher interface {
	RefreshLeaderboard(ctx context.Context) error
}

// snapshotPublisher uploads JSON snapshots of public views. A nil uploader
// turns publishing off. Failures are logged and never fail the write that
// triggered them.
type snapshotPublisher struct {
	uploader storage.FileUploader
	logger   *slog.Logger
}

func (p snapshotPublisher) publish(ctx context.Context, key string, v interface{}) {
	if p.uploader == nil {
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		p.logger.Error("failed to encode snapshot", "key", key, "error", err)
		return
	}
	res, err := p.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		p.logger.Warn("failed to publish snapshot", "key", key, "error", err)
		return
	}
	p.logger.Debug("snapshot published", "key", key, "location", res.Location)
}

func broadcast(hub Broadcaster, eventType string, payload interface{}) {
	if hub == nil {
		return
	}
	hub.Broadcast(eventType, payload)
}

func goalsFromInput(home, away int) (models.GoalCount, models.GoalCount, error) {
	hg, err := models.NewGoalCount(home)
	if err != nil {
		return models.GoalCount{}, models.GoalCount{}, fmt.Errorf("%w: home goals: %w", ErrValidationFailed, err)
	}
	ag, err := models.NewGoalCount(away)
	if err != nil {
		return models.GoalCount{}, models.GoalCount{}, fmt.Errorf("%w: away goals: %w", ErrValidationFailed, err)
	}
	return hg, ag, nil
}

func cardsFromInput(home, away *models.Cards) (models.Cards, models.Cards, error) {
	var hc, ac models.Cards
	if home != nil {
		if err := home.Validate(); err != nil {
			return hc, ac, fmt.Errorf("%w: home cards: %w", ErrValidationFailed, err)
		}
		hc = *home
	}
	if away != nil {
		if err := away.Validate(); err != nil {
			return hc, ac, fmt.Errorf("%w: away cards: %w", ErrValidationFailed, err)
		}
		ac = *away
	}
	return hc, ac, nil
}

// SortedTables lists the tables by group letter.
func SortedTables(tables map[models.GroupID]standings.Table) []standings.Table {
	out := make([]standings.Table, 0, len(tables))
	for _, t := range tables {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b standings.Table) int { return int(a.Group) - int(b.Group) })
	return out
}

// groupOf finds the group holding a group game.
func groupOf(groups []models.Group, gameID models.GameID) (int, bool) {
	for i, g := range groups {
		for _, p := range g.PlayedGames() {
			if p.ID == gameID {
				return i, true
			}
		}
		for _, u := range g.UnplayedGames() {
			if u.ID == gameID {
				return i, true
			}
		}
	}
	return -1, false
}

func isPlayed(group models.Group, gameID models.GameID) bool {
	return slices.ContainsFunc(group.PlayedGames(), func(p models.PlayedGame) bool { return p.ID == gameID })
}

// playoffPlayedFrom reports whether a played playoff game takes a team
// straight from the group.
func playoffPlayedFrom(playoff []models.PlayoffGame, group models.GroupID) bool {
	fed := func(src models.TeamSource) bool {
		o, ok := src.(models.GroupOutcome)
		return ok && slices.Contains(models.Groups(o.Outcome), group)
	}
	for _, g := range playoff {
		if g.Score != nil && (fed(g.Home) || fed(g.Away)) {
			return true
		}
	}
	return false
}
