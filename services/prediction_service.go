package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-predictor/brackets"
	"github.com/Dosada05/tournament-predictor/models"
	"github.com/Dosada05/tournament-predictor/repositories"
	"github.com/Dosada05/tournament-predictor/scoring"
	"github.com/Dosada05/tournament-predictor/storage"
	"golang.org/x/sync/errgroup"
)

type PredictionService interface {
	SubmitPrediction(ctx context.Context, playerID int, gameID models.GameID, home, away int) (*models.Prediction, error)
	Leaderboard(ctx context.Context) ([]scoring.LeaderboardEntry, error)
	RefreshLeaderboard(ctx context.Context) error
}

type PredictionInput struct {
	HomeGoals int `json:"home_goals"`
	AwayGoals int `json:"away_goals"`
}

type predictionService struct {
	predictionRepo repositories.PredictionRepository
	gameRepo       repositories.GameRepository
	scoreFn        scoring.ScoreFn
	hub            Broadcaster
	publisher      snapshotPublisher
	logger         *slog.Logger
}

func NewPredictionService(
	predictionRepo repositories.PredictionRepository,
	gameRepo repositories.GameRepository,
	scoreFn scoring.ScoreFn,
	hub Broadcaster,
	uploader storage.FileUploader,
	logger *slog.Logger,
) PredictionService {
	if scoreFn == nil {
		scoreFn = scoring.DefaultScoreFn()
	}
	return &predictionService{
		predictionRepo: predictionRepo,
		gameRepo:       gameRepo,
		scoreFn:        scoreFn,
		hub:            hub,
		publisher:      snapshotPublisher{uploader: uploader, logger: logger},
		logger:         logger,
	}
}

func (s *predictionService) SubmitPrediction(ctx context.Context, playerID int, gameID models.GameID, home, away int) (*models.Prediction, error) {
	hg, ag, err := goalsFromInput(home, away)
	if err != nil {
		return nil, err
	}

	groups, err := s.gameRepo.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}
	idx, ok := groupOf(groups, gameID)
	if !ok {
		return nil, fmt.Errorf("%w: group game %d", ErrGameNotFound, gameID)
	}
	if isPlayed(groups[idx], gameID) {
		return nil, fmt.Errorf("%w: game %d", ErrPredictionClosed, gameID)
	}

	if _, err := s.predictionRepo.GetPlayer(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", playerID, err)
	}

	p := models.Prediction{PlayerID: playerID, GameID: gameID, HomeGoals: hg, AwayGoals: ag}
	if err := s.predictionRepo.Upsert(ctx, p); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPredictionGameInvalid):
			return nil, fmt.Errorf("%w: group game %d", ErrGameNotFound, gameID)
		case errors.Is(err, repositories.ErrPredictionPlayerInvalid):
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}
	return &p, nil
}

func (s *predictionService) Leaderboard(ctx context.Context) ([]scoring.LeaderboardEntry, error) {
	var (
		players     []models.Player
		predictions []models.Prediction
		groups      []models.Group
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if players, err = s.predictionRepo.ListPlayers(gCtx); err != nil {
			return fmt.Errorf("failed to load players: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if predictions, err = s.predictionRepo.ListAll(gCtx); err != nil {
			return fmt.Errorf("failed to load predictions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if groups, err = s.gameRepo.ListGroups(gCtx); err != nil {
			return fmt.Errorf("failed to load groups: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	played := make(map[models.GameID]models.PlayedGame)
	for _, group := range groups {
		for _, p := range group.PlayedGames() {
			played[p.ID] = p
		}
	}
	return scoring.Leaderboard(s.scoreFn, players, predictions, played), nil
}

func (s *predictionService) RefreshLeaderboard(ctx context.Context) error {
	entries, err := s.Leaderboard(ctx)
	if err != nil {
		return err
	}
	broadcast(s.hub, brackets.EventLeaderboard, entries)
	s.publisher.publish(ctx, SnapshotLeaderboardKey, entries)
	return nil
}
