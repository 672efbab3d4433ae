package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/tournament-predictor/models"
	"github.com/Dosada05/tournament-predictor/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	gameRepo       repositories.GameRepository
	playoffRepo    repositories.PlayoffRepository
	teamRepo       repositories.TeamRepository
	predictionRepo repositories.PredictionRepository
}

func NewDashboardService(
	gameRepo repositories.GameRepository,
	playoffRepo repositories.PlayoffRepository,
	teamRepo repositories.TeamRepository,
	predictionRepo repositories.PredictionRepository,
) DashboardService {
	return &dashboardService{
		gameRepo:       gameRepo,
		playoffRepo:    playoffRepo,
		teamRepo:       teamRepo,
		predictionRepo: predictionRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		groups, err := s.gameRepo.ListGroups(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load groups: %w", err)
		}
		stats.GroupsTotal = len(groups)
		for _, group := range groups {
			played := len(group.PlayedGames())
			stats.GroupGamesPlayed += played
			stats.GroupGamesTotal += played + len(group.UnplayedGames())
			if group.IsComplete() {
				stats.GroupsComplete++
			}
		}
		return nil
	})
	g.Go(func() error {
		games, err := s.playoffRepo.ListGames(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load playoff games: %w", err)
		}
		stats.PlayoffGamesTotal = len(games)
		stats.PlayoffGamesPlayed = len(models.PlayoffResults(games))
		return nil
	})
	g.Go(func() error {
		teams, err := s.teamRepo.ListAll(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		stats.TeamsTotal = len(teams)
		return nil
	})
	g.Go(func() error {
		players, err := s.predictionRepo.ListPlayers(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load players: %w", err)
		}
		stats.PlayersTotal = len(players)
		return nil
	})
	g.Go(func() error {
		predictions, err := s.predictionRepo.ListAll(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load predictions: %w", err)
		}
		stats.PredictionsTotal = len(predictions)
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}
