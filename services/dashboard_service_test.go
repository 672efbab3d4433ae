package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-predictor/brackets"
	"github.com/Dosada05/tournament-predictor/models"
)

func TestDashboardStats(t *testing.T) {
	playoff := brackets.SimpleFourTeam()
	score, err := models.NewPlayoffScore(goals(2), goals(1), nil)
	require.NoError(t, err)
	playoff[0].Score = &score
	svc := NewDashboardService(
		&fakeGameRepo{groups: []models.Group{group(t, 'A', teamsOf('A'), false), group(t, 'B', teamsOf('B'), true)}},
		&fakePlayoffRepo{games: playoff},
		&fakeTeamRepo{teams: teamList(teamsOf('A'), teamsOf('B'))},
		&fakePredictionRepo{
			players:     []models.Player{{ID: 1, Name: "alice"}},
			predictions: []models.Prediction{{PlayerID: 1, GameID: 206}},
		},
	)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.DashboardStats{
		TeamsTotal:         8,
		GroupsTotal:        2,
		GroupsComplete:     1,
		GroupGamesTotal:    12,
		GroupGamesPlayed:   11,
		PlayoffGamesTotal:  3,
		PlayoffGamesPlayed: 1,
		PlayersTotal:       1,
		PredictionsTotal:   1,
	}, stats)
}
