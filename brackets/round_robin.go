package brackets

import (
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-predictor/models"
)

var ErrTooFewTeams = errors.New("not enough teams for a round-robin (minimum 2)")

// RoundRobinFixtures creates the games of a group: each team plays every
// other team once per leg, and the second leg swaps home and away. Games
// are numbered from firstID. Teams listed twice are rejected.
func RoundRobinFixtures(teams []models.TeamID, legs int, firstID models.GameID) ([]models.UnplayedGame, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewTeams, len(teams))
	}
	if legs != 1 && legs != 2 {
		legs = 1
	}
	seen := make(map[models.TeamID]bool, len(teams))
	for _, t := range teams {
		if seen[t] {
			return nil, fmt.Errorf("team %d listed twice", t)
		}
		seen[t] = true
	}

	pairs := len(teams) * (len(teams) - 1) / 2
	games := make([]models.UnplayedGame, 0, pairs*legs)
	id := firstID
	for leg := 1; leg <= legs; leg++ {
		for i := 0; i < len(teams); i++ {
			for j := i + 1; j < len(teams); j++ {
				home, away := teams[i], teams[j]
				if leg == 2 {
					home, away = away, home
				}
				games = append(games, models.UnplayedGame{ID: id, Home: home, Away: away})
				id++
			}
		}
	}
	return games, nil
}
