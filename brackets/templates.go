package brackets

import "github.com/Dosada05/tournament-predictor/models"

func winnerOf(g rune) models.TeamSource {
	return models.GroupOutcome{Outcome: models.Winner{Group: models.MustGroupID(g)}}
}

func runnerUpOf(g rune) models.TeamSource {
	return models.GroupOutcome{Outcome: models.RunnerUp{Group: models.MustGroupID(g)}}
}

func mustGenerate(params GenerateBracketParams) []models.PlayoffGame {
	games, err := singleElimination(params)
	if err != nil {
		panic(err)
	}
	return games
}

// SimpleFourTeam: 1A v 2B and 1B v 2A, then the final (game 3).
func SimpleFourTeam() []models.PlayoffGame {
	return mustGenerate(GenerateBracketParams{
		Entrants:    CrossGroupEntrants([]models.GroupID{models.MustGroupID('A'), models.MustGroupID('B')}),
		FirstGameID: 1,
	})
}

// WithThirdPlacePlayoff is SimpleFourTeam plus a game between the losing
// semi-finalists (game 3). The final is game 4.
func WithThirdPlacePlayoff() []models.PlayoffGame {
	return mustGenerate(GenerateBracketParams{
		Entrants:          CrossGroupEntrants([]models.GroupID{models.MustGroupID('A'), models.MustGroupID('B')}),
		FirstGameID:       1,
		ThirdPlacePlayoff: true,
	})
}

// SingleEliminationEight takes the top two of groups A to D into
// quarter-finals 1A v 2B, 1B v 2C, 1C v 2D, 1D v 2A (games 1-4),
// semi-finals 5 and 6 and the final 7.
func SingleEliminationEight() []models.PlayoffGame {
	return mustGenerate(GenerateBracketParams{
		Entrants: []models.TeamSource{
			winnerOf('A'), runnerUpOf('B'),
			winnerOf('B'), runnerUpOf('C'),
			winnerOf('C'), runnerUpOf('D'),
			winnerOf('D'), runnerUpOf('A'),
		},
		FirstGameID: 1,
	})
}

// Euro2020RoundOf16 is a sixteen-team knockout from six groups of four:
// the winners and runners-up plus the four best third-placed teams. The
// thirds are taken by rank among all six groups rather than through the
// UEFA combination table.
func Euro2020RoundOf16() []models.PlayoffGame {
	all := []models.GroupID{
		models.MustGroupID('A'), models.MustGroupID('B'), models.MustGroupID('C'),
		models.MustGroupID('D'), models.MustGroupID('E'), models.MustGroupID('F'),
	}
	third := func(place int) models.TeamSource {
		return models.GroupOutcome{Outcome: models.ThirdPlace{Candidates: all, Place: place}}
	}
	return mustGenerate(GenerateBracketParams{
		Entrants: []models.TeamSource{
			winnerOf('B'), third(1),
			winnerOf('A'), runnerUpOf('C'),
			winnerOf('F'), third(4),
			runnerUpOf('D'), runnerUpOf('E'),
			winnerOf('E'), third(3),
			winnerOf('D'), runnerUpOf('F'),
			winnerOf('C'), third(2),
			runnerUpOf('A'), runnerUpOf('B'),
		},
		FirstGameID: 1,
	})
}

// Template returns a bracket template by name.
func Template(name string) ([]models.PlayoffGame, bool) {
	switch name {
	case "simple_four_team":
		return SimpleFourTeam(), true
	case "with_third_place_playoff":
		return WithThirdPlacePlayoff(), true
	case "single_elimination_8":
		return SingleEliminationEight(), true
	case "euro2020_round_of_16":
		return Euro2020RoundOf16(), true
	default:
		return nil, false
	}
}
