package brackets

import (
	"context"

	"github.com/Dosada05/tournament-predictor/models"
)

// GenerateBracketParams describes the first round of a playoff.
// Entrants are paired in order: 0 v 1, 2 v 3 and so on.
type GenerateBracketParams struct {
	Entrants          []models.TeamSource
	FirstGameID       models.GameID
	ThirdPlacePlayoff bool
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]models.PlayoffGame, error)

	GetName() string
}

// CrossGroupEntrants pairs the groups two by two and crosses winners with
// runners-up: 1A v 2B, 1B v 2A, 1C v 2D, 1D v 2C. An odd group out plays
// its own runner-up.
func CrossGroupEntrants(groups []models.GroupID) []models.TeamSource {
	entrants := make([]models.TeamSource, 0, 2*len(groups))
	winner := func(g models.GroupID) models.TeamSource {
		return models.GroupOutcome{Outcome: models.Winner{Group: g}}
	}
	runnerUp := func(g models.GroupID) models.TeamSource {
		return models.GroupOutcome{Outcome: models.RunnerUp{Group: g}}
	}
	for i := 0; i+1 < len(groups); i += 2 {
		a, b := groups[i], groups[i+1]
		entrants = append(entrants, winner(a), runnerUp(b), winner(b), runnerUp(a))
	}
	if len(groups)%2 == 1 {
		last := groups[len(groups)-1]
		entrants = append(entrants, winner(last), runnerUp(last))
	}
	return entrants
}

// Renumber shifts the game IDs of a generated bracket so that the lowest
// ID becomes firstID, rewriting WinnerOf and LoserOf references to match.
// Every shifted ID is at least firstID.
func Renumber(games []models.PlayoffGame, firstID models.GameID) []models.PlayoffGame {
	if len(games) == 0 {
		return nil
	}
	lo := games[0].ID
	for _, g := range games[1:] {
		lo = min(lo, g.ID)
	}
	offset := firstID - lo
	shift := func(src models.TeamSource) models.TeamSource {
		switch src := src.(type) {
		case models.WinnerOf:
			return models.WinnerOf{Game: src.Game + offset}
		case models.LoserOf:
			return models.LoserOf{Game: src.Game + offset}
		default:
			return src
		}
	}
	out := make([]models.PlayoffGame, len(games))
	for i, g := range games {
		out[i] = models.PlayoffGame{ID: g.ID + offset, Home: shift(g.Home), Away: shift(g.Away), Score: g.Score}
	}
	return out
}
