package brackets

import (
	"context"
	"errors"
	"fmt"
	"math/bits"

	"github.com/Dosada05/tournament-predictor/models"
)

var (
	ErrTooFewEntrants = errors.New("not enough entrants to generate a single elimination bracket (minimum 2)")
	// ErrNoThirdPlacePlayoff is returned when a third-place playoff is
	// requested but one semi-finalist reached that round through a bye, or
	// there are no semi-finals at all.
	ErrNoThirdPlacePlayoff = errors.New("third-place playoff needs two semi-final games")
)

// node is a slot of the bracket being built: a team source, or an empty
// slot that gives its opponent a bye.
type node struct {
	source models.TeamSource
	bye    bool
}

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// GenerateBracket builds the games round by round. When the number of
// entrants is not a power of two, the last slots are byes and the entrant
// paired with a bye goes straight to the next round. Games are numbered
// from FirstGameID; the final is the last game, preceded by the
// third-place playoff when requested. A requested third-place playoff that
// cannot be built fails with ErrNoThirdPlacePlayoff.
func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]models.PlayoffGame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return singleElimination(params)
}

func singleElimination(params GenerateBracketParams) ([]models.PlayoffGame, error) {
	n := len(params.Entrants)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewEntrants, n)
	}
	nextID := params.FirstGameID
	if nextID < 1 {
		nextID = 1
	}

	size := 1 << bits.Len(uint(n-1))
	current := make([]node, size)
	for i := range current {
		if i < n {
			current[i] = node{source: params.Entrants[i]}
		} else {
			current[i] = node{bye: true}
		}
	}

	var games []models.PlayoffGame
	var semis []models.GameID
	for len(current) > 1 {
		next := make([]node, 0, len(current)/2)
		var round []models.GameID
		for i := 0; i < len(current); i += 2 {
			a, b := current[i], current[i+1]
			switch {
			case a.bye && b.bye:
				next = append(next, node{bye: true})
			case b.bye:
				next = append(next, a)
			case a.bye:
				next = append(next, b)
			default:
				games = append(games, models.PlayoffGame{ID: nextID, Home: a.source, Away: b.source})
				round = append(round, nextID)
				next = append(next, node{source: models.WinnerOf{Game: nextID}})
				nextID++
			}
		}
		if len(next) == 1 {
			break
		}
		if len(next) == 2 {
			semis = round
		}
		current = next
	}

	if params.ThirdPlacePlayoff {
		if len(semis) != 2 {
			return nil, fmt.Errorf("%w: %d entrants leave %d semi-final games", ErrNoThirdPlacePlayoff, n, len(semis))
		}
		final := games[len(games)-1]
		third := models.PlayoffGame{
			ID:   final.ID,
			Home: models.LoserOf{Game: semis[0]},
			Away: models.LoserOf{Game: semis[1]},
		}
		final.ID = nextID
		games[len(games)-1] = third
		games = append(games, final)
	}
	return games, nil
}
