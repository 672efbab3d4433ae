package models

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrSameTeam = errors.New("a team cannot play against itself")

type GameID int

func (id GameID) String() string { return strconv.Itoa(int(id)) }

// Game is either an UnplayedGame or a PlayedGame. The set of
// implementations is closed: scores exist only on the played variant.
type Game interface {
	GameID() GameID
	HomeTeam() TeamID
	AwayTeam() TeamID
	isGame()
}

type UnplayedGame struct {
	ID   GameID `json:"id"`
	Home TeamID `json:"home"`
	Away TeamID `json:"away"`
}

func NewUnplayedGame(id GameID, home, away TeamID) (UnplayedGame, error) {
	if home == away {
		return UnplayedGame{}, fmt.Errorf("%w: game %d, team %d", ErrSameTeam, id, home)
	}
	return UnplayedGame{ID: id, Home: home, Away: away}, nil
}

func (g UnplayedGame) GameID() GameID   { return g.ID }
func (g UnplayedGame) HomeTeam() TeamID { return g.Home }
func (g UnplayedGame) AwayTeam() TeamID { return g.Away }
func (UnplayedGame) isGame()            {}

// Play attaches a score and returns the played variant.
func (g UnplayedGame) Play(home, away GoalCount) PlayedGame {
	return PlayedGame{ID: g.ID, Home: g.Home, Away: g.Away, HomeGoals: home, AwayGoals: away}
}

type PlayedGame struct {
	ID        GameID    `json:"id"`
	Home      TeamID    `json:"home"`
	Away      TeamID    `json:"away"`
	HomeGoals GoalCount `json:"home_goals"`
	AwayGoals GoalCount `json:"away_goals"`
	HomeCards Cards     `json:"home_cards"`
	AwayCards Cards     `json:"away_cards"`
}

func NewPlayedGame(id GameID, home, away TeamID, homeGoals, awayGoals GoalCount) (PlayedGame, error) {
	u, err := NewUnplayedGame(id, home, away)
	if err != nil {
		return PlayedGame{}, err
	}
	return u.Play(homeGoals, awayGoals), nil
}

func (g PlayedGame) GameID() GameID   { return g.ID }
func (g PlayedGame) HomeTeam() TeamID { return g.Home }
func (g PlayedGame) AwayTeam() TeamID { return g.Away }
func (PlayedGame) isGame()            {}

// WithCards attaches the disciplinary record of both sides.
func (g PlayedGame) WithCards(home, away Cards) PlayedGame {
	g.HomeCards, g.AwayCards = home, away
	return g
}

// Unplay drops the score and the cards.
func (g PlayedGame) Unplay() UnplayedGame {
	return UnplayedGame{ID: g.ID, Home: g.Home, Away: g.Away}
}

// Outcome of a played game seen from the home side.
type MatchOutcome int

const (
	HomeWin MatchOutcome = iota
	Draw
	AwayWin
)

func (g PlayedGame) Outcome() MatchOutcome {
	switch g.HomeGoals.Cmp(g.AwayGoals) {
	case 1:
		return HomeWin
	case -1:
		return AwayWin
	default:
		return Draw
	}
}

// Involves reports whether team plays in the game.
func Involves(g Game, team TeamID) bool {
	return g.HomeTeam() == team || g.AwayTeam() == team
}
