package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoWinner is returned for a level playoff score without a decisive
// penalty shoot-out.
var ErrNoWinner = errors.New("playoff score has no winner")

// Penalties is the result of a penalty shoot-out.
type Penalties struct {
	Home GoalCount `json:"home"`
	Away GoalCount `json:"away"`
}

// PlayoffScore always has a winner. The only way to obtain one is
// NewPlayoffScore.
type PlayoffScore struct {
	home      GoalCount
	away      GoalCount
	penalties *Penalties
	homeWins  bool
}

// NewPlayoffScore validates a knockout result. A decisive regulation score
// ignores any penalties passed along; a level score needs a shoot-out with
// distinct values.
func NewPlayoffScore(home, away GoalCount, penalties *Penalties) (PlayoffScore, error) {
	if c := home.Cmp(away); c != 0 {
		return PlayoffScore{home: home, away: away, homeWins: c > 0}, nil
	}
	if penalties == nil {
		return PlayoffScore{}, fmt.Errorf("%w: %s-%s without penalties", ErrNoWinner, home, away)
	}
	c := penalties.Home.Cmp(penalties.Away)
	if c == 0 {
		return PlayoffScore{}, fmt.Errorf("%w: %s-%s, penalties %s-%s", ErrNoWinner, home, away, penalties.Home, penalties.Away)
	}
	p := *penalties
	return PlayoffScore{home: home, away: away, penalties: &p, homeWins: c > 0}, nil
}

func (s PlayoffScore) HomeGoals() GoalCount { return s.home }
func (s PlayoffScore) AwayGoals() GoalCount { return s.away }

// Penalties returns the shoot-out result, if one decided the game.
func (s PlayoffScore) Penalties() (Penalties, bool) {
	if s.penalties == nil {
		return Penalties{}, false
	}
	return *s.penalties, true
}

func (s PlayoffScore) HomeWins() bool { return s.homeWins }

// Winner picks home or away according to the score.
func (s PlayoffScore) Winner(home, away TeamID) TeamID {
	if s.homeWins {
		return home
	}
	return away
}

func (s PlayoffScore) Loser(home, away TeamID) TeamID {
	if s.homeWins {
		return away
	}
	return home
}

func (s PlayoffScore) String() string {
	if s.penalties != nil {
		return fmt.Sprintf("%s-%s (%s-%s p)", s.home, s.away, s.penalties.Home, s.penalties.Away)
	}
	return fmt.Sprintf("%s-%s", s.home, s.away)
}

type playoffScoreJSON struct {
	Home      GoalCount  `json:"home"`
	Away      GoalCount  `json:"away"`
	Penalties *Penalties `json:"penalties,omitempty"`
}

func (s PlayoffScore) MarshalJSON() ([]byte, error) {
	return json.Marshal(playoffScoreJSON{Home: s.home, Away: s.away, Penalties: s.penalties})
}

// UnmarshalJSON goes through NewPlayoffScore, so decoding cannot produce
// an invalid score.
func (s *PlayoffScore) UnmarshalJSON(data []byte) error {
	var raw playoffScoreJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := NewPlayoffScore(raw.Home, raw.Away, raw.Penalties)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// PlayoffGame is a knockout game with its two team sources and, once
// played, its score.
type PlayoffGame struct {
	ID    GameID        `json:"id"`
	Home  TeamSource    `json:"home_source"`
	Away  TeamSource    `json:"away_source"`
	Score *PlayoffScore `json:"score,omitempty"`
}

// PlayoffResults collects the scores of the played games.
func PlayoffResults(games []PlayoffGame) map[GameID]PlayoffScore {
	results := make(map[GameID]PlayoffScore)
	for _, g := range games {
		if g.Score != nil {
			results[g.ID] = *g.Score
		}
	}
	return results
}
