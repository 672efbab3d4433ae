// Package scoring rates players' predictions against actual results.
package scoring

import (
	"encoding/json"
	"slices"
	"strconv"

	"github.com/Dosada05/tournament-predictor/models"
)

// PredScore is the value of one or more predictions. It only adds to
// another PredScore.
type PredScore struct {
	v float64
}

func NewPredScore(v float64) PredScore { return PredScore{v: v} }

func (s PredScore) Add(other PredScore) PredScore { return PredScore{v: s.v + other.v} }

func (s PredScore) Float() float64 { return s.v }

func (s PredScore) Cmp(other PredScore) int {
	switch {
	case s.v < other.v:
		return -1
	case s.v > other.v:
		return 1
	default:
		return 0
	}
}

func (s PredScore) String() string { return strconv.FormatFloat(s.v, 'f', -1, 64) }

func (s PredScore) MarshalJSON() ([]byte, error) { return json.Marshal(s.v) }

// ScoreFn rates a single prediction.
type ScoreFn interface {
	Score(pred models.Prediction, truth models.PlayedGame) PredScore
}

// SimpleScoreFn gives OutcomeWeight for the right winner (or a draw) and
// ResultWeight on top for the exact score.
type SimpleScoreFn struct {
	OutcomeWeight float64
	ResultWeight  float64
}

// DefaultScoreFn is 3 for the outcome plus 2 for the exact result.
func DefaultScoreFn() SimpleScoreFn {
	return SimpleScoreFn{OutcomeWeight: 3, ResultWeight: 2}
}

func (f SimpleScoreFn) Score(pred models.Prediction, truth models.PlayedGame) PredScore {
	var v float64
	if pred.Outcome() == truth.Outcome() {
		v += f.OutcomeWeight
	}
	if pred.HomeGoals == truth.HomeGoals && pred.AwayGoals == truth.AwayGoals {
		v += f.ResultWeight
	}
	return PredScore{v: v}
}

// LeaderboardEntry is one player's total.
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	PlayerID    int       `json:"player_id"`
	Name        string    `json:"name"`
	Score       PredScore `json:"score"`
	Predictions int       `json:"predictions"`
	Exact       int       `json:"exact"`
}

// Leaderboard totals the predictions of every player over the played
// games. Predictions for games without a result count for nothing yet.
// Players with equal scores share a rank and are listed by ID.
func Leaderboard(fn ScoreFn, players []models.Player, predictions []models.Prediction, played map[models.GameID]models.PlayedGame) []LeaderboardEntry {
	byPlayer := make(map[int]*LeaderboardEntry, len(players))
	entries := make([]*LeaderboardEntry, 0, len(players))
	for _, p := range players {
		e := &LeaderboardEntry{PlayerID: p.ID, Name: p.Name}
		byPlayer[p.ID] = e
		entries = append(entries, e)
	}

	for _, pred := range predictions {
		e, ok := byPlayer[pred.PlayerID]
		if !ok {
			continue
		}
		e.Predictions++
		truth, ok := played[pred.GameID]
		if !ok {
			continue
		}
		e.Score = e.Score.Add(fn.Score(pred, truth))
		if pred.HomeGoals == truth.HomeGoals && pred.AwayGoals == truth.AwayGoals {
			e.Exact++
		}
	}

	slices.SortFunc(entries, func(a, b *LeaderboardEntry) int {
		if c := b.Score.Cmp(a.Score); c != 0 {
			return c
		}
		return a.PlayerID - b.PlayerID
	})

	out := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		e.Rank = i + 1
		if i > 0 && e.Score.Cmp(entries[i-1].Score) == 0 {
			e.Rank = entries[i-1].Rank
		}
		out[i] = *e
	}
	return out
}
