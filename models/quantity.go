package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// MaxGoalCount is the largest number of goals a single side can score in
// a game. It bounds recorded scores only: totals built with Add, such as a
// team's goals over a group, may exceed it.
const MaxGoalCount = 999

var (
	ErrGoalCountOutOfRange = errors.New("goal count out of range")
	ErrTeamRankOutOfRange  = errors.New("team rank must be positive")
)

// GoalCount is a non-negative number of goals.
//
// Each quantity in this file is a distinct struct so that mixing them up
// (adding points to goals, subtracting counts into counts) does not compile.
type GoalCount struct {
	n uint32
}

// NewGoalCount returns an error for negative values or values above MaxGoalCount.
func NewGoalCount(n int) (GoalCount, error) {
	if n < 0 || n > MaxGoalCount {
		return GoalCount{}, fmt.Errorf("%w: %d (allowed 0..%d)", ErrGoalCountOutOfRange, n, MaxGoalCount)
	}
	return GoalCount{n: uint32(n)}, nil
}

// MustGoalCount is like NewGoalCount but panics on invalid input.
// Intended for literals in templates and tests.
func MustGoalCount(n int) GoalCount {
	g, err := NewGoalCount(n)
	if err != nil {
		panic(err)
	}
	return g
}

func (g GoalCount) Int() int { return int(g.n) }

// Add sums two counts without the per-game bound.
func (g GoalCount) Add(other GoalCount) GoalCount {
	return GoalCount{n: g.n + other.n}
}

// Sub yields a signed GoalDiff, never another GoalCount.
func (g GoalCount) Sub(other GoalCount) GoalDiff {
	return GoalDiff{n: int32(g.n) - int32(other.n)}
}

func (g GoalCount) Cmp(other GoalCount) int {
	return cmpInt(int64(g.n), int64(other.n))
}

func (g GoalCount) String() string { return strconv.Itoa(int(g.n)) }

func (g GoalCount) MarshalJSON() ([]byte, error) { return json.Marshal(g.n) }

// UnmarshalJSON accepts any non-negative count so that totals survive a
// round trip. Scores coming from users go through NewGoalCount.
func (g *GoalCount) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n < 0 || n > math.MaxUint32 {
		return fmt.Errorf("%w: %d", ErrGoalCountOutOfRange, n)
	}
	*g = GoalCount{n: uint32(n)}
	return nil
}

// GoalDiff is the signed difference between goals scored and conceded.
type GoalDiff struct {
	n int32
}

func NewGoalDiff(n int) GoalDiff { return GoalDiff{n: int32(n)} }

func (d GoalDiff) Int() int { return int(d.n) }

func (d GoalDiff) Add(other GoalDiff) GoalDiff {
	return GoalDiff{n: d.n + other.n}
}

func (d GoalDiff) Cmp(other GoalDiff) int {
	return cmpInt(int64(d.n), int64(other.n))
}

func (d GoalDiff) String() string {
	if d.n > 0 {
		return "+" + strconv.Itoa(int(d.n))
	}
	return strconv.Itoa(int(d.n))
}

func (d GoalDiff) MarshalJSON() ([]byte, error) { return json.Marshal(d.n) }

// Points are accumulated from match outcomes (win/draw/loss).
type Points struct {
	n uint32
}

func NewPoints(n uint) Points { return Points{n: uint32(n)} }

func (p Points) Int() int { return int(p.n) }

func (p Points) Add(other Points) Points {
	return Points{n: p.n + other.n}
}

func (p Points) Cmp(other Points) int {
	return cmpInt(int64(p.n), int64(other.n))
}

func (p Points) String() string { return strconv.Itoa(int(p.n)) }

func (p Points) MarshalJSON() ([]byte, error) { return json.Marshal(p.n) }

func (p *Points) UnmarshalJSON(data []byte) error {
	var n uint
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = NewPoints(n)
	return nil
}

// GameCount counts games: played, won, drawn or lost.
type GameCount struct {
	n uint32
}

func (c GameCount) Int() int { return int(c.n) }

// Inc returns the count plus one.
func (c GameCount) Inc() GameCount { return GameCount{n: c.n + 1} }

func (c GameCount) Cmp(other GameCount) int {
	return cmpInt(int64(c.n), int64(other.n))
}

func (c GameCount) MarshalJSON() ([]byte, error) { return json.Marshal(c.n) }

// TeamRank is an external seeding rank (FIFA/UEFA style). Lower is better.
type TeamRank struct {
	n uint32
}

func NewTeamRank(n int) (TeamRank, error) {
	if n <= 0 {
		return TeamRank{}, fmt.Errorf("%w: %d", ErrTeamRankOutOfRange, n)
	}
	return TeamRank{n: uint32(n)}, nil
}

func (r TeamRank) Int() int { return int(r.n) }

// Cmp orders ranks so that the better (numerically lower) rank compares greater.
func (r TeamRank) Cmp(other TeamRank) int {
	return cmpInt(int64(other.n), int64(r.n))
}

func (r TeamRank) MarshalJSON() ([]byte, error) { return json.Marshal(r.n) }

// Position is a 1-based place in a group table.
type Position struct {
	n uint16
}

const (
	PositionWinner   = 1
	PositionRunnerUp = 2
	PositionThird    = 3
)

func NewPosition(n int) Position { return Position{n: uint16(n)} }

func (p Position) Int() int { return int(p.n) }

func (p Position) MarshalJSON() ([]byte, error) { return json.Marshal(p.n) }

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
