package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalCountSubYieldsGoalDiff(t *testing.T) {
	assert.Equal(t, NewGoalDiff(2), MustGoalCount(5).Sub(MustGoalCount(3)))
	assert.Equal(t, NewGoalDiff(-2), MustGoalCount(3).Sub(MustGoalCount(5)))
	assert.Equal(t, MustGoalCount(8), MustGoalCount(5).Add(MustGoalCount(3)))
}

func TestNewGoalCountRange(t *testing.T) {
	_, err := NewGoalCount(-1)
	assert.ErrorIs(t, err, ErrGoalCountOutOfRange)

	_, err = NewGoalCount(MaxGoalCount + 1)
	assert.ErrorIs(t, err, ErrGoalCountOutOfRange)

	g, err := NewGoalCount(MaxGoalCount)
	require.NoError(t, err)
	assert.Equal(t, MaxGoalCount, g.Int())
}

func TestGoalCountTotalsExceedPerGameBound(t *testing.T) {
	total := MustGoalCount(MaxGoalCount).Add(MustGoalCount(5))
	assert.Equal(t, MaxGoalCount+5, total.Int())

	b, err := json.Marshal(total)
	require.NoError(t, err)
	var back GoalCount
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, total, back)

	assert.ErrorIs(t, json.Unmarshal([]byte(`-1`), &back), ErrGoalCountOutOfRange)
	assert.Error(t, json.Unmarshal([]byte(`1.5`), &back))
}

func TestCards(t *testing.T) {
	c := Cards{Yellow: 2, DirectRed: 1}
	assert.NoError(t, c.Validate())
	assert.Equal(t, Cards{Yellow: 3, DirectRed: 1, YellowAndDirect: 1}, c.Add(Cards{Yellow: 1, YellowAndDirect: 1}))
	assert.False(t, c.IsZero())
	assert.True(t, Cards{}.IsZero())

	a := c.Array()
	back, err := CardsFromArray(a[:])
	require.NoError(t, err)
	assert.Equal(t, c, back)

	empty, err := CardsFromArray(nil)
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	_, err = CardsFromArray([]int64{1, 2})
	assert.Error(t, err)
	_, err = CardsFromArray([]int64{0, 0, -1, 0})
	assert.ErrorIs(t, err, ErrCardCountNegative)
	assert.ErrorIs(t, Cards{IndirectRed: -2}.Validate(), ErrCardCountNegative)
}

func TestGroupWithCards(t *testing.T) {
	g, err := NewGroup(MustGroupID('B'),
		[]PlayedGame{{ID: 1, Home: 1, Away: 2, HomeGoals: MustGoalCount(1), AwayGoals: MustGoalCount(0)}},
		[]UnplayedGame{{ID: 2, Home: 3, Away: 4}},
	)
	require.NoError(t, err)

	next, err := g.WithCards(1, Cards{Yellow: 1}, Cards{DirectRed: 1})
	require.NoError(t, err)
	p, ok := next.Played(1)
	require.True(t, ok)
	assert.Equal(t, Cards{Yellow: 1}, p.HomeCards)
	assert.Equal(t, Cards{DirectRed: 1}, p.AwayCards)
	before, _ := g.Played(1)
	assert.True(t, before.HomeCards.IsZero())

	_, err = g.WithCards(2, Cards{}, Cards{})
	assert.ErrorIs(t, err, ErrGroupGameNotPlayed)
	_, err = g.WithCards(9, Cards{}, Cards{})
	assert.ErrorIs(t, err, ErrGroupGameNotFound)
	_, err = g.WithCards(1, Cards{Yellow: -1}, Cards{})
	assert.ErrorIs(t, err, ErrCardCountNegative)

	// unplaying drops the cards
	back, err := next.WithoutResult(1)
	require.NoError(t, err)
	again, err := back.WithResult(1, MustGoalCount(0), MustGoalCount(0))
	require.NoError(t, err)
	p, _ = again.Played(1)
	assert.True(t, p.HomeCards.IsZero())
	_, ok = again.Played(2)
	assert.False(t, ok)
}

func TestTeamRankCmpPrefersLowerRank(t *testing.T) {
	first, err := NewTeamRank(1)
	require.NoError(t, err)
	tenth, err := NewTeamRank(10)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Cmp(tenth))
	assert.Equal(t, -1, tenth.Cmp(first))

	_, err = NewTeamRank(0)
	assert.ErrorIs(t, err, ErrTeamRankOutOfRange)
}

func TestNewPlayoffScore(t *testing.T) {
	two, three, one := MustGoalCount(2), MustGoalCount(3), MustGoalCount(1)

	t.Run("level without penalties", func(t *testing.T) {
		_, err := NewPlayoffScore(two, two, nil)
		assert.ErrorIs(t, err, ErrNoWinner)
	})

	t.Run("level with tied penalties", func(t *testing.T) {
		_, err := NewPlayoffScore(two, two, &Penalties{Home: MustGoalCount(4), Away: MustGoalCount(4)})
		assert.ErrorIs(t, err, ErrNoWinner)
	})

	t.Run("level decided on penalties", func(t *testing.T) {
		s, err := NewPlayoffScore(two, two, &Penalties{Home: MustGoalCount(5), Away: MustGoalCount(4)})
		require.NoError(t, err)
		assert.True(t, s.HomeWins())
		assert.Equal(t, TeamID(10), s.Winner(10, 20))
		assert.Equal(t, TeamID(20), s.Loser(10, 20))
		_, ok := s.Penalties()
		assert.True(t, ok)
	})

	t.Run("regulation winner", func(t *testing.T) {
		s, err := NewPlayoffScore(three, one, nil)
		require.NoError(t, err)
		assert.Equal(t, TeamID(10), s.Winner(10, 20))
	})

	t.Run("regulation winner ignores penalties", func(t *testing.T) {
		s, err := NewPlayoffScore(one, three, &Penalties{Home: MustGoalCount(5), Away: MustGoalCount(4)})
		require.NoError(t, err)
		assert.False(t, s.HomeWins())
		assert.Equal(t, TeamID(20), s.Winner(10, 20))
		_, ok := s.Penalties()
		assert.False(t, ok)
	})
}

func TestPlayoffScoreJSONRejectsInvalid(t *testing.T) {
	var s PlayoffScore
	err := json.Unmarshal([]byte(`{"home":1,"away":1}`), &s)
	assert.ErrorIs(t, err, ErrNoWinner)

	require.NoError(t, json.Unmarshal([]byte(`{"home":1,"away":1,"penalties":{"home":3,"away":4}}`), &s))
	assert.False(t, s.HomeWins())
}

func TestNewGroupRejectsDuplicateGameIDs(t *testing.T) {
	a := MustGroupID('A')
	played := []PlayedGame{{ID: 1, Home: 1, Away: 2}}
	unplayed := []UnplayedGame{{ID: 1, Home: 3, Away: 4}}

	_, err := NewGroup(a, played, unplayed)
	assert.ErrorIs(t, err, ErrDuplicateGroupGame)
}

func TestGroupTeamIDsAndResults(t *testing.T) {
	a := MustGroupID('A')
	g, err := NewGroup(a,
		[]PlayedGame{{ID: 1, Home: 1, Away: 2, HomeGoals: MustGoalCount(1), AwayGoals: MustGoalCount(0)}},
		[]UnplayedGame{{ID: 2, Home: 3, Away: 4}, {ID: 3, Home: 1, Away: 3}},
	)
	require.NoError(t, err)

	assert.Equal(t, []TeamID{1, 2, 3, 4}, g.TeamIDs())
	assert.False(t, g.IsComplete())

	next, err := g.WithResult(2, MustGoalCount(2), MustGoalCount(2))
	require.NoError(t, err)
	assert.Len(t, next.PlayedGames(), 2)
	assert.Len(t, next.UnplayedGames(), 1)
	// the receiver is left untouched
	assert.Len(t, g.PlayedGames(), 1)

	_, err = next.WithResult(2, MustGoalCount(0), MustGoalCount(0))
	assert.ErrorIs(t, err, ErrGroupGameAlreadySet)

	back, err := next.WithoutResult(1)
	require.NoError(t, err)
	assert.Len(t, back.PlayedGames(), 1)

	_, err = back.WithoutResult(42)
	assert.ErrorIs(t, err, ErrGroupGameNotFound)
}

func TestEmptyGroupHasNoTeams(t *testing.T) {
	g, err := NewGroup(MustGroupID('C'), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, g.TeamIDs())
	assert.True(t, g.IsComplete())
}

func TestGroupIDParsing(t *testing.T) {
	id, err := ParseGroupID("b")
	require.NoError(t, err)
	assert.Equal(t, "B", id.String())

	_, err = ParseGroupID("AB")
	assert.ErrorIs(t, err, ErrInvalidGroupID)
	_, err = NewGroupID('1')
	assert.ErrorIs(t, err, ErrInvalidGroupID)
}

func TestTeamSourceJSON(t *testing.T) {
	src := GroupOutcome{Outcome: ThirdPlace{Candidates: []GroupID{MustGroupID('A'), MustGroupID('B')}}}
	b, err := json.Marshal(src)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"group_outcome","outcome":"third_place","candidates":["A","B"],"place":1,"label":"3AB"}`, string(b))

	b, err = json.Marshal(WinnerOf{Game: 7})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"winner_of","game":7,"label":"Winner of 7"}`, string(b))
}
