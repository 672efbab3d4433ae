package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

var (
	ErrInvalidGroupID      = errors.New("group id must be a letter A-Z")
	ErrDuplicateGroupGame  = errors.New("game id appears more than once in group")
	ErrGroupGameNotFound   = errors.New("game not found in group")
	ErrGroupGameNotPlayed  = errors.New("game has not been played")
	ErrGroupGameAlreadySet = errors.New("game already has a result")
)

// GroupID is a single upper-case letter.
type GroupID byte

func NewGroupID(r rune) (GroupID, error) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r < 'A' || r > 'Z' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGroupID, r)
	}
	return GroupID(r), nil
}

// ParseGroupID reads a one-letter string such as "A".
func ParseGroupID(s string) (GroupID, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGroupID, s)
	}
	return NewGroupID(rune(s[0]))
}

func MustGroupID(r rune) GroupID {
	id, err := NewGroupID(r)
	if err != nil {
		panic(err)
	}
	return id
}

func (id GroupID) String() string { return string(rune(id)) }

func (id GroupID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *GroupID) UnmarshalText(text []byte) error {
	v, err := ParseGroupID(string(text))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// Group holds only the raw games of one pool. Teams, statistics and
// standings are always derived from them.
type Group struct {
	id       GroupID
	played   []PlayedGame
	unplayed []UnplayedGame
}

// NewGroup copies the given games; every game id must be unique.
func NewGroup(id GroupID, played []PlayedGame, unplayed []UnplayedGame) (Group, error) {
	seen := make(map[GameID]struct{}, len(played)+len(unplayed))
	check := func(g Game) error {
		if g.HomeTeam() == g.AwayTeam() {
			return fmt.Errorf("%w: group %s game %d", ErrSameTeam, id, g.GameID())
		}
		if _, dup := seen[g.GameID()]; dup {
			return fmt.Errorf("%w: group %s game %d", ErrDuplicateGroupGame, id, g.GameID())
		}
		seen[g.GameID()] = struct{}{}
		return nil
	}
	for _, g := range played {
		if err := check(g); err != nil {
			return Group{}, err
		}
	}
	for _, g := range unplayed {
		if err := check(g); err != nil {
			return Group{}, err
		}
	}
	return Group{id: id, played: slices.Clone(played), unplayed: slices.Clone(unplayed)}, nil
}

func (g Group) ID() GroupID { return g.id }

// PlayedGames returns a copy of the played games.
func (g Group) PlayedGames() []PlayedGame { return slices.Clone(g.played) }

// UnplayedGames returns a copy of the unplayed games.
func (g Group) UnplayedGames() []UnplayedGame { return slices.Clone(g.unplayed) }

// IsComplete reports whether every game of the group has a result.
// A group without games is trivially complete.
func (g Group) IsComplete() bool { return len(g.unplayed) == 0 }

// TeamIDs lists the participating teams in order of first appearance,
// played games first.
func (g Group) TeamIDs() []TeamID {
	seen := make(map[TeamID]struct{})
	teams := make([]TeamID, 0)
	add := func(id TeamID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			teams = append(teams, id)
		}
	}
	for _, game := range g.played {
		add(game.Home)
		add(game.Away)
	}
	for _, game := range g.unplayed {
		add(game.Home)
		add(game.Away)
	}
	return teams
}

// WithResult returns a new Group in which the unplayed game gameID carries the score.
func (g Group) WithResult(gameID GameID, home, away GoalCount) (Group, error) {
	idx := slices.IndexFunc(g.unplayed, func(u UnplayedGame) bool { return u.ID == gameID })
	if idx < 0 {
		if slices.ContainsFunc(g.played, func(p PlayedGame) bool { return p.ID == gameID }) {
			return Group{}, fmt.Errorf("%w: game %d", ErrGroupGameAlreadySet, gameID)
		}
		return Group{}, fmt.Errorf("%w: game %d in group %s", ErrGroupGameNotFound, gameID, g.id)
	}
	next := Group{
		id:       g.id,
		played:   append(slices.Clone(g.played), g.unplayed[idx].Play(home, away)),
		unplayed: slices.Delete(slices.Clone(g.unplayed), idx, idx+1),
	}
	return next, nil
}

// WithCards returns a new Group in which the played game gameID carries
// the cards of both sides.
func (g Group) WithCards(gameID GameID, home, away Cards) (Group, error) {
	idx := slices.IndexFunc(g.played, func(p PlayedGame) bool { return p.ID == gameID })
	if idx < 0 {
		if slices.ContainsFunc(g.unplayed, func(u UnplayedGame) bool { return u.ID == gameID }) {
			return Group{}, fmt.Errorf("%w: game %d", ErrGroupGameNotPlayed, gameID)
		}
		return Group{}, fmt.Errorf("%w: game %d in group %s", ErrGroupGameNotFound, gameID, g.id)
	}
	if err := home.Validate(); err != nil {
		return Group{}, fmt.Errorf("game %d home side: %w", gameID, err)
	}
	if err := away.Validate(); err != nil {
		return Group{}, fmt.Errorf("game %d away side: %w", gameID, err)
	}
	played := slices.Clone(g.played)
	played[idx] = played[idx].WithCards(home, away)
	return Group{id: g.id, played: played, unplayed: slices.Clone(g.unplayed)}, nil
}

// Played looks up a played game of the group.
func (g Group) Played(gameID GameID) (PlayedGame, bool) {
	idx := slices.IndexFunc(g.played, func(p PlayedGame) bool { return p.ID == gameID })
	if idx < 0 {
		return PlayedGame{}, false
	}
	return g.played[idx], true
}

// WithoutResult returns a new Group in which the played game gameID is unplayed again.
func (g Group) WithoutResult(gameID GameID) (Group, error) {
	idx := slices.IndexFunc(g.played, func(p PlayedGame) bool { return p.ID == gameID })
	if idx < 0 {
		if slices.ContainsFunc(g.unplayed, func(u UnplayedGame) bool { return u.ID == gameID }) {
			return Group{}, fmt.Errorf("%w: game %d", ErrGroupGameNotPlayed, gameID)
		}
		return Group{}, fmt.Errorf("%w: game %d in group %s", ErrGroupGameNotFound, gameID, g.id)
	}
	next := Group{
		id:       g.id,
		played:   slices.Delete(slices.Clone(g.played), idx, idx+1),
		unplayed: append(slices.Clone(g.unplayed), g.played[idx].Unplay()),
	}
	return next, nil
}

type groupJSON struct {
	ID       GroupID        `json:"id"`
	Played   []PlayedGame   `json:"played_games"`
	Unplayed []UnplayedGame `json:"unplayed_games"`
}

func (g Group) MarshalJSON() ([]byte, error) {
	return json.Marshal(groupJSON{ID: g.id, Played: g.played, Unplayed: g.unplayed})
}
