package brackets

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Dosada05/tournament-predictor/models"
)

var (
	ErrEmptyBracket      = errors.New("bracket has no games")
	ErrDuplicateGame     = errors.New("bracket game listed twice")
	ErrDanglingReference = errors.New("bracket source references an unknown game")
	ErrCycle             = errors.New("bracket sources form a cycle")
	ErrUnknownGroup      = errors.New("bracket source references an unknown group")
)

// DanglingReferenceError names the game holding the reference and the
// game it points at.
type DanglingReferenceError struct {
	Game       models.GameID
	References models.GameID
}

func (e *DanglingReferenceError) Error() string {
	if e.Game == 0 {
		return fmt.Sprintf("%v: %d", ErrDanglingReference, e.References)
	}
	return fmt.Sprintf("%v: game %d references game %d", ErrDanglingReference, e.Game, e.References)
}

func (e *DanglingReferenceError) Is(target error) bool { return target == ErrDanglingReference }

// CycleError lists the games that could not be ordered.
type CycleError struct {
	Games []models.GameID
}

func (e *CycleError) Error() string {
	ids := make([]string, len(e.Games))
	for i, id := range e.Games {
		ids[i] = id.String()
	}
	return fmt.Sprintf("%v: games %s", ErrCycle, strings.Join(ids, ", "))
}

func (e *CycleError) Is(target error) bool { return target == ErrCycle }

// UnknownGroupError is returned when a source names a group that has no
// table.
type UnknownGroupError struct {
	Game  models.GameID
	Group models.GroupID
}

func (e *UnknownGroupError) Error() string {
	return fmt.Sprintf("%v: game %d references group %s", ErrUnknownGroup, e.Game, e.Group)
}

func (e *UnknownGroupError) Is(target error) bool { return target == ErrUnknownGroup }

// Structure is a validated playoff bracket: every WinnerOf/LoserOf
// reference points inside the bracket and the references are acyclic.
// It is immutable once built.
type Structure struct {
	games      map[models.GameID]models.PlayoffGame
	order      []models.GameID // topological, sources first
	dependents map[models.GameID][]models.GameID
	depth      map[models.GameID]int
	final      models.GameID
}

// NewStructure validates the games and orders them once, so that
// resolution never has to look for cycles. The last game is the final.
// Scores carried by the games are ignored; results are passed to Resolve.
func NewStructure(games []models.PlayoffGame) (*Structure, error) {
	if len(games) == 0 {
		return nil, ErrEmptyBracket
	}

	s := &Structure{
		games:      make(map[models.GameID]models.PlayoffGame, len(games)),
		dependents: make(map[models.GameID][]models.GameID, len(games)),
		final:      games[len(games)-1].ID,
	}
	for _, g := range games {
		if _, dup := s.games[g.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateGame, g.ID)
		}
		if g.Home == nil || g.Away == nil {
			return nil, fmt.Errorf("game %d: missing team source", g.ID)
		}
		g.Score = nil
		s.games[g.ID] = g
	}

	// indegree counts the edges into a game from the games it waits on
	indegree := make(map[models.GameID]int, len(games))
	for _, g := range games {
		for _, ref := range references(g) {
			if _, ok := s.games[ref]; !ok {
				return nil, &DanglingReferenceError{Game: g.ID, References: ref}
			}
			indegree[g.ID]++
			if !slices.Contains(s.dependents[ref], g.ID) {
				s.dependents[ref] = append(s.dependents[ref], g.ID)
			}
		}
	}

	// Kahn's algorithm, seeded in input order so that the topological
	// order is stable for a given input.
	queue := make([]models.GameID, 0, len(games))
	for _, g := range games {
		if indegree[g.ID] == 0 {
			queue = append(queue, g.ID)
		}
	}
	s.order = make([]models.GameID, 0, len(games))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		s.order = append(s.order, id)
		for _, dep := range s.dependents[id] {
			indegree[dep] -= edgeCount(s.games[dep], id)
			if indegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}
	if len(s.order) != len(games) {
		var stuck []models.GameID
		for _, g := range games {
			if indegree[g.ID] > 0 {
				stuck = append(stuck, g.ID)
			}
		}
		return nil, &CycleError{Games: stuck}
	}

	s.depth = s.distancesFromFinal()
	return s, nil
}

// references lists the games a playoff game waits on, one entry per side.
func references(g models.PlayoffGame) []models.GameID {
	var out []models.GameID
	for _, src := range []models.TeamSource{g.Home, g.Away} {
		switch src := src.(type) {
		case models.WinnerOf:
			out = append(out, src.Game)
		case models.LoserOf:
			out = append(out, src.Game)
		case models.GroupOutcome:
		}
	}
	return out
}

func edgeCount(g models.PlayoffGame, ref models.GameID) int {
	n := 0
	for _, r := range references(g) {
		if r == ref {
			n++
		}
	}
	return n
}

// distancesFromFinal walks the source edges backwards from the final.
// Games that do not feed the final, such as a third-place playoff, get
// no depth.
func (s *Structure) distancesFromFinal() map[models.GameID]int {
	depth := map[models.GameID]int{s.final: 0}
	queue := []models.GameID{s.final}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, ref := range references(s.games[id]) {
			if _, seen := depth[ref]; !seen {
				depth[ref] = depth[id] + 1
				queue = append(queue, ref)
			}
		}
	}
	return depth
}

// Games returns the games in topological order: every game comes after
// the games its sources depend on.
func (s *Structure) Games() []models.PlayoffGame {
	out := make([]models.PlayoffGame, len(s.order))
	for i, id := range s.order {
		out[i] = s.games[id]
	}
	return out
}

// Order returns the game IDs in topological order.
func (s *Structure) Order() []models.GameID { return slices.Clone(s.order) }

// Contains reports whether the bracket has a game with this ID.
func (s *Structure) Contains(id models.GameID) bool {
	_, ok := s.games[id]
	return ok
}

// Sources returns the home and away source of a game.
func (s *Structure) Sources(id models.GameID) (home, away models.TeamSource, ok bool) {
	g, ok := s.games[id]
	if !ok {
		return nil, nil, false
	}
	return g.Home, g.Away, true
}

// Final is the ID of the championship game.
func (s *Structure) Final() models.GameID { return s.final }

// Dependents lists the games that take the winner or loser of id.
func (s *Structure) Dependents(id models.GameID) []models.GameID {
	return slices.Clone(s.dependents[id])
}

// Depth is the number of rounds before the final: 0 for the final, 1 for
// the semi-finals and so on.
func (s *Structure) Depth(id models.GameID) (int, bool) {
	d, ok := s.depth[id]
	return d, ok
}

// MaxDepth is the depth of the first round.
func (s *Structure) MaxDepth() int {
	m := 0
	for _, d := range s.depth {
		m = max(m, d)
	}
	return m
}

// GamesAtDepth lists the games of one round, in topological order.
func (s *Structure) GamesAtDepth(depth int) []models.GameID {
	var out []models.GameID
	for _, id := range s.order {
		if d, ok := s.depth[id]; ok && d == depth {
			out = append(out, id)
		}
	}
	return out
}

// Groups lists every group referenced by a group outcome source, sorted.
func (s *Structure) Groups() []models.GroupID {
	seen := make(map[models.GroupID]bool)
	var out []models.GroupID
	for _, id := range s.order {
		g := s.games[id]
		for _, src := range []models.TeamSource{g.Home, g.Away} {
			if o, ok := src.(models.GroupOutcome); ok {
				for _, gid := range models.Groups(o.Outcome) {
					if !seen[gid] {
						seen[gid] = true
						out = append(out, gid)
					}
				}
			}
		}
	}
	slices.Sort(out)
	return out
}
