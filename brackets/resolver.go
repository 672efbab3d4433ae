package brackets

import (
	"fmt"

	"github.com/Dosada05/tournament-predictor/models"
	"github.com/Dosada05/tournament-predictor/standings"
)

// Status tells how much of a playoff game is known.
type Status int

const (
	// Unresolved: at least one of the two teams is not determined yet.
	Unresolved Status = iota
	// TeamsKnown: both teams are determined, the game is not played.
	TeamsKnown
	// Complete: both teams are determined and the score is in.
	Complete
)

func (s Status) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case TeamsKnown:
		return "teams_known"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Resolution is the computed state of one playoff game.
type Resolution struct {
	Game       models.GameID        `json:"game_id"`
	Status     Status               `json:"status"`
	Home       *models.TeamID       `json:"home,omitempty"`
	Away       *models.TeamID       `json:"away,omitempty"`
	HomeSource models.TeamSource    `json:"home_source"`
	AwaySource models.TeamSource    `json:"away_source"`
	Score      *models.PlayoffScore `json:"score,omitempty"`
	Winner     *models.TeamID       `json:"winner,omitempty"`
	Loser      *models.TeamID       `json:"loser,omitempty"`
}

// Resolver turns a bracket, group tables and playoff results into
// per-game resolutions. It keeps no state between calls and is safe for
// concurrent use.
type Resolver struct {
	policy      standings.Policy
	provisional bool
}

type ResolverOption func(*Resolver)

// WithProvisionalGroupOutcomes lets group winners and runners-up resolve
// from the current table of a group that is still being played.
// Third-place sources always wait for every candidate group.
func WithProvisionalGroupOutcomes() ResolverOption {
	return func(r *Resolver) { r.provisional = true }
}

// NewResolver uses policy to rank third-placed teams across groups.
func NewResolver(policy standings.Policy, opts ...ResolverOption) *Resolver {
	r := &Resolver{policy: policy}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve computes every game of the structure in topological order, so
// each WinnerOf/LoserOf lookup finds its referenced game already done.
// A score for a game whose teams are unknown is reported but decides
// nothing.
func (r *Resolver) Resolve(
	s *Structure,
	tables map[models.GroupID]standings.Table,
	results map[models.GameID]models.PlayoffScore,
) (map[models.GameID]Resolution, error) {
	for id := range results {
		if !s.Contains(id) {
			return nil, &DanglingReferenceError{References: id}
		}
	}

	out := make(map[models.GameID]Resolution, len(s.order))
	for _, id := range s.order {
		g := s.games[id]
		res := Resolution{Game: id, HomeSource: g.Home, AwaySource: g.Away}

		var err error
		if res.Home, err = r.team(id, g.Home, tables, out); err != nil {
			return nil, err
		}
		if res.Away, err = r.team(id, g.Away, tables, out); err != nil {
			return nil, err
		}
		if score, ok := results[id]; ok {
			res.Score = &score
		}

		if res.Home != nil && res.Away != nil {
			res.Status = TeamsKnown
			if res.Score != nil {
				winner := res.Score.Winner(*res.Home, *res.Away)
				loser := res.Score.Loser(*res.Home, *res.Away)
				res.Status, res.Winner, res.Loser = Complete, &winner, &loser
			}
		}
		out[id] = res
	}
	return out, nil
}

func (r *Resolver) team(
	game models.GameID,
	src models.TeamSource,
	tables map[models.GroupID]standings.Table,
	done map[models.GameID]Resolution,
) (*models.TeamID, error) {
	switch src := src.(type) {
	case models.WinnerOf:
		if prev := done[src.Game]; prev.Status == Complete {
			return prev.Winner, nil
		}
		return nil, nil
	case models.LoserOf:
		if prev := done[src.Game]; prev.Status == Complete {
			return prev.Loser, nil
		}
		return nil, nil
	case models.GroupOutcome:
		return r.outcome(game, src.Outcome, tables)
	default:
		return nil, fmt.Errorf("game %d: unknown team source %T", game, src)
	}
}

func (r *Resolver) outcome(game models.GameID, o models.Outcome, tables map[models.GroupID]standings.Table) (*models.TeamID, error) {
	switch o := o.(type) {
	case models.Winner:
		return r.position(game, o.Group, models.PositionWinner, tables)
	case models.RunnerUp:
		return r.position(game, o.Group, models.PositionRunnerUp, tables)
	case models.ThirdPlace:
		return r.thirdPlace(game, o, tables)
	default:
		return nil, fmt.Errorf("game %d: unknown group outcome %T", game, o)
	}
}

func (r *Resolver) position(game models.GameID, group models.GroupID, pos int, tables map[models.GroupID]standings.Table) (*models.TeamID, error) {
	t, ok := tables[group]
	if !ok {
		return nil, &UnknownGroupError{Game: game, Group: group}
	}
	if !t.Complete && !r.provisional {
		return nil, nil
	}
	s, ok := t.At(pos)
	if !ok {
		return nil, nil
	}
	team := s.Team
	return &team, nil
}

// thirdPlace waits for every candidate group to finish, then ranks their
// third-placed teams afresh with the policy's third-place comparator.
func (r *Resolver) thirdPlace(game models.GameID, o models.ThirdPlace, tables map[models.GroupID]standings.Table) (*models.TeamID, error) {
	candidates := make([]standings.Table, 0, len(o.Candidates))
	complete := true
	for _, gid := range o.Candidates {
		t, ok := tables[gid]
		if !ok {
			return nil, &UnknownGroupError{Game: game, Group: gid}
		}
		complete = complete && t.Complete
		candidates = append(candidates, t)
	}
	if !complete || len(candidates) == 0 {
		return nil, nil
	}
	ranked := standings.ThirdPlaced(candidates, r.policy)
	if o.Rank() > len(ranked) {
		return nil, nil
	}
	team := ranked[o.Rank()-1].Team
	return &team, nil
}

// Champion is the winner of the final, once it is complete.
func Champion(s *Structure, res map[models.GameID]Resolution) (models.TeamID, bool) {
	if f, ok := res[s.Final()]; ok && f.Status == Complete {
		return *f.Winner, true
	}
	return 0, false
}

// RunnerUp is the loser of the final, once it is complete.
func RunnerUp(s *Structure, res map[models.GameID]Resolution) (models.TeamID, bool) {
	if f, ok := res[s.Final()]; ok && f.Status == Complete {
		return *f.Loser, true
	}
	return 0, false
}
