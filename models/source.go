package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TeamSource describes where a playoff participant comes from. The
// implementations are GroupOutcome, WinnerOf and LoserOf; the unexported
// marker keeps the set closed so that every type switch can be exhaustive.
type TeamSource interface {
	fmt.Stringer
	isTeamSource()
}

// Outcome is a finishing position in the group stage: Winner, RunnerUp or
// ThirdPlace.
type Outcome interface {
	fmt.Stringer
	isOutcome()
}

type GroupOutcome struct {
	Outcome Outcome
}

type WinnerOf struct {
	Game GameID
}

type LoserOf struct {
	Game GameID
}

func (GroupOutcome) isTeamSource() {}
func (WinnerOf) isTeamSource()     {}
func (LoserOf) isTeamSource()      {}

func (s GroupOutcome) String() string { return s.Outcome.String() }
func (s WinnerOf) String() string     { return fmt.Sprintf("Winner of %d", s.Game) }
func (s LoserOf) String() string      { return fmt.Sprintf("Loser of %d", s.Game) }

type Winner struct {
	Group GroupID
}

type RunnerUp struct {
	Group GroupID
}

// ThirdPlace selects among the third-placed teams of Candidates. Place 1
// is the best of them, Place 2 the second best and so on; zero means 1.
type ThirdPlace struct {
	Candidates []GroupID
	Place      int
}

func (Winner) isOutcome()     {}
func (RunnerUp) isOutcome()   {}
func (ThirdPlace) isOutcome() {}

func (o Winner) String() string   { return fmt.Sprintf("1%s", o.Group) }
func (o RunnerUp) String() string { return fmt.Sprintf("2%s", o.Group) }

func (o ThirdPlace) String() string {
	var b strings.Builder
	b.WriteString("3")
	for _, g := range o.Candidates {
		b.WriteString(g.String())
	}
	if o.Rank() > 1 {
		fmt.Fprintf(&b, "#%d", o.Rank())
	}
	return b.String()
}

// Rank is Place with the zero value read as 1.
func (o ThirdPlace) Rank() int {
	if o.Place < 1 {
		return 1
	}
	return o.Place
}

// Groups lists every group an outcome depends on.
func Groups(o Outcome) []GroupID {
	switch o := o.(type) {
	case Winner:
		return []GroupID{o.Group}
	case RunnerUp:
		return []GroupID{o.Group}
	case ThirdPlace:
		return o.Candidates
	default:
		panic(fmt.Sprintf("models: unknown outcome %T", o))
	}
}

// sourceJSON is the wire shape of a TeamSource.
type sourceJSON struct {
	Type       string    `json:"type"`
	Outcome    string    `json:"outcome,omitempty"`
	Group      *GroupID  `json:"group,omitempty"`
	Candidates []GroupID `json:"candidates,omitempty"`
	Place      int       `json:"place,omitempty"`
	Game       *GameID   `json:"game,omitempty"`
	Label      string    `json:"label"`
}

func (s GroupOutcome) MarshalJSON() ([]byte, error) {
	out := sourceJSON{Type: "group_outcome", Label: s.String()}
	switch o := s.Outcome.(type) {
	case Winner:
		out.Outcome, out.Group = "winner", &o.Group
	case RunnerUp:
		out.Outcome, out.Group = "runner_up", &o.Group
	case ThirdPlace:
		out.Outcome, out.Candidates, out.Place = "third_place", o.Candidates, o.Rank()
	default:
		return nil, fmt.Errorf("models: unknown outcome %T", o)
	}
	return json.Marshal(out)
}

func (s WinnerOf) MarshalJSON() ([]byte, error) {
	return json.Marshal(sourceJSON{Type: "winner_of", Game: &s.Game, Label: s.String()})
}

func (s LoserOf) MarshalJSON() ([]byte, error) {
	return json.Marshal(sourceJSON{Type: "loser_of", Game: &s.Game, Label: s.String()})
}
