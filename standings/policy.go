package standings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-predictor/models"
)

var (
	ErrUnknownCriterion   = errors.New("unknown tie-break criterion")
	ErrDuplicateCriterion = errors.New("tie-break criterion listed twice")
	ErrUnknownPreset      = errors.New("unknown tie-break preset")
	ErrUnknownFairPlay    = errors.New("unknown fair play weighting")
)

// Criterion is one step of the lexicographic ordering.
type Criterion int

const (
	Points Criterion = iota + 1
	GoalDiff
	GoalsFor
	Wins
	HeadToHeadPoints
	HeadToHeadGoalDiff
	HeadToHeadGoalsFor
	TeamRank
	FairPlay
)

var criterionNames = map[Criterion]string{
	Points:             "points",
	GoalDiff:           "goal_diff",
	GoalsFor:           "goals_for",
	Wins:               "wins",
	HeadToHeadPoints:   "h2h_points",
	HeadToHeadGoalDiff: "h2h_goal_diff",
	HeadToHeadGoalsFor: "h2h_goals_for",
	TeamRank:           "team_rank",
	FairPlay:           "fair_play",
}

func (c Criterion) String() string {
	if name, ok := criterionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("criterion(%d)", int(c))
}

// ParseCriterion is the inverse of String.
func ParseCriterion(s string) (Criterion, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range criterionNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCriterion, s)
}

func (c Criterion) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Criterion) UnmarshalText(text []byte) error {
	v, err := ParseCriterion(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// HeadToHead reports whether the criterion only looks at games among the
// teams that are still tied. Such criteria cannot compare teams from
// different groups.
func (c Criterion) HeadToHead() bool {
	return c == HeadToHeadPoints || c == HeadToHeadGoalDiff || c == HeadToHeadGoalsFor
}

// FairPlayWeights turns a card record into fair play points. Weights are
// negative, so the cleaner record has the higher total.
type FairPlayWeights struct {
	Yellow          int
	IndirectRed     int
	DirectRed       int
	YellowAndDirect int
}

var (
	FifaFairPlay = FairPlayWeights{Yellow: -1, IndirectRed: -3, DirectRed: -4, YellowAndDirect: -5}
	// UEFA counts a direct red like a second yellow.
	UefaFairPlay = FairPlayWeights{Yellow: -1, IndirectRed: -3, DirectRed: -3, YellowAndDirect: -5}
)

func (w FairPlayWeights) Score(c models.Cards) int {
	return w.Yellow*c.Yellow + w.IndirectRed*c.IndirectRed + w.DirectRed*c.DirectRed + w.YellowAndDirect*c.YellowAndDirect
}

// ParseFairPlayWeights accepts "fifa" or "uefa".
func ParseFairPlayWeights(name string) (FairPlayWeights, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fifa":
		return FifaFairPlay, nil
	case "uefa":
		return UefaFairPlay, nil
	default:
		return FairPlayWeights{}, fmt.Errorf("%w: %q", ErrUnknownFairPlay, name)
	}
}

// Policy configures points per outcome and the tie-break order.
// Whatever the criteria, the resulting order is strict: teams that are
// still level at the end are ordered by TeamID.
type Policy struct {
	PointsForWin  models.Points
	PointsForDraw models.Points
	PointsForLoss models.Points

	Criteria []Criterion

	// ThirdPlaceCriteria ranks third-placed teams across groups. When
	// empty, Criteria without the head-to-head steps is used.
	ThirdPlaceCriteria []Criterion

	// Ranking feeds the TeamRank criterion. Unranked teams sort last.
	Ranking map[models.TeamID]models.TeamRank

	// FairPlayWeights feeds the FairPlay criterion. The zero value means
	// FifaFairPlay.
	FairPlayWeights FairPlayWeights
}

func (p Policy) fairPlay() FairPlayWeights {
	if p.FairPlayWeights == (FairPlayWeights{}) {
		return FifaFairPlay
	}
	return p.FairPlayWeights
}

// DefaultPolicy is 3/1/0 with points, goal difference and goals scored.
func DefaultPolicy() Policy {
	return Policy{
		PointsForWin:  models.NewPoints(3),
		PointsForDraw: models.NewPoints(1),
		PointsForLoss: models.NewPoints(0),
		Criteria:      []Criterion{Points, GoalDiff, GoalsFor},

		FairPlayWeights: FifaFairPlay,
	}
}

// Fifa2018Policy follows the 2018 World Cup group rules. Fair play is
// counted over all group games; TeamID stands in for the drawing of lots.
func Fifa2018Policy() Policy {
	p := DefaultPolicy()
	p.Criteria = []Criterion{
		Points, GoalDiff, GoalsFor,
		HeadToHeadPoints, HeadToHeadGoalDiff, HeadToHeadGoalsFor,
		FairPlay,
	}
	return p
}

// Euro2020Policy puts head-to-head before overall goal difference, then
// UEFA-weighted fair play, and ends on the UEFA coefficient ranking.
func Euro2020Policy(ranking map[models.TeamID]models.TeamRank) Policy {
	p := DefaultPolicy()
	p.Criteria = []Criterion{
		Points,
		HeadToHeadPoints, HeadToHeadGoalDiff, HeadToHeadGoalsFor,
		GoalDiff, GoalsFor, Wins,
		FairPlay,
		TeamRank,
	}
	p.ThirdPlaceCriteria = []Criterion{Points, GoalDiff, GoalsFor, Wins, FairPlay, TeamRank}
	p.Ranking = ranking
	p.FairPlayWeights = UefaFairPlay
	return p
}

// Preset returns a named policy: "default", "fifa2018" or "euro2020".
func Preset(name string, ranking map[models.TeamID]models.TeamRank) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		p := DefaultPolicy()
		p.Ranking = ranking
		return p, nil
	case "fifa2018":
		p := Fifa2018Policy()
		p.Ranking = ranking
		return p, nil
	case "euro2020":
		return Euro2020Policy(ranking), nil
	default:
		return Policy{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

// PolicyFromSettings starts from the preset named in the settings and
// overrides whatever the settings spell out.
func PolicyFromSettings(s *models.FormatSettings, ranking map[models.TeamID]models.TeamRank) (Policy, error) {
	if s == nil {
		return Preset("", ranking)
	}
	p, err := Preset(s.Preset, ranking)
	if err != nil {
		return Policy{}, err
	}
	if s.PointsForWin != nil {
		p.PointsForWin = models.NewPoints(*s.PointsForWin)
	}
	if s.PointsForDraw != nil {
		p.PointsForDraw = models.NewPoints(*s.PointsForDraw)
	}
	if s.PointsForLoss != nil {
		p.PointsForLoss = models.NewPoints(*s.PointsForLoss)
	}
	if len(s.Criteria) > 0 {
		if p.Criteria, err = parseCriteria(s.Criteria); err != nil {
			return Policy{}, err
		}
	}
	if len(s.ThirdPlaceCriteria) > 0 {
		if p.ThirdPlaceCriteria, err = parseCriteria(s.ThirdPlaceCriteria); err != nil {
			return Policy{}, err
		}
	}
	if s.FairPlayWeights != "" {
		if p.FairPlayWeights, err = ParseFairPlayWeights(s.FairPlayWeights); err != nil {
			return Policy{}, err
		}
	}
	return p, p.Validate()
}

func parseCriteria(names []string) ([]Criterion, error) {
	out := make([]Criterion, 0, len(names))
	for _, n := range names {
		c, err := ParseCriterion(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Validate rejects unknown or repeated criteria.
func (p Policy) Validate() error {
	check := func(list []Criterion, what string) error {
		seen := make(map[Criterion]bool, len(list))
		for _, c := range list {
			if _, ok := criterionNames[c]; !ok {
				return fmt.Errorf("%s: %w: %d", what, ErrUnknownCriterion, int(c))
			}
			if seen[c] {
				return fmt.Errorf("%s: %w: %s", what, ErrDuplicateCriterion, c)
			}
			seen[c] = true
		}
		return nil
	}
	if err := check(p.Criteria, "criteria"); err != nil {
		return err
	}
	return check(p.ThirdPlaceCriteria, "third place criteria")
}

// CompareOverall compares two rows by their full-table statistics only,
// returning a negative number when a ranks above b. Head-to-head criteria
// are skipped since they need the set of tied teams, so the result can
// disagree with the order Compute produces. Use Compute to rank a group.
func (p Policy) CompareOverall(a, b Standing) int {
	return p.compareWith(p.Criteria, a, b)
}

// CompareThirdPlace compares teams from different groups.
func (p Policy) CompareThirdPlace(a, b Standing) int {
	return p.compareWith(p.thirdPlaceCriteria(), a, b)
}

func (p Policy) thirdPlaceCriteria() []Criterion {
	if len(p.ThirdPlaceCriteria) > 0 {
		return p.ThirdPlaceCriteria
	}
	out := make([]Criterion, 0, len(p.Criteria))
	for _, c := range p.Criteria {
		if !c.HeadToHead() {
			out = append(out, c)
		}
	}
	return out
}

func (p Policy) compareWith(criteria []Criterion, a, b Standing) int {
	for _, c := range criteria {
		if c.HeadToHead() {
			continue
		}
		// higher is better for every key, so b before a
		if d := p.key(c, b.stats()).cmp(p.key(c, a.stats())); d != 0 {
			return d
		}
	}
	return compareTeamID(a.Team, b.Team)
}

func compareTeamID(a, b models.TeamID) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// sortKey is a criterion value where greater is better.
type sortKey struct {
	n      int64
	absent bool // unranked team under TeamRank
}

func (k sortKey) cmp(other sortKey) int {
	switch {
	case k.absent && other.absent:
		return 0
	case k.absent:
		return -1
	case other.absent:
		return 1
	case k.n < other.n:
		return -1
	case k.n > other.n:
		return 1
	default:
		return 0
	}
}

// key extracts the criterion value from precomputed stats. For the
// head-to-head criteria the caller passes stats restricted to the tied
// teams' mutual games.
func (p Policy) key(c Criterion, s teamStats) sortKey {
	switch c {
	case Points, HeadToHeadPoints:
		return sortKey{n: int64(s.points.Int())}
	case GoalDiff, HeadToHeadGoalDiff:
		return sortKey{n: int64(s.goalsFor.Sub(s.goalsAgainst).Int())}
	case GoalsFor, HeadToHeadGoalsFor:
		return sortKey{n: int64(s.goalsFor.Int())}
	case Wins:
		return sortKey{n: int64(s.wins.Int())}
	case FairPlay:
		return sortKey{n: int64(p.fairPlay().Score(s.cards))}
	case TeamRank:
		rank, ok := p.Ranking[s.team]
		if !ok {
			return sortKey{absent: true}
		}
		return sortKey{n: -int64(rank.Int())}
	default:
		return sortKey{}
	}
}
