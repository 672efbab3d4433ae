// Package standings computes group tables from raw game results.
//
// Nothing is stored: every call derives the table from the group's games,
// so a table can never drift from the results it was built from.
package standings

import (
	"slices"

	"github.com/Dosada05/tournament-predictor/models"
)

// Standing is one row of a group table.
type Standing struct {
	Team         models.TeamID    `json:"team_id"`
	Position     models.Position  `json:"position"`
	Played       models.GameCount `json:"played"`
	Wins         models.GameCount `json:"wins"`
	Draws        models.GameCount `json:"draws"`
	Losses       models.GameCount `json:"losses"`
	Points       models.Points    `json:"points"`
	GoalsFor     models.GoalCount `json:"goals_for"`
	GoalsAgainst models.GoalCount `json:"goals_against"`
	GoalDiff     models.GoalDiff  `json:"goal_diff"`
	Cards        models.Cards     `json:"cards"`
	FairPlay     int              `json:"fair_play"`
}

func (s Standing) stats() teamStats {
	return teamStats{
		team:         s.Team,
		played:       s.Played,
		wins:         s.Wins,
		draws:        s.Draws,
		losses:       s.Losses,
		points:       s.Points,
		goalsFor:     s.GoalsFor,
		goalsAgainst: s.GoalsAgainst,
		cards:        s.Cards,
	}
}

// Table is a computed group table together with whether the group has
// finished. Only finished groups feed the playoff by default.
type Table struct {
	Group     models.GroupID `json:"group"`
	Standings []Standing     `json:"standings"`
	Complete  bool           `json:"complete"`
}

// At returns the standing at a 1-based position.
func (t Table) At(position int) (Standing, bool) {
	if position < 1 || position > len(t.Standings) {
		return Standing{}, false
	}
	return t.Standings[position-1], true
}

type teamStats struct {
	team         models.TeamID
	played       models.GameCount
	wins         models.GameCount
	draws        models.GameCount
	losses       models.GameCount
	points       models.Points
	goalsFor     models.GoalCount
	goalsAgainst models.GoalCount
	cards        models.Cards
}

// Compute orders the teams of a group according to the policy. A group
// without games has no teams and yields an empty table; a group without
// results orders its teams by TeamID.
func Compute(group models.Group, policy Policy) []Standing {
	teams := group.TeamIDs()
	if len(teams) == 0 {
		return []Standing{}
	}
	played := group.PlayedGames()
	all := accumulate(teams, played, policy)

	order := slices.Clone(teams)
	slices.Sort(order)

	ordered := rank(order, all, played, policy)

	out := make([]Standing, len(ordered))
	for i, id := range ordered {
		s := all[id]
		out[i] = Standing{
			Team:         id,
			Position:     models.NewPosition(i + 1),
			Played:       s.played,
			Wins:         s.wins,
			Draws:        s.draws,
			Losses:       s.losses,
			Points:       s.points,
			GoalsFor:     s.goalsFor,
			GoalsAgainst: s.goalsAgainst,
			GoalDiff:     s.goalsFor.Sub(s.goalsAgainst),
			Cards:        s.cards,
			FairPlay:     policy.fairPlay().Score(s.cards),
		}
	}
	return out
}

// ComputeTable wraps Compute with the group's completion state.
func ComputeTable(group models.Group, policy Policy) Table {
	return Table{
		Group:     group.ID(),
		Standings: Compute(group, policy),
		Complete:  group.IsComplete(),
	}
}

// accumulate sums the stats of the played games for the given teams.
// Games involving other teams are ignored.
func accumulate(teams []models.TeamID, games []models.PlayedGame, policy Policy) map[models.TeamID]teamStats {
	stats := make(map[models.TeamID]teamStats, len(teams))
	for _, id := range teams {
		stats[id] = teamStats{team: id}
	}
	for _, g := range games {
		home, okHome := stats[g.Home]
		away, okAway := stats[g.Away]
		if !okHome || !okAway {
			continue
		}
		home.played, away.played = home.played.Inc(), away.played.Inc()
		home.goalsFor = home.goalsFor.Add(g.HomeGoals)
		home.goalsAgainst = home.goalsAgainst.Add(g.AwayGoals)
		away.goalsFor = away.goalsFor.Add(g.AwayGoals)
		away.goalsAgainst = away.goalsAgainst.Add(g.HomeGoals)
		home.cards = home.cards.Add(g.HomeCards)
		away.cards = away.cards.Add(g.AwayCards)

		switch g.Outcome() {
		case models.HomeWin:
			home.wins, away.losses = home.wins.Inc(), away.losses.Inc()
			home.points = home.points.Add(policy.PointsForWin)
			away.points = away.points.Add(policy.PointsForLoss)
		case models.AwayWin:
			away.wins, home.losses = away.wins.Inc(), home.losses.Inc()
			away.points = away.points.Add(policy.PointsForWin)
			home.points = home.points.Add(policy.PointsForLoss)
		case models.Draw:
			home.draws, away.draws = home.draws.Inc(), away.draws.Inc()
			home.points = home.points.Add(policy.PointsForDraw)
			away.points = away.points.Add(policy.PointsForDraw)
		}
		stats[g.Home], stats[g.Away] = home, away
	}
	return stats
}

// rank refines tiers of tied teams one criterion at a time. A tier of one
// team is final; the remaining ties are broken by TeamID, which is the
// order the tiers are kept in.
func rank(order []models.TeamID, all map[models.TeamID]teamStats, played []models.PlayedGame, policy Policy) []models.TeamID {
	tiers := [][]models.TeamID{order}
	for _, c := range policy.Criteria {
		if isStrict(tiers) {
			break
		}
		next := make([][]models.TeamID, 0, len(tiers))
		for _, tier := range tiers {
			if len(tier) == 1 {
				next = append(next, tier)
				continue
			}
			stats := all
			if c.HeadToHead() {
				stats = accumulate(tier, played, policy)
			}
			next = append(next, split(tier, c, stats, policy)...)
		}
		tiers = next
	}
	out := make([]models.TeamID, 0, len(order))
	for _, tier := range tiers {
		out = append(out, tier...)
	}
	return out
}

// split sorts a tier by one criterion (best first, TeamID within equal
// keys) and cuts it wherever the key changes.
func split(tier []models.TeamID, c Criterion, stats map[models.TeamID]teamStats, policy Policy) [][]models.TeamID {
	sorted := slices.Clone(tier)
	slices.SortStableFunc(sorted, func(a, b models.TeamID) int {
		return policy.key(c, stats[b]).cmp(policy.key(c, stats[a]))
	})
	out := make([][]models.TeamID, 0, len(sorted))
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i == len(sorted) || policy.key(c, stats[sorted[i]]).cmp(policy.key(c, stats[sorted[start]])) != 0 {
			out = append(out, sorted[start:i])
			start = i
		}
	}
	return out
}

func isStrict(tiers [][]models.TeamID) bool {
	for _, t := range tiers {
		if len(t) > 1 {
			return false
		}
	}
	return true
}
