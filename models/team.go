package models

import "strconv"

// TeamID identifies a national team. Ordering by TeamID is the last-resort
// tie-break in every ranking.
type TeamID int

func (id TeamID) String() string { return strconv.Itoa(int(id)) }

type Team struct {
	ID   TeamID   `json:"id" db:"id"`
	Name string   `json:"name" db:"name"`
	Code string   `json:"code" db:"code"` // FIFA three-letter code
	Rank TeamRank `json:"rank" db:"rank_"`
}

// Ranking maps each team to its seeding rank.
func Ranking(teams []Team) map[TeamID]TeamRank {
	ranking := make(map[TeamID]TeamRank, len(teams))
	for _, t := range teams {
		if t.Rank.Int() > 0 {
			ranking[t.ID] = t.Rank
		}
	}
	return ranking
}
