package standings

import (
	"slices"

	"github.com/Dosada05/tournament-predictor/models"
)

// ThirdPlaced ranks the teams in third position of the given tables, best
// first. The third-place comparator is applied afresh to the full-table
// statistics; positions are never compared across groups. Tables with
// fewer than three teams contribute nothing.
func ThirdPlaced(tables []Table, policy Policy) []Standing {
	thirds := make([]Standing, 0, len(tables))
	for _, t := range tables {
		if s, ok := t.At(models.PositionThird); ok {
			thirds = append(thirds, s)
		}
	}
	slices.SortFunc(thirds, policy.CompareThirdPlace)
	return thirds
}
