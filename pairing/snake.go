package pairing

import (
	"math/rand"
	"sort"

	"github.com/hokkyo/riichi-league/models"
)

// SnakeArranger seats players by rank in alternating direction so table
// strength stays balanced: with two tables of four the top eight ranks land
// as {1,4,5,8} and {2,3,6,7}.
type SnakeArranger struct{}

func NewSnakeArranger() TableArranger {
	return &SnakeArranger{}
}

func (a *SnakeArranger) GetName() string { return PolicySequential }

func (a *SnakeArranger) Arrange(params ArrangeParams, _ *rand.Rand) []models.Table {
	size, count := params.geometry()

	ranked := make([]models.Player, len(params.Players))
	copy(ranked, params.Players)
	// Stable sort: players tied on total keep their roster order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})

	tables := make([]models.Table, 0, count)
	for t := 0; t < count; t++ {
		seats := make([]int, 0, size)
		for r := 0; r < size; r++ {
			var idx int
			if r%2 == 0 {
				idx = t + r*count
			} else {
				idx = (count - 1 - t) + r*count
			}
			if idx < len(ranked) {
				seats = append(seats, ranked[idx].ID)
			}
		}
		tables = append(tables, newTable(t+1, seats))
	}
	return tables
}
