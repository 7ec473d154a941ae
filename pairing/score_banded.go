package pairing

import (
	"math/rand"
	"sort"

	"github.com/hokkyo/riichi-league/models"
)

// ScoreBandedArranger ranks players by total score and randomizes order only
// among players tied on the exact same total. The top tableSize players always
// form table 1, the next band table 2, and so on.
type ScoreBandedArranger struct{}

func NewScoreBandedArranger() TableArranger {
	return &ScoreBandedArranger{}
}

func (a *ScoreBandedArranger) GetName() string { return PolicyScore }

func (a *ScoreBandedArranger) Arrange(params ArrangeParams, rng *rand.Rand) []models.Table {
	size, count := params.geometry()

	bands := make(map[models.Score][]int)
	for _, p := range params.Players {
		bands[p.TotalScore] = append(bands[p.TotalScore], p.ID)
	}

	totals := make([]models.Score, 0, len(bands))
	for total := range bands {
		totals = append(totals, total)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i] > totals[j] })

	ordered := make([]int, 0, len(params.Players))
	for _, total := range totals {
		band := bands[total]
		rng.Shuffle(len(band), func(i, j int) {
			band[i], band[j] = band[j], band[i]
		})
		ordered = append(ordered, band...)
	}
	return chunkIntoTables(ordered, size, count)
}
