package pairing

import (
	"math/rand"

	"github.com/hokkyo/riichi-league/models"
)

// RandomArranger shuffles the whole pool uniformly and slices it into
// contiguous tables.
type RandomArranger struct{}

func NewRandomArranger() TableArranger {
	return &RandomArranger{}
}

func (a *RandomArranger) GetName() string { return PolicyRandom }

func (a *RandomArranger) Arrange(params ArrangeParams, rng *rand.Rand) []models.Table {
	size, count := params.geometry()

	ids := make([]int, len(params.Players))
	for i, p := range params.Players {
		ids[i] = p.ID
	}
	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	return chunkIntoTables(ids, size, count)
}
