package pairing

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hokkyo/riichi-league/models"
)

func rankedPool(n int) []models.Player {
	players := make([]models.Player, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, models.Player{
			ID:         i,
			Name:       fmt.Sprintf("Player %d", i),
			TotalScore: models.Score((n - i + 1) * 100), // id 1 is rank 1
		})
	}
	return players
}

func seatedIDs(tables []models.Table) []int {
	var ids []int
	for _, t := range tables {
		ids = append(ids, t.Players...)
	}
	return ids
}

func TestSnakeSeeding(t *testing.T) {
	arranger := NewSnakeArranger()
	tables := arranger.Arrange(ArrangeParams{Players: rankedPool(8)}, nil)

	require.Len(t, tables, 2)
	assert.ElementsMatch(t, []int{1, 4, 5, 8}, tables[0].Players)
	assert.ElementsMatch(t, []int{2, 3, 6, 7}, tables[1].Players)
	assert.Equal(t, 1, tables[0].TableID)
	assert.Equal(t, 2, tables[1].TableID)
}

func TestSnakeStableOnTies(t *testing.T) {
	// All tied: ranking must preserve roster order, so the snake pattern
	// falls on the ids directly.
	players := rankedPool(8)
	for i := range players {
		players[i].TotalScore = 0
	}

	tables := NewSnakeArranger().Arrange(ArrangeParams{Players: players}, nil)
	assert.Equal(t, []int{1, 4, 5, 8}, tables[0].Players)
	assert.Equal(t, []int{2, 3, 6, 7}, tables[1].Players)
}

func TestSnakeDoesNotMutateInput(t *testing.T) {
	players := rankedPool(8)
	players[0].TotalScore = -100 // rank last

	NewSnakeArranger().Arrange(ArrangeParams{Players: players}, nil)
	assert.Equal(t, 1, players[0].ID, "input order must be untouched")
	assert.Equal(t, models.Score(-100), players[0].TotalScore)
}

func TestPartitionCompleteness(t *testing.T) {
	arrangers := []TableArranger{
		NewSnakeArranger(),
		NewRandomArranger(),
		NewScoreBandedArranger(),
	}

	for _, arranger := range arrangers {
		for _, poolSize := range []int{8, 7, 5, 12} {
			name := fmt.Sprintf("%s/%d players", arranger.GetName(), poolSize)
			t.Run(name, func(t *testing.T) {
				rng := rand.New(rand.NewSource(7))
				count := (poolSize + DefaultTableSize - 1) / DefaultTableSize
				tables := arranger.Arrange(ArrangeParams{
					Players:    rankedPool(poolSize),
					TableCount: count,
				}, rng)

				seated := seatedIDs(tables)
				require.Len(t, seated, poolSize, "every player seated exactly once")
				seen := make(map[int]bool)
				for _, id := range seated {
					assert.False(t, seen[id], "player %d seated twice", id)
					seen[id] = true
				}
				for _, tbl := range tables {
					assert.LessOrEqual(t, len(tbl.Players), DefaultTableSize)
				}
			})
		}
	}
}

func TestRandomIsSeedDeterministic(t *testing.T) {
	params := ArrangeParams{Players: rankedPool(8)}

	first := NewRandomArranger().Arrange(params, rand.New(rand.NewSource(42)))
	second := NewRandomArranger().Arrange(params, rand.New(rand.NewSource(42)))

	require.Equal(t, first, second)
}

func TestScoreBandedTopBandFormsFirstTable(t *testing.T) {
	// Four players tied on 500, four tied on 100: the top band must always be
	// table 1 no matter the shuffle.
	players := rankedPool(8)
	for i := range players {
		if i < 4 {
			players[i].TotalScore = 500
		} else {
			players[i].TotalScore = 100
		}
	}

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		tables := NewScoreBandedArranger().Arrange(ArrangeParams{Players: players}, rng)
		require.Len(t, tables, 2)
		assert.ElementsMatch(t, []int{1, 2, 3, 4}, tables[0].Players, "seed %d", seed)
		assert.ElementsMatch(t, []int{5, 6, 7, 8}, tables[1].Players, "seed %d", seed)
	}
}

func TestScoreBandedTieIsolation(t *testing.T) {
	// A,B tied on top, C,D tied below them, the rest lower still. A and B may
	// swap between themselves but nobody from outside the band may intrude.
	players := rankedPool(8)
	scores := []models.Score{800, 800, 600, 600, 200, 150, 100, 50}
	for i := range players {
		players[i].TotalScore = scores[i]
	}

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		tables := NewScoreBandedArranger().Arrange(ArrangeParams{Players: players}, rng)
		ordered := seatedIDs(tables)

		assert.ElementsMatch(t, []int{1, 2}, ordered[0:2], "seed %d: top tie band", seed)
		assert.ElementsMatch(t, []int{3, 4}, ordered[2:4], "seed %d: second tie band", seed)
		assert.Equal(t, []int{5, 6, 7, 8}, ordered[4:8], "seed %d: untied tail keeps rank order", seed)
	}
}

func TestGetPolicy(t *testing.T) {
	for _, policy := range []string{PolicySequential, PolicyRandom, PolicyScore} {
		arranger, err := Get(policy)
		require.NoError(t, err)
		assert.Equal(t, policy, arranger.GetName())
	}

	_, err := Get("swiss")
	assert.Error(t, err)
}
