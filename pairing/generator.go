package pairing

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/hokkyo/riichi-league/models"
)

var ErrUnknownPolicy = errors.New("unknown pairing policy")

// Pairing policies accepted over the API.
const (
	PolicySequential = "sequential"
	PolicyRandom     = "random"
	PolicyScore      = "score"
)

const (
	DefaultTableSize  = 4
	DefaultTableCount = 2
)

// ArrangeParams carries the player pool and table geometry for one pairing.
type ArrangeParams struct {
	Players    []models.Player
	TableSize  int
	TableCount int
}

func (p ArrangeParams) geometry() (size, count int) {
	size, count = p.TableSize, p.TableCount
	if size <= 0 {
		size = DefaultTableSize
	}
	if count <= 0 {
		count = DefaultTableCount
	}
	return size, count
}

// TableArranger partitions a player pool into tables. Implementations must not
// mutate the input pool. Randomized arrangers draw from the supplied source so
// callers can make pairing deterministic.
type TableArranger interface {
	Arrange(params ArrangeParams, rng *rand.Rand) []models.Table

	GetName() string
}

// Get returns an arranger by policy name.
func Get(policy string) (TableArranger, error) {
	switch policy {
	case PolicySequential:
		return NewSnakeArranger(), nil
	case PolicyRandom:
		return NewRandomArranger(), nil
	case PolicyScore:
		return NewScoreBandedArranger(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}

func newTable(id int, seats []int) models.Table {
	return models.Table{
		TableID:     id,
		Players:     seats,
		Scores:      map[int]models.Score{},
		Ratings:     map[int]string{},
		CommonTimes: []models.TimeSlot{},
	}
}

// chunkIntoTables slices an ordered id sequence into contiguous tables.
// Trailing tables come up short when the pool is not an exact multiple;
// no padding, no error.
func chunkIntoTables(ordered []int, size, count int) []models.Table {
	tables := make([]models.Table, 0, count)
	for t := 0; t < count; t++ {
		seats := make([]int, 0, size)
		for i := 0; i < size; i++ {
			idx := t*size + i
			if idx < len(ordered) {
				seats = append(seats, ordered[idx])
			}
		}
		tables = append(tables, newTable(t+1, seats))
	}
	return tables
}
