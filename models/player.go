package models

import "fmt"

// DefaultRosterSize is the size of the fixed starting roster.
const DefaultRosterSize = 8

// Player is a roster entry. Players are created at reset or import and are
// never deleted, only renamed or zeroed.
type Player struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	TotalScore        Score   `json:"totalScore"`
	Scores            []Score `json:"scores"`
	HasFilledSchedule bool    `json:"hasFilledSchedule"`
}

// DefaultRoster returns the eight player starting roster with zeroed standings.
func DefaultRoster() []Player {
	players := make([]Player, 0, DefaultRosterSize)
	for i := 1; i <= DefaultRosterSize; i++ {
		players = append(players, Player{
			ID:     i,
			Name:   fmt.Sprintf("Player %d", i),
			Scores: []Score{},
		})
	}
	return players
}
