package models

import "time"

// Snapshot is a full-state export of the league. On import, nil groups leave
// the matching entities untouched.
type Snapshot struct {
	Players      []Player   `json:"players,omitempty"`
	Games        []Round    `json:"games,omitempty"`
	Schedules    []Schedule `json:"schedules,omitempty"`
	CurrentRound *int       `json:"currentRound,omitempty"`
	ExportTime   time.Time  `json:"exportTime"`
}
