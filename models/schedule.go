package models

import "time"

// Schedule stores one player's selected availability slots as derived slot
// keys (see TimeSlot.Key). The whole set is replaced on save.
type Schedule struct {
	PlayerID       int       `json:"playerId"`
	AvailableTimes []string  `json:"availableTimes"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
