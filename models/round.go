package models

import "time"

// MaxRounds is the fixed length of a league season.
const MaxRounds = 6

// Table is a four seat grouping within a round that plays one self-contained
// match.
type Table struct {
	TableID     int            `json:"tableId"`
	Players     []int          `json:"players"`
	Scores      map[int]Score  `json:"scores"`
	Ratings     map[int]string `json:"ratings"`
	RecordURL   string         `json:"recordUrl"`
	CommonTimes []TimeSlot     `json:"commonTimes"`
}

// Round holds one round's table assignments and recorded results.
type Round struct {
	Number      int       `json:"round"`
	Tables      []Table   `json:"tables"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NormalizeRound fills in fields older stored rounds may lack: nil score and
// rating maps and missing commonTimes. It is applied once when a round is read
// from the store so the rest of the code can assume a fully shaped value.
func NormalizeRound(r Round) Round {
	for i := range r.Tables {
		t := &r.Tables[i]
		if t.Scores == nil {
			t.Scores = make(map[int]Score, len(t.Players))
			for _, id := range t.Players {
				t.Scores[id] = 0
			}
		}
		if t.Ratings == nil {
			t.Ratings = make(map[int]string, len(t.Players))
			for _, id := range t.Players {
				t.Ratings[id] = ""
			}
		}
		if t.CommonTimes == nil {
			t.CommonTimes = []TimeSlot{}
		}
	}
	return r
}
