package services

// Event types pushed to connected clients.
const (
	EventRoundUpdated     = "ROUND_UPDATED"
	EventStandingsUpdated = "STANDINGS_UPDATED"
	EventScheduleUpdated  = "SCHEDULE_UPDATED"
)

// Notifier pushes state-change events to connected clients. Implementations
// must not block the caller.
type Notifier interface {
	Broadcast(event string, payload interface{})
}

func notify(n Notifier, event string, payload interface{}) {
	if n != nil {
		n.Broadcast(event, payload)
	}
}
