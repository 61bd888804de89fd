package engine

// EventType names a status event emitted to the host.
type EventType string

const (
	EventFrameLoaded   EventType = "frame_loaded"
	EventCoinCollected EventType = "coin_collected"
	EventEnemyStomped  EventType = "enemy_stomped"
	EventPlayerDamaged EventType = "player_damaged"
	EventSessionEnded  EventType = "session_ended"
)

// Event is a status notification produced during a tick.
type Event struct {
	Type     EventType
	Tick     int
	Frame    int
	EntityID string
	Data     any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
