package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// Event types pushed by gameplay systems and drained by the session after
// every tick.
const (
	EventSound     = "sound"
	EventLevelUp   = "level_up"
	EventBossPhase = "boss_phase"
	EventVictory   = "victory"
	EventGameOver  = "game_over"
)

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

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}

// PlaySound queues a named sound trigger.
func PlaySound(w *World, name string) {
	if w == nil || name == "" {
		return
	}
	w.events.Push(Event{Type: EventSound, Data: name})
}

// Emit queues a gameplay event.
func Emit(w *World, typ string, data any) {
	if w == nil {
		return
	}
	w.events.Push(Event{Type: typ, Data: data})
}
