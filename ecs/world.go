package ecs

import "github.com/milk9111/hellshooter/ecs/component"

// Tick is the per-frame world state every system reads. The session sets
// Frame and NowMS before systems run; the time scale system owns TimeScale.
type Tick struct {
	Frame     int
	NowMS     float64
	TimeScale float64
}

// World owns entities, components, and the frame event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	tick     Tick
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]*SparseSet),
		tick:   Tick{TimeScale: 1},
	}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Tick returns the state for the frame being simulated.
func (w *World) Tick() Tick {
	if w == nil {
		return Tick{TimeScale: 1}
	}
	return w.tick
}

// SetTick replaces the per-frame state. A non-positive time scale is
// treated as normal speed.
func (w *World) SetTick(t Tick) {
	if w == nil {
		return
	}
	if t.TimeScale <= 0 {
		t.TimeScale = 1
	}
	w.tick = t
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its id. It returns
// false when e was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	id := int(e.id())
	for _, s := range w.stores {
		s.Remove(id)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.live()
}

// Clear destroys every entity and drops pending events.
func Clear(w *World) {
	if w == nil {
		return
	}
	for _, e := range w.entities.live() {
		DestroyEntity(w, e)
	}
	w.events.flush()
}
