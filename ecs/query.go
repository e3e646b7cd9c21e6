package ecs

import (
	"slices"

	"github.com/milk9111/hellshooter/ecs/component"
)

type kindID interface {
	ID() component.ComponentID
}

// snapshot copies the ids of the smallest requested store, sorted so that
// iteration order is stable no matter how the dense arrays were shuffled by
// removals. It returns nil when any store is missing.
func snapshot(w *World, kinds ...kindID) []int {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	var smallest *SparseSet
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		if smallest == nil || len(s.ids) < len(smallest.ids) {
			smallest = s
		}
	}
	ids := make([]int, 0, len(smallest.ids))
	for _, id := range smallest.ids {
		if hasAll(w, id, kinds) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func hasAll(w *World, id int, kinds []kindID) bool {
	for _, k := range kinds {
		if !w.store(k.ID(), false).Has(id) {
			return false
		}
	}
	return true
}

// Query returns the live entities holding every kind.
func (w *World) Query(kinds ...kindID) []Entity {
	ids := snapshot(w, kinds...)
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := w.entities.handle(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// ForEach visits every entity with kind. The entity list is captured before
// the first callback, so callbacks may destroy entities; destroyed entities
// are skipped rather than visited with stale data.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	for _, e := range w.Query(ka) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(ka, kb) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range w.Query(ka, kb, kc) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	for _, e := range w.Query(ka, kb, kc, kd) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		d, okD := Get(w, e, kd)
		if !okA || !okB || !okC || !okD {
			continue
		}
		fn(e, a, b, c, d)
	}
}

// First returns the lowest-id entity holding kind. Singletons such as the
// player or the game state are looked up this way.
func First[A any](w *World, ka component.ComponentKind[A]) (Entity, *A, bool) {
	for _, e := range w.Query(ka) {
		if a, ok := Get(w, e, ka); ok {
			return e, a, true
		}
	}
	return 0, nil, false
}

// Count returns how many live entities hold kind.
func Count[A any](w *World, ka component.ComponentKind[A]) int {
	if w == nil {
		return 0
	}
	return len(w.store(ka.ID(), false).Entities())
}
