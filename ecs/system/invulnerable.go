package system

import (
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
)

// InvulnerableSystem counts down damage immunity. Frames == 0 means the
// immunity lasts until something removes the component.
type InvulnerableSystem struct{}

func NewInvulnerableSystem() *InvulnerableSystem { return &InvulnerableSystem{} }

func (s *InvulnerableSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		if inv.Frames <= 0 {
			return
		}
		inv.Frames--
		if inv.Frames == 0 {
			_ = ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		}
	})
}
