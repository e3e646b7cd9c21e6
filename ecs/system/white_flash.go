package system

import (
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
)

type WhiteFlashSystem struct{}

func NewWhiteFlashSystem() *WhiteFlashSystem { return &WhiteFlashSystem{} }

func (s *WhiteFlashSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.WhiteFlashComponent.Kind(), func(e ecs.Entity, wf *component.WhiteFlash) {
		interval := max(wf.Interval, 1)
		wf.Timer++
		if wf.Timer >= interval {
			wf.Timer = 0
			wf.On = !wf.On
			wf.Frames -= interval
		}
		if wf.Frames <= 0 {
			ecs.Remove(w, e, component.WhiteFlashComponent.Kind())
		}
	})
}
