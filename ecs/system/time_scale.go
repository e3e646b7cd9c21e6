package system

import (
	"github.com/milk9111/hellshooter/common"
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/prefabs"
)

// TimeScaleSystem owns slow motion. It runs first so every later system
// reads the same factor from the world tick.
type TimeScaleSystem struct {
	cfg *prefabs.Config
}

func NewTimeScaleSystem(cfg *prefabs.Config) *TimeScaleSystem {
	return &TimeScaleSystem{cfg: cfg}
}

func (s *TimeScaleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, ts, ok := ecs.First(w, component.TimeScaleComponent.Kind())
	if !ok {
		return
	}

	if len(consumeBonus(w, component.BonusSlowMotion)) > 0 {
		ts.Factor = common.Clamp(s.cfg.SlowMotion.Factor, 0.05, 1)
		ts.Frames = s.cfg.SlowMotion.Frames
		ecs.PlaySound(w, "slow_motion")
	}

	factor := 1.0
	if ts.Frames > 0 {
		factor = ts.Factor
		ts.Frames--
		if ts.Frames == 0 {
			ts.Factor = 1
		}
	}

	tick := w.Tick()
	tick.TimeScale = factor
	w.SetTick(tick)
}
