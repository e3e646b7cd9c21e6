package system

import (
	"fmt"
	"math"

	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/ecs/entity"
	"github.com/milk9111/hellshooter/prefabs"
)

// ComboSystem tracks the kill streak. Kills are registered by the collision
// system; Update only handles the idle decay.
type ComboSystem struct {
	cfg *prefabs.Config
}

func NewComboSystem(cfg *prefabs.Config) *ComboSystem {
	return &ComboSystem{cfg: cfg}
}

func (s *ComboSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, combo, ok := ecs.First(w, component.ComboComponent.Kind())
	if !ok || combo.Streak == 0 {
		return
	}
	if w.Tick().NowMS-combo.LastKillMS > s.cfg.Combo.WindowMS {
		s.reset(combo)
	}
}

func (s *ComboSystem) reset(combo *component.Combo) {
	combo.Streak = 0
	combo.Multiplier = 1
	combo.Text = ""
	combo.Color = ""
	combo.LastMilestone = 0
}

// RegisterKill extends or restarts the streak at time nowMS and returns the
// multiplier that applies to this kill.
func (s *ComboSystem) RegisterKill(w *ecs.World, nowMS float64) float64 {
	_, combo, ok := ecs.First(w, component.ComboComponent.Kind())
	if !ok {
		return 1
	}
	if combo.Streak == 0 || nowMS-combo.LastKillMS > s.cfg.Combo.WindowMS {
		s.reset(combo)
		combo.Streak = 1
	} else {
		combo.Streak++
	}
	combo.LastKillMS = nowMS

	tier := s.cfg.ComboTier(combo.Streak)
	combo.Multiplier = tier.Multiplier
	combo.Text = tier.Text
	combo.Color = tier.Color.Name()

	s.milestone(w, combo)
	return combo.Multiplier
}

// milestone fires the first matching bonus for the current streak value,
// at most once per value.
func (s *ComboSystem) milestone(w *ecs.World, combo *component.Combo) {
	if combo.Streak == combo.LastMilestone {
		return
	}
	for _, m := range s.cfg.Combo.Milestones {
		if m.Every <= 0 || combo.Streak%m.Every != 0 {
			continue
		}
		effect, ok := component.ParseBonusEffect(m.Effect)
		if !ok {
			continue
		}
		combo.LastMilestone = combo.Streak
		if _, err := entity.NewBonusRequest(w, effect); err != nil {
			fmt.Printf("combo: bonus %s: %v\n", effect, err)
		}
		return
	}
}

// Points converts a base score and multiplier to awarded points.
func Points(base int, multiplier float64) int {
	if multiplier <= 0 {
		multiplier = 1
	}
	return int(math.Round(float64(base) * multiplier))
}
