package system

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/ecs/entity"
	"github.com/milk9111/hellshooter/prefabs"
)

// PickupSystem rolls heart and power-up spawns every tick, moves falling
// pickups and applies collected ones to the player.
type PickupSystem struct {
	cfg    *prefabs.Config
	rng    *rand.Rand
	player *PlayerSystem
}

func NewPickupSystem(cfg *prefabs.Config, rng *rand.Rand, player *PlayerSystem) *PickupSystem {
	return &PickupSystem{cfg: cfg, rng: rng, player: player}
}

func (s *PickupSystem) Update(w *ecs.World) {
	if w == nil || gameOver(w) {
		return
	}

	for _, eff := range consumeBonus(w, component.BonusHeart, component.BonusPowerUp) {
		switch eff {
		case component.BonusHeart:
			s.ForceSpawnHeart(w)
		case component.BonusPowerUp:
			s.ForceSpawnPowerUp(w)
		}
	}

	lives := 0
	if p, ok := findPlayer(w); ok {
		lives = p.Player.Lives
	}
	// Both rolls are drawn every tick so the sequence does not depend on
	// which caps are full.
	heartRoll := s.rng.Float64()
	powerRoll := s.rng.Float64()
	if heartRoll < s.HeartChance(w, lives) {
		s.ForceSpawnHeart(w)
	}
	if powerRoll < s.PowerUpChance(lives) {
		s.ForceSpawnPowerUp(w)
	}

	s.fall(w)
}

// HeartChance is the per-tick heart probability for the given lives,
// reduced while the boss is in an intense phase.
func (s *PickupSystem) HeartChance(w *ecs.World, lives int) float64 {
	chance := prefabs.Chance(s.cfg.Pickups.HeartChance, lives)
	if phase, ok := BossPhase(w); ok && phase.Intense() {
		chance *= s.cfg.Pickups.IntensePhaseFactor
	}
	return chance
}

func (s *PickupSystem) PowerUpChance(lives int) float64 {
	return prefabs.Chance(s.cfg.Pickups.PowerUpChance, lives)
}

// ForceSpawnHeart skips the roll but not the on-screen cap.
func (s *PickupSystem) ForceSpawnHeart(w *ecs.World) bool {
	if s.countKind(w, component.PickupHeart) >= s.cfg.Pickups.MaxHearts {
		return false
	}
	return s.spawn(w, component.PickupHeart, 0)
}

// ForceSpawnPowerUp skips the roll but not the on-screen cap. The buff kind
// is chosen uniformly.
func (s *PickupSystem) ForceSpawnPowerUp(w *ecs.World) bool {
	if s.countKind(w, component.PickupPowerUp) >= s.cfg.Pickups.MaxPowerUps {
		return false
	}
	kind := component.PowerUpKind(s.rng.Intn(int(component.PowerUpCount)))
	return s.spawn(w, component.PickupPowerUp, kind)
}

func (s *PickupSystem) countKind(w *ecs.World, kind component.PickupKind) int {
	n := 0
	ecs.ForEach(w, component.PickupComponent.Kind(), func(e ecs.Entity, p *component.Pickup) {
		if p.Kind == kind {
			n++
		}
	})
	return n
}

func (s *PickupSystem) spawn(w *ecs.World, kind component.PickupKind, power component.PowerUpKind) bool {
	spec := s.cfg.Pickups
	x := s.rng.Float64() * math.Max(0, s.cfg.Screen.Width-spec.Width)
	if _, err := entity.NewPickup(w, s.cfg, x, -spec.Height, kind, power); err != nil {
		fmt.Printf("pickup: spawn %s: %v\n", kind, err)
		return false
	}
	return true
}

func (s *PickupSystem) fall(w *ecs.World) {
	scale := w.Tick().TimeScale
	height := s.cfg.Screen.Height
	ecs.ForEach3(w,
		component.PickupComponent.Kind(),
		component.TransformComponent.Kind(),
		component.VelocityComponent.Kind(),
		func(e ecs.Entity, _ *component.Pickup, t *component.Transform, v *component.Velocity) {
			t.X += v.X * scale
			t.Y += v.Y * scale
			if t.Y > height {
				ecs.DestroyEntity(w, e)
			}
		})
}

// Collect applies pickup e to the player and removes it.
func (s *PickupSystem) Collect(w *ecs.World, e ecs.Entity) bool {
	p, ok := ecs.Get(w, e, component.PickupComponent.Kind())
	if !ok {
		return false
	}
	switch p.Kind {
	case component.PickupHeart:
		s.player.Heal(w)
	case component.PickupPowerUp:
		s.player.ActivatePowerUp(w, p.PowerUp)
	}
	ecs.DestroyEntity(w, e)
	ecs.PlaySound(w, "pickup")
	return true
}
