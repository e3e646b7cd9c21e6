package system

import (
	"fmt"
	"math"

	"github.com/milk9111/hellshooter/common"
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/ecs/entity"
	"github.com/milk9111/hellshooter/prefabs"
)

// PlayerSystem moves the ship from input intent, ticks power-up timers and
// fires bullets. Damage and special charge are applied through its methods
// by the systems that detect them.
type PlayerSystem struct {
	cfg *prefabs.Config
}

func NewPlayerSystem(cfg *prefabs.Config) *PlayerSystem {
	return &PlayerSystem{cfg: cfg}
}

func (s *PlayerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	in, ok := ecs.Get(w, p.Entity, component.InputComponent.Kind())
	if !ok {
		in = &component.Input{}
	}

	dx := common.Clamp(in.MoveX, -1, 1)*p.Player.Speed + common.Finite(in.DragDX, 0)
	dy := common.Clamp(in.MoveY, -1, 1)*p.Player.Speed + common.Finite(in.DragDY, 0)
	p.Transform.X = common.Clamp(p.Transform.X+dx, 0, s.cfg.Screen.Width-p.Size.W)
	p.Transform.Y = common.Clamp(p.Transform.Y+dy, 0, s.cfg.Screen.Height-p.Size.H)

	for k := range p.Player.PowerUps {
		if p.Player.PowerUps[k] > 0 {
			p.Player.PowerUps[k]--
		}
	}

	if p.Player.ShotCooldown > 0 {
		p.Player.ShotCooldown--
	}
	if in.Shoot {
		s.TryShoot(w)
	}
}

// ShotCooldown returns the frames between shots for a level, shortened while
// rapid fire is active.
func (s *PlayerSystem) ShotCooldown(level int, rapid bool) int {
	spec := s.cfg.Player
	cd := spec.BaseShotCooldown - spec.CooldownPerLevel*(level-1)
	if cd < spec.MinShotCooldown {
		cd = spec.MinShotCooldown
	}
	if rapid {
		factor := s.cfg.PowerUps.RapidFire.CooldownFactor
		if factor > 0 {
			cd = int(math.Round(float64(cd) * factor))
		}
	}
	if cd < 1 {
		cd = 1
	}
	return cd
}

// TryShoot fires when the cooldown has elapsed. It reports whether bullets
// were spawned.
func (s *PlayerSystem) TryShoot(w *ecs.World) bool {
	p, ok := findPlayer(w)
	if !ok || p.Player.ShotCooldown > 0 {
		return false
	}
	level := 1
	if lvl, ok := levelState(w); ok {
		level = lvl.Level
	}

	spec := s.cfg.Player
	pu := s.cfg.PowerUps
	c := p.Center()
	top := p.Transform.Y

	angles := []float64{0}
	if p.Player.Active(component.PowerUpWideShot) && pu.WideShot.Bullets > 1 {
		n := pu.WideShot.Bullets
		spread := common.DegToRad(pu.WideShot.SpreadDeg)
		angles = angles[:0]
		for i := 0; i < n; i++ {
			angles = append(angles, -spread/2+spread*float64(i)/float64(n-1))
		}
	}
	explosive := p.Player.Active(component.PowerUpExplosive)
	radius := 0.0
	if explosive {
		radius = pu.Explosive.Radius
	}

	for _, a := range angles {
		vx := math.Sin(a) * spec.BulletSpeed
		vy := -math.Cos(a) * spec.BulletSpeed
		if _, err := entity.NewPlayerBullet(w, s.cfg, c.X, top, vx, vy, explosive, radius); err != nil {
			fmt.Printf("player: shoot: %v\n", err)
			return false
		}
	}
	p.Player.ShotCooldown = s.ShotCooldown(level, p.Player.Active(component.PowerUpRapidFire))
	ecs.PlaySound(w, "shoot")
	return true
}

// TakeDamage removes one life unless the player is invulnerable or
// shielded. It reports whether the hit landed. Reaching zero lives ends the
// game exactly once.
func (s *PlayerSystem) TakeDamage(w *ecs.World) bool {
	if gameOver(w) {
		return false
	}
	p, ok := findPlayer(w)
	if !ok {
		return false
	}
	if ecs.Has(w, p.Entity, component.InvulnerableComponent.Kind()) || p.Player.Active(component.PowerUpShield) {
		return false
	}

	p.Player.Lives = common.ClampInt(p.Player.Lives-1, 0, p.Player.MaxLives)
	spec := s.cfg.Player
	_ = ecs.Add(w, p.Entity, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: spec.InvulnerableFrames})
	_ = ecs.Add(w, p.Entity, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{
		Frames:   spec.FlashFrames,
		Interval: spec.FlashInterval,
		On:       true,
	})
	ecs.PlaySound(w, "damage")

	if p.Player.Lives == 0 {
		EndGame(w, false)
	}
	return true
}

// OnKill charges the special attack. It returns true when the charge
// reached the threshold; the caller then runs the special attack.
func (s *PlayerSystem) OnKill(w *ecs.World) bool {
	p, ok := findPlayer(w)
	if !ok {
		return false
	}
	threshold := s.cfg.Player.SpecialThreshold
	if threshold <= 0 {
		return false
	}
	p.Player.SpecialCharge++
	if p.Player.SpecialCharge < threshold {
		return false
	}
	p.Player.SpecialCharge = 0
	return true
}

// Heal adds one life, clamped to the maximum.
func (s *PlayerSystem) Heal(w *ecs.World) {
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	p.Player.Lives = common.ClampInt(p.Player.Lives+1, 0, p.Player.MaxLives)
}

// ActivatePowerUp starts kind and cancels whatever buff was running.
func (s *PlayerSystem) ActivatePowerUp(w *ecs.World, kind component.PowerUpKind) {
	p, ok := findPlayer(w)
	if !ok || kind < 0 || kind >= component.PowerUpCount {
		return
	}
	for k := range p.Player.PowerUps {
		p.Player.PowerUps[k] = 0
	}
	p.Player.PowerUps[kind] = s.duration(kind)
}

func (s *PlayerSystem) duration(kind component.PowerUpKind) int {
	pu := s.cfg.PowerUps
	switch kind {
	case component.PowerUpShield:
		return pu.Shield.Duration
	case component.PowerUpWideShot:
		return pu.WideShot.Duration
	case component.PowerUpExplosive:
		return pu.Explosive.Duration
	case component.PowerUpRapidFire:
		return pu.RapidFire.Duration
	default:
		return 0
	}
}
