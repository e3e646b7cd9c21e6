package system

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hellshooter/common"
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/ecs/entity"
	"github.com/milk9111/hellshooter/prefabs"
)

const teleportEffectFrames = 20

// BossMovementSystem moves the boss according to the pattern chosen by the
// phase state machine.
type BossMovementSystem struct {
	cfg    *prefabs.Config
	rng    *rand.Rand
	script *BossScript
}

func NewBossMovementSystem(cfg *prefabs.Config, rng *rand.Rand, script *BossScript) *BossMovementSystem {
	return &BossMovementSystem{cfg: cfg, rng: rng, script: script}
}

// AdjustForPhase selects the movement pattern for phase. Immune phases pin
// the boss to the screen center; the intro glides there first.
func (s *BossMovementSystem) AdjustForPhase(w *ecs.World, e ecs.Entity, phase component.BossPhase) {
	mv, ok := ecs.Get(w, e, component.BossMovementComponent.Kind())
	if !ok {
		return
	}
	switch phase {
	case component.PhaseIntro:
		mv.Pattern = component.MoveStationary
		mv.Locked = false
	case component.PhaseHunting:
		mv.Pattern = component.MoveHunting
		mv.Locked = false
	case component.PhaseMines:
		mv.Pattern = component.MoveTeleporting
		mv.Locked = false
		mv.TeleportTimer = s.cfg.Boss.TeleportCooldown
		mv.StuckCount = 0
	case component.PhaseSummoning, component.PhaseBullets, component.PhaseRedline, component.PhaseYankenpo, component.PhaseDefeated:
		mv.Pattern = component.MoveStationary
		mv.Locked = true
		if b, ok := findBoss(w); ok && b.Entity == e {
			s.place(b, s.screenCenter())
		}
	}
}

func (s *BossMovementSystem) Update(w *ecs.World) {
	if w == nil || gameOver(w) {
		return
	}
	b, ok := findBoss(w)
	if !ok || b.Runtime.Defeated {
		return
	}
	frac := b.Health.Fraction()
	scale := s.SpeedScale(frac)
	speed := b.Movement.BaseSpeed * scale * w.Tick().TimeScale

	switch b.Movement.Pattern {
	case component.MoveStationary:
		if b.Movement.Locked {
			return
		}
		if s.approach(b, s.screenCenter(), speed, false) {
			b.Movement.Locked = true
		}
	case component.MoveHunting:
		if p, ok := findPlayer(w); ok {
			s.approach(b, p.Center(), speed, true)
		}
		s.escape(w, b, frac)
	case component.MoveTeleporting:
		b.Movement.TeleportTimer--
		if b.Movement.TeleportTimer <= 0 {
			s.Teleport(w, b.Entity)
			b.Movement.TeleportTimer = int(math.Ceil(float64(s.cfg.Boss.TeleportCooldown) / scale))
		}
		s.escape(w, b, frac)
	}
}

// SpeedScale returns the speed multiplier for a health fraction. The tengo
// hook wins when it returns a positive value.
func (s *BossMovementSystem) SpeedScale(frac float64) float64 {
	frac = common.Clamp(common.Finite(frac, 1), 0, 1)
	maxScale := s.cfg.Boss.MaxSpeedScale
	scale, ok := s.script.SpeedScale(frac, maxScale)
	if !ok {
		scale = 1 + (maxScale-1)*(1-frac)
	}
	return common.Clamp(common.Finite(scale, 1), 1, math.Max(1, 2*maxScale))
}

// approach steps the boss center toward target by at most speed and
// reports whether it arrived.
func (s *BossMovementSystem) approach(b bossRef, target cp.Vector, speed float64, clampEdges bool) bool {
	c := b.Center()
	delta := target.Sub(c)
	dist := delta.Length()
	if dist <= s.cfg.Boss.Epsilon {
		return true
	}
	step := math.Min(speed, dist)
	next := c.Add(delta.Mult(step / dist))
	if clampEdges {
		next = s.clampCenter(b, next, s.cfg.Boss.EdgeMargin)
	}
	s.place(b, next)
	return step >= dist
}

func (s *BossMovementSystem) place(b bossRef, center cp.Vector) {
	b.Transform.X = center.X - b.Size.W/2
	b.Transform.Y = center.Y - b.Size.H/2
}

func (s *BossMovementSystem) clampCenter(b bossRef, c cp.Vector, margin float64) cp.Vector {
	hw, hh := b.Size.W/2, b.Size.H/2
	return cp.Vector{
		X: common.Clamp(c.X, margin+hw, s.cfg.Screen.Width-margin-hw),
		Y: common.Clamp(c.Y, margin+hh, s.cfg.Screen.Height-margin-hh),
	}
}

func (s *BossMovementSystem) screenCenter() cp.Vector {
	return cp.Vector{X: s.cfg.Screen.Width / 2, Y: s.cfg.Screen.Height / 2}
}

// escape rolls the defensive teleport while health is critical.
func (s *BossMovementSystem) escape(w *ecs.World, b bossRef, frac float64) {
	spec := s.cfg.Boss
	if frac <= 0 || frac > spec.CriticalHealth {
		return
	}
	if b.Movement.EscapeTimer > 0 {
		b.Movement.EscapeTimer--
		return
	}
	if s.rng.Float64() < spec.EscapeChance {
		s.Teleport(w, b.Entity)
		b.Movement.EscapeTimer = spec.EscapeCooldown
	}
}

// TeleportCandidates lists in-bounds boss centers around the player. When
// the boss got stuck, or nothing around the player fits, it returns the
// screen-center candidates instead.
func (s *BossMovementSystem) TeleportCandidates(w *ecs.World, b bossRef) (candidates []cp.Vector, centered bool) {
	if b.Movement.StuckCount < s.cfg.Boss.StuckLimit {
		if p, ok := findPlayer(w); ok {
			pc := p.Center()
			for _, off := range s.cfg.Boss.TeleportOffsets {
				c := pc.Add(cp.Vector{X: off[0], Y: off[1]})
				if s.inBounds(b, c) {
					candidates = append(candidates, c)
				}
			}
		}
		if len(candidates) > 0 {
			return candidates, false
		}
	}
	mid := s.screenCenter()
	quarter := s.cfg.Screen.Width / 4
	for _, c := range []cp.Vector{mid, {X: mid.X - quarter, Y: mid.Y}, {X: mid.X + quarter, Y: mid.Y}} {
		candidates = append(candidates, s.clampCenter(b, c, 0))
	}
	return candidates, true
}

func (s *BossMovementSystem) inBounds(b bossRef, c cp.Vector) bool {
	r := common.Rect{X: c.X - b.Size.W/2, Y: c.Y - b.Size.H/2, Width: b.Size.W, Height: b.Size.H}
	return r.Inside(s.cfg.Screen.Width, s.cfg.Screen.Height)
}

// inCorner reports whether center c leaves the boss touching two edges.
func (s *BossMovementSystem) inCorner(b bossRef, c cp.Vector) bool {
	m := s.cfg.Boss.CornerMargin
	hw, hh := b.Size.W/2, b.Size.H/2
	nearX := c.X-hw <= m || c.X+hw >= s.cfg.Screen.Width-m
	nearY := c.Y-hh <= m || c.Y+hh >= s.cfg.Screen.Height-m
	return nearX && nearY
}

// Teleport relocates the boss to a random candidate, marking both ends
// with an effect.
func (s *BossMovementSystem) Teleport(w *ecs.World, e ecs.Entity) bool {
	b, ok := findBoss(w)
	if !ok || b.Entity != e || b.Movement.Locked {
		return false
	}
	candidates, centered := s.TeleportCandidates(w, b)
	if len(candidates) == 0 {
		return false
	}
	from := b.Center()
	to := candidates[s.rng.Intn(len(candidates))]
	s.place(b, to)
	b.Movement.Teleports++

	switch {
	case centered:
		b.Movement.StuckCount = 0
	case s.inCorner(b, to) || to.Sub(from).Length() <= s.cfg.Boss.Epsilon:
		b.Movement.StuckCount++
	default:
		b.Movement.StuckCount = 0
	}

	radius := math.Max(b.Size.W, b.Size.H) / 2
	for _, at := range []cp.Vector{from, to} {
		if _, err := entity.NewEffect(w, component.EffectTeleport, at.X, at.Y, radius, teleportEffectFrames); err != nil {
			fmt.Printf("boss movement: teleport effect: %v\n", err)
		}
	}
	ecs.PlaySound(w, "teleport")
	return true
}
