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

// EnemySystem spawns, moves, bounces and despawns the enemy swarm, and
// advances the level once enough enemies were killed.
type EnemySystem struct {
	cfg *prefabs.Config
	rng *rand.Rand
}

func NewEnemySystem(cfg *prefabs.Config, rng *rand.Rand) *EnemySystem {
	return &EnemySystem{cfg: cfg, rng: rng}
}

// SetupLevel loads required kills and spawn cadence for level, clamping to
// the last table entry, and restarts the spawn timer.
func (s *EnemySystem) SetupLevel(w *ecs.World, level int) {
	lvl, ok := levelState(w)
	if !ok {
		return
	}
	if level < 1 {
		level = 1
	}
	spec := s.cfg.LevelAt(level)
	lvl.Level = level
	lvl.Kills = 0
	lvl.Required = spec.Required
	lvl.SpawnDelay = spec.SpawnDelay
	lvl.SpawnTimer = 0
}

func (s *EnemySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	lvl, ok := levelState(w)
	if !ok {
		return
	}
	tick := w.Tick()

	levelChanged := s.checkLevel(w, lvl)

	for range consumeBonus(w, component.BonusMeteorShower) {
		s.meteorShower(w, tick.Frame)
	}

	if !lvl.BossSpawned && !levelChanged {
		lvl.SpawnTimer++
		if lvl.SpawnTimer >= lvl.SpawnDelay {
			lvl.SpawnTimer = 0
			s.spawnWave(w, lvl, tick.Frame)
		}
	}

	s.integrate(w, tick)
	s.bounceWalls(w)
	s.resolvePairs(w)
	s.clampSpeeds(w, lvl.Level)
	s.despawn(w)
}

// checkLevel advances the level when the kill quota is met and spawns the
// boss once its level is reached.
func (s *EnemySystem) checkLevel(w *ecs.World, lvl *component.LevelState) bool {
	changed := false
	if !lvl.BossSpawned && lvl.Required > 0 && lvl.Kills >= lvl.Required {
		s.SetupLevel(w, lvl.Level+1)
		ecs.PlaySound(w, "level_up")
		ecs.Emit(w, ecs.EventLevelUp, lvl.Level)
		changed = true
	}
	if !lvl.BossSpawned && s.cfg.Boss.Level > 0 && lvl.Level >= s.cfg.Boss.Level {
		if _, err := entity.NewBoss(w, s.cfg); err != nil {
			fmt.Printf("enemy: spawn boss: %v\n", err)
			return changed
		}
		lvl.BossSpawned = true
	}
	return changed
}

func (s *EnemySystem) maxConcurrent(level int) int {
	spec := s.cfg.Enemies
	n := spec.MaxConcurrentBase + spec.MaxConcurrentPerLevel*(level-1)
	if n < 1 {
		n = 1
	}
	return n
}

func (s *EnemySystem) spawnWave(w *ecs.World, lvl *component.LevelState, frame int) {
	limit := s.maxConcurrent(lvl.Level)
	if ecs.Count(w, component.EnemyComponent.Kind()) >= limit {
		return
	}
	s.spawn(w, component.EnemyNormal, frame)

	spec := s.cfg.Enemies
	if lvl.Level < spec.ExtraSpawnMinLevel || spec.ExtraSpawnMinLevel <= 0 {
		return
	}
	for i := 0; i < spec.ExtraSpawnMax; i++ {
		if s.rng.Float64() >= spec.ExtraSpawnChance {
			break
		}
		if ecs.Count(w, component.EnemyComponent.Kind()) >= limit {
			break
		}
		s.spawn(w, component.EnemyExtra, frame)
	}
}

// spawn places one enemy just above the top edge heading downward within
// the configured spawn cone.
func (s *EnemySystem) spawn(w *ecs.World, kind component.EnemyKind, frame int) (ecs.Entity, error) {
	spec := s.cfg.Enemies
	size := spec.MinSize + s.rng.Float64()*(spec.MaxSize-spec.MinSize)
	x := s.rng.Float64() * math.Max(0, s.cfg.Screen.Width-size)
	half := common.DegToRad(spec.SpawnAngleDeg) / 2
	angle := math.Pi/2 + (s.rng.Float64()*2-1)*half
	speed := spec.MinSpeed + s.rng.Float64()*(spec.MaxSpeed-spec.MinSpeed)
	e, err := entity.NewEnemy(w, s.cfg, entity.EnemySpawn{
		Kind:  kind,
		X:     x,
		Y:     -size,
		Size:  size,
		VX:    math.Cos(angle) * speed,
		VY:    math.Sin(angle) * speed,
		Phase: s.rng.Float64() * 2 * math.Pi,
		Frame: frame,
	})
	if err != nil {
		fmt.Printf("enemy: spawn %s: %v\n", kind, err)
	}
	return e, err
}

// SpawnSummoned drops count enemies around (cx, cy) for the summoning boss
// phase. They ignore the concurrency cap and do not count toward the level.
func (s *EnemySystem) SpawnSummoned(w *ecs.World, cx, cy float64, count int) {
	spec := s.cfg.Enemies
	frame := w.Tick().Frame
	for i := 0; i < count; i++ {
		size := spec.MinSize + s.rng.Float64()*(spec.MaxSize-spec.MinSize)
		angle := s.rng.Float64() * 2 * math.Pi
		speed := spec.MinSpeed + s.rng.Float64()*(spec.MaxSpeed-spec.MinSpeed)
		x := common.Clamp(cx-size/2, 0, s.cfg.Screen.Width-size)
		y := common.Clamp(cy-size/2, 0, s.cfg.Screen.Height-size)
		if _, err := entity.NewEnemy(w, s.cfg, entity.EnemySpawn{
			Kind:     component.EnemyExtra,
			X:        x,
			Y:        y,
			Size:     size,
			VX:       math.Cos(angle) * speed,
			VY:       math.Sin(angle) * speed,
			Phase:    s.rng.Float64() * 2 * math.Pi,
			Frame:    frame,
			Summoned: true,
		}); err != nil {
			fmt.Printf("enemy: summon: %v\n", err)
			return
		}
	}
}

func (s *EnemySystem) meteorShower(w *ecs.World, frame int) {
	spec := s.cfg.Enemies
	for i := 0; i < spec.MeteorCount; i++ {
		x := s.rng.Float64() * math.Max(0, s.cfg.Screen.Width-spec.MeteorSize)
		y := -spec.MeteorSize - s.rng.Float64()*s.cfg.Screen.Height/4
		if _, err := entity.NewEnemy(w, s.cfg, entity.EnemySpawn{
			Kind:  component.EnemyMeteor,
			X:     x,
			Y:     y,
			Size:  spec.MeteorSize,
			VY:    spec.MeteorSpeed,
			Frame: frame,
		}); err != nil {
			fmt.Printf("enemy: meteor: %v\n", err)
			return
		}
	}
}

// sizeBounds returns the clamp range for the pulsing size of an enemy.
// Meteors may be configured outside the regular range.
func (s *EnemySystem) sizeBounds(base float64) (float64, float64) {
	lo, hi := s.cfg.Enemies.MinSize, s.cfg.Enemies.MaxSize
	return math.Min(lo, base), math.Max(hi, base)
}

func (s *EnemySystem) integrate(w *ecs.World, tick ecs.Tick) {
	spec := s.cfg.Enemies
	ecs.ForEach4(w,
		component.EnemyComponent.Kind(),
		component.TransformComponent.Kind(),
		component.VelocityComponent.Kind(),
		component.SizeComponent.Kind(),
		func(e ecs.Entity, en *component.Enemy, t *component.Transform, v *component.Velocity, sz *component.Size) {
			// Pulse around the base size, keeping the center fixed.
			if spec.ScaleAmplitude > 0 {
				lo, hi := s.sizeBounds(en.BaseSize)
				pulse := 1 + spec.ScaleAmplitude*math.Sin(float64(tick.Frame)*spec.ScaleFrequency+en.ScalePhase)
				next := common.Clamp(en.BaseSize*pulse, lo, hi)
				t.X += (sz.W - next) / 2
				t.Y += (sz.H - next) / 2
				sz.W, sz.H = next, next
			}

			t.X += v.X * en.SpeedMult * tick.TimeScale
			t.Y += v.Y * en.SpeedMult * tick.TimeScale
			t.X = common.Finite(t.X, 0)
			t.Y = common.Finite(t.Y, 0)

			if !en.Entered && rectOf(t, sz).Inside(s.cfg.Screen.Width, s.cfg.Screen.Height) {
				en.Entered = true
			}
		})
}

func (s *EnemySystem) bump(en *component.Enemy, step float64) {
	limit := s.cfg.Enemies.MaxSpeedMultiplier
	en.SpeedMult = math.Min(en.SpeedMult+step, limit)
	if en.SpeedMult < 1 && limit >= 1 {
		en.SpeedMult = 1
	}
}

// bounceWalls reflects entered enemies off the screen edges and clamps them
// back inside.
func (s *EnemySystem) bounceWalls(w *ecs.World) {
	spec := s.cfg.Enemies
	width, height := s.cfg.Screen.Width, s.cfg.Screen.Height
	ecs.ForEach4(w,
		component.EnemyComponent.Kind(),
		component.TransformComponent.Kind(),
		component.VelocityComponent.Kind(),
		component.SizeComponent.Kind(),
		func(e ecs.Entity, en *component.Enemy, t *component.Transform, v *component.Velocity, sz *component.Size) {
			if !en.Kind.Bounces() || !en.Entered {
				return
			}
			hit := false
			if t.X < 0 {
				v.X = math.Abs(v.X) * spec.BounceEnergy
				hit = true
			} else if t.X > width-sz.W {
				v.X = -math.Abs(v.X) * spec.BounceEnergy
				hit = true
			}
			if t.Y < 0 {
				v.Y = math.Abs(v.Y) * spec.BounceEnergy
				hit = true
			} else if t.Y > height-sz.H {
				v.Y = -math.Abs(v.Y) * spec.BounceEnergy
				hit = true
			}
			if hit {
				en.WallBounces++
				s.bump(en, spec.SpeedStep)
			}
			t.X = common.Clamp(t.X, 0, width-sz.W)
			t.Y = common.Clamp(t.Y, 0, height-sz.H)
		})
}

type pairBody struct {
	enemy *component.Enemy
	t     *component.Transform
	v     *component.Velocity
	sz    *component.Size
}

// resolvePairs treats entered bouncing enemies as equal-mass circles and
// exchanges the normal velocity components of every overlapping pair.
func (s *EnemySystem) resolvePairs(w *ecs.World) {
	spec := s.cfg.Enemies
	var bodies []pairBody
	ecs.ForEach4(w,
		component.EnemyComponent.Kind(),
		component.TransformComponent.Kind(),
		component.VelocityComponent.Kind(),
		component.SizeComponent.Kind(),
		func(e ecs.Entity, en *component.Enemy, t *component.Transform, v *component.Velocity, sz *component.Size) {
			if en.Kind.Bounces() && en.Entered {
				bodies = append(bodies, pairBody{enemy: en, t: t, v: v, sz: sz})
			}
		})

	width, height := s.cfg.Screen.Width, s.cfg.Screen.Height
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			ca := rectOf(a.t, a.sz).Center()
			cb := rectOf(b.t, b.sz).Center()
			minDist := a.sz.W/2 + b.sz.W/2
			delta := cb.Sub(ca)
			dist := delta.Length()
			if dist >= minDist {
				continue
			}
			n := cp.Vector{X: 1, Y: 0}
			if dist > 1e-9 {
				n = delta.Mult(1 / dist)
			}

			va := cp.Vector{X: a.v.X, Y: a.v.Y}
			vb := cp.Vector{X: b.v.X, Y: b.v.Y}
			// Only exchange while approaching so separated pairs do not
			// stick together.
			if vb.Sub(va).Dot(n) < 0 {
				an, bn := va.Dot(n), vb.Dot(n)
				va = va.Add(n.Mult(bn - an))
				vb = vb.Add(n.Mult(an - bn))
				a.v.X, a.v.Y = va.X, va.Y
				b.v.X, b.v.Y = vb.X, vb.Y
			}

			push := n.Mult((minDist - dist) / 2)
			a.t.X -= push.X
			a.t.Y -= push.Y
			b.t.X += push.X
			b.t.Y += push.Y
			for _, body := range []pairBody{a, b} {
				body.t.X = common.Clamp(body.t.X, 0, width-body.sz.W)
				body.t.Y = common.Clamp(body.t.Y, 0, height-body.sz.H)
				body.enemy.EnemyBounces++
				s.bump(body.enemy, spec.CollisionSpeedStep)
			}
		}
	}
}

// MaxSpeed is the cap on effective enemy speed for a level.
func (s *EnemySystem) MaxSpeed(level int) float64 {
	spec := s.cfg.Enemies
	return spec.MaxSpeedBase + spec.MaxSpeedPerLevel*float64(level-1)
}

func (s *EnemySystem) clampSpeeds(w *ecs.World, level int) {
	limit := s.MaxSpeed(level)
	capMult := s.cfg.Enemies.MaxSpeedMultiplier
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, en *component.Enemy, v *component.Velocity) {
		en.SpeedMult = common.Clamp(common.Finite(en.SpeedMult, 1), 0, capMult)
		vel := cp.Vector{X: common.Finite(v.X, 0), Y: common.Finite(v.Y, 0)}
		speed := vel.Length() * en.SpeedMult
		if speed > limit && speed > 0 {
			vel = vel.Mult(limit / speed)
		}
		v.X, v.Y = vel.X, vel.Y
	})
}

// despawn removes enemies that stayed fully outside the screen for longer
// than the grace period.
func (s *EnemySystem) despawn(w *ecs.World) {
	screen := screenRect(s.cfg)
	grace := s.cfg.Enemies.OffscreenGraceFrames
	ecs.ForEach3(w,
		component.EnemyComponent.Kind(),
		component.TransformComponent.Kind(),
		component.SizeComponent.Kind(),
		func(e ecs.Entity, en *component.Enemy, t *component.Transform, sz *component.Size) {
			if rectOf(t, sz).Intersects(screen) {
				en.OffscreenFrames = 0
				return
			}
			en.OffscreenFrames++
			if en.OffscreenFrames > grace {
				ecs.DestroyEntity(w, e)
			}
		})
}
