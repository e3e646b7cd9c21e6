package system

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"

	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/ecs/entity"
	"github.com/milk9111/hellshooter/prefabs"
	"github.com/tsujio/go-bulletml"
)

const (
	defeatEffectFrames = 45
	bossFlashFrames    = 6
)

// BossSystem is the phase state machine. It owns phase entry and exit,
// vulnerability and the per-phase attacks. Phases only move forward.
type BossSystem struct {
	cfg      *prefabs.Config
	rng      *rand.Rand
	movement *BossMovementSystem
	player   *PlayerSystem
	enemies  *EnemySystem
	script   *BossScript

	phases []component.BossPhase

	pattern       *bulletml.BulletML
	patternFailed bool
}

func NewBossSystem(cfg *prefabs.Config, rng *rand.Rand, movement *BossMovementSystem, player *PlayerSystem, enemies *EnemySystem, script *BossScript) *BossSystem {
	s := &BossSystem{
		cfg:      cfg,
		rng:      rng,
		movement: movement,
		player:   player,
		enemies:  enemies,
		script:   script,
	}
	for _, ph := range cfg.Boss.Phases {
		phase, ok := component.ParseBossPhase(ph.Name)
		if !ok {
			// Validate rejects unknown names, so this only guards hand-built
			// configs.
			phase = component.PhaseHunting
		}
		s.phases = append(s.phases, phase)
	}
	return s
}

func (s *BossSystem) Update(w *ecs.World) {
	if w == nil || gameOver(w) || len(s.phases) == 0 {
		return
	}
	b, ok := findBoss(w)
	if !ok || b.Runtime.Defeated {
		return
	}
	if !b.Runtime.Initialized {
		b.Runtime.Initialized = true
		s.enter(w, b, 0)
	}

	b.Runtime.PhaseFrames++
	s.attack(w, b)
	s.AdvancePhase(w)
}

func (s *BossSystem) attack(w *ecs.World, b bossRef) {
	rt := b.Runtime
	spec := s.cfg.Boss
	switch rt.Phase {
	case component.PhaseSummoning:
		rt.SummonTimer++
		if rt.SummonTimer >= spec.SummonInterval {
			rt.SummonTimer = 0
			c := b.Center()
			s.enemies.SpawnSummoned(w, c.X, c.Y, spec.SummonCount)
		}
	case component.PhaseMines:
		rt.MineTimer++
		if rt.MineTimer >= spec.MineInterval {
			rt.MineTimer = 0
			c := b.Center()
			if _, err := entity.NewMine(w, s.cfg, c.X, c.Y); err != nil {
				fmt.Printf("boss: mine: %v\n", err)
				return
			}
			ecs.PlaySound(w, "mine")
		}
	case component.PhaseBullets:
		s.stepPattern(w, b)
	case component.PhaseRedline:
		s.sweep(w, b)
	case component.PhaseYankenpo:
		s.yankenpo(w, b)
	case component.PhaseIntro, component.PhaseHunting, component.PhaseDefeated:
	}
}

// AdvancePhase applies health thresholds, phase completion and timeouts.
// It may enter several phases in one call but never goes back. It reports
// whether anything changed.
func (s *BossSystem) AdvancePhase(w *ecs.World) bool {
	b, ok := findBoss(w)
	if !ok || b.Runtime.Defeated || !b.Runtime.Initialized {
		return false
	}
	if b.Health.Current <= 0 {
		s.defeat(w, b)
		return true
	}

	changed := false
	rt := b.Runtime
	for {
		timedOut := rt.PhaseFrames >= s.cfg.Boss.Phases[rt.Index].MaxFrames
		next := rt.Index + 1
		if next >= len(s.phases) {
			if timedOut {
				b.Health.Current = 0
				s.defeat(w, b)
				return true
			}
			return changed
		}
		threshold := s.cfg.Boss.Phases[next].Threshold
		byHealth := threshold > 0 && b.Health.Fraction() <= threshold
		if !byHealth && !timedOut && !s.completed(w, rt) {
			return changed
		}
		s.enter(w, b, next)
		changed = true
	}
}

// completed reports phases that end on their own before the timeout.
func (s *BossSystem) completed(w *ecs.World, rt *component.BossRuntime) bool {
	switch rt.Phase {
	case component.PhaseRedline:
		return rt.SweepsDone >= s.cfg.Boss.Redline.Sweeps && ecs.Count(w, component.RedLineComponent.Kind()) == 0
	default:
		return false
	}
}

func (s *BossSystem) enter(w *ecs.World, b bossRef, idx int) {
	phase := s.phases[idx]
	rt := b.Runtime
	rt.Index = idx
	rt.Phase = phase
	rt.PhaseFrames = 0
	rt.Vulnerable = phase.Vulnerable()
	rt.SummonTimer = 0
	rt.MineTimer = 0
	rt.Pattern = nil
	rt.PatternTimer = 0
	rt.PatternStep = 0
	rt.SweepsDone = 0
	rt.SweepPause = s.cfg.Boss.Redline.Pause
	rt.Yanken = component.Yanken{}

	destroyAll(w, component.RedLineComponent.Kind())

	if phase == component.PhaseYankenpo {
		rt.Yanken.Round = 1
		rt.Yanken.Timer = s.cfg.Boss.Yankenpo.RoundFrames
		rt.Yanken.BossHand = s.pickHand(1, 0, "")
	}

	s.movement.AdjustForPhase(w, b.Entity, phase)
	ecs.PlaySound(w, "phase")
	ecs.Emit(w, ecs.EventBossPhase, phase.String())
}

func (s *BossSystem) defeat(w *ecs.World, b bossRef) {
	rt := b.Runtime
	rt.Defeated = true
	rt.Phase = component.PhaseDefeated
	rt.Vulnerable = false
	rt.Pattern = nil
	b.Health.Current = 0

	c := b.Center()
	radius := math.Max(b.Size.W, b.Size.H) / 2
	if _, err := entity.NewEffect(w, component.EffectExplosion, c.X, c.Y, radius, defeatEffectFrames); err != nil {
		fmt.Printf("boss: defeat effect: %v\n", err)
	}
	ecs.PlaySound(w, "explosion")

	destroyAll(w, component.MineComponent.Kind())
	destroyAll(w, component.RedLineComponent.Kind())
	destroyAll(w, component.BossBulletComponent.Kind())
	ecs.DestroyEntity(w, b.Entity)

	EndGame(w, true)
}

// DamageBoss applies player damage while the boss is vulnerable and
// re-evaluates the phase on the same tick.
func (s *BossSystem) DamageBoss(w *ecs.World, amount int) bool {
	b, ok := findBoss(w)
	if !ok || b.Runtime.Defeated || !b.Runtime.Vulnerable || amount <= 0 {
		return false
	}
	b.Health.Damage(amount)
	_ = ecs.Add(w, b.Entity, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{
		Frames:   bossFlashFrames,
		Interval: bossFlashFrames / 2,
		On:       true,
	})
	ecs.PlaySound(w, "hit")
	s.AdvancePhase(w)
	return true
}

func (s *BossSystem) loadPattern() *bulletml.BulletML {
	if s.pattern != nil || s.patternFailed {
		return s.pattern
	}
	data, err := prefabs.LoadPattern(s.cfg.Boss.Pattern)
	if err == nil {
		s.pattern, err = bulletml.Load(bytes.NewReader(data))
	}
	if err != nil {
		s.patternFailed = true
		fmt.Printf("boss: pattern %s: %v\n", s.cfg.Boss.Pattern, err)
	}
	return s.pattern
}

// stepPattern restarts the BulletML runner every PatternFrames and steps it
// once per scaled frame.
func (s *BossSystem) stepPattern(w *ecs.World, b bossRef) {
	rt := b.Runtime
	if rt.Pattern == nil || rt.PatternTimer >= s.cfg.Boss.PatternFrames {
		rt.PatternTimer = 0
		rt.Pattern = s.newRunner(w)
		if rt.Pattern == nil {
			return
		}
	}
	rt.PatternTimer++
	rt.PatternStep += w.Tick().TimeScale
	for rt.PatternStep >= 1 {
		rt.PatternStep--
		if err := rt.Pattern.Update(); err != nil {
			fmt.Printf("boss: pattern update: %v\n", err)
			rt.Pattern = nil
			return
		}
	}
}

func (s *BossSystem) newRunner(w *ecs.World) bulletml.Runner {
	bml := s.loadPattern()
	if bml == nil {
		return nil
	}
	opts := &bulletml.NewRunnerOptions{
		OnBulletFired: func(br bulletml.BulletRunner, _ *bulletml.FireContext) {
			if _, err := entity.NewBossBullet(w, s.cfg, br); err != nil {
				fmt.Printf("boss: bullet: %v\n", err)
			}
		},
		CurrentShootPosition: func() (float64, float64) {
			if b, ok := findBoss(w); ok {
				c := b.Center()
				return c.X, c.Y
			}
			return s.cfg.Screen.Width / 2, s.cfg.Screen.Height / 2
		},
		CurrentTargetPosition: func() (float64, float64) {
			if p, ok := findPlayer(w); ok {
				c := p.Center()
				return c.X, c.Y
			}
			return s.cfg.Screen.Width / 2, s.cfg.Screen.Height
		},
	}
	runner, err := bulletml.NewRunner(bml, opts)
	if err != nil {
		fmt.Printf("boss: new runner: %v\n", err)
		s.patternFailed = true
		return nil
	}
	return runner
}

// sweep launches one red line at a time, alternating direction, with a
// pause after each line leaves the screen.
func (s *BossSystem) sweep(w *ecs.World, b bossRef) {
	rt := b.Runtime
	spec := s.cfg.Boss.Redline
	if rt.SweepsDone >= spec.Sweeps || ecs.Count(w, component.RedLineComponent.Kind()) > 0 {
		return
	}
	if rt.SweepPause > 0 {
		rt.SweepPause--
		return
	}
	if _, err := entity.NewRedLine(w, s.cfg, rt.SweepsDone%2 == 0); err != nil {
		fmt.Printf("boss: red line: %v\n", err)
		return
	}
	rt.SweepsDone++
	rt.SweepPause = spec.Pause
}

// PlayerHand maps the player's horizontal position to a hand: left third
// rock, middle paper, right third scissors.
func (s *BossSystem) PlayerHand(w *ecs.World) component.Hand {
	p, ok := findPlayer(w)
	if !ok {
		return component.Rock
	}
	third := s.cfg.Screen.Width / 3
	switch x := p.Center().X; {
	case x < third:
		return component.Rock
	case x < 2*third:
		return component.Paper
	default:
		return component.Scissors
	}
}

func (s *BossSystem) pickHand(round, wins int, last string) component.Hand {
	if h, ok := s.script.YankenpoHand(round, wins, last); ok {
		return h
	}
	return component.Hand(s.rng.Intn(3))
}

// yankenpo resolves a round whenever its countdown runs out. Losing costs a
// life; enough wins finish the boss.
func (s *BossSystem) yankenpo(w *ecs.World, b bossRef) {
	y := &b.Runtime.Yanken
	spec := s.cfg.Boss.Yankenpo
	y.Timer--
	if y.Timer > 0 {
		return
	}

	y.PlayerHand = s.PlayerHand(w)
	switch {
	case y.PlayerHand.Beats(y.BossHand):
		y.Last = component.OutcomeWin
		y.Wins++
		ecs.PlaySound(w, "hit")
	case y.BossHand.Beats(y.PlayerHand):
		y.Last = component.OutcomeLose
		y.Losses++
		s.player.TakeDamage(w)
	default:
		y.Last = component.OutcomeDraw
	}

	if y.Wins >= spec.WinsRequired {
		b.Health.Current = 0
		return
	}
	y.Round++
	y.Timer = spec.RoundFrames
	y.BossHand = s.pickHand(y.Round, y.Wins, y.PlayerHand.String())
}

func destroyAll[T any](w *ecs.World, kind component.ComponentKind[T]) {
	ecs.ForEach(w, kind, func(e ecs.Entity, _ *T) {
		ecs.DestroyEntity(w, e)
	})
}
