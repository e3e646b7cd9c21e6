package entity

import (
	"fmt"

	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/prefabs"
	"github.com/tsujio/go-bulletml"
)

// NewBoss spawns the boss at the top center in its first configured phase.
func NewBoss(w *ecs.World, cfg *prefabs.Config) (ecs.Entity, error) {
	spec := cfg.Boss
	if len(spec.Phases) == 0 {
		return 0, fmt.Errorf("boss: no phases configured")
	}
	first, ok := component.ParseBossPhase(spec.Phases[0].Name)
	if !ok {
		return 0, fmt.Errorf("boss: unknown phase %q", spec.Phases[0].Name)
	}
	hp := spec.Health
	if hp <= 0 {
		hp = 1
	}
	return build(w, "boss",
		with("boss_tag", component.BossTagComponent.Kind(), &component.BossTag{}),
		with("health", component.HealthComponent.Kind(), &component.Health{Current: hp, Max: hp}),
		with("boss_runtime", component.BossRuntimeComponent.Kind(), &component.BossRuntime{Phase: first}),
		with("boss_movement", component.BossMovementComponent.Kind(), &component.BossMovement{BaseSpeed: spec.BaseSpeed}),
		transform((cfg.Screen.Width-spec.Width)/2, -spec.Height),
		size(spec.Width, spec.Height),
	)
}

// NewBossBullet wraps a runner fired by the BULLETS phase pattern.
func NewBossBullet(w *ecs.World, cfg *prefabs.Config, runner bulletml.BulletRunner) (ecs.Entity, error) {
	if runner == nil {
		return 0, fmt.Errorf("boss_bullet: nil runner")
	}
	s := cfg.Boss.BulletSize
	x, y := runner.Position()
	return build(w, "boss_bullet",
		with("boss_bullet", component.BossBulletComponent.Kind(), &component.BossBullet{Runner: runner}),
		transform(x-s/2, y-s/2),
		size(s, s),
	)
}

// NewMine drops a delayed explosion centered on (cx, cy).
func NewMine(w *ecs.World, cfg *prefabs.Config, cx, cy float64) (ecs.Entity, error) {
	spec := cfg.Boss
	const body = 16.0
	return build(w, "mine",
		with("mine", component.MineComponent.Kind(), &component.Mine{
			Fuse:   spec.MineFuse,
			Radius: spec.MineRadius,
			Blast:  spec.MineBlastFrames,
		}),
		transform(cx-body/2, cy-body/2),
		size(body, body),
	)
}

// NewRedLine starts a sweep from one screen edge. Vertical lines travel
// left to right, horizontal lines top to bottom.
func NewRedLine(w *ecs.World, cfg *prefabs.Config, vertical bool) (ecs.Entity, error) {
	spec := cfg.Boss.Redline
	line := &component.RedLine{
		Vertical:  vertical,
		Pos:       -spec.Thickness,
		Speed:     spec.Speed,
		Thickness: spec.Thickness,
		Telegraph: spec.Telegraph,
	}
	x, y, width, height := RedLineBounds(cfg, line)
	return build(w, "red_line",
		with("red_line", component.RedLineComponent.Kind(), line),
		transform(x, y),
		size(width, height),
	)
}

// RedLineBounds returns the box a line currently covers.
func RedLineBounds(cfg *prefabs.Config, line *component.RedLine) (x, y, width, height float64) {
	if line.Vertical {
		return line.Pos, 0, line.Thickness, cfg.Screen.Height
	}
	return 0, line.Pos, cfg.Screen.Width, line.Thickness
}
