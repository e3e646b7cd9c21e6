package entity

import (
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/prefabs"
)

// EnemySpawn describes one enemy rolled by the spawner.
type EnemySpawn struct {
	Kind     component.EnemyKind
	X, Y     float64
	Size     float64
	VX, VY   float64
	Phase    float64
	Frame    int
	Summoned bool
}

func NewEnemy(w *ecs.World, cfg *prefabs.Config, s EnemySpawn) (ecs.Entity, error) {
	hp := cfg.Enemies.Health
	if hp <= 0 {
		hp = 1
	}
	return build(w, "enemy",
		with("enemy", component.EnemyComponent.Kind(), &component.Enemy{
			Kind:       s.Kind,
			BaseSize:   s.Size,
			ScalePhase: s.Phase,
			SpeedMult:  1,
			SpawnFrame: s.Frame,
			Summoned:   s.Summoned,
		}),
		with("health", component.HealthComponent.Kind(), &component.Health{Current: hp, Max: hp}),
		transform(s.X, s.Y),
		velocity(s.VX, s.VY),
		size(s.Size, s.Size),
	)
}
