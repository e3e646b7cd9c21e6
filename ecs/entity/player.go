package entity

import (
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/prefabs"
)

// NewPlayer places the ship at the bottom center of the screen.
func NewPlayer(w *ecs.World, cfg *prefabs.Config) (ecs.Entity, error) {
	spec := cfg.Player
	x := (cfg.Screen.Width - spec.Width) / 2
	y := cfg.Screen.Height - spec.Height*3
	return NewPlayerAt(w, cfg, x, y)
}

func NewPlayerAt(w *ecs.World, cfg *prefabs.Config, x, y float64) (ecs.Entity, error) {
	spec := cfg.Player
	lives := spec.StartLives
	if lives > spec.MaxLives {
		lives = spec.MaxLives
	}
	return build(w, "player",
		with("player_tag", component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		with("player", component.PlayerComponent.Kind(), &component.Player{
			Lives:    lives,
			MaxLives: spec.MaxLives,
			Speed:    spec.Speed,
		}),
		with("input", component.InputComponent.Kind(), &component.Input{}),
		transform(x, y),
		size(spec.Width, spec.Height),
	)
}

// NewPlayerBullet spawns a projectile centered on (cx, cy).
func NewPlayerBullet(w *ecs.World, cfg *prefabs.Config, cx, cy, vx, vy float64, explosive bool, radius float64) (ecs.Entity, error) {
	spec := cfg.Player
	return build(w, "bullet",
		with("bullet", component.BulletComponent.Kind(), &component.Bullet{
			Damage:    spec.BulletDamage,
			Explosive: explosive,
			Radius:    radius,
		}),
		transform(cx-spec.BulletWidth/2, cy-spec.BulletHeight/2),
		velocity(vx, vy),
		size(spec.BulletWidth, spec.BulletHeight),
	)
}
