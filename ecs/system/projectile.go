package system

import (
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/prefabs"
)

// ProjectileSystem moves player bullets and drops those that left the
// screen. Player bullets ignore slow motion.
type ProjectileSystem struct {
	cfg *prefabs.Config
}

func NewProjectileSystem(cfg *prefabs.Config) *ProjectileSystem {
	return &ProjectileSystem{cfg: cfg}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	screen := screenRect(s.cfg)
	ecs.ForEach4(w,
		component.BulletComponent.Kind(),
		component.TransformComponent.Kind(),
		component.VelocityComponent.Kind(),
		component.SizeComponent.Kind(),
		func(e ecs.Entity, _ *component.Bullet, t *component.Transform, v *component.Velocity, sz *component.Size) {
			t.X += v.X
			t.Y += v.Y
			if !rectOf(t, sz).Intersects(screen) {
				ecs.DestroyEntity(w, e)
			}
		})
}
