package entity

import (
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/prefabs"
)

func NewPickup(w *ecs.World, cfg *prefabs.Config, x, y float64, kind component.PickupKind, power component.PowerUpKind) (ecs.Entity, error) {
	spec := cfg.Pickups
	return build(w, "pickup",
		with("pickup", component.PickupComponent.Kind(), &component.Pickup{Kind: kind, PowerUp: power}),
		transform(x, y),
		velocity(0, spec.FallSpeed),
		size(spec.Width, spec.Height),
	)
}
