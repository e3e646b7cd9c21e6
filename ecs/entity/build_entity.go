package entity

import (
	"fmt"

	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
)

// componentBuildFn attaches one component to a freshly created entity.
type componentBuildFn func(w *ecs.World, e ecs.Entity) error

func with[T any](name string, kind component.ComponentKind[T], value *T) componentBuildFn {
	return func(w *ecs.World, e ecs.Entity) error {
		if err := ecs.Add(w, e, kind, value); err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}
		return nil
	}
}

// build creates an entity and applies every builder. A failed builder
// destroys the half-built entity so no partial entity leaks into queries.
func build(w *ecs.World, prefab string, fns ...componentBuildFn) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("%s: nil world", prefab)
	}
	e := ecs.CreateEntity(w)
	for _, fn := range fns {
		if err := fn(w, e); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("%s: %w", prefab, err)
		}
	}
	return e, nil
}

func transform(x, y float64) componentBuildFn {
	return with("transform", component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
}

func velocity(vx, vy float64) componentBuildFn {
	return with("velocity", component.VelocityComponent.Kind(), &component.Velocity{X: vx, Y: vy})
}

func size(width, height float64) componentBuildFn {
	return with("size", component.SizeComponent.Kind(), &component.Size{W: width, H: height})
}

func ttl(frames int) componentBuildFn {
	return with("ttl", component.TTLComponent.Kind(), &component.TTL{Frames: frames})
}
