package component

// Transform is the top-left position of an entity in screen units.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()

// Velocity is measured in screen units per tick at normal speed.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()

// Size is the current collision box of an entity. Renderers draw it as-is.
type Size struct {
	W float64
	H float64
}

var SizeComponent = NewComponent[Size]()

// Center returns the midpoint of a transform/size pair.
func Center(t *Transform, s *Size) (float64, float64) {
	if t == nil {
		return 0, 0
	}
	if s == nil {
		return t.X, t.Y
	}
	return t.X + s.W/2, t.Y + s.H/2
}
