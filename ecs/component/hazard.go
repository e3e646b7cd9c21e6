package component

// Mine is a delayed explosion dropped by the boss. While Fuse > 0 it is
// harmless; afterwards it damages the player inside Radius for Blast frames.
type Mine struct {
	Fuse   int
	Radius float64
	Blast  int
}

var MineComponent = NewComponent[Mine]()

// Armed reports whether the mine is currently exploding.
func (m *Mine) Armed() bool {
	return m != nil && m.Fuse <= 0 && m.Blast > 0
}

// RedLine is a full-screen line hazard swept across the play field. It only
// hurts once the telegraph countdown is over.
type RedLine struct {
	Vertical  bool
	Pos       float64
	Speed     float64
	Thickness float64
	Telegraph int
}

var RedLineComponent = NewComponent[RedLine]()

func (r *RedLine) Active() bool {
	return r != nil && r.Telegraph <= 0
}
