package component

// EnemyKind tags the three enemy variants.
type EnemyKind int

const (
	EnemyNormal EnemyKind = iota
	EnemyExtra
	EnemyMeteor
)

func (k EnemyKind) String() string {
	switch k {
	case EnemyNormal:
		return "normal"
	case EnemyExtra:
		return "extra"
	case EnemyMeteor:
		return "meteor"
	default:
		return "unknown"
	}
}

// Bounces reports whether the variant reflects off the screen edges once it
// has entered the play field. Meteors fall straight through.
func (k EnemyKind) Bounces() bool {
	switch k {
	case EnemyNormal, EnemyExtra:
		return true
	case EnemyMeteor:
		return false
	default:
		return false
	}
}

type Enemy struct {
	Kind EnemyKind
	// BaseSize is the edge length the sinusoidal pulse oscillates around.
	BaseSize   float64
	ScalePhase float64
	SpeedMult  float64

	WallBounces  int
	EnemyBounces int

	SpawnFrame int
	// Entered is set the first tick the enemy is fully inside the screen.
	Entered         bool
	OffscreenFrames int
	// Summoned enemies belong to the boss and never count toward the level.
	Summoned bool
}

var EnemyComponent = NewComponent[Enemy]()

// Health is bounded to [0, Max].
type Health struct {
	Current int
	Max     int
}

var HealthComponent = NewComponent[Health]()

// Fraction returns Current/Max, or 0 for an unset maximum.
func (h *Health) Fraction() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

// Damage subtracts n and clamps at zero.
func (h *Health) Damage(n int) {
	if h == nil || n <= 0 {
		return
	}
	h.Current -= n
	if h.Current < 0 {
		h.Current = 0
	}
}
