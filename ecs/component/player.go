package component

// PowerUpKind enumerates the timed player buffs. Only one may be active.
type PowerUpKind int

const (
	PowerUpShield PowerUpKind = iota
	PowerUpWideShot
	PowerUpExplosive
	PowerUpRapidFire

	PowerUpCount
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpShield:
		return "shield"
	case PowerUpWideShot:
		return "wide_shot"
	case PowerUpExplosive:
		return "explosive"
	case PowerUpRapidFire:
		return "rapid_fire"
	default:
		return "unknown"
	}
}

type Player struct {
	Lives    int
	MaxLives int
	Speed    float64

	ShotCooldown  int
	SpecialCharge int
	// PowerUps holds the remaining frames of each buff, indexed by kind.
	PowerUps [PowerUpCount]int
}

var PlayerComponent = NewComponent[Player]()

// Active reports whether a buff still has frames left.
func (p *Player) Active(k PowerUpKind) bool {
	if p == nil || k < 0 || k >= PowerUpCount {
		return false
	}
	return p.PowerUps[k] > 0
}

// ActivePowerUp returns the running buff, if any.
func (p *Player) ActivePowerUp() (PowerUpKind, bool) {
	if p == nil {
		return 0, false
	}
	for k := PowerUpKind(0); k < PowerUpCount; k++ {
		if p.PowerUps[k] > 0 {
			return k, true
		}
	}
	return 0, false
}
