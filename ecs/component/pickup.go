package component

type PickupKind int

const (
	PickupHeart PickupKind = iota
	PickupPowerUp
)

func (k PickupKind) String() string {
	switch k {
	case PickupHeart:
		return "heart"
	case PickupPowerUp:
		return "power_up"
	default:
		return "unknown"
	}
}

// Pickup is a falling collectible. PowerUp is only meaningful for
// PickupPowerUp.
type Pickup struct {
	Kind    PickupKind
	PowerUp PowerUpKind
}

var PickupComponent = NewComponent[Pickup]()
