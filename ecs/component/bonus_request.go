package component

// BonusEffect is a one-shot reward fired by combo milestones.
type BonusEffect int

const (
	BonusPowerUp BonusEffect = iota
	BonusHeart
	BonusMeteorShower
	BonusSlowMotion
)

func (b BonusEffect) String() string {
	switch b {
	case BonusPowerUp:
		return "power_up"
	case BonusHeart:
		return "heart"
	case BonusMeteorShower:
		return "meteor_shower"
	case BonusSlowMotion:
		return "slow_motion"
	default:
		return "unknown"
	}
}

func ParseBonusEffect(name string) (BonusEffect, bool) {
	switch name {
	case "power_up":
		return BonusPowerUp, true
	case "heart":
		return BonusHeart, true
	case "meteor_shower":
		return BonusMeteorShower, true
	case "slow_motion":
		return BonusSlowMotion, true
	default:
		return 0, false
	}
}

// BonusRequest asks the owning system to apply a bonus on its next update.
// The request entity is destroyed by whichever system consumes it.
type BonusRequest struct {
	Effect BonusEffect
}

var BonusRequestComponent = NewComponent[BonusRequest]()
