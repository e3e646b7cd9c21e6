package component

// EffectKind tags short-lived visual markers. They carry no gameplay.
type EffectKind int

const (
	EffectExplosion EffectKind = iota
	EffectHit
	EffectTeleport
	EffectSpecial
	EffectMineBlast
)

func (k EffectKind) String() string {
	switch k {
	case EffectExplosion:
		return "explosion"
	case EffectHit:
		return "hit"
	case EffectTeleport:
		return "teleport"
	case EffectSpecial:
		return "special"
	case EffectMineBlast:
		return "mine_blast"
	default:
		return "unknown"
	}
}

type Effect struct {
	Kind EffectKind
}

var EffectComponent = NewComponent[Effect]()
