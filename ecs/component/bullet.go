package component

import "github.com/tsujio/go-bulletml"

// Bullet is a player projectile.
type Bullet struct {
	Damage    int
	Explosive bool
	// Radius of the area hit by an explosive bullet, measured from impact.
	Radius float64
}

var BulletComponent = NewComponent[Bullet]()

// BossBullet is a projectile driven by a BulletML runner. The runner owns
// the position; the boss bullet system copies it into Transform.
type BossBullet struct {
	Runner bulletml.BulletRunner
	// Frame accumulator so slow motion steps the runner less often.
	Step float64
}

var BossBulletComponent = NewComponent[BossBullet]()
