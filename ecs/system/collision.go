package system

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hellshooter/common"
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/ecs/entity"
	"github.com/milk9111/hellshooter/prefabs"
)

const (
	explosionFrames = 20
	specialFrames   = 30
)

// CollisionSystem resolves bullet hits, kill scoring and player contacts.
// Entities are visited in id order, so a bullet always hits the oldest
// overlapping enemy.
type CollisionSystem struct {
	cfg     *prefabs.Config
	combo   *ComboSystem
	player  *PlayerSystem
	pickups *PickupSystem
	boss    *BossSystem
}

func NewCollisionSystem(cfg *prefabs.Config, combo *ComboSystem, player *PlayerSystem, pickups *PickupSystem, boss *BossSystem) *CollisionSystem {
	return &CollisionSystem{cfg: cfg, combo: combo, player: player, pickups: pickups, boss: boss}
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if w == nil || gameOver(w) {
		return
	}
	s.bullets(w)
	if gameOver(w) {
		return
	}
	s.contacts(w)
}

type enemyHit struct {
	entity ecs.Entity
	center cp.Vector
}

func (s *CollisionSystem) bullets(w *ecs.World) {
	ecs.ForEach3(w,
		component.BulletComponent.Kind(),
		component.TransformComponent.Kind(),
		component.SizeComponent.Kind(),
		func(e ecs.Entity, b *component.Bullet, t *component.Transform, sz *component.Size) {
			if gameOver(w) {
				return
			}
			r := rectOf(t, sz)
			target, hitEnemy := s.firstEnemy(w, r)
			boss, hasBoss := findBoss(w)
			hitBoss := !hitEnemy && hasBoss && !boss.Runtime.Defeated && r.Intersects(boss.Rect())
			if !hitEnemy && !hitBoss {
				return
			}
			ecs.DestroyEntity(w, e)

			if b.Explosive && b.Radius > 0 {
				s.explode(w, r.Center(), b.Radius, b.Damage, target, hitBoss)
				return
			}
			if hitEnemy {
				s.damageEnemy(w, target.entity, b.Damage)
				return
			}
			// An immune boss still absorbs the bullet.
			s.boss.DamageBoss(w, b.Damage)
		})
}

func (s *CollisionSystem) firstEnemy(w *ecs.World, r common.Rect) (enemyHit, bool) {
	var hit enemyHit
	found := false
	ecs.ForEach3(w,
		component.EnemyComponent.Kind(),
		component.TransformComponent.Kind(),
		component.SizeComponent.Kind(),
		func(e ecs.Entity, _ *component.Enemy, t *component.Transform, sz *component.Size) {
			if found {
				return
			}
			er := rectOf(t, sz)
			if er.Intersects(r) {
				hit = enemyHit{entity: e, center: er.Center()}
				found = true
			}
		})
	return hit, found
}

// explode damages every enemy whose center lies within radius of impact,
// each exactly once, plus the directly hit target and a vulnerable boss in
// range.
func (s *CollisionSystem) explode(w *ecs.World, impact cp.Vector, radius float64, damage int, direct enemyHit, hitBoss bool) {
	var victims []ecs.Entity
	seen := map[ecs.Entity]bool{}
	if direct.entity != 0 {
		victims = append(victims, direct.entity)
		seen[direct.entity] = true
	}
	ecs.ForEach3(w,
		component.EnemyComponent.Kind(),
		component.TransformComponent.Kind(),
		component.SizeComponent.Kind(),
		func(e ecs.Entity, _ *component.Enemy, t *component.Transform, sz *component.Size) {
			if seen[e] {
				return
			}
			if rectOf(t, sz).Center().Sub(impact).Length() <= radius {
				victims = append(victims, e)
				seen[e] = true
			}
		})

	if _, err := entity.NewEffect(w, component.EffectExplosion, impact.X, impact.Y, radius, explosionFrames); err != nil {
		fmt.Printf("collision: explosion effect: %v\n", err)
	}
	for _, v := range victims {
		s.damageEnemy(w, v, damage)
	}

	if boss, ok := findBoss(w); ok && (hitBoss || boss.Center().Sub(impact).Length() <= radius) {
		s.boss.DamageBoss(w, damage)
	}
}

func (s *CollisionSystem) damageEnemy(w *ecs.World, e ecs.Entity, damage int) {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		return
	}
	h.Damage(damage)
	if h.Current > 0 {
		ecs.PlaySound(w, "hit")
		if r, ok := entityRect(w, e); ok {
			c := r.Center()
			_, _ = entity.NewEffect(w, component.EffectHit, c.X, c.Y, r.Width/4, explosionFrames/2)
		}
		return
	}
	s.kill(w, e, true)
}

// kill scores enemy e. Only kills made by bullets charge the special;
// enemies wiped by the special itself do not.
func (s *CollisionSystem) kill(w *ecs.World, e ecs.Entity, chargeSpecial bool) {
	en, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok {
		return
	}
	summoned := en.Summoned
	if r, ok := entityRect(w, e); ok {
		c := r.Center()
		if _, err := entity.NewEffect(w, component.EffectExplosion, c.X, c.Y, r.Width/2, explosionFrames); err != nil {
			fmt.Printf("collision: kill effect: %v\n", err)
		}
	}
	ecs.DestroyEntity(w, e)
	ecs.PlaySound(w, "explosion")

	mult := s.combo.RegisterKill(w, w.Tick().NowMS)
	if _, score, ok := ecs.First(w, component.ScoreComponent.Kind()); ok {
		score.Points += Points(s.cfg.Enemies.BaseScore, mult)
		score.Kills++
	}
	if lvl, ok := levelState(w); ok && !summoned {
		lvl.Kills++
	}

	if chargeSpecial && s.player.OnKill(w) {
		s.special(w)
	}
}

// special clears every enemy on screen and hits a vulnerable boss.
func (s *CollisionSystem) special(w *ecs.World) {
	screen := screenRect(s.cfg)
	ecs.ForEach3(w,
		component.EnemyComponent.Kind(),
		component.TransformComponent.Kind(),
		component.SizeComponent.Kind(),
		func(e ecs.Entity, _ *component.Enemy, t *component.Transform, sz *component.Size) {
			if rectOf(t, sz).Intersects(screen) {
				s.kill(w, e, false)
			}
		})
	if dmg := s.cfg.Player.SpecialBossDamage; dmg > 0 {
		s.boss.DamageBoss(w, dmg)
	}
	c := screen.Center()
	radius := math.Max(screen.Width, screen.Height) / 2
	if _, err := entity.NewEffect(w, component.EffectSpecial, c.X, c.Y, radius, specialFrames); err != nil {
		fmt.Printf("collision: special effect: %v\n", err)
	}
	ecs.PlaySound(w, "special")
}

func (s *CollisionSystem) contacts(w *ecs.World) {
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	pr := p.Rect()

	ecs.ForEach3(w,
		component.EnemyComponent.Kind(),
		component.TransformComponent.Kind(),
		component.SizeComponent.Kind(),
		func(e ecs.Entity, _ *component.Enemy, t *component.Transform, sz *component.Size) {
			if rectOf(t, sz).Intersects(pr) && s.player.TakeDamage(w) {
				ecs.DestroyEntity(w, e)
			}
		})

	if boss, ok := findBoss(w); ok && !boss.Runtime.Defeated && boss.Rect().Intersects(pr) {
		s.player.TakeDamage(w)
	}

	ecs.ForEach3(w,
		component.PickupComponent.Kind(),
		component.TransformComponent.Kind(),
		component.SizeComponent.Kind(),
		func(e ecs.Entity, _ *component.Pickup, t *component.Transform, sz *component.Size) {
			if rectOf(t, sz).Intersects(pr) {
				s.pickups.Collect(w, e)
			}
		})
}
