package system

import (
	"fmt"

	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/ecs/entity"
	"github.com/milk9111/hellshooter/prefabs"
)

// HazardSystem runs everything the boss leaves behind: mines, red lines and
// BulletML bullets. Contact with the player goes through TakeDamage.
type HazardSystem struct {
	cfg    *prefabs.Config
	player *PlayerSystem
}

func NewHazardSystem(cfg *prefabs.Config, player *PlayerSystem) *HazardSystem {
	return &HazardSystem{cfg: cfg, player: player}
}

func (s *HazardSystem) Update(w *ecs.World) {
	if w == nil || gameOver(w) {
		return
	}
	s.mines(w)
	s.redLines(w)
	s.bullets(w)
}

func (s *HazardSystem) mines(w *ecs.World) {
	p, hasPlayer := findPlayer(w)
	ecs.ForEach3(w,
		component.MineComponent.Kind(),
		component.TransformComponent.Kind(),
		component.SizeComponent.Kind(),
		func(e ecs.Entity, m *component.Mine, t *component.Transform, sz *component.Size) {
			c := rectOf(t, sz).Center()
			if m.Fuse > 0 {
				m.Fuse--
				if m.Fuse == 0 {
					ecs.PlaySound(w, "explosion")
					if _, err := entity.NewEffect(w, component.EffectMineBlast, c.X, c.Y, m.Radius, m.Blast); err != nil {
						fmt.Printf("hazard: mine blast: %v\n", err)
					}
				}
				return
			}
			if m.Armed() && hasPlayer && p.Center().Sub(c).Length() <= m.Radius {
				s.player.TakeDamage(w)
			}
			m.Blast--
			if m.Blast <= 0 {
				ecs.DestroyEntity(w, e)
			}
		})
}

func (s *HazardSystem) redLines(w *ecs.World) {
	scale := w.Tick().TimeScale
	ecs.ForEach3(w,
		component.RedLineComponent.Kind(),
		component.TransformComponent.Kind(),
		component.SizeComponent.Kind(),
		func(e ecs.Entity, line *component.RedLine, t *component.Transform, sz *component.Size) {
			if line.Telegraph > 0 {
				line.Telegraph--
				return
			}
			line.Pos += line.Speed * scale
			t.X, t.Y, sz.W, sz.H = entity.RedLineBounds(s.cfg, line)

			limit := s.cfg.Screen.Height
			if line.Vertical {
				limit = s.cfg.Screen.Width
			}
			if line.Pos > limit {
				ecs.DestroyEntity(w, e)
				return
			}
			if p, ok := findPlayer(w); ok && rectOf(t, sz).Intersects(p.Rect()) {
				s.player.TakeDamage(w)
			}
		})
}

// bullets steps every BulletML bullet once per scaled frame and copies its
// position into Transform.
func (s *HazardSystem) bullets(w *ecs.World) {
	scale := w.Tick().TimeScale
	screen := screenRect(s.cfg)
	ecs.ForEach3(w,
		component.BossBulletComponent.Kind(),
		component.TransformComponent.Kind(),
		component.SizeComponent.Kind(),
		func(e ecs.Entity, b *component.BossBullet, t *component.Transform, sz *component.Size) {
			if b.Runner == nil {
				ecs.DestroyEntity(w, e)
				return
			}
			b.Step += scale
			for b.Step >= 1 {
				b.Step--
				if err := b.Runner.Update(); err != nil {
					fmt.Printf("hazard: bullet update: %v\n", err)
					ecs.DestroyEntity(w, e)
					return
				}
			}
			x, y := b.Runner.Position()
			t.X, t.Y = x-sz.W/2, y-sz.H/2

			r := rectOf(t, sz)
			if b.Runner.Vanished() || !r.Intersects(screen) {
				ecs.DestroyEntity(w, e)
				return
			}
			if p, ok := findPlayer(w); ok && r.Intersects(p.Rect()) {
				s.player.TakeDamage(w)
				ecs.DestroyEntity(w, e)
			}
		})
}
