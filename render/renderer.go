// Package render draws a session's world and HUD with ebiten primitives.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/game"
	"github.com/milk9111/hellshooter/prefabs"
)

const lineHeight = 16

type Renderer struct {
	cfg  *prefabs.Config
	face text.Face
}

func NewRenderer(cfg *prefabs.Config) *Renderer {
	return &Renderer{
		cfg:  cfg,
		face: text.NewGoXFace(basicfont.Face7x13),
	}
}

func (r *Renderer) Face() text.Face {
	return r.face
}

// Draw paints the play field back to front, then the HUD.
func (r *Renderer) Draw(screen *ebiten.Image, w *ecs.World, hud game.HUD) {
	if r == nil || screen == nil {
		return
	}
	screen.Fill(colBackground)
	if w == nil {
		return
	}

	r.drawRedLines(screen, w)
	r.drawMines(screen, w)
	r.drawPickups(screen, w)
	r.drawEnemies(screen, w)
	r.drawBoss(screen, w)
	r.drawBullets(screen, w)
	r.drawPlayer(screen, w)
	r.drawEffects(screen, w)
	r.drawHUD(screen, hud)
}

func rect(w *ecs.World, e ecs.Entity) (x, y, wd, ht float32, ok bool) {
	t, okT := ecs.Get(w, e, component.TransformComponent.Kind())
	s, okS := ecs.Get(w, e, component.SizeComponent.Kind())
	if !okT || !okS {
		return 0, 0, 0, 0, false
	}
	return float32(t.X), float32(t.Y), float32(s.W), float32(s.H), true
}

func flashing(w *ecs.World, e ecs.Entity) bool {
	f, ok := ecs.Get(w, e, component.WhiteFlashComponent.Kind())
	return ok && f.On
}

func (r *Renderer) drawRedLines(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach(w, component.RedLineComponent.Kind(), func(e ecs.Entity, l *component.RedLine) {
		x, y, wd, ht, ok := rect(w, e)
		if !ok {
			return
		}
		c := color.Color(colRedLine)
		if !l.Active() {
			c = colTelegraph
		}
		vector.DrawFilledRect(screen, x, y, wd, ht, c, false)
	})
}

func (r *Renderer) drawMines(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach(w, component.MineComponent.Kind(), func(e ecs.Entity, m *component.Mine) {
		x, y, wd, ht, ok := rect(w, e)
		if !ok {
			return
		}
		cx, cy := x+wd/2, y+ht/2
		if m.Armed() {
			vector.DrawFilledCircle(screen, cx, cy, float32(m.Radius), color.RGBA{R: 0xff, G: 0x8c, A: 0x90}, true)
			return
		}
		vector.StrokeCircle(screen, cx, cy, float32(m.Radius), 1, colDim, true)
		vector.DrawFilledCircle(screen, cx, cy, wd/2, colMine, true)
	})
}

func (r *Renderer) drawPickups(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach(w, component.PickupComponent.Kind(), func(e ecs.Entity, p *component.Pickup) {
		x, y, wd, ht, ok := rect(w, e)
		if !ok {
			return
		}
		switch p.Kind {
		case component.PickupHeart:
			vector.DrawFilledCircle(screen, x+wd/2, y+ht/2, wd/2, colHeart, true)
		case component.PickupPowerUp:
			vector.DrawFilledRect(screen, x, y, wd, ht, powerUpColor(p.PowerUp), false)
			vector.StrokeRect(screen, x, y, wd, ht, 1, colText, false)
		}
	})
}

func (r *Renderer) drawEnemies(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach(w, component.EnemyComponent.Kind(), func(e ecs.Entity, en *component.Enemy) {
		x, y, wd, ht, ok := rect(w, e)
		if !ok {
			return
		}
		c := enemyColor(en.Kind)
		if en.Summoned {
			c = colSummoned
		}
		vector.DrawFilledRect(screen, x, y, wd, ht, c, false)
	})
}

func (r *Renderer) drawBoss(screen *ebiten.Image, w *ecs.World) {
	e, rt, ok := ecs.First(w, component.BossRuntimeComponent.Kind())
	if !ok {
		return
	}
	x, y, wd, ht, ok := rect(w, e)
	if !ok {
		return
	}
	c := color.Color(colBoss)
	if !rt.Phase.Vulnerable() {
		c = colBossImmune
	}
	if flashing(w, e) {
		c = colText
	}
	vector.DrawFilledRect(screen, x, y, wd, ht, c, false)
	vector.StrokeRect(screen, x, y, wd, ht, 2, colText, false)
}

func (r *Renderer) drawBullets(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach(w, component.BulletComponent.Kind(), func(e ecs.Entity, b *component.Bullet) {
		x, y, wd, ht, ok := rect(w, e)
		if !ok {
			return
		}
		c := colBullet
		if b.Explosive {
			c = colExplosive
		}
		vector.DrawFilledRect(screen, x, y, wd, ht, c, false)
	})
	ecs.ForEach(w, component.BossBulletComponent.Kind(), func(e ecs.Entity, _ *component.BossBullet) {
		x, y, wd, ht, ok := rect(w, e)
		if !ok {
			return
		}
		vector.DrawFilledCircle(screen, x+wd/2, y+ht/2, wd/2, colBossBullet, true)
	})
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, w *ecs.World) {
	e, _, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	x, y, wd, ht, ok := rect(w, e)
	if !ok {
		return
	}
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	if inv, ok := ecs.Get(w, e, component.InvulnerableComponent.Kind()); ok && inv.Frames%8 >= 4 && !flashing(w, e) {
		return
	}

	c := color.Color(colPlayer)
	if flashing(w, e) {
		c = colText
	}
	vector.DrawFilledRect(screen, x+wd/3, y, wd/3, ht, c, false)
	vector.DrawFilledRect(screen, x, y+ht/2, wd, ht/2, c, false)

	if p.Active(component.PowerUpShield) {
		vector.StrokeCircle(screen, x+wd/2, y+ht/2, float32(math.Max(float64(wd), float64(ht))), 2, colShield, true)
	}
}

func (r *Renderer) drawEffects(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach(w, component.EffectComponent.Kind(), func(e ecs.Entity, fx *component.Effect) {
		x, y, wd, ht, ok := rect(w, e)
		if !ok {
			return
		}
		radius := float32(math.Max(float64(wd), float64(ht))) / 2
		vector.StrokeCircle(screen, x+wd/2, y+ht/2, radius, 2, effectColor(fx.Kind), true)
	})
}

func (r *Renderer) text(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, r.face, op)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, hud game.HUD) {
	width := r.cfg.Screen.Width

	r.text(screen, fmt.Sprintf("LEVEL %d   SCORE %d   KILLS %d", hud.Level, hud.Score, hud.Kills), 8, 4, colText)
	for i := 0; i < hud.MaxLives; i++ {
		c := colDim
		if i < hud.Lives {
			c = colHeart
		}
		vector.DrawFilledCircle(screen, float32(width)-16-float32(i)*18, 12, 6, c, true)
	}

	y := 4.0 + lineHeight
	if hud.Combo > 1 {
		label := fmt.Sprintf("x%.1f  %d COMBO", hud.Multiplier, hud.Combo)
		if hud.ComboText != "" {
			label += "  " + hud.ComboText
		}
		r.text(screen, label, 8, y, NamedColor(hud.ComboColor))
		y += lineHeight
	}
	if hud.PowerUp != "" {
		r.text(screen, fmt.Sprintf("%s %ds", hud.PowerUp, hud.PowerUpFrames/60), 8, y, colText)
		y += lineHeight
	}
	if hud.SlowMotion {
		r.text(screen, "SLOW MOTION", 8, y, colShield)
	}

	if hud.SpecialMax > 0 {
		frac := float32(hud.Special) / float32(hud.SpecialMax)
		vector.DrawFilledRect(screen, 8, float32(r.cfg.Screen.Height)-14, 120, 6, colDim, false)
		vector.DrawFilledRect(screen, 8, float32(r.cfg.Screen.Height)-14, 120*frac, 6, colShield, false)
	}

	if hud.Boss {
		r.drawBossBar(screen, hud)
	}
}

func (r *Renderer) drawBossBar(screen *ebiten.Image, hud game.HUD) {
	width := float32(r.cfg.Screen.Width)
	barW := width / 2
	x := (width - barW) / 2
	frac := float32(0)
	if hud.BossMax > 0 {
		frac = float32(hud.BossHealth) / float32(hud.BossMax)
	}
	vector.DrawFilledRect(screen, x, 28, barW, 8, colDim, false)
	vector.DrawFilledRect(screen, x, 28, barW*frac, 8, colRedLine, false)
	r.text(screen, hud.BossPhase, float64(x), 38, colText)

	if y := hud.Yanken; y != nil {
		msg := fmt.Sprintf("ROUND %d  WINS %d  boss shows %s", y.Round, y.Wins, y.BossHand)
		r.text(screen, msg, float64(x), 38+lineHeight, colText)
		r.drawThirds(screen)
	}
}

// drawThirds marks the rock, paper and scissors zones of the screen.
func (r *Renderer) drawThirds(screen *ebiten.Image) {
	w := float32(r.cfg.Screen.Width)
	h := float32(r.cfg.Screen.Height)
	for i, hand := range []component.Hand{component.Rock, component.Paper, component.Scissors} {
		x := w * float32(i) / 3
		if i > 0 {
			vector.StrokeLine(screen, x, 0, x, h, 1, colDim, false)
		}
		r.text(screen, hand.String(), float64(x+w/6-20), float64(h-40), colDim)
	}
}
