package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/game"
)

// grid maps world coordinates onto terminal cells. Row 0 is reserved for
// the HUD.
type grid struct {
	cols, rows     int
	worldW, worldH float64
}

func (g grid) cell(x, y float64) (int, int, bool) {
	if g.cols <= 0 || g.rows <= 1 || g.worldW <= 0 || g.worldH <= 0 || x < 0 || y < 0 {
		return 0, 0, false
	}
	cx := int(x / g.worldW * float64(g.cols))
	cy := 1 + int(y/g.worldH*float64(g.rows-1))
	if cx < 0 || cx >= g.cols || cy < 1 || cy >= g.rows {
		return 0, 0, false
	}
	return cx, cy, true
}

type glyph struct {
	r     rune
	style tcell.Style
}

func glyphFor(w *ecs.World, e ecs.Entity) (glyph, bool) {
	def := tcell.StyleDefault
	switch {
	case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
		return glyph{'A', def.Foreground(tcell.ColorAqua).Bold(true)}, true
	case ecs.Has(w, e, component.BossRuntimeComponent.Kind()):
		return glyph{'#', def.Foreground(tcell.ColorRed).Bold(true)}, true
	case ecs.Has(w, e, component.BulletComponent.Kind()):
		return glyph{'|', def.Foreground(tcell.ColorYellow)}, true
	case ecs.Has(w, e, component.BossBulletComponent.Kind()):
		return glyph{'*', def.Foreground(tcell.ColorFuchsia)}, true
	case ecs.Has(w, e, component.MineComponent.Kind()):
		return glyph{'o', def.Foreground(tcell.ColorOrange)}, true
	case ecs.Has(w, e, component.RedLineComponent.Kind()):
		return glyph{'=', def.Foreground(tcell.ColorRed)}, true
	}
	if en, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok {
		switch en.Kind {
		case component.EnemyMeteor:
			return glyph{'@', def.Foreground(tcell.ColorSaddleBrown)}, true
		case component.EnemyExtra:
			return glyph{'X', def.Foreground(tcell.ColorGold)}, true
		default:
			return glyph{'x', def.Foreground(tcell.ColorLime)}, true
		}
	}
	if p, ok := ecs.Get(w, e, component.PickupComponent.Kind()); ok {
		if p.Kind == component.PickupHeart {
			return glyph{'+', def.Foreground(tcell.ColorHotPink)}, true
		}
		return glyph{'P', def.Foreground(tcell.ColorViolet)}, true
	}
	return glyph{}, false
}

func (t *tty) draw() {
	t.screen.Clear()
	cols, rows := t.screen.Size()
	g := grid{cols: cols, rows: rows, worldW: t.cfg.Screen.Width, worldH: t.cfg.Screen.Height}

	w := t.session.World()
	for _, e := range ecs.Entities(w) {
		gl, ok := glyphFor(w, e)
		if !ok {
			continue
		}
		tr, okT := ecs.Get(w, e, component.TransformComponent.Kind())
		sz, okS := ecs.Get(w, e, component.SizeComponent.Kind())
		if !okT || !okS {
			continue
		}
		x0, y0, ok0 := g.cell(tr.X, tr.Y)
		x1, y1, ok1 := g.cell(tr.X+sz.W-1, tr.Y+sz.H-1)
		if !ok0 && !ok1 {
			continue
		}
		if !ok0 {
			x0, y0 = x1, y1
		}
		if !ok1 {
			x1, y1 = x0, y0
		}
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				t.screen.SetContent(x, y, gl.r, nil, gl.style)
			}
		}
	}

	t.drawText(0, 0, hudLine(t.session.HUD()), tcell.StyleDefault.Reverse(true))
	if res, ok := t.session.Result(); ok {
		t.drawText(2, rows/2, res.String()+"   (r) again  (q) quit", tcell.StyleDefault.Bold(true))
	}
	t.screen.Show()
}

func (t *tty) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func hudLine(h game.HUD) string {
	s := fmt.Sprintf(" L%d  lives %d/%d  score %d  kills %d", h.Level, h.Lives, h.MaxLives, h.Score, h.Kills)
	if h.Combo > 1 {
		s += fmt.Sprintf("  x%.1f %s", h.Multiplier, h.ComboText)
	}
	if h.PowerUp != "" {
		s += "  [" + h.PowerUp + "]"
	}
	if h.Boss {
		s += fmt.Sprintf("  boss %d/%d %s", h.BossHealth, h.BossMax, h.BossPhase)
		if h.Yanken != nil {
			s += fmt.Sprintf(" round %d wins %d boss:%s", h.Yanken.Round, h.Yanken.Wins, h.Yanken.BossHand)
		}
	}
	return s + " "
}
