package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/hellshooter/game"
	"github.com/milk9111/hellshooter/settings"
)

var (
	panelColor = color.NRGBA{A: 200}
	buttonIdle = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	buttonDown = color.NRGBA{R: 0x55, G: 0x22, B: 0x22, A: 0xff}
	white      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type overlay struct {
	face  ebtext.Face
	panel *widget.Container
}

func newOverlay(g *Game) *overlay {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(int(g.cfg.Screen.Width)/2, int(g.cfg.Screen.Height)/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	return &overlay{face: face, panel: panel}
}

func (o *overlay) label(s string) *widget.Text {
	t := widget.NewText(
		widget.TextOpts.Text(s, &o.face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	o.panel.AddChild(t)
	return t
}

func (o *overlay) button(s string, onClick func()) *widget.Button {
	img := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(buttonIdle),
		Pressed: imageui.NewNineSliceColor(buttonDown),
	}
	b := widget.NewButton(
		widget.ButtonOpts.Image(img),
		widget.ButtonOpts.Text(s, &o.face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
	)
	o.panel.AddChild(b)
	return b
}

func (o *overlay) ui() *ebitenui.UI {
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(o.panel)
	return &ebitenui.UI{Container: root}
}

// NewPauseUI builds the pause menu: resume, restart, sound toggle and quit.
func NewPauseUI(g *Game) *ebitenui.UI {
	o := newOverlay(g)
	o.label("Paused")
	o.button("Resume", func() { g.paused = false })
	o.button("Restart", func() {
		if err := g.restart(); err != nil {
			log.Printf("restart: %v", err)
		}
	})

	var sound *widget.Button
	soundLabel := func() string {
		if g.Muted() {
			return "Sound: off"
		}
		return "Sound: on"
	}
	sound = o.button(soundLabel(), func() {
		g.SetMuted(!g.Muted())
		if text := sound.Text(); text != nil {
			text.Label = soundLabel()
		}
	})
	o.button("Quit", func() { g.quit = true })
	return o.ui()
}

// NewGameOverUI shows the run summary with a restart button and a way to
// copy the result line.
func NewGameOverUI(g *Game, res game.Result, st settings.Settings) *ebitenui.UI {
	o := newOverlay(g)
	if res.Won {
		o.label("VICTORY")
	} else {
		o.label("GAME OVER")
	}
	o.label(res.String())
	best := o.label("")
	best.Label = bestLine(st)

	o.button("Play again (R)", func() {
		if err := g.restart(); err != nil {
			log.Printf("restart: %v", err)
		}
	})
	o.button("Copy result", func() {
		if err := clipboard.Init(); err != nil {
			g.showNotice("clipboard unavailable")
			return
		}
		clipboard.Write(clipboard.FmtText, []byte(res.String()))
		g.showNotice("result copied")
	})
	o.button("Quit", func() { g.quit = true })
	return o.ui()
}

func bestLine(st settings.Settings) string {
	if st.BestScore == 0 {
		return ""
	}
	return fmt.Sprintf("best %d (level %d)", st.BestScore, st.BestLevel)
}
