package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/hellshooter/audio"
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/game"
	"github.com/milk9111/hellshooter/prefabs"
	"github.com/milk9111/hellshooter/ranking"
	"github.com/milk9111/hellshooter/render"
	"github.com/milk9111/hellshooter/settings"
)

const noticeFrames = 180

type Options struct {
	Seed       int64
	StartLevel int
	Debug      bool
	Watch      bool
}

// Game adapts a game.Session to ebiten. It owns everything that outlives a
// single run: config, audio, ranking, settings and the overlays.
type Game struct {
	opts Options

	cfg     *prefabs.Config
	session *game.Session
	watcher *prefabs.Watcher
	reload  *prefabs.Config

	input    *Input
	renderer *render.Renderer
	sounds   *audio.SoundManager
	ranking  *ranking.Client
	store    *settings.Store

	paused   bool
	quit     bool
	pauseUI  *ebitenui.UI
	overUI   *ebitenui.UI
	overShow bool

	notice       string
	noticeFrames int
}

func NewGame(cfg *prefabs.Config, opts Options) (*Game, error) {
	store := settings.Open("hellshooter")
	st := store.Get()

	sounds := audio.NewSoundManager(st.Volume)
	if err := sounds.Initialize(); err != nil {
		log.Printf("audio disabled: %v", err)
	}
	sounds.SetMuted(st.Muted)

	g := &Game{
		opts:     opts,
		cfg:      cfg,
		input:    NewInput(),
		renderer: render.NewRenderer(cfg),
		sounds:   sounds,
		ranking:  ranking.NewClient(cfg.Ranking, st.PlayerName),
		store:    store,
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("config watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// restart begins a fresh session, picking up any config reloaded since the
// last one started.
func (g *Game) restart() error {
	if g.session != nil {
		g.session.Close()
	}
	if cfg := g.reload; cfg != nil {
		g.cfg = cfg
		g.renderer = render.NewRenderer(cfg)
		g.ranking = ranking.NewClient(cfg.Ranking, g.store.Get().PlayerName)
		g.showNotice("config reloaded")
		g.reload = nil
	}

	opts := []game.Option{
		game.WithSounds(g.sounds),
		game.WithReporter(g.ranking),
		game.WithEventHandler(g.onEvent),
	}
	if g.opts.Seed != 0 {
		opts = append(opts, game.WithSeed(g.opts.Seed))
	}
	if g.opts.StartLevel > 1 {
		opts = append(opts, game.WithStartLevel(g.opts.StartLevel))
	}

	s, err := game.NewSession(g.cfg, opts...)
	if err != nil {
		return err
	}
	g.session = s
	g.paused = false
	g.overShow = false
	g.overUI = nil
	return nil
}

func (g *Game) onEvent(ev ecs.Event) {
	switch ev.Type {
	case ecs.EventLevelUp:
		g.showNotice(fmt.Sprintf("LEVEL %v", ev.Data))
	case ecs.EventBossPhase:
		g.showNotice(fmt.Sprintf("boss: %v", ev.Data))
	}
}

func (g *Game) showNotice(msg string) {
	g.notice = msg
	g.noticeFrames = noticeFrames
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.pollBackground()

	if g.noticeFrames > 0 {
		g.noticeFrames--
	}

	if g.session.Over() {
		if !g.overShow {
			g.showGameOver()
		}
		g.overUI.Update()
		if restartPressed() {
			return g.restart()
		}
		return nil
	}

	if pausePressed() {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	return g.session.Update(g.input.Read())
}

func (g *Game) showGameOver() {
	res, _ := g.session.Result()
	if g.store.RecordScore(res.Score, res.Level) {
		g.showNotice("new best score")
	}
	if err := g.store.Save(); err != nil {
		log.Printf("settings: %v", err)
	}
	g.overUI = NewGameOverUI(g, res, g.store.Get())
	g.overShow = true
}

// pollBackground drains the config watcher and ranking notices without
// blocking.
func (g *Game) pollBackground() {
	if g.watcher != nil {
	drain:
		for {
			select {
			case r, ok := <-g.watcher.Events:
				if !ok {
					g.watcher = nil
					break drain
				}
				if r.Err != nil {
					log.Printf("config: reload after %s: %v", r.Path, r.Err)
					g.showNotice(fmt.Sprintf("config reload failed: %v", r.Err))
					continue
				}
				log.Printf("config: %s changed, applies to the next run", r.Path)
				g.reload = r.Config
				g.showNotice("config changed; restart to apply")
			case err, ok := <-g.watcher.Errors:
				if !ok {
					break drain
				}
				log.Printf("config: watch: %v", err)
			default:
				break drain
			}
		}
	}

	select {
	case n := <-g.ranking.Notices():
		if n.Err != nil {
			g.showNotice("ranking submit failed")
		} else {
			g.showNotice("score submitted")
		}
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.session.World(), g.session.HUD())

	if g.noticeFrames > 0 && g.notice != "" {
		ebitenutil.DebugPrintAt(screen, g.notice, 8, int(g.cfg.Screen.Height)-40)
	}
	if g.opts.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("frame %d  FPS %.1f  entities %d",
			g.session.Frame(), ebiten.ActualFPS(), len(ecs.Entities(g.session.World()))),
			8, int(g.cfg.Screen.Height)-24)
	}

	switch {
	case g.overShow && g.overUI != nil:
		g.overUI.Draw(screen)
	case g.paused:
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.cfg.Screen.Width), int(g.cfg.Screen.Height)
}

func (g *Game) SetMuted(m bool) {
	g.sounds.SetMuted(m)
	g.store.SetMuted(m)
	if err := g.store.Save(); err != nil {
		log.Printf("settings: %v", err)
	}
}

func (g *Game) Muted() bool {
	return g.store.Get().Muted
}

// Close flushes pending submissions and releases the audio device.
func (g *Game) Close() {
	if g.session != nil {
		g.session.Close()
	}
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.ranking.Wait()
	g.sounds.Cleanup()
}
