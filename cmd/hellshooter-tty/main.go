// Command hellshooter-tty plays the game in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/hellshooter/audio"
	"github.com/milk9111/hellshooter/game"
	"github.com/milk9111/hellshooter/prefabs"
	"github.com/milk9111/hellshooter/ranking"
)

// Terminals report presses but not releases, so a key counts as held for
// this many frames after its last repeat.
const holdFrames = 8

func main() {
	seed := flag.Int64("seed", 0, "fixed RNG seed (0 picks one from the clock)")
	player := flag.String("player", "pilot", "name sent with ranking submissions")
	mute := flag.Bool("mute", false, "disable sound")
	logFile := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := prefabs.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sounds := audio.NewSoundManager(0.6)
	if !*mute {
		if err := sounds.Initialize(); err != nil {
			log.Printf("audio disabled: %v", err)
		}
	}
	client := ranking.NewClient(cfg.Ranking, *player)

	t := &tty{screen: screen, cfg: cfg, sounds: sounds, ranking: client, seed: *seed}
	err = t.run()
	screen.Fini()
	client.Wait()
	sounds.Cleanup()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if t.session == nil {
		return
	}
	if res, ok := t.session.Result(); ok {
		fmt.Println(res.String())
	}
}

type tty struct {
	screen  tcell.Screen
	cfg     *prefabs.Config
	sounds  *audio.SoundManager
	ranking *ranking.Client
	seed    int64
	session *game.Session

	held map[string]int
}

func (t *tty) newSession() error {
	opts := []game.Option{game.WithSounds(t.sounds), game.WithReporter(t.ranking)}
	if t.seed != 0 {
		opts = append(opts, game.WithSeed(t.seed))
	}
	s, err := game.NewSession(t.cfg, opts...)
	if err != nil {
		return err
	}
	if t.session != nil {
		t.session.Close()
	}
	t.session = s
	t.held = map[string]int{}
	return nil
}

func (t *tty) run() error {
	if err := t.newSession(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			quit, err := t.handle(ev)
			if err != nil || quit {
				return err
			}
		case <-ticker.C:
			if err := t.session.Update(t.input()); err != nil {
				return err
			}
			t.draw()
		}
	}
}

func (t *tty) handle(ev tcell.Event) (quit bool, err error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyLeft:
			t.held["left"] = holdFrames
		case tcell.KeyRight:
			t.held["right"] = holdFrames
		case tcell.KeyUp:
			t.held["up"] = holdFrames
		case tcell.KeyDown:
			t.held["down"] = holdFrames
		case tcell.KeyEnter:
			if t.session.Over() {
				return false, t.newSession()
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'a':
				t.held["left"] = holdFrames
			case 'd':
				t.held["right"] = holdFrames
			case 'w':
				t.held["up"] = holdFrames
			case 's':
				t.held["down"] = holdFrames
			case ' ':
				t.held["shoot"] = holdFrames
			case 'q':
				return true, nil
			case 'r':
				if t.session.Over() {
					return false, t.newSession()
				}
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return false, nil
}

func (t *tty) input() game.Input {
	var in game.Input
	if t.held["left"] > 0 {
		in.MoveX--
	}
	if t.held["right"] > 0 {
		in.MoveX++
	}
	if t.held["up"] > 0 {
		in.MoveY--
	}
	if t.held["down"] > 0 {
		in.MoveY++
	}
	in.Shoot = t.held["shoot"] > 0
	for k, v := range t.held {
		if v > 0 {
			t.held[k] = v - 1
		}
	}
	return in
}
