package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/hellshooter/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "show frame and entity counters")
	seed := flag.Int64("seed", 0, "fixed RNG seed (0 picks one from the clock)")
	level := flag.Int("level", 1, "starting level")
	watch := flag.Bool("watch", false, "reload prefabs/ edits for the next run")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := prefabs.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(cfg.Screen.Width), int(cfg.Screen.Height))
	ebiten.SetWindowTitle("hell shooter")

	g, err := NewGame(cfg, Options{Seed: *seed, StartLevel: *level, Debug: *debug, Watch: *watch})
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
