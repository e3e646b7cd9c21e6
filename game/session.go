// Package game owns one play session: the world, the scheduler and the
// systems, fed one Input per tick by a frontend.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/milk9111/hellshooter/common"
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/ecs/entity"
	"github.com/milk9111/hellshooter/ecs/system"
	"github.com/milk9111/hellshooter/prefabs"
)

var ErrClosed = errors.New("game: session closed")

// Input is the player intent for one tick. MoveX/MoveY are key directions in
// [-1, 1]; DragDX/DragDY are touch deltas in pixels.
type Input struct {
	MoveX, MoveY   float64
	DragDX, DragDY float64
	Shoot          bool
}

// Sounds plays named effects. Implementations must not block.
type Sounds interface {
	Play(name string)
}

// Reporter receives the final result of a session exactly once.
type Reporter interface {
	Submit(Result)
}

type Result struct {
	Level    int
	Score    int
	Kills    int
	Duration time.Duration
	Won      bool
}

func (r Result) String() string {
	outcome := "defeat"
	if r.Won {
		outcome = "victory"
	}
	return fmt.Sprintf("%s: level %d, score %d, kills %d, time %s",
		outcome, r.Level, r.Score, r.Kills, r.Duration.Round(time.Second))
}

type Option func(*Session)

func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

func WithSounds(sounds Sounds) Option {
	return func(s *Session) { s.sounds = sounds }
}

func WithReporter(r Reporter) Option {
	return func(s *Session) { s.reporter = r }
}

// WithScript overrides the boss tuning script named in the config. A nil
// script disables scripting.
func WithScript(script *system.BossScript) Option {
	return func(s *Session) {
		s.script = script
		s.scriptSet = true
	}
}

// WithStartLevel skips ahead, mostly for practice and tests.
func WithStartLevel(level int) Option {
	return func(s *Session) { s.startLevel = level }
}

// WithEventHandler receives every non-sound event after each tick.
func WithEventHandler(fn func(ecs.Event)) Option {
	return func(s *Session) { s.onEvent = fn }
}

type Session struct {
	cfg       *prefabs.Config
	world     *ecs.World
	scheduler *ecs.Scheduler

	seed       int64
	sounds     Sounds
	reporter   Reporter
	script     *system.BossScript
	scriptSet  bool
	startLevel int
	onEvent    func(ecs.Event)

	boss *system.BossSystem

	frame  int
	over   bool
	closed bool
	result Result
	hud    HUD
}

func NewSession(cfg *prefabs.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("game: nil config")
	}
	s := &Session{
		cfg:        cfg,
		world:      ecs.NewWorld(),
		seed:       time.Now().UnixNano(),
		startLevel: 1,
	}
	for _, opt := range opts {
		opt(s)
	}

	if !s.scriptSet && cfg.Boss.Script != "" {
		script, err := system.LoadBossScript(cfg.Boss.Script)
		if err != nil {
			// The built-in formulas still apply.
			fmt.Printf("game: %v\n", err)
		}
		s.script = script
	}

	if _, err := entity.NewGameState(s.world, cfg, s.startLevel); err != nil {
		return nil, fmt.Errorf("game: create state: %w", err)
	}
	if _, err := entity.NewPlayer(s.world, cfg); err != nil {
		return nil, fmt.Errorf("game: create player: %w", err)
	}

	rng := rand.New(rand.NewSource(s.seed))
	timeScale := system.NewTimeScaleSystem(cfg)
	enemies := system.NewEnemySystem(cfg, rng)
	player := system.NewPlayerSystem(cfg)
	projectiles := system.NewProjectileSystem(cfg)
	combo := system.NewComboSystem(cfg)
	pickups := system.NewPickupSystem(cfg, rng, player)
	movement := system.NewBossMovementSystem(cfg, rng, s.script)
	boss := system.NewBossSystem(cfg, rng, movement, player, enemies, s.script)
	hazards := system.NewHazardSystem(cfg, player)
	collision := system.NewCollisionSystem(cfg, combo, player, pickups, boss)
	s.boss = boss

	s.scheduler = ecs.NewScheduler(
		timeScale,
		enemies,
		player,
		projectiles,
		combo,
		pickups,
		movement,
		boss,
		hazards,
		collision,
		system.NewInvulnerableSystem(),
		system.NewWhiteFlashSystem(),
		system.NewTTLSystem(),
	)
	s.hud = s.buildHUD()
	return s, nil
}

// Update runs one tick. It does nothing once the session is over.
func (s *Session) Update(in Input) error {
	if s.closed {
		return ErrClosed
	}
	if s.over {
		return nil
	}

	s.frame++
	s.world.SetTick(ecs.Tick{
		Frame:     s.frame,
		NowMS:     float64(s.frame) * common.FrameMS,
		TimeScale: 1,
	})
	s.applyInput(in)
	s.scheduler.Update(s.world)

	ended := false
	for _, ev := range s.world.Events().Drain() {
		switch ev.Type {
		case ecs.EventSound:
			if name, ok := ev.Data.(string); ok && s.sounds != nil {
				s.sounds.Play(name)
			}
			continue
		case ecs.EventVictory, ecs.EventGameOver:
			ended = true
		}
		if s.onEvent != nil {
			s.onEvent(ev)
		}
	}

	s.hud = s.buildHUD()
	if ended {
		s.finish()
	}
	return nil
}

func (s *Session) applyInput(in Input) {
	e, _, ok := ecs.First(s.world, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	c, ok := ecs.Get(s.world, e, component.InputComponent.Kind())
	if !ok {
		return
	}
	*c = component.Input{
		MoveX:  common.Finite(in.MoveX, 0),
		MoveY:  common.Finite(in.MoveY, 0),
		DragDX: common.Finite(in.DragDX, 0),
		DragDY: common.Finite(in.DragDY, 0),
		Shoot:  in.Shoot,
	}
}

// finish freezes the result, reports it once and clears the world so no
// timer or entity outlives the session.
func (s *Session) finish() {
	s.over = true
	s.result = Result{
		Level:    s.hud.Level,
		Score:    s.hud.Score,
		Kills:    s.hud.Kills,
		Duration: time.Duration(float64(s.frame) * common.FrameMS * float64(time.Millisecond)),
		Won:      s.hud.Won,
	}
	ecs.Clear(s.world)
	if s.reporter != nil {
		s.reporter.Submit(s.result)
	}
}

func (s *Session) World() *ecs.World { return s.world }

func (s *Session) Config() *prefabs.Config { return s.cfg }

func (s *Session) Over() bool { return s.over }

func (s *Session) Frame() int { return s.frame }

// Result is only meaningful once Over reports true.
func (s *Session) Result() (Result, bool) {
	return s.result, s.over
}

// HUD returns the snapshot taken after the last tick.
func (s *Session) HUD() HUD { return s.hud }

// Close drops every entity. The session cannot be updated afterwards.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	ecs.Clear(s.world)
}
