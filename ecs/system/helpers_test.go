package system

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/hellshooter/common"
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/ecs/entity"
	"github.com/milk9111/hellshooter/prefabs"
)

// testRNG returns a seeded RNG for deterministic tests
func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func testConfig(t *testing.T) *prefabs.Config {
	t.Helper()
	cfg, err := prefabs.LoadConfig()
	require.NoError(t, err)
	return cfg
}

type fixture struct {
	cfg *prefabs.Config
	w   *ecs.World

	timeScale *TimeScaleSystem
	enemies   *EnemySystem
	player    *PlayerSystem
	combo     *ComboSystem
	pickups   *PickupSystem
	movement  *BossMovementSystem
	boss      *BossSystem
	hazard    *HazardSystem
	collision *CollisionSystem
}

// newFixture builds a world with the session singletons and the player,
// plus every gameplay system sharing one seeded RNG.
func newFixture(t *testing.T, cfg *prefabs.Config) *fixture {
	t.Helper()
	w := ecs.NewWorld()
	_, err := entity.NewGameState(w, cfg, 1)
	require.NoError(t, err)
	_, err = entity.NewPlayer(w, cfg)
	require.NoError(t, err)

	rng := testRNG()
	f := &fixture{cfg: cfg, w: w}
	f.timeScale = NewTimeScaleSystem(cfg)
	f.enemies = NewEnemySystem(cfg, rng)
	f.player = NewPlayerSystem(cfg)
	f.combo = NewComboSystem(cfg)
	f.pickups = NewPickupSystem(cfg, rng, f.player)
	f.movement = NewBossMovementSystem(cfg, rng, nil)
	f.boss = NewBossSystem(cfg, rng, f.movement, f.player, f.enemies, nil)
	f.hazard = NewHazardSystem(cfg, f.player)
	f.collision = NewCollisionSystem(cfg, f.combo, f.player, f.pickups, f.boss)
	f.setFrame(1)
	return f
}

func (f *fixture) setFrame(frame int) {
	f.w.SetTick(ecs.Tick{Frame: frame, NowMS: float64(frame) * common.FrameMS, TimeScale: 1})
}

func (f *fixture) playerRef(t *testing.T) playerRef {
	t.Helper()
	p, ok := findPlayer(f.w)
	require.True(t, ok)
	return p
}

// movePlayer centers the player on (cx, cy).
func (f *fixture) movePlayer(t *testing.T, cx, cy float64) {
	p := f.playerRef(t)
	p.Transform.X = cx - p.Size.W/2
	p.Transform.Y = cy - p.Size.H/2
}

func (f *fixture) spawnEnemy(t *testing.T, cx, cy, size, vx, vy float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewEnemy(f.w, f.cfg, entity.EnemySpawn{
		Kind: component.EnemyNormal,
		X:    cx - size/2,
		Y:    cy - size/2,
		Size: size,
		VX:   vx,
		VY:   vy,
	})
	require.NoError(t, err)
	return e
}

func (f *fixture) spawnBoss(t *testing.T) bossRef {
	t.Helper()
	_, err := entity.NewBoss(f.w, f.cfg)
	require.NoError(t, err)
	f.boss.Update(f.w)
	b, ok := findBoss(f.w)
	require.True(t, ok)
	return b
}

// enterPhase forces the boss runtime into phase through the state machine.
func (f *fixture) enterPhase(t *testing.T, b bossRef, phase component.BossPhase) {
	t.Helper()
	for i, p := range f.boss.phases {
		if p == phase {
			f.boss.enter(f.w, b, i)
			return
		}
	}
	t.Fatalf("phase %s not configured", phase)
}

func countEvents(events []ecs.Event, typ string, data any) int {
	n := 0
	for _, ev := range events {
		if ev.Type != typ {
			continue
		}
		if data != nil && ev.Data != data {
			continue
		}
		n++
	}
	return n
}
