package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/ecs/entity"
	"github.com/milk9111/hellshooter/prefabs"
)

type recordingReporter struct {
	results []Result
}

func (r *recordingReporter) Submit(res Result) { r.results = append(r.results, res) }

type recordingSounds struct {
	played []string
}

func (r *recordingSounds) Play(name string) { r.played = append(r.played, name) }

func testConfig(t *testing.T) *prefabs.Config {
	t.Helper()
	cfg, err := prefabs.LoadConfig()
	require.NoError(t, err)
	return cfg
}

func eventCounter(counts map[string]int) Option {
	return WithEventHandler(func(ev ecs.Event) { counts[ev.Type]++ })
}

func TestTenKillsAdvanceLevel(t *testing.T) {
	cfg := testConfig(t)
	events := map[string]int{}
	s, err := NewSession(cfg, WithSeed(1), eventCounter(events))
	require.NoError(t, err)
	w := s.World()

	_, lvl, ok := ecs.First(w, component.LevelStateComponent.Kind())
	require.True(t, ok)
	required := lvl.Required

	for i := 0; i < required; i++ {
		_, err := entity.NewEnemy(w, cfg, entity.EnemySpawn{
			Kind: component.EnemyNormal,
			X:    225,
			Y:    285,
			Size: 30,
		})
		require.NoError(t, err)
		_, err = entity.NewPlayerBullet(w, cfg, 240, 302, 0, 0, false, 0)
		require.NoError(t, err)
		require.NoError(t, s.Update(Input{}))
	}
	assert.Equal(t, 1, lvl.Level)
	assert.Equal(t, required, lvl.Kills)
	assert.Equal(t, required, s.HUD().Kills)

	require.NoError(t, s.Update(Input{}))
	assert.Equal(t, 2, lvl.Level)
	assert.Equal(t, 0, lvl.Kills)
	assert.Equal(t, 0, lvl.SpawnTimer)
	assert.Equal(t, cfg.LevelAt(2).SpawnDelay, lvl.SpawnDelay)
	assert.Equal(t, 1, events[ecs.EventLevelUp])
}

func TestBossKillEndsSessionOnce(t *testing.T) {
	cfg := testConfig(t)
	cfg.Boss.Phases = []prefabs.PhaseSpec{
		{Name: "intro", MaxFrames: 1},
		{Name: "hunting", MaxFrames: 100000},
	}
	cfg.Boss.EscapeChance = 0
	reporter := &recordingReporter{}
	events := map[string]int{}
	s, err := NewSession(cfg,
		WithSeed(7),
		WithStartLevel(cfg.Boss.Level),
		WithReporter(reporter),
		eventCounter(events),
	)
	require.NoError(t, err)
	w := s.World()

	require.NoError(t, s.Update(Input{}))
	e, rt, ok := ecs.First(w, component.BossRuntimeComponent.Kind())
	require.True(t, ok)
	require.Equal(t, component.PhaseHunting, rt.Phase)
	require.True(t, rt.Vulnerable)
	assert.Equal(t, "hunting", s.HUD().BossPhase)

	hp, _ := ecs.Get(w, e, component.HealthComponent.Kind())
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	sz, _ := ecs.Get(w, e, component.SizeComponent.Kind())
	hp.Current = 1
	tr.X, tr.Y = 200, 150
	_, err = entity.NewPlayerBullet(w, cfg, tr.X+sz.W/2, tr.Y+sz.H/2, 0, 0, false, 0)
	require.NoError(t, err)

	require.NoError(t, s.Update(Input{}))
	require.True(t, s.Over())
	res, ok := s.Result()
	require.True(t, ok)
	assert.True(t, res.Won)
	assert.Equal(t, cfg.Boss.Level, res.Level)
	assert.Equal(t, 1, events[ecs.EventVictory])
	assert.Equal(t, 0, events[ecs.EventGameOver])
	require.Len(t, reporter.results, 1)
	assert.Equal(t, res, reporter.results[0])
	assert.Empty(t, ecs.Entities(w), "finishing clears the world")

	frame := s.Frame()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Update(Input{Shoot: true}))
	}
	assert.Equal(t, frame, s.Frame())
	assert.Len(t, reporter.results, 1)
	assert.Equal(t, 1, events[ecs.EventVictory])
}

func TestLosingLastLifeEndsSession(t *testing.T) {
	cfg := testConfig(t)
	reporter := &recordingReporter{}
	s, err := NewSession(cfg, WithSeed(3), WithReporter(reporter))
	require.NoError(t, err)
	w := s.World()

	e, _, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	require.True(t, ok)
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	p.Lives = 1
	_, err = entity.NewEnemy(w, cfg, entity.EnemySpawn{Kind: component.EnemyNormal, X: tr.X, Y: tr.Y, Size: 30})
	require.NoError(t, err)

	require.NoError(t, s.Update(Input{}))
	require.True(t, s.Over())
	res, _ := s.Result()
	assert.False(t, res.Won)
	require.Len(t, reporter.results, 1)
}

func TestSoundsAreForwarded(t *testing.T) {
	sounds := &recordingSounds{}
	s, err := NewSession(testConfig(t), WithSeed(1), WithSounds(sounds))
	require.NoError(t, err)

	require.NoError(t, s.Update(Input{Shoot: true}))
	assert.Contains(t, sounds.played, "shoot")
}

func TestInputMovesPlayer(t *testing.T) {
	cfg := testConfig(t)
	s, err := NewSession(cfg, WithSeed(1))
	require.NoError(t, err)
	e, _, _ := ecs.First(s.World(), component.PlayerTagComponent.Kind())
	tr, _ := ecs.Get(s.World(), e, component.TransformComponent.Kind())
	x := tr.X

	require.NoError(t, s.Update(Input{MoveX: 1}))
	assert.InDelta(t, x+cfg.Player.Speed, tr.X, 1e-9)
	require.NoError(t, s.Update(Input{DragDX: -12}))
	assert.InDelta(t, x+cfg.Player.Speed-12, tr.X, 1e-9)
}

func TestSameSeedSameGame(t *testing.T) {
	cfg := testConfig(t)
	run := func() HUD {
		s, err := NewSession(cfg, WithSeed(42), WithStartLevel(3))
		require.NoError(t, err)
		for i := 0; i < 600; i++ {
			in := Input{Shoot: true, MoveX: float64(i/60%3 - 1)}
			require.NoError(t, s.Update(in))
		}
		return s.HUD()
	}
	assert.Equal(t, run(), run())
}

func TestCloseStopsSession(t *testing.T) {
	s, err := NewSession(testConfig(t), WithSeed(1))
	require.NoError(t, err)
	require.NoError(t, s.Update(Input{}))

	s.Close()
	assert.Empty(t, ecs.Entities(s.World()))
	assert.ErrorIs(t, s.Update(Input{}), ErrClosed)
	s.Close()
}

func TestResultString(t *testing.T) {
	r := Result{Level: 3, Score: 1200, Kills: 14, Won: true}
	assert.Contains(t, r.String(), "victory")
	assert.Contains(t, r.String(), "score 1200")
}
