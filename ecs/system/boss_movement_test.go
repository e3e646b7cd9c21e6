package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
)

func TestAdjustForPhase(t *testing.T) {
	f := newFixture(t, testConfig(t))
	b := f.spawnBoss(t)

	tests := []struct {
		phase   component.BossPhase
		pattern component.MovePattern
		locked  bool
	}{
		{component.PhaseIntro, component.MoveStationary, false},
		{component.PhaseHunting, component.MoveHunting, false},
		{component.PhaseSummoning, component.MoveStationary, true},
		{component.PhaseMines, component.MoveTeleporting, false},
		{component.PhaseBullets, component.MoveStationary, true},
		{component.PhaseRedline, component.MoveStationary, true},
		{component.PhaseYankenpo, component.MoveStationary, true},
	}
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			f.movement.AdjustForPhase(f.w, b.Entity, tt.phase)
			assert.Equal(t, tt.pattern, b.Movement.Pattern)
			assert.Equal(t, tt.locked, b.Movement.Locked)
			if tt.locked {
				c := b.Center()
				assert.InDelta(t, f.cfg.Screen.Width/2, c.X, 1e-9)
				assert.InDelta(t, f.cfg.Screen.Height/2, c.Y, 1e-9)
			}
		})
	}
}

func TestIntroGlidesToCenterAndLocks(t *testing.T) {
	f := newFixture(t, testConfig(t))
	b := f.spawnBoss(t)
	require.False(t, b.Movement.Locked)

	for i := 0; i < 2000 && !b.Movement.Locked; i++ {
		f.movement.Update(f.w)
	}
	assert.True(t, b.Movement.Locked)
	assert.InDelta(t, f.cfg.Screen.Height/2, b.Center().Y, f.cfg.Boss.Epsilon)
}

func TestHuntingStepsTowardPlayer(t *testing.T) {
	f := newFixture(t, testConfig(t))
	b := f.spawnBoss(t)
	f.enterPhase(t, b, component.PhaseHunting)
	b.Transform.X, b.Transform.Y = 20, 20

	target := f.playerRef(t).Center()
	prev := b.Center().Sub(target).Length()
	speed := b.Movement.BaseSpeed * f.movement.SpeedScale(b.Health.Fraction())
	for i := 0; i < 20; i++ {
		f.movement.Update(f.w)
		dist := b.Center().Sub(target).Length()
		assert.Less(t, dist, prev)
		assert.InDelta(t, speed, prev-dist, 1e-6)
		prev = dist
	}
}

func TestHuntingStaysInsideEdgeMargin(t *testing.T) {
	cfg := testConfig(t)
	cfg.Boss.EdgeMargin = 10
	f := newFixture(t, cfg)
	b := f.spawnBoss(t)
	f.enterPhase(t, b, component.PhaseHunting)
	f.movePlayer(t, 1, cfg.Screen.Height-1)

	for i := 0; i < 1000; i++ {
		f.movement.Update(f.w)
	}
	assert.GreaterOrEqual(t, b.Transform.X, cfg.Boss.EdgeMargin-1e-9)
	assert.LessOrEqual(t, b.Transform.Y+b.Size.H, cfg.Screen.Height-cfg.Boss.EdgeMargin+1e-9)
}

func TestSpeedScale(t *testing.T) {
	cfg := testConfig(t)
	cfg.Boss.MaxSpeedScale = 2
	f := newFixture(t, cfg)

	assert.InDelta(t, 1.0, f.movement.SpeedScale(1), 1e-12)
	assert.InDelta(t, 1.5, f.movement.SpeedScale(0.5), 1e-12)
	assert.InDelta(t, 2.0, f.movement.SpeedScale(0), 1e-12)
	assert.InDelta(t, 2.0, f.movement.SpeedScale(-3), 1e-12)

	script, err := NewBossScript([]byte(`
speed_scale := func(frac, max_scale) { return 3.0 }
yankenpo_hand := func(round, wins, last_player) { return "" }
`))
	require.NoError(t, err)
	scripted := NewBossMovementSystem(cfg, testRNG(), script)
	assert.InDelta(t, 3.0, scripted.SpeedScale(0.5), 1e-12)

	declines, err := NewBossScript([]byte(`
speed_scale := func(frac, max_scale) { return 0 }
yankenpo_hand := func(round, wins, last_player) { return "" }
`))
	require.NoError(t, err)
	fallback := NewBossMovementSystem(cfg, testRNG(), declines)
	assert.InDelta(t, 1.5, fallback.SpeedScale(0.5), 1e-12)
}

func TestBossScriptCompileError(t *testing.T) {
	_, err := NewBossScript([]byte(`speed_scale := func(`))
	assert.Error(t, err)

	_, err = NewBossScript([]byte(`speed_scale := func(frac, max_scale) { return 1 }`))
	assert.Error(t, err, "missing yankenpo_hand")
}

func TestEmbeddedBossScript(t *testing.T) {
	cfg := testConfig(t)
	script, err := LoadBossScript(cfg.Boss.Script)
	require.NoError(t, err)

	scale, ok := script.SpeedScale(1, 2)
	require.True(t, ok)
	assert.InDelta(t, 1.0, scale, 1e-9)

	_, ok = script.YankenpoHand(1, 0, "")
	assert.False(t, ok)
	hand, ok := script.YankenpoHand(3, 2, "rock")
	require.True(t, ok)
	assert.Equal(t, component.Paper, hand)
}

func TestTeleportCandidatesStayInBounds(t *testing.T) {
	f := newFixture(t, testConfig(t))
	b := f.spawnBoss(t)
	f.enterPhase(t, b, component.PhaseMines)

	corners := []cp.Vector{
		{X: 1, Y: 1},
		{X: f.cfg.Screen.Width - 1, Y: 1},
		{X: 1, Y: f.cfg.Screen.Height - 1},
		{X: f.cfg.Screen.Width - 1, Y: f.cfg.Screen.Height - 1},
		{X: f.cfg.Screen.Width / 2, Y: f.cfg.Screen.Height / 2},
	}
	for _, at := range corners {
		f.movePlayer(t, at.X, at.Y)
		candidates, _ := f.movement.TeleportCandidates(f.w, b)
		require.NotEmpty(t, candidates)
		for _, c := range candidates {
			assert.True(t, f.movement.inBounds(b, c), "candidate %v for player at %v", c, at)
		}
	}
}

func TestTeleportMovesBossWithEffects(t *testing.T) {
	f := newFixture(t, testConfig(t))
	b := f.spawnBoss(t)
	f.enterPhase(t, b, component.PhaseMines)
	f.movePlayer(t, f.cfg.Screen.Width/2, f.cfg.Screen.Height-40)
	f.w.Events().Drain()

	require.True(t, f.movement.Teleport(f.w, b.Entity))
	assert.Equal(t, 1, b.Movement.Teleports)
	assert.True(t, f.movement.inBounds(b, b.Center()))

	teleports := 0
	ecs.ForEach(f.w, component.EffectComponent.Kind(), func(e ecs.Entity, fx *component.Effect) {
		if fx.Kind == component.EffectTeleport {
			teleports++
		}
	})
	assert.Equal(t, 2, teleports, "one effect at each end")
	assert.Equal(t, 1, countEvents(f.w.Events().Drain(), ecs.EventSound, "teleport"))
}

func TestStuckTeleportFallsBackToCenter(t *testing.T) {
	f := newFixture(t, testConfig(t))
	b := f.spawnBoss(t)
	f.enterPhase(t, b, component.PhaseMines)

	b.Movement.StuckCount = f.cfg.Boss.StuckLimit
	candidates, centered := f.movement.TeleportCandidates(f.w, b)
	require.True(t, centered)
	require.NotEmpty(t, candidates)

	require.True(t, f.movement.Teleport(f.w, b.Entity))
	assert.Equal(t, 0, b.Movement.StuckCount)
	assert.InDelta(t, f.cfg.Screen.Height/2, b.Center().Y, 1e-9)
}

func TestTeleportingPatternUsesCooldown(t *testing.T) {
	cfg := testConfig(t)
	cfg.Boss.TeleportCooldown = 5
	f := newFixture(t, cfg)
	b := f.spawnBoss(t)
	f.enterPhase(t, b, component.PhaseMines)

	for i := 0; i < 4; i++ {
		f.movement.Update(f.w)
	}
	assert.Equal(t, 0, b.Movement.Teleports)
	f.movement.Update(f.w)
	assert.Equal(t, 1, b.Movement.Teleports)
}

func TestLockedBossDoesNotTeleport(t *testing.T) {
	f := newFixture(t, testConfig(t))
	b := f.spawnBoss(t)
	f.enterPhase(t, b, component.PhaseBullets)

	before := b.Center()
	assert.False(t, f.movement.Teleport(f.w, b.Entity))
	f.movement.Update(f.w)
	assert.Equal(t, before, b.Center())
}

// With the shipped thresholds the teleporting phase must overlap the
// critical health window, otherwise the escape never fires.
func TestEscapeTeleportAtCriticalHealth(t *testing.T) {
	cfg := testConfig(t)
	cfg.Boss.EscapeChance = 1
	cfg.Boss.TeleportCooldown = 10000

	floor := 0.0
	for i, ph := range cfg.Boss.Phases {
		if ph.Name == component.PhaseMines.String() && i+1 < len(cfg.Boss.Phases) {
			floor = cfg.Boss.Phases[i+1].Threshold
		}
	}
	require.Greater(t, cfg.Boss.CriticalHealth, floor, "mines phase ends before health turns critical")

	f := newFixture(t, cfg)
	b := f.spawnBoss(t)
	f.enterPhase(t, b, component.PhaseMines)
	f.movePlayer(t, cfg.Screen.Width/2, cfg.Screen.Height-60)

	frac := (floor + cfg.Boss.CriticalHealth) / 2
	b.Health.Current = int(math.Ceil(frac * float64(b.Health.Max)))
	require.LessOrEqual(t, b.Health.Fraction(), cfg.Boss.CriticalHealth)
	require.Greater(t, b.Health.Fraction(), floor)

	f.movement.Update(f.w)
	assert.Equal(t, 1, b.Movement.Teleports)
	assert.Equal(t, cfg.Boss.EscapeCooldown, b.Movement.EscapeTimer)

	b.Health.Current = b.Health.Max
	b.Movement.EscapeTimer = 0
	for i := 0; i < 50; i++ {
		f.movement.Update(f.w)
	}
	assert.Equal(t, 1, b.Movement.Teleports, "healthy boss escaped")
}
