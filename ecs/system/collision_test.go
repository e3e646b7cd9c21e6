package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/ecs/entity"
)

func (f *fixture) bullet(t *testing.T, cx, cy float64, explosive bool, radius float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewPlayerBullet(f.w, f.cfg, cx, cy, 0, 0, explosive, radius)
	require.NoError(t, err)
	return e
}

func TestBulletKillsOneEnemy(t *testing.T) {
	f := newFixture(t, testConfig(t))
	first := f.spawnEnemy(t, 200, 300, 30, 0, 0)
	second := f.spawnEnemy(t, 205, 300, 30, 0, 0)
	b := f.bullet(t, 200, 300, false, 0)

	f.collision.Update(f.w)

	assert.False(t, ecs.IsAlive(f.w, b))
	assert.False(t, ecs.IsAlive(f.w, first), "lowest id is hit first")
	assert.True(t, ecs.IsAlive(f.w, second))

	_, score, ok := ecs.First(f.w, component.ScoreComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 1, score.Kills)
	assert.Equal(t, f.cfg.Enemies.BaseScore, score.Points)
	lvl, _ := levelState(f.w)
	assert.Equal(t, 1, lvl.Kills)
	assert.Equal(t, 1, comboOf(t, f.w).Streak)
}

func TestScoreUsesComboMultiplier(t *testing.T) {
	f := newFixture(t, testConfig(t))
	c := comboOf(t, f.w)
	c.Streak = 4
	c.LastKillMS = f.w.Tick().NowMS

	f.spawnEnemy(t, 200, 300, 30, 0, 0)
	f.bullet(t, 200, 300, false, 0)
	f.collision.Update(f.w)

	_, score, _ := ecs.First(f.w, component.ScoreComponent.Kind())
	tier := f.cfg.ComboTier(5)
	assert.Equal(t, Points(f.cfg.Enemies.BaseScore, tier.Multiplier), score.Points)
}

func TestExplosiveBulletHitsEveryEnemyInRadiusOnce(t *testing.T) {
	cfg := testConfig(t)
	cfg.Enemies.Health = 2
	f := newFixture(t, cfg)

	direct := f.spawnEnemy(t, 200, 300, 20, 0, 0)
	near := f.spawnEnemy(t, 240, 300, 20, 0, 0)
	above := f.spawnEnemy(t, 200, 250, 20, 0, 0)
	far := f.spawnEnemy(t, 400, 300, 20, 0, 0)
	f.bullet(t, 200, 300, true, 60)

	f.collision.Update(f.w)

	for _, e := range []ecs.Entity{direct, near, above} {
		h, ok := ecs.Get(f.w, e, component.HealthComponent.Kind())
		require.True(t, ok)
		assert.Equal(t, 1, h.Current, "each enemy in radius is damaged exactly once")
	}
	h, _ := ecs.Get(f.w, far, component.HealthComponent.Kind())
	assert.Equal(t, 2, h.Current)
}

func TestExplosiveBulletKillsInRadius(t *testing.T) {
	f := newFixture(t, testConfig(t))
	in := []ecs.Entity{
		f.spawnEnemy(t, 200, 300, 20, 0, 0),
		f.spawnEnemy(t, 240, 300, 20, 0, 0),
		f.spawnEnemy(t, 200, 250, 20, 0, 0),
	}
	out := f.spawnEnemy(t, 400, 300, 20, 0, 0)
	f.bullet(t, 200, 300, true, 60)

	f.collision.Update(f.w)

	for _, e := range in {
		assert.False(t, ecs.IsAlive(f.w, e))
	}
	assert.True(t, ecs.IsAlive(f.w, out))
	_, score, _ := ecs.First(f.w, component.ScoreComponent.Kind())
	assert.Equal(t, 3, score.Kills)
}

func TestImmuneBossAbsorbsBullets(t *testing.T) {
	f := newFixture(t, testConfig(t))
	boss := f.spawnBoss(t)
	f.enterPhase(t, boss, component.PhaseSummoning)

	c := boss.Center()
	b := f.bullet(t, c.X, c.Y, false, 0)
	f.collision.Update(f.w)

	assert.False(t, ecs.IsAlive(f.w, b))
	assert.Equal(t, boss.Health.Max, boss.Health.Current)
}

func TestVulnerableBossTakesBulletDamage(t *testing.T) {
	f := newFixture(t, testConfig(t))
	boss := f.spawnBoss(t)
	f.enterPhase(t, boss, component.PhaseHunting)
	boss.Transform.X, boss.Transform.Y = 100, 100

	c := boss.Center()
	f.bullet(t, c.X, c.Y, false, 0)
	f.collision.Update(f.w)

	assert.Equal(t, boss.Health.Max-f.cfg.Player.BulletDamage, boss.Health.Current)
}

func TestSummonedKillsDoNotAdvanceLevel(t *testing.T) {
	f := newFixture(t, testConfig(t))
	e := f.spawnEnemy(t, 200, 300, 30, 0, 0)
	en, _ := ecs.Get(f.w, e, component.EnemyComponent.Kind())
	en.Summoned = true
	f.bullet(t, 200, 300, false, 0)

	f.collision.Update(f.w)

	lvl, _ := levelState(f.w)
	assert.Equal(t, 0, lvl.Kills)
	_, score, _ := ecs.First(f.w, component.ScoreComponent.Kind())
	assert.Equal(t, 1, score.Kills)
}

func TestSpecialClearsScreen(t *testing.T) {
	cfg := testConfig(t)
	cfg.Player.SpecialThreshold = 1
	f := newFixture(t, cfg)
	f.spawnEnemy(t, 200, 300, 30, 0, 0)
	f.spawnEnemy(t, 100, 100, 30, 0, 0)
	f.spawnEnemy(t, 400, 150, 30, 0, 0)
	offscreen := f.spawnEnemy(t, 200, -100, 30, 0, 0)
	f.bullet(t, 200, 300, false, 0)

	f.collision.Update(f.w)

	assert.Equal(t, 1, ecs.Count(f.w, component.EnemyComponent.Kind()))
	assert.True(t, ecs.IsAlive(f.w, offscreen))
	_, score, _ := ecs.First(f.w, component.ScoreComponent.Kind())
	assert.Equal(t, 3, score.Kills)
	assert.Equal(t, 0, f.playerRef(t).Player.SpecialCharge, "special kills do not recharge")
	assert.Equal(t, 1, countEvents(f.w.Events().Drain(), ecs.EventSound, "special"))
}

func TestEnemyContactDamagesPlayerOnce(t *testing.T) {
	f := newFixture(t, testConfig(t))
	pc := f.playerRef(t).Center()
	first := f.spawnEnemy(t, pc.X, pc.Y, 20, 0, 0)
	second := f.spawnEnemy(t, pc.X+2, pc.Y, 20, 0, 0)
	lives := f.playerRef(t).Player.Lives

	f.collision.Update(f.w)

	assert.Equal(t, lives-1, f.playerRef(t).Player.Lives)
	assert.False(t, ecs.IsAlive(f.w, first))
	assert.True(t, ecs.IsAlive(f.w, second), "invulnerability absorbs the second contact")
}

func TestPickupContactCollects(t *testing.T) {
	f := newFixture(t, testConfig(t))
	p := f.playerRef(t)
	p.Player.Lives = 1
	_, err := entity.NewPickup(f.w, f.cfg, p.Transform.X, p.Transform.Y, component.PickupHeart, 0)
	require.NoError(t, err)

	f.collision.Update(f.w)

	assert.Equal(t, 2, p.Player.Lives)
	assert.Equal(t, 0, ecs.Count(f.w, component.PickupComponent.Kind()))
}
