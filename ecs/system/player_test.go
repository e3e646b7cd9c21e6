package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
)

func TestTakeDamageGrantsInvulnerability(t *testing.T) {
	f := newFixture(t, testConfig(t))
	p := f.playerRef(t)
	start := p.Player.Lives

	require.True(t, f.player.TakeDamage(f.w))
	assert.Equal(t, start-1, p.Player.Lives)
	assert.True(t, ecs.Has(f.w, p.Entity, component.InvulnerableComponent.Kind()))
	assert.True(t, ecs.Has(f.w, p.Entity, component.WhiteFlashComponent.Kind()))

	assert.False(t, f.player.TakeDamage(f.w), "hit during invulnerability must be ignored")
	assert.Equal(t, start-1, p.Player.Lives)
}

func TestShieldBlocksDamage(t *testing.T) {
	f := newFixture(t, testConfig(t))
	p := f.playerRef(t)
	start := p.Player.Lives

	f.player.ActivatePowerUp(f.w, component.PowerUpShield)
	assert.False(t, f.player.TakeDamage(f.w))
	assert.Equal(t, start, p.Player.Lives)
}

func TestLastLifeEndsGameOnce(t *testing.T) {
	f := newFixture(t, testConfig(t))
	p := f.playerRef(t)
	p.Player.Lives = 1

	require.True(t, f.player.TakeDamage(f.w))
	assert.Equal(t, 0, p.Player.Lives)

	ecs.Remove(f.w, p.Entity, component.InvulnerableComponent.Kind())
	assert.False(t, f.player.TakeDamage(f.w), "no damage after game over")
	assert.Equal(t, 0, p.Player.Lives)

	gs, ok := gameState(f.w)
	require.True(t, ok)
	assert.True(t, gs.Over)
	assert.False(t, gs.Won)

	events := f.w.Events().Drain()
	assert.Equal(t, 1, countEvents(events, ecs.EventGameOver, nil))
	assert.Equal(t, 1, countEvents(events, ecs.EventSound, "game_over"))
}

func TestHealClampsToMaxLives(t *testing.T) {
	f := newFixture(t, testConfig(t))
	p := f.playerRef(t)
	for i := 0; i < p.Player.MaxLives+3; i++ {
		f.player.Heal(f.w)
	}
	assert.Equal(t, p.Player.MaxLives, p.Player.Lives)
}

func TestShotCooldown(t *testing.T) {
	cfg := testConfig(t)
	s := NewPlayerSystem(cfg)

	base := s.ShotCooldown(1, false)
	assert.Equal(t, cfg.Player.BaseShotCooldown, base)
	assert.LessOrEqual(t, s.ShotCooldown(3, false), base)
	assert.Equal(t, cfg.Player.MinShotCooldown, s.ShotCooldown(1000, false))
	assert.Less(t, s.ShotCooldown(1, true), base)
	assert.GreaterOrEqual(t, s.ShotCooldown(1000, true), 1)
}

func TestTryShootRespectsCooldown(t *testing.T) {
	f := newFixture(t, testConfig(t))

	require.True(t, f.player.TryShoot(f.w))
	assert.Equal(t, 1, ecs.Count(f.w, component.BulletComponent.Kind()))
	assert.False(t, f.player.TryShoot(f.w))

	p := f.playerRef(t)
	cd := p.Player.ShotCooldown
	for i := 0; i < cd; i++ {
		f.player.Update(f.w)
	}
	assert.True(t, f.player.TryShoot(f.w))
}

func TestWideShotFiresSpread(t *testing.T) {
	f := newFixture(t, testConfig(t))
	f.player.ActivatePowerUp(f.w, component.PowerUpWideShot)

	require.True(t, f.player.TryShoot(f.w))
	assert.Equal(t, f.cfg.PowerUps.WideShot.Bullets, ecs.Count(f.w, component.BulletComponent.Kind()))

	left, right := 0, 0
	ecs.ForEach2(f.w, component.BulletComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, _ *component.Bullet, v *component.Velocity) {
		assert.Less(t, v.Y, 0.0)
		if v.X < 0 {
			left++
		} else if v.X > 0 {
			right++
		}
	})
	assert.Equal(t, left, right)
}

func TestExplosiveShotCarriesRadius(t *testing.T) {
	f := newFixture(t, testConfig(t))
	f.player.ActivatePowerUp(f.w, component.PowerUpExplosive)
	require.True(t, f.player.TryShoot(f.w))

	_, b, ok := ecs.First(f.w, component.BulletComponent.Kind())
	require.True(t, ok)
	assert.True(t, b.Explosive)
	assert.Equal(t, f.cfg.PowerUps.Explosive.Radius, b.Radius)
}

func TestPowerUpsAreExclusiveAndExpire(t *testing.T) {
	cfg := testConfig(t)
	cfg.PowerUps.RapidFire.Duration = 2
	f := newFixture(t, cfg)
	p := f.playerRef(t)

	f.player.ActivatePowerUp(f.w, component.PowerUpShield)
	f.player.ActivatePowerUp(f.w, component.PowerUpRapidFire)
	assert.False(t, p.Player.Active(component.PowerUpShield))
	assert.True(t, p.Player.Active(component.PowerUpRapidFire))

	f.player.Update(f.w)
	assert.True(t, p.Player.Active(component.PowerUpRapidFire))
	f.player.Update(f.w)
	assert.False(t, p.Player.Active(component.PowerUpRapidFire))
	_, active := p.Player.ActivePowerUp()
	assert.False(t, active)
}

func TestOnKillTriggersSpecialAtThreshold(t *testing.T) {
	cfg := testConfig(t)
	cfg.Player.SpecialThreshold = 3
	f := newFixture(t, cfg)

	assert.False(t, f.player.OnKill(f.w))
	assert.False(t, f.player.OnKill(f.w))
	assert.True(t, f.player.OnKill(f.w))
	assert.Equal(t, 0, f.playerRef(t).Player.SpecialCharge)
}

func TestMovementClampsToScreen(t *testing.T) {
	f := newFixture(t, testConfig(t))
	p := f.playerRef(t)
	in, ok := ecs.Get(f.w, p.Entity, component.InputComponent.Kind())
	require.True(t, ok)

	in.DragDX = -10000
	in.DragDY = 10000
	f.player.Update(f.w)
	assert.Equal(t, 0.0, p.Transform.X)
	assert.Equal(t, f.cfg.Screen.Height-p.Size.H, p.Transform.Y)

	in.DragDX, in.DragDY = 0, 0
	in.MoveX = 5
	f.player.Update(f.w)
	assert.Equal(t, p.Player.Speed, p.Transform.X, "key input is clamped to unit intent")
}
