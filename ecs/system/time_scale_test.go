package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/ecs/entity"
)

func TestSlowMotionScalesAllMotionAndReverts(t *testing.T) {
	cfg := testConfig(t)
	cfg.Boss.Level = 0
	cfg.Enemies.ScaleAmplitude = 0
	cfg.SlowMotion.Factor = 0.5
	cfg.SlowMotion.Frames = 3
	f := newFixture(t, cfg)

	enemy := f.spawnEnemy(t, 240, 200, 30, 0, 2)
	pickup, err := entity.NewPickup(f.w, cfg, 100, 100, component.PickupHeart, 0)
	require.NoError(t, err)
	_, err = entity.NewBonusRequest(f.w, component.BonusSlowMotion)
	require.NoError(t, err)

	et, _ := ecs.Get(f.w, enemy, component.TransformComponent.Kind())
	pt, _ := ecs.Get(f.w, pickup, component.TransformComponent.Kind())

	var scales []float64
	for frame := 1; frame <= 4; frame++ {
		f.setFrame(frame)
		f.timeScale.Update(f.w)
		scales = append(scales, f.w.Tick().TimeScale)

		ey, py := et.Y, pt.Y
		f.enemies.Update(f.w)
		f.pickups.fall(f.w)
		scale := f.w.Tick().TimeScale
		assert.InDelta(t, 2*scale, et.Y-ey, 1e-9, "enemy step at frame %d", frame)
		assert.InDelta(t, cfg.Pickups.FallSpeed*scale, pt.Y-py, 1e-9, "pickup step at frame %d", frame)
	}
	assert.Equal(t, []float64{0.5, 0.5, 0.5, 1}, scales)
	assert.Equal(t, 1, countEvents(f.w.Events().Drain(), ecs.EventSound, "slow_motion"))
}
