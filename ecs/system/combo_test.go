package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/prefabs"
)

func comboOf(t *testing.T, w *ecs.World) *component.Combo {
	t.Helper()
	_, c, ok := ecs.First(w, component.ComboComponent.Kind())
	require.True(t, ok)
	return c
}

func TestComboStreakWindow(t *testing.T) {
	cfg := testConfig(t)
	cfg.Combo.WindowMS = 2000
	f := newFixture(t, cfg)
	c := comboOf(t, f.w)

	f.combo.RegisterKill(f.w, 0)
	assert.Equal(t, 1, c.Streak)
	f.combo.RegisterKill(f.w, 1500)
	assert.Equal(t, 2, c.Streak)
	f.combo.RegisterKill(f.w, 3500)
	assert.Equal(t, 3, c.Streak, "exactly at the window edge still counts")
	f.combo.RegisterKill(f.w, 5600)
	assert.Equal(t, 1, c.Streak)
}

func TestComboDecaysWithoutKills(t *testing.T) {
	cfg := testConfig(t)
	cfg.Combo.WindowMS = 2000
	f := newFixture(t, cfg)
	c := comboOf(t, f.w)

	f.w.SetTick(ecs.Tick{Frame: 1, NowMS: 0, TimeScale: 1})
	for i := 0; i < 6; i++ {
		f.combo.RegisterKill(f.w, 0)
	}
	require.Equal(t, 6, c.Streak)
	require.Greater(t, c.Multiplier, 1.0)

	f.w.SetTick(ecs.Tick{Frame: 60, NowMS: 1999, TimeScale: 1})
	f.combo.Update(f.w)
	assert.Equal(t, 6, c.Streak)

	f.w.SetTick(ecs.Tick{Frame: 126, NowMS: 2100, TimeScale: 1})
	f.combo.Update(f.w)
	assert.Equal(t, 0, c.Streak)
	assert.Equal(t, 1.0, c.Multiplier)
	assert.Empty(t, c.Text)

	f.combo.RegisterKill(f.w, 2100)
	assert.Equal(t, 1, c.Streak)
}

func TestComboTierLookup(t *testing.T) {
	cfg := testConfig(t)
	cfg.Combo.Thresholds = []prefabs.ComboTierSpec{
		{Combo: 1, Multiplier: 1},
		{Combo: 5, Multiplier: 1.5, Text: "NICE"},
		{Combo: 10, Multiplier: 2, Text: "GREAT"},
	}
	cfg.Combo.Milestones = nil
	f := newFixture(t, cfg)
	c := comboOf(t, f.w)

	tests := []struct {
		streak int
		mult   float64
		text   string
	}{
		{1, 1, ""},
		{4, 1, ""},
		{5, 1.5, "NICE"},
		{9, 1.5, "NICE"},
		{10, 2, "GREAT"},
		{25, 2, "GREAT"},
	}
	for _, tt := range tests {
		c.Streak = tt.streak - 1
		c.LastKillMS = 0
		got := f.combo.RegisterKill(f.w, 10)
		assert.Equal(t, tt.streak, c.Streak)
		assert.Equal(t, tt.mult, got, "streak %d", tt.streak)
		assert.Equal(t, tt.text, c.Text, "streak %d", tt.streak)
	}
}

func TestMilestoneFiresOncePerValue(t *testing.T) {
	cfg := testConfig(t)
	cfg.Combo.Milestones = []prefabs.MilestoneSpec{
		{Every: 10, Effect: "power_up"},
		{Every: 5, Effect: "heart"},
	}
	f := newFixture(t, cfg)
	requests := func() []component.BonusEffect {
		var out []component.BonusEffect
		ecs.ForEach(f.w, component.BonusRequestComponent.Kind(), func(e ecs.Entity, r *component.BonusRequest) {
			out = append(out, r.Effect)
		})
		return out
	}

	for i := 0; i < 5; i++ {
		f.combo.RegisterKill(f.w, 0)
	}
	assert.Equal(t, []component.BonusEffect{component.BonusHeart}, requests())

	// Holding the streak must not re-fire.
	f.w.SetTick(ecs.Tick{Frame: 2, NowMS: 100, TimeScale: 1})
	for i := 0; i < 10; i++ {
		f.combo.Update(f.w)
	}
	f.combo.milestone(f.w, comboOf(t, f.w))
	assert.Len(t, requests(), 1)

	for i := 0; i < 5; i++ {
		f.combo.RegisterKill(f.w, 100)
	}
	assert.Equal(t, []component.BonusEffect{component.BonusHeart, component.BonusPowerUp}, requests(),
		"the first matching milestone wins")
}

func TestPoints(t *testing.T) {
	assert.Equal(t, 150, Points(100, 1.5))
	assert.Equal(t, 100, Points(100, 0))
	assert.Equal(t, 500, Points(100, 5))
}
