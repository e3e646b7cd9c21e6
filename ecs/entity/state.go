package entity

import (
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/prefabs"
)

// NewGameState creates the session singleton holding level, score, combo and
// time scale.
func NewGameState(w *ecs.World, cfg *prefabs.Config, level int) (ecs.Entity, error) {
	if level < 1 {
		level = 1
	}
	lvl := cfg.LevelAt(level)
	return build(w, "game_state",
		with("game_state", component.GameStateComponent.Kind(), &component.GameState{}),
		with("level", component.LevelStateComponent.Kind(), &component.LevelState{
			Level:      level,
			Required:   lvl.Required,
			SpawnDelay: lvl.SpawnDelay,
		}),
		with("score", component.ScoreComponent.Kind(), &component.Score{}),
		with("combo", component.ComboComponent.Kind(), &component.Combo{Multiplier: 1}),
		with("time_scale", component.TimeScaleComponent.Kind(), &component.TimeScale{Factor: 1}),
	)
}

// NewBonusRequest queues a combo reward for the system that owns it.
func NewBonusRequest(w *ecs.World, effect component.BonusEffect) (ecs.Entity, error) {
	return build(w, "bonus_request",
		with("bonus_request", component.BonusRequestComponent.Kind(), &component.BonusRequest{Effect: effect}),
	)
}

// NewEffect spawns a purely visual marker centered on (cx, cy).
func NewEffect(w *ecs.World, kind component.EffectKind, cx, cy, radius float64, frames int) (ecs.Entity, error) {
	if frames <= 0 {
		frames = 1
	}
	return build(w, "effect",
		with("effect", component.EffectComponent.Kind(), &component.Effect{Kind: kind}),
		transform(cx-radius, cy-radius),
		size(radius*2, radius*2),
		ttl(frames),
	)
}
