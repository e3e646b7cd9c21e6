package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hellshooter/common"
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/prefabs"
)

type playerRef struct {
	Entity    ecs.Entity
	Player    *component.Player
	Transform *component.Transform
	Size      *component.Size
}

func findPlayer(w *ecs.World) (playerRef, bool) {
	e, _, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return playerRef{}, false
	}
	p, okP := ecs.Get(w, e, component.PlayerComponent.Kind())
	t, okT := ecs.Get(w, e, component.TransformComponent.Kind())
	s, okS := ecs.Get(w, e, component.SizeComponent.Kind())
	if !okP || !okT || !okS {
		return playerRef{}, false
	}
	return playerRef{Entity: e, Player: p, Transform: t, Size: s}, true
}

func (p playerRef) Rect() common.Rect {
	return rectOf(p.Transform, p.Size)
}

func (p playerRef) Center() cp.Vector {
	return p.Rect().Center()
}

type bossRef struct {
	Entity    ecs.Entity
	Runtime   *component.BossRuntime
	Movement  *component.BossMovement
	Health    *component.Health
	Transform *component.Transform
	Size      *component.Size
}

func findBoss(w *ecs.World) (bossRef, bool) {
	e, rt, ok := ecs.First(w, component.BossRuntimeComponent.Kind())
	if !ok {
		return bossRef{}, false
	}
	mv, okM := ecs.Get(w, e, component.BossMovementComponent.Kind())
	hp, okH := ecs.Get(w, e, component.HealthComponent.Kind())
	t, okT := ecs.Get(w, e, component.TransformComponent.Kind())
	s, okS := ecs.Get(w, e, component.SizeComponent.Kind())
	if !okM || !okH || !okT || !okS {
		return bossRef{}, false
	}
	return bossRef{Entity: e, Runtime: rt, Movement: mv, Health: hp, Transform: t, Size: s}, true
}

func (b bossRef) Rect() common.Rect {
	return rectOf(b.Transform, b.Size)
}

func (b bossRef) Center() cp.Vector {
	return b.Rect().Center()
}

// BossPhase returns the current phase of a live boss.
func BossPhase(w *ecs.World) (component.BossPhase, bool) {
	b, ok := findBoss(w)
	if !ok || b.Runtime.Defeated {
		return 0, false
	}
	return b.Runtime.Phase, true
}

func gameState(w *ecs.World) (*component.GameState, bool) {
	_, gs, ok := ecs.First(w, component.GameStateComponent.Kind())
	return gs, ok
}

func levelState(w *ecs.World) (*component.LevelState, bool) {
	_, lvl, ok := ecs.First(w, component.LevelStateComponent.Kind())
	return lvl, ok
}

func gameOver(w *ecs.World) bool {
	gs, ok := gameState(w)
	return ok && gs.Over
}

// EndGame marks the session finished. Only the first call has any effect,
// so simultaneous deaths cannot report the end twice.
func EndGame(w *ecs.World, won bool) bool {
	gs, ok := gameState(w)
	if !ok || gs.Over {
		return false
	}
	gs.Over = true
	gs.Won = won
	gs.EndFrame = w.Tick().Frame
	if won {
		ecs.PlaySound(w, "victory")
		ecs.Emit(w, ecs.EventVictory, nil)
	} else {
		ecs.PlaySound(w, "game_over")
		ecs.Emit(w, ecs.EventGameOver, nil)
	}
	return true
}

func rectOf(t *component.Transform, s *component.Size) common.Rect {
	if t == nil || s == nil {
		return common.Rect{}
	}
	return common.Rect{X: t.X, Y: t.Y, Width: s.W, Height: s.H}
}

func entityRect(w *ecs.World, e ecs.Entity) (common.Rect, bool) {
	t, okT := ecs.Get(w, e, component.TransformComponent.Kind())
	s, okS := ecs.Get(w, e, component.SizeComponent.Kind())
	if !okT || !okS {
		return common.Rect{}, false
	}
	return rectOf(t, s), true
}

func screenRect(cfg *prefabs.Config) common.Rect {
	return common.Rect{Width: cfg.Screen.Width, Height: cfg.Screen.Height}
}

// consumeBonus destroys every pending request for the given effects and
// returns them in creation order.
func consumeBonus(w *ecs.World, effects ...component.BonusEffect) []component.BonusEffect {
	var out []component.BonusEffect
	ecs.ForEach(w, component.BonusRequestComponent.Kind(), func(e ecs.Entity, req *component.BonusRequest) {
		for _, eff := range effects {
			if req.Effect == eff {
				out = append(out, req.Effect)
				ecs.DestroyEntity(w, e)
				return
			}
		}
	})
	return out
}
