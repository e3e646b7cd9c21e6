package game

import (
	"github.com/milk9111/hellshooter/ecs"
	"github.com/milk9111/hellshooter/ecs/component"
)

// HUD is a read-only snapshot of everything a frontend shows around the
// play field.
type HUD struct {
	Lives    int
	MaxLives int
	Level    int
	Score    int
	Kills    int

	Combo      int
	Multiplier float64
	ComboText  string
	ComboColor string

	PowerUp       string
	PowerUpFrames int
	Special       int
	SpecialMax    int
	SlowMotion    bool

	Boss       bool
	BossHealth int
	BossMax    int
	BossPhase  string
	Yanken     *component.Yanken

	Over bool
	Won  bool
}

func (s *Session) buildHUD() HUD {
	h := s.hud
	w := s.world
	h.SpecialMax = s.cfg.Player.SpecialThreshold

	if e, _, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			h.Lives = p.Lives
			h.MaxLives = p.MaxLives
			h.Special = p.SpecialCharge
			h.PowerUp, h.PowerUpFrames = "", 0
			if k, ok := p.ActivePowerUp(); ok {
				h.PowerUp = k.String()
				h.PowerUpFrames = p.PowerUps[k]
			}
		}
	}
	if _, lvl, ok := ecs.First(w, component.LevelStateComponent.Kind()); ok {
		h.Level = lvl.Level
	}
	if _, score, ok := ecs.First(w, component.ScoreComponent.Kind()); ok {
		h.Score = score.Points
		h.Kills = score.Kills
	}
	if _, c, ok := ecs.First(w, component.ComboComponent.Kind()); ok {
		h.Combo = c.Streak
		h.Multiplier = c.Multiplier
		h.ComboText = c.Text
		h.ComboColor = c.Color
	}
	if _, ts, ok := ecs.First(w, component.TimeScaleComponent.Kind()); ok {
		h.SlowMotion = ts.Frames > 0
	}
	if _, gs, ok := ecs.First(w, component.GameStateComponent.Kind()); ok {
		h.Over = gs.Over
		h.Won = gs.Won
	}

	h.Boss, h.BossHealth, h.BossMax, h.BossPhase = false, 0, 0, ""
	h.Yanken = nil
	if e, rt, ok := ecs.First(w, component.BossRuntimeComponent.Kind()); ok {
		h.Boss = true
		h.BossPhase = rt.Phase.String()
		if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			h.BossHealth = hp.Current
			h.BossMax = hp.Max
		}
		if rt.Phase == component.PhaseYankenpo {
			y := rt.Yanken
			h.Yanken = &y
		}
	}
	return h
}
