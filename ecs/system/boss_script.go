package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/hellshooter/ecs/component"
	"github.com/milk9111/hellshooter/prefabs"
)

// BossScript runs the tengo tuning hooks. A nil or failed script makes every
// hook report false so callers use their built-in formula.
type BossScript struct {
	path     string
	compiled *tengo.Compiled
	failed   bool

	cacheFrac  float64
	cacheMax   float64
	cacheScale float64
	cached     bool
}

const bossScriptDispatch = `
__result := 0
if __call == "speed_scale" {
	__result = speed_scale(__frac, __max_scale)
} else if __call == "yankenpo_hand" {
	__result = yankenpo_hand(__round, __wins, __last_player)
}
`

// LoadBossScript compiles the script at path, preferring an on-disk copy
// under prefabs.Dir.
func LoadBossScript(path string) (*BossScript, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("boss script: load %s: %w", path, err)
	}
	bs, err := NewBossScript(src)
	if err != nil {
		return nil, fmt.Errorf("boss script: %s: %w", path, err)
	}
	bs.path = path
	return bs, nil
}

// NewBossScript compiles src. It must define speed_scale and yankenpo_hand.
func NewBossScript(src []byte) (*BossScript, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + bossScriptDispatch))
	_ = script.Add("__call", "")
	_ = script.Add("__frac", 0.0)
	_ = script.Add("__max_scale", 0.0)
	_ = script.Add("__round", 0)
	_ = script.Add("__wins", 0)
	_ = script.Add("__last_player", "")

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &BossScript{compiled: compiled}, nil
}

func (bs *BossScript) run(call string, vars map[string]any) (*tengo.Variable, bool) {
	if bs == nil || bs.compiled == nil || bs.failed {
		return nil, false
	}
	if err := bs.compiled.Set("__call", call); err != nil {
		bs.fail(call, err)
		return nil, false
	}
	for name, v := range vars {
		if err := bs.compiled.Set(name, v); err != nil {
			bs.fail(call, err)
			return nil, false
		}
	}
	if err := bs.compiled.Run(); err != nil {
		bs.fail(call, err)
		return nil, false
	}
	return bs.compiled.Get("__result"), true
}

// fail disables the script after the first runtime error.
func (bs *BossScript) fail(call string, err error) {
	bs.failed = true
	fmt.Printf("boss script: %s %s: %v\n", bs.path, call, err)
}

// SpeedScale returns the scripted speed multiplier for a health fraction.
// The second result is false when the script declined or is unavailable.
func (bs *BossScript) SpeedScale(frac, maxScale float64) (float64, bool) {
	if bs == nil {
		return 0, false
	}
	if bs.cached && bs.cacheFrac == frac && bs.cacheMax == maxScale {
		return bs.cacheScale, bs.cacheScale > 0
	}
	v, ok := bs.run("speed_scale", map[string]any{"__frac": frac, "__max_scale": maxScale})
	if !ok {
		return 0, false
	}
	scale := v.Float()
	bs.cacheFrac, bs.cacheMax, bs.cacheScale, bs.cached = frac, maxScale, scale, true
	return scale, scale > 0
}

// YankenpoHand asks the script for the boss hand of a round.
func (bs *BossScript) YankenpoHand(round, wins int, lastPlayer string) (component.Hand, bool) {
	v, ok := bs.run("yankenpo_hand", map[string]any{
		"__round":       round,
		"__wins":        wins,
		"__last_player": lastPlayer,
	})
	if !ok {
		return 0, false
	}
	return component.ParseHand(strings.TrimSpace(v.String()))
}
