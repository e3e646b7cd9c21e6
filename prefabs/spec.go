package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the tuning table every system reads.
const ConfigFile = "hellshooter.yaml"

var ErrInvalidConfig = errors.New("invalid config")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadConfig reads, defaults and validates the game configuration.
func LoadConfig() (*Config, error) {
	cfg, err := LoadSpec[Config](ConfigFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", ConfigFile, err)
	}
	return &cfg, nil
}

// ParseConfig is LoadConfig for an in-memory document.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate config: %w", err)
	}
	return &cfg, nil
}

type Config struct {
	Screen     ScreenSpec     `yaml:"screen"`
	Player     PlayerSpec     `yaml:"player"`
	Enemies    EnemySpec      `yaml:"enemies"`
	Levels     []LevelSpec    `yaml:"levels"`
	Combo      ComboSpec      `yaml:"combo"`
	Pickups    PickupSpec     `yaml:"pickups"`
	PowerUps   PowerUpsSpec   `yaml:"power_ups"`
	SlowMotion SlowMotionSpec `yaml:"slow_motion"`
	Boss       BossSpec       `yaml:"boss"`
	Ranking    RankingSpec    `yaml:"ranking"`
}

type ScreenSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PlayerSpec struct {
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	Speed              float64 `yaml:"speed"`
	StartLives         int     `yaml:"start_lives"`
	MaxLives           int     `yaml:"max_lives"`
	InvulnerableFrames int     `yaml:"invulnerable_frames"`
	FlashFrames        int     `yaml:"flash_frames"`
	FlashInterval      int     `yaml:"flash_interval"`
	BaseShotCooldown   int     `yaml:"base_shot_cooldown"`
	MinShotCooldown    int     `yaml:"min_shot_cooldown"`
	CooldownPerLevel   int     `yaml:"cooldown_per_level"`
	BulletSpeed        float64 `yaml:"bullet_speed"`
	BulletWidth        float64 `yaml:"bullet_width"`
	BulletHeight       float64 `yaml:"bullet_height"`
	BulletDamage       int     `yaml:"bullet_damage"`
	SpecialThreshold   int     `yaml:"special_threshold"`
	SpecialBossDamage  int     `yaml:"special_boss_damage"`
}

type EnemySpec struct {
	MinSize               float64 `yaml:"min_size"`
	MaxSize               float64 `yaml:"max_size"`
	MinSpeed              float64 `yaml:"min_speed"`
	MaxSpeed              float64 `yaml:"max_speed"`
	SpawnAngleDeg         float64 `yaml:"spawn_angle_deg"`
	BounceEnergy          float64 `yaml:"bounce_energy"`
	SpeedStep             float64 `yaml:"speed_step"`
	CollisionSpeedStep    float64 `yaml:"collision_speed_step"`
	MaxSpeedMultiplier    float64 `yaml:"max_speed_multiplier"`
	MaxSpeedBase          float64 `yaml:"max_speed_base"`
	MaxSpeedPerLevel      float64 `yaml:"max_speed_per_level"`
	MaxConcurrentBase     int     `yaml:"max_concurrent_base"`
	MaxConcurrentPerLevel int     `yaml:"max_concurrent_per_level"`
	ExtraSpawnMinLevel    int     `yaml:"extra_spawn_min_level"`
	ExtraSpawnChance      float64 `yaml:"extra_spawn_chance"`
	ExtraSpawnMax         int     `yaml:"extra_spawn_max"`
	OffscreenGraceFrames  int     `yaml:"offscreen_grace_frames"`
	ScaleAmplitude        float64 `yaml:"scale_amplitude"`
	ScaleFrequency        float64 `yaml:"scale_frequency"`
	Health                int     `yaml:"health"`
	BaseScore             int     `yaml:"base_score"`
	MeteorCount           int     `yaml:"meteor_count"`
	MeteorSpeed           float64 `yaml:"meteor_speed"`
	MeteorSize            float64 `yaml:"meteor_size"`
}

type LevelSpec struct {
	Required   int `yaml:"required"`
	SpawnDelay int `yaml:"spawn_delay"`
}

type ComboSpec struct {
	WindowMS   float64         `yaml:"window_ms"`
	Thresholds []ComboTierSpec `yaml:"thresholds"`
	Milestones []MilestoneSpec `yaml:"milestones"`
}

type ComboTierSpec struct {
	Combo      int        `yaml:"combo"`
	Multiplier float64    `yaml:"multiplier"`
	Text       string     `yaml:"text"`
	Color      *YAMLColor `yaml:"color"`
}

type MilestoneSpec struct {
	Every  int    `yaml:"every"`
	Effect string `yaml:"effect"`
}

type PickupSpec struct {
	Width              float64      `yaml:"width"`
	Height             float64      `yaml:"height"`
	FallSpeed          float64      `yaml:"fall_speed"`
	MaxHearts          int          `yaml:"max_hearts"`
	MaxPowerUps        int          `yaml:"max_power_ups"`
	IntensePhaseFactor float64      `yaml:"intense_phase_factor"`
	HeartChance        []ChanceStep `yaml:"heart_chance"`
	PowerUpChance      []ChanceStep `yaml:"power_up_chance"`
}

// ChanceStep applies Chance while the player has at most LivesAtMost lives.
type ChanceStep struct {
	LivesAtMost int     `yaml:"lives_at_most"`
	Chance      float64 `yaml:"chance"`
}

type PowerUpsSpec struct {
	Shield    PowerUpSpec `yaml:"shield"`
	WideShot  PowerUpSpec `yaml:"wide_shot"`
	Explosive PowerUpSpec `yaml:"explosive"`
	RapidFire PowerUpSpec `yaml:"rapid_fire"`
}

type PowerUpSpec struct {
	Duration       int     `yaml:"duration"`
	Bullets        int     `yaml:"bullets"`
	SpreadDeg      float64 `yaml:"spread_deg"`
	Radius         float64 `yaml:"radius"`
	CooldownFactor float64 `yaml:"cooldown_factor"`
}

type SlowMotionSpec struct {
	Factor float64 `yaml:"factor"`
	Frames int     `yaml:"frames"`
}

type BossSpec struct {
	Level  int     `yaml:"level"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Health int     `yaml:"health"`

	BaseSpeed     float64 `yaml:"base_speed"`
	MaxSpeedScale float64 `yaml:"max_speed_scale"`
	Epsilon       float64 `yaml:"epsilon"`
	EdgeMargin    float64 `yaml:"edge_margin"`

	TeleportCooldown int          `yaml:"teleport_cooldown"`
	TeleportOffsets  [][2]float64 `yaml:"teleport_offsets"`
	StuckLimit       int          `yaml:"stuck_limit"`
	CornerMargin     float64      `yaml:"corner_margin"`
	CriticalHealth   float64      `yaml:"critical_health"`
	EscapeChance     float64      `yaml:"escape_chance"`
	EscapeCooldown   int          `yaml:"escape_cooldown"`

	SummonInterval int `yaml:"summon_interval"`
	SummonCount    int `yaml:"summon_count"`

	MineInterval    int     `yaml:"mine_interval"`
	MineFuse        int     `yaml:"mine_fuse"`
	MineRadius      float64 `yaml:"mine_radius"`
	MineBlastFrames int     `yaml:"mine_blast_frames"`

	Pattern       string  `yaml:"pattern"`
	PatternFrames int     `yaml:"pattern_frames"`
	BulletSize    float64 `yaml:"bullet_size"`

	Redline  RedlineSpec  `yaml:"redline"`
	Yankenpo YankenpoSpec `yaml:"yankenpo"`

	Script string      `yaml:"script"`
	Phases []PhaseSpec `yaml:"phases"`
}

type RedlineSpec struct {
	Sweeps    int     `yaml:"sweeps"`
	Telegraph int     `yaml:"telegraph"`
	Pause     int     `yaml:"pause"`
	Speed     float64 `yaml:"speed"`
	Thickness float64 `yaml:"thickness"`
}

type YankenpoSpec struct {
	WinsRequired int `yaml:"wins_required"`
	RoundFrames  int `yaml:"round_frames"`
}

// PhaseSpec gates a boss phase. Threshold is a health fraction; zero means
// the phase is only reached when the previous one completes or times out.
type PhaseSpec struct {
	Name      string  `yaml:"name"`
	Threshold float64 `yaml:"threshold"`
	MaxFrames int     `yaml:"max_frames"`
}

type RankingSpec struct {
	URL       string `yaml:"url"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// phaseOrder mirrors the boss phase enum; configured phases must appear in
// this order.
var phaseOrder = []string{"intro", "hunting", "summoning", "mines", "bullets", "redline", "yankenpo"}

// ApplyDefaults fills tunables that were left at zero.
func (c *Config) ApplyDefaults() {
	if c == nil {
		return
	}
	defFloat(&c.Screen.Width, 480)
	defFloat(&c.Screen.Height, 640)

	p := &c.Player
	defFloat(&p.Width, 24)
	defFloat(&p.Height, 24)
	defFloat(&p.Speed, 5)
	defInt(&p.MaxLives, 5)
	defInt(&p.StartLives, 3)
	defInt(&p.InvulnerableFrames, 90)
	defInt(&p.FlashFrames, 60)
	defInt(&p.FlashInterval, 4)
	defInt(&p.BaseShotCooldown, 14)
	defInt(&p.MinShotCooldown, 4)
	defFloat(&p.BulletSpeed, 10)
	defFloat(&p.BulletWidth, 4)
	defFloat(&p.BulletHeight, 10)
	defInt(&p.BulletDamage, 1)
	defInt(&p.SpecialThreshold, 25)

	e := &c.Enemies
	defFloat(&e.MinSize, 18)
	defFloat(&e.MaxSize, 40)
	defFloat(&e.MinSpeed, 1.5)
	defFloat(&e.MaxSpeed, 3)
	defFloat(&e.SpawnAngleDeg, 60)
	defFloat(&e.BounceEnergy, 1)
	defFloat(&e.MaxSpeedMultiplier, 2)
	defFloat(&e.MaxSpeedBase, 6)
	defInt(&e.MaxConcurrentBase, 8)
	defInt(&e.OffscreenGraceFrames, 120)
	defInt(&e.Health, 1)
	defInt(&e.BaseScore, 100)
	defFloat(&e.MeteorSpeed, 7)
	defFloat(&e.MeteorSize, 22)

	if c.Combo.WindowMS <= 0 {
		c.Combo.WindowMS = 2000
	}
	if len(c.Combo.Thresholds) == 0 {
		c.Combo.Thresholds = []ComboTierSpec{{Combo: 1, Multiplier: 1}}
	}

	pk := &c.Pickups
	defFloat(&pk.Width, 18)
	defFloat(&pk.Height, 18)
	defFloat(&pk.FallSpeed, 2)
	defFloat(&pk.IntensePhaseFactor, 1)
	defInt(&pk.MaxHearts, 1)
	defInt(&pk.MaxPowerUps, 2)

	pu := &c.PowerUps
	defInt(&pu.Shield.Duration, 480)
	defInt(&pu.WideShot.Duration, 600)
	defInt(&pu.WideShot.Bullets, 3)
	defFloat(&pu.WideShot.SpreadDeg, 30)
	defInt(&pu.Explosive.Duration, 480)
	defFloat(&pu.Explosive.Radius, 60)
	defInt(&pu.RapidFire.Duration, 480)
	defFloat(&pu.RapidFire.CooldownFactor, 0.5)

	defFloat(&c.SlowMotion.Factor, 0.5)
	defInt(&c.SlowMotion.Frames, 180)

	b := &c.Boss
	defFloat(&b.Width, 96)
	defFloat(&b.Height, 96)
	defInt(&b.Health, 100)
	defFloat(&b.BaseSpeed, 1.5)
	defFloat(&b.MaxSpeedScale, 1)
	defFloat(&b.Epsilon, 0.5)
	defInt(&b.TeleportCooldown, 90)
	defInt(&b.StuckLimit, 3)
	defInt(&b.SummonInterval, 90)
	defInt(&b.MineInterval, 60)
	defInt(&b.MineFuse, 90)
	defFloat(&b.MineRadius, 48)
	defInt(&b.MineBlastFrames, 12)
	defInt(&b.PatternFrames, 240)
	defFloat(&b.BulletSize, 8)
	defInt(&b.Redline.Sweeps, 3)
	defInt(&b.Redline.Telegraph, 45)
	defInt(&b.Redline.Pause, 40)
	defFloat(&b.Redline.Speed, 6)
	defFloat(&b.Redline.Thickness, 12)
	defInt(&b.Yankenpo.WinsRequired, 3)
	defInt(&b.Yankenpo.RoundFrames, 120)

	if c.Ranking.TimeoutMS <= 0 {
		c.Ranking.TimeoutMS = 5000
	}
}

func defFloat(v *float64, d float64) {
	if *v == 0 {
		*v = d
	}
}

func defInt(v *int, d int) {
	if *v == 0 {
		*v = d
	}
}

// Validate rejects tables that would break a system invariant. Values that
// are merely out of range are clamped by the systems instead.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config: %w", ErrInvalidConfig)
	}
	if len(c.Levels) == 0 {
		return fmt.Errorf("levels: empty table: %w", ErrInvalidConfig)
	}
	for i, lvl := range c.Levels {
		if lvl.Required <= 0 || lvl.SpawnDelay <= 0 {
			return fmt.Errorf("levels[%d]: required and spawn_delay must be positive: %w", i, ErrInvalidConfig)
		}
	}
	if c.Player.StartLives > c.Player.MaxLives {
		return fmt.Errorf("player: start_lives %d exceeds max_lives %d: %w", c.Player.StartLives, c.Player.MaxLives, ErrInvalidConfig)
	}
	if c.Enemies.MinSize > c.Enemies.MaxSize || c.Enemies.MinSpeed > c.Enemies.MaxSpeed {
		return fmt.Errorf("enemies: min exceeds max: %w", ErrInvalidConfig)
	}
	for i, tier := range c.Combo.Thresholds {
		if i > 0 && tier.Combo <= c.Combo.Thresholds[i-1].Combo {
			return fmt.Errorf("combo.thresholds[%d]: combo values must be strictly increasing: %w", i, ErrInvalidConfig)
		}
	}
	for i, m := range c.Combo.Milestones {
		if m.Every <= 0 {
			return fmt.Errorf("combo.milestones[%d]: every must be positive: %w", i, ErrInvalidConfig)
		}
		if !knownEffect(m.Effect) {
			return fmt.Errorf("combo.milestones[%d]: unknown effect %q: %w", i, m.Effect, ErrInvalidConfig)
		}
	}
	if b := c.Boss; b.CriticalHealth < 0 || b.CriticalHealth > 1 || b.EscapeChance < 0 || b.EscapeChance > 1 {
		return fmt.Errorf("boss: critical_health and escape_chance must be within [0,1]: %w", ErrInvalidConfig)
	}
	if err := validateSteps("pickups.heart_chance", c.Pickups.HeartChance); err != nil {
		return err
	}
	if err := validateSteps("pickups.power_up_chance", c.Pickups.PowerUpChance); err != nil {
		return err
	}
	return c.validatePhases()
}

func knownEffect(name string) bool {
	switch name {
	case "power_up", "heart", "meteor_shower", "slow_motion":
		return true
	default:
		return false
	}
}

func validateSteps(field string, steps []ChanceStep) error {
	for i, s := range steps {
		if s.Chance < 0 || s.Chance > 1 {
			return fmt.Errorf("%s[%d]: chance %v outside [0,1]: %w", field, i, s.Chance, ErrInvalidConfig)
		}
		if i > 0 && s.LivesAtMost <= steps[i-1].LivesAtMost {
			return fmt.Errorf("%s[%d]: lives_at_most must be strictly increasing: %w", field, i, ErrInvalidConfig)
		}
	}
	return nil
}

func (c *Config) validatePhases() error {
	phases := c.Boss.Phases
	if len(phases) == 0 {
		return fmt.Errorf("boss.phases: empty table: %w", ErrInvalidConfig)
	}
	last := -1
	prevThreshold := 1.0
	for i, ph := range phases {
		idx := phaseIndex(ph.Name)
		if idx < 0 {
			return fmt.Errorf("boss.phases[%d]: unknown phase %q: %w", i, ph.Name, ErrInvalidConfig)
		}
		if idx <= last {
			return fmt.Errorf("boss.phases[%d]: %q out of order: %w", i, ph.Name, ErrInvalidConfig)
		}
		if ph.Threshold < 0 || ph.Threshold > 1 {
			return fmt.Errorf("boss.phases[%d]: threshold %v outside [0,1]: %w", i, ph.Threshold, ErrInvalidConfig)
		}
		if ph.Threshold > 0 {
			if ph.Threshold > prevThreshold {
				return fmt.Errorf("boss.phases[%d]: thresholds must descend: %w", i, ErrInvalidConfig)
			}
			prevThreshold = ph.Threshold
		}
		if ph.MaxFrames <= 0 {
			return fmt.Errorf("boss.phases[%d]: max_frames must be positive: %w", i, ErrInvalidConfig)
		}
		last = idx
	}
	return nil
}

func phaseIndex(name string) int {
	for i, n := range phaseOrder {
		if n == name {
			return i
		}
	}
	return -1
}

// LevelAt returns the table entry for a 1-based level, clamped to the last
// defined entry.
func (c *Config) LevelAt(level int) LevelSpec {
	if c == nil || len(c.Levels) == 0 {
		return LevelSpec{Required: 1, SpawnDelay: 60}
	}
	idx := level - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.Levels) {
		idx = len(c.Levels) - 1
	}
	return c.Levels[idx]
}

// ComboTier returns the highest threshold entry whose combo value does not
// exceed streak.
func (c *Config) ComboTier(streak int) ComboTierSpec {
	tier := ComboTierSpec{Combo: 0, Multiplier: 1}
	if c == nil {
		return tier
	}
	for _, t := range c.Combo.Thresholds {
		if t.Combo > streak {
			break
		}
		tier = t
	}
	if tier.Multiplier <= 0 {
		tier.Multiplier = 1
	}
	return tier
}

// Chance looks up the first step covering lives.
func Chance(steps []ChanceStep, lives int) float64 {
	for _, s := range steps {
		if lives <= s.LivesAtMost {
			return s.Chance
		}
	}
	return 0
}

type YAMLColor struct {
	color.Color
}

// UnmarshalYAML accepts #RRGGBB, #RRGGBBAA or an SVG color name.
func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Name returns a printable form of the color for text frontends.
func (c *YAMLColor) Name() string {
	if c == nil || c.Color == nil {
		return ""
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
