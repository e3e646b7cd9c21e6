package component

import "github.com/tsujio/go-bulletml"

// BossPhase is the fixed sequence of combat phases. Order matters: the
// runtime only ever moves to a higher value.
type BossPhase int

const (
	PhaseIntro BossPhase = iota
	PhaseHunting
	PhaseSummoning
	PhaseMines
	PhaseBullets
	PhaseRedline
	PhaseYankenpo
	PhaseDefeated
)

func (p BossPhase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseHunting:
		return "hunting"
	case PhaseSummoning:
		return "summoning"
	case PhaseMines:
		return "mines"
	case PhaseBullets:
		return "bullets"
	case PhaseRedline:
		return "redline"
	case PhaseYankenpo:
		return "yankenpo"
	case PhaseDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}

func ParseBossPhase(name string) (BossPhase, bool) {
	for p := PhaseIntro; p <= PhaseDefeated; p++ {
		if p.String() == name {
			return p, true
		}
	}
	return 0, false
}

// Vulnerable reports whether player bullets damage the boss in phase p.
func (p BossPhase) Vulnerable() bool {
	switch p {
	case PhaseHunting, PhaseMines:
		return true
	case PhaseIntro, PhaseSummoning, PhaseBullets, PhaseRedline, PhaseYankenpo, PhaseDefeated:
		return false
	default:
		return false
	}
}

// Intense phases make hearts rarer.
func (p BossPhase) Intense() bool {
	return p == PhaseBullets || p == PhaseRedline
}

// BossRuntime stores runtime-only state for phase progression and attacks.
type BossRuntime struct {
	// Index points into the configured phase list.
	Index       int
	Phase       BossPhase
	PhaseFrames int
	Vulnerable  bool
	Defeated    bool
	// Initialized is set once the first phase has been entered.
	Initialized bool

	SummonTimer  int
	MineTimer    int
	PatternTimer int
	Pattern      bulletml.Runner
	// Fractional frame accumulator for stepping Pattern under slow motion.
	PatternStep float64

	SweepsDone int
	SweepPause int

	Yanken Yanken
}

var BossRuntimeComponent = NewComponent[BossRuntime]()

type Hand int

const (
	Rock Hand = iota
	Paper
	Scissors
)

func (h Hand) String() string {
	switch h {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return "unknown"
	}
}

func ParseHand(name string) (Hand, bool) {
	switch name {
	case "rock":
		return Rock, true
	case "paper":
		return Paper, true
	case "scissors":
		return Scissors, true
	default:
		return 0, false
	}
}

// Beats reports whether h wins against other.
func (h Hand) Beats(other Hand) bool {
	return (h == Rock && other == Scissors) ||
		(h == Paper && other == Rock) ||
		(h == Scissors && other == Paper)
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
	OutcomeDraw
)

// Yanken is the rock-paper-scissors minigame state.
type Yanken struct {
	Round      int
	Timer      int
	Wins       int
	Losses     int
	BossHand   Hand
	PlayerHand Hand
	Last       Outcome
}

// MovePattern selects how the boss moves during a phase.
type MovePattern int

const (
	MoveStationary MovePattern = iota
	MoveHunting
	MoveTeleporting
)

func (m MovePattern) String() string {
	switch m {
	case MoveStationary:
		return "stationary"
	case MoveHunting:
		return "hunting"
	case MoveTeleporting:
		return "teleporting"
	default:
		return "unknown"
	}
}

type BossMovement struct {
	Pattern   MovePattern
	BaseSpeed float64
	// Locked means the boss is pinned to the screen center and no system
	// may move it.
	Locked bool

	TeleportTimer int
	EscapeTimer   int
	StuckCount    int
	Teleports     int
}

var BossMovementComponent = NewComponent[BossMovement]()
