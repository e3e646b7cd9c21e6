package component

// GameState is the session singleton. Over is set exactly once.
type GameState struct {
	Over bool
	Won  bool
	// EndFrame records the tick the game ended on.
	EndFrame int
}

var GameStateComponent = NewComponent[GameState]()

type LevelState struct {
	Level    int
	Kills    int
	Required int

	SpawnTimer int
	SpawnDelay int

	BossSpawned bool
}

var LevelStateComponent = NewComponent[LevelState]()

type Score struct {
	Points int
	Kills  int
}

var ScoreComponent = NewComponent[Score]()

// TimeScale slows every simulated motion while Frames > 0.
type TimeScale struct {
	Factor float64
	Frames int
}

var TimeScaleComponent = NewComponent[TimeScale]()
