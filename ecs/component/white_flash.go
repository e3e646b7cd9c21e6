package component

// WhiteFlash blinks an entity white after it was hit. On toggles every
// Interval ticks until Frames run out; renderers only read On.
type WhiteFlash struct {
	Frames   int
	Interval int
	Timer    int
	On       bool
}

var WhiteFlashComponent = NewComponent[WhiteFlash]()
