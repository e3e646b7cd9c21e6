package component

// Input stores per-frame directional and fire intent. Keyboard axes and
// touch-drag deltas are both folded into it by the frontend.
type Input struct {
	MoveX  float64
	MoveY  float64
	DragDX float64
	DragDY float64
	Shoot  bool
}

var InputComponent = NewComponent[Input]()
