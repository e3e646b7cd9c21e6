package component

// Combo tracks consecutive kills inside the combo window.
type Combo struct {
	Streak     int
	LastKillMS float64
	Multiplier float64
	Text       string
	Color      string
	// LastMilestone is the streak value whose bonus already fired.
	LastMilestone int
}

var ComboComponent = NewComponent[Combo]()
