package component

// TTL removes short-lived entities (effects, telegraphs) after Frames ticks.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]()
