package theory

//go:generate go tool stringer -type=RunState

// RunState tells whether a case can be run.
type RunState int

const (
	Runnable RunState = iota
	NotRunnable
)
