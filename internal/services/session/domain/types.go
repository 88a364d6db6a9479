// Package domain defines the session state machine states and its ports
package domain

// State is a session controller state
type State uint8

const (
	StatePrompting State = iota
	StateLoading
	StateAggregating
	StateBrowsing
	StateDeciding
	StateDone
)

func (s State) String() string {
	switch s {
	case StatePrompting:
		return "prompting"
	case StateLoading:
		return "loading"
	case StateAggregating:
		return "aggregating"
	case StateBrowsing:
		return "browsing"
	case StateDeciding:
		return "deciding"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Summary counts what a session did
type Summary struct {
	Iterations int
	Pages      int
	Recovered  int
}
