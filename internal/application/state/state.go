package state

// ArenaState represents whether the arena is updating hit results
type ArenaState int

const (
	StateRunning ArenaState = iota
	StatePaused
)

// String returns the string representation of the arena state
func (s ArenaState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Toggle switches between running and paused
func (s ArenaState) Toggle() ArenaState {
	if s == StatePaused {
		return StateRunning
	}
	return StatePaused
}
