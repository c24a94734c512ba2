// Package game provides the per-session state and the terminal game loop.
package game

// State is the session's current mode.
type State int

const (
	// StateExploring is the default mode: the player moves and the world
	// is rendered every frame.
	StateExploring State = iota
	// StateReading means the content overlay is open. Pose updates and
	// world rendering are suspended; no game time passes until the
	// overlay closes.
	StateReading
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExploring:
		return "exploring"
	case StateReading:
		return "reading"
	default:
		return "unknown"
	}
}
