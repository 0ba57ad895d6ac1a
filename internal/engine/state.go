package engine

// State is the scene manager's lifecycle state.
type State int32

const (
	Idle State = iota
	Active
	Transitioning
	Disposed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Transitioning:
		return "transitioning"
	case Disposed:
		return "disposed"
	}
	return "unknown"
}
