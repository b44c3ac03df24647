package executor

// State is the position of an Execute call in its lifecycle:
// Idle -> HandleAcquired -> Configured -> InFlight -> Completed or Failed.
// InitFailed is reachable only from Idle.
type State int

// Execute states.
const (
	StateIdle State = iota
	StateHandleAcquired
	StateConfigured
	StateInFlight
	StateCompleted
	StateFailed
	StateInitFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHandleAcquired:
		return "handle_acquired"
	case StateConfigured:
		return "configured"
	case StateInFlight:
		return "in_flight"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateInitFailed:
		return "init_failed"
	default:
		return "unknown"
	}
}
