package level

// State is a step of the per-level generation state machine.
type State int

const (
	// StateSynthesizing carves a fresh layout.
	StateSynthesizing State = iota
	// StatePlacing chooses the start, portal, treasures and chests.
	StatePlacing
	// StateValidating checks every point of interest is reachable from the start.
	StateValidating
	// StateSuccess stamps the placement and emits the level.
	StateSuccess
	// StateRetry discards the attempt and starts over.
	StateRetry
	// StateExhaustedRetries is terminal: the attempt bound was reached.
	StateExhaustedRetries
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateSynthesizing:
		return "synthesizing"
	case StatePlacing:
		return "placing"
	case StateValidating:
		return "validating"
	case StateSuccess:
		return "success"
	case StateRetry:
		return "retry"
	case StateExhaustedRetries:
		return "exhausted_retries"
	default:
		return "unknown"
	}
}
