package mtu

// Outcome is the classified result of one don't-fragment probe.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeSuccess
	OutcomeFragmented
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFragmented:
		return "fragmented"
	case OutcomeFailed:
		return "failed"
	}

	return "unknown"
}

// Action tells the search how to move after a probe that did not succeed.
type Action string

const (
	// ActionShrink searches below the probed size.
	ActionShrink Action = "shrink"
	// ActionGrow searches above the probed size without recording it.
	ActionGrow Action = "grow"
	// ActionStop ends the search with the best size found so far.
	ActionStop Action = "stop"
)
