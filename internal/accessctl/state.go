package accessctl

// State is the controller's position in the authentication flow.
type State int

// Controller states. Idle is initial; Accepted, RejectedCard, RejectedPin,
// and TimedOut are terminal per attempt, after which control returns to Idle.
const (
	// StateIdle means no attempt is in progress; the reader is being polled.
	StateIdle State = iota

	// StateCardDetected means a card was read and lookup is pending.
	StateCardDetected

	// StatePinEntry means digits are being collected under the deadline.
	StatePinEntry

	// StateAccepted means the PIN matched.
	StateAccepted

	// StateRejectedCard means the fingerprint was not provisioned.
	StateRejectedCard

	// StateRejectedPin means four digits were entered but did not match.
	StateRejectedPin

	// StateTimedOut means the PIN window elapsed before four digits arrived.
	StateTimedOut
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCardDetected:
		return "card_detected"
	case StatePinEntry:
		return "pin_entry"
	case StateAccepted:
		return "accepted"
	case StateRejectedCard:
		return "rejected_card"
	case StateRejectedPin:
		return "rejected_pin"
	case StateTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one authentication attempt.
//
// Every outcome is a normal business result, not an error: rejected and
// timed-out attempts are recoverable by presenting the card again.
type Outcome int

const (
	// OutcomeNone is the zero value: no attempt ran. Returned alongside
	// false from Poll; never a terminal result.
	OutcomeNone Outcome = iota

	// OutcomeAccepted: card recognised, PIN matched. Access granted.
	OutcomeAccepted

	// OutcomeRejectedCard: fingerprint not in the identity store.
	OutcomeRejectedCard

	// OutcomeRejectedPin: four digits entered, at least one wrong.
	OutcomeRejectedPin

	// OutcomeTimedOut: PIN window elapsed before four digits were entered.
	OutcomeTimedOut
)

// String returns the outcome name for logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejectedCard:
		return "rejected_card"
	case OutcomeRejectedPin:
		return "rejected_pin"
	case OutcomeTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// terminalState maps an outcome to the state the controller passes through
// while running that outcome's feedback sequence.
func (o Outcome) terminalState() State {
	switch o {
	case OutcomeAccepted:
		return StateAccepted
	case OutcomeRejectedCard:
		return StateRejectedCard
	case OutcomeRejectedPin:
		return StateRejectedPin
	case OutcomeTimedOut:
		return StateTimedOut
	default:
		return StateIdle
	}
}
