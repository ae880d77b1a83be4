package terminal

import "errors"

// Domain errors for the terminal bridge.
var (
	// ErrBadEnvelope is returned when an inbound event payload is not
	// valid JSON or is missing required fields.
	ErrBadEnvelope = errors.New("terminal: malformed event envelope")

	// ErrInvalidKey is returned when a key event carries a character
	// outside the 16-key matrix set.
	ErrInvalidKey = errors.New("terminal: key outside matrix set")

	// ErrAttachFailed is returned when the bridge cannot subscribe to the
	// terminal's event topics.
	ErrAttachFailed = errors.New("terminal: attach failed")
)
