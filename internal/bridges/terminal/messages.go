package terminal

import (
	"encoding/json"
	"fmt"

	"github.com/wardgate/wardgate-core/internal/identity"
	"github.com/wardgate/wardgate-core/internal/periph"
)

// JSON envelopes exchanged with the door-terminal firmware.
//
// Events travel terminal → core, commands core → terminal. Envelopes are
// deliberately flat: the firmware is a small microcontroller program and
// parses them with a fixed-size JSON reader.

// CardEvent is published by the terminal when a card is presented.
// Topic: wardgate/terminal/{id}/event/card
type CardEvent struct {
	// UID is the card fingerprint as hex ("b3:29:d7:05"). The firmware
	// forwards whatever the reader produced; a truncated or garbled read
	// arrives here malformed and is treated as a failed read.
	UID string `json:"uid"`
}

// KeyEvent is published by the terminal when a key is pressed.
// Topic: wardgate/terminal/{id}/event/key
type KeyEvent struct {
	// Key is the single matrix character ("0"-"9", "A"-"D", "*", "#").
	Key string `json:"key"`
}

// StatusEvent is the terminal's retained availability announcement. The
// firmware publishes "online" on boot and the broker publishes "offline"
// through the firmware's LWT.
// Topic: wardgate/terminal/{id}/status
type StatusEvent struct {
	Status string `json:"status"`
}

// Terminal status values.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Display command operations.
const (
	// DisplayOpClear blanks the display and homes the cursor.
	DisplayOpClear = "clear"

	// DisplayOpCursor moves the write position.
	DisplayOpCursor = "cursor"

	// DisplayOpWrite writes text at the current cursor position.
	DisplayOpWrite = "write"
)

// DisplayCommand addresses the terminal's character display.
// Topic: wardgate/terminal/{id}/command/display
//
// Col and Row are always serialized: a cursor move to the home column must
// arrive as an explicit 0, not an absent field.
type DisplayCommand struct {
	Op   string `json:"op"`
	Col  int    `json:"col"`
	Row  int    `json:"row"`
	Text string `json:"text,omitempty"`
}

// IndicatorCommand drives one of the two outcome lights.
// Topic: wardgate/terminal/{id}/command/indicator
type IndicatorCommand struct {
	// Indicator is "granted" or "denied".
	Indicator string `json:"indicator"`
	On        bool   `json:"on"`
}

// Indicator names.
const (
	IndicatorGranted = "granted"
	IndicatorDenied  = "denied"
)

// Tone command operations.
const (
	// ToneOpStart begins emitting a continuous tone.
	ToneOpStart = "tone"

	// ToneOpStop silences the sounder.
	ToneOpStop = "stop"
)

// ToneCommand drives the terminal's sounder.
// Topic: wardgate/terminal/{id}/command/tone
type ToneCommand struct {
	Op          string `json:"op"`
	FrequencyHz int    `json:"frequency_hz,omitempty"`
}

// decodeCardEvent parses a card event payload into a fingerprint.
//
// The second return is false when the envelope decoded but the UID is not a
// well-formed fingerprint; that is the transient-read-failure signal, not
// an error. A payload that is not a CardEvent at all returns ErrBadEnvelope.
func decodeCardEvent(payload []byte) (identity.Fingerprint, bool, error) {
	var ev CardEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return identity.Fingerprint{}, false, fmt.Errorf("%w: %w", ErrBadEnvelope, err)
	}
	if ev.UID == "" {
		return identity.Fingerprint{}, false, fmt.Errorf("%w: missing uid", ErrBadEnvelope)
	}

	fp, err := identity.ParseFingerprint(ev.UID)
	if err != nil {
		// Presence without a readable fingerprint: the reader saw a card
		// but the serial did not survive the trip.
		return identity.Fingerprint{}, false, nil
	}

	return fp, true, nil
}

// decodeStatusEvent parses a terminal status payload.
// Returns true for online, false for offline or any unknown status value.
func decodeStatusEvent(payload []byte) (bool, error) {
	var ev StatusEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return false, fmt.Errorf("%w: %w", ErrBadEnvelope, err)
	}
	if ev.Status == "" {
		return false, fmt.Errorf("%w: missing status", ErrBadEnvelope)
	}
	return ev.Status == StatusOnline, nil
}

// decodeKeyEvent parses a key event payload into a matrix key byte.
func decodeKeyEvent(payload []byte) (byte, error) {
	var ev KeyEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBadEnvelope, err)
	}
	if len(ev.Key) != 1 {
		return 0, fmt.Errorf("%w: key must be a single character, got %q", ErrBadEnvelope, ev.Key)
	}

	key := ev.Key[0]
	if !periph.IsKey(key) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, ev.Key)
	}

	return key, nil
}
