package periph

// FingerprintSize is the number of bytes a card reader yields per card.
const FingerprintSize = 4

// Display geometry. The terminal carries a standard two-line, sixteen-column
// character module.
const (
	DisplayCols = 16
	DisplayRows = 2
)

// CardReader detects card presence and yields the card's fingerprint.
type CardReader interface {
	// PollNewCard reports whether a new card has been presented since the
	// last poll. Non-blocking.
	PollNewCard() bool

	// ReadFingerprint returns the fingerprint of the presented card.
	// The second return is false when the read failed; presence without a
	// successful read is a transient hardware condition the caller should
	// treat as if no card were present.
	ReadFingerprint() ([FingerprintSize]byte, bool)
}

// Keypad yields at most one key event per poll.
type Keypad interface {
	// PollKey returns the next pressed key, if any. Non-blocking; the
	// second return is false when no key is pending. Keys are drawn from
	// the 16-character matrix set (see IsKey).
	PollKey() (byte, bool)
}

// Display is a two-line character display.
type Display interface {
	// Clear blanks both lines and homes the cursor.
	Clear()

	// SetCursor moves the write position. col is 0-based from the left,
	// row is 0 (top) or 1 (bottom).
	SetCursor(col, row int)

	// WriteLine writes text at the current cursor position. Text longer
	// than the remaining columns is truncated by the hardware.
	WriteLine(text string)
}

// Indicators drives the two binary outcome lights.
type Indicators interface {
	// SetGranted asserts or clears the positive ("granted") indicator.
	SetGranted(on bool)

	// SetDenied asserts or clears the negative ("denied") indicator.
	SetDenied(on bool)
}

// ToneEmitter drives the terminal sounder.
type ToneEmitter interface {
	// Tone starts emitting a continuous tone at the given frequency.
	// A second call retunes without stopping.
	Tone(frequencyHz int)

	// Stop silences the sounder.
	Stop()
}

// IsKey reports whether b is one of the 16 keys of the 4x4 matrix:
// digits 0-9 plus the auxiliary symbols A-D, * and #.
func IsKey(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'A' && b <= 'D':
		return true
	case b == '*' || b == '#':
		return true
	default:
		return false
	}
}

// IsDigit reports whether b is a decimal digit key. Only digit keys
// participate in PIN entry; auxiliary keys are accepted by the matrix but
// ignored by the PIN logic.
func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
