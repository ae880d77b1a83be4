package identity

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// Credential length constants. Both are fixed by the card format and the
// keypad flow; changing them is a hardware change, not a configuration one.
const (
	// FingerprintLength is the number of bytes in a card fingerprint.
	FingerprintLength = 4

	// PINLength is the number of digits in a PIN.
	PINLength = 4
)

// Fingerprint is the unique identifying byte sequence read from a card.
//
// It is a fixed-length value type: construction via FingerprintFromBytes
// or ParseFingerprint validates the length explicitly, so a Fingerprint
// held anywhere in the system is always well-formed.
type Fingerprint [FingerprintLength]byte

// FingerprintFromBytes builds a Fingerprint from a raw byte slice.
//
// Returns ErrInvalidFingerprint if the slice is not exactly
// FingerprintLength bytes.
func FingerprintFromBytes(b []byte) (Fingerprint, error) {
	var fp Fingerprint
	if len(b) != FingerprintLength {
		return fp, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidFingerprint, len(b), FingerprintLength)
	}
	copy(fp[:], b)
	return fp, nil
}

// ParseFingerprint parses a textual fingerprint.
//
// Accepted forms are plain hex ("B329D705") and colon- or dash-separated
// hex ("b3:29:d7:05", "B3-29-D7-05"). Case is ignored.
//
// Returns ErrInvalidFingerprint if the text is not valid hex or does not
// decode to exactly FingerprintLength bytes.
func ParseFingerprint(s string) (Fingerprint, error) {
	cleaned := strings.NewReplacer(":", "", "-", "", " ", "").Replace(s)

	raw, err := hex.DecodeString(cleaned)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("%w: %q is not hex", ErrInvalidFingerprint, s)
	}

	return FingerprintFromBytes(raw)
}

// String renders the fingerprint in lowercase colon-separated hex,
// e.g. "b3:29:d7:05". This is the canonical form used in logs and on
// the terminal bus.
func (f Fingerprint) String() string {
	parts := make([]string, FingerprintLength)
	for i, b := range f {
		parts[i] = hex.EncodeToString([]byte{b})
	}
	return strings.Join(parts, ":")
}

// PIN is a fixed-length sequence of ASCII decimal digits.
type PIN [PINLength]byte

// ParsePIN parses a textual PIN.
//
// Returns ErrInvalidPIN unless the text is exactly PINLength characters,
// all decimal digits.
func ParsePIN(s string) (PIN, error) {
	var p PIN
	if len(s) != PINLength {
		return p, fmt.Errorf("%w: got %d characters, want %d", ErrInvalidPIN, len(s), PINLength)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return p, fmt.Errorf("%w: non-digit character", ErrInvalidPIN)
		}
		p[i] = s[i]
	}
	return p, nil
}

// Match reports whether the entered digit sequence equals the PIN.
//
// The comparison is exact, order-sensitive, and full-length: any entered
// sequence that is not exactly PINLength digits fails. Equal-length
// comparison runs in constant time.
func (p PIN) Match(entered []byte) bool {
	if len(entered) != PINLength {
		return false
	}
	return subtle.ConstantTimeCompare(p[:], entered) == 1
}

// String returns a redacted placeholder. PINs are credentials and must
// never appear in logs or on the terminal bus.
func (p PIN) String() string {
	return strings.Repeat("*", PINLength)
}

// Record is a provisioned identity: the association of a card fingerprint,
// the PIN that must follow it, and a display name for greeting the holder.
//
// Records are immutable for the process lifetime; they are created at
// startup from the configured identity table and never mutated.
type Record struct {
	Fingerprint Fingerprint
	PIN         PIN
	Name        string
}

// NewRecord builds a validated Record from textual credential forms.
//
// Returns ErrInvalidFingerprint, ErrInvalidPIN, or ErrInvalidName when the
// corresponding field is malformed.
func NewRecord(fingerprint, pin, name string) (Record, error) {
	fp, err := ParseFingerprint(fingerprint)
	if err != nil {
		return Record{}, err
	}

	p, err := ParsePIN(pin)
	if err != nil {
		return Record{}, fmt.Errorf("record %q: %w", name, err)
	}

	if strings.TrimSpace(name) == "" {
		return Record{}, fmt.Errorf("%w: name is empty for fingerprint %s", ErrInvalidName, fp)
	}

	return Record{Fingerprint: fp, PIN: p, Name: name}, nil
}
