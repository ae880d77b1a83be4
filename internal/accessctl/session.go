package accessctl

import (
	"time"

	"github.com/google/uuid"

	"github.com/wardgate/wardgate-core/internal/identity"
)

// session is the transient state of one authentication attempt.
//
// A session is created when a recognised card is detected and discarded at
// the end of the attempt, successful or not. Nothing survives across
// attempts: no retry counts, no partial digit buffers.
type session struct {
	// id tags the attempt's log entries for correlation.
	id string

	// record is the identity resolved from the card fingerprint.
	record identity.Record

	// digits is the entered-digit buffer, at most PINLength long.
	digits []byte

	// pinStartedAt anchors the PIN entry deadline.
	pinStartedAt time.Time
}

// newSession creates the session for a resolved identity. start anchors the
// PIN deadline and should be the moment the greeting is shown.
func newSession(rec identity.Record, start time.Time) *session {
	return &session{
		id:           uuid.NewString(),
		record:       rec,
		digits:       make([]byte, 0, identity.PINLength),
		pinStartedAt: start,
	}
}

// complete reports whether the digit buffer has reached full PIN length.
func (s *session) complete() bool {
	return len(s.digits) == identity.PINLength
}
