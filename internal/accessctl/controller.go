package accessctl

import (
	"context"
	"time"

	"github.com/wardgate/wardgate-core/internal/identity"
	"github.com/wardgate/wardgate-core/internal/periph"
)

// Config tunes the controller's timing.
type Config struct {
	// PinDeadline is the PIN entry window, measured from the greeting.
	PinDeadline time.Duration

	// CardPollInterval paces the idle-loop reader polls.
	CardPollInterval time.Duration

	// KeyPollInterval paces keypad polls during PIN entry.
	KeyPollInterval time.Duration
}

// Peripherals bundles the hardware collaborators the controller drives.
// The terminal bridge satisfies all five; tests pass fakes.
type Peripherals struct {
	Reader     periph.CardReader
	Keypad     periph.Keypad
	Display    periph.Display
	Indicators periph.Indicators
	Tone       periph.ToneEmitter
}

// Logger interface for optional logging support.
// Compatible with logging.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

// Controller runs the authentication state machine for one door.
//
// It is a single sequential actor: Run polls the card reader, and each
// recognised card is carried through PIN collection to a terminal outcome
// before the next poll happens. Nothing here is safe for concurrent use,
// and nothing needs to be — the only shared collaborator, the identity
// store, is read-only.
type Controller struct {
	reader     periph.CardReader
	keypad     periph.Keypad
	display    periph.Display
	indicators periph.Indicators
	tone       periph.ToneEmitter

	store *identity.Store
	cfg   Config
	clock Clock

	state  State
	logger Logger
}

// New creates a Controller over the given store and peripherals.
//
// The zero values of Config are not usable; callers build Config from the
// validated application configuration.
func New(store *identity.Store, hw Peripherals, cfg Config) *Controller {
	return &Controller{
		reader:     hw.Reader,
		keypad:     hw.Keypad,
		display:    hw.Display,
		indicators: hw.Indicators,
		tone:       hw.Tone,
		store:      store,
		cfg:        cfg,
		clock:      realClock{},
		state:      StateIdle,
	}
}

// SetLogger sets an optional logger for attempt outcomes.
func (c *Controller) SetLogger(logger Logger) {
	c.logger = logger
}

// SetClock replaces the controller's clock. Intended for tests.
func (c *Controller) SetClock(clock Clock) {
	c.clock = clock
}

// State returns the controller's current state.
func (c *Controller) State() State {
	return c.state
}

// Run executes the cooperative polling loop until ctx is cancelled.
//
// Each iteration polls the reader once and, if a readable card is present,
// runs the full attempt synchronously. An attempt in flight is not
// interrupted by cancellation; it is bounded by the PIN deadline and the
// feedback holds, so shutdown is observed within a few seconds.
//
// Returns:
//   - error: always nil; retained for symmetry with other long-running
//     components and future fatal conditions
func (c *Controller) Run(ctx context.Context) error {
	if c.logger != nil {
		c.logger.Info("access controller started",
			"identities", c.store.Len(),
			"pin_deadline", c.cfg.PinDeadline,
		)
	}

	for {
		select {
		case <-ctx.Done():
			if c.logger != nil {
				c.logger.Info("access controller stopped")
			}
			return nil
		default:
		}

		c.Poll()
		c.clock.Sleep(c.cfg.CardPollInterval)
	}
}

// Poll executes one idle-loop iteration: check the reader and, if a card
// is present and readable, run the attempt to its terminal outcome.
//
// Returns:
//   - Outcome: the attempt's terminal outcome, or OutcomeNone
//   - bool: false when no attempt ran (no card, or presence with a failed
//     read — the transient condition is retried silently on the next poll)
func (c *Controller) Poll() (Outcome, bool) {
	if !c.reader.PollNewCard() {
		return OutcomeNone, false
	}

	raw, ok := c.reader.ReadFingerprint()
	if !ok {
		// Presence without a readable fingerprint. Stay idle, emit
		// nothing; the next poll retries.
		if c.logger != nil {
			c.logger.Debug("card present but fingerprint read failed")
		}
		return OutcomeNone, false
	}

	return c.runAttempt(identity.Fingerprint(raw)), true
}

// runAttempt carries one card presentation from detection to its terminal
// outcome and back to Idle.
func (c *Controller) runAttempt(fp identity.Fingerprint) Outcome {
	c.state = StateCardDetected

	// Affirmative chirp on read, before lookup: the cardholder hears that
	// the card registered even if it turns out to be unknown.
	c.chirp(detectToneHz, detectToneDuration)

	rec, found := c.store.Lookup(fp)
	if !found {
		outcome := OutcomeRejectedCard
		c.state = outcome.terminalState()
		c.emitOutcome(outcome)
		c.finishAttempt(nil, fp, outcome)
		return outcome
	}

	sess := newSession(rec, c.clock.Now())
	c.showGreeting(rec.Name)
	c.state = StatePinEntry

	outcome := c.collectPIN(sess)
	c.state = outcome.terminalState()
	c.emitOutcome(outcome)
	c.finishAttempt(sess, fp, outcome)
	return outcome
}

// collectPIN gathers digits until the buffer is full or the deadline
// elapses, and verifies the completed buffer against the session's PIN.
//
// The deadline is evaluated before each keypad poll, never asynchronously,
// so a timeout is only observed between key presses. Completion of the
// final digit at or before the boundary proceeds to comparison.
func (c *Controller) collectPIN(sess *session) Outcome {
	for {
		if c.clock.Now().Sub(sess.pinStartedAt) > c.cfg.PinDeadline {
			return OutcomeTimedOut
		}

		key, ok := c.keypad.PollKey()
		if !ok {
			c.clock.Sleep(c.cfg.KeyPollInterval)
			continue
		}

		// Auxiliary matrix keys (A-D, *, #) take no part in PIN entry.
		if !periph.IsDigit(key) {
			continue
		}

		sess.digits = append(sess.digits, key)
		c.echoDigit(len(sess.digits))

		if sess.complete() {
			if sess.record.PIN.Match(sess.digits) {
				return OutcomeAccepted
			}
			return OutcomeRejectedPin
		}
	}
}

// finishAttempt logs the outcome, discards the session, and returns the
// controller to Idle. The feedback sequence has already left the display
// and indicators clean.
func (c *Controller) finishAttempt(sess *session, fp identity.Fingerprint, outcome Outcome) {
	if c.logger != nil {
		args := []any{
			"outcome", outcome.String(),
			"fingerprint", fp.String(),
		}
		if sess != nil {
			args = append(args,
				"session_id", sess.id,
				"identity", sess.record.Name,
				"digits_entered", len(sess.digits),
			)
		}
		c.logger.Info("authentication attempt complete", args...)
	}

	c.state = StateIdle
}
