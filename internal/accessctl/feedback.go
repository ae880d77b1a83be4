package accessctl

import "time"

// Feedback tuning. The deadline and the outcome hold/tone durations come
// from the door-terminal UX: tones long enough to register, holds long
// enough to read the display, short enough not to queue people.
const (
	// detectToneHz/detectToneDuration: short affirmative chirp emitted the
	// moment a card read succeeds, before lookup.
	detectToneHz       = 1200
	detectToneDuration = 100 * time.Millisecond

	// keyToneHz/keyToneDuration: high-pitched echo per accepted digit.
	keyToneHz       = 2400
	keyToneDuration = 50 * time.Millisecond

	// lowToneHz/lowToneDuration: the negative tone shared by every
	// rejection and timeout.
	lowToneHz       = 400
	lowToneDuration = 800 * time.Millisecond

	// chimeFirstHz/chimeSecondHz/chimeStepDuration: two-tone ascending
	// chime on acceptance.
	chimeFirstHz      = 1500
	chimeSecondHz     = 2000
	chimeStepDuration = 150 * time.Millisecond

	// grantedHold keeps the granted indicator and message up after the chime.
	grantedHold = 1000 * time.Millisecond

	// rejectedHold is the total time a rejection display stays up,
	// including the 800 ms of tone.
	rejectedHold = 2500 * time.Millisecond

	// timedOutHold is the total time the expiry display stays up,
	// including the 800 ms of tone.
	timedOutHold = 1000 * time.Millisecond
)

// Display texts. The terminal display is sixteen columns; all fixed texts
// fit without truncation.
const (
	textGranted      = "ACCESS GRANTED"
	textDeniedPin    = "ACCESS DENIED"
	textUnauthorized = "UNAUTHORIZED"
	textExpired      = "SESSION EXPIRED"

	greetingPrefix = "Hello "
	pinPrompt      = "PIN: "
)

// chirp emits a tone for the given duration, blocking.
func (c *Controller) chirp(frequencyHz int, d time.Duration) {
	c.tone.Tone(frequencyHz)
	c.clock.Sleep(d)
	c.tone.Stop()
}

// showGreeting clears the display and shows the resolved identity's
// greeting with the PIN prompt on the second line.
func (c *Controller) showGreeting(name string) {
	c.display.Clear()
	c.display.SetCursor(0, 0)
	c.display.WriteLine(greetingPrefix + name)
	c.display.SetCursor(0, 1)
	c.display.WriteLine(pinPrompt)
}

// echoDigit writes one masking character for the n-th entered digit
// (1-based) after the PIN prompt and sounds the key tone.
func (c *Controller) echoDigit(n int) {
	c.display.SetCursor(len(pinPrompt)+n-1, 1)
	c.display.WriteLine("*")
	c.chirp(keyToneHz, keyToneDuration)
}

// emitOutcome runs the feedback sequence for a terminal outcome and leaves
// the terminal clean: display blank, both indicators off, sounder silent.
func (c *Controller) emitOutcome(outcome Outcome) {
	switch outcome {
	case OutcomeAccepted:
		c.showMessage(textGranted)
		c.indicators.SetGranted(true)
		c.tone.Tone(chimeFirstHz)
		c.clock.Sleep(chimeStepDuration)
		c.tone.Tone(chimeSecondHz)
		c.clock.Sleep(chimeStepDuration)
		c.tone.Stop()
		c.clock.Sleep(grantedHold)
		c.indicators.SetGranted(false)

	case OutcomeRejectedCard:
		c.showMessage(textUnauthorized)
		c.indicators.SetDenied(true)
		c.chirp(lowToneHz, lowToneDuration)
		c.clock.Sleep(rejectedHold - lowToneDuration)
		c.indicators.SetDenied(false)

	case OutcomeRejectedPin:
		c.showMessage(textDeniedPin)
		c.indicators.SetDenied(true)
		c.chirp(lowToneHz, lowToneDuration)
		c.clock.Sleep(rejectedHold - lowToneDuration)
		c.indicators.SetDenied(false)

	case OutcomeTimedOut:
		c.showMessage(textExpired)
		c.indicators.SetDenied(true)
		c.chirp(lowToneHz, lowToneDuration)
		c.clock.Sleep(timedOutHold - lowToneDuration)
		c.indicators.SetDenied(false)
	}

	c.display.Clear()
}

// showMessage clears the display and writes a single message on the top line.
func (c *Controller) showMessage(text string) {
	c.display.Clear()
	c.display.SetCursor(0, 0)
	c.display.WriteLine(text)
}
