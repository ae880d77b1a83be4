package accessctl

import "time"

// Clock abstracts time for the controller.
//
// The controller paces feedback with synchronous sleeps and measures the
// PIN deadline against Now(); routing both through Clock lets scenario
// tests drive a seven-and-a-half-second window in microseconds.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep blocks for the given duration.
	Sleep(d time.Duration)
}

// realClock is the production Clock backed by the time package.
type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }
