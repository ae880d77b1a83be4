// Package accessctl implements the authentication controller for Ward Gate
// Core.
//
// The controller is the heart of the system: a state machine that turns a
// card presentation into exactly one terminal outcome.
//
// # State Machine
//
//	             card present,                lookup hit
//	             read ok                      (greeting, deadline starts)
//	  Idle ────────────────▶ CardDetected ────────────────▶ PinEntry
//	   ▲                         │                             │
//	   │                         │ lookup miss                 │
//	   │                         ▼                             │
//	   │◀──────────────── RejectedCard                         │
//	   │                                                       │
//	   │◀──────────────── TimedOut      ◀── deadline elapsed ──┤
//	   │◀──────────────── RejectedPin   ◀── 4 digits, no match ┤
//	   │◀──────────────── Accepted      ◀── 4 digits, match ───┘
//
// Card presence with a failed fingerprint read keeps the controller in
// Idle with no feedback: a transient hardware condition, not a security
// event. Every terminal state runs its feedback sequence (display,
// indicator, tone, timed hold), discards the session, and returns to Idle
// with no residual indicator or display state.
//
// # Pacing
//
// The controller is a single sequential actor. It paces user feedback with
// synchronous Clock.Sleep calls rather than timers, and evaluates the PIN
// deadline before each keypad poll, never asynchronously — a timeout can
// only be observed between key presses. Tests substitute a fake Clock to
// drive the deadline without wall time.
//
// # Usage
//
//	ctrl := accessctl.New(store, accessctl.Peripherals{
//	    Reader:     bridge,
//	    Keypad:     bridge,
//	    Display:    bridge,
//	    Indicators: bridge,
//	    Tone:       bridge,
//	}, cfg)
//	ctrl.SetLogger(log)
//	err := ctrl.Run(ctx)
package accessctl
