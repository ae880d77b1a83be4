// Package periph defines the hardware collaborator contracts for Ward Gate
// Core.
//
// The access controller never touches peripherals directly; it is handed
// implementations of these interfaces. The production implementation is the
// MQTT door-terminal bridge (internal/bridges/terminal); tests substitute
// in-memory fakes. The contracts deliberately mirror the capabilities of a
// basic door terminal: a proximity-card reader, a 4x4 matrix keypad, a
// two-line character display, granted/denied indicator lights, and a tone
// emitter.
//
// All poll methods are non-blocking: they report what is available right
// now and return immediately. Pacing is the controller's job.
package periph
