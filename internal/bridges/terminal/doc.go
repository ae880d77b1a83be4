// Package terminal implements the door-terminal bridge for Ward Gate Core.
//
// A door terminal is the physical unit at the door: proximity-card reader,
// 4x4 keypad, 16x2 character display, granted/denied indicator lights, and
// a sounder. Its firmware speaks small JSON envelopes over the local MQTT
// bus; this bridge translates between those envelopes and the periph
// collaborator contracts the access controller consumes.
//
// # Message Flow
//
//	terminal firmware ──event/card──▶ Bridge ──PollNewCard/ReadFingerprint──▶ controller
//	terminal firmware ──event/key───▶ Bridge ──PollKey────────────────────▶ controller
//	terminal firmware ──status──────▶ Bridge ──TerminalOnline─────────────▶ startup check
//	controller ──Display/Indicators/Tone──▶ Bridge ──command/*──▶ terminal firmware
//
// Inbound events are buffered in bounded channels and drained by the
// controller's non-blocking polls; if the controller is mid-attempt and the
// buffers fill, the oldest semantics are preserved by dropping the newest
// events (a card waved during someone else's PIN entry is not queued
// indefinitely).
//
// The terminal announces its own availability on a retained status topic
// (online on boot, offline via its LWT); the bridge tracks the last
// announcement and logs transitions.
//
// A card event whose UID does not decode to a well-formed fingerprint is
// surfaced as a failed read: PollNewCard reports presence, ReadFingerprint
// reports failure, and the controller silently returns to polling. This is
// the transient-read-failure path.
//
// # Usage
//
//	bridge, err := terminal.Attach(client, cfg.Terminal.ID, byte(cfg.MQTT.QoS))
//	if err != nil {
//	    return err
//	}
//	defer bridge.Close()
//
// The Bridge satisfies periph.CardReader, periph.Keypad, periph.Display,
// periph.Indicators, and periph.ToneEmitter.
package terminal
