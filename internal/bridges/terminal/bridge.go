package terminal

import (
	"fmt"
	"sync"

	"github.com/wardgate/wardgate-core/internal/identity"
	"github.com/wardgate/wardgate-core/internal/infrastructure/mqtt"
	"github.com/wardgate/wardgate-core/internal/periph"
)

// Event buffer sizes. Card events are rare (one per presentation); key
// events burst during PIN entry but never faster than a human can type.
const (
	cardBufferSize = 4
	keyBufferSize  = 32
)

// MQTTClient is the interface for MQTT operations the bridge needs.
// This allows mocking in tests and flexibility in implementation.
type MQTTClient interface {
	// Publish sends a message to a topic.
	Publish(topic string, payload []byte, qos byte, retained bool) error

	// PublishJSON marshals v and publishes it with the client's default QoS.
	PublishJSON(topic string, v any) error

	// Subscribe registers a handler for a topic pattern.
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error

	// Unsubscribe removes a subscription.
	Unsubscribe(topic string) error

	// IsConnected returns true if connected to the broker.
	IsConnected() bool
}

// Logger interface for optional logging support.
// Compatible with logging.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
}

// cardEvent is one buffered card presentation. ok is false when the
// terminal reported presence but the fingerprint did not decode.
type cardEvent struct {
	fp identity.Fingerprint
	ok bool
}

// Bridge connects one door terminal on the MQTT bus to the periph
// collaborator contracts.
//
// Inbound events are buffered in bounded channels filled by MQTT handler
// goroutines and drained by the controller's polls; outbound commands are
// published synchronously.
//
// Thread Safety: all methods are safe for concurrent use, though the
// controller is the only intended caller of the poll methods.
type Bridge struct {
	terminalID string
	client     MQTTClient
	qos        byte
	topics     mqtt.Topics

	cards chan cardEvent
	keys  chan byte

	// pending holds a card event between PollNewCard and ReadFingerprint.
	pending   *cardEvent
	pendingMu sync.Mutex

	// online tracks the terminal's last retained status announcement.
	online   bool
	onlineMu sync.RWMutex

	closeOnce sync.Once

	logger   Logger
	loggerMu sync.RWMutex
}

// Compile-time checks: the bridge must satisfy every collaborator contract.
var (
	_ periph.CardReader  = (*Bridge)(nil)
	_ periph.Keypad      = (*Bridge)(nil)
	_ periph.Display     = (*Bridge)(nil)
	_ periph.Indicators  = (*Bridge)(nil)
	_ periph.ToneEmitter = (*Bridge)(nil)
)

// Attach subscribes to a terminal's event topics and returns a Bridge
// ready to serve as the controller's hardware collaborators.
//
// Parameters:
//   - client: Connected MQTT client
//   - terminalID: The terminal identifier from config (topic segment)
//   - qos: QoS level for event subscriptions
//
// Returns:
//   - *Bridge: Attached bridge
//   - error: ErrAttachFailed if a subscription could not be established
func Attach(client MQTTClient, terminalID string, qos byte) (*Bridge, error) {
	b := &Bridge{
		terminalID: terminalID,
		client:     client,
		qos:        qos,
		cards:      make(chan cardEvent, cardBufferSize),
		keys:       make(chan byte, keyBufferSize),
	}

	cardTopic := b.topics.TerminalEvent(terminalID, mqtt.EventCard)
	if err := client.Subscribe(cardTopic, qos, b.handleCardEvent); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAttachFailed, err)
	}

	keyTopic := b.topics.TerminalEvent(terminalID, mqtt.EventKey)
	if err := client.Subscribe(keyTopic, qos, b.handleKeyEvent); err != nil {
		// Roll back the card subscription so a half-attached bridge
		// doesn't keep consuming events.
		client.Unsubscribe(cardTopic)
		return nil, fmt.Errorf("%w: %w", ErrAttachFailed, err)
	}

	// The status topic is retained, so the terminal's current availability
	// arrives immediately after this subscription.
	statusTopic := b.topics.TerminalStatus(terminalID)
	if err := client.Subscribe(statusTopic, qos, b.handleStatusEvent); err != nil {
		client.Unsubscribe(cardTopic)
		client.Unsubscribe(keyTopic)
		return nil, fmt.Errorf("%w: %w", ErrAttachFailed, err)
	}

	return b, nil
}

// Close detaches the bridge from the terminal's event topics.
func (b *Bridge) Close() error {
	var err error
	b.closeOnce.Do(func() {
		topics := []string{
			b.topics.TerminalEvent(b.terminalID, mqtt.EventCard),
			b.topics.TerminalEvent(b.terminalID, mqtt.EventKey),
			b.topics.TerminalStatus(b.terminalID),
		}
		for _, topic := range topics {
			if unsubErr := b.client.Unsubscribe(topic); unsubErr != nil && err == nil {
				err = unsubErr
			}
		}
	})
	return err
}

// SetLogger sets an optional logger for dropped events and publish errors.
func (b *Bridge) SetLogger(logger Logger) {
	b.loggerMu.Lock()
	b.logger = logger
	b.loggerMu.Unlock()
}

// getLogger returns the configured logger, or nil.
func (b *Bridge) getLogger() Logger {
	b.loggerMu.RLock()
	defer b.loggerMu.RUnlock()
	return b.logger
}

// =============================================================================
// Inbound: MQTT handlers
// =============================================================================

// handleCardEvent decodes a card event and buffers it for the controller.
func (b *Bridge) handleCardEvent(topic string, payload []byte) error {
	fp, ok, err := decodeCardEvent(payload)
	if err != nil {
		return err
	}

	select {
	case b.cards <- cardEvent{fp: fp, ok: ok}:
	default:
		// Buffer full: a card waved while an attempt is already in
		// progress is dropped, not queued for later.
		if logger := b.getLogger(); logger != nil {
			logger.Warn("card event dropped, buffer full", "terminal", b.terminalID)
		}
	}
	return nil
}

// handleKeyEvent decodes a key event and buffers it for the controller.
func (b *Bridge) handleKeyEvent(topic string, payload []byte) error {
	key, err := decodeKeyEvent(payload)
	if err != nil {
		return err
	}

	select {
	case b.keys <- key:
	default:
		if logger := b.getLogger(); logger != nil {
			logger.Warn("key event dropped, buffer full", "terminal", b.terminalID)
		}
	}
	return nil
}

// handleStatusEvent tracks the terminal's availability announcements.
func (b *Bridge) handleStatusEvent(topic string, payload []byte) error {
	online, err := decodeStatusEvent(payload)
	if err != nil {
		return err
	}

	b.onlineMu.Lock()
	changed := b.online != online
	b.online = online
	b.onlineMu.Unlock()

	if changed {
		if logger := b.getLogger(); logger != nil {
			if online {
				logger.Info("terminal online", "terminal", b.terminalID)
			} else {
				logger.Warn("terminal offline", "terminal", b.terminalID)
			}
		}
	}
	return nil
}

// TerminalOnline reports the terminal's last announced availability.
// False until the retained status message arrives after Attach.
func (b *Bridge) TerminalOnline() bool {
	b.onlineMu.RLock()
	defer b.onlineMu.RUnlock()
	return b.online
}

// =============================================================================
// periph.CardReader
// =============================================================================

// PollNewCard reports whether a card has been presented since the last poll.
// On true, the event is held for the following ReadFingerprint call.
func (b *Bridge) PollNewCard() bool {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()

	if b.pending != nil {
		return true
	}

	select {
	case ev := <-b.cards:
		b.pending = &ev
		return true
	default:
		return false
	}
}

// ReadFingerprint consumes the pending card event.
// The second return is false when no event is pending or the event carried
// an unreadable fingerprint.
func (b *Bridge) ReadFingerprint() ([periph.FingerprintSize]byte, bool) {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()

	if b.pending == nil {
		return [periph.FingerprintSize]byte{}, false
	}

	ev := *b.pending
	b.pending = nil
	return ev.fp, ev.ok
}

// =============================================================================
// periph.Keypad
// =============================================================================

// PollKey returns the next buffered key press, if any.
func (b *Bridge) PollKey() (byte, bool) {
	select {
	case key := <-b.keys:
		return key, true
	default:
		return 0, false
	}
}

// =============================================================================
// periph.Display / periph.Indicators / periph.ToneEmitter
// =============================================================================
//
// Outbound commands are fire-and-forget: the collaborator contracts have no
// error returns because feedback failures are not authentication failures.
// Publish errors are logged and the attempt continues.

// Clear blanks the terminal display.
func (b *Bridge) Clear() {
	b.publishCommand(mqtt.CommandDisplay, DisplayCommand{Op: DisplayOpClear})
}

// SetCursor moves the display write position.
func (b *Bridge) SetCursor(col, row int) {
	b.publishCommand(mqtt.CommandDisplay, DisplayCommand{Op: DisplayOpCursor, Col: col, Row: row})
}

// WriteLine writes text at the current cursor position.
func (b *Bridge) WriteLine(text string) {
	b.publishCommand(mqtt.CommandDisplay, DisplayCommand{Op: DisplayOpWrite, Text: text})
}

// SetGranted asserts or clears the granted indicator.
func (b *Bridge) SetGranted(on bool) {
	b.publishCommand(mqtt.CommandIndicator, IndicatorCommand{Indicator: IndicatorGranted, On: on})
}

// SetDenied asserts or clears the denied indicator.
func (b *Bridge) SetDenied(on bool) {
	b.publishCommand(mqtt.CommandIndicator, IndicatorCommand{Indicator: IndicatorDenied, On: on})
}

// Tone starts a continuous tone at the given frequency.
func (b *Bridge) Tone(frequencyHz int) {
	b.publishCommand(mqtt.CommandTone, ToneCommand{Op: ToneOpStart, FrequencyHz: frequencyHz})
}

// Stop silences the sounder.
func (b *Bridge) Stop() {
	b.publishCommand(mqtt.CommandTone, ToneCommand{Op: ToneOpStop})
}

// publishCommand encodes and publishes one command envelope.
func (b *Bridge) publishCommand(kind string, v any) {
	topic := b.topics.TerminalCommand(b.terminalID, kind)
	if err := b.client.PublishJSON(topic, v); err != nil {
		if logger := b.getLogger(); logger != nil {
			logger.Warn("terminal command publish failed",
				"terminal", b.terminalID,
				"kind", kind,
				"error", err,
			)
		}
	}
}
