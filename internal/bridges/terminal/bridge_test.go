package terminal

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/wardgate/wardgate-core/internal/infrastructure/mqtt"
)

// fakeMQTT records subscriptions and publishes, and lets tests inject
// inbound events by invoking the captured handlers.
type fakeMQTT struct {
	handlers     map[string]mqtt.MessageHandler
	published    []publishedMessage
	subscribeErr error
	unsubscribed []string
}

type publishedMessage struct {
	topic   string
	payload []byte
}

func newFakeMQTT() *fakeMQTT {
	return &fakeMQTT{handlers: make(map[string]mqtt.MessageHandler)}
}

func (f *fakeMQTT) Publish(topic string, payload []byte, qos byte, retained bool) error {
	f.published = append(f.published, publishedMessage{topic: topic, payload: payload})
	return nil
}

func (f *fakeMQTT) PublishJSON(topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return f.Publish(topic, payload, 1, false)
}

func (f *fakeMQTT) Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error {
	if f.subscribeErr != nil {
		return f.subscribeErr
	}
	f.handlers[topic] = handler
	return nil
}

func (f *fakeMQTT) Unsubscribe(topic string) error {
	f.unsubscribed = append(f.unsubscribed, topic)
	delete(f.handlers, topic)
	return nil
}

func (f *fakeMQTT) IsConnected() bool { return true }

// inject delivers a payload to the handler subscribed on topic.
func (f *fakeMQTT) inject(t *testing.T, topic string, payload string) error {
	t.Helper()
	handler, ok := f.handlers[topic]
	if !ok {
		t.Fatalf("no handler subscribed on %q", topic)
	}
	return handler(topic, []byte(payload))
}

// lastPublished returns the most recent publish on topic.
func (f *fakeMQTT) lastPublished(t *testing.T, topic string) []byte {
	t.Helper()
	for i := len(f.published) - 1; i >= 0; i-- {
		if f.published[i].topic == topic {
			return f.published[i].payload
		}
	}
	t.Fatalf("nothing published on %q", topic)
	return nil
}

const testTerminalID = "door-test"

var testTopics = mqtt.Topics{}

func attachTestBridge(t *testing.T) (*Bridge, *fakeMQTT) {
	t.Helper()

	client := newFakeMQTT()
	bridge, err := Attach(client, testTerminalID, 1)
	if err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	return bridge, client
}

func TestAttach_SubscribesEventTopics(t *testing.T) {
	_, client := attachTestBridge(t)

	for _, topic := range []string{
		testTopics.TerminalEvent(testTerminalID, mqtt.EventCard),
		testTopics.TerminalEvent(testTerminalID, mqtt.EventKey),
		testTopics.TerminalStatus(testTerminalID),
	} {
		if _, ok := client.handlers[topic]; !ok {
			t.Errorf("no subscription on %q", topic)
		}
	}
}

func TestAttach_SubscribeFailure(t *testing.T) {
	client := newFakeMQTT()
	client.subscribeErr = errors.New("broker unavailable")

	if _, err := Attach(client, testTerminalID, 1); !errors.Is(err, ErrAttachFailed) {
		t.Errorf("Attach() error = %v, want ErrAttachFailed", err)
	}
}

func TestBridge_CardEventFlow(t *testing.T) {
	bridge, client := attachTestBridge(t)
	cardTopic := testTopics.TerminalEvent(testTerminalID, mqtt.EventCard)

	if bridge.PollNewCard() {
		t.Fatal("PollNewCard() = true before any event")
	}

	if err := client.inject(t, cardTopic, `{"uid":"b3:29:d7:05"}`); err != nil {
		t.Fatalf("inject error = %v", err)
	}

	if !bridge.PollNewCard() {
		t.Fatal("PollNewCard() = false after card event")
	}

	fp, ok := bridge.ReadFingerprint()
	if !ok {
		t.Fatal("ReadFingerprint() failed for well-formed uid")
	}
	if fp != [4]byte{0xB3, 0x29, 0xD7, 0x05} {
		t.Errorf("fingerprint = %v", fp)
	}

	// Event consumed: reader is quiet again.
	if bridge.PollNewCard() {
		t.Error("PollNewCard() = true after event consumed")
	}
}

func TestBridge_MalformedUID_ReadFails(t *testing.T) {
	bridge, client := attachTestBridge(t)
	cardTopic := testTopics.TerminalEvent(testTerminalID, mqtt.EventCard)

	// Garbled read from the terminal: presence is reported, the
	// fingerprint is not.
	if err := client.inject(t, cardTopic, `{"uid":"b3:29"}`); err != nil {
		t.Fatalf("inject error = %v", err)
	}

	if !bridge.PollNewCard() {
		t.Fatal("PollNewCard() = false, want presence for garbled read")
	}
	if _, ok := bridge.ReadFingerprint(); ok {
		t.Error("ReadFingerprint() succeeded for garbled uid")
	}
}

func TestBridge_BadCardEnvelope(t *testing.T) {
	_, client := attachTestBridge(t)
	cardTopic := testTopics.TerminalEvent(testTerminalID, mqtt.EventCard)

	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `not-json`},
		{name: "missing uid", payload: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.inject(t, cardTopic, tt.payload)
			if !errors.Is(err, ErrBadEnvelope) {
				t.Errorf("handler error = %v, want ErrBadEnvelope", err)
			}
		})
	}
}

func TestBridge_KeyEventFlow(t *testing.T) {
	bridge, client := attachTestBridge(t)
	keyTopic := testTopics.TerminalEvent(testTerminalID, mqtt.EventKey)

	if _, ok := bridge.PollKey(); ok {
		t.Fatal("PollKey() yielded a key before any event")
	}

	for _, key := range []string{"1", "2", "#"} {
		if err := client.inject(t, keyTopic, `{"key":"`+key+`"}`); err != nil {
			t.Fatalf("inject(%q) error = %v", key, err)
		}
	}

	// Keys come back in order.
	for _, want := range []byte{'1', '2', '#'} {
		key, ok := bridge.PollKey()
		if !ok {
			t.Fatalf("PollKey() empty, want %q", want)
		}
		if key != want {
			t.Errorf("PollKey() = %q, want %q", key, want)
		}
	}
}

func TestBridge_InvalidKeyRejected(t *testing.T) {
	bridge, client := attachTestBridge(t)
	keyTopic := testTopics.TerminalEvent(testTerminalID, mqtt.EventKey)

	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{name: "outside matrix", payload: `{"key":"x"}`, wantErr: ErrInvalidKey},
		{name: "multi character", payload: `{"key":"12"}`, wantErr: ErrBadEnvelope},
		{name: "empty", payload: `{"key":""}`, wantErr: ErrBadEnvelope},
		{name: "not json", payload: `zzz`, wantErr: ErrBadEnvelope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.inject(t, keyTopic, tt.payload)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("handler error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, ok := bridge.PollKey(); ok {
		t.Error("rejected key reached the buffer")
	}
}

func TestBridge_TerminalStatus(t *testing.T) {
	bridge, client := attachTestBridge(t)
	statusTopic := testTopics.TerminalStatus(testTerminalID)

	if bridge.TerminalOnline() {
		t.Fatal("TerminalOnline() = true before any status announcement")
	}

	if err := client.inject(t, statusTopic, `{"status":"online"}`); err != nil {
		t.Fatalf("inject online: %v", err)
	}
	if !bridge.TerminalOnline() {
		t.Error("TerminalOnline() = false after online announcement")
	}

	if err := client.inject(t, statusTopic, `{"status":"offline"}`); err != nil {
		t.Fatalf("inject offline: %v", err)
	}
	if bridge.TerminalOnline() {
		t.Error("TerminalOnline() = true after offline announcement")
	}

	if err := client.inject(t, statusTopic, `{}`); err == nil || !errors.Is(err, ErrBadEnvelope) {
		t.Errorf("handler error = %v, want ErrBadEnvelope for missing status", err)
	}
}

func TestBridge_DisplayCommands(t *testing.T) {
	bridge, client := attachTestBridge(t)
	displayTopic := testTopics.TerminalCommand(testTerminalID, mqtt.CommandDisplay)

	bridge.Clear()
	var cmd DisplayCommand
	if err := json.Unmarshal(client.lastPublished(t, displayTopic), &cmd); err != nil {
		t.Fatalf("unmarshal clear: %v", err)
	}
	if cmd.Op != DisplayOpClear {
		t.Errorf("op = %q, want %q", cmd.Op, DisplayOpClear)
	}

	bridge.SetCursor(5, 1)
	if err := json.Unmarshal(client.lastPublished(t, displayTopic), &cmd); err != nil {
		t.Fatalf("unmarshal cursor: %v", err)
	}
	if cmd.Op != DisplayOpCursor || cmd.Col != 5 || cmd.Row != 1 {
		t.Errorf("cursor command = %+v", cmd)
	}

	// A move to the home column must carry an explicit col field; the
	// firmware does not default absent fields.
	bridge.SetCursor(0, 1)
	raw := string(client.lastPublished(t, displayTopic))
	if !strings.Contains(raw, `"col":0`) {
		t.Errorf("cursor payload = %s, want explicit col 0", raw)
	}
	if !strings.Contains(raw, `"row":1`) {
		t.Errorf("cursor payload = %s, want row 1", raw)
	}

	bridge.WriteLine("Hello Alice")
	if err := json.Unmarshal(client.lastPublished(t, displayTopic), &cmd); err != nil {
		t.Fatalf("unmarshal write: %v", err)
	}
	if cmd.Op != DisplayOpWrite || cmd.Text != "Hello Alice" {
		t.Errorf("write command = %+v", cmd)
	}
}

func TestBridge_IndicatorCommands(t *testing.T) {
	bridge, client := attachTestBridge(t)
	indicatorTopic := testTopics.TerminalCommand(testTerminalID, mqtt.CommandIndicator)

	bridge.SetGranted(true)
	var cmd IndicatorCommand
	if err := json.Unmarshal(client.lastPublished(t, indicatorTopic), &cmd); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cmd.Indicator != IndicatorGranted || !cmd.On {
		t.Errorf("command = %+v, want granted on", cmd)
	}

	bridge.SetDenied(false)
	if err := json.Unmarshal(client.lastPublished(t, indicatorTopic), &cmd); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cmd.Indicator != IndicatorDenied || cmd.On {
		t.Errorf("command = %+v, want denied off", cmd)
	}
}

func TestBridge_ToneCommands(t *testing.T) {
	bridge, client := attachTestBridge(t)
	toneTopic := testTopics.TerminalCommand(testTerminalID, mqtt.CommandTone)

	bridge.Tone(1500)
	var cmd ToneCommand
	if err := json.Unmarshal(client.lastPublished(t, toneTopic), &cmd); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cmd.Op != ToneOpStart || cmd.FrequencyHz != 1500 {
		t.Errorf("command = %+v, want tone 1500", cmd)
	}

	bridge.Stop()
	if err := json.Unmarshal(client.lastPublished(t, toneTopic), &cmd); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cmd.Op != ToneOpStop {
		t.Errorf("command = %+v, want stop", cmd)
	}
}

func TestBridge_Close_Unsubscribes(t *testing.T) {
	bridge, client := attachTestBridge(t)

	if err := bridge.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if len(client.unsubscribed) != 3 {
		t.Errorf("unsubscribed %d topics, want 3: %v", len(client.unsubscribed), client.unsubscribed)
	}

	// Close is idempotent.
	if err := bridge.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if len(client.unsubscribed) != 3 {
		t.Errorf("second Close() unsubscribed again: %v", client.unsubscribed)
	}
}
