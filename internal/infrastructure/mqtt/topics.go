package mqtt

import "fmt"

// Topic prefixes for the Ward Gate terminal bus.
//
// All terminal topics use the flat scheme:
// wardgate/terminal/{terminal_id}/{category}/{kind}
const (
	// TopicPrefix is the base for all Ward Gate topics.
	TopicPrefix = "wardgate"

	// TopicPrefixSystem is the base for core system topics.
	TopicPrefixSystem = "wardgate/system"

	// TopicPrefixTerminal is the base for door terminal topics.
	TopicPrefixTerminal = "wardgate/terminal"
)

// Event and command kinds carried on terminal topics.
const (
	// EventCard is a card-presented event from the terminal's reader.
	EventCard = "card"

	// EventKey is a key-pressed event from the terminal's keypad.
	EventKey = "key"

	// CommandDisplay addresses the terminal's character display.
	CommandDisplay = "display"

	// CommandIndicator addresses the granted/denied indicator lights.
	CommandIndicator = "indicator"

	// CommandTone addresses the terminal's sounder.
	CommandTone = "tone"
)

// Topics provides builders for Ward Gate MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	cardTopic := topics.TerminalEvent("door-001", mqtt.EventCard)
//	// Returns: "wardgate/terminal/door-001/event/card"
type Topics struct{}

// SystemStatus returns the retained core online/offline status topic.
//
// Example: wardgate/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// TerminalStatus returns the retained terminal online/offline status topic.
//
// Example: wardgate/terminal/door-001/status
func (Topics) TerminalStatus(terminalID string) string {
	return fmt.Sprintf("%s/%s/status", TopicPrefixTerminal, terminalID)
}

// TerminalEvent returns the topic for events from a terminal peripheral.
//
// Example: wardgate/terminal/door-001/event/key
func (Topics) TerminalEvent(terminalID, kind string) string {
	return fmt.Sprintf("%s/%s/event/%s", TopicPrefixTerminal, terminalID, kind)
}

// TerminalCommand returns the topic for commands to a terminal peripheral.
//
// Example: wardgate/terminal/door-001/command/display
func (Topics) TerminalCommand(terminalID, kind string) string {
	return fmt.Sprintf("%s/%s/command/%s", TopicPrefixTerminal, terminalID, kind)
}
