// Package mqtt provides the MQTT client for the Ward Gate terminal bus.
//
// The door terminal's peripherals (card reader, keypad, display, indicator
// lights, sounder) hang off a local broker. This package wraps
// paho.mqtt.golang with:
//
//   - Connection management with Last Will and Testament (LWT)
//   - Automatic reconnection with subscription restoration
//   - Publish/Subscribe helpers with validation and timeouts
//   - Topic builders for the wardgate/... topic hierarchy
//
// # Topic Scheme
//
//	wardgate/system/status                      core online/offline (retained)
//	wardgate/terminal/{id}/status               terminal online/offline (retained)
//	wardgate/terminal/{id}/event/card           card presented: {"uid":"b3:29:d7:05"}
//	wardgate/terminal/{id}/event/key            key pressed:    {"key":"1"}
//	wardgate/terminal/{id}/command/display      display command
//	wardgate/terminal/{id}/command/indicator    indicator command
//	wardgate/terminal/{id}/command/tone         tone command
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topic := mqtt.Topics{}.TerminalEvent("door-001", "card")
//	err = client.Subscribe(topic, 1, func(topic string, payload []byte) error {
//	    // handle card event
//	    return nil
//	})
//
// # Thread Safety
//
// All Client methods are safe for concurrent use. Subscriptions are
// restored automatically on reconnection.
package mqtt
