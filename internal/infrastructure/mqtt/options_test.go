package mqtt

import (
	"strings"
	"testing"

	"github.com/wardgate/wardgate-core/internal/infrastructure/config"
)

func testMQTTConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "broker.local",
			Port:     1883,
			ClientID: "wardgate-test",
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     60,
		},
	}
}

func TestBuildClientOptions_PlainTCP(t *testing.T) {
	opts := buildClientOptions(testMQTTConfig())

	if len(opts.Servers) != 1 {
		t.Fatalf("len(Servers) = %d, want 1", len(opts.Servers))
	}
	if got, want := opts.Servers[0].String(), "tcp://broker.local:1883"; got != want {
		t.Errorf("broker URL = %q, want %q", got, want)
	}
	if opts.ClientID != "wardgate-test" {
		t.Errorf("ClientID = %q, want %q", opts.ClientID, "wardgate-test")
	}
}

func TestBuildClientOptions_TLS(t *testing.T) {
	cfg := testMQTTConfig()
	cfg.Broker.TLS = true
	cfg.Broker.Port = 8883

	opts := buildClientOptions(cfg)

	if got, want := opts.Servers[0].String(), "ssl://broker.local:8883"; got != want {
		t.Errorf("broker URL = %q, want %q", got, want)
	}
	if opts.TLSConfig == nil {
		t.Fatal("TLSConfig not set for TLS broker")
	}
	if opts.TLSConfig.MinVersion != tlsMinVersion {
		t.Errorf("TLS MinVersion = %d, want %d", opts.TLSConfig.MinVersion, tlsMinVersion)
	}
}

func TestBuildClientOptions_Auth(t *testing.T) {
	cfg := testMQTTConfig()
	cfg.Auth.Username = "gatekeeper"
	cfg.Auth.Password = "hunter2"

	opts := buildClientOptions(cfg)

	if opts.Username != "gatekeeper" {
		t.Errorf("Username = %q, want %q", opts.Username, "gatekeeper")
	}
	if opts.Password != "hunter2" {
		t.Errorf("Password not carried through")
	}
}

func TestConfigureLWT(t *testing.T) {
	opts := buildClientOptions(testMQTTConfig())
	configureLWT(opts, "wardgate-test")

	if !opts.WillEnabled {
		t.Fatal("LWT not enabled")
	}
	if got, want := opts.WillTopic, (Topics{}).SystemStatus(); got != want {
		t.Errorf("WillTopic = %q, want %q", got, want)
	}
	if !opts.WillRetained {
		t.Error("LWT should be retained")
	}

	payload := string(opts.WillPayload)
	if !strings.Contains(payload, `"status":"offline"`) {
		t.Errorf("WillPayload = %q, want offline status", payload)
	}
	if !strings.Contains(payload, `"client_id":"wardgate-test"`) {
		t.Errorf("WillPayload = %q, want client id", payload)
	}
}

func TestStatusPayloads(t *testing.T) {
	online := buildOnlinePayload("wardgate-test")
	if !strings.Contains(online, `"status":"online"`) {
		t.Errorf("online payload = %q", online)
	}

	offline := buildOfflinePayload("wardgate-test")
	if !strings.Contains(offline, `"status":"offline"`) {
		t.Errorf("offline payload = %q", offline)
	}
	if !strings.Contains(offline, `"reason":"graceful_shutdown"`) {
		t.Errorf("offline payload = %q, want graceful reason", offline)
	}
}
