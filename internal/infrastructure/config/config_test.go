package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
terminal:
  id: "door-lab"
  name: "Lab Door"
mqtt:
  broker:
    host: "broker.local"
    port: 1883
    client_id: "wardgate-lab"
  qos: 1
access:
  pin_deadline_ms: 7500
  identities:
    - fingerprint: "B3:29:D7:05"
      pin: "1234"
      name: "Alice"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Terminal.ID != "door-lab" {
		t.Errorf("Terminal.ID = %q, want %q", cfg.Terminal.ID, "door-lab")
	}

	if cfg.MQTT.Broker.Host != "broker.local" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "broker.local")
	}

	if len(cfg.Access.Identities) != 1 {
		t.Fatalf("len(Identities) = %d, want 1", len(cfg.Access.Identities))
	}
	if cfg.Access.Identities[0].Name != "Alice" {
		t.Errorf("Identities[0].Name = %q, want %q", cfg.Access.Identities[0].Name, "Alice")
	}
}

func TestLoad_Defaults(t *testing.T) {
	// A minimal file keeps every default, including the built-in
	// identity table.
	content := `
logging:
  level: "debug"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Access.PinDeadlineMs != 7500 {
		t.Errorf("Access.PinDeadlineMs = %d, want 7500", cfg.Access.PinDeadlineMs)
	}
	if cfg.Terminal.ID != "door-001" {
		t.Errorf("Terminal.ID = %q, want default %q", cfg.Terminal.ID, "door-001")
	}
	if len(cfg.Access.Identities) != 2 {
		t.Errorf("len(Identities) = %d, want built-in 2", len(cfg.Access.Identities))
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	content := `
mqtt:
  broker:
    host: "from-file"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("WARDGATE_MQTT_HOST", "from-env")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MQTT.Broker.Host != "from-env" {
		t.Errorf("MQTT.Broker.Host = %q, want env override %q", cfg.MQTT.Broker.Host, "from-env")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config { return defaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing terminal id",
			mutate:  func(c *Config) { c.Terminal.ID = "" },
			wantErr: true,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.MQTT.Broker.Port = 0 },
			wantErr: true,
		},
		{
			name:    "qos out of range",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: true,
		},
		{
			name:    "zero pin deadline",
			mutate:  func(c *Config) { c.Access.PinDeadlineMs = 0 },
			wantErr: true,
		},
		{
			name:    "empty identity table",
			mutate:  func(c *Config) { c.Access.Identities = nil },
			wantErr: true,
		},
		{
			name: "bad fingerprint",
			mutate: func(c *Config) {
				c.Access.Identities[0].Fingerprint = "not-hex"
			},
			wantErr: true,
		},
		{
			name: "short pin",
			mutate: func(c *Config) {
				c.Access.Identities[0].PIN = "12"
			},
			wantErr: true,
		},
		{
			name: "non-numeric pin",
			mutate: func(c *Config) {
				c.Access.Identities[0].PIN = "12a4"
			},
			wantErr: true,
		},
		{
			name: "duplicate fingerprints",
			mutate: func(c *Config) {
				c.Access.Identities[1].Fingerprint = c.Access.Identities[0].Fingerprint
			},
			wantErr: true,
		},
		{
			name: "duplicate despite different separators",
			mutate: func(c *Config) {
				c.Access.Identities[0].Fingerprint = "B3:29:D7:05"
				c.Access.Identities[1].Fingerprint = "b329d705"
			},
			wantErr: true,
		},
		{
			name: "empty identity name",
			mutate: func(c *Config) {
				c.Access.Identities[0].Name = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_DurationHelpers(t *testing.T) {
	cfg := defaultConfig()

	if got := cfg.PinDeadline().Milliseconds(); got != 7500 {
		t.Errorf("PinDeadline() = %dms, want 7500ms", got)
	}
	if got := cfg.CardPollInterval().Milliseconds(); got != 50 {
		t.Errorf("CardPollInterval() = %dms, want 50ms", got)
	}
	if got := cfg.KeyPollInterval().Milliseconds(); got != 10 {
		t.Errorf("KeyPollInterval() = %dms, want 10ms", got)
	}
}
