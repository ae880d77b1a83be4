package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Ward Gate Core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Terminal TerminalConfig `yaml:"terminal"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	Access   AccessConfig   `yaml:"access"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TerminalConfig identifies the door terminal this controller drives.
type TerminalConfig struct {
	// ID is the terminal identifier used in bus topic names.
	ID string `yaml:"id"`

	// Name is a human-readable label for logs.
	Name string `yaml:"name"`
}

// MQTTConfig contains MQTT broker connection settings for the terminal bus.
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings (seconds).
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// AccessConfig contains authentication flow tuning and the identity table.
type AccessConfig struct {
	// PinDeadlineMs is the PIN entry window in milliseconds, measured from
	// the moment the greeting is shown.
	PinDeadlineMs int `yaml:"pin_deadline_ms"`

	// CardPollIntervalMs is the idle-loop card poll interval in milliseconds.
	CardPollIntervalMs int `yaml:"card_poll_interval_ms"`

	// KeyPollIntervalMs is the PIN-phase keypad poll interval in milliseconds.
	KeyPollIntervalMs int `yaml:"key_poll_interval_ms"`

	// Identities is the static credential table. Loaded once at startup;
	// there is no runtime provisioning.
	Identities []IdentityConfig `yaml:"identities"`
}

// IdentityConfig is one provisioned identity as written in config.yaml.
type IdentityConfig struct {
	// Fingerprint is the card fingerprint as hex, with or without
	// separators (e.g. "B3:29:D7:05" or "b329d705").
	Fingerprint string `yaml:"fingerprint"`

	// PIN is the four-digit PIN.
	PIN string `yaml:"pin"`

	// Name is the display name shown in the greeting.
	Name string `yaml:"name"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: WARDGATE_SECTION_KEY
// For example: WARDGATE_MQTT_HOST, WARDGATE_TERMINAL_ID
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults, including the
// built-in identity table used when no identities are configured.
func defaultConfig() *Config {
	return &Config{
		Terminal: TerminalConfig{
			ID:   "door-001",
			Name: "Main Entrance",
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "wardgate-core",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		Access: AccessConfig{
			PinDeadlineMs:      7500,
			CardPollIntervalMs: 50,
			KeyPollIntervalMs:  10,
			Identities: []IdentityConfig{
				{Fingerprint: "B3:29:D7:05", PIN: "1234", Name: "Alice"},
				{Fingerprint: "5E:EE:9C:04", PIN: "9042", Name: "Bob"},
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: WARDGATE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Terminal
	if v := os.Getenv("WARDGATE_TERMINAL_ID"); v != "" {
		cfg.Terminal.ID = v
	}

	// MQTT
	if v := os.Getenv("WARDGATE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("WARDGATE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("WARDGATE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Terminal validation
	if c.Terminal.ID == "" {
		errs = append(errs, "terminal.id is required")
	}

	// MQTT validation
	if c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required")
	}
	if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
		errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	// Access validation
	if c.Access.PinDeadlineMs < 1 {
		errs = append(errs, "access.pin_deadline_ms must be positive")
	}
	if c.Access.CardPollIntervalMs < 1 {
		errs = append(errs, "access.card_poll_interval_ms must be positive")
	}
	if c.Access.KeyPollIntervalMs < 1 {
		errs = append(errs, "access.key_poll_interval_ms must be positive")
	}
	if len(c.Access.Identities) == 0 {
		errs = append(errs, "access.identities must contain at least one identity")
	}

	errs = append(errs, validateIdentities(c.Access.Identities)...)

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// validateIdentities performs shape checks on the identity table.
// Full parsing happens when the identity store is built; these checks exist
// so a malformed table is reported at config load with a field-level message.
func validateIdentities(identities []IdentityConfig) []string {
	var errs []string

	seen := make(map[string]bool, len(identities))
	for i, id := range identities {
		prefix := fmt.Sprintf("access.identities[%d]", i)

		if id.Name == "" {
			errs = append(errs, prefix+".name is required")
		}

		if !isHexFingerprint(id.Fingerprint) {
			errs = append(errs, prefix+".fingerprint must be 4 hex bytes (e.g. \"B3:29:D7:05\")")
		} else {
			key := canonicalHex(id.Fingerprint)
			if seen[key] {
				errs = append(errs, prefix+".fingerprint duplicates an earlier identity")
			}
			seen[key] = true
		}

		if !isNumericPIN(id.PIN) {
			errs = append(errs, prefix+".pin must be exactly 4 digits")
		}
	}

	return errs
}

// isHexFingerprint reports whether s is 4 hex bytes, separators allowed.
func isHexFingerprint(s string) bool {
	cleaned := canonicalHex(s)
	const hexLen = 8 // 4 bytes, 2 hex chars each
	if len(cleaned) != hexLen {
		return false
	}
	for i := 0; i < len(cleaned); i++ {
		c := cleaned[i]
		isHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
		if !isHex {
			return false
		}
	}
	return true
}

// canonicalHex lowercases s and strips the separators the identity parser accepts.
func canonicalHex(s string) string {
	return strings.NewReplacer(":", "", "-", "", " ", "").Replace(strings.ToLower(s))
}

// isNumericPIN reports whether s is exactly 4 decimal digits.
func isNumericPIN(s string) bool {
	const pinLen = 4
	if len(s) != pinLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// PinDeadline returns the PIN entry window as a Duration.
func (c *Config) PinDeadline() time.Duration {
	return time.Duration(c.Access.PinDeadlineMs) * time.Millisecond
}

// CardPollInterval returns the idle-loop card poll interval as a Duration.
func (c *Config) CardPollInterval() time.Duration {
	return time.Duration(c.Access.CardPollIntervalMs) * time.Millisecond
}

// KeyPollInterval returns the PIN-phase keypad poll interval as a Duration.
func (c *Config) KeyPollInterval() time.Duration {
	return time.Duration(c.Access.KeyPollIntervalMs) * time.Millisecond
}
