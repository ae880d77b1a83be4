// Ward Gate Core - Door Access Controller
//
// This is the main entry point for the Ward Gate Core application: a
// two-factor physical access controller for a single door. A proximity
// card resolves an identity, a timed PIN challenge confirms it, and the
// door terminal gives granted/denied feedback via display, lights, and
// tones.
//
// The device boots directly into the controller's polling loop; there is
// no CLI surface beyond the config file path.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wardgate/wardgate-core/internal/accessctl"
	"github.com/wardgate/wardgate-core/internal/bridges/terminal"
	"github.com/wardgate/wardgate-core/internal/identity"
	"github.com/wardgate/wardgate-core/internal/infrastructure/config"
	"github.com/wardgate/wardgate-core/internal/infrastructure/logging"
	"github.com/wardgate/wardgate-core/internal/infrastructure/mqtt"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Run the application
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Ward Gate Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Build the identity store from the configured table
	store, err := buildIdentityStore(cfg.Access.Identities)
	if err != nil {
		return fmt.Errorf("building identity store: %w", err)
	}
	log.Info("identity store initialised", "identities", store.Len())

	// Connect to the terminal bus
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	mqttClient.SetLogger(log)
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	// Set up MQTT logging callbacks
	mqttClient.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	// Attach the door terminal bridge
	bridge, err := terminal.Attach(mqttClient, cfg.Terminal.ID, byte(cfg.MQTT.QoS))
	if err != nil {
		return fmt.Errorf("attaching terminal bridge: %w", err)
	}
	defer func() {
		log.Info("detaching terminal bridge")
		if closeErr := bridge.Close(); closeErr != nil {
			log.Error("error closing terminal bridge", "error", closeErr)
		}
	}()
	bridge.SetLogger(log)
	log.Info("terminal bridge attached",
		"terminal", cfg.Terminal.ID,
		"name", cfg.Terminal.Name,
	)

	// Build and run the access controller. Run blocks until ctx is
	// cancelled; deferred Close() calls then detach the bridge and
	// disconnect from the broker in reverse order.
	ctrl := accessctl.New(store, accessctl.Peripherals{
		Reader:     bridge,
		Keypad:     bridge,
		Display:    bridge,
		Indicators: bridge,
		Tone:       bridge,
	}, accessctl.Config{
		PinDeadline:      cfg.PinDeadline(),
		CardPollInterval: cfg.CardPollInterval(),
		KeyPollInterval:  cfg.KeyPollInterval(),
	})
	ctrl.SetLogger(log.With("component", "accessctl"))

	// Verify all connections are healthy
	if err := healthCheck(ctx, mqttClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	// The terminal's retained status message arrives shortly after attach;
	// an offline terminal is not fatal, the bridge logs its transitions.
	if !bridge.TerminalOnline() {
		log.Warn("terminal not yet online", "terminal", cfg.Terminal.ID)
	}

	log.Info("initialisation complete, polling for cards")

	if err := ctrl.Run(ctx); err != nil {
		return fmt.Errorf("running controller: %w", err)
	}

	log.Info("Ward Gate Core stopped")
	return nil
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - mqttClient: MQTT client to check
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, mqttClient *mqtt.Client) error {
	if err := mqttClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	return nil
}

// buildIdentityStore parses the configured identity table into the
// immutable store the controller authenticates against.
func buildIdentityStore(identities []config.IdentityConfig) (*identity.Store, error) {
	records := make([]identity.Record, 0, len(identities))
	for _, id := range identities {
		rec, err := identity.NewRecord(id.Fingerprint, id.PIN, id.Name)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return identity.NewStore(records)
}

// getConfigPath returns the configuration file path.
// Uses WARDGATE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("WARDGATE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
