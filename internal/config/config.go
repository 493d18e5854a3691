package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// Serial transport
	SerialDevice   string // default device; the CLI positional argument overrides it
	SerialBaudRate uint

	// Rendering
	RenderTickInterval int    // milliseconds
	AxisPermutation    string // e.g. "x,-z,y"; sensor frame → render-world frame

	// Sinks
	SinkConsole bool
	SinkMQTT    bool
	SinkOLED    bool

	// MQTT
	MQTTBroker             string
	MQTTClientIDVisualizer string
	MQTTClientIDWeb        string
	TopicPose              string

	// Embedded web server
	WebEnabled    bool
	WebServerPort int

	// Replay
	ReplayInterval int // milliseconds between replayed lines
}

// Package-level unexported variables for the config singleton:
// InitGlobal sets it exactly once, Get reads it under a read lock.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		SerialBaudRate:         38400,
		RenderTickInterval:     33, // ~30 fps
		AxisPermutation:        "x,y,z",
		SinkConsole:            true,
		MQTTBroker:             "tcp://localhost:1883",
		MQTTClientIDVisualizer: "imu-visualizer",
		MQTTClientIDWeb:        "imu-visualizer-web",
		TopicPose:              "imu/pose",
		WebServerPort:          8080,
		ReplayInterval:         20,
	}
}

// Load reads the configuration file and returns a Config struct.
// Unset keys keep their defaults.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := Default()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// Serial transport
	case "SERIAL_DEVICE":
		c.SerialDevice = value
	case "SERIAL_BAUD_RATE":
		rate, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid SERIAL_BAUD_RATE %q: %w", value, err)
		}
		c.SerialBaudRate = uint(rate)

	// Rendering
	case "RENDER_TICK_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid RENDER_TICK_INTERVAL %q: %w", value, err)
		}
		if interval <= 0 {
			return fmt.Errorf("RENDER_TICK_INTERVAL must be positive, got %d", interval)
		}
		c.RenderTickInterval = interval
	case "AXIS_PERMUTATION":
		c.AxisPermutation = value

	// Sinks
	case "SINK_CONSOLE":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid SINK_CONSOLE %q: %w", value, err)
		}
		c.SinkConsole = b
	case "SINK_MQTT":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid SINK_MQTT %q: %w", value, err)
		}
		c.SinkMQTT = b
	case "SINK_OLED":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid SINK_OLED %q: %w", value, err)
		}
		c.SinkOLED = b

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_VISUALIZER":
		c.MQTTClientIDVisualizer = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "TOPIC_POSE":
		c.TopicPose = value

	// Web server
	case "WEB_ENABLED":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_ENABLED %q: %w", value, err)
		}
		c.WebEnabled = b
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// Replay
	case "REPLAY_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid REPLAY_INTERVAL %q: %w", value, err)
		}
		if interval < 0 {
			return fmt.Errorf("REPLAY_INTERVAL must not be negative, got %d", interval)
		}
		c.ReplayInterval = interval

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that the configuration is internally consistent.
func (c *Config) validate() error {
	if c.SerialBaudRate == 0 {
		return fmt.Errorf("SERIAL_BAUD_RATE is required")
	}
	if c.RenderTickInterval == 0 {
		return fmt.Errorf("RENDER_TICK_INTERVAL is required")
	}
	if c.SinkMQTT && c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required when SINK_MQTT is enabled")
	}
	if c.WebEnabled && c.WebServerPort == 0 {
		return fmt.Errorf("WEB_SERVER_PORT is required when WEB_ENABLED is set")
	}
	return nil
}

// InitGlobal initializes the global configuration. An empty path uses
// the defaults. Uses sync.Once so this only runs once even if called
// multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		if configPath == "" {
			globalConfig = Default()
			return
		}
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
