package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/relabs-tech/compass_computer/internal/lsm303"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker           string
	MQTTClientIDProducer string
	MQTTClientIDGPS      string
	MQTTClientIDConsole  string
	MQTTClientIDWeb      string
	MQTTClientIDDisplay  string

	// Topics
	TopicReading string
	TopicHeading string
	TopicGPS     string

	// Compass hardware
	I2CBus        string
	CompassDevice lsm303.DeviceType
	CompassSA0    lsm303.SA0State
	// Burst-read deadline in milliseconds, 0 = no timeout
	IOTimeoutMS uint32

	// Magnetometer calibration bounds for this particular unit. The
	// defaults (±32767) amount to an assumed bias of zero.
	MagMin lsm303.Vector[int16]
	MagMax lsm303.Vector[int16]

	// GPS
	GPSSerialPort string
	GPSBaudRate   int

	// Timing
	SampleInterval     int // milliseconds
	ConsoleLogInterval int // milliseconds

	// Web server
	WebServerPort int

	// Display
	DisplayUpdateInterval int // milliseconds

	// Register debug tool: hex ranges writable over the websocket,
	// e.g. "0x00-0x02,0x20-0x26"
	RegisterDebugAllowedRanges string
}

// Package-level unexported variables for the singleton: InitGlobal sets the
// config exactly once, Get hands it out under a read lock.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{
		MQTTClientIDProducer: "compass-producer",
		MQTTClientIDGPS:      "compass-gps-producer",
		MQTTClientIDConsole:  "compass-console-subscriber",
		MQTTClientIDWeb:      "compass-web-subscriber",
		MQTTClientIDDisplay:  "compass-display-subscriber",

		TopicReading: "compass/reading",
		TopicHeading: "compass/heading",
		TopicGPS:     "compass/gps",

		CompassDevice: lsm303.DeviceAuto,
		CompassSA0:    lsm303.SA0Auto,
		MagMin:        lsm303.Vector[int16]{X: -32767, Y: -32767, Z: -32767},
		MagMax:        lsm303.Vector[int16]{X: +32767, Y: +32767, Z: +32767},

		GPSSerialPort: "/dev/serial0",
		GPSBaudRate:   9600,

		ConsoleLogInterval: 500,
		WebServerPort:      8080,

		DisplayUpdateInterval: 250,
	}
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
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_PRODUCER":
		c.MQTTClientIDProducer = value
	case "MQTT_CLIENT_ID_GPS":
		c.MQTTClientIDGPS = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value

	// Topics
	case "TOPIC_READING":
		c.TopicReading = value
	case "TOPIC_HEADING":
		c.TopicHeading = value
	case "TOPIC_GPS":
		c.TopicGPS = value

	// Compass hardware
	case "I2C_BUS":
		c.I2CBus = value
	case "COMPASS_DEVICE":
		dev, err := lsm303.ParseDeviceType(value)
		if err != nil {
			return fmt.Errorf("invalid COMPASS_DEVICE: %w", err)
		}
		c.CompassDevice = dev
	case "COMPASS_SA0":
		sa0, err := lsm303.ParseSA0(value)
		if err != nil {
			return fmt.Errorf("invalid COMPASS_SA0: %w", err)
		}
		c.CompassSA0 = sa0
	case "IO_TIMEOUT_MS":
		ms, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid IO_TIMEOUT_MS %q: %w", value, err)
		}
		c.IOTimeoutMS = uint32(ms)

	// Calibration bounds
	case "MAG_MIN_X":
		return parseInt16(value, key, &c.MagMin.X)
	case "MAG_MIN_Y":
		return parseInt16(value, key, &c.MagMin.Y)
	case "MAG_MIN_Z":
		return parseInt16(value, key, &c.MagMin.Z)
	case "MAG_MAX_X":
		return parseInt16(value, key, &c.MagMax.X)
	case "MAG_MAX_Y":
		return parseInt16(value, key, &c.MagMax.Y)
	case "MAG_MAX_Z":
		return parseInt16(value, key, &c.MagMax.Z)

	// GPS
	case "GPS_SERIAL_PORT":
		c.GPSSerialPort = value
	case "GPS_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_BAUD_RATE %q: %w", value, err)
		}
		c.GPSBaudRate = rate

	// Timing
	case "SAMPLE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SAMPLE_INTERVAL %q: %w", value, err)
		}
		c.SampleInterval = interval
	case "CONSOLE_LOG_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid CONSOLE_LOG_INTERVAL %q: %w", value, err)
		}
		c.ConsoleLogInterval = interval

	// Web server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// Display
	case "DISPLAY_UPDATE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_UPDATE_INTERVAL %q: %w", value, err)
		}
		c.DisplayUpdateInterval = interval

	case "REGISTER_DEBUG_ALLOWED_RANGES":
		c.RegisterDebugAllowedRanges = value

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

func parseInt16(value, key string, dst *int16) error {
	v, err := strconv.ParseInt(value, 10, 16)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	*dst = int16(v)
	return nil
}

// validate checks that all required fields are set and consistent.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.I2CBus == "" {
		return fmt.Errorf("I2C_BUS is required")
	}
	if c.SampleInterval == 0 {
		return fmt.Errorf("SAMPLE_INTERVAL is required")
	}
	if c.MagMin.X > c.MagMax.X || c.MagMin.Y > c.MagMax.Y || c.MagMin.Z > c.MagMax.Z {
		return fmt.Errorf("MAG_MIN bounds exceed MAG_MAX bounds")
	}
	return nil
}

// InitGlobal initializes the global configuration from file. Safe to call
// more than once; only the first call loads.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance. InitGlobal must have been
// called first, or this returns nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
