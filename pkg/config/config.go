package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidWave indicates unusable waveform parameters.
	ErrInvalidWave = errors.New("invalid wave configuration")
	// ErrInvalidSerial indicates unusable serial parameters.
	ErrInvalidSerial = errors.New("invalid serial configuration")
)

// Config represents the application configuration.
type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	Wave    WaveConfig    `yaml:"wave"`
	Stream  StreamConfig  `yaml:"stream"`
	Preview PreviewConfig `yaml:"preview"`
	Mock    MockConfig    `yaml:"mock"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// WaveConfig contains waveform parameters. They are read once when a
// generator is created and stay fixed for its lifetime.
type WaveConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Phase     string  `yaml:"phase"`    // "accumulator" (default) or "ticks"
	Quantize  string  `yaml:"quantize"` // "wrap" (default) or "saturate"
}

// StreamConfig contains run loop parameters.
type StreamConfig struct {
	RateHz        float64       `yaml:"rate_hz"` // Packets per second (0 = unpaced)
	Strict        bool          `yaml:"strict"`  // Surface write failures as errors
	StatsInterval time.Duration `yaml:"stats_interval"`
}

// PreviewConfig contains preview window parameters.
type PreviewConfig struct {
	MaxPoints       int           `yaml:"max_points"`     // Points drawn by the plot
	HistoryPoints   int           `yaml:"history_points"` // Samples retained for the plot and readouts
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// MockConfig contains mock sink configuration.
type MockConfig struct {
	BufferSize    int           `yaml:"buffer_size"`    // TX buffer size in bytes (0 = unbounded)
	DrainInterval time.Duration `yaml:"drain_interval"` // How often the buffer is emptied (0 = never)
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "COM6", // Default for Windows, should be "/dev/ttyUSB0" on Linux
			BaudRate: 921600,
		},
		Wave: WaveConfig{
			Amplitude: 100,
			Frequency: 1000,
			Phase:     "accumulator",
			Quantize:  "wrap",
		},
		Stream: StreamConfig{
			RateHz:        0,
			Strict:        false,
			StatsInterval: 5 * time.Second,
		},
		Preview: PreviewConfig{
			MaxPoints:       200,
			HistoryPoints:   400,
			RefreshInterval: 16 * time.Millisecond, // ~60 FPS
		},
		Mock: MockConfig{
			BufferSize:    64,
			DrainInterval: time.Millisecond,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Wave.Frequency <= 0 || math.IsInf(c.Wave.Frequency, 0) || math.IsNaN(c.Wave.Frequency) {
		return fmt.Errorf("%w: frequency must be positive, got %v", ErrInvalidWave, c.Wave.Frequency)
	}
	if c.Wave.Amplitude < 0 || math.IsInf(c.Wave.Amplitude, 0) || math.IsNaN(c.Wave.Amplitude) {
		return fmt.Errorf("%w: amplitude must be non-negative, got %v", ErrInvalidWave, c.Wave.Amplitude)
	}
	switch c.Wave.Phase {
	case "accumulator", "ticks":
	default:
		return fmt.Errorf("%w: unknown phase mode %q", ErrInvalidWave, c.Wave.Phase)
	}
	switch c.Wave.Quantize {
	case "wrap", "saturate":
	default:
		return fmt.Errorf("%w: unknown quantize mode %q", ErrInvalidWave, c.Wave.Quantize)
	}
	if c.Serial.BaudRate < 0 {
		return fmt.Errorf("%w: baud rate must be positive, got %d", ErrInvalidSerial, c.Serial.BaudRate)
	}
	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Wave.Frequency == 0 {
		c.Wave.Frequency = def.Wave.Frequency
	}
	if c.Wave.Phase == "" {
		c.Wave.Phase = def.Wave.Phase
	}
	if c.Wave.Quantize == "" {
		c.Wave.Quantize = def.Wave.Quantize
	}

	if c.Stream.StatsInterval == 0 {
		c.Stream.StatsInterval = def.Stream.StatsInterval
	}

	if c.Preview.MaxPoints == 0 {
		c.Preview.MaxPoints = def.Preview.MaxPoints
	}
	if c.Preview.HistoryPoints == 0 {
		c.Preview.HistoryPoints = def.Preview.HistoryPoints
	}
	if c.Preview.RefreshInterval == 0 {
		c.Preview.RefreshInterval = def.Preview.RefreshInterval
	}
}
