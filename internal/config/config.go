// Package config loads the cec-follower configuration: built-in defaults,
// an optional YAML file, then environment overrides, followed by
// validation. Command-line flags are applied by the caller before Validate.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/ardnew/softcec/follower"
	"github.com/ardnew/softcec/pkg"
	"github.com/ardnew/softcec/sad"
)

// Environment variables read by Load.
const (
	EnvConfigPath = "CEC_FOLLOWER_CONFIG"
	EnvDevice     = "CEC_FOLLOWER_DEVICE"
	EnvLogLevel   = "CEC_FOLLOWER_LOG_LEVEL"
)

// Config is the complete cec-follower configuration.
type Config struct {
	Device    DeviceConfig `yaml:"device"`
	Log       LogConfig    `yaml:"log"`
	Trace     bool         `yaml:"trace"`     // Log every adapter operation
	ShowMsgs  bool         `yaml:"showMsgs"`  // Log every received message
	ShowState bool         `yaml:"showState"` // Log address activity on SIGUSR1 and at exit
	WallClock bool         `yaml:"wallClock"` // Show timestamps as wall-clock time
	ReceiveMs int64        `yaml:"receiveTimeoutMs"`
	Ignore    []string     `yaml:"ignore"` // "<la>|all[,<opcode>|all]"
	Audio     AudioConfig  `yaml:"audio"`
}

// DeviceConfig selects the adapter. Path wins over Driver and Adapter.
type DeviceConfig struct {
	Path    string `yaml:"path"`
	Driver  string `yaml:"driver"`
	Adapter string `yaml:"adapter"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string        `yaml:"level"`  // debug, info, warn, error
	Format     string        `yaml:"format"` // text, json
	NoWarnings bool          `yaml:"noWarnings"`
	File       LogFileConfig `yaml:"file"`
}

// LogFileConfig holds rotating log file settings.
type LogFileConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	Compress   bool   `yaml:"compress"`
}

// AudioConfig lists the short audio descriptors the emulated audio system
// reports.
type AudioConfig struct {
	Descriptors []SADConfig `yaml:"descriptors"`
}

// SADConfig is one short audio descriptor in configuration form.
type SADConfig struct {
	Format          uint8 `yaml:"format"` // Audio format code 1-15
	Extension       uint8 `yaml:"extension"`
	Channels        uint8 `yaml:"channels"` // 1-8
	SampleFreqMask  uint8 `yaml:"sampleFreqMask"`
	BitDepthMask    uint8 `yaml:"bitDepthMask"`
	MaxBitrate      uint8 `yaml:"maxBitrate"`
	FormatDependent uint8 `yaml:"formatDependent"`
	WMAProfile      uint8 `yaml:"wmaProfile"`
	FrameLengthMask uint8 `yaml:"frameLengthMask"`
	MPS             uint8 `yaml:"mps"`
}

// Default returns the built-in configuration: the first adapter, warn-level
// text logging, and an audio system reporting stereo L-PCM and 5.1 AC-3.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
			File: LogFileConfig{
				MaxSizeMB:  10,
				MaxBackups: 3,
				MaxAgeDays: 28,
			},
		},
		ReceiveMs: int64(follower.DefaultReceiveTimeout / time.Millisecond),
		Audio: AudioConfig{
			Descriptors: []SADConfig{
				{
					Format:         uint8(sad.FormatLPCM),
					Channels:       2,
					SampleFreqMask: sad.SampleFreq32kHz | sad.SampleFreq44kHz | sad.SampleFreq48kHz,
					BitDepthMask:   sad.BitDepth16 | sad.BitDepth20 | sad.BitDepth24,
				},
				{
					Format:         uint8(sad.FormatAC3),
					Channels:       6,
					SampleFreqMask: sad.SampleFreq32kHz | sad.SampleFreq44kHz | sad.SampleFreq48kHz,
					MaxBitrate:     80,
				},
			},
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (or
// the file named by CEC_FOLLOWER_CONFIG when path is empty), and
// environment overrides. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		pkg.LogDebug(pkg.ComponentConfig, "loaded config", "path", path)
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func loadFromFile(cfg *Config, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if device := os.Getenv(EnvDevice); device != "" {
		cfg.Device.Path = device
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Log.Level = level
	}
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if _, err := pkg.ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := pkg.ParseLogFormat(c.Log.Format); err != nil {
		return err
	}
	if c.ReceiveMs <= 0 || c.ReceiveMs > int64(follower.MaxReceiveTimeout/time.Millisecond) {
		return fmt.Errorf("%w: receive timeout %d ms", pkg.ErrInvalidParameter, c.ReceiveMs)
	}
	if _, err := c.IgnoreFilter(); err != nil {
		return err
	}
	for i, s := range c.Audio.Descriptors {
		if err := s.validate(); err != nil {
			return fmt.Errorf("audio descriptor %d: %w", i, err)
		}
	}
	return nil
}

func (s SADConfig) validate() error {
	if s.Channels < 1 || s.Channels > 8 {
		return fmt.Errorf("%w: %d channels", pkg.ErrInvalidParameter, s.Channels)
	}
	if s.Format < uint8(sad.FormatLPCM) || s.Format > uint8(sad.FormatExtended) {
		return fmt.Errorf("%w: format code %d", pkg.ErrInvalidParameter, s.Format)
	}
	return nil
}

// Descriptor converts s to a sad.Descriptor.
func (s SADConfig) Descriptor() sad.Descriptor {
	return sad.Descriptor{
		NumChannels:       s.Channels,
		FormatCode:        sad.FormatCode(s.Format),
		SampleFreqMask:    s.SampleFreqMask,
		BitDepthMask:      s.BitDepthMask,
		MaxBitrate:        s.MaxBitrate,
		FormatDependent:   s.FormatDependent,
		WMAProfile:        s.WMAProfile,
		ExtensionTypeCode: sad.ExtensionType(s.Extension),
		FrameLengthMask:   s.FrameLengthMask,
		MPS:               s.MPS,
	}
}

// Descriptors returns the configured short audio descriptors.
func (c *Config) Descriptors() []sad.Descriptor {
	out := make([]sad.Descriptor, len(c.Audio.Descriptors))
	for i, s := range c.Audio.Descriptors {
		out[i] = s.Descriptor()
	}
	return out
}

// IgnoreFilter parses the ignore rules into a filter.
func (c *Config) IgnoreFilter() (*follower.IgnoreFilter, error) {
	rules := make([]follower.IgnoreRule, 0, len(c.Ignore))
	for _, s := range c.Ignore {
		r, err := follower.ParseIgnoreRule(s)
		if err != nil {
			return nil, fmt.Errorf("ignore %q: %w", s, err)
		}
		rules = append(rules, r)
	}
	return follower.NewIgnoreFilter(rules...)
}

// ReceiveTimeout returns the dispatch loop's receive poll period.
func (c *Config) ReceiveTimeout() time.Duration {
	return time.Duration(c.ReceiveMs) * time.Millisecond
}

// LogFile converts the log file settings for pkg.NewRotatingWriter.
func (c *Config) LogFile() pkg.LogFileConfig {
	f := c.Log.File
	return pkg.LogFileConfig{
		Path:       f.Path,
		MaxSizeMB:  f.MaxSizeMB,
		MaxBackups: f.MaxBackups,
		MaxAgeDays: f.MaxAgeDays,
		Compress:   f.Compress,
	}
}
