package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ardnew/softcec/pkg"
	"github.com/ardnew/softcec/sad"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cec-follower.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.ReceiveTimeout() != 500*time.Millisecond {
		t.Errorf("ReceiveTimeout() = %v, want 500ms", cfg.ReceiveTimeout())
	}

	descs := cfg.Descriptors()
	if len(descs) != 2 {
		t.Fatalf("len(Descriptors()) = %d, want 2", len(descs))
	}
	if got := sad.Encode(&descs[0]); got != 0x090707 {
		t.Errorf("Encode(default L-PCM) = 0x%06x, want 0x090707", uint32(got))
	}
	if got := sad.Encode(&descs[1]); got != 0x150750 {
		t.Errorf("Encode(default AC-3) = 0x%06x, want 0x150750", uint32(got))
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
device:
  driver: vivid
log:
  level: debug
  format: json
  file:
    path: /tmp/cec-follower.log
    compress: true
showMsgs: true
ignore:
  - "0,0x8f"
  - "all,0x46"
audio:
  descriptors:
    - format: 15
      extension: 12
      channels: 8
      sampleFreqMask: 0x07
      formatDependent: 1
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Device.Driver != "vivid" {
		t.Errorf("Device.Driver = %q, want vivid", cfg.Device.Driver)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if !cfg.ShowMsgs {
		t.Error("ShowMsgs = false, want true")
	}
	lf := cfg.LogFile()
	if lf.Path != "/tmp/cec-follower.log" || !lf.Compress || lf.MaxSizeMB != 10 {
		t.Errorf("LogFile() = %+v", lf)
	}

	filter, err := cfg.IgnoreFilter()
	if err != nil {
		t.Fatalf("IgnoreFilter() error = %v", err)
	}
	if !filter.Ignored(0, 0x8f) || !filter.Ignored(4, 0x46) || filter.Ignored(4, 0x8f) {
		t.Error("IgnoreFilter() does not match the configured rules")
	}

	descs := cfg.Descriptors()
	if len(descs) != 1 {
		t.Fatalf("len(Descriptors()) = %d, want 1", len(descs))
	}
	if got := sad.Encode(&descs[0]).Bytes(); got != [3]byte{0x7f, 0x07, 0x61} {
		t.Errorf("Encode(AC-4) = % x, want 7f 07 61", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) succeeded")
	}
	if _, err := Load(writeConfig(t, "bogus: 1\n")); err == nil {
		t.Error("Load(unknown field) succeeded")
	}
}

func TestLoad_Env(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")
	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvDevice, "/dev/cec2")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Device.Path != "/dev/cec2" {
		t.Errorf("Device.Path = %q, want /dev/cec2", cfg.Device.Path)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want error", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"log level", func(c *Config) { c.Log.Level = "loud" }, pkg.ErrInvalidParameter},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, pkg.ErrInvalidParameter},
		{"receive timeout", func(c *Config) { c.ReceiveMs = 0 }, pkg.ErrInvalidParameter},
		{"receive timeout overflow", func(c *Config) { c.ReceiveMs = math.MaxUint32 + 1 }, pkg.ErrInvalidParameter},
		{"ignore all,all", func(c *Config) { c.Ignore = []string{"all,all"} }, pkg.ErrIgnoreAllAll},
		{"ignore bad address", func(c *Config) { c.Ignore = []string{"16"} }, pkg.ErrInvalidLogicalAddress},
		{"ignore bad opcode", func(c *Config) { c.Ignore = []string{"0,256"} }, pkg.ErrInvalidOpcode},
		{"zero channels", func(c *Config) { c.Audio.Descriptors[0].Channels = 0 }, pkg.ErrInvalidParameter},
		{"nine channels", func(c *Config) { c.Audio.Descriptors[0].Channels = 9 }, pkg.ErrInvalidParameter},
		{"reserved format", func(c *Config) { c.Audio.Descriptors[0].Format = 0 }, pkg.ErrInvalidParameter},
		{"illegal format", func(c *Config) { c.Audio.Descriptors[0].Format = 16 }, pkg.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate_MaxReceiveTimeout(t *testing.T) {
	cfg := Default()
	cfg.ReceiveMs = math.MaxUint32
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
