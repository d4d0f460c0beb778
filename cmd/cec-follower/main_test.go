//go:build linux

package main

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/softcec/follower"
	"github.com/ardnew/softcec/follower/hal"
	"github.com/ardnew/softcec/follower/hal/loopback"
	"github.com/ardnew/softcec/internal/config"
	"github.com/ardnew/softcec/pkg"
)

func parse(t *testing.T, args ...string) *options {
	t.Helper()
	fs := flag.NewFlagSet("cec-follower", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	o, err := parseFlags(fs, args)
	if err != nil {
		t.Fatalf("parseFlags(%v) error = %v", args, err)
	}
	return o
}

func TestParseFlags(t *testing.T) {
	o := parse(t, "-d", "1", "--driver", "vivid", "-i", "0,0x8f", "--ignore", "all,0x46", "-m", "--wall-clock")
	if o.device != "1" || o.driver != "vivid" {
		t.Errorf("device = %q, driver = %q", o.device, o.driver)
	}
	if len(o.ignore) != 2 || o.ignore[1] != "all,0x46" {
		t.Errorf("ignore = %v", o.ignore)
	}
	if !o.showMsgs || !o.wallClock {
		t.Errorf("showMsgs = %v, wallClock = %v", o.showMsgs, o.wallClock)
	}

	fs := flag.NewFlagSet("cec-follower", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := parseFlags(fs, []string{"extra"}); err == nil {
		t.Error("parseFlags(extra) succeeded")
	}
}

func TestOptionsApply(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		level      string
		showMsgs   bool
		showState  bool
		wallClock  bool
		noWarnings bool
	}{
		{name: "defaults", level: "warn"},
		{name: "verbose", args: []string{"-v"}, level: "info", showMsgs: true, showState: true},
		{name: "wall clock", args: []string{"-w"}, level: "info", showMsgs: true, showState: true, wallClock: true},
		{name: "show msgs", args: []string{"-m"}, level: "info", showMsgs: true},
		{name: "show state", args: []string{"-s"}, level: "info", showState: true},
		{name: "no warnings with msgs", args: []string{"-n", "-m"}, level: "info", showMsgs: true, noWarnings: true},
		{name: "no warnings", args: []string{"--no-warnings"}, level: "warn", noWarnings: true},
		{name: "trace", args: []string{"-T", "-v"}, level: "debug", showMsgs: true, showState: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			parse(t, tt.args...).apply(cfg)
			if cfg.Log.Level != tt.level {
				t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, tt.level)
			}
			if cfg.ShowMsgs != tt.showMsgs || cfg.ShowState != tt.showState {
				t.Errorf("ShowMsgs = %v, ShowState = %v, want %v, %v",
					cfg.ShowMsgs, cfg.ShowState, tt.showMsgs, tt.showState)
			}
			if cfg.WallClock != tt.wallClock {
				t.Errorf("WallClock = %v, want %v", cfg.WallClock, tt.wallClock)
			}
			if cfg.Log.NoWarnings != tt.noWarnings {
				t.Errorf("Log.NoWarnings = %v, want %v", cfg.Log.NoWarnings, tt.noWarnings)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}

	cfg := config.Default()
	cfg.Ignore = []string{"3"}
	parse(t, "-i", "all,all").apply(cfg)
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted all,all from the command line")
	}
}

func TestDevicePath(t *testing.T) {
	cfg := config.Default()
	if got, err := devicePath(cfg); err != nil || got != "/dev/cec0" {
		t.Errorf("devicePath(default) = %q, %v", got, err)
	}
	cfg.Device.Path = "2"
	if got, _ := devicePath(cfg); got != "/dev/cec2" {
		t.Errorf("devicePath(2) = %q, want /dev/cec2", got)
	}
}

func restoreLogging() {
	pkg.SetLogOutput(os.Stderr)
	pkg.SetLogLevel(slog.LevelWarn)
	pkg.SetLogFormat(pkg.LogFormatText)
	pkg.SetShowWarnings(true)
}

func TestSetupLogging(t *testing.T) {
	defer restoreLogging()

	cfg := config.Default()
	cfg.Log.File.Path = filepath.Join(t.TempDir(), "cec-follower.log")
	parse(t, "-n", "-m").apply(cfg)
	release, err := setupLogging(cfg)
	if err != nil {
		t.Fatalf("setupLogging() error = %v", err)
	}
	defer release()

	if got := pkg.GetLogLevel(); got != slog.LevelInfo {
		t.Errorf("GetLogLevel() = %v, want %v", got, slog.LevelInfo)
	}
	if pkg.ShowWarnings() {
		t.Error("ShowWarnings() = true with --no-warnings")
	}
	pkg.LogInfo(componentMain, "message shown")
	pkg.LogWarn(componentMain, "warning hidden")
	if err := release(); err != nil {
		t.Fatalf("release() error = %v", err)
	}
	data, err := os.ReadFile(cfg.Log.File.Path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "message shown") {
		t.Errorf("log file missing info message: %q", data)
	}
	if strings.Contains(string(data), "warning hidden") {
		t.Errorf("log file has suppressed warning: %q", data)
	}
}

func TestShowStateLogsActivity(t *testing.T) {
	defer restoreLogging()

	cfg := config.Default()
	cfg.Log.File.Path = filepath.Join(t.TempDir(), "cec-follower.log")
	parse(t, "-s").apply(cfg)
	release, err := setupLogging(cfg)
	if err != nil {
		t.Fatalf("setupLogging() error = %v", err)
	}
	defer release()

	adapter := loopback.New(loopback.AudioSystem())
	defer adapter.Close()
	f := follower.New(adapter, nil, follower.Options{})
	f.Tracker().RecordReceive(hal.LogAddrTV, 123)
	f.LogActivity(slog.LevelInfo)

	if err := release(); err != nil {
		t.Fatalf("release() error = %v", err)
	}
	data, err := os.ReadFile(cfg.Log.File.Path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "last activity") {
		t.Errorf("--show-state activity missing from log: %q", data)
	}
}
