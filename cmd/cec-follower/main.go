//go:build linux

// Command cec-follower emulates the follower side of an HDMI-CEC audio
// system on a Linux CEC adapter. It answers Request Short Audio Descriptor
// from the configured descriptor list, feature-aborts everything else
// addressed to it, and tracks when each logical address was last active.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ardnew/softcec/follower"
	"github.com/ardnew/softcec/follower/hal"
	"github.com/ardnew/softcec/follower/hal/linux"
	"github.com/ardnew/softcec/internal/config"
	"github.com/ardnew/softcec/pkg"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Component identifier for command logging.
const componentMain pkg.Component = "main"

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, " ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// options holds the parsed command line.
type options struct {
	configPath string
	device     string
	driver     string
	adapter    string
	ignore     stringList
	verbose    bool
	trace      bool
	showMsgs   bool
	showState  bool
	wallClock  bool
	noWarnings bool
	json       bool
	version    bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*options, error) {
	o := &options{}
	str := func(p *string, short, long, usage string) {
		fs.StringVar(p, short, "", usage)
		fs.StringVar(p, long, "", usage)
	}
	boolean := func(p *bool, short, long, usage string) {
		fs.BoolVar(p, short, false, usage)
		fs.BoolVar(p, long, false, usage)
	}
	str(&o.device, "d", "device", "Use device `dev` (N is short for /dev/cecN)")
	str(&o.driver, "D", "driver", "Use a cec device with driver name `drv`")
	str(&o.adapter, "a", "adapter", "Use a cec device with adapter name `name`")
	fs.Var(&o.ignore, "i", "Ignore messages from logical address `la` with opcode (\"la,opcode\"); repeatable")
	fs.Var(&o.ignore, "ignore", "Same as -i")
	boolean(&o.verbose, "v", "verbose", "Log adapter state, received messages and activity")
	boolean(&o.trace, "T", "trace", "Trace every adapter operation")
	boolean(&o.showMsgs, "m", "show-msgs", "Log every received message")
	boolean(&o.showState, "s", "show-state", "Log logical address activity on SIGUSR1 and at exit")
	boolean(&o.wallClock, "w", "wall-clock", "Like --verbose, with timestamps as wall-clock time")
	boolean(&o.noWarnings, "n", "no-warnings", "Turn off warning messages")
	fs.BoolVar(&o.json, "json", false, "Output logs as JSON")
	fs.StringVar(&o.configPath, "config", "", "Read configuration from YAML `file`")
	fs.BoolVar(&o.version, "version", false, "Show version information")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", pkg.ErrInvalidParameter, fs.Arg(0))
	}
	return o, nil
}

// apply overlays the command line onto cfg. Only flags that were given
// change the configuration.
func (o *options) apply(cfg *config.Config) {
	if o.device != "" {
		cfg.Device.Path = o.device
	}
	if o.driver != "" {
		cfg.Device.Driver = o.driver
	}
	if o.adapter != "" {
		cfg.Device.Adapter = o.adapter
	}
	cfg.Ignore = append(cfg.Ignore, o.ignore...)
	verbose := o.verbose || o.wallClock
	cfg.Trace = cfg.Trace || o.trace
	cfg.ShowMsgs = cfg.ShowMsgs || o.showMsgs || verbose
	cfg.ShowState = cfg.ShowState || o.showState || verbose
	cfg.WallClock = cfg.WallClock || o.wallClock
	cfg.Log.NoWarnings = cfg.Log.NoWarnings || o.noWarnings
	if o.json {
		cfg.Log.Format = "json"
	}
	switch {
	case cfg.Trace:
		cfg.Log.Level = "debug"
	case cfg.ShowMsgs || cfg.ShowState:
		if level, err := pkg.ParseLogLevel(cfg.Log.Level); err == nil && level > slog.LevelInfo {
			cfg.Log.Level = "info"
		}
	}
}

// setupLogging configures the default logger from cfg. The returned
// function releases the log file, if any.
func setupLogging(cfg *config.Config) (func() error, error) {
	level, err := pkg.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	format, err := pkg.ParseLogFormat(cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	release := func() error { return nil }
	if cfg.Log.File.Path != "" {
		w := pkg.NewRotatingWriter(cfg.LogFile())
		pkg.SetLogOutput(io.MultiWriter(os.Stderr, w))
		release = w.Close
	}
	pkg.SetLogLevel(level)
	pkg.SetLogFormat(format)
	pkg.SetShowWarnings(!cfg.Log.NoWarnings)
	return release, nil
}

// devicePath picks the adapter to open from cfg.
func devicePath(cfg *config.Config) (string, error) {
	if cfg.Device.Path == "" && (cfg.Device.Driver != "" || cfg.Device.Adapter != "") {
		path, err := linux.Find(cfg.Device.Driver, cfg.Device.Adapter)
		if err != nil {
			return "", fmt.Errorf("find driver %q adapter %q: %w", cfg.Device.Driver, cfg.Device.Adapter, err)
		}
		return path, nil
	}
	return linux.DevicePath(cfg.Device.Path), nil
}

func run(o *options) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	filter, err := cfg.IgnoreFilter()
	if err != nil {
		return err
	}

	path, err := devicePath(cfg)
	if err != nil {
		return err
	}
	adapter, err := linux.Open(path)
	if err != nil {
		return err
	}
	defer adapter.Close()

	formatTS := hal.Timestamp.String
	if cfg.WallClock {
		formatTS = linux.FormatWallClock
	}

	f := follower.New(adapter, filter,
		follower.Options{
			ShowMsgs:        cfg.ShowMsgs,
			Trace:           cfg.Trace,
			ReceiveTimeout:  cfg.ReceiveTimeout(),
			FormatTimestamp: formatTS,
		},
		follower.NewAudioResponder(cfg.Descriptors()))
	if err := f.Setup(); err != nil {
		return err
	}
	pkg.LogInfo(componentMain, "following",
		"device", path,
		"osd_name", f.LogAddrs().OSDName,
		"descriptors", len(cfg.Audio.Descriptors))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.ShowState {
		usr1 := make(chan os.Signal, 1)
		signal.Notify(usr1, syscall.SIGUSR1)
		defer signal.Stop(usr1)
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-usr1:
					f.LogActivity(slog.LevelInfo)
				}
			}
		}()
		defer f.LogActivity(slog.LevelInfo)
	}

	return f.Run(ctx)
}

func main() {
	o, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if o.version {
		fmt.Printf("cec-follower %s\n", version)
		return
	}

	if err := run(o); err != nil {
		pkg.LogError(componentMain, "cec-follower failed", "error", err)
		if errors.Is(err, pkg.ErrMissingPhysAddr) || errors.Is(err, pkg.ErrMissingLogAddrs) {
			fmt.Fprintln(os.Stderr, "configure the adapter's addresses (e.g. with cec-ctl) before starting")
		}
		os.Exit(1)
	}
}
