package follower

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/frostbyte73/core"

	"github.com/ardnew/softcec/follower/hal"
	"github.com/ardnew/softcec/pkg"
)

// DefaultReceiveTimeout bounds each receive so the dispatch loop notices
// Stop without waiting for bus traffic.
const DefaultReceiveTimeout = 500 * time.Millisecond

// MaxReceiveTimeout is the longest receive wait the adapter's 32-bit
// millisecond timeout field can carry.
const MaxReceiveTimeout = time.Duration(math.MaxUint32) * time.Millisecond

// Transmitter sends a message and returns once the adapter has completed it.
type Transmitter interface {
	Transmit(msg *hal.Message) error
}

// Responder is one part of the response engine. Respond reports whether it
// handled msg; replies are sent through tx.
type Responder interface {
	Respond(msg *hal.Message, tx Transmitter) (bool, error)
}

// Options configures a Follower.
type Options struct {
	ShowMsgs        bool                       // Log every received message at info level
	Trace           bool                       // Log every adapter operation at debug level
	ReceiveTimeout  time.Duration              // Receive poll period; DefaultReceiveTimeout if zero
	FormatTimestamp func(hal.Timestamp) string // Renders timestamps in logs; Timestamp.String if nil
}

// Follower is one emulation session: it owns the adapter, the activity
// tracker, the ignore filter and the responders, and runs the dispatch loop.
type Follower struct {
	adapter    hal.Adapter
	tracker    *Tracker
	gateway    *Gateway
	filter     *IgnoreFilter
	responders []Responder
	opts       Options

	caps     hal.Caps
	physAddr uint16
	logAddrs hal.LogAddrs
	features hal.DeviceFeatures

	running atomic.Bool
	stopped core.Fuse
}

// New creates a follower session on adapter. A nil filter ignores nothing.
func New(adapter hal.Adapter, filter *IgnoreFilter, opts Options, responders ...Responder) *Follower {
	if filter == nil {
		filter = &IgnoreFilter{}
	}
	if opts.ReceiveTimeout <= 0 {
		opts.ReceiveTimeout = DefaultReceiveTimeout
	}
	opts.ReceiveTimeout = min(opts.ReceiveTimeout, MaxReceiveTimeout)
	if opts.FormatTimestamp == nil {
		opts.FormatTimestamp = hal.Timestamp.String
	}
	tracker := NewTracker()
	return &Follower{
		adapter:    adapter,
		tracker:    tracker,
		gateway:    NewGateway(adapter, tracker, opts.Trace),
		filter:     filter,
		responders: responders,
		opts:       opts,
	}
}

// Tracker returns the session's activity tracker.
func (f *Follower) Tracker() *Tracker { return f.tracker }

// Gateway returns the session's adapter gateway.
func (f *Follower) Gateway() *Gateway { return f.gateway }

// Caps returns the capabilities read by Setup.
func (f *Follower) Caps() hal.Caps { return f.caps }

// PhysAddr returns the physical address read by Setup.
func (f *Follower) PhysAddr() uint16 { return f.physAddr }

// LogAddrs returns the logical addresses read by Setup.
func (f *Follower) LogAddrs() hal.LogAddrs { return f.logAddrs }

// Features returns the CEC 2.0 device features read by Setup.
func (f *Follower) Features() hal.DeviceFeatures { return f.features }

// Setup reads the adapter's capabilities and addresses, verifies that a
// physical address and logical addresses are configured where the adapter
// expects them, and selects initiator plus follower mode.
func (f *Follower) Setup() error {
	var err error
	if f.caps, err = f.adapter.Capabilities(); err != nil {
		return fmt.Errorf("get capabilities: %w", err)
	}
	if f.physAddr, err = f.adapter.PhysicalAddress(); err != nil {
		return fmt.Errorf("get physical address: %w", err)
	}
	if f.logAddrs, err = f.adapter.LogicalAddresses(); err != nil {
		return fmt.Errorf("get logical addresses: %w", err)
	}
	f.features = f.logAddrs.DeviceFeatures()

	attrs := []any{
		"driver", f.caps.Driver,
		"adapter", f.caps.Name,
		"capabilities", fmt.Sprintf("0x%08x", f.caps.Capabilities),
		"physical_address", hal.FormatPhysAddr(f.physAddr),
		"logical_address_mask", fmt.Sprintf("0x%04x", f.logAddrs.LogAddrMask),
		"cec_version", f.logAddrs.CECVersion,
	}
	if f.caps.Has(hal.CapConnectorInfo) {
		if conn, err := f.adapter.ConnectorInfo(); err == nil {
			attrs = append(attrs, "connector", conn.Connector, "card", conn.Card)
		}
	}
	pkg.LogInfo(pkg.ComponentFollower, "adapter", attrs...)

	missingPA := f.physAddr == hal.PhysAddrInvalid &&
		f.caps.Has(hal.CapPhysAddr) && !f.caps.Has(hal.CapConnectorInfo)
	missingLA := f.logAddrs.NumLogAddrs == 0 && f.caps.Has(hal.CapLogAddrs)
	if missingPA && missingLA {
		return errors.Join(pkg.ErrMissingPhysAddr, pkg.ErrMissingLogAddrs)
	}
	if missingPA {
		return pkg.ErrMissingPhysAddr
	}
	if missingLA {
		return pkg.ErrMissingLogAddrs
	}

	if err := f.adapter.SetMode(hal.ModeInitiator | hal.ModeFollower); err != nil {
		return fmt.Errorf("set mode: %w", err)
	}
	return nil
}

// Run receives and dispatches messages until ctx is done or Stop is called.
// A Follower runs at most once.
func (f *Follower) Run(ctx context.Context) error {
	if !f.running.CompareAndSwap(false, true) {
		return pkg.ErrAlreadyRunning
	}
	defer f.LogActivity(slog.LevelDebug)

	go func() {
		select {
		case <-ctx.Done():
			f.Stop()
		case <-f.stopped.Watch():
		}
	}()

	timeout := uint32(f.opts.ReceiveTimeout.Milliseconds())
	for !f.stopped.IsBroken() {
		msg := hal.Message{Timeout: timeout}
		err := f.gateway.Receive(&msg)
		switch {
		case errors.Is(err, pkg.ErrTimeout):
			continue
		case errors.Is(err, pkg.ErrClosed) && f.stopped.IsBroken():
			return nil
		case err != nil:
			f.Stop()
			return fmt.Errorf("receive: %w", err)
		}

		if err := f.Dispatch(&msg); err != nil {
			pkg.LogWarn(pkg.ComponentFollower, "dispatch failed", "error", err)
		}
	}
	return nil
}

// Stop ends Run. It is safe to call more than once.
func (f *Follower) Stop() {
	f.stopped.Break()
}

// Dispatch hands a received message to the responders unless the ignore
// filter drops it. A directed message from a registered initiator that no
// responder handled is answered with Feature Abort.
func (f *Follower) Dispatch(msg *hal.Message) error {
	opcode, ok := msg.Opcode()
	if !ok {
		return nil // Poll
	}
	if f.opts.ShowMsgs {
		pkg.LogInfo(pkg.ComponentFollower, "received",
			"ts", f.opts.FormatTimestamp(msg.RxTimestamp),
			"from", msg.Initiator(),
			"to", msg.Destination(),
			"opcode", fmt.Sprintf("0x%02x", opcode),
			"operands", hex.EncodeToString(msg.Operands()))
	}
	if f.filter.Ignored(msg.Initiator(), opcode) {
		pkg.LogDebug(pkg.ComponentFollower, "ignored",
			"from", msg.Initiator(),
			"opcode", fmt.Sprintf("0x%02x", opcode))
		return nil
	}

	for _, r := range f.responders {
		handled, err := r.Respond(msg, f.gateway)
		if handled {
			return err
		}
	}

	if msg.IsBroadcast() || msg.Initiator() == hal.LogAddrUnregistered || opcode == hal.OpFeatureAbort {
		return nil
	}
	reason := uint8(hal.AbortUnrecognizedOp)
	if opcode == hal.OpAbort {
		reason = hal.AbortRefused
	}
	reply := msg.ReplyTo()
	return featureAbort(f.gateway, &reply, opcode, reason)
}

// LogActivity logs the last activity time of every logical address seen
// so far at level.
func (f *Follower) LogActivity(level slog.Level) {
	if !pkg.LogEnabled(level) {
		return
	}
	for la, ts := range f.tracker.Snapshot() {
		if ts == 0 {
			continue
		}
		pkg.Log(level, pkg.ComponentFollower, "last activity",
			"logical_address", la,
			"ts", f.opts.FormatTimestamp(ts))
	}
}
