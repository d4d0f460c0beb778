// Package loopback provides an in-memory CEC adapter.
//
// The adapter never touches hardware. Tests and dry runs inject inbound
// frames with [Adapter.Inject], and every transmitted frame is recorded and
// handed to an optional [TransmitFunc] that decides its outcome. Timestamps
// come from a nanosecond clock that starts at zero.
package loopback

import (
	"sync"
	"time"

	"github.com/ardnew/softcec/follower/hal"
	"github.com/ardnew/softcec/pkg"
)

// DefaultQueueDepth is the inbound queue size.
const DefaultQueueDepth = 64

// TransmitFunc decides the outcome of a transmit. It may set status bits,
// timestamps and reply bytes on msg. A non-nil error is returned to the
// caller as a transport failure.
type TransmitFunc func(msg *hal.Message) error

// Config describes the emulated adapter.
type Config struct {
	Caps          hal.Caps
	PhysAddr      uint16
	LogAddrs      hal.LogAddrs
	ConnectorInfo hal.ConnectorInfo
	QueueDepth    int
	Transmit      TransmitFunc
}

// Adapter implements hal.Adapter in memory.
type Adapter struct {
	cfg   Config
	start time.Time

	inbound chan hal.Message

	mutex  sync.Mutex
	sent   []hal.Message
	mode   hal.Mode
	seq    uint32
	closed bool

	closeCh   chan struct{}
	closeOnce sync.Once
}

// New creates a loopback adapter.
func New(cfg Config) *Adapter {
	depth := cfg.QueueDepth
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	return &Adapter{
		cfg:     cfg,
		start:   time.Now(),
		inbound: make(chan hal.Message, depth),
		closeCh: make(chan struct{}),
	}
}

// Now returns the adapter clock.
func (a *Adapter) Now() hal.Timestamp {
	return hal.Timestamp(time.Since(a.start))
}

// Inject queues msg for a later Receive. A zero RxTimestamp is stamped with
// the adapter clock and a zero RxStatus becomes RxStatusOK.
func (a *Adapter) Inject(msg hal.Message) error {
	if msg.RxTimestamp == 0 {
		msg.RxTimestamp = a.Now()
	}
	if msg.RxStatus == 0 {
		msg.RxStatus = pkg.RxStatusOK
	}
	select {
	case <-a.closeCh:
		return pkg.ErrClosed
	case a.inbound <- msg:
		return nil
	default:
		return pkg.ErrNoResources
	}
}

// Sent returns a copy of every transmitted message in order.
func (a *Adapter) Sent() []hal.Message {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	out := make([]hal.Message, len(a.sent))
	copy(out, a.sent)
	return out
}

// Mode returns the last mode set with SetMode.
func (a *Adapter) Mode() hal.Mode {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.mode
}

// Transmit records msg and applies the configured TransmitFunc. Without one
// the transmit succeeds, and a reply wait ends with RxStatusTimeout.
func (a *Adapter) Transmit(msg *hal.Message) error {
	a.mutex.Lock()
	if a.closed {
		a.mutex.Unlock()
		return pkg.ErrClosed
	}
	a.seq++
	msg.Sequence = a.seq
	a.mutex.Unlock()

	msg.TxTimestamp = a.Now()
	msg.TxStatus = pkg.TxStatusOK
	msg.RxStatus = 0
	if msg.Timeout != 0 {
		msg.RxStatus = pkg.RxStatusTimeout
	}
	if a.cfg.Transmit != nil {
		if err := a.cfg.Transmit(msg); err != nil {
			return err
		}
	}

	a.mutex.Lock()
	a.sent = append(a.sent, *msg)
	a.mutex.Unlock()
	return nil
}

// Receive returns the next injected message, waiting up to msg.Timeout
// milliseconds, or forever when the timeout is zero.
func (a *Adapter) Receive(msg *hal.Message) error {
	var timeout <-chan time.Time
	if msg.Timeout != 0 {
		timer := time.NewTimer(time.Duration(msg.Timeout) * time.Millisecond)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case m := <-a.inbound:
		*msg = m
		return nil
	case <-timeout:
		return pkg.ErrTimeout
	case <-a.closeCh:
		return pkg.ErrClosed
	}
}

// Capabilities returns the configured capabilities.
func (a *Adapter) Capabilities() (hal.Caps, error) {
	return a.cfg.Caps, nil
}

// PhysicalAddress returns the configured physical address.
func (a *Adapter) PhysicalAddress() (uint16, error) {
	return a.cfg.PhysAddr, nil
}

// LogicalAddresses returns the configured logical addresses.
func (a *Adapter) LogicalAddresses() (hal.LogAddrs, error) {
	return a.cfg.LogAddrs, nil
}

// ConnectorInfo returns the configured connector.
func (a *Adapter) ConnectorInfo() (hal.ConnectorInfo, error) {
	return a.cfg.ConnectorInfo, nil
}

// SetMode records the requested mode.
func (a *Adapter) SetMode(mode hal.Mode) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.closed {
		return pkg.ErrClosed
	}
	a.mode = mode
	return nil
}

// Close unblocks pending receives. Further operations return pkg.ErrClosed.
func (a *Adapter) Close() error {
	a.closeOnce.Do(func() {
		a.mutex.Lock()
		a.closed = true
		a.mutex.Unlock()
		close(a.closeCh)
	})
	return nil
}

// AudioSystem returns a Config for a CEC 2.0 audio system at 1.0.0.0
// holding logical address 5.
func AudioSystem() Config {
	var la hal.LogAddrs
	la.NumLogAddrs = 1
	la.LogAddr[0] = hal.LogAddrAudioSystem
	la.LogAddrMask = 1 << hal.LogAddrAudioSystem
	la.CECVersion = hal.CECVersion2_0
	la.OSDName = "Loopback"
	return Config{
		Caps: hal.Caps{
			Driver:            "loopback",
			Name:              "loopback",
			AvailableLogAddrs: hal.MaxLogAddrs,
			Capabilities:      hal.CapPhysAddr | hal.CapLogAddrs | hal.CapTransmit,
		},
		PhysAddr: 0x1000,
		LogAddrs: la,
	}
}

var _ hal.Adapter = (*Adapter)(nil)
