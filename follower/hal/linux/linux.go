//go:build linux

package linux

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/ardnew/softcec/follower/hal"
	"github.com/ardnew/softcec/pkg"
)

// =============================================================================
// Adapter Implementation
// =============================================================================

// Adapter implements hal.Adapter on a /dev/cecN device node.
type Adapter struct {
	path string

	mu     sync.RWMutex
	fd     int
	closed bool
}

// Open opens the CEC adapter at path.
func Open(path string) (*Adapter, error) {
	fd, err := openDevice(path)
	if err != nil {
		return nil, err
	}
	pkg.LogDebug(pkg.ComponentHAL, "opened adapter", "path", path, "fd", fd)
	return &Adapter{path: path, fd: fd}, nil
}

// Path returns the device node the adapter was opened from.
func (a *Adapter) Path() string { return a.path }

// do runs one ioctl under the read lock so Close cannot recycle the fd
// while it is in use.
func (a *Adapter) do(req uintptr, arg unsafe.Pointer) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return pkg.ErrClosed
	}
	return ioctl(a.fd, req, arg)
}

// =============================================================================
// Message Transfer
// =============================================================================

// Transmit issues CEC_TRANSMIT. The kernel fills in the status fields and,
// when msg.Reply is set, replaces the frame with the reply.
func (a *Adapter) Transmit(msg *hal.Message) error {
	return a.do(ioctlTransmit, unsafe.Pointer(msg))
}

// Receive issues CEC_RECEIVE, waiting up to msg.Timeout milliseconds.
func (a *Adapter) Receive(msg *hal.Message) error {
	return a.do(ioctlReceive, unsafe.Pointer(msg))
}

// =============================================================================
// Adapter State
// =============================================================================

// Capabilities issues CEC_ADAP_G_CAPS.
func (a *Adapter) Capabilities() (hal.Caps, error) {
	var c caps
	if err := a.do(ioctlAdapGetCaps, unsafe.Pointer(&c)); err != nil {
		return hal.Caps{}, err
	}
	return c.toHAL(), nil
}

// PhysicalAddress issues CEC_ADAP_G_PHYS_ADDR.
func (a *Adapter) PhysicalAddress() (uint16, error) {
	var pa uint16
	if err := a.do(ioctlAdapGetPhysAddr, unsafe.Pointer(&pa)); err != nil {
		return hal.PhysAddrInvalid, err
	}
	return pa, nil
}

// LogicalAddresses issues CEC_ADAP_G_LOG_ADDRS.
func (a *Adapter) LogicalAddresses() (hal.LogAddrs, error) {
	var l logAddrs
	if err := a.do(ioctlAdapGetLogAddrs, unsafe.Pointer(&l)); err != nil {
		return hal.LogAddrs{}, err
	}
	return l.toHAL(), nil
}

// ConnectorInfo issues CEC_ADAP_G_CONNECTOR_INFO. Adapters without
// hal.CapConnectorInfo reject it.
func (a *Adapter) ConnectorInfo() (hal.ConnectorInfo, error) {
	var c connectorInfo
	if err := a.do(ioctlAdapGetConnectorInfo, unsafe.Pointer(&c)); err != nil {
		return hal.ConnectorInfo{}, err
	}
	return c.toHAL(), nil
}

// Mode issues CEC_G_MODE.
func (a *Adapter) Mode() (hal.Mode, error) {
	var mode uint32
	if err := a.do(ioctlGetMode, unsafe.Pointer(&mode)); err != nil {
		return 0, err
	}
	return hal.Mode(mode), nil
}

// SetMode issues CEC_S_MODE.
func (a *Adapter) SetMode(mode hal.Mode) error {
	m := uint32(mode)
	return a.do(ioctlSetMode, unsafe.Pointer(&m))
}

// Close closes the device node once in-flight operations return. Further
// operations return pkg.ErrClosed.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	pkg.LogDebug(pkg.ComponentHAL, "closing adapter", "path", a.path)
	return unix.Close(a.fd)
}

var _ hal.Adapter = (*Adapter)(nil)
