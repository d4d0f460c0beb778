package hal

import (
	"fmt"
	"time"

	"github.com/ardnew/softcec/pkg"
)

// Timestamp is an adapter clock reading in nanoseconds. On Linux it is
// CLOCK_MONOTONIC, not wall-clock time.
type Timestamp uint64

// String formats the timestamp as seconds with nanosecond precision.
func (t Timestamp) String() string {
	return fmt.Sprintf("%d.%09d", uint64(t)/uint64(time.Second), uint64(t)%uint64(time.Second))
}

// Message is one CEC frame together with its transmit and receive status.
// The field layout matches the kernel's struct cec_msg so the Linux HAL can
// pass it to the CEC_TRANSMIT and CEC_RECEIVE ioctls directly.
type Message struct {
	TxTimestamp   Timestamp            // Time the transmit completed
	RxTimestamp   Timestamp            // Time the message (or reply) was received
	Len           uint32               // Number of valid bytes in Msg
	Timeout       uint32               // Reply wait in ms (transmit) or receive wait (receive)
	Sequence      uint32               // Sequence number assigned by the adapter
	Flags         uint32               // CEC_MSG_FL_* flags
	Msg           [MaxMessageSize]byte // Header, opcode and operands
	Reply         uint8                // Opcode of the expected reply, 0 for none
	RxStatus      pkg.RxStatus         // Receive status bits
	TxStatus      pkg.TxStatus         // Transmit status bits
	TxArbLostCnt  uint8                // Arbitration lost count
	TxNackCnt     uint8                // NACK count
	TxLowDriveCnt uint8                // Low drive count
	TxErrorCnt    uint8                // Error count
}

// NewMessage builds a message from initiator to destination with the given
// opcode and operands. Operands beyond the frame size are an error.
func NewMessage(initiator, destination, opcode uint8, operands ...byte) (Message, error) {
	var m Message
	if 2+len(operands) > MaxMessageSize {
		return m, fmt.Errorf("%w: %d operand bytes", pkg.ErrMessageTooLong, len(operands))
	}
	m.Msg[0] = (initiator&0x0f)<<4 | destination&0x0f
	m.Msg[1] = opcode
	copy(m.Msg[2:], operands)
	m.Len = uint32(2 + len(operands))
	return m, nil
}

// Initiator returns the logical address of the sender.
func (m *Message) Initiator() uint8 { return m.Msg[0] >> 4 }

// Destination returns the logical address of the receiver.
func (m *Message) Destination() uint8 { return m.Msg[0] & 0x0f }

// IsBroadcast reports whether the message is addressed to all devices.
func (m *Message) IsBroadcast() bool { return m.Destination() == LogAddrBroadcast }

// Opcode returns the opcode and whether the message carries one.
// A one-byte message is a poll.
func (m *Message) Opcode() (uint8, bool) {
	if m.Len < 2 {
		return 0, false
	}
	return m.Msg[1], true
}

// Operands returns the bytes following the opcode.
func (m *Message) Operands() []byte {
	if m.Len <= 2 {
		return nil
	}
	n := min(int(m.Len), MaxMessageSize)
	return m.Msg[2:n]
}

// ReplyTo returns an empty message from m's destination back to its initiator.
func (m *Message) ReplyTo() Message {
	var r Message
	r.Msg[0] = m.Destination()<<4 | m.Initiator()
	r.Len = 1
	return r
}

// Caps describes an adapter (struct cec_caps).
type Caps struct {
	Driver            string // Kernel driver name
	Name              string // Adapter name
	AvailableLogAddrs uint32 // Number of logical addresses that can be claimed
	Capabilities      uint32 // Cap* bits
	Version           uint32 // CEC framework version
}

// Has reports whether all capability bits in mask are set.
func (c Caps) Has(mask uint32) bool { return c.Capabilities&mask == mask }

// LogAddrs describes the claimed logical addresses (struct cec_log_addrs).
type LogAddrs struct {
	LogAddr           [MaxLogAddrs]uint8
	LogAddrMask       uint16
	CECVersion        uint8
	NumLogAddrs       uint8
	VendorID          uint32
	Flags             uint32
	OSDName           string
	PrimaryDeviceType [MaxLogAddrs]uint8
	LogAddrType       [MaxLogAddrs]uint8
	AllDeviceTypes    [MaxLogAddrs]uint8
	Features          [MaxLogAddrs][12]uint8
}

// DeviceFeatures holds the device feature bits of a CEC 2.0 adapter.
type DeviceFeatures struct {
	SourceHasARCRx bool
	SinkHasARCTx   bool
	HasAudioRate   bool
	HasDeckControl bool
	HasRecordTV    bool
	HasOSDString   bool
}

// DeviceFeatures parses the device features operand of the first logical
// address. The features array holds the RC profile bytes followed by the
// device feature bytes; each run ends with a byte without FeatExt set.
// Adapters older than CEC 2.0 report no features.
func (l *LogAddrs) DeviceFeatures() DeviceFeatures {
	var f DeviceFeatures
	if l.CECVersion < CECVersion2_0 {
		return f
	}
	isDevFeat := false
	for _, b := range l.Features[0] {
		if isDevFeat {
			f.SourceHasARCRx = b&FeatDevSourceHasARCRx != 0
			f.SinkHasARCTx = b&FeatDevSinkHasARCTx != 0
			f.HasAudioRate = b&FeatDevHasSetAudioRate != 0
			f.HasDeckControl = b&FeatDevHasDeckControl != 0
			f.HasRecordTV = b&FeatDevHasRecordTVScreen != 0
			f.HasOSDString = b&FeatDevHasSetOSDString != 0
			break
		}
		if b&FeatExt != 0 {
			continue
		}
		isDevFeat = true
	}
	return f
}

// ConnectorInfo identifies the connector an adapter is associated with.
type ConnectorInfo struct {
	Type      uint32 // 0 none, 1 DRM
	Card      uint32 // DRM card number
	Connector uint32 // DRM connector ID
}

// Adapter is the interface the follower core uses to reach a CEC adapter.
//
// Transmit and Receive block until the adapter completes the operation. A
// non-nil error means the operation failed at the transport level; protocol
// outcomes are reported in the message's status fields.
type Adapter interface {
	// Transmit sends msg. When msg.Timeout is non-zero the adapter also
	// waits up to that many milliseconds for the reply named by msg.Reply
	// and stores it in msg.
	Transmit(msg *Message) error

	// Receive waits up to msg.Timeout milliseconds (0 blocks) for the next
	// message and stores it in msg. Returns pkg.ErrTimeout if none arrived.
	Receive(msg *Message) error

	// Capabilities returns the adapter capabilities.
	Capabilities() (Caps, error)

	// PhysicalAddress returns the configured physical address.
	PhysicalAddress() (uint16, error)

	// LogicalAddresses returns the claimed logical addresses.
	LogicalAddresses() (LogAddrs, error)

	// ConnectorInfo returns the associated connector.
	ConnectorInfo() (ConnectorInfo, error)

	// SetMode selects the initiator and follower roles.
	SetMode(mode Mode) error

	// Close releases the adapter.
	Close() error
}

// FormatPhysAddr formats a physical address as a.b.c.d.
func FormatPhysAddr(pa uint16) string {
	if pa == PhysAddrInvalid {
		return "f.f.f.f"
	}
	return fmt.Sprintf("%x.%x.%x.%x", pa>>12, (pa>>8)&0xf, (pa>>4)&0xf, pa&0xf)
}
