package hal

// Logical addresses (HDMI 1.4b CEC Table 5).
const (
	LogAddrTV           = 0
	LogAddrRecord1      = 1
	LogAddrRecord2      = 2
	LogAddrTuner1       = 3
	LogAddrPlayback1    = 4
	LogAddrAudioSystem  = 5
	LogAddrTuner2       = 6
	LogAddrTuner3       = 7
	LogAddrPlayback2    = 8
	LogAddrRecord3      = 9
	LogAddrTuner4       = 10
	LogAddrPlayback3    = 11
	LogAddrBackup1      = 12
	LogAddrBackup2      = 13
	LogAddrSpecific     = 14
	LogAddrUnregistered = 15 // As initiator
	LogAddrBroadcast    = 15 // As destination
)

// NumLogAddrs is the size of the logical address space.
const NumLogAddrs = 16

// MaxMessageSize is the maximum CEC frame length in bytes.
const MaxMessageSize = 16

// MaxLogAddrs is the maximum number of logical addresses one adapter claims.
const MaxLogAddrs = 4

// PhysAddrInvalid is reported when no physical address is configured.
const PhysAddrInvalid = 0xffff

// Opcodes used by the follower core.
const (
	OpFeatureAbort                = 0x00
	OpReportShortAudioDescriptor  = 0xa3
	OpRequestShortAudioDescriptor = 0xa4
	OpAbort                       = 0xff
	OpCDCMessage                  = 0xf8
)

// Feature Abort reasons.
const (
	AbortUnrecognizedOp = 0
	AbortIncorrectMode  = 1
	AbortNoSource       = 2
	AbortInvalidOp      = 3
	AbortRefused        = 4
	AbortUndetermined   = 5
)

// Adapter capability bits (linux/cec.h CEC_CAP_*).
const (
	CapPhysAddr      = 1 << 0
	CapLogAddrs      = 1 << 1
	CapTransmit      = 1 << 2
	CapPassthrough   = 1 << 3
	CapRC            = 1 << 4
	CapMonitorAll    = 1 << 5
	CapNeedsHPD      = 1 << 6
	CapMonitorPin    = 1 << 7
	CapConnectorInfo = 1 << 8
	CapReplyVendorID = 1 << 9
)

// Mode selects the initiator and follower roles of a file handle.
type Mode uint32

// Initiator and follower modes (linux/cec.h CEC_MODE_*).
const (
	ModeNoInitiator   Mode = 0x0
	ModeInitiator     Mode = 0x1
	ModeExclInitiator Mode = 0x2
	ModeNoFollower    Mode = 0x00
	ModeFollower      Mode = 0x10
	ModeExclFollower  Mode = 0x20
	ModeExclPassthru  Mode = 0x30
	ModeMonitorPin    Mode = 0xd0
	ModeMonitor       Mode = 0xe0
	ModeMonitorAll    Mode = 0xf0
	modeInitiatorMask Mode = 0x0f
	modeFollowerMask  Mode = 0xf0
)

// Initiator returns the initiator part of the mode.
func (m Mode) Initiator() Mode { return m & modeInitiatorMask }

// Follower returns the follower part of the mode.
func (m Mode) Follower() Mode { return m & modeFollowerMask }

// CEC versions reported in LogAddrs.CECVersion.
const (
	CECVersion1_3A = 4
	CECVersion1_4  = 5
	CECVersion2_0  = 6
)

// Feature bits of the CEC 2.0 Report Features operands.
const (
	FeatExt = 0x80

	FeatDevHasRecordTVScreen = 0x40
	FeatDevHasSetOSDString   = 0x20
	FeatDevHasDeckControl    = 0x10
	FeatDevHasSetAudioRate   = 0x08
	FeatDevSinkHasARCTx      = 0x04
	FeatDevSourceHasARCRx    = 0x02
)
