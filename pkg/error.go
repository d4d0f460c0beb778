package pkg

import "errors"

// CEC follower errors.
var (
	// ErrAdapterIO indicates an adapter ioctl failed at the transport level.
	ErrAdapterIO = errors.New("adapter I/O error")

	// ErrNoDevice indicates the adapter device node is not present.
	ErrNoDevice = errors.New("device not present")

	// ErrNoAdapterMatch indicates no adapter matched the driver/adapter filter.
	ErrNoAdapterMatch = errors.New("no CEC adapter matches driver/adapter")

	// ErrClosed indicates the adapter has been closed.
	ErrClosed = errors.New("adapter closed")

	// ErrTimeout indicates a receive returned without a message.
	ErrTimeout = errors.New("receive timeout")

	// ErrMissingPhysAddr indicates the adapter has no physical address configured.
	ErrMissingPhysAddr = errors.New("missing physical address, use cec-ctl to configure this")

	// ErrMissingLogAddrs indicates the adapter has no logical addresses claimed.
	ErrMissingLogAddrs = errors.New("missing logical address(es), use cec-ctl to configure this")

	// ErrInvalidLogicalAddress indicates a logical address above 15.
	ErrInvalidLogicalAddress = errors.New("invalid logical address (> 15)")

	// ErrInvalidOpcode indicates an opcode above 255.
	ErrInvalidOpcode = errors.New("invalid opcode (> 255)")

	// ErrIgnoreAllAll indicates the ignore rule "all,all" was supplied.
	ErrIgnoreAllAll = errors.New("all,all is invalid")

	// ErrInvalidParameter indicates an invalid parameter was provided.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDescriptorTooShort indicates the descriptor data is too short.
	ErrDescriptorTooShort = errors.New("descriptor too short")

	// ErrMessageTooLong indicates a message exceeds the 16-byte CEC frame.
	ErrMessageTooLong = errors.New("message too long")

	// ErrNoResources indicates a queue or slot pool is exhausted.
	ErrNoResources = errors.New("no resources available")

	// ErrAlreadyRunning indicates the follower is already running.
	ErrAlreadyRunning = errors.New("already running")
)

// TxStatus holds the transmit status bits reported by the adapter.
type TxStatus uint8

// Transmit status bits (linux/cec.h CEC_TX_STATUS_*).
const (
	TxStatusOK         TxStatus = 1 << 0
	TxStatusArbLost    TxStatus = 1 << 1
	TxStatusNack       TxStatus = 1 << 2
	TxStatusLowDrive   TxStatus = 1 << 3
	TxStatusError      TxStatus = 1 << 4
	TxStatusMaxRetries TxStatus = 1 << 5
	TxStatusAborted    TxStatus = 1 << 6
	TxStatusTimeout    TxStatus = 1 << 7
)

var txStatusNames = [...]string{"ok", "arb-lost", "nack", "low-drive", "error", "max-retries", "aborted", "timeout"}

// OK reports whether the transmit succeeded.
func (s TxStatus) OK() bool { return s&TxStatusOK != 0 }

// String returns the set status bits joined with '|'.
func (s TxStatus) String() string {
	return bitNames(uint8(s), txStatusNames[:])
}

// Error returns the corresponding error for the transmit status.
func (s TxStatus) Error() error {
	switch {
	case s == 0, s.OK():
		return nil
	case s&TxStatusTimeout != 0, s&TxStatusAborted != 0:
		return ErrTimeout
	default:
		return ErrAdapterIO
	}
}

// RxStatus holds the receive status bits reported by the adapter.
type RxStatus uint8

// Receive status bits (linux/cec.h CEC_RX_STATUS_*).
const (
	RxStatusOK           RxStatus = 1 << 0
	RxStatusTimeout      RxStatus = 1 << 1
	RxStatusFeatureAbort RxStatus = 1 << 2
	RxStatusAborted      RxStatus = 1 << 3
)

var rxStatusNames = [...]string{"ok", "timeout", "feature-abort", "aborted"}

// OK reports whether a reply was received cleanly.
func (s RxStatus) OK() bool { return s&RxStatusOK != 0 }

// FeatureAbort reports whether the reply was a Feature Abort.
func (s RxStatus) FeatureAbort() bool { return s&RxStatusFeatureAbort != 0 }

// String returns the set status bits joined with '|'.
func (s RxStatus) String() string {
	return bitNames(uint8(s), rxStatusNames[:])
}

func bitNames(v uint8, names []string) string {
	if v == 0 {
		return "none"
	}
	var out []byte
	for i := 0; i < 8; i++ {
		if v&(1<<i) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, '|')
		}
		if i < len(names) {
			out = append(out, names[i]...)
		} else {
			out = append(out, "bit"...)
			out = append(out, byte('0'+i))
		}
	}
	return string(out)
}
