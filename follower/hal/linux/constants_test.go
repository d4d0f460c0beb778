//go:build linux

package linux

import (
	"testing"
	"unsafe"

	"github.com/ardnew/softcec/follower/hal"
)

func TestStructSizes(t *testing.T) {
	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"cec_msg", unsafe.Sizeof(hal.Message{}), sizeofMsg},
		{"cec_caps", unsafe.Sizeof(caps{}), sizeofCaps},
		{"cec_log_addrs", unsafe.Sizeof(logAddrs{}), sizeofLogAddrs},
		{"cec_connector_info", unsafe.Sizeof(connectorInfo{}), sizeofConnectorInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("sizeof(%s) = %d, want %d", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestMessageOffsets(t *testing.T) {
	var m hal.Message
	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"len", unsafe.Offsetof(m.Len), 16},
		{"msg", unsafe.Offsetof(m.Msg), 32},
		{"reply", unsafe.Offsetof(m.Reply), 48},
		{"rx_status", unsafe.Offsetof(m.RxStatus), 49},
		{"tx_status", unsafe.Offsetof(m.TxStatus), 50},
		{"tx_error_cnt", unsafe.Offsetof(m.TxErrorCnt), 55},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("offsetof(%s) = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestIoctlName(t *testing.T) {
	if got := ioctlName(ioctlTransmit); got != "CEC_TRANSMIT" {
		t.Errorf("ioctlName(ioctlTransmit) = %q, want CEC_TRANSMIT", got)
	}
	if got := ioctlName(0x1234); got != "0x00001234" {
		t.Errorf("ioctlName(0x1234) = %q, want 0x00001234", got)
	}
}
