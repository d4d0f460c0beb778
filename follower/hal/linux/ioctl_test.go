//go:build linux && !mips && !mipsle && !mips64 && !mips64le && !ppc64 && !ppc64le

package linux

import "testing"

func TestIoctlNumbers(t *testing.T) {
	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"CEC_ADAP_G_CAPS", ioctlAdapGetCaps, 0xc04c6100},
		{"CEC_ADAP_G_PHYS_ADDR", ioctlAdapGetPhysAddr, 0x80026101},
		{"CEC_ADAP_G_LOG_ADDRS", ioctlAdapGetLogAddrs, 0x805c6103},
		{"CEC_TRANSMIT", ioctlTransmit, 0xc0386105},
		{"CEC_RECEIVE", ioctlReceive, 0xc0386106},
		{"CEC_G_MODE", ioctlGetMode, 0x80046108},
		{"CEC_S_MODE", ioctlSetMode, 0x40046109},
		{"CEC_ADAP_G_CONNECTOR_INFO", ioctlAdapGetConnectorInfo, 0x8044610a},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = 0x%08x, want 0x%08x", tt.name, tt.got, tt.want)
			}
		})
	}
}
