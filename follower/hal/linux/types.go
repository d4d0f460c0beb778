//go:build linux

package linux

import (
	"bytes"

	"github.com/ardnew/softcec/follower/hal"
)

// caps matches the kernel's struct cec_caps layout.
type caps struct {
	driver            [32]byte
	name              [32]byte
	availableLogAddrs uint32
	capabilities      uint32
	version           uint32
}

// logAddrs matches the kernel's struct cec_log_addrs layout.
type logAddrs struct {
	logAddr           [hal.MaxLogAddrs]uint8
	logAddrMask       uint16
	cecVersion        uint8
	numLogAddrs       uint8
	vendorID          uint32
	flags             uint32
	osdName           [15]byte
	primaryDeviceType [hal.MaxLogAddrs]uint8
	logAddrType       [hal.MaxLogAddrs]uint8
	allDeviceTypes    [hal.MaxLogAddrs]uint8
	features          [hal.MaxLogAddrs][12]uint8
}

// connectorInfo matches the kernel's struct cec_connector_info layout. The
// union is read as raw words; the DRM variant uses the first two.
type connectorInfo struct {
	typ uint32
	raw [16]uint32
}

// cString returns the NUL-terminated prefix of b.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func (c *caps) toHAL() hal.Caps {
	return hal.Caps{
		Driver:            cString(c.driver[:]),
		Name:              cString(c.name[:]),
		AvailableLogAddrs: c.availableLogAddrs,
		Capabilities:      c.capabilities,
		Version:           c.version,
	}
}

func (l *logAddrs) toHAL() hal.LogAddrs {
	return hal.LogAddrs{
		LogAddr:           l.logAddr,
		LogAddrMask:       l.logAddrMask,
		CECVersion:        l.cecVersion,
		NumLogAddrs:       l.numLogAddrs,
		VendorID:          l.vendorID,
		Flags:             l.flags,
		OSDName:           cString(l.osdName[:]),
		PrimaryDeviceType: l.primaryDeviceType,
		LogAddrType:       l.logAddrType,
		AllDeviceTypes:    l.allDeviceTypes,
		Features:          l.features,
	}
}

func (c *connectorInfo) toHAL() hal.ConnectorInfo {
	info := hal.ConnectorInfo{Type: c.typ}
	if c.typ == connectorTypeDRM {
		info.Card = c.raw[0]
		info.Connector = c.raw[1]
	}
	return info
}
