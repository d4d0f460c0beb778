//go:build linux

package linux

const (
	iocNRBits   = 8
	iocTypeBits = 8

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits
)

// ioc constructs an ioctl number from direction, type, number, and size.
func ioc(dir, typ, nr, size uintptr) uintptr {
	return (dir << iocDirShift) | (typ << iocTypeShift) | (nr << iocNRShift) | (size << iocSizeShift)
}

func ior(typ, nr, size uintptr) uintptr  { return ioc(iocRead, typ, nr, size) }
func iow(typ, nr, size uintptr) uintptr  { return ioc(iocWrite, typ, nr, size) }
func iowr(typ, nr, size uintptr) uintptr { return ioc(iocRead|iocWrite, typ, nr, size) }

// CEC ioctl type character.
const cecType = 'a'

// CEC ioctl command numbers (linux/cec.h).
const (
	nrAdapGetCaps          = 0
	nrAdapGetPhysAddr      = 1
	nrAdapGetLogAddrs      = 3
	nrTransmit             = 5
	nrReceive              = 6
	nrGetMode              = 8
	nrSetMode              = 9
	nrAdapGetConnectorInfo = 10
)

// Sizes of the ioctl argument structures.
const (
	sizeofCaps          = 76 // struct cec_caps
	sizeofLogAddrs      = 92 // struct cec_log_addrs
	sizeofMsg           = 56 // struct cec_msg
	sizeofConnectorInfo = 68 // struct cec_connector_info
	sizeofU16           = 2
	sizeofU32           = 4
)

var (
	ioctlAdapGetCaps          = iowr(cecType, nrAdapGetCaps, sizeofCaps)
	ioctlAdapGetPhysAddr      = ior(cecType, nrAdapGetPhysAddr, sizeofU16)
	ioctlAdapGetLogAddrs      = ior(cecType, nrAdapGetLogAddrs, sizeofLogAddrs)
	ioctlTransmit             = iowr(cecType, nrTransmit, sizeofMsg)
	ioctlReceive              = iowr(cecType, nrReceive, sizeofMsg)
	ioctlGetMode              = ior(cecType, nrGetMode, sizeofU32)
	ioctlSetMode              = iow(cecType, nrSetMode, sizeofU32)
	ioctlAdapGetConnectorInfo = ior(cecType, nrAdapGetConnectorInfo, sizeofConnectorInfo)
)

// ioctlNames labels ioctl numbers in errors and traces.
var ioctlNames = map[uintptr]string{
	ioctlAdapGetCaps:          "CEC_ADAP_G_CAPS",
	ioctlAdapGetPhysAddr:      "CEC_ADAP_G_PHYS_ADDR",
	ioctlAdapGetLogAddrs:      "CEC_ADAP_G_LOG_ADDRS",
	ioctlTransmit:             "CEC_TRANSMIT",
	ioctlReceive:              "CEC_RECEIVE",
	ioctlGetMode:              "CEC_G_MODE",
	ioctlSetMode:              "CEC_S_MODE",
	ioctlAdapGetConnectorInfo: "CEC_ADAP_G_CONNECTOR_INFO",
}

// Connector types (CEC_CONNECTOR_TYPE_*).
const (
	connectorTypeNoConnector = 0
	connectorTypeDRM         = 1
)

// DefaultDevice is the adapter opened when no device is selected.
const DefaultDevice = "/dev/cec0"

// devicePattern matches every CEC device node.
const devicePattern = "/dev/cec*"
