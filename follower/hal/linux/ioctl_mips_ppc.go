//go:build linux && (mips || mipsle || mips64 || mips64le || ppc64 || ppc64le)

package linux

// ioctl encoding for mips and powerpc.
//
//	bits 0-7:   command number (nr)
//	bits 8-15:  ioctl type (type)
//	bits 16-28: argument size (size)
//	bits 29-31: direction (dir)
const (
	iocNone  = 1
	iocWrite = 4
	iocRead  = 2

	iocSizeBits = 13
	iocDirBits  = 3
)
