//go:build linux

package linux

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/ardnew/softcec/pkg"
)

// openDevice opens a CEC device node for blocking read/write access.
func openDevice(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return -1, errors.Wrapf(mapErrno(err), "open %s", path)
	}
	return fd, nil
}

// ioctl issues req on fd, restarting on EINTR.
func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
		switch errno {
		case 0:
			return nil
		case unix.EINTR:
			continue
		}
		return errors.Wrapf(mapErrno(errno), "ioctl %s", ioctlName(req))
	}
}

func ioctlName(req uintptr) string {
	if name, ok := ioctlNames[req]; ok {
		return name
	}
	return fmt.Sprintf("0x%08x", req)
}

// mapErrno attaches the package sentinel matching err.
func mapErrno(err error) error {
	errno, ok := err.(unix.Errno)
	if !ok {
		return err
	}
	switch errno {
	case unix.ETIMEDOUT, unix.EAGAIN:
		return fmt.Errorf("%w: %w", pkg.ErrTimeout, errno)
	case unix.ENOENT, unix.ENODEV, unix.ENXIO:
		return fmt.Errorf("%w: %w", pkg.ErrNoDevice, errno)
	case unix.EBADF:
		return fmt.Errorf("%w: %w", pkg.ErrClosed, errno)
	case unix.EINVAL:
		return fmt.Errorf("%w: %w", pkg.ErrInvalidParameter, errno)
	case unix.ENOMEM, unix.EBUSY:
		return fmt.Errorf("%w: %w", pkg.ErrNoResources, errno)
	}
	return fmt.Errorf("%w: %w", pkg.ErrAdapterIO, errno)
}
