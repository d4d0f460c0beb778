// Package hal defines the adapter abstraction used by the follower.
//
// An [Adapter] is one CEC adapter: it transmits and receives [Message]
// frames and reports the capabilities and addresses the kernel (or a test
// double) has configured. The follower core never touches a device node
// directly; it only sees this interface.
//
// Implementations:
//
//   - [github.com/ardnew/softcec/follower/hal/linux]: /dev/cecN via ioctl
//   - [github.com/ardnew/softcec/follower/hal/loopback]: in-memory, for tests
package hal
