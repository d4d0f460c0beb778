// Package linux provides a CEC adapter HAL for Linux using the kernel CEC
// framework (/dev/cecN).
//
// The adapter is opened in blocking mode. CEC_TRANSMIT returns once the
// frame has been sent (and, when a reply was requested, the reply arrived
// or timed out). CEC_RECEIVE waits up to the message's timeout, so callers
// that need to observe shutdown pass a non-zero timeout.
//
// # Requirements
//
// The user running the application needs read/write access to the CEC
// device nodes, typically through membership in the video group or a udev
// rule.
//
// # Device selection
//
//   - [DevicePath] maps a short numeric argument such as "1" to /dev/cec1
//   - [Find] scans /dev/cec* for an adapter matching a driver or adapter name
//   - [DefaultDevice] is used when neither is given
package linux
