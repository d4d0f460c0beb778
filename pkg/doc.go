// Package pkg provides shared utilities for the softcec follower.
//
// This package contains common functionality used by the SAD codec, the
// follower core and the adapter HALs, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Size-rotated log files
//   - Sentinel errors and CEC transmit/receive status bits
//   - Component identifiers for log filtering
//
// # Logging
//
// The logging subsystem wraps [log/slog] with follower-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentFollower, "adapter opened", "device", "/dev/cec0")
//
// # Errors
//
// Common errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrAdapterIO) {
//	    // Transport-level adapter failure
//	}
package pkg
