package pkg

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileConfig describes a size-rotated log file.
type LogFileConfig struct {
	Path       string // Log file path; empty disables file logging
	MaxSizeMB  int    // Rotate after this many megabytes
	MaxBackups int    // Number of rotated files to keep
	MaxAgeDays int    // Remove rotated files older than this
	Compress   bool   // Gzip rotated files
}

// NewRotatingWriter returns a writer that appends to cfg.Path and rotates it
// according to cfg. The caller owns the returned closer.
func NewRotatingWriter(cfg LogFileConfig) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}
