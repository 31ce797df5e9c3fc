// FILE: logsift/src/internal/sink/sink.go
package sink

import (
	"time"
)

// Sink represents an output destination for formatted lines.
// Writes happen in input-row order from a single producer; a sink must
// preserve that order on its output.
type Sink interface {
	// Write emits one formatted line (trailing newline included)
	Write(line []byte) error

	// Close flushes and releases the sink
	Close() error

	// GetStats returns sink statistics
	GetStats() SinkStats
}

// SinkStats contains statistics about a sink
type SinkStats struct {
	Type              string
	TotalWritten      uint64
	ActiveConnections int64
	StartTime         time.Time
	LastWrite         time.Time
	Details           map[string]any
}
