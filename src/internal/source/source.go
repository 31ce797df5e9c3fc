// FILE: logsift/src/internal/source/source.go
package source

import (
	"time"

	"logsift/src/internal/core"
)

// Source yields input rows one at a time, in table order.
type Source interface {
	// Next returns the next row. ok is false when the input is
	// exhausted; a non-nil error is fatal for the run.
	Next() (row core.Row, ok bool, err error)

	// Close releases the underlying input.
	Close() error

	// GetStats returns source statistics
	GetStats() SourceStats
}

// Contains statistics about a source
type SourceStats struct {
	Type        string
	TotalRows   uint64
	SkippedRows uint64
	StartTime   time.Time
	LastRowTime time.Time
	Details     map[string]any
}
