// FILE: logsift/src/internal/sink/console.go
package sink

import (
	"bufio"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/log"
)

// StdoutSink writes formatted lines to stdout.
type StdoutSink struct {
	output *bufio.Writer
	logger *log.Logger

	// Statistics
	totalWritten atomic.Uint64
	startTime    time.Time
	lastWrite    atomic.Value // time.Time
}

// NewStdoutSink creates a new stdout sink
func NewStdoutSink(logger *log.Logger) *StdoutSink {
	return newStdoutSink(os.Stdout, logger)
}

func newStdoutSink(w io.Writer, logger *log.Logger) *StdoutSink {
	s := &StdoutSink{
		output:    bufio.NewWriter(w),
		logger:    logger,
		startTime: time.Now(),
	}
	s.lastWrite.Store(time.Time{})
	return s
}

// Write emits one line. Lines are written in call order.
func (s *StdoutSink) Write(line []byte) error {
	if _, err := s.output.Write(line); err != nil {
		return err
	}
	s.totalWritten.Add(1)
	s.lastWrite.Store(time.Now())
	return nil
}

// Close flushes buffered output.
func (s *StdoutSink) Close() error {
	return s.output.Flush()
}

// GetStats returns sink statistics.
func (s *StdoutSink) GetStats() SinkStats {
	lastWrite, _ := s.lastWrite.Load().(time.Time)

	return SinkStats{
		Type:         "stdout",
		TotalWritten: s.totalWritten.Load(),
		StartTime:    s.startTime,
		LastWrite:    lastWrite,
		Details: map[string]any{
			"target": "stdout",
		},
	}
}
