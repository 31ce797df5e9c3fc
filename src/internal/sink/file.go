// FILE: logsift/src/internal/sink/file.go
package sink

import (
	"bufio"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/log"
)

// FileSink writes formatted lines to a file.
type FileSink struct {
	path   string
	file   *os.File
	output *bufio.Writer
	logger *log.Logger

	// Statistics
	totalWritten atomic.Uint64
	startTime    time.Time
	lastWrite    atomic.Value // time.Time
}

// NewFileSink creates the output file, truncating any existing content.
func NewFileSink(path string, logger *log.Logger) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("output file path cannot be empty")
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	s := &FileSink{
		path:      path,
		file:      file,
		output:    bufio.NewWriter(file),
		logger:    logger,
		startTime: time.Now(),
	}
	s.lastWrite.Store(time.Time{})

	logger.Info("msg", "File sink opened",
		"component", "file_sink",
		"path", path)

	return s, nil
}

// Write emits one line. Lines are written in call order.
func (s *FileSink) Write(line []byte) error {
	if _, err := s.output.Write(line); err != nil {
		return err
	}
	s.totalWritten.Add(1)
	s.lastWrite.Store(time.Now())
	return nil
}

// Close flushes buffered output and closes the file.
func (s *FileSink) Close() error {
	if err := s.output.Flush(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// GetStats returns sink statistics.
func (s *FileSink) GetStats() SinkStats {
	lastWrite, _ := s.lastWrite.Load().(time.Time)

	return SinkStats{
		Type:         "file",
		TotalWritten: s.totalWritten.Load(),
		StartTime:    s.startTime,
		LastWrite:    lastWrite,
		Details: map[string]any{
			"path": s.path,
		},
	}
}
