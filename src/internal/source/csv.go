// FILE: logsift/src/internal/source/csv.go
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"logsift/src/internal/core"

	"github.com/lixenwraith/log"
)

// ErrColumnNotFound is returned when the header row has no column with
// the configured name.
var ErrColumnNotFound = errors.New("message column not found in header")

// CSVSource reads the message column of a delimited table, row by row.
type CSVSource struct {
	// Configuration
	path   string
	column string

	// Runtime
	file      io.ReadCloser
	reader    *csv.Reader
	columnIdx int
	nextIndex int64
	logger    *log.Logger

	// Statistics
	totalRows   atomic.Uint64
	skippedRows atomic.Uint64
	startTime   time.Time
	lastRowTime atomic.Value // time.Time
}

// NewCSVSource opens the table, reads the header row and locates the
// message column. Path "-" reads from stdin.
func NewCSVSource(path, column string, logger *log.Logger) (*CSVSource, error) {
	var file io.ReadCloser
	if path == "-" {
		file = io.NopCloser(os.Stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		file = f
	}

	return newCSVSource(file, path, column, logger)
}

func newCSVSource(file io.ReadCloser, path, column string, logger *log.Logger) (*CSVSource, error) {
	if column == "" {
		file.Close()
		return nil, fmt.Errorf("message column name cannot be empty")
	}

	reader := csv.NewReader(file)
	// Tolerate rows with varying field counts and loosely quoted cells
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		file.Close()
		if err == io.EOF {
			return nil, fmt.Errorf("input table is empty: %w", err)
		}
		return nil, fmt.Errorf("failed to parse header row: %w", err)
	}

	columnIdx := -1
	for i, name := range header {
		if name == column {
			columnIdx = i
			break
		}
	}
	if columnIdx == -1 {
		file.Close()
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	s := &CSVSource{
		path:      path,
		column:    column,
		file:      file,
		reader:    reader,
		columnIdx: columnIdx,
		logger:    logger,
		startTime: time.Now(),
	}
	s.lastRowTime.Store(time.Time{})

	logger.Info("msg", "CSV source opened",
		"component", "csv_source",
		"path", path,
		"column", column,
		"column_index", columnIdx)

	return s, nil
}

// Next returns the next row's message cell. Rows too short to contain
// the message column are skipped.
func (s *CSVSource) Next() (core.Row, bool, error) {
	for {
		record, err := s.reader.Read()
		if err == io.EOF {
			return core.Row{}, false, nil
		}
		if err != nil {
			return core.Row{}, false, fmt.Errorf("failed to parse record: %w", err)
		}

		s.totalRows.Add(1)
		s.lastRowTime.Store(time.Now())

		if s.columnIdx >= len(record) {
			s.skippedRows.Add(1)
			s.logger.Debug("msg", "Row shorter than message column, skipping",
				"component", "csv_source",
				"row", s.nextIndex,
				"field_count", len(record))
			s.nextIndex++
			continue
		}

		row := core.Row{
			Index: s.nextIndex,
			Cell:  record[s.columnIdx],
		}
		s.nextIndex++
		return row, true, nil
	}
}

// Close releases the input file.
func (s *CSVSource) Close() error {
	return s.file.Close()
}

// GetStats returns the source's statistics.
func (s *CSVSource) GetStats() SourceStats {
	lastRow, _ := s.lastRowTime.Load().(time.Time)

	return SourceStats{
		Type:        "csv",
		TotalRows:   s.totalRows.Load(),
		SkippedRows: s.skippedRows.Load(),
		StartTime:   s.startTime,
		LastRowTime: lastRow,
		Details: map[string]any{
			"path":         s.path,
			"column":       s.column,
			"column_index": s.columnIdx,
		},
	}
}
