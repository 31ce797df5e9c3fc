// FILE: logsift/src/internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"logsift/src/internal/format"
	"logsift/src/internal/sink"
	"logsift/src/internal/source"

	"github.com/lixenwraith/log"
)

// Pipeline drives rows from the source through the formatter into the
// sink, strictly in input order. Each row is independent; no state is
// carried across rows.
type Pipeline struct {
	source    source.Source
	formatter format.Formatter
	sink      sink.Sink
	logger    *log.Logger

	// Statistics
	rowsIn     atomic.Uint64
	linesOut   atomic.Uint64
	suppressed atomic.Uint64
	startTime  time.Time
}

// Stats summarizes one pipeline run.
type Stats struct {
	RowsIn     uint64
	LinesOut   uint64
	Suppressed uint64
	StartTime  time.Time
}

// New creates a pipeline over the given stages.
func New(src source.Source, formatter format.Formatter, snk sink.Sink, logger *log.Logger) *Pipeline {
	return &Pipeline{
		source:    src,
		formatter: formatter,
		sink:      snk,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Run consumes the source until exhaustion. A source or sink error is
// fatal and aborts the run; per-row format degradation never does.
func (p *Pipeline) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		row, ok, err := p.source.Next()
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if !ok {
			break
		}
		p.rowsIn.Add(1)

		line, err := p.formatter.Format(row)
		if err != nil {
			return fmt.Errorf("formatting row %d: %w", row.Index, err)
		}
		if len(line) == 0 {
			p.suppressed.Add(1)
			continue
		}

		if err := p.sink.Write(line); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		p.linesOut.Add(1)
	}

	p.logger.Info("msg", "Pipeline finished",
		"component", "pipeline",
		"rows_in", p.rowsIn.Load(),
		"lines_out", p.linesOut.Load(),
		"suppressed", p.suppressed.Load(),
		"elapsed", time.Since(p.startTime).String())

	return nil
}

// GetStats returns the pipeline's counters.
func (p *Pipeline) GetStats() Stats {
	return Stats{
		RowsIn:     p.rowsIn.Load(),
		LinesOut:   p.linesOut.Load(),
		Suppressed: p.suppressed.Load(),
		StartTime:  p.startTime,
	}
}
