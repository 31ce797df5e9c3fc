// FILE: logsift/src/internal/format/format.go
package format

import (
	"logsift/src/internal/core"
)

// Formatter transforms an input row into an output line.
type Formatter interface {
	// Format returns the rendered line including trailing newline.
	// A nil/empty result means the row is suppressed.
	Format(row core.Row) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}
