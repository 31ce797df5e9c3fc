// FILE: logsift/src/internal/core/types.go
package core

import "github.com/tidwall/gjson"

// Row is a single input record: one cell of the message column,
// tagged with its position in the input table.
type Row struct {
	Index int64
	Cell  string
}

// Entry is a decoded structured log record. Fields keeps the raw
// gjson value so object key order survives until iteration.
type Entry struct {
	Timestamp string
	Level     string
	Target    string
	Fields    gjson.Result
}

// DecodeKind discriminates the shapes a decoded cell can take.
type DecodeKind int

const (
	// KindFallback means the cell could not be interpreted as a
	// structured record; Raw is emitted unchanged.
	KindFallback DecodeKind = iota

	// KindEntry means all required top-level keys were present and
	// correctly typed.
	KindEntry
)

// DecodeResult is the outcome of decoding one cell.
type DecodeResult struct {
	Kind  DecodeKind
	Raw   string
	Entry Entry
}
