// FILE: logsift/src/internal/format/line.go
package format

import (
	"fmt"
	"strings"

	"logsift/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/tidwall/gjson"
)

// LineFormatter renders one input row as a human-readable line with
// integer fields in hexadecimal.
type LineFormatter struct {
	logger *log.Logger
}

// NewLineFormatter creates a new line formatter
func NewLineFormatter(logger *log.Logger) *LineFormatter {
	return &LineFormatter{
		logger: logger,
	}
}

// Format renders the row. Empty cells yield a nil result so the row is
// suppressed; undecodable cells pass through unchanged.
func (f *LineFormatter) Format(row core.Row) ([]byte, error) {
	if row.Cell == "" {
		return nil, nil
	}

	result := Decode(row.Cell)
	if result.Kind == core.KindFallback {
		f.logger.Debug("msg", "Cell not decodable, passing through",
			"component", "line_formatter",
			"row", row.Index)
		return append([]byte(result.Raw), '\n'), nil
	}

	line := assemble(result.Entry)
	return append([]byte(line), '\n'), nil
}

// Returns the formatter name
func (f *LineFormatter) Name() string {
	return "line"
}

// assemble builds the output line for a decoded entry. Three shapes:
// fields is not an object, or has no string message -> header plus the
// default JSON text of fields; otherwise the message followed by every
// other field in original object order.
func assemble(entry core.Entry) string {
	header := fmt.Sprintf("[%s][%s][%s] ", entry.Timestamp, entry.Level, entry.Target)

	if !entry.Fields.IsObject() {
		return header + entry.Fields.Raw
	}

	message := entry.Fields.Get("message")
	if message.Type != gjson.String {
		return header + entry.Fields.Raw
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString(message.Str)

	entry.Fields.ForEach(func(key, value gjson.Result) bool {
		if key.Str == "message" {
			return true
		}

		if rule, ok := matchRule(key.Str, value); ok {
			b.WriteString(" ")
			b.WriteString(key.Str)
			b.WriteString("=\"")
			b.WriteString(rule.Rewrite(value.Str))
			b.WriteString("\"")
			return true
		}

		b.WriteString(formatField(key.Str, value))
		return true
	})

	return b.String()
}
