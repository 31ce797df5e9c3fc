// FILE: logsift/src/internal/format/decode.go
package format

import (
	"logsift/src/internal/core"

	"github.com/tidwall/gjson"
)

// Decode interprets one cell as a structured log record. Any decode or
// shape failure degrades to a fallback carrying the original text;
// nothing here ever aborts the run.
func Decode(raw string) core.DecodeResult {
	if !gjson.Valid(raw) {
		return core.DecodeResult{Kind: core.KindFallback, Raw: raw}
	}

	root := gjson.Parse(raw)

	timestamp := root.Get("timestamp")
	level := root.Get("level")
	target := root.Get("target")
	fields := root.Get("fields")

	if timestamp.Type != gjson.String ||
		level.Type != gjson.String ||
		target.Type != gjson.String ||
		!fields.Exists() {
		return core.DecodeResult{Kind: core.KindFallback, Raw: raw}
	}

	return core.DecodeResult{
		Kind: core.KindEntry,
		Raw:  raw,
		Entry: core.Entry{
			Timestamp: timestamp.Str,
			Level:     level.Str,
			Target:    target.Str,
			Fields:    fields,
		},
	}
}
