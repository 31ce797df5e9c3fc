// FILE: logsift/src/internal/format/hex.go
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// formatField renders one key/value pair as an output fragment with a
// leading space. Integer values (including negatives, as the
// two's-complement bit pattern) are rendered in hex; everything else
// keeps its JSON text form. Every value maps to some fragment.
func formatField(key string, value gjson.Result) string {
	if value.Type == gjson.Number {
		literal := strings.TrimSpace(value.Raw)

		if u, err := strconv.ParseUint(literal, 10, 64); err == nil {
			return fmt.Sprintf(" %s=0x%x", key, u)
		}
		if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return fmt.Sprintf(" %s=0x%x", key, uint64(i))
		}
		// Floats and out-of-range literals keep their textual form
	}

	return fmt.Sprintf(" %s=%s", key, value.Raw)
}
