// FILE: logsift/src/internal/format/rewrite.go
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// rewriteRule binds a register-dump dialect to its rewriter. Rules with
// a Key apply only to that field name; a rule with an empty Key applies
// to any string field whose content carries the marker.
type rewriteRule struct {
	Key     string
	Marker  string
	Rewrite func(string) string
}

// Dialect dispatch table, evaluated in order. A key-bound rule is
// decisive for its key: if the marker is absent the field falls back to
// plain value formatting without trying later rules.
var rewriteRules = []rewriteRule{
	{Key: "raw_exit", Marker: "tdx_tdg_vp_enter_exit_info", Rewrite: rewriteExitInfo},
	{Key: "gprs", Marker: "TdxL2EnterGuestState", Rewrite: rewriteGuestState},
	{Key: "", Marker: "SegmentRegister", Rewrite: rewriteSegmentRegister},
}

// matchRule selects the rewriter for a field, if any.
func matchRule(key string, value gjson.Result) (rewriteRule, bool) {
	if value.Type != gjson.String {
		return rewriteRule{}, false
	}

	for _, rule := range rewriteRules {
		if rule.Key != "" {
			if rule.Key != key {
				continue
			}
			if strings.Contains(value.Str, rule.Marker) {
				return rule, true
			}
			return rewriteRule{}, false
		}
		if strings.Contains(value.Str, rule.Marker) {
			return rule, true
		}
	}

	return rewriteRule{}, false
}

var (
	exitInfoPattern    = regexp.MustCompile(`(rax|rcx|rdx|rsi|rdi|r\d+): (\d+)`)
	guestArrayPattern  = regexp.MustCompile(`\[([0-9, ]+)\]`)
	guestScalarPattern = regexp.MustCompile(`(rflags|rip|ssp|rvi|svi): (\d+)`)
	segmentRegPattern  = regexp.MustCompile(`(base|limit|selector|attributes): (\d+)`)
)

// rewriteScalars rewrites every "<name>: <decimal>" match of the
// pattern to "<name>: 0x<hex>". A decimal run that fails to parse
// (only possible on uint64 overflow) defaults to 0.
func rewriteScalars(pattern *regexp.Regexp, text string) string {
	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := pattern.FindStringSubmatch(match)
		num, err := strconv.ParseUint(sub[2], 10, 64)
		if err != nil {
			num = 0
		}
		return fmt.Sprintf("%s: 0x%x", sub[1], num)
	})
}

// rewriteExitInfo hex-formats register values inside a
// tdx_tdg_vp_enter_exit_info dump.
func rewriteExitInfo(text string) string {
	return rewriteScalars(exitInfoPattern, text)
}

// rewriteGuestState hex-formats a TdxL2EnterGuestState dump: first the
// bracketed GPR array, then the named scalar fields. The array pass
// runs first so its elements are not re-matched by the scalar pattern.
// Array elements that fail to parse keep their original trimmed text.
func rewriteGuestState(text string) string {
	transformed := guestArrayPattern.ReplaceAllStringFunc(text, func(match string) string {
		inner := guestArrayPattern.FindStringSubmatch(match)[1]
		elements := strings.Split(inner, ",")
		for i, element := range elements {
			trimmed := strings.TrimSpace(element)
			if num, err := strconv.ParseUint(trimmed, 10, 64); err == nil {
				elements[i] = fmt.Sprintf("0x%x", num)
			} else {
				elements[i] = trimmed
			}
		}
		return "[" + strings.Join(elements, ", ") + "]"
	})

	return rewriteScalars(guestScalarPattern, transformed)
}

// rewriteSegmentRegister hex-formats a SegmentRegister dump.
func rewriteSegmentRegister(text string) string {
	return rewriteScalars(segmentRegPattern, text)
}
