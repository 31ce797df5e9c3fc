// FILE: logsift/src/internal/format/rewrite_test.go
package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestRewriteExitInfo(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "NamedRegisters",
			input:    "tdx_tdg_vp_enter_exit_info rax: 10, rcx: 255",
			expected: "tdx_tdg_vp_enter_exit_info rax: 0xa, rcx: 0xff",
		},
		{
			name:     "NumberedRegisters",
			input:    "r8: 16 r15: 4096",
			expected: "r8: 0x10 r15: 0x1000",
		},
		{
			name:     "SurroundingTextUntouched",
			input:    "exit_reason: 48 rdi: 7 done",
			expected: "exit_reason: 48 rdi: 0x7 done",
		},
		{
			name:     "OverflowDefaultsToZero",
			input:    "rax: 99999999999999999999",
			expected: "rax: 0x0",
		},
		{
			name:     "NoMatches",
			input:    "nothing to see here",
			expected: "nothing to see here",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, rewriteExitInfo(tc.input))
		})
	}
}

func TestRewriteGuestState(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "ArrayAndScalar",
			input:    "TdxL2EnterGuestState regs=[10, 20, 30] rip: 16",
			expected: "TdxL2EnterGuestState regs=[0xa, 0x14, 0x1e] rip: 0x10",
		},
		{
			name:     "AllScalarFields",
			input:    "rflags: 2, rip: 256, ssp: 0, rvi: 1, svi: 15",
			expected: "rflags: 0x2, rip: 0x100, ssp: 0x0, rvi: 0x1, svi: 0xf",
		},
		{
			name:     "ArrayElementOverflowPreserved",
			input:    "[1, 99999999999999999999, 3]",
			expected: "[0x1, 99999999999999999999, 0x3]",
		},
		{
			name:     "ScalarOverflowDefaultsToZero",
			input:    "rip: 99999999999999999999",
			expected: "rip: 0x0",
		},
		{
			name:     "ArrayNormalizesSpacing",
			input:    "[1,2,  3]",
			expected: "[0x1, 0x2, 0x3]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, rewriteGuestState(tc.input))
		})
	}
}

func TestRewriteSegmentRegister(t *testing.T) {
	input := "SegmentRegister { base: 8, limit: 65535, selector: 16, attributes: 139 }"
	expected := "SegmentRegister { base: 0x8, limit: 0xffff, selector: 0x10, attributes: 0x8b }"

	assert.Equal(t, expected, rewriteSegmentRegister(input))
}

func TestMatchRule(t *testing.T) {
	testCases := []struct {
		name      string
		key       string
		json      string
		wantMatch bool
	}{
		{
			name:      "RawExitWithMarker",
			key:       "raw_exit",
			json:      `"tdx_tdg_vp_enter_exit_info rax: 1"`,
			wantMatch: true,
		},
		{
			name:      "RawExitWithoutMarker",
			key:       "raw_exit",
			json:      `"rax: 1"`,
			wantMatch: false,
		},
		{
			name: "RawExitNeverFallsThroughToContentRule",
			key:  "raw_exit",
			// Key-bound dispatch is decisive: the segment marker in the
			// content does not rescue a raw_exit field.
			json:      `"SegmentRegister base: 1"`,
			wantMatch: false,
		},
		{
			name:      "GprsWithMarker",
			key:       "gprs",
			json:      `"TdxL2EnterGuestState [1, 2]"`,
			wantMatch: true,
		},
		{
			name:      "AnyKeyWithSegmentMarker",
			key:       "vmcs_cs",
			json:      `"SegmentRegister base: 8"`,
			wantMatch: true,
		},
		{
			name:      "NonStringValue",
			key:       "raw_exit",
			json:      `42`,
			wantMatch: false,
		},
		{
			name:      "PlainString",
			key:       "note",
			json:      `"no markers"`,
			wantMatch: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rule, ok := matchRule(tc.key, gjson.Parse(tc.json))
			assert.Equal(t, tc.wantMatch, ok)
			if tc.wantMatch {
				require.NotNil(t, rule.Rewrite)
			}
		})
	}
}
