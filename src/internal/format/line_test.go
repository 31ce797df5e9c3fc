// FILE: logsift/src/internal/format/line_test.go
package format

import (
	"testing"

	"logsift/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineFormatter_Format(t *testing.T) {
	logger := newTestLogger()
	formatter := NewLineFormatter(logger)

	testCases := []struct {
		name     string
		cell     string
		expected string
	}{
		{
			name:     "EmptyCellSuppressed",
			cell:     "",
			expected: "",
		},
		{
			name:     "MalformedJSONPassesThrough",
			cell:     `{"half": "a record`,
			expected: `{"half": "a record` + "\n",
		},
		{
			name:     "MessageAndHexField",
			cell:     `{"timestamp":"T","level":"INFO","target":"mod","fields":{"message":"hi","count":255}}`,
			expected: "[T][INFO][mod] hi count=0xff\n",
		},
		{
			name:     "FieldsNotObject",
			cell:     `{"timestamp":"T","level":"INFO","target":"mod","fields":42}`,
			expected: "[T][INFO][mod] 42\n",
		},
		{
			name:     "MissingMessageRendersWholeFields",
			cell:     `{"timestamp":"T","level":"INFO","target":"mod","fields":{"count":255,"name":"x"}}`,
			expected: `[T][INFO][mod] {"count":255,"name":"x"}` + "\n",
		},
		{
			name:     "NonStringMessageRendersWholeFields",
			cell:     `{"timestamp":"T","level":"INFO","target":"mod","fields":{"message":7}}`,
			expected: `[T][INFO][mod] {"message":7}` + "\n",
		},
		{
			name:     "NegativeInteger",
			cell:     `{"timestamp":"T","level":"WARN","target":"mod","fields":{"message":"m","delta":-1}}`,
			expected: "[T][WARN][mod] m delta=0xffffffffffffffff\n",
		},
		{
			name:     "FieldOrderPreserved",
			cell:     `{"timestamp":"T","level":"INFO","target":"mod","fields":{"message":"m","b":1,"a":2,"c":3}}`,
			expected: "[T][INFO][mod] m b=0x1 a=0x2 c=0x3\n",
		},
		{
			name:     "RawExitRewritten",
			cell:     `{"timestamp":"T","level":"INFO","target":"mod","fields":{"message":"x","raw_exit":"tdx_tdg_vp_enter_exit_info rax: 10, rcx: 255"}}`,
			expected: `[T][INFO][mod] x raw_exit="tdx_tdg_vp_enter_exit_info rax: 0xa, rcx: 0xff"` + "\n",
		},
		{
			name:     "GprsRewritten",
			cell:     `{"timestamp":"T","level":"INFO","target":"mod","fields":{"message":"x","gprs":"TdxL2EnterGuestState regs=[10, 20, 30] rip: 16"}}`,
			expected: `[T][INFO][mod] x gprs="TdxL2EnterGuestState regs=[0xa, 0x14, 0x1e] rip: 0x10"` + "\n",
		},
		{
			name:     "SegmentRegisterRewrittenByContent",
			cell:     `{"timestamp":"T","level":"INFO","target":"mod","fields":{"message":"x","cs":"SegmentRegister base: 8"}}`,
			expected: `[T][INFO][mod] x cs="SegmentRegister base: 0x8"` + "\n",
		},
		{
			name:     "RawExitWithoutMarkerFormatsAsValue",
			cell:     `{"timestamp":"T","level":"INFO","target":"mod","fields":{"message":"x","raw_exit":"rax: 10"}}`,
			expected: `[T][INFO][mod] x raw_exit="rax: 10"` + "\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			line, err := formatter.Format(core.Row{Index: 0, Cell: tc.cell})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(line))
		})
	}
}

func TestLineFormatter_Name(t *testing.T) {
	formatter := NewLineFormatter(newTestLogger())
	assert.Equal(t, "line", formatter.Name())
}
