// FILE: logsift/src/internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"logsift/src/internal/format"
	"logsift/src/internal/sink"
	"logsift/src/internal/source"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

// runPipeline formats the given CSV content and returns the emitted
// lines along with the run stats.
func runPipeline(t *testing.T, csvContent string) ([]string, Stats) {
	t.Helper()
	logger := newTestLogger()

	inPath := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(inPath, []byte(csvContent), 0644))

	src, err := source.NewCSVSource(inPath, "ExtractedMessage", logger)
	require.NoError(t, err)
	defer src.Close()

	outPath := filepath.Join(t.TempDir(), "out.txt")
	snk, err := sink.NewFileSink(outPath, logger)
	require.NoError(t, err)

	p := New(src, format.NewLineFormatter(logger), snk, logger)
	require.NoError(t, p.Run(context.Background()))
	require.NoError(t, snk.Close())

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var lines []string
	if len(content) > 0 {
		lines = strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	}
	return lines, p.GetStats()
}

func TestPipeline_Run(t *testing.T) {
	t.Run("OutputCountMatchesNonEmptyRows", func(t *testing.T) {
		csv := "ExtractedMessage,Extra\n" +
			`"{""timestamp"":""T"",""level"":""INFO"",""target"":""a"",""fields"":{""message"":""one""}}",x` + "\n" +
			",x\n" +
			"not json,x\n"

		lines, stats := runPipeline(t, csv)

		assert.Equal(t, uint64(3), stats.RowsIn)
		assert.Equal(t, uint64(2), stats.LinesOut)
		assert.Equal(t, uint64(1), stats.Suppressed)
		require.Len(t, lines, 2)
		assert.Equal(t, "[T][INFO][a] one", lines[0])
		assert.Equal(t, "not json", lines[1])
	})

	t.Run("PreservesInputOrder", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("ExtractedMessage\n")
		b.WriteString(`"{""timestamp"":""1"",""level"":""INFO"",""target"":""t"",""fields"":{""message"":""first""}}"` + "\n")
		b.WriteString(`"{""timestamp"":""2"",""level"":""INFO"",""target"":""t"",""fields"":{""message"":""second""}}"` + "\n")
		b.WriteString(`"{""timestamp"":""3"",""level"":""INFO"",""target"":""t"",""fields"":{""message"":""third""}}"` + "\n")

		lines, _ := runPipeline(t, b.String())

		require.Len(t, lines, 3)
		assert.Equal(t, "[1][INFO][t] first", lines[0])
		assert.Equal(t, "[2][INFO][t] second", lines[1])
		assert.Equal(t, "[3][INFO][t] third", lines[2])
	})

	t.Run("FallbackRoundTrip", func(t *testing.T) {
		raw := `{"timestamp": "T", "level"`
		csv := "ExtractedMessage\n" + `"` + strings.ReplaceAll(raw, `"`, `""`) + `"` + "\n"

		lines, _ := runPipeline(t, csv)

		require.Len(t, lines, 1)
		assert.Equal(t, raw, lines[0])
	})

	t.Run("HexAndRegisterRewrites", func(t *testing.T) {
		record := `{"timestamp":"T","level":"INFO","target":"vmm","fields":{"message":"exit","count":255,"raw_exit":"tdx_tdg_vp_enter_exit_info rax: 10"}}`
		csv := "ExtractedMessage\n" + `"` + strings.ReplaceAll(record, `"`, `""`) + `"` + "\n"

		lines, _ := runPipeline(t, csv)

		require.Len(t, lines, 1)
		assert.Equal(t, `[T][INFO][vmm] exit count=0xff raw_exit="tdx_tdg_vp_enter_exit_info rax: 0xa"`, lines[0])
	})

	t.Run("CancelledContext", func(t *testing.T) {
		logger := newTestLogger()
		inPath := filepath.Join(t.TempDir(), "in.csv")
		require.NoError(t, os.WriteFile(inPath, []byte("ExtractedMessage\nrow\n"), 0644))

		src, err := source.NewCSVSource(inPath, "ExtractedMessage", logger)
		require.NoError(t, err)
		defer src.Close()

		snk := sink.NewStdoutSink(logger)
		p := New(src, format.NewLineFormatter(logger), snk, logger)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, p.Run(ctx), context.Canceled)
	})
}
