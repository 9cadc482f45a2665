package diag

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFixedClock(t *testing.T) {
	t.Helper()
	old := recordTime
	recordTime = func() time.Time { return time.Unix(0, 0) }
	t.Cleanup(func() { recordTime = old })
}

func TestRecordAppendsAnEvalEntryWithPrettyPrintedBytes(t *testing.T) {
	withFixedClock(t)
	n := New()
	n.Record("x = 1 + 2", int64(3))

	require.Len(t, n.entries, 1)
	assert.Equal(t, "eval", n.entries[0].Kind)
	assert.Equal(t, "x = 1 + 2", n.entries[0].Statement)
	assert.Greater(t, n.entries[0].Bytes, 0)
}

func TestRecordTypeTalliesRepeatedObservationsPerStatementAndKind(t *testing.T) {
	withFixedClock(t)
	n := New()
	n.RecordType("y = f(x)", "float64")
	n.RecordType("y = f(x)", "float64")
	n.RecordType("y = f(x)", "int64")

	assert.Equal(t, 2, n.typeTally["y = f(x)\x00float64"])
	assert.Equal(t, 1, n.typeTally["y = f(x)\x00int64"])
}

func TestWriteReportIncludesEvalBlockAndTypeTallyAndSizeSummary(t *testing.T) {
	withFixedClock(t)
	n := New()
	n.Record("x = 1", int64(1))
	n.RecordType("x = 1", "int64")

	var sb strings.Builder
	require.NoError(t, n.WriteReport(&sb))

	out := sb.String()
	assert.Contains(t, out, "x = 1")
	assert.Contains(t, out, "--- type-infer tally ---")
	assert.Contains(t, out, "int64 observed 1 time(s)")
	assert.Contains(t, out, "notebook size:")
}

func TestWriteReportOmitsTallySectionWhenNoTypeObservations(t *testing.T) {
	withFixedClock(t)
	n := New()
	n.Record("x = 1", int64(1))

	var sb strings.Builder
	require.NoError(t, n.WriteReport(&sb))
	assert.NotContains(t, sb.String(), "--- type-infer tally ---")
}

func TestNewNotebookStartsEmpty(t *testing.T) {
	n := New()
	var sb strings.Builder
	require.NoError(t, n.WriteReport(&sb))
	assert.Contains(t, sb.String(), "notebook size: 0 B")
}
