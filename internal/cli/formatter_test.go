package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/bigtext/internal/bigtext"
)

func TestFormatCandidate(t *testing.T) {
	t.Parallel()

	out := bigtext.Outcome{Kind: bigtext.Candidate, Path: "logs/app.log", Size: 3 << 30, Ratio: 0.125, HasRatio: true}

	assert.Equal(t, "3221225472\tlogs/app.log", FormatCandidate(out, false, false))
	assert.Equal(t, "3.0 GiB\tlogs/app.log", FormatCandidate(out, true, false))
	assert.Equal(t, "3221225472\t0.125\tlogs/app.log", FormatCandidate(out, false, true))

	out.HasRatio = false
	assert.Equal(t, "3221225472\t-\tlogs/app.log", FormatCandidate(out, false, true))
}

func TestLinePrinter(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	printer := &linePrinter{stdout: &stdout, stderr: &stderr}

	printer.Report(bigtext.Outcome{Kind: bigtext.Candidate, Path: "a.txt", Size: 10}, nil)
	printer.Report(bigtext.Outcome{Kind: bigtext.Ignored, Path: "b.bin"}, nil)
	printer.Report(bigtext.Outcome{Kind: bigtext.IgnoredExt, Path: "c.bin", Extension: "bin"}, nil)
	printer.Report(bigtext.Outcome{Kind: bigtext.Failed, Path: "d"}, &bigtext.PathError{
		Op: "open", Path: "d", Err: errors.New("permission denied"),
	})

	assert.Equal(t, "10\ta.txt\n", stdout.String())
	assert.Equal(t, "Now skipping files with extension *.bin\nopen d: permission denied\n", stderr.String())
}

func TestLinePrinterQuiet(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	printer := &linePrinter{stdout: &stdout, stderr: &stderr, options: Options{Quiet: true}}

	printer.Report(bigtext.Outcome{Kind: bigtext.IgnoredExt, Path: "c.bin", Extension: "bin"}, nil)

	assert.Empty(t, stderr.String())
}

func testStats() *bigtext.Stats {
	return &bigtext.Stats{
		Checked:        10,
		NonFiles:       2,
		TooSmall:       4,
		Ignored:        2,
		Candidates:     2,
		CandidateBytes: 3 << 30,
		ExtStats: map[string]bigtext.ExtStat{
			"log": {Count: 1, Size: 2 << 30},
			"":    {Count: 1, Size: 1 << 30},
		},
		Throttled: []string{"jpg"},
		Criteria:  bigtext.CriteriaText,
		Elapsed:   time.Second,
	}
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, PrintSummary(testStats(), true, &buf))

	out := buf.String()
	assert.Contains(t, out, "*.log:")
	assert.Contains(t, out, "2.0 GiB")
	assert.Contains(t, out, "\"\":")
	assert.Contains(t, out, "Files checked:")
	assert.Contains(t, out, "3.0 GiB")
	assert.Contains(t, out, "*.jpg")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("*.log")), bytes.Index(buf.Bytes(), []byte("\"\":")),
		"extensions are sorted by size")
}

func TestPrintJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, PrintJSON(testStats(), &buf))

	var got bigtext.Stats
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *testStats(), got)
}
