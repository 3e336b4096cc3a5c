package bigtext

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Classifier that records the chunks it receives.
type recorder struct {
	chunks      [][]byte
	doneAfter   int
	initialized int
}

func (r *recorder) Initialize() {
	r.initialized++
	r.chunks = nil
}

func (r *recorder) Process(chunk []byte) (State, error) {
	r.chunks = append(r.chunks, bytes.Clone(chunk))
	if r.doneAfter > 0 && len(r.chunks) >= r.doneAfter {
		return Done, nil
	}

	return Working, nil
}

func (r *recorder) Finalize() (Result, error) {
	return Selected(), nil
}

func (r *recorder) total() int {
	n := 0
	for _, c := range r.chunks {
		n += len(c)
	}

	return n
}

func TestClassifyRespectsBlockSize(t *testing.T) {
	t.Parallel()

	data := make([]byte, 10_000)
	rec := &recorder{}

	_, err := Classify(bytes.NewReader(data), rec, 2500, make([]byte, 1000))
	require.NoError(t, err)

	assert.Equal(t, 1, rec.initialized)
	assert.Equal(t, 2500, rec.total())
	require.Len(t, rec.chunks, 3)
	assert.Len(t, rec.chunks[2], 500)
}

func TestClassifyStopsWhenDone(t *testing.T) {
	t.Parallel()

	src := bytes.NewReader(make([]byte, 10_000))
	rec := &recorder{doneAfter: 2}

	_, err := Classify(src, rec, 10_000, make([]byte, 100))
	require.NoError(t, err)

	assert.Len(t, rec.chunks, 2)
	assert.Equal(t, 10_000-200, src.Len())
}

func TestClassifyShortFile(t *testing.T) {
	t.Parallel()

	rec := &recorder{}

	_, err := Classify(iotest.HalfReader(bytes.NewReader([]byte("abcdef"))), rec, 1024, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, rec.total())
}

func TestClassifyEmptyFile(t *testing.T) {
	t.Parallel()

	rec := &recorder{}

	got, err := Classify(bytes.NewReader(nil), rec, 1024, nil)
	require.NoError(t, err)
	assert.Empty(t, rec.chunks)
	assert.Equal(t, Selected(), got)
}

func TestClassifyReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := io.MultiReader(bytes.NewReader([]byte("text")), iotest.ErrReader(boom))

	_, err := Classify(src, NewTextClassifier(), 1024, nil)
	require.ErrorIs(t, err, boom)
}

func TestClassifyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", textData(1000))

	got, err := ClassifyFile(path, NewTextClassifier(), 64, nil)
	require.NoError(t, err)
	assert.Equal(t, Select, got.Selection)

	again, err := ClassifyFile(path, NewTextClassifier(), 64, nil)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestClassifyFileMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing")

	_, err := ClassifyFile(path, NewTextClassifier(), 64, nil)
	require.Error(t, err)

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "open", pathErr.Op)
	assert.Equal(t, path, pathErr.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, "open "+path+": "+pathErr.Err.Error(), err.Error())
}

// failing is a Classifier whose stream breaks on the first chunk.
type failing struct{ err error }

func (failing) Initialize() {}

func (f failing) Process([]byte) (State, error) { return Working, f.err }

func (failing) Finalize() (Result, error) { return Selected(), nil }

func TestClassifyFileClassifierError(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.bin", textData(100))
	boom := errors.New("stream broken")

	got, err := ClassifyFile(path, failing{err: boom}, 64, nil)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, Rejected(), got)

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "read", pathErr.Op)
	assert.Equal(t, path, pathErr.Path)
	assert.Equal(t, "read "+path+": stream broken", err.Error())
}

func TestClassifyFileDirectory(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("directories cannot be opened for reading on windows")
	}

	dir := t.TempDir()

	// Opening a directory succeeds, reading it does not.
	_, err := ClassifyFile(dir, NewTextClassifier(), 64, nil)
	require.Error(t, err)

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "read", pathErr.Op)
	assert.Equal(t, dir, pathErr.Path)
	assert.NotContains(t, pathErr.Err.Error(), dir, "path is not repeated")
}
