package bigtext

import (
	"crypto/rand"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeInfo is an fs.FileInfo with a fixed size.
type fakeInfo struct {
	name string
	size int64
	mode fs.FileMode
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return f.size }
func (f fakeInfo) Mode() fs.FileMode  { return f.mode }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeInfo) Sys() any           { return nil }

// phantomEntry describes a regular file that does not exist on disk, so any
// attempt to open it fails.
func phantomEntry(t *testing.T, name string, size int64) Entry {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	info := fakeInfo{name: name, size: size}

	return Entry{Path: path, Dir: fs.FileInfoToDirEntry(info)}
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func textData(n int) []byte {
	line := "2024-01-01T00:00:00Z INFO request served in 12ms\n"

	return []byte(strings.Repeat(line, n/len(line)+1)[:n])
}

func randomData(t *testing.T, n int) []byte {
	t.Helper()

	data := make([]byte, n)
	_, err := rand.Read(data)
	require.NoError(t, err)

	return data
}
