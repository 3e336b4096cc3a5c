package bigtext

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Throttle counts consecutive misses per file extension and tells when an
// extension should no longer be checked.
//
// A single selected file resets the count for its extension. The zero value
// is not usable; create one with NewThrottle. All methods are safe for
// concurrent use. ShouldSkip and Record lock separately, so callers that
// classify files of one extension concurrently hold Acquire across the
// check, the read and the record.
type Throttle struct {
	mu         sync.Mutex
	checkLimit int
	misses     map[string]int
	keys       map[string]*sync.Mutex
}

// NewThrottle creates a Throttle that skips an extension once it has missed
// more than checkLimit times in a row.
func NewThrottle(checkLimit int) *Throttle {
	return &Throttle{
		checkLimit: checkLimit,
		misses:     make(map[string]int),
		keys:       make(map[string]*sync.Mutex),
	}
}

// Acquire serializes callers working on the same extension and returns the
// function that releases it. Files without an extension are never throttled
// and do not block each other.
func (t *Throttle) Acquire(ext string) (release func()) {
	if ext == "" {
		return func() {}
	}

	t.mu.Lock()

	key, ok := t.keys[ext]
	if !ok {
		key = &sync.Mutex{}
		t.keys[ext] = key
	}

	t.mu.Unlock()

	key.Lock()

	return key.Unlock
}

// ShouldSkip reports whether files with ext should be ignored unread.
// Files without an extension are never skipped.
func (t *Throttle) ShouldSkip(ext string) bool {
	if ext == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.misses[ext] > t.checkLimit
}

// Record updates the miss count of ext with the outcome of a classification.
// It returns true only for the call that pushes the count past the check
// limit, so the caller can report the transition once.
func (t *Throttle) Record(ext string, sel Selection) bool {
	if ext == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if sel == Select {
		delete(t.misses, ext)

		return false
	}

	t.misses[ext]++

	return t.misses[ext] == t.checkLimit+1
}

// Count returns the current miss count of ext.
func (t *Throttle) Count(ext string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.misses[ext]
}

// Throttled returns the sorted extensions that are currently skipped.
func (t *Throttle) Throttled() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	exts := make([]string, 0, len(t.misses))
	for ext, n := range t.misses {
		if n > t.checkLimit {
			exts = append(exts, ext)
		}
	}

	slices.Sort(exts)

	return exts
}

// Extension returns the extension of path without the leading dot.
// Dot files such as ".bashrc" and names ending in a dot have none.
func Extension(path string) string {
	name := filepath.Base(path)

	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return ""
	}

	return name[idx+1:]
}
