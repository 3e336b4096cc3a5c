package cli

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// ParseSize parses a byte size such as "64k", "1G" or "512MiB".
//
// A bare single-letter unit (k, M, G, T, P) is binary, so "1G" is 1024^3
// bytes. Other forms are handled by humanize.ParseBytes.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty size")
	}

	switch last := s[len(s)-1]; {
	case last == 'b' || last == 'B':
		// Plain bytes, or a unit humanize already understands (kB, MiB, ...).
	case strings.ContainsRune("kKmMgGtTpP", rune(last)) && len(s) > 1 && isDigit(s[len(s)-2]):
		s += "i"
	}

	size, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("parsing size %q: %w", s, err)
	}

	if size > math.MaxInt64 {
		return 0, fmt.Errorf("size %q does not fit in 64 bits", s)
	}

	return int64(size), nil //nolint:gosec // Bounds checked above
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// FormatSize formats n as plain bytes, or with binary units if human is set.
func FormatSize(n int64, human bool) string {
	if !human {
		return fmt.Sprintf("%d", n)
	}

	return humanize.IBytes(uint64(n)) //nolint:gosec // Sizes are never negative
}
