package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	t.Parallel()

	tests := map[string]int64{
		"0":      0,
		"512":    512,
		"512b":   512,
		"64k":    64 * 1024,
		"64K":    64 * 1024,
		"10M":    10 << 20,
		"1G":     1 << 30,
		"1g":     1 << 30,
		"2T":     2 << 40,
		"1P":     1 << 50,
		"1.5G":   3 << 29,
		"10MB":   10_000_000,
		"4GiB":   4 << 30,
		" 1k ":   1024,
		"1,024":  1024,
		"100 kB": 100_000,
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSize(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseSizeErrors(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "G", "12X", "-1k", "99999999999P"} {
		_, err := ParseSize(in)
		assert.Error(t, err, in)
	}
}

func TestFormatSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2147483648", FormatSize(2<<30, false))
	assert.Equal(t, "2.0 GiB", FormatSize(2<<30, true))
	assert.Equal(t, "512 B", FormatSize(512, true))
}
