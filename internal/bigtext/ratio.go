package bigtext

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/pierrec/lz4/v4"
)

// streamCompressor is the subset shared by the flate and lz4 writers.
type streamCompressor interface {
	io.WriteCloser
	Reset(w io.Writer)
}

// byteCounter is an io.Writer that discards data and counts its length.
type byteCounter struct {
	n int64
}

// Write counts p.
func (c *byteCounter) Write(p []byte) (int, error) {
	c.n += int64(len(p))

	return len(p), nil
}

// RatioClassifier selects files whose leading bytes compress to at most
// MaxRatio of their original size.
//
// The compressed output is discarded; only the byte counts are kept.
type RatioClassifier struct {
	name     string
	stream   streamCompressor
	out      byteCounter
	in       int64
	maxRatio float64
}

// NewDeflateClassifier creates a RatioClassifier using deflate at the default level.
func NewDeflateClassifier(maxRatio float64) (*RatioClassifier, error) {
	w, err := flate.NewWriter(io.Discard, flate.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("creating deflate stream: %w", err)
	}

	return newRatioClassifier("deflate", w, maxRatio), nil
}

// NewLZ4Classifier creates a RatioClassifier using the lz4 frame format.
func NewLZ4Classifier(maxRatio float64) (*RatioClassifier, error) {
	w := lz4.NewWriter(io.Discard)
	// 64KB blocks keep the per-classifier buffers small; the default is 4MB.
	if err := w.Apply(lz4.BlockSizeOption(lz4.Block64Kb)); err != nil {
		return nil, fmt.Errorf("creating lz4 stream: %w", err)
	}

	return newRatioClassifier("lz4", w, maxRatio), nil
}

func newRatioClassifier(name string, stream streamCompressor, maxRatio float64) *RatioClassifier {
	c := &RatioClassifier{
		name:     name,
		stream:   stream,
		maxRatio: maxRatio,
	}
	c.Initialize()

	return c
}

// MaxRatio returns the highest ratio that is still selected.
func (c *RatioClassifier) MaxRatio() float64 {
	return c.maxRatio
}

// Initialize starts a new compression stream.
func (c *RatioClassifier) Initialize() {
	c.in = 0
	c.out.n = 0
	c.stream.Reset(&c.out)
}

// Process compresses chunk without flushing. The ratio of a prefix says
// nothing definite about the rest, so it always returns Working.
func (c *RatioClassifier) Process(chunk []byte) (State, error) {
	n, err := c.stream.Write(chunk)
	c.in += int64(n)

	if err != nil {
		return Working, fmt.Errorf("compressing file data with %s: %w", c.name, err)
	}

	return Working, nil
}

// Finalize flushes the stream and compares the ratio with the threshold.
// An empty input has no ratio and is ignored.
func (c *RatioClassifier) Finalize() (Result, error) {
	if err := c.stream.Close(); err != nil {
		return Rejected(), fmt.Errorf("finalizing %s stream: %w", c.name, err)
	}

	if c.in == 0 {
		return Rejected(), nil
	}

	ratio := float64(c.out.n) / float64(c.in)
	if ratio <= c.maxRatio {
		return SelectedWithRatio(ratio), nil
	}

	return Rejected(), nil
}
