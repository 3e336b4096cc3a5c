package bigtext

import (
	"errors"
	"io"
	"os"
)

// DefaultBufferSize is the size of the chunks handed to a classifier.
const DefaultBufferSize = 32 * 1024

// Classify feeds at most blockSize leading bytes of r to c and returns its decision.
//
// Reading stops at EOF, when blockSize bytes were consumed, or as soon as
// the classifier reports Done. buf is the read buffer; a nil or empty buf
// allocates one of DefaultBufferSize. Read errors are returned as is and
// never turned into a decision.
func Classify(r io.Reader, c Classifier, blockSize int64, buf []byte) (Result, error) {
	if len(buf) == 0 {
		buf = make([]byte, DefaultBufferSize)
	}

	c.Initialize()

	remaining := blockSize
	for remaining > 0 {
		chunk := buf
		if int64(len(chunk)) > remaining {
			chunk = chunk[:remaining]
		}

		n, err := r.Read(chunk)
		if n > 0 {
			remaining -= int64(n)

			state, procErr := c.Process(chunk[:n])
			if procErr != nil {
				return Rejected(), procErr
			}

			if state == Done {
				break
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return Rejected(), err
		}
	}

	return c.Finalize()
}

// ClassifyFile opens path and runs Classify over its content.
// Failures are returned as *PathError naming the operation.
func ClassifyFile(path string, c Classifier, blockSize int64, buf []byte) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Rejected(), newPathError("open", path, err)
	}
	defer file.Close()

	result, err := Classify(file, c, blockSize, buf)
	if err != nil {
		return Rejected(), newPathError("read", path, err)
	}

	return result, nil
}
