package bigtext

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Selection is the final decision of a classifier.
type Selection int

const (
	// Ignore means the file does not fit the criteria.
	Ignore Selection = iota
	// Select means the file fits the criteria.
	Select
)

// String returns the lowercase name of the selection.
func (s Selection) String() string {
	if s == Select {
		return "select"
	}

	return "ignore"
}

// Result is produced once per file when a classifier is finalized.
type Result struct {
	// Selection is the decision.
	Selection Selection
	// Ratio is the estimated compression ratio (compressed / original).
	Ratio float64
	// HasRatio reports whether Ratio is set.
	HasRatio bool
}

// Selected returns a Result selecting the file without a ratio.
func Selected() Result {
	return Result{Selection: Select}
}

// SelectedWithRatio returns a Result selecting the file with a ratio.
func SelectedWithRatio(ratio float64) Result {
	return Result{Selection: Select, Ratio: ratio, HasRatio: true}
}

// Rejected returns a Result rejecting the file.
func Rejected() Result {
	return Result{Selection: Ignore}
}

// State is returned after every chunk fed to a classifier.
type State int

const (
	// Working means the classifier may use more data.
	Working State = iota
	// Done means the decision is fixed and no more data is needed.
	Done
)

// Classifier evaluates the leading bytes of a single file.
//
// Initialize is called before the first chunk of every file, Process
// receives the chunks in file order, and Finalize yields the decision.
// Finalize must work even if Process was never called. Once Process
// returns Done, no further chunks are delivered for the file.
type Classifier interface {
	Initialize()
	Process(chunk []byte) (State, error)
	Finalize() (Result, error)
}

// Criteria names a classifier variant.
type Criteria string

const (
	// CriteriaText selects plain text files.
	CriteriaText Criteria = "text"
	// CriteriaDeflate selects files compressible with deflate.
	CriteriaDeflate Criteria = "deflate"
	// CriteriaLZ4 selects files compressible with lz4.
	CriteriaLZ4 Criteria = "lz4"
)

// AllCriteria lists the supported criteria in display order.
//
//nolint:gochecknoglobals // Config constant
var AllCriteria = []Criteria{CriteriaText, CriteriaDeflate, CriteriaLZ4}

// ErrUnknownCriteria is returned for criteria names that are not supported.
var ErrUnknownCriteria = errors.New("unknown criteria")

// ParseCriteria converts a name such as "text" into a Criteria.
func ParseCriteria(name string) (Criteria, error) {
	c := Criteria(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(AllCriteria, c) {
		return "", fmt.Errorf("%w %q: must be one of %v", ErrUnknownCriteria, name, AllCriteria)
	}

	return c, nil
}

// UsesRatio reports whether the criteria produces a compression ratio.
func (c Criteria) UsesRatio() bool {
	return c == CriteriaDeflate || c == CriteriaLZ4
}

// NewClassifier creates a fresh classifier for the given criteria.
// maxRatio is only used by the compression based criteria.
func NewClassifier(c Criteria, maxRatio float64) (Classifier, error) {
	switch c {
	case CriteriaText:
		return NewTextClassifier(), nil
	case CriteriaDeflate:
		c, err := NewDeflateClassifier(maxRatio)
		if err != nil {
			return nil, err
		}

		return c, nil
	case CriteriaLZ4:
		c, err := NewLZ4Classifier(maxRatio)
		if err != nil {
			return nil, err
		}

		return c, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownCriteria, string(c))
	}
}
