package bigtext

// TextClassifier selects files made up only of printable ASCII and
// whitespace control bytes.
type TextClassifier struct {
	isText bool
}

// NewTextClassifier creates a TextClassifier ready for use.
func NewTextClassifier() *TextClassifier {
	return &TextClassifier{isText: true}
}

// Initialize resets the verdict to text.
func (t *TextClassifier) Initialize() {
	t.isText = true
}

// Process returns Done at the first non-text byte.
func (t *TextClassifier) Process(chunk []byte) (State, error) {
	if t.isText {
		for _, b := range chunk {
			if !isText(b) {
				t.isText = false

				break
			}
		}
	}

	if t.isText {
		return Working, nil
	}

	return Done, nil
}

// Finalize selects the file if every inspected byte was text.
func (t *TextClassifier) Finalize() (Result, error) {
	if t.isText {
		return Selected(), nil
	}

	return Rejected(), nil
}

// isText reports whether b is printable ASCII or one of \t \n \v \f \r.
func isText(b byte) bool {
	return (b >= 0x20 && b <= 0x7e) || (b >= 0x09 && b <= 0x0d)
}
