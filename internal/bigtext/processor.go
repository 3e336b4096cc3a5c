package bigtext

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
)

// Kind is the kind of outcome for a single directory entry.
type Kind int

const (
	// Failed means the entry could not be processed; an error accompanies it.
	Failed Kind = iota
	// NotFile means the entry is a directory, symlink or other non-regular file.
	NotFile
	// TooSmall means the file is below the minimum size.
	TooSmall
	// Ignored means the file was rejected, or skipped because of its extension.
	Ignored
	// IgnoredExt means the file was rejected and its extension is now throttled.
	IgnoredExt
	// Candidate means the file was selected.
	Candidate
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Failed:
		return "failed"
	case NotFile:
		return "not-file"
	case TooSmall:
		return "too-small"
	case Ignored:
		return "ignored"
	case IgnoredExt:
		return "ignored-ext"
	case Candidate:
		return "candidate"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the result of processing one directory entry.
type Outcome struct {
	// Kind is the kind of outcome.
	Kind Kind `json:"kind"`
	// Path is the entry path.
	Path string `json:"path"`
	// Size is the file size in bytes, set for candidates.
	Size int64 `json:"size,omitempty"`
	// Ratio is the compression ratio, valid if HasRatio is set.
	Ratio float64 `json:"ratio,omitempty"`
	// HasRatio reports whether Ratio is set.
	HasRatio bool `json:"-"`
	// Extension is the newly throttled extension for IgnoredExt.
	Extension string `json:"extension,omitempty"`
}

// Entry is a single item produced by a directory walk.
type Entry struct {
	// Path is the entry path.
	Path string
	// Dir describes the entry; it may be nil if Err is set.
	Dir fs.DirEntry
	// Err is a traversal error for this entry.
	Err error
}

// EntryFromPath builds an Entry for path without following symlinks.
func EntryFromPath(path string) Entry {
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{Path: path, Err: err}
	}

	return Entry{Path: path, Dir: fs.FileInfoToDirEntry(info)}
}

// Config configures a Processor.
type Config struct {
	// MinSize is the minimum file size in bytes.
	MinSize int64
	// BlockSize is the number of leading bytes inspected per file.
	BlockSize int64
	// CheckLimit is the number of consecutive misses tolerated per extension.
	CheckLimit int
	// CompressionRatio is the highest ratio selected by the compression criteria.
	CompressionRatio float64
	// Criteria selects the classifier.
	Criteria Criteria
	// Logger receives debug output; nil discards it.
	Logger *slog.Logger
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MinSize < 0 {
		return ErrInvalidMinSize
	}

	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBlockSize, c.BlockSize)
	}

	if c.CheckLimit < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCheckLimit, c.CheckLimit)
	}

	if _, err := ParseCriteria(string(c.Criteria)); err != nil {
		return err
	}

	if c.Criteria.UsesRatio() && (c.CompressionRatio <= 0 || c.CompressionRatio > 1) {
		return fmt.Errorf("%w: got %g", ErrInvalidRatio, c.CompressionRatio)
	}

	return nil
}

// Processor classifies directory entries one at a time.
//
// It owns the extension throttle for a run. Classifiers and read buffers
// are pooled: sequential use reuses one instance, and concurrent calls to
// Process never share one.
type Processor struct {
	cfg         Config
	log         *slog.Logger
	throttle    *Throttle
	classifiers sync.Pool
	buffers     sync.Pool
}

// NewProcessor validates cfg and creates a Processor.
func NewProcessor(cfg Config) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Build one classifier up front so construction errors surface here.
	first, err := NewClassifier(cfg.Criteria, cfg.CompressionRatio)
	if err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	p := &Processor{
		cfg:      cfg,
		log:      log,
		throttle: NewThrottle(cfg.CheckLimit),
	}

	p.classifiers.New = func() any {
		c, err := NewClassifier(cfg.Criteria, cfg.CompressionRatio)
		if err != nil {
			panic(fmt.Sprintf("creating %s classifier: %v", cfg.Criteria, err))
		}

		return c
	}
	p.classifiers.Put(first)

	bufSize := min(cfg.BlockSize, DefaultBufferSize)
	p.buffers.New = func() any {
		buf := make([]byte, bufSize)

		return &buf
	}

	return p, nil
}

// Config returns the processor configuration.
func (p *Processor) Config() Config {
	return p.cfg
}

// Throttle returns the extension throttle of this processor.
func (p *Processor) Throttle() *Throttle {
	return p.throttle
}

// Process classifies a single directory entry.
//
// Directories, symlinks and other non-regular files are NotFile. Files
// below the minimum size are TooSmall and never opened, as are files whose
// extension is throttled (Ignored). Everything else is read and classified.
// Any failure returns an Outcome of kind Failed together with a *PathError.
func (p *Processor) Process(entry Entry) (Outcome, error) {
	out := Outcome{Kind: Failed, Path: entry.Path}

	if entry.Err != nil {
		return out, newPathError("walk", entry.Path, entry.Err)
	}

	if entry.Dir == nil || !entry.Dir.Type().IsRegular() {
		out.Kind = NotFile

		return out, nil
	}

	info, err := entry.Dir.Info()
	if err != nil {
		return out, newPathError("stat", entry.Path, err)
	}

	if info.Size() < p.cfg.MinSize {
		out.Kind = TooSmall

		return out, nil
	}

	ext := Extension(entry.Path)

	release := p.throttle.Acquire(ext)
	defer release()

	if p.throttle.ShouldSkip(ext) {
		p.log.Debug("skipping throttled extension", "path", entry.Path, "ext", ext)

		out.Kind = Ignored

		return out, nil
	}

	result, err := p.classify(entry.Path)
	if err != nil {
		return out, err
	}

	if p.throttle.Record(ext, result.Selection) {
		p.log.Debug("throttling extension", "ext", ext, "limit", p.cfg.CheckLimit)

		out.Kind = IgnoredExt
		out.Extension = ext

		return out, nil
	}

	if result.Selection == Ignore {
		out.Kind = Ignored

		return out, nil
	}

	out.Kind = Candidate
	out.Size = info.Size()
	out.Ratio = result.Ratio
	out.HasRatio = result.HasRatio

	return out, nil
}

// classify runs the bounded reader over path with a pooled classifier.
func (p *Processor) classify(path string) (Result, error) {
	c, _ := p.classifiers.Get().(Classifier)
	defer p.classifiers.Put(c)

	buf, _ := p.buffers.Get().(*[]byte)
	defer p.buffers.Put(buf)

	return ClassifyFile(path, c, p.cfg.BlockSize, *buf)
}
