package bigtext

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/hashicorp/go-multierror"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Options configures a scan run.
type Options struct {
	Config

	// Roots are the directories or files to scan.
	Roots []string
	// Workers is the number of fastwalk workers. Values below 1 mean 1,
	// which keeps outcomes in walk order.
	Workers int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}

// Reporter receives the outcome of every directory entry.
type Reporter interface {
	Report(out Outcome, err error)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(out Outcome, err error)

// Report calls f(out, err).
func (f ReporterFunc) Report(out Outcome, err error) {
	f(out, err)
}

// startProgressReporter invokes hook(checked, candidates) on each tick until ctx is done.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.progress())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run scans every root and returns the run statistics.
//
// Each directory entry is classified by a single Processor and handed to
// reporter together with its error, if any. Per-entry failures never stop
// the scan. Roots that cannot be accessed are skipped, counted, and
// returned together as a *multierror.Error after all other roots were
// scanned. The walk can be cancelled via ctx.
func Run(ctx context.Context, opt Options, reporter Reporter, progressHook func(int64, int64)) (*Stats, error) {
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
		opt.Logger = log
	}

	processor, err := NewProcessor(opt.Config)
	if err != nil {
		return nil, err
	}

	if len(opt.Roots) == 0 {
		opt.Roots = []string{"."}
	}

	workers := max(opt.Workers, 1)

	collector := newCollector(reporter, opt.Criteria)

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, collector, progressHook, opt.ProgressInterval)

	start := time.Now()

	var errs *multierror.Error

	for _, root := range opt.Roots {
		log.Debug("scanning root", "root", root, "criteria", opt.Criteria, "workers", workers)

		if err := walkRoot(ctx, processor, collector, root, workers); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			collector.addRootError()

			errs = multierror.Append(errs, err)
		}
	}

	stats := collector.finalize(processor.Throttle().Throttled())
	stats.Elapsed = time.Since(start)

	return stats, errs.ErrorOrNil()
}

// walkRoot feeds every entry below root to the processor.
// A root that is not a directory is processed as a single entry.
func walkRoot(ctx context.Context, processor *Processor, c *collector, root string, workers int) error {
	info, err := os.Stat(root)
	if err != nil {
		return newPathError("walk", root, err)
	}

	if !info.IsDir() {
		c.add(processor.Process(Entry{Path: root, Dir: fs.FileInfoToDirEntry(info)}))

		return nil
	}

	conf := &fastwalk.Config{
		Follow:     false, // Don't follow symlinks
		NumWorkers: workers,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		// Check cancellation periodically
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		visit(processor, c, Entry{Path: path, Dir: d, Err: err})

		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, context.Canceled) {
		return newPathError("walk", root, walkErr)
	}

	return walkErr
}

// visit processes a single walk entry. fastwalk calls back a second time for
// a directory it could not read, so that error does not count as a new entry.
func visit(processor *Processor, c *collector, entry Entry) {
	out, err := processor.Process(entry)

	if entry.Err != nil && entry.Dir != nil && entry.Dir.IsDir() {
		c.addDirError(out, err)

		return
	}

	c.add(out, err)
}
