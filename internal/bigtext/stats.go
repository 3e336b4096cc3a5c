package bigtext

import (
	"sync"
	"time"
)

// ExtStat represents candidate statistics for a file extension.
type ExtStat struct {
	// Count is the number of candidates with this extension.
	Count int `json:"count"`
	// Size is the cumulative size in bytes.
	Size int64 `json:"size"`
}

// Stats holds the counters of a scan run.
type Stats struct {
	// Checked is the number of directory entries seen, including failures.
	Checked int64 `json:"checked"`
	// NonFiles is the number of directories, symlinks and special files.
	NonFiles int64 `json:"non_files"`
	// TooSmall is the number of files below the minimum size.
	TooSmall int64 `json:"too_small"`
	// Ignored is the number of files rejected or skipped by extension.
	Ignored int64 `json:"ignored"`
	// Candidates is the number of selected files.
	Candidates int64 `json:"candidates"`
	// CandidateBytes is the cumulative size of the selected files.
	CandidateBytes int64 `json:"candidate_bytes"`
	// Errors is the number of failed entries and roots.
	Errors int64 `json:"errors"`
	// ExtStats maps candidate extensions to their statistics.
	ExtStats map[string]ExtStat `json:"ext_stats"`
	// Throttled lists the extensions skipped at the end of the run.
	Throttled []string `json:"throttled"`
	// Criteria is the criteria used for the run.
	Criteria Criteria `json:"criteria"`
	// Elapsed is the total time taken.
	Elapsed time.Duration `json:"elapsed"`
}

// collector aggregates outcomes from concurrent fastwalk callbacks using a mutex.
// The reporter is called under the same lock, so it never runs concurrently.
type collector struct {
	mu       sync.Mutex
	reporter Reporter
	stats    Stats
}

// newCollector creates a collector that forwards outcomes to reporter.
func newCollector(reporter Reporter, criteria Criteria) *collector {
	return &collector{
		reporter: reporter,
		stats: Stats{
			ExtStats: make(map[string]ExtStat),
			Criteria: criteria,
		},
	}
}

// add records an outcome and hands it to the reporter.
func (c *collector) add(out Outcome, err error) {
	c.record(out, err, true)
}

// addDirError records the failure to read a directory whose entry was
// already counted when it was visited.
func (c *collector) addDirError(out Outcome, err error) {
	c.record(out, err, false)
}

func (c *collector) record(out Outcome, err error, checked bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if checked {
		c.stats.Checked++
	}

	switch {
	case err != nil:
		c.stats.Errors++
	case out.Kind == NotFile:
		c.stats.NonFiles++
	case out.Kind == TooSmall:
		c.stats.TooSmall++
	case out.Kind == Ignored, out.Kind == IgnoredExt:
		c.stats.Ignored++
	case out.Kind == Candidate:
		c.stats.Candidates++
		c.stats.CandidateBytes += out.Size

		ext := Extension(out.Path)
		stat := c.stats.ExtStats[ext]
		stat.Count++
		stat.Size += out.Size
		c.stats.ExtStats[ext] = stat
	}

	if c.reporter != nil {
		c.reporter.Report(out, err)
	}
}

// addRootError counts a root that could not be scanned.
func (c *collector) addRootError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Errors++
}

// progress returns the counters shown while scanning.
func (c *collector) progress() (checked, candidates int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stats.Checked, c.stats.Candidates
}

// finalize produces the final Stats from the collected data.
func (c *collector) finalize(throttled []string) *Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Throttled = throttled

	return &stats
}
