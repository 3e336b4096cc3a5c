package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/idelchi/bigtext/internal/bigtext"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// linePrinter prints outcomes as they arrive.
type linePrinter struct {
	stdout   io.Writer
	stderr   io.Writer
	options  Options
	progress bool
}

// Report implements bigtext.Reporter.
//
//nolint:errcheck // Console output
func (p *linePrinter) Report(out bigtext.Outcome, err error) {
	if p.progress && (err != nil || out.Kind == bigtext.IgnoredExt) {
		// Clear the status line before writing to stderr
		fmt.Fprint(p.stderr, "\r\033[2K\r")
	}

	switch {
	case err != nil:
		fmt.Fprintln(p.stderr, err)
	case out.Kind == bigtext.IgnoredExt:
		if !p.options.Quiet {
			fmt.Fprintf(p.stderr, "Now skipping files with extension *.%s\n", out.Extension)
		}
	case out.Kind == bigtext.Candidate:
		fmt.Fprintln(p.stdout, FormatCandidate(out, p.options.HumanReadable, p.options.ShowRatio))
	}
}

// FormatCandidate formats a candidate as "size<TAB>path", with the ratio
// between the two if showRatio is set and the candidate has one.
func FormatCandidate(out bigtext.Outcome, human, showRatio bool) string {
	size := FormatSize(out.Size, human)

	if showRatio {
		ratio := "-"
		if out.HasRatio {
			ratio = strconv.FormatFloat(out.Ratio, 'f', 3, 64)
		}

		return size + "\t" + ratio + "\t" + out.Path
	}

	return size + "\t" + out.Path
}

// PrintJSON outputs statistics in JSON format.
func PrintJSON(stats *bigtext.Stats, writer io.Writer) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintSummary outputs the run counters in human-readable table format.
//
//nolint:errcheck // This function prints output to the console.
func PrintSummary(stats *bigtext.Stats, human bool, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	if len(stats.ExtStats) > 0 {
		fmt.Fprintln(w, "\nCandidate extensions:\t\t")

		extList := make([]string, 0, len(stats.ExtStats))
		for ext := range stats.ExtStats {
			extList = append(extList, ext)
		}

		sort.Slice(extList, func(i, j int) bool {
			return stats.ExtStats[extList[i]].Size > stats.ExtStats[extList[j]].Size
		})

		for _, ext := range extList {
			extStat := stats.ExtStats[ext]
			name := "*." + ext
			if ext == "" {
				name = "\"\""
			}

			fmt.Fprintf(w, "  %s:\t%d files, %s\n", name, extStat.Count, FormatSize(extStat.Size, human))
		}
	}

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Files checked:\t%d\n", stats.Checked)
	fmt.Fprintf(w, " - Small files skipped:\t%d\n", stats.TooSmall)
	fmt.Fprintf(w, " - Non-files skipped:\t%d\n", stats.NonFiles)
	fmt.Fprintf(w, " - Ignored files:\t%d\n", stats.Ignored)
	fmt.Fprintf(w, "Candidate files found:\t%d\n", stats.Candidates)
	fmt.Fprintf(w, " - Total size:\t%s\n", FormatSize(stats.CandidateBytes, human))
	fmt.Fprintf(w, "Errors encountered:\t%d\n", stats.Errors)

	for _, ext := range stats.Throttled {
		fmt.Fprintf(w, "Throttled extension:\t*.%s\n", ext)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", stats.Elapsed)

	return w.Flush()
}
