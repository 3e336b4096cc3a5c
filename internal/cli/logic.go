package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/bigtext/internal/bigtext"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

func logic(ctx context.Context, options Options, stdout, stderr io.Writer) error {
	logger, closeLog, err := newLogger(stderr, options.Debug, options.LogFile)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // Best effort

	options.Logger = logger

	enableProgress := !options.Quiet &&
		!options.Debug &&
		options.Output != "json" &&
		isTerminal(stderr)

	// Simple progress callback that prints directly to stderr
	var progressHook func(checked, candidates int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(checked, candidates int64) {
			msg := fmt.Sprintf("Scanning… %s entries, %s candidates",
				humanize.Comma(checked), humanize.Comma(candidates))
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	printer := &linePrinter{
		stdout:   stdout,
		stderr:   stderr,
		options:  options,
		progress: enableProgress,
	}

	stats, runErr := bigtext.Run(ctx, options.Options, printer, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if stats == nil {
		return runErr
	}

	if !options.Quiet {
		var printErr error

		switch options.Output {
		case "json":
			printErr = PrintJSON(stats, stderr)
		default:
			printErr = PrintSummary(stats, options.HumanReadable, stderr)
		}

		if printErr != nil {
			return printErr
		}
	}

	if runErr != nil {
		return runErr
	}

	if stats.Errors > 0 {
		return fmt.Errorf("%d errors encountered", stats.Errors)
	}

	return nil
}
