package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/vidstat/internal/cloud"
	"github.com/idelchi/vidstat/internal/vidstat"
)

func logic(ctx context.Context, options vidstat.Options, stdout, stderr io.Writer) error {
	enableProgress := options.Output != "json" &&
		!options.Debug &&
		stderr == os.Stderr &&
		isatty.IsTerminal(os.Stderr.Fd())

	// Simple progress callback that prints directly to stderr
	var progressHook func(done, total int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(done, total int64) {
			msg := fmt.Sprintf("Probing… %s of %s videos", humanize.Comma(done), humanize.Comma(total))
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	report, err := vidstat.Run(ctx, options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	switch options.Output {
	case "json":
		err = PrintJSON(report, stdout)
	default:
		err = PrintTable(report, stdout, options.Verbose)
	}

	if err != nil {
		return err
	}

	if options.CloudPath != "" {
		if err := report.RenderCloud(cloud.New(options.CloudPath)); err != nil {
			return fmt.Errorf("rendering word cloud: %w", err)
		}
	}

	return nil
}
