package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/vidstat/internal/vidstat"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
	// WordsPerLine is the number of word counts printed per line.
	WordsPerLine = 5
	// NotAvailable is printed for averages of empty categories.
	NotAvailable = "N/A"
)

// PrintJSON outputs the report in JSON format.
func PrintJSON(report *vidstat.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// FormatClock renders seconds as H:MM:SS, prefixed by whole days if any.
// Fractions of a second are truncated.
func FormatClock(seconds float64) string {
	total := int64(seconds)

	days := total / 86400
	total %= 86400

	clock := fmt.Sprintf("%d:%02d:%02d", total/3600, total%3600/60, total%60)

	switch days {
	case 0:
		return clock
	case 1:
		return "1 day, " + clock
	default:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
}

// FormatWords lays out word counts as "word: count" entries, WordsPerLine per line.
func FormatWords(words []vidstat.WordCount) string {
	var b strings.Builder

	for i, w := range words {
		if i != 0 && i%WordsPerLine == 0 {
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "%s: %d, ", w.Word, w.Count)
	}

	return strings.TrimRight(b.String(), ", ")
}

func average(value *float64, format func(float64) string) string {
	if value == nil {
		return NotAvailable
	}

	return format(*value)
}

func gigabytes(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// PrintTable outputs the report in human-readable table format.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(report *vidstat.Report, writer io.Writer, verbose bool) error {
	summary := report.Summary

	fmt.Fprintf(writer, "\nScanned %d directories and found %d videos.\n\n", report.DirCount, report.FileCount)
	fmt.Fprintf(writer, "Avg video size: %.2f GB. Total size: %.2f GB (%s)\n\n",
		summary.MeanSizeGB, summary.TotalSizeGB, humanize.Bytes(uint64(summary.TotalBytes))) //nolint:gosec // Sizes are never negative

	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "Category\tRange\tAvg Duration\tNumber of Videos\tAvg Size (GB)")
	fmt.Fprintln(w, "--------\t-----\t------------\t----------------\t-------------")

	for _, b := range report.Buckets {
		fmt.Fprintf(w, "%s\t%s - %s\t%s\t%d\t%s\n",
			b.Label,
			FormatClock(b.Lower), FormatClock(b.Upper),
			average(b.AvgDuration, FormatClock),
			b.Count,
			average(b.AvgSizeGB, gigabytes),
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(writer, "\nElapsed time: %.2f seconds.\n", summary.Elapsed.Seconds())
	fmt.Fprintf(writer, "Speed: %.2f videos per minute\n", summary.VideosPerMinute)

	if len(report.Words) > 0 {
		fmt.Fprintf(writer, "\n%s\n", FormatWords(report.Words))
	}

	if verbose {
		fmt.Fprintf(writer, "\nNumber of videos with no recognizable streams: %d\n", summary.NoStream)
		fmt.Fprintf(writer, "Number of unreadable files: %d\n", summary.Unreadable)
	}

	return nil
}
