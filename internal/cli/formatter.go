package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/projstat/internal/dirstat"
	"github.com/idelchi/projstat/internal/render"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2

	separatorWidth = 53
	bytesPerMiB    = 1024 * 1024
)

// Percentage returns count as a percentage of total, or zero when total is zero.
func Percentage(count, total int64) float64 {
	if total <= 0 {
		return 0
	}

	return 100.0 * float64(count) / float64(total)
}

func extensionLabel(key string) string {
	if key == "" {
		return "\"\""
	}

	return key
}

// PrintReport writes the summary header followed by one row per extension,
// ranked according to spec and colored by rank.
//
//nolint:forbidigo // This function prints output to the console.
func PrintReport(stats *dirstat.Stats, spec dirstat.SortSpec, r render.Renderer, writer io.Writer) error {
	project := stats.Project

	fmt.Fprintln(writer, r.Title("Project Statistics for directory: "+stats.Root))
	fmt.Fprintln(writer, r.Accent(strings.Repeat("-", separatorWidth)))

	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "Total number of folders:\t%s\n", humanize.Comma(project.DirCount))
	fmt.Fprintf(w, "Total number of files:\t%s\n", humanize.Comma(project.FileCount))
	fmt.Fprintf(w, "Total project size:\t%.2f MiB (%d bytes)\n",
		float64(project.Totals.Bytes)/bytesPerMiB, project.Totals.Bytes)
	fmt.Fprintf(w, "Total lines of code:\t%s\n", humanize.Comma(project.Totals.Lines))
	fmt.Fprintf(w, "Total characters:\t%s\n", humanize.Comma(project.Totals.Chars))

	if err := w.Flush(); err != nil {
		return err
	}

	if stats.Extensions == nil {
		return nil
	}

	ranked := dirstat.Rank(stats.Extensions.Entries(), spec)
	if len(ranked) == 0 {
		return nil
	}

	fmt.Fprintln(writer)

	for i, e := range ranked {
		pct := Percentage(e.Count, project.FileCount)

		if _, err := fmt.Fprintf(writer, "%-10s %8d files  %s\n",
			extensionLabel(e.Key), e.Count, r.Bar(pct, r.ColorFor(i, len(ranked)))); err != nil {
			return err
		}
	}

	return nil
}
