// Package report renders run progress and the end-of-run summary.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/ukaji3/wardlookup/pkg/wardlookup"
)

// RenderSummary renders the per-country breakdown of a run as a table.
func RenderSummary(summary *wardlookup.Summary) string {
	if summary == nil {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Country", "Postcodes", "Share"})

	for _, country := range sortedCountries(summary.Countries) {
		count := summary.Countries[country]
		tw.AppendRow(table.Row{country, humanize.Comma(int64(count)), share(count, summary.Total)})
	}
	notFound := summary.Failed() - summary.Blank
	if notFound > 0 {
		tw.AppendRow(table.Row{"Not found", humanize.Comma(int64(notFound)), share(notFound, summary.Total)})
	}
	if summary.Blank > 0 {
		tw.AppendRow(table.Row{"Blank", humanize.Comma(int64(summary.Blank)), share(summary.Blank, summary.Total)})
	}
	tw.AppendFooter(table.Row{"Total", humanize.Comma(int64(summary.Total)), summary.Ratio() + " matched"})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
	})

	return tw.Render()
}

// WriteSummary writes the summary table followed by the elapsed time.
func WriteSummary(w io.Writer, summary *wardlookup.Summary) error {
	if summary == nil {
		return nil
	}
	var b strings.Builder
	b.WriteString(RenderSummary(summary))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Wrote %s rows to %s in %s\n",
		humanize.Comma(int64(summary.Total)), summary.OutputPath, summary.Elapsed.Round(10*time.Millisecond))
	_, err := io.WriteString(w, b.String())
	return err
}

func sortedCountries(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func share(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)*100/float64(total))
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
