package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/MimeLyc/yt-audio-splitter/internal/splitter"
	"github.com/MimeLyc/yt-audio-splitter/internal/tracklist"
)

// RenderSummary renders the final per-segment summary. It is produced
// whenever planning succeeded, partial failure included.
func RenderSummary(report *splitter.BatchReport) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Track", "Interval", "Length", "Outcome"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	for _, r := range report.Results {
		outcome := r.Path
		if r.Err != nil {
			outcome = "failed: " + r.Err.Error()
		}
		interval := fmt.Sprintf("%s - %s",
			tracklist.FormatOffset(r.Segment.Start),
			tracklist.FormatOffset(r.Segment.End))
		tw.AppendRow(table.Row{
			r.Segment.Index + 1,
			r.Segment.Name,
			interval,
			r.Segment.Duration().Round(time.Second).String(),
			outcome,
		})
	}

	var b strings.Builder
	b.WriteString(tw.Render())
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d/%d segments exported", report.Succeeded(), len(report.Results))
	if report.OriginalPath != "" {
		fmt.Fprintf(&b, "; original kept at %s", report.OriginalPath)
	}
	if report.OriginalErr != nil {
		fmt.Fprintf(&b, "; keeping original failed: %v", report.OriginalErr)
	}
	b.WriteString("\n")
	return b.String()
}
