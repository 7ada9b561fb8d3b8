package ui

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/tui-smartlist/internal/pipeline"
)

// SegmentWidths divides width columns between the progress segments in
// proportion to their counts. Remainders go to the segments with the
// largest fractional share, so the widths always add up to width.
func SegmentWidths(p pipeline.Progress, width int) []int {
	widths := make([]int, len(p.Segments))
	if p.Total == 0 || width <= 0 {
		return widths
	}

	type rest struct {
		idx  int
		frac int
	}
	used := 0
	var rests []rest
	for i, seg := range p.Segments {
		exact := seg.Count * width
		widths[i] = exact / p.Total
		used += widths[i]
		rests = append(rests, rest{i, exact % p.Total})
	}
	for left := width - used; left > 0; left-- {
		best := 0
		for j := range rests {
			if rests[j].frac > rests[best].frac {
				best = j
			}
		}
		widths[rests[best].idx]++
		rests[best].frac = -1
	}
	return widths
}

// ProgressLegend returns "Done 2/5 · Todo 3/5" style text
func ProgressLegend(p pipeline.Progress) string {
	parts := make([]string, 0, len(p.Segments))
	for _, seg := range p.Segments {
		parts = append(parts, fmt.Sprintf("%s %d/%d", seg.Label, seg.Count, p.Total))
	}
	return strings.Join(parts, " · ")
}

// RenderProgress draws a segmented bar followed by the legend on row y.
// Nothing is drawn for an empty summary.
func RenderProgress(screen *Screen, y int, p pipeline.Progress) {
	if p.Empty() {
		return
	}
	width := screen.GetWidth()
	screen.FillLine(0, y, screen.BackgroundStyle())

	legend := " " + ProgressLegend(p)
	barWidth := width / 3
	if barWidth < 10 {
		barWidth = min(10, width)
	}

	x := 1
	for i, w := range SegmentWidths(p, barWidth) {
		style := screen.IconStyle(p.Segments[i].Color)
		if p.Segments[i].Color == "" {
			style = screen.ProgressEmptyStyle()
		}
		for j := 0; j < w; j++ {
			screen.SetCell(x, y, '█', style)
			x++
		}
	}
	screen.DrawText(x, y, TruncateToWidthWithEllipsis(legend, width-x), width, screen.ListDescriptionStyle())
}
