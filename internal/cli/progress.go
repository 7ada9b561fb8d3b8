package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pstuifzand/tui-smartlist/internal/pipeline"
	"github.com/pstuifzand/tui-smartlist/internal/ui"
	"github.com/spf13/cobra"
)

var emptyBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b4261"))

func newProgressCmd(opts *Options) *cobra.Command {
	var asJSON bool
	var width int
	cmd := &cobra.Command{
		Use:   "progress <file>",
		Short: "Summarize item statuses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lf, err := opts.loadList(args[0])
			if err != nil {
				return err
			}
			p := pipeline.ComputeProgress(lf.doc.Items, lf.config.IconSetID, lf.registry)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			if p.Empty() {
				fmt.Fprintln(out, "No items")
				return nil
			}
			fmt.Fprintln(out, progressBar(p, width))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the segments as JSON")
	cmd.Flags().IntVar(&width, "width", 30, "Width of the bar")
	return cmd
}

// progressBar renders a segmented bar followed by the legend
func progressBar(p pipeline.Progress, width int) string {
	var b strings.Builder
	for i, w := range ui.SegmentWidths(p, width) {
		if w == 0 {
			continue
		}
		style := emptyBarStyle
		if c := p.Segments[i].Color; c != "" {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
		}
		b.WriteString(style.Render(strings.Repeat("█", w)))
	}
	b.WriteString(" ")
	b.WriteString(ui.ProgressLegend(p))
	return b.String()
}
