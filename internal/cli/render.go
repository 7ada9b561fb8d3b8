package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pstuifzand/tui-smartlist/internal/disclosure"
	"github.com/pstuifzand/tui-smartlist/internal/iconset"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/pipeline"
	"github.com/pstuifzand/tui-smartlist/internal/smartlist"
	"github.com/spf13/cobra"
)

var (
	headerStyle      = lipgloss.NewStyle().Bold(true)
	numberStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7"))
	descriptionStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#565f89"))
	detailStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6"))
	dimStyle         = lipgloss.NewStyle().Faint(true)
)

type renderOptions struct {
	present   bool
	step      int
	expandAll bool
	detail    bool
}

func newRenderCmd(opts *Options) *cobra.Command {
	ro := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print the list as it appears on screen",
		Long: `Print the list as it appears on screen.

With --present the list is shown as in present mode at the given step:
hidden items are left out and, in one-by-one-focus mode, items other than
the focused one are dimmed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lf, err := opts.loadList(args[0])
			if err != nil {
				return err
			}
			session := newSession(lf, ro)
			renderSession(cmd.OutOrStdout(), session, ro)
			return nil
		},
	}
	cmd.Flags().BoolVar(&ro.present, "present", false, "Render as in present mode")
	cmd.Flags().IntVar(&ro.step, "step", 0, "Disclosure step to render with --present (0-based)")
	cmd.Flags().BoolVar(&ro.expandAll, "expand-all", false, "Ignore collapse defaults")
	cmd.Flags().BoolVar(&ro.detail, "detail", false, "Print item details")
	return cmd
}

// newSession builds a session positioned at ro.step
func newSession(lf *listFile, ro renderOptions) *smartlist.Session {
	session := smartlist.NewSession(lf.doc.Items, lf.config, lf.registry)
	session.SetEditing(!ro.present)
	if ro.expandAll {
		session.SetAllCollapsed(false)
	}
	for i := 0; i < ro.step; i++ {
		if !session.Next() {
			break
		}
	}
	return session
}

// renderSession writes one line per row, plus detail lines when asked
func renderSession(w io.Writer, session *smartlist.Session, ro renderOptions) {
	cfg := session.Config()
	reg := session.Registry()
	reveal := session.Reveal()

	progress := session.Progress()
	if cfg.ProgressSummary == model.ProgressAbove && !progress.Empty() {
		fmt.Fprintln(w, progressBar(progress, 30))
	}

	for _, row := range session.Render() {
		opacity := reveal.Opacity(row)
		if opacity == disclosure.OpacityHidden {
			continue
		}
		line := renderRow(row, cfg, reg)
		if opacity < disclosure.OpacityFull {
			line = dimStyle.Render(line)
		}
		fmt.Fprintln(w, line)

		if ro.detail && row.Item.HasDetail() && cfg.DetailMode == model.DetailInline {
			indent := strings.Repeat("  ", row.Depth+2)
			for _, l := range strings.Split(row.Item.Detail, "\n") {
				fmt.Fprintln(w, indent+detailStyle.Render("│ "+l))
			}
		}
	}

	if cfg.ProgressSummary == model.ProgressBelow && !progress.Empty() {
		fmt.Fprintln(w, progressBar(progress, 30))
	}
}

func renderRow(row pipeline.FlatListItem, cfg model.Config, reg iconset.Registry) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", row.Depth))
	switch {
	case row.HasChildren && row.Collapsed:
		b.WriteString("▶ ")
	case row.HasChildren:
		b.WriteString("▼ ")
	default:
		b.WriteString("  ")
	}

	item := row.Item
	if glyph := iconset.GlyphFor(reg, item.PrimaryIcon); glyph != "" {
		b.WriteString(iconStyle(reg, item.PrimaryIcon).Render(glyph) + " ")
	}
	if row.NumberLabel != "" {
		b.WriteString(numberStyle.Render(row.NumberLabel) + " ")
	}
	if item.IsHeader {
		b.WriteString(headerStyle.Render(item.Text))
	} else {
		b.WriteString(item.Text)
	}
	if glyph := iconset.GlyphFor(reg, item.SecondaryIcon); glyph != "" {
		b.WriteString(" " + iconStyle(reg, item.SecondaryIcon).Render(glyph))
	}
	if item.Description != "" {
		b.WriteString("  " + descriptionStyle.Render(item.Description))
	}
	return b.String()
}

func iconStyle(reg iconset.Registry, ref *model.IconRef) lipgloss.Style {
	style := lipgloss.NewStyle()
	if r, ok := iconset.ResolveRef(reg, ref); ok && r.Color != "" {
		style = style.Foreground(lipgloss.Color(r.Color))
	}
	return style
}
