package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-smartlist/internal/disclosure"
	"github.com/pstuifzand/tui-smartlist/internal/iconset"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/pipeline"
	"github.com/pstuifzand/tui-smartlist/internal/theme"
)

// RenderContext carries what the list view needs besides its rows
type RenderContext struct {
	Config   model.Config
	Registry iconset.Registry

	// Presenting applies Reveal and hides the selection
	Presenting bool
	Reveal     disclosure.State

	ExpandedDetail string
	Editor         *Editor // inline editor of the selected row, if any
	Search         *Search // highlights matches when set
}

// ListView manages the display and navigation of a render sequence
type ListView struct {
	rows           []pipeline.FlatListItem
	selectedIdx    int
	viewportOffset int // first screen line shown
}

// line is one screen line: a row, or one line of its open detail
type line struct {
	row    int
	detail string
	isRow  bool
}

// NewListView creates a new ListView
func NewListView() *ListView {
	return &ListView{}
}

// SetRows replaces the rows, keeping the selection on the same item when
// it is still present
func (lv *ListView) SetRows(rows []pipeline.FlatListItem) {
	selected := lv.SelectedID()
	lv.rows = rows
	if selected != "" && lv.SelectByID(selected) {
		return
	}
	lv.clampSelection()
}

// Rows returns the current rows
func (lv *ListView) Rows() []pipeline.FlatListItem {
	return lv.rows
}

func (lv *ListView) clampSelection() {
	if lv.selectedIdx >= len(lv.rows) {
		lv.selectedIdx = len(lv.rows) - 1
	}
	if lv.selectedIdx < 0 {
		lv.selectedIdx = 0
	}
}

// Selected returns the row under the cursor
func (lv *ListView) Selected() (pipeline.FlatListItem, bool) {
	if lv.selectedIdx < 0 || lv.selectedIdx >= len(lv.rows) {
		return pipeline.FlatListItem{}, false
	}
	return lv.rows[lv.selectedIdx], true
}

// SelectedID returns the id of the selected item, or ""
func (lv *ListView) SelectedID() string {
	if row, ok := lv.Selected(); ok {
		return row.Item.ID
	}
	return ""
}

// SelectByID moves the cursor to the row of id
func (lv *ListView) SelectByID(id string) bool {
	for i, row := range lv.rows {
		if row.Item.ID == id {
			lv.selectedIdx = i
			return true
		}
	}
	return false
}

// SelectNext moves selection down
func (lv *ListView) SelectNext() {
	if lv.selectedIdx < len(lv.rows)-1 {
		lv.selectedIdx++
	}
}

// SelectPrev moves selection up
func (lv *ListView) SelectPrev() {
	if lv.selectedIdx > 0 {
		lv.selectedIdx--
	}
}

// SelectFirst moves to the first row
func (lv *ListView) SelectFirst() {
	lv.selectedIdx = 0
}

// SelectLast moves to the last row
func (lv *ListView) SelectLast() {
	lv.selectedIdx = max(len(lv.rows)-1, 0)
}

// SelectParent moves to the parent of the selected row
func (lv *ListView) SelectParent() bool {
	row, ok := lv.Selected()
	if !ok || row.ParentID == "" {
		return false
	}
	return lv.SelectByID(row.ParentID)
}

// ScrollPageDown moves the selection a page down
func (lv *ListView) ScrollPageDown(pageSize int) {
	lv.selectedIdx = min(lv.selectedIdx+pageSize, len(lv.rows)-1)
	lv.clampSelection()
}

// ScrollPageUp moves the selection a page up
func (lv *ListView) ScrollPageUp(pageSize int) {
	lv.selectedIdx = max(lv.selectedIdx-pageSize, 0)
}

// layout turns rows into screen lines. Unrevealed rows take no space while
// presenting; an open inline detail adds its wrapped lines under its row.
func (lv *ListView) layout(width int, ctx RenderContext) []line {
	var lines []line
	for i, row := range lv.rows {
		if ctx.Presenting && ctx.Reveal.Opacity(row) == disclosure.OpacityHidden {
			continue
		}
		lines = append(lines, line{row: i, isRow: true})

		item := row.Item
		if ctx.Config.DetailMode != model.DetailInline || !item.HasDetail() || ctx.ExpandedDetail != item.ID {
			continue
		}
		indent := detailIndent(row)
		for _, text := range WrapText(item.Detail, width-indent-2) {
			lines = append(lines, line{row: i, detail: text})
		}
	}
	return lines
}

func detailIndent(row pipeline.FlatListItem) int {
	return row.Depth*2 + 4
}

// Render draws the rows into lines [startY, endY)
func (lv *ListView) Render(screen *Screen, startY, endY int, ctx RenderContext) {
	width := screen.GetWidth()
	height := max(endY-startY, 1)
	lines := lv.layout(width, ctx)

	// keep the first line of the selected row in view
	selLine := 0
	for i, l := range lines {
		if l.isRow && l.row == lv.selectedIdx {
			selLine = i
			break
		}
	}
	if selLine < lv.viewportOffset {
		lv.viewportOffset = selLine
	} else if selLine >= lv.viewportOffset+height {
		lv.viewportOffset = selLine - height + 1
	}
	lv.viewportOffset = max(min(lv.viewportOffset, len(lines)-height), 0)

	y := startY
	for i := lv.viewportOffset; i < len(lines) && y < endY; i++ {
		l := lines[i]
		row := lv.rows[l.row]
		if l.isRow {
			lv.drawRow(screen, y, row, !ctx.Presenting && l.row == lv.selectedIdx, ctx)
		} else {
			lv.drawDetail(screen, y, row, l.detail, ctx)
		}
		y++
	}

	bg := screen.BackgroundStyle()
	for ; y < endY; y++ {
		screen.FillLine(0, y, bg)
	}
}

func (lv *ListView) opacity(row pipeline.FlatListItem, ctx RenderContext) float64 {
	if !ctx.Presenting {
		return disclosure.OpacityFull
	}
	return ctx.Reveal.Opacity(row)
}

// rowBackground is the theme background, tinted by status under
// conditional formatting
func rowBackground(screen *Screen, item *model.ListItem, ctx RenderContext) tcell.Color {
	bg := screen.Theme.Colors.Background
	if !ctx.Config.ConditionalFormatting || item.IsHeader {
		return bg
	}
	r, ok := iconset.ResolveRef(ctx.Registry, item.PrimaryIcon)
	if !ok {
		return bg
	}
	if tint, ok := theme.StatusTint(bg, r.Color, ctx.Config.Intensity); ok {
		return tint
	}
	return bg
}

func (lv *ListView) drawRow(screen *Screen, y int, row pipeline.FlatListItem, selected bool, ctx RenderContext) {
	width := screen.GetWidth()
	item := row.Item
	opacity := lv.opacity(row, ctx)

	bg := rowBackground(screen, item, ctx)
	if selected {
		bg = screen.Theme.Colors.ListSelectedBg
	}
	style := func(s tcell.Style) tcell.Style {
		s = s.Background(bg)
		if selected {
			s = s.Bold(true)
		}
		return screen.Fade(s, opacity)
	}

	textStyle := screen.ListStyle()
	switch {
	case item.IsHeader:
		textStyle = screen.ListHeaderStyle()
	case row.Hidden():
		textStyle = screen.ListHiddenStyle()
	case selected:
		textStyle = screen.ListSelectedStyle()
	}
	if ctx.Search != nil && ctx.Search.IsMatch(item.ID) {
		textStyle = textStyle.Underline(true)
	}

	x := screen.DrawString(0, y, PadStringToWidth("", row.Depth*2), style(textStyle))

	arrow := " "
	if row.HasChildren {
		arrow = "▼"
		if row.Collapsed {
			arrow = "▶"
		}
	}
	x = screen.DrawString(x, y, arrow+" ", style(screen.ListArrowStyle()))

	if glyph := iconset.GlyphFor(ctx.Registry, item.PrimaryIcon); glyph != "" {
		r, _ := iconset.ResolveRef(ctx.Registry, item.PrimaryIcon)
		x = screen.DrawText(x, y, glyph+" ", width, style(screen.IconStyle(r.Color)))
	}
	if row.NumberLabel != "" {
		x = screen.DrawText(x, y, row.NumberLabel+" ", width, style(screen.ListNumberStyle()))
	}

	if selected && ctx.Editor != nil && ctx.Editor.IsActive() && ctx.Editor.ItemID() == item.ID && ctx.Editor.Field() == FieldText {
		ctx.Editor.Render(screen, x, y, width-x)
		return
	}

	x = screen.DrawText(x, y, item.Text, width, style(textStyle))

	if glyph := iconset.GlyphFor(ctx.Registry, item.SecondaryIcon); glyph != "" {
		r, _ := iconset.ResolveRef(ctx.Registry, item.SecondaryIcon)
		x = screen.DrawText(x, y, " "+glyph, width, style(screen.IconStyle(r.Color)))
	}
	if ctx.Config.DetailMode == model.DetailInline && item.HasDetail() {
		marker := " ▸"
		if ctx.ExpandedDetail == item.ID {
			marker = " ▾"
		}
		x = screen.DrawText(x, y, marker, width, style(screen.ListArrowStyle()))
	}
	if item.Description != "" {
		x = screen.DrawText(x, y, "  "+item.Description, width, style(screen.ListDescriptionStyle()))
	}

	screen.FillLine(x, y, style(screen.ListStyle()))
}

func (lv *ListView) drawDetail(screen *Screen, y int, row pipeline.FlatListItem, text string, ctx RenderContext) {
	style := screen.Fade(screen.ListDetailStyle(), lv.opacity(row, ctx))
	indent := detailIndent(row)
	screen.FillLine(0, y, screen.BackgroundStyle())
	x := screen.DrawString(indent, y, "│ ", screen.Fade(screen.ListArrowStyle(), lv.opacity(row, ctx)))
	screen.DrawText(x, y, text, screen.GetWidth(), style)
}
