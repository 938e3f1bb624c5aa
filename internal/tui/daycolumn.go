package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fieldline/dispatch/internal/timegrid"
)

// renderGutter paints the hour-label column for the visible time rows.
func (g *WeekGrid) renderGutter() []string {
	rows := make([]string, 0, g.timeRows())
	for r := 0; r < g.timeRows(); r++ {
		abs := r + g.vscroll
		px := abs * g.pixelsPerRow
		label := ""
		if px%g.metrics.HourHeight == 0 {
			hour := g.metrics.PixelToHour(float64(px))
			label = timegrid.HourToTimeString(hour)
		}
		rows = append(rows, g.theme.TimeColumnStyle.Width(gutterWidth).Render(label))
	}
	return rows
}

// renderDay paints one day column: hour gridlines first, then busy
// overlays, schedule blocks, the drop preview and finally the now
// marker. Later layers overwrite earlier ones row by row.
func (g *WeekGrid) renderDay(dv dayView, dragSourceID string) []string {
	total := g.windowRows()
	rows := make([]string, total)

	// Base layer: hour gridlines.
	for r := 0; r < total; r++ {
		px := r * g.pixelsPerRow
		if px%g.metrics.HourHeight == 0 {
			rows[r] = g.theme.GridlineStyle.Render(strings.Repeat("╌", g.colWidth))
		} else {
			rows[r] = g.theme.EmptyCellStyle.Width(g.colWidth).Render("")
		}
	}

	// Busy-time overlays. Not interactive, so no hit region is kept.
	for _, b := range dv.Busy {
		start, end := g.rowRange(b.StartHour, b.EndHour)
		for r := start; r < end && r < total; r++ {
			label := "▒"
			if r == start && b.Subject != "" {
				label = "▒ " + b.Subject
			}
			rows[r] = g.theme.BusyStyle.Width(g.colWidth).Render(clip(label, g.colWidth))
		}
	}

	// Schedule blocks.
	for _, s := range dv.Schedules {
		item := g.itemsByID[s.TicketID]
		span, ok := timegrid.ResolveSpan(s, item)
		if !ok {
			continue
		}
		clamped := span.ClampTo(g.metrics)
		top, heightPx := g.metrics.SpanPixels(clamped)
		startRow := top / g.pixelsPerRow
		blockRows := (heightPx + g.pixelsPerRow - 1) / g.pixelsPerRow
		if blockRows < 1 {
			blockRows = 1
		}

		lines := g.renderBlock(blockContext{
			schedule: s,
			item:     item,
			span:     span,
			heightPx: heightPx,
			selected: s.ID == g.selectedID,
			dragging: s.ID == dragSourceID,
			showTech: g.showTech,
		}, blockRows, g.colWidth)

		for i, line := range lines {
			r := startRow + i
			if r >= 0 && r < total {
				rows[r] = line
			}
		}
	}

	// Drop preview ghost.
	if p := g.preview; p != nil && sameDay(p.Date, dv.Date) {
		start, end := g.rowRange(p.StartHour, p.StartHour+p.DurationHours)
		for r := start; r < end && r < total; r++ {
			label := "░"
			if r == start {
				label = fmt.Sprintf("░ %s (%sh)",
					timegrid.HourToTimeString(p.StartHour), trimHours(p.DurationHours))
			}
			rows[r] = g.theme.PreviewStyle.Width(g.colWidth).Render(clip(label, g.colWidth))
		}
	}

	// Now marker, only on today's column and only inside the window.
	now := g.now()
	if sameDay(now, dv.Date) {
		nowHour := float64(now.Hour()) + float64(now.Minute())/60
		if g.metrics.Contains(nowHour) {
			r := int(g.metrics.HourToPixel(nowHour)) / g.pixelsPerRow
			if r >= 0 && r < total {
				rows[r] = g.theme.NowMarkerStyle.Render(strings.Repeat("━", g.colWidth))
			}
		}
	}

	// Slice out the visible scroll window.
	lo := g.vscroll
	hi := lo + g.timeRows()
	if hi > total {
		hi = total
	}
	if lo > hi {
		lo = hi
	}
	return rows[lo:hi]
}

// rowRange converts an hour span to [startRow, endRow) in window rows.
func (g *WeekGrid) rowRange(startHour, endHour float64) (int, int) {
	top := int(g.metrics.HourToPixel(g.metrics.ClampHour(startHour)))
	bottom := int(g.metrics.HourToPixel(g.metrics.ClampHour(endHour)))
	start := top / g.pixelsPerRow
	end := (bottom + g.pixelsPerRow - 1) / g.pixelsPerRow
	if end <= start {
		end = start + 1
	}
	return start, end
}

// View renders the whole grid: day headers plus the scrolled time area.
func (g *WeekGrid) View(dragSourceID string) string {
	days := g.Days()
	if len(days) == 0 || g.colWidth <= 0 {
		return g.theme.PanelEmptyStyle.Render("loading schedule…")
	}

	now := g.now()
	cols := make([]string, 0, len(days)+1)

	gutterHeader := strings.Repeat(strings.Repeat(" ", gutterWidth)+"\n", headerRows)
	cols = append(cols, gutterHeader+strings.Join(g.renderGutter(), "\n"))

	for i, dv := range days {
		hs := g.theme.DayHeaderStyle
		if sameDay(dv.Date, now) {
			hs = g.theme.DayHeaderTodayStyle
		}
		nameRow := hs.Width(g.colWidth).Render(dv.Date.Format("Mon"))
		dateRow := hs.Width(g.colWidth).Render(dv.Date.Format("01/02"))
		if i == g.cursorDay {
			dateRow = g.theme.DayHeaderTodayStyle.Width(g.colWidth).Render("· " + dv.Date.Format("01/02"))
		}

		body := strings.Join(g.renderDay(dv, dragSourceID), "\n")
		cols = append(cols, nameRow+"\n"+dateRow+"\n"+body)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// clip truncates a plain string to width runes.
func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

// trimHours formats a duration in hours without trailing zeros.
func trimHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
