package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/fieldline/dispatch/internal/ticket"
	"github.com/fieldline/dispatch/internal/timegrid"
)

// Density thresholds, in vertical pixels of resolved block height.
// Short blocks show only the time range; taller ones add the title
// line and then the technician line.
const (
	titleMinPixels = 40
	techMinPixels  = 60
)

// blockContext carries everything needed to paint one schedule block.
type blockContext struct {
	schedule  *ticket.Schedule
	item      *ticket.WorkItem
	span      timegrid.Span
	heightPx  int
	selected  bool
	dragging  bool // block is the source of the in-flight drag
	showTech  bool
}

// renderBlock paints a schedule block as rows lines of exactly width
// cells each. The first line always shows the time range; title and
// technician lines appear as the block grows tall enough to fit them.
func (g *WeekGrid) renderBlock(bc blockContext, rows, width int) []string {
	st := g.theme.BlockStyle(bc.schedule.Status)
	if bc.selected {
		st = g.theme.BlockSelectedStyle
	}
	if bc.dragging {
		st = g.theme.BlockDraggingStyle
	}

	prio := ticket.PriorityMedium
	customer := ""
	title := ""
	if bc.item != nil {
		prio = bc.item.Priority
		customer = bc.item.Customer
		title = bc.item.Title
	}
	accent := lipgloss.NewStyle().
		Foreground(g.theme.PriorityColor(prio)).
		Background(st.GetBackground()).
		Render("▍")

	textWidth := width - 1
	if textWidth < 1 {
		textWidth = 1
	}
	line := func(text string) string {
		return accent + st.Width(textWidth).Render(ansi.Truncate(text, textWidth, "…"))
	}

	timeLabel := fmt.Sprintf("%s–%s %s",
		bc.schedule.StartTime,
		timegrid.HourToTimeString(bc.span.End),
		customer)

	out := make([]string, 0, rows)
	out = append(out, line(timeLabel))

	if len(out) < rows && bc.heightPx >= titleMinPixels {
		out = append(out, line(title))
	}
	if len(out) < rows && bc.heightPx >= techMinPixels && bc.showTech {
		tech := bc.schedule.TechnicianName
		if tech == "" {
			tech = "unassigned"
		}
		out = append(out, line("⚑ "+tech))
	}
	for len(out) < rows {
		out = append(out, line(""))
	}
	return out
}
