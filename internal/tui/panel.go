package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldline/dispatch/internal/dragdrop"
	"github.com/fieldline/dispatch/internal/ticket"
)

// Panel rows occupied by chrome above the item list (title, search,
// filters, stats, separator). Item rows are counted from here.
const panelListTop = 5

// itemRows is the height of one work-item entry in the list.
const itemRows = 2

// Panel is the unscheduled work-item panel: searchable, filterable,
// sortable, and a drop target for pulling blocks off the grid.
type Panel struct {
	search   textinput.Model
	filter   ticket.Filter
	sortMode ticket.SortMode

	items     []*ticket.WorkItem  // unscheduled pool
	scheduled []*ticket.Schedule  // deduped upcoming entries
	itemsByID map[string]*ticket.WorkItem

	categories  []string
	technicians []*ticket.Technician

	cursor        int
	scroll        int
	showScheduled bool
	dropActive    bool // a grid-origin drag is hovering the panel
	searching     bool

	width  int
	height int

	theme *Styles
}

// NewPanel creates the work-item panel.
func NewPanel(styles *Styles) *Panel {
	ti := textinput.New()
	ti.Placeholder = "search customer, title, number"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	return &Panel{
		search:    ti,
		sortMode:  ticket.SortOldest,
		itemsByID: make(map[string]*ticket.WorkItem),
		theme:     styles,
	}
}

// SetSnapshot replaces the panel's data. Work items with an upcoming
// schedule entry are excluded from the unscheduled pool; the scheduled
// section shows one entry per ticket (the earliest).
func (p *Panel) SetSnapshot(items []*ticket.WorkItem, upcoming []*ticket.Schedule, techs []*ticket.Technician) {
	scheduledSet := make(map[string]bool, len(upcoming))
	for _, s := range upcoming {
		scheduledSet[s.TicketID] = true
	}

	p.items = p.items[:0]
	p.categories = p.categories[:0]
	p.itemsByID = make(map[string]*ticket.WorkItem, len(items))
	catSet := make(map[string]bool)
	for _, it := range items {
		p.itemsByID[it.ID] = it
		if it.Category != "" && !catSet[it.Category] {
			catSet[it.Category] = true
			p.categories = append(p.categories, it.Category)
		}
		if !scheduledSet[it.ID] {
			p.items = append(p.items, it)
		}
	}

	p.scheduled = ticket.DedupSchedules(upcoming)
	p.technicians = techs
	p.clampCursor()
}

// SetSize updates the panel's render area.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.search.Width = width - 6
}

// Visible returns the filtered, sorted unscheduled items.
func (p *Panel) Visible() []*ticket.WorkItem {
	f := p.filter
	f.Search = p.search.Value()
	return ticket.SortItems(ticket.FilterItems(p.items, f), p.sortMode)
}

// VisibleScheduled returns the sorted scheduled entries.
func (p *Panel) VisibleScheduled() []*ticket.Schedule {
	return ticket.SortSchedules(p.scheduled, p.sortMode, p.itemsByID)
}

// SelectedItem returns the work item under the cursor, or nil.
func (p *Panel) SelectedItem() *ticket.WorkItem {
	visible := p.Visible()
	if p.cursor < 0 || p.cursor >= len(visible) {
		return nil
	}
	return visible[p.cursor]
}

// ItemAt maps a local row inside the panel content to a visible item.
func (p *Panel) ItemAt(yLocal int) *ticket.WorkItem {
	if yLocal < panelListTop {
		return nil
	}
	idx := (yLocal-panelListTop)/itemRows + p.scroll
	visible := p.Visible()
	if idx < 0 || idx >= len(visible) {
		return nil
	}
	return visible[idx]
}

// MoveCursor moves the selection cursor, scrolling as needed.
func (p *Panel) MoveCursor(delta int) {
	p.cursor += delta
	p.clampCursor()

	visibleRows := p.listRows()
	if p.cursor < p.scroll {
		p.scroll = p.cursor
	}
	if p.cursor >= p.scroll+visibleRows {
		p.scroll = p.cursor - visibleRows + 1
	}
}

func (p *Panel) clampCursor() {
	n := len(p.Visible())
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}

// listRows is how many items fit in the list area.
func (p *Panel) listRows() int {
	rows := (p.height - panelListTop - 2) / itemRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

// StartSearch focuses the search input.
func (p *Panel) StartSearch() tea.Cmd {
	p.searching = true
	return p.search.Focus()
}

// StopSearch blurs the search input, keeping the query applied.
func (p *Panel) StopSearch() {
	p.searching = false
	p.search.Blur()
}

// Searching reports whether the search input is focused.
func (p *Panel) Searching() bool { return p.searching }

// Update forwards messages to the search input while it is focused.
func (p *Panel) Update(msg tea.Msg) tea.Cmd {
	if !p.searching {
		return nil
	}
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	p.clampCursor()
	return cmd
}

// CyclePriority advances the priority filter: all → urgent → high →
// medium → low → all.
func (p *Panel) CyclePriority() {
	order := []ticket.Priority{"", ticket.PriorityUrgent, ticket.PriorityHigh, ticket.PriorityMedium, ticket.PriorityLow}
	for i, v := range order {
		if p.filter.Priority == v {
			p.filter.Priority = order[(i+1)%len(order)]
			p.clampCursor()
			return
		}
	}
	p.filter.Priority = ""
}

// CycleCategory advances the category filter through the categories
// present in the data.
func (p *Panel) CycleCategory() {
	if len(p.categories) == 0 {
		return
	}
	if p.filter.Category == "" {
		p.filter.Category = p.categories[0]
		p.clampCursor()
		return
	}
	for i, c := range p.categories {
		if p.filter.Category == c {
			if i+1 < len(p.categories) {
				p.filter.Category = p.categories[i+1]
			} else {
				p.filter.Category = ""
			}
			p.clampCursor()
			return
		}
	}
	p.filter.Category = ""
}

// CycleTechnician advances the technician filter through the known
// technicians, then back to all.
func (p *Panel) CycleTechnician() {
	if len(p.technicians) == 0 {
		return
	}
	if p.filter.TechnicianID == "" {
		p.filter.TechnicianID = p.technicians[0].ID
		p.clampCursor()
		return
	}
	for i, t := range p.technicians {
		if p.filter.TechnicianID == t.ID {
			if i+1 < len(p.technicians) {
				p.filter.TechnicianID = p.technicians[i+1].ID
			} else {
				p.filter.TechnicianID = ""
			}
			p.clampCursor()
			return
		}
	}
	p.filter.TechnicianID = ""
}

func (p *Panel) technicianName(id string) string {
	for _, t := range p.technicians {
		if t.ID == id {
			return t.Name
		}
	}
	return id
}

// SelectByID moves the cursor to the visible item with the given id.
func (p *Panel) SelectByID(id string) {
	for i, w := range p.Visible() {
		if w.ID == id {
			p.cursor = i
			return
		}
	}
}

// CycleSort advances the sort mode.
func (p *Panel) CycleSort() {
	p.sortMode = ticket.NextSortMode(p.sortMode)
}

// ToggleScheduled flips the scheduled section on and off.
func (p *Panel) ToggleScheduled() {
	p.showScheduled = !p.showScheduled
}

// SetDropActive marks the panel as the current drop target.
func (p *Panel) SetDropActive(v bool) {
	p.dropActive = v
}

// AcceptDrop validates a payload dropped on the panel. Only drags that
// originate from an existing schedule entry are accepted; a fresh
// panel item dropped back on the panel is a no-op, not an error.
func (p *Panel) AcceptDrop(raw string) (scheduleID, ticketID string, ok bool, err error) {
	payload, _, err := dragdrop.Decode(raw)
	if err != nil {
		return "", "", false, err
	}
	if !payload.Reschedule || payload.ScheduleID == "" {
		return "", "", false, nil
	}
	return payload.ScheduleID, payload.TicketID, true, nil
}

// View renders the panel at its configured size.
func (p *Panel) View() string {
	visible := p.Visible()

	var b strings.Builder
	innerWidth := p.width - 2

	title := fmt.Sprintf("Work Orders (%d)", len(visible))
	b.WriteString(p.theme.PanelTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(p.search.View())
	b.WriteString("\n")
	b.WriteString(p.theme.PanelFilterStyle.Render(p.filterLine()))
	b.WriteString("\n")
	b.WriteString(p.theme.PanelStatsStyle.Render(p.statsLine(visible)))
	b.WriteString("\n\n")

	switch {
	case len(p.items) == 0:
		b.WriteString(p.theme.PanelEmptyStyle.Render("No open work orders."))
	case len(visible) == 0:
		b.WriteString(p.theme.PanelEmptyStyle.Render("No work orders match the current filters."))
	default:
		end := p.scroll + p.listRows()
		if end > len(visible) {
			end = len(visible)
		}
		for i := p.scroll; i < end; i++ {
			b.WriteString(p.renderItem(visible[i], i == p.cursor, innerWidth))
			b.WriteString("\n")
		}
	}

	if p.showScheduled && len(p.scheduled) > 0 {
		b.WriteString("\n")
		b.WriteString(p.theme.PanelSectionStyle.Render("Scheduled"))
		b.WriteString("\n")
		for _, s := range p.VisibleScheduled() {
			b.WriteString(p.renderScheduled(s, innerWidth))
			b.WriteString("\n")
		}
	}

	if p.dropActive {
		b.WriteString("\n")
		b.WriteString(p.theme.PanelDropHintStyle.Render("release to unschedule"))
	}

	border := p.theme.PanelBorderStyle
	if p.dropActive {
		border = p.theme.PanelDropStyle
	}
	return border.Width(p.width - 2).Height(p.height - 2).Render(b.String())
}

// filterLine summarizes the active filters.
func (p *Panel) filterLine() string {
	part := func(label, v string) string {
		if v == "" {
			return label + ":all"
		}
		return label + ":" + v
	}
	parts := []string{
		part("prio", string(p.filter.Priority)),
		part("cat", p.filter.Category),
		"sort:" + string(p.sortMode),
	}
	if p.filter.TechnicianID != "" {
		parts = append(parts, "tech:"+p.technicianName(p.filter.TechnicianID))
	}
	return strings.Join(parts, " ")
}

// statsLine shows the count and summed estimated hours of the visible
// items. Items without an estimate count as the default duration.
func (p *Panel) statsLine(visible []*ticket.WorkItem) string {
	return fmt.Sprintf("%d open · %sh estimated",
		len(visible), trimHours(ticket.TotalEstimatedHours(visible)))
}

// renderItem paints one two-row list entry.
func (p *Panel) renderItem(w *ticket.WorkItem, selected bool, width int) string {
	dot := lipgloss.NewStyle().Foreground(p.theme.PriorityColor(w.Priority)).Render("●")

	hours := "—"
	if ticket.FiniteHours(w.EstimatedHours) {
		hours = trimHours(w.EstimatedHours) + "h"
	}

	line1 := fmt.Sprintf("%s %s %s", dot, w.Number, clip(w.Customer, width-len(w.Number)-5))
	line2 := "  " + clip(fmt.Sprintf("%s · %s", w.Title, hours), width-2)

	st := p.theme.PanelItemStyle
	metaSt := p.theme.PanelItemMetaStyle
	if selected {
		st = p.theme.PanelSelectedStyle
		metaSt = p.theme.PanelSelectedStyle
	}
	return st.Width(width).Render(line1) + "\n" + metaSt.Width(width).Render(line2)
}

// renderScheduled paints one scheduled-section row.
func (p *Panel) renderScheduled(s *ticket.Schedule, width int) string {
	name := s.TicketID
	if it := p.itemsByID[s.TicketID]; it != nil {
		name = it.Customer
	}
	line := fmt.Sprintf("%s %s %s", s.Date.Format("01/02"), s.StartTime, name)
	return p.theme.PanelScheduledStyle.Width(width).Render(clip(line, width))
}
