package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fieldline/dispatch/internal/timegrid"
	"github.com/fieldline/dispatch/internal/tui/commands"
)

// handleKey dispatches key input by interaction mode.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeConfirmDelete:
		return m.handleConfirmDeleteKey(msg)
	case ModeAssignTech:
		return m.handleAssignKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.panel.StopSearch()
		m.mode = ModeNormal
		return m, nil
	}
	return m, m.panel.Update(msg)
}

func (m *Model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		target := m.deleteTarget
		m.deleteTarget = nil
		m.mode = ModeNormal
		if target == nil {
			return m, nil
		}
		return m, commands.DeleteSchedule(m.repo, target.ID, target.TicketID)
	case "n", "esc":
		m.deleteTarget = nil
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}

func (m *Model) handleAssignKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		m.assignTarget = nil
		m.mode = ModeNormal
		return m, nil
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(m.technicians) && m.assignTarget != nil {
			tech := m.technicians[idx]
			scheduleID := ""
			if sel := m.grid.Selected(); sel != nil && sel.TicketID == m.assignTarget.ID {
				scheduleID = sel.ID
			}
			target := m.assignTarget
			m.assignTarget = nil
			m.mode = ModeNormal
			return m, commands.AssignTechnician(m.repo, target.ID, tech, scheduleID)
		}
	}
	return m, nil
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		if m.focus == focusPanel {
			m.focus = focusGrid
		} else {
			m.focus = focusPanel
		}
		return m, nil

	case "/":
		m.mode = ModeSearch
		m.focus = focusPanel
		return m, m.panel.StartSearch()

	case "p":
		m.panel.CyclePriority()
		return m, nil
	case "c":
		m.panel.CycleCategory()
		return m, nil
	case "s":
		m.panel.CycleSort()
		return m, nil
	case "t":
		m.panel.CycleTechnician()
		return m, nil
	case "v":
		m.panel.ToggleScheduled()
		return m, nil

	case "up", "k":
		if m.focus == focusPanel {
			m.panel.MoveCursor(-1)
		} else {
			m.grid.ScrollRows(-1)
		}
		return m, nil
	case "down", "j":
		if m.focus == focusPanel {
			m.panel.MoveCursor(1)
		} else {
			m.grid.ScrollRows(1)
		}
		return m, nil

	case "left", "h":
		return m, m.moveGridCursor(-1)
	case "right", "l":
		return m, m.moveGridCursor(1)

	case "[":
		return m, m.scrollGridDays(-m.grid.visibleDays)
	case "]":
		return m, m.scrollGridDays(m.grid.visibleDays)

	case "y":
		return m, m.copyDaySheet()

	case "d":
		if sel := m.grid.Selected(); sel != nil {
			m.deleteTarget = sel
			m.mode = ModeConfirmDelete
		}
		return m, nil
	case "D":
		if sel := m.grid.Selected(); sel != nil {
			return m, commands.DeleteSchedule(m.repo, sel.ID, sel.TicketID)
		}
		return m, nil

	case "a":
		target := m.panel.SelectedItem()
		if m.focus == focusGrid {
			if sel := m.grid.Selected(); sel != nil {
				target = m.grid.itemsByID[sel.TicketID]
			}
		}
		if target != nil && len(m.technicians) > 0 {
			m.assignTarget = target
			m.mode = ModeAssignTech
		}
		return m, nil

	case "r":
		m.loading = true
		return m, m.reload()

	case "esc":
		m.grid.Select("")
		m.statusMsg = ""
		return m, nil
	}
	return m, nil
}

// moveGridCursor moves the keyboard day cursor, requesting another
// week when navigation nears the loaded edge.
func (m *Model) moveGridCursor(delta int) tea.Cmd {
	m.focus = focusGrid
	if m.grid.MoveCursor(delta) {
		return m.loadMore()
	}
	return nil
}

// scrollGridDays pages the visible window by whole screens.
func (m *Model) scrollGridDays(delta int) tea.Cmd {
	m.focus = focusGrid
	if m.grid.ScrollDays(delta) {
		return m.loadMore()
	}
	return nil
}

func (m *Model) loadMore() tea.Cmd {
	start := m.grid.NextWeekStart()
	if start.IsZero() {
		return nil
	}
	LogLoadWeek(start)
	return commands.LoadWeek(m.repo, start)
}

// copyDaySheet copies a plain-text dispatch sheet for the day under
// the grid cursor to the system clipboard.
func (m *Model) copyDaySheet() tea.Cmd {
	date := m.grid.CursorDate()
	if date.IsZero() {
		return nil
	}

	var scheds []scheduleLine
	for _, dv := range m.grid.Days() {
		if !sameDay(dv.Date, date) {
			continue
		}
		for _, s := range dv.Schedules {
			span, ok := m.grid.SpanOf(s)
			if !ok {
				continue
			}
			line := scheduleLine{start: span.Start, text: s.StartTime + "–" + timegrid.HourToTimeString(span.End)}
			if it := m.grid.itemsByID[s.TicketID]; it != nil {
				line.text += fmt.Sprintf(" %s %s (%s)", it.Number, it.Customer, it.Title)
			}
			if s.TechnicianName != "" {
				line.text += " — " + s.TechnicianName
			}
			scheds = append(scheds, line)
		}
	}

	sort.Slice(scheds, func(i, j int) bool { return scheds[i].start < scheds[j].start })

	var b strings.Builder
	fmt.Fprintf(&b, "Dispatch sheet %s\n", date.Format("Mon 2006-01-02"))
	if len(scheds) == 0 {
		b.WriteString("(no scheduled work)\n")
	}
	for _, l := range scheds {
		b.WriteString(l.text)
		b.WriteString("\n")
	}

	if err := clipboard.WriteAll(b.String()); err != nil {
		return m.setStatus("clipboard: %v", err)
	}
	return m.setStatus("copied day sheet for %s", date.Format("01/02"))
}

type scheduleLine struct {
	start float64
	text  string
}
