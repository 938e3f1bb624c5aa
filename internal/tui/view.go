package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// contentTop is the first row of the panel/grid area (below the title).
const contentTop = 1

// chromeRows is how many rows the title and footer consume.
func chromeRows() int {
	return contentTop + 2 // title + status line + help line
}

// View renders the full application.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading…"
	}

	weekOf := m.firstWeekStart
	if days := m.grid.Days(); len(days) > 0 {
		weekOf = days[0].Date
	}
	title := m.styles.TitleStyle.Render("dispatch") +
		m.styles.FooterStyle.Render("  week of "+weekOf.Format("Jan 2, 2006"))

	var dragSourceID string
	if m.drag != nil {
		dragSourceID = m.drag.scheduleID
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.panel.View(), m.grid.View(dragSourceID))

	return strings.Join([]string{title, body, m.statusLine(), m.helpLine()}, "\n")
}

// statusLine shows transient status or error text, and modal prompts.
func (m *Model) statusLine() string {
	switch m.mode {
	case ModeConfirmDelete:
		name := ""
		if m.deleteTarget != nil {
			if it := m.grid.itemsByID[m.deleteTarget.TicketID]; it != nil {
				name = " for " + it.Customer
			}
		}
		return m.styles.ErrorStyle.Render(fmt.Sprintf("Delete schedule%s? (y/n)", name))

	case ModeAssignTech:
		var opts []string
		for i, t := range m.technicians {
			if i >= 9 {
				break
			}
			opts = append(opts, fmt.Sprintf("%d) %s", i+1, t.Name))
		}
		return m.styles.StatusStyle.Render("Assign: " + strings.Join(opts, "  ") + "  (esc)")
	}

	if m.loading {
		return m.styles.FooterStyle.Render("loading…")
	}
	if m.statusMsg != "" {
		if m.err != nil {
			return m.styles.ErrorStyle.Render(m.statusMsg)
		}
		return m.styles.StatusStyle.Render(m.statusMsg)
	}
	return ""
}

// helpLine shows the key hints for the current mode.
func (m *Model) helpLine() string {
	switch m.mode {
	case ModeSearch:
		return m.styles.FooterStyle.Render("enter/esc done")
	case ModeConfirmDelete, ModeAssignTech:
		return ""
	}
	return m.styles.FooterStyle.Render(
		"drag to schedule · / search · p/c/t filters · s sort · v scheduled · ←→ days · [ ] page · y copy · d delete · a assign · q quit")
}
