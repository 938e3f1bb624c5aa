package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fieldline/dispatch/internal/dragdrop"
	"github.com/fieldline/dispatch/internal/timegrid"
	"github.com/fieldline/dispatch/internal/tui/commands"
)

// hitArea identifies what part of the layout a mouse position covers.
type hitArea int

const (
	hitNone hitArea = iota
	hitPanel
	hitGrid
)

// hit is a resolved mouse position.
type hit struct {
	area   hitArea
	day    int // grid day column index, relative to the visible window
	yLocal int // row inside the grid area (0 = first header row)
	panelY int // row inside the panel content
}

// Update handles all messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case commands.SnapshotMsg:
		m.loading = false
		m.err = nil
		m.technicians = msg.Technicians
		m.grid.SetWeeks(msg.Weeks)
		m.grid.SetItems(msg.Items)
		m.panel.SetSnapshot(msg.Items, msg.Upcoming, msg.Technicians)
		return m, nil

	case commands.WeekAppendedMsg:
		m.grid.AppendWeek(msg.Week)
		return m, nil

	case commands.MutationDoneMsg:
		cmd := m.setStatus("%s %s", msg.Action, msg.TicketID)
		return m, tea.Batch(cmd, m.reload())

	case commands.ErrMsg:
		m.err = msg.Err
		LogError("command", msg.Err)
		return m, m.setStatus("error: %v", msg.Err)

	case commands.StatusMsgCmd:
		return m, m.setStatus("%s", msg.Msg)

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case tea.KeyMsg:
		LogKeyPress(msg)
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if cmd := m.panel.Update(msg); cmd != nil {
		return m, cmd
	}
	return m, nil
}

// resize recomputes the layout for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	contentHeight := height - chromeRows()
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.panel.SetSize(panelWidth, contentHeight)
	m.grid.SetSize(width-panelWidth, contentHeight)
}

// reload refreshes everything that is currently loaded.
func (m *Model) reload() tea.Cmd {
	n := m.grid.WeekCount()
	if n < initialWeeks {
		n = initialWeeks
	}
	return commands.LoadSnapshot(m.repo, m.firstWeekStart, n)
}

// hitTest resolves a terminal position to a layout area.
func (m *Model) hitTest(x, y int) hit {
	if y < contentTop || y >= contentTop+m.panel.height {
		return hit{area: hitNone}
	}
	if x < panelWidth {
		return hit{area: hitPanel, panelY: y - contentTop - 1}
	}
	gx := x - panelWidth - gutterWidth
	if gx < 0 || m.grid.colWidth <= 0 {
		return hit{area: hitNone}
	}
	day := gx / m.grid.colWidth
	if day >= m.grid.visibleDays {
		return hit{area: hitNone}
	}
	return hit{area: hitGrid, day: day, yLocal: y - contentTop}
}

// handleMouse drives the drag state machine: press starts a session,
// motion updates the preview, release completes the drop. Without an
// active session mouse input only scrolls and selects.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	h := m.hitTest(msg.X, msg.Y)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollAt(h, -1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollAt(h, 1)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.startDrag(h)
		}
		return m, nil

	case tea.MouseActionMotion:
		m.dragOver(h)
		return m, nil

	case tea.MouseActionRelease:
		return m, m.finishDrag(h)
	}
	return m, nil
}

// scrollAt applies wheel scrolling to whatever is under the cursor.
func (m *Model) scrollAt(h hit, delta int) {
	switch h.area {
	case hitPanel:
		m.panel.MoveCursor(delta)
	case hitGrid:
		m.grid.ScrollRows(delta)
	}
}

// startDrag begins a drag session from the pressed element, if any.
func (m *Model) startDrag(h hit) {
	m.drag = nil

	switch h.area {
	case hitPanel:
		item := m.panel.ItemAt(h.panelY)
		if item == nil {
			return
		}
		m.panel.SelectByID(item.ID)
		session, err := startPanelDrag(item)
		if err != nil {
			LogError("drag_start", err)
			return
		}
		m.drag = session
		LogDragStart(session)

	case hitGrid:
		s := m.grid.ScheduleAt(h.day, h.yLocal)
		if s == nil {
			m.grid.Select("")
			return
		}
		m.grid.Select(s.ID)
		item := m.grid.itemsByID[s.TicketID]
		span, ok := m.grid.SpanOf(s)
		if !ok {
			return
		}
		session, err := startGridDrag(item, s, span)
		if err != nil {
			LogError("drag_start", err)
			return
		}
		m.drag = session
		LogDragStart(session)
	}
}

// dragOver updates drop feedback while a session is in flight.
func (m *Model) dragOver(h hit) {
	if m.drag == nil {
		return
	}
	m.drag.moved = true

	switch h.area {
	case hitGrid:
		m.panel.SetDropActive(false)
		m.grid.DragOver(h.day, h.yLocal, m.drag)
		LogDragOver(m.grid.preview)
	case hitPanel:
		m.grid.DragLeave()
		m.panel.SetDropActive(m.drag.origin == dragFromGrid)
	default:
		m.grid.DragLeave()
		m.panel.SetDropActive(false)
	}
}

// showScheduleDetails puts the selected block's summary on the status
// line.
func (m *Model) showScheduleDetails() tea.Cmd {
	s := m.grid.Selected()
	if s == nil {
		return nil
	}
	detail := s.StartTime
	if span, ok := m.grid.SpanOf(s); ok {
		detail = s.StartTime + "–" + timegrid.HourToTimeString(span.End)
	}
	if it := m.grid.itemsByID[s.TicketID]; it != nil {
		detail += " " + it.Number + " " + it.Customer + " · " + it.Title
	}
	if s.TechnicianName != "" {
		detail += " — " + s.TechnicianName
	}
	return m.setStatus("%s", detail)
}

// finishDrag completes or abandons the in-flight drag session.
func (m *Model) finishDrag(h hit) tea.Cmd {
	session := m.drag
	m.drag = nil
	m.grid.ClearPreview()
	m.panel.SetDropActive(false)

	if session == nil {
		return nil
	}
	if !session.moved {
		// A plain click: the press already moved the selection; for a
		// grid block, surface its details.
		if session.origin == dragFromGrid {
			return m.showScheduleDetails()
		}
		return nil
	}

	switch h.area {
	case hitGrid:
		intent, err := m.grid.Drop(h.day, h.yLocal, session.encoded)
		if err != nil {
			if errors.Is(err, errOutsideGrid) {
				// Released past the loaded columns: abandon quietly,
				// same as a release over dead space.
				return nil
			}
			if errors.Is(err, dragdrop.ErrMalformedPayload) || errors.Is(err, dragdrop.ErrEmptyPayload) {
				LogPayloadProblem("malformed", err)
			}
			return m.setStatus("drop failed: %v", err)
		}
		if intent.Defaulted {
			LogPayloadProblem("defaulted", nil)
		}
		LogDrop(intent)
		return commands.PlaceTicket(m.repo, intent.Payload, intent.Date, intent.StartTime)

	case hitPanel:
		scheduleID, ticketID, ok, err := m.panel.AcceptDrop(session.encoded)
		if err != nil {
			LogPayloadProblem("malformed", err)
			return m.setStatus("drop failed: %v", err)
		}
		if !ok {
			return nil
		}
		LogUnschedule(scheduleID, ticketID)
		return commands.Unschedule(m.repo, scheduleID, ticketID)
	}
	return nil
}
