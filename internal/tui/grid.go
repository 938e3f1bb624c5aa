package tui

import (
	"errors"
	"time"

	"github.com/fieldline/dispatch/internal/dragdrop"
	"github.com/fieldline/dispatch/internal/ticket"
	"github.com/fieldline/dispatch/internal/timegrid"
	"github.com/fieldline/dispatch/internal/tui/commands"
)

// errOutsideGrid marks a drop released outside the day columns. It is
// not a payload problem: the drag is simply abandoned without feedback.
var errOutsideGrid = errors.New("drop outside the day columns")

// loadAheadDays controls horizontal pagination: when fewer than this
// many day columns remain beyond the visible span, one more week is
// requested. Requests are deduplicated so fast paging issues at most
// one load per appended week.
const loadAheadDays = 7

// DropPreview is the ghost block shown while a drag hovers a day column.
type DropPreview struct {
	Date          time.Time
	StartHour     float64
	DurationHours float64
}

// PlacementIntent is the outcome of a completed drop on the grid.
type PlacementIntent struct {
	Payload   dragdrop.Payload
	Date      time.Time
	StartTime string // "HH:MM"
	Defaulted bool   // duration was missing from the payload
}

// dayView is one renderable day column.
type dayView struct {
	Date      time.Time
	Schedules []*ticket.Schedule
	Busy      []*ticket.BusyEvent
}

// WeekGrid owns the scrollable week surface: loaded weeks, the visible
// day window, vertical scroll, the drop preview and block selection.
type WeekGrid struct {
	metrics      timegrid.Metrics
	pixelsPerRow int
	visibleDays  int

	weeks     []commands.WeekWindow
	itemsByID map[string]*ticket.WorkItem

	dayOffset int // index of the first visible day across all loaded weeks
	vscroll   int // rows scrolled inside the time area
	cursorDay int // keyboard cursor, relative to dayOffset

	preview    *DropPreview
	selectedID string // schedule selected by click, "" when none

	loadPending bool // a week load is in flight
	showTech    bool // render technician lines on tall blocks

	width    int
	height   int
	colWidth int

	now   func() time.Time
	theme *Styles
}

// NewWeekGrid creates a grid for the given geometry.
func NewWeekGrid(m timegrid.Metrics, pixelsPerRow, visibleDays int, styles *Styles) *WeekGrid {
	if pixelsPerRow <= 0 {
		pixelsPerRow = 20
	}
	return &WeekGrid{
		metrics:      m,
		pixelsPerRow: pixelsPerRow,
		visibleDays:  visibleDays,
		itemsByID:    make(map[string]*ticket.WorkItem),
		now:          time.Now,
		theme:        styles,
	}
}

// SetShowTech toggles technician lines on tall blocks.
func (g *WeekGrid) SetShowTech(v bool) {
	g.showTech = v
}

// SetWeeks replaces all loaded weeks (initial load or full refresh).
func (g *WeekGrid) SetWeeks(weeks []commands.WeekWindow) {
	g.weeks = weeks
	g.loadPending = false
	if g.dayOffset > g.maxDayOffset() {
		g.dayOffset = g.maxDayOffset()
	}
}

// AppendWeek adds one more loaded week at the end.
func (g *WeekGrid) AppendWeek(w commands.WeekWindow) {
	g.weeks = append(g.weeks, w)
	g.loadPending = false
}

// SetItems replaces the work-item lookup used to resolve block spans.
func (g *WeekGrid) SetItems(items []*ticket.WorkItem) {
	g.itemsByID = make(map[string]*ticket.WorkItem, len(items))
	for _, it := range items {
		g.itemsByID[it.ID] = it
	}
}

// SetSize updates the grid's render area.
func (g *WeekGrid) SetSize(width, height int) {
	g.width = width
	g.height = height
	usable := width - gutterWidth
	if g.visibleDays > 0 && usable > 0 {
		g.colWidth = usable / g.visibleDays
	}
}

func (g *WeekGrid) totalDays() int {
	return len(g.weeks) * 7
}

func (g *WeekGrid) maxDayOffset() int {
	m := g.totalDays() - g.visibleDays
	if m < 0 {
		return 0
	}
	return m
}

// Days returns the currently visible day columns.
func (g *WeekGrid) Days() []dayView {
	days := make([]dayView, 0, g.visibleDays)
	for i := 0; i < g.visibleDays; i++ {
		idx := g.dayOffset + i
		wi, di := idx/7, idx%7
		if wi >= len(g.weeks) {
			break
		}
		w := g.weeks[wi]
		date := w.StartDate.AddDate(0, 0, di)

		var dv dayView
		dv.Date = date
		for _, s := range w.Schedules {
			if s.SameDay(date) {
				dv.Schedules = append(dv.Schedules, s)
			}
		}
		for _, b := range w.Busy {
			if sameDay(b.Date, date) {
				dv.Busy = append(dv.Busy, b)
			}
		}
		days = append(days, dv)
	}
	return days
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ScrollDays moves the visible window by delta days, clamped to the
// loaded span. Returns true when more weeks should be loaded.
func (g *WeekGrid) ScrollDays(delta int) (needMore bool) {
	g.dayOffset += delta
	if g.dayOffset < 0 {
		g.dayOffset = 0
	}
	if g.dayOffset > g.maxDayOffset() {
		g.dayOffset = g.maxDayOffset()
	}
	return g.checkPagination()
}

// checkPagination reports whether another week must be requested, and
// marks the request pending so it is only issued once.
func (g *WeekGrid) checkPagination() bool {
	if g.loadPending {
		return false
	}
	remaining := g.totalDays() - (g.dayOffset + g.visibleDays)
	if remaining < loadAheadDays {
		g.loadPending = true
		return true
	}
	return false
}

// WeekCount returns how many weeks are loaded.
func (g *WeekGrid) WeekCount() int {
	return len(g.weeks)
}

// NextWeekStart returns the start date for the next week to load.
func (g *WeekGrid) NextWeekStart() time.Time {
	if len(g.weeks) == 0 {
		return time.Time{}
	}
	return g.weeks[len(g.weeks)-1].StartDate.AddDate(0, 0, 7)
}

// ScrollRows moves the vertical scroll inside the time area.
func (g *WeekGrid) ScrollRows(delta int) {
	g.vscroll += delta
	max := g.windowRows() - g.timeRows()
	if max < 0 {
		max = 0
	}
	if g.vscroll > max {
		g.vscroll = max
	}
	if g.vscroll < 0 {
		g.vscroll = 0
	}
}

// windowRows is the full height of the scrollable time window in rows.
func (g *WeekGrid) windowRows() int {
	return g.metrics.PixelHeight() / g.pixelsPerRow
}

// timeRows is the number of visible rows below the day headers.
func (g *WeekGrid) timeRows() int {
	rows := g.height - headerRows
	if rows < 0 {
		return 0
	}
	if w := g.windowRows(); rows > w {
		return w
	}
	return rows
}

// hourAt converts a row inside the grid area (0 = first header row) to
// the hour at the center of that cell, before snapping.
func (g *WeekGrid) hourAt(yLocal int) float64 {
	row := yLocal - headerRows + g.vscroll
	px := row*g.pixelsPerRow + g.pixelsPerRow/2
	return g.metrics.PixelToHour(float64(px))
}

// snapHour snaps to the quarter-hour and clamps into the visible range,
// keeping at least one quarter of room before the day end.
func (g *WeekGrid) snapHour(hour float64) float64 {
	h := timegrid.SnapToQuarterHour(hour)
	if h < g.metrics.StartHour {
		h = g.metrics.StartHour
	}
	if limit := g.metrics.EndHour - 0.25; h > limit {
		h = limit
	}
	return h
}

// DragOver updates the drop preview for a drag hovering day column
// dayIdx at local row yLocal.
func (g *WeekGrid) DragOver(dayIdx, yLocal int, session *dragSession) {
	days := g.Days()
	if dayIdx < 0 || dayIdx >= len(days) || session == nil {
		g.ClearPreview()
		return
	}
	g.preview = &DropPreview{
		Date:          days[dayIdx].Date,
		StartHour:     g.snapHour(g.hourAt(yLocal)),
		DurationHours: session.durationHours,
	}
}

// DragLeave clears the preview the moment the cursor leaves the grid.
func (g *WeekGrid) DragLeave() {
	g.ClearPreview()
}

// ClearPreview removes the drop preview.
func (g *WeekGrid) ClearPreview() {
	g.preview = nil
}

// Drop completes a drag on day column dayIdx at local row yLocal. The
// start time is recomputed from the cursor position at drop time, not
// taken from the last preview. The raw payload is decoded here so a
// malformed transfer fails the drop rather than creating a bad entry.
func (g *WeekGrid) Drop(dayIdx, yLocal int, raw string) (PlacementIntent, error) {
	defer g.ClearPreview()

	days := g.Days()
	if dayIdx < 0 || dayIdx >= len(days) {
		return PlacementIntent{}, errOutsideGrid
	}

	p, defaulted, err := dragdrop.Decode(raw)
	if err != nil {
		return PlacementIntent{}, err
	}

	hour := g.snapHour(g.hourAt(yLocal))
	return PlacementIntent{
		Payload:   p,
		Date:      days[dayIdx].Date,
		StartTime: timegrid.HourToTimeString(hour),
		Defaulted: defaulted,
	}, nil
}

// ScheduleAt returns the schedule block rendered under the given local
// position, or nil when the position is empty.
func (g *WeekGrid) ScheduleAt(dayIdx, yLocal int) *ticket.Schedule {
	days := g.Days()
	if dayIdx < 0 || dayIdx >= len(days) {
		return nil
	}
	row := yLocal - headerRows + g.vscroll
	if row < 0 {
		return nil
	}
	px := row * g.pixelsPerRow

	for _, s := range days[dayIdx].Schedules {
		span, ok := timegrid.ResolveSpan(s, g.itemsByID[s.TicketID])
		if !ok {
			continue
		}
		top, height := g.metrics.SpanPixels(span.ClampTo(g.metrics))
		if px >= top && px < top+height {
			return s
		}
	}
	return nil
}

// SpanOf resolves a schedule's on-grid span using the item lookup.
func (g *WeekGrid) SpanOf(s *ticket.Schedule) (timegrid.Span, bool) {
	return timegrid.ResolveSpan(s, g.itemsByID[s.TicketID])
}

// Select marks a schedule as selected (click target for delete/assign).
func (g *WeekGrid) Select(scheduleID string) {
	g.selectedID = scheduleID
}

// Selected returns the selected schedule, or nil.
func (g *WeekGrid) Selected() *ticket.Schedule {
	if g.selectedID == "" {
		return nil
	}
	for _, w := range g.weeks {
		for _, s := range w.Schedules {
			if s.ID == g.selectedID {
				return s
			}
		}
	}
	return nil
}

// CursorDate returns the date under the keyboard cursor.
func (g *WeekGrid) CursorDate() time.Time {
	days := g.Days()
	if len(days) == 0 {
		return time.Time{}
	}
	i := g.cursorDay
	if i < 0 {
		i = 0
	}
	if i >= len(days) {
		i = len(days) - 1
	}
	return days[i].Date
}

// MoveCursor moves the keyboard day cursor, scrolling the window when
// the cursor walks off an edge. Returns true when more weeks should be
// loaded.
func (g *WeekGrid) MoveCursor(delta int) (needMore bool) {
	g.cursorDay += delta
	if g.cursorDay < 0 {
		g.cursorDay = 0
		return g.ScrollDays(delta)
	}
	if g.cursorDay >= g.visibleDays {
		g.cursorDay = g.visibleDays - 1
		return g.ScrollDays(delta)
	}
	return false
}
