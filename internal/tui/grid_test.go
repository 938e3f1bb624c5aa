package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/fieldline/dispatch/internal/dragdrop"
	"github.com/fieldline/dispatch/internal/ticket"
	"github.com/fieldline/dispatch/internal/timegrid"
	"github.com/fieldline/dispatch/internal/tui/commands"
	"github.com/fieldline/dispatch/internal/tui/theme"
)

// monday is a fixed week start for grid tests.
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func testStyles(t *testing.T) *Styles {
	t.Helper()
	th, err := theme.Load("mocha")
	if err != nil {
		t.Fatal(err)
	}
	return NewStyles(th)
}

// testGrid builds a grid with a 07:00-19:00 window, 60 px/hour and
// 20 px/row (3 rows per hour), matching the default configuration.
func testGrid(t *testing.T, weeks ...commands.WeekWindow) *WeekGrid {
	t.Helper()
	g := NewWeekGrid(timegrid.NewMetrics(7, 19, 60), 20, 5, testStyles(t))
	g.SetSize(100, 40)
	if len(weeks) == 0 {
		weeks = []commands.WeekWindow{{StartDate: monday}}
	}
	g.SetWeeks(weeks)
	return g
}

func testSession(t *testing.T, hours float64) *dragSession {
	t.Helper()
	s, err := startPanelDrag(&ticket.WorkItem{
		ID: "wi-1", Number: "WO-1", Title: "Fix", Customer: "Acme",
		EstimatedHours: hours,
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestDragOverSnapsAndClamps(t *testing.T) {
	tests := []struct {
		name     string
		yLocal   int
		wantHour float64
	}{
		// Row r maps to pixel r*20+10; hour = 7 + px/60.
		{"first row snaps to quarter", 2, 7.25},        // px 10 -> 7.17 -> 7.25
		{"mid-morning", 8, 9.25},                       // px 130 -> 9.17 -> 9.25
		{"snap down", 9, 9.5},                          // px 150 -> 9.5 exactly
		{"above window clamps to start", 0, 7.0},       // negative px
		{"below window clamps to last slot", 100, 18.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGrid(t)
			session := testSession(t, 3)

			g.DragOver(0, tt.yLocal, session)
			if g.preview == nil {
				t.Fatal("preview not set")
			}
			if g.preview.StartHour != tt.wantHour {
				t.Errorf("StartHour = %v, want %v", g.preview.StartHour, tt.wantHour)
			}
			if g.preview.DurationHours != 3 {
				t.Errorf("DurationHours = %v, want 3", g.preview.DurationHours)
			}
			if !g.preview.Date.Equal(monday) {
				t.Errorf("Date = %v, want %v", g.preview.Date, monday)
			}
		})
	}
}

func TestDragOverSessionWithoutEstimateUsesDefault(t *testing.T) {
	g := testGrid(t)
	session := testSession(t, 0) // unusable estimate

	g.DragOver(1, 8, session)
	if g.preview == nil {
		t.Fatal("preview not set")
	}
	if g.preview.DurationHours != timegrid.DefaultDurationHours {
		t.Errorf("DurationHours = %v, want default", g.preview.DurationHours)
	}
	if !g.preview.Date.Equal(monday.AddDate(0, 0, 1)) {
		t.Errorf("Date = %v, want Tuesday", g.preview.Date)
	}
}

func TestDragLeaveClearsPreviewImmediately(t *testing.T) {
	g := testGrid(t)
	g.DragOver(0, 8, testSession(t, 2))
	if g.preview == nil {
		t.Fatal("preview not set")
	}
	g.DragLeave()
	if g.preview != nil {
		t.Error("preview should clear on drag leave")
	}
}

func TestDragOverInvalidDayClearsPreview(t *testing.T) {
	g := testGrid(t)
	g.DragOver(0, 8, testSession(t, 2))
	g.DragOver(9, 8, testSession(t, 2))
	if g.preview != nil {
		t.Error("preview should clear for an invalid column")
	}
}

func TestDropComputesPlacementFromCursor(t *testing.T) {
	g := testGrid(t)
	session := testSession(t, 3)

	// Preview somewhere else first; the drop must use the cursor
	// position at release, not the stale preview.
	g.DragOver(0, 2, session)

	intent, err := g.Drop(2, 8, session.encoded)
	if err != nil {
		t.Fatal(err)
	}
	if intent.StartTime != "09:15" {
		t.Errorf("StartTime = %q, want 09:15", intent.StartTime)
	}
	if !intent.Date.Equal(monday.AddDate(0, 0, 2)) {
		t.Errorf("Date = %v, want Wednesday", intent.Date)
	}
	if intent.Payload.TicketID != "wi-1" {
		t.Errorf("payload ticket = %q", intent.Payload.TicketID)
	}
	if intent.Defaulted {
		t.Error("complete payload should not be marked defaulted")
	}
	if g.preview != nil {
		t.Error("preview should clear after drop")
	}
}

func TestDropRejectsMalformedPayload(t *testing.T) {
	g := testGrid(t)

	if _, err := g.Drop(0, 8, "not json"); !errors.Is(err, dragdrop.ErrMalformedPayload) {
		t.Errorf("err = %v, want ErrMalformedPayload", err)
	}
	if _, err := g.Drop(0, 8, ""); !errors.Is(err, dragdrop.ErrEmptyPayload) {
		t.Errorf("err = %v, want ErrEmptyPayload", err)
	}
}

func TestDropOutsideColumnsIsNotAPayloadError(t *testing.T) {
	g := testGrid(t)
	session := testSession(t, 2)

	_, err := g.Drop(9, 8, session.encoded)
	if !errors.Is(err, errOutsideGrid) {
		t.Errorf("err = %v, want errOutsideGrid", err)
	}
	if errors.Is(err, dragdrop.ErrEmptyPayload) || errors.Is(err, dragdrop.ErrMalformedPayload) {
		t.Error("a release past the columns must not read as a payload problem")
	}
}

func TestDropDefaultsMissingDuration(t *testing.T) {
	g := testGrid(t)

	intent, err := g.Drop(0, 8, `{"ticket_id":"wi-9"}`)
	if err != nil {
		t.Fatal(err)
	}
	if !intent.Defaulted {
		t.Error("missing duration should be flagged as defaulted")
	}
	if intent.Payload.EstimatedHours != timegrid.DefaultDurationHours {
		t.Errorf("EstimatedHours = %v", intent.Payload.EstimatedHours)
	}
}

func TestScheduleAtHitTest(t *testing.T) {
	sched := &ticket.Schedule{
		ID: "s1", TicketID: "wi-1", Date: monday,
		StartTime: "09:00", DurationMinutes: 120,
	}
	g := testGrid(t, commands.WeekWindow{
		StartDate: monday,
		Schedules: []*ticket.Schedule{sched},
	})

	// 09:00-11:00 covers pixels 120-240, i.e. rows 6-11, i.e.
	// yLocal 8-13 after the two header rows.
	if got := g.ScheduleAt(0, 8); got == nil || got.ID != "s1" {
		t.Errorf("ScheduleAt(top of block) = %v", got)
	}
	if got := g.ScheduleAt(0, 13); got == nil || got.ID != "s1" {
		t.Errorf("ScheduleAt(bottom of block) = %v", got)
	}
	if got := g.ScheduleAt(0, 2); got != nil {
		t.Errorf("ScheduleAt(empty slot) = %v, want nil", got)
	}
	if got := g.ScheduleAt(1, 8); got != nil {
		t.Errorf("ScheduleAt(other day) = %v, want nil", got)
	}
}

func TestPaginationRequestsOneWeekAtATime(t *testing.T) {
	g := testGrid(t) // one loaded week, five visible days

	// 7 total days - 5 visible = 2 remaining, under the threshold.
	if !g.ScrollDays(1) {
		t.Fatal("expected a load request near the loaded edge")
	}
	// Request already pending: no duplicate.
	if g.ScrollDays(1) {
		t.Error("duplicate load request while one is pending")
	}

	if got := g.NextWeekStart(); !got.Equal(monday.AddDate(0, 0, 7)) {
		t.Errorf("NextWeekStart = %v", got)
	}

	g.AppendWeek(commands.WeekWindow{StartDate: monday.AddDate(0, 0, 7)})
	if g.WeekCount() != 2 {
		t.Errorf("WeekCount = %d", g.WeekCount())
	}

	// 14 days loaded, offset 2: exactly 7 days remain, at the
	// threshold, so no request yet.
	if g.checkPagination() {
		t.Error("unexpected load request with a full week ahead")
	}
	// One more day: 6 remaining, below the threshold again.
	if !g.ScrollDays(1) {
		t.Error("expected a load request after crossing the threshold")
	}
}

func TestScrollDaysClampsToLoadedSpan(t *testing.T) {
	g := testGrid(t)
	g.ScrollDays(-10)
	if g.dayOffset != 0 {
		t.Errorf("dayOffset = %d, want 0", g.dayOffset)
	}
	g.ScrollDays(100)
	if g.dayOffset != 2 { // 7 days - 5 visible
		t.Errorf("dayOffset = %d, want 2", g.dayOffset)
	}
}

func TestDaysSplitsSchedulesByDate(t *testing.T) {
	mon := &ticket.Schedule{ID: "s1", TicketID: "a", Date: monday, StartTime: "09:00"}
	tue := &ticket.Schedule{ID: "s2", TicketID: "b", Date: monday.AddDate(0, 0, 1), StartTime: "10:00"}
	busy := ticket.NewBusyEvent(monday, 12, 13, "Lunch")

	g := testGrid(t, commands.WeekWindow{
		StartDate: monday,
		Schedules: []*ticket.Schedule{mon, tue},
		Busy:      []*ticket.BusyEvent{busy},
	})

	days := g.Days()
	if len(days) != 5 {
		t.Fatalf("got %d days, want 5", len(days))
	}
	if len(days[0].Schedules) != 1 || days[0].Schedules[0].ID != "s1" {
		t.Errorf("monday schedules = %+v", days[0].Schedules)
	}
	if len(days[0].Busy) != 1 {
		t.Errorf("monday busy = %+v", days[0].Busy)
	}
	if len(days[1].Schedules) != 1 || days[1].Schedules[0].ID != "s2" {
		t.Errorf("tuesday schedules = %+v", days[1].Schedules)
	}
	if len(days[2].Schedules) != 0 {
		t.Errorf("wednesday should be empty")
	}
}

func TestGridDragSessionKeepsResolvedDuration(t *testing.T) {
	item := &ticket.WorkItem{ID: "wi-1", EstimatedHours: 4}
	sched := &ticket.Schedule{
		ID: "s1", TicketID: "wi-1", Date: monday,
		StartTime: "09:00", DurationMinutes: 90,
	}
	span, ok := timegrid.ResolveSpan(sched, item)
	if !ok {
		t.Fatal("span should resolve")
	}

	session, err := startGridDrag(item, sched, span)
	if err != nil {
		t.Fatal(err)
	}
	if session.origin != dragFromGrid {
		t.Error("origin should be the grid")
	}
	if session.durationHours != 1.5 {
		t.Errorf("durationHours = %v, want the block's 1.5, not the estimate", session.durationHours)
	}
	if !session.payload.Reschedule || session.payload.ScheduleID != "s1" {
		t.Errorf("payload = %+v", session.payload)
	}
}
