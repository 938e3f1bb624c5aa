package tui

import (
	"github.com/fieldline/dispatch/internal/dragdrop"
	"github.com/fieldline/dispatch/internal/ticket"
	"github.com/fieldline/dispatch/internal/timegrid"
)

// dragOrigin identifies where a drag started.
type dragOrigin int

const (
	dragFromPanel dragOrigin = iota // unscheduled panel item
	dragFromGrid                    // existing schedule block
)

// dragSession is the context of one in-flight drag. It is created on
// mouse press over a draggable element and passed explicitly to the
// drag-over and drop handlers; no drag state lives anywhere else.
type dragSession struct {
	origin        dragOrigin
	payload       dragdrop.Payload
	encoded       string  // serialized payload, built once at drag start
	durationHours float64 // resolved duration used for the drop preview
	scheduleID    string  // set when origin == dragFromGrid
	moved         bool    // true once the cursor has moved since press
}

// startPanelDrag begins a drag from an unscheduled panel item.
func startPanelDrag(item *ticket.WorkItem) (*dragSession, error) {
	hours := item.EstimatedHours
	if !ticket.FiniteHours(hours) {
		hours = timegrid.DefaultDurationHours
	}

	p := dragdrop.New(item, hours)
	encoded, err := p.Encode()
	if err != nil {
		return nil, err
	}

	return &dragSession{
		origin:        dragFromPanel,
		payload:       p,
		encoded:       encoded,
		durationHours: hours,
	}, nil
}

// startGridDrag begins a drag from an existing schedule block. The
// block keeps its resolved on-grid duration while dragged.
func startGridDrag(item *ticket.WorkItem, s *ticket.Schedule, span timegrid.Span) (*dragSession, error) {
	if item == nil {
		// The block's work item can be missing from the snapshot; the
		// payload still needs the ids to complete a reschedule.
		item = &ticket.WorkItem{ID: s.TicketID, TechnicianID: s.TechnicianID}
	}
	p := dragdrop.NewReschedule(item, s, span.Duration())
	encoded, err := p.Encode()
	if err != nil {
		return nil, err
	}

	return &dragSession{
		origin:        dragFromGrid,
		payload:       p,
		encoded:       encoded,
		durationHours: span.Duration(),
		scheduleID:    s.ID,
	}, nil
}
