// Package dragdrop defines the serialized transfer payload carried
// from drag start to drop. It is the sole channel between drag source
// and drop target: lossless enough that a drop handler never needs to
// re-fetch the work item to act.
package dragdrop

import (
	"encoding/json"
	"errors"

	"github.com/fieldline/dispatch/internal/ticket"
	"github.com/fieldline/dispatch/internal/timegrid"
)

// Payload errors.
var (
	ErrEmptyPayload     = errors.New("empty drag payload")
	ErrMalformedPayload = errors.New("malformed drag payload")
)

// Payload is the drag transfer record. The reschedule fields are set
// only when the drag originated from an existing schedule block.
type Payload struct {
	TicketID       string  `json:"ticket_id"`
	Number         string  `json:"number"`
	Title          string  `json:"title"`
	Customer       string  `json:"customer_name"`
	Address        string  `json:"address"`
	EstimatedHours float64 `json:"estimated_hours"`
	Priority       string  `json:"priority"`
	Category       string  `json:"category"`
	TechnicianID   string  `json:"technician_id"`

	Reschedule    bool   `json:"reschedule,omitempty"`
	ScheduleID    string `json:"schedule_id,omitempty"`
	OriginalDate  string `json:"original_date,omitempty"`  // YYYY-MM-DD
	OriginalStart string `json:"original_start,omitempty"` // HH:MM
}

// New builds a payload from a work item with the duration already
// resolved. Non-finite durations are replaced by the default so the
// payload invariant (finite positive duration) always holds.
func New(w *ticket.WorkItem, durationHours float64) Payload {
	if !ticket.FiniteHours(durationHours) {
		durationHours = timegrid.DefaultDurationHours
	}
	return Payload{
		TicketID:       w.ID,
		Number:         w.Number,
		Title:          w.Title,
		Customer:       w.Customer,
		Address:        w.Address,
		EstimatedHours: durationHours,
		Priority:       string(w.Priority),
		Category:       w.Category,
		TechnicianID:   w.TechnicianID,
	}
}

// NewReschedule builds a payload for dragging an existing schedule
// block, carrying the originating schedule id and original placement.
func NewReschedule(w *ticket.WorkItem, s *ticket.Schedule, durationHours float64) Payload {
	p := New(w, durationHours)
	p.Reschedule = true
	p.ScheduleID = s.ID
	p.OriginalDate = s.Date.Format("2006-01-02")
	p.OriginalStart = s.StartTime
	return p
}

// Encode serializes the payload for transfer.
func (p Payload) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses a transfer payload. It distinguishes two failure
// classes so they stay separable in telemetry:
//
//   - non-JSON or missing ticket id: ErrMalformedPayload, drop ignored
//   - valid JSON with an unusable estimated_hours: accepted, with the
//     duration defaulted and defaulted=true
func Decode(raw string) (p Payload, defaulted bool, err error) {
	if raw == "" {
		return Payload{}, false, ErrEmptyPayload
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Payload{}, false, ErrMalformedPayload
	}
	if p.TicketID == "" {
		return Payload{}, false, ErrMalformedPayload
	}
	if !ticket.FiniteHours(p.EstimatedHours) {
		p.EstimatedHours = timegrid.DefaultDurationHours
		defaulted = true
	}
	return p, defaulted, nil
}

// WorkItem reconstructs a work-item view from the payload so drop
// handlers can act without a re-fetch.
func (p Payload) WorkItem() *ticket.WorkItem {
	return &ticket.WorkItem{
		ID:             p.TicketID,
		Number:         p.Number,
		Title:          p.Title,
		Customer:       p.Customer,
		Address:        p.Address,
		Category:       p.Category,
		Priority:       ticket.ParsePriority(p.Priority),
		EstimatedHours: p.EstimatedHours,
		TechnicianID:   p.TechnicianID,
	}
}
