package ticket

import (
	"time"

	"github.com/google/uuid"
)

// Status is the workflow status of a schedule. The grid consumes it
// opaquely and uses it only for color selection.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Schedule is a placed appointment binding a work item to a date,
// time and technician. StartTime and EndTime are "HH:MM" strings as
// delivered by the data service; EndTime and DurationMinutes are both
// optional and independently sourced, which is why span resolution is
// a layered fallback (see timegrid.ResolveSpan).
type Schedule struct {
	ID              string
	TicketID        string
	Date            time.Time // calendar date, midnight in local time
	StartTime       string    // "HH:MM"; empty means the schedule cannot be positioned
	EndTime         string    // "HH:MM", optional
	DurationMinutes float64   // 0 means unset
	TechnicianID    string
	TechnicianName  string
	AvatarColor     string
	Address         string
	Notes           string // pre-visit notes
	Status          Status
	RescheduleRequestedAt *time.Time
	CreatedAt             time.Time
}

// NewSchedule creates a schedule for a work item with a fresh ID.
func NewSchedule(ticketID string, date time.Time, startTime string) (*Schedule, error) {
	if err := ValidateClock(startTime); err != nil {
		return nil, err
	}
	return &Schedule{
		ID:        uuid.NewString(),
		TicketID:  ticketID,
		Date:      truncateToDay(date),
		StartTime: startTime,
		Status:    StatusDraft,
		CreatedAt: time.Now(),
	}, nil
}

// ValidateClock checks that s is a well-formed "HH:MM" time string.
func ValidateClock(s string) error {
	if len(s) != 5 || s[2] != ':' {
		return ErrInvalidTimeFormat
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

// SameDay reports whether the schedule falls on the given date.
func (s *Schedule) SameDay(date time.Time) bool {
	return s.Date.Equal(truncateToDay(date))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BusyEvent is an externally sourced calendar block (e.g. a
// technician's personal appointment). Rendered for context only,
// never draggable or droppable.
type BusyEvent struct {
	ID        string
	Date      time.Time
	StartHour float64
	EndHour   float64
	Subject   string
}

// NewBusyEvent creates a busy event with a fresh ID.
func NewBusyEvent(date time.Time, startHour, endHour float64, subject string) *BusyEvent {
	return &BusyEvent{
		ID:        uuid.NewString(),
		Date:      truncateToDay(date),
		StartHour: startHour,
		EndHour:   endHour,
		Subject:   subject,
	}
}
