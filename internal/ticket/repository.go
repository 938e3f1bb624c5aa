package ticket

import (
	"context"
	"time"
)

// Repository defines the storage interface for work items, schedules
// and busy-time events. The grid core never touches it directly; the
// application layer loads snapshots from it and persists the intents
// the grid emits.
type Repository interface {
	// CreateWorkItem adds a new work item.
	CreateWorkItem(ctx context.Context, w *WorkItem) error

	// GetWorkItem retrieves a work item by ID. Returns nil, nil if absent.
	GetWorkItem(ctx context.Context, id string) (*WorkItem, error)

	// ListWorkItems returns all open work items ordered by creation time.
	ListWorkItems(ctx context.Context) ([]*WorkItem, error)

	// ListSchedulesByDateRange returns schedules with dates in [start, end].
	ListSchedulesByDateRange(ctx context.Context, start, end time.Time) ([]*Schedule, error)

	// ListUpcomingSchedules returns all schedules on or after the given date.
	ListUpcomingSchedules(ctx context.Context, from time.Time) ([]*Schedule, error)

	// CreateSchedule places a work item on the calendar.
	CreateSchedule(ctx context.Context, s *Schedule) error

	// UpdateScheduleTime moves an existing schedule to a new date and
	// start time, clearing any stored end time so the duration sources
	// re-resolve. Returns ErrScheduleNotFound if the id is unknown.
	UpdateScheduleTime(ctx context.Context, id string, date time.Time, startTime string) error

	// DeleteSchedule removes a schedule outright, returning its work
	// item to the unscheduled pool. Returns ErrScheduleNotFound if the
	// id is unknown.
	DeleteSchedule(ctx context.Context, id string) error

	// AssignTechnician (re)assigns a technician to a work item and,
	// when scheduleID is non-empty, to that schedule as well.
	AssignTechnician(ctx context.Context, ticketID, techID, techName, scheduleID, avatarColor string) error

	// ListBusyEventsByDateRange returns busy-time events in [start, end].
	ListBusyEventsByDateRange(ctx context.Context, start, end time.Time) ([]*BusyEvent, error)

	// AddBusyEvents stores externally sourced busy-time events.
	AddBusyEvents(ctx context.Context, events []*BusyEvent) error

	// ListTechnicians returns the known technicians.
	ListTechnicians(ctx context.Context) ([]*Technician, error)

	// UpsertTechnician registers a technician, updating name and color
	// in place when the id already exists.
	UpsertTechnician(ctx context.Context, t *Technician) error

	// Close releases any resources held by the repository.
	Close() error
}
