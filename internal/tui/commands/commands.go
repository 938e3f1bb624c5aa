// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fieldline/dispatch/internal/dragdrop"
	"github.com/fieldline/dispatch/internal/ticket"
)

// WeekWindow holds everything the grid needs to render one week.
type WeekWindow struct {
	StartDate time.Time // Monday, midnight
	Schedules []*ticket.Schedule
	Busy      []*ticket.BusyEvent
}

// SnapshotMsg is sent when the initial data load completes.
type SnapshotMsg struct {
	Items       []*ticket.WorkItem
	Technicians []*ticket.Technician
	Upcoming    []*ticket.Schedule
	Weeks       []WeekWindow
}

// WeekAppendedMsg is sent when one more week is loaded during pagination.
type WeekAppendedMsg struct {
	Week WeekWindow
}

// MutationDoneMsg is sent after a successful write to the store.
// Action names the mutation for the status line and debug log.
type MutationDoneMsg struct {
	Action   string
	TicketID string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// loadWeek fetches schedules and busy events for the week starting at start.
func loadWeek(ctx context.Context, repo ticket.Repository, start time.Time) (WeekWindow, error) {
	end := start.AddDate(0, 0, 6)

	scheds, err := repo.ListSchedulesByDateRange(ctx, start, end)
	if err != nil {
		return WeekWindow{}, err
	}
	busy, err := repo.ListBusyEventsByDateRange(ctx, start, end)
	if err != nil {
		return WeekWindow{}, err
	}

	return WeekWindow{StartDate: start, Schedules: scheds, Busy: busy}, nil
}

// LoadSnapshot loads work items, technicians, upcoming schedules and the
// first numWeeks weeks in one shot.
func LoadSnapshot(repo ticket.Repository, firstWeekStart time.Time, numWeeks int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		items, err := repo.ListWorkItems(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}

		techs, err := repo.ListTechnicians(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}

		upcoming, err := repo.ListUpcomingSchedules(ctx, firstWeekStart)
		if err != nil {
			return ErrMsg{Err: err}
		}

		weeks := make([]WeekWindow, 0, numWeeks)
		for i := 0; i < numWeeks; i++ {
			w, err := loadWeek(ctx, repo, firstWeekStart.AddDate(0, 0, 7*i))
			if err != nil {
				return ErrMsg{Err: err}
			}
			weeks = append(weeks, w)
		}

		return SnapshotMsg{Items: items, Technicians: techs, Upcoming: upcoming, Weeks: weeks}
	}
}

// LoadWeek loads one week (used for pagination and refresh after mutations).
func LoadWeek(repo ticket.Repository, weekStart time.Time) tea.Cmd {
	return func() tea.Msg {
		w, err := loadWeek(context.Background(), repo, weekStart)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return WeekAppendedMsg{Week: w}
	}
}

// PlaceTicket creates a schedule for a dropped work item. When the payload
// marks a reschedule of an existing entry, the entry is moved instead.
func PlaceTicket(repo ticket.Repository, p dragdrop.Payload, date time.Time, startTime string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		if p.Reschedule && p.ScheduleID != "" {
			if err := repo.UpdateScheduleTime(ctx, p.ScheduleID, date, startTime); err != nil {
				return ErrMsg{Err: fmt.Errorf("moving schedule: %w", err)}
			}
			return MutationDoneMsg{Action: "rescheduled", TicketID: p.TicketID}
		}

		s, err := ticket.NewSchedule(p.TicketID, date, startTime)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating schedule: %w", err)}
		}
		s.DurationMinutes = p.EstimatedHours * 60
		s.TechnicianID = p.TechnicianID
		s.Address = p.Address
		if err := repo.CreateSchedule(ctx, s); err != nil {
			return ErrMsg{Err: fmt.Errorf("creating schedule: %w", err)}
		}
		return MutationDoneMsg{Action: "scheduled", TicketID: p.TicketID}
	}
}

// Unschedule removes a schedule entry, returning the work item to the
// unscheduled pool.
func Unschedule(repo ticket.Repository, scheduleID, ticketID string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.DeleteSchedule(context.Background(), scheduleID); err != nil {
			return ErrMsg{Err: fmt.Errorf("unscheduling: %w", err)}
		}
		return MutationDoneMsg{Action: "unscheduled", TicketID: ticketID}
	}
}

// DeleteSchedule removes a schedule entry after user confirmation.
func DeleteSchedule(repo ticket.Repository, scheduleID, ticketID string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.DeleteSchedule(context.Background(), scheduleID); err != nil {
			return ErrMsg{Err: fmt.Errorf("deleting schedule: %w", err)}
		}
		return MutationDoneMsg{Action: "deleted", TicketID: ticketID}
	}
}

// AssignTechnician assigns a technician to a work item and, when a
// schedule entry exists, to that entry as well.
func AssignTechnician(repo ticket.Repository, ticketID string, tech *ticket.Technician, scheduleID string) tea.Cmd {
	return func() tea.Msg {
		err := repo.AssignTechnician(context.Background(), ticketID, tech.ID, tech.Name, scheduleID, tech.AvatarColor)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("assigning technician: %w", err)}
		}
		return MutationDoneMsg{Action: "assigned " + tech.Name, TicketID: ticketID}
	}
}

// ClearStatusAfter clears the status message after the given delay.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
