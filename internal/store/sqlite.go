// Package store provides SQLite storage implementation.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/fieldline/dispatch/internal/ticket"
)

// SQLite implements ticket.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func (s *SQLite) migrate() error {
	// estimated_hours and duration_minutes are TEXT on purpose: the
	// upstream exports this data sometimes as numbers, sometimes as
	// numeric strings. Normalization happens once, at scan time, so
	// the rest of the program only ever sees typed floats.
	schema := `
		CREATE TABLE IF NOT EXISTS work_items (
			id              TEXT PRIMARY KEY,
			number          TEXT NOT NULL,
			title           TEXT NOT NULL,
			customer        TEXT NOT NULL,
			address         TEXT NOT NULL DEFAULT '',
			category        TEXT NOT NULL DEFAULT '',
			priority        TEXT NOT NULL DEFAULT 'medium',
			estimated_hours TEXT NOT NULL DEFAULT '',
			technician_id   TEXT NOT NULL DEFAULT '',
			technician_name TEXT NOT NULL DEFAULT '',
			created_at      TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS schedules (
			id               TEXT PRIMARY KEY,
			ticket_id        TEXT NOT NULL,
			date             TEXT NOT NULL,
			start_time       TEXT NOT NULL DEFAULT '',
			end_time         TEXT NOT NULL DEFAULT '',
			duration_minutes TEXT NOT NULL DEFAULT '',
			technician_id    TEXT NOT NULL DEFAULT '',
			technician_name  TEXT NOT NULL DEFAULT '',
			avatar_color     TEXT NOT NULL DEFAULT '',
			address          TEXT NOT NULL DEFAULT '',
			notes            TEXT NOT NULL DEFAULT '',
			status           TEXT NOT NULL DEFAULT 'draft',
			reschedule_requested_at TEXT,
			created_at       TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_schedules_date ON schedules(date);
		CREATE INDEX IF NOT EXISTS idx_schedules_ticket ON schedules(ticket_id);

		CREATE TABLE IF NOT EXISTS busy_events (
			id         TEXT PRIMARY KEY,
			date       TEXT NOT NULL,
			start_hour REAL NOT NULL,
			end_hour   REAL NOT NULL,
			subject    TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_busy_events_date ON busy_events(date);

		CREATE TABLE IF NOT EXISTS technicians (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			avatar_color TEXT NOT NULL DEFAULT ''
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateWorkItem adds a new work item.
func (s *SQLite) CreateWorkItem(ctx context.Context, w *ticket.WorkItem) error {
	query := `
		INSERT INTO work_items (
			id, number, title, customer, address, category, priority,
			estimated_hours, technician_id, technician_name, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	hours := ""
	if w.EstimatedHours > 0 {
		hours = fmt.Sprintf("%g", w.EstimatedHours)
	}
	_, err := s.db.ExecContext(ctx, query,
		w.ID, w.Number, w.Title, w.Customer, w.Address, w.Category,
		string(w.Priority), hours, w.TechnicianID, w.TechnicianName,
		w.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work item: %w", err)
	}
	return nil
}

// GetWorkItem retrieves a work item by ID. Returns nil, nil if absent.
func (s *SQLite) GetWorkItem(ctx context.Context, id string) (*ticket.WorkItem, error) {
	query := workItemSelect + ` WHERE id = ?`
	row := s.db.QueryRowContext(ctx, query, id)
	w, err := scanWorkItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying work item: %w", err)
	}
	return w, nil
}

// ListWorkItems returns all open work items ordered by creation time.
func (s *SQLite) ListWorkItems(ctx context.Context) ([]*ticket.WorkItem, error) {
	query := workItemSelect + ` ORDER BY created_at ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying work items: %w", err)
	}
	defer rows.Close()

	var items []*ticket.WorkItem
	for rows.Next() {
		w, err := scanWorkItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning work item: %w", err)
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

const workItemSelect = `
	SELECT id, number, title, customer, address, category, priority,
	       estimated_hours, technician_id, technician_name, created_at
	FROM work_items
`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanWorkItem(sc scanner) (*ticket.WorkItem, error) {
	var (
		w         ticket.WorkItem
		priority  string
		hours     string
		createdAt string
	)
	err := sc.Scan(
		&w.ID, &w.Number, &w.Title, &w.Customer, &w.Address, &w.Category,
		&priority, &hours, &w.TechnicianID, &w.TechnicianName, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	w.Priority = ticket.ParsePriority(priority)
	// Coerce the loosely typed hours column here so render logic never
	// has to deal with numeric strings.
	if v, ok := ticket.ParseHours(hours); ok {
		w.EstimatedHours = v
	}
	w.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &w, nil
}

// CreateSchedule places a work item on the calendar.
func (s *SQLite) CreateSchedule(ctx context.Context, sched *ticket.Schedule) error {
	query := `
		INSERT INTO schedules (
			id, ticket_id, date, start_time, end_time, duration_minutes,
			technician_id, technician_name, avatar_color, address, notes,
			status, reschedule_requested_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	minutes := ""
	if sched.DurationMinutes > 0 {
		minutes = fmt.Sprintf("%g", sched.DurationMinutes)
	}
	var rescheduleAt any
	if sched.RescheduleRequestedAt != nil {
		rescheduleAt = sched.RescheduleRequestedAt.Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx, query,
		sched.ID, sched.TicketID, sched.Date.Format("2006-01-02"),
		sched.StartTime, sched.EndTime, minutes,
		sched.TechnicianID, sched.TechnicianName, sched.AvatarColor,
		sched.Address, sched.Notes, string(sched.Status),
		rescheduleAt, sched.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule: %w", err)
	}
	return nil
}

// ListSchedulesByDateRange returns schedules with dates in [start, end].
func (s *SQLite) ListSchedulesByDateRange(ctx context.Context, start, end time.Time) ([]*ticket.Schedule, error) {
	query := scheduleSelect + ` WHERE date >= ? AND date <= ? ORDER BY date ASC, start_time ASC`
	return s.querySchedules(ctx, query, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// ListUpcomingSchedules returns all schedules on or after the given date.
func (s *SQLite) ListUpcomingSchedules(ctx context.Context, from time.Time) ([]*ticket.Schedule, error) {
	query := scheduleSelect + ` WHERE date >= ? ORDER BY date ASC, start_time ASC`
	return s.querySchedules(ctx, query, from.Format("2006-01-02"))
}

const scheduleSelect = `
	SELECT id, ticket_id, date, start_time, end_time, duration_minutes,
	       technician_id, technician_name, avatar_color, address, notes,
	       status, reschedule_requested_at, created_at
	FROM schedules
`

func (s *SQLite) querySchedules(ctx context.Context, query string, args ...any) ([]*ticket.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying schedules: %w", err)
	}
	defer rows.Close()

	var scheds []*ticket.Schedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning schedule: %w", err)
		}
		scheds = append(scheds, sched)
	}
	return scheds, rows.Err()
}

func scanSchedule(sc scanner) (*ticket.Schedule, error) {
	var (
		sched        ticket.Schedule
		date         string
		minutes      string
		status       string
		rescheduleAt sql.NullString
		createdAt    string
	)
	err := sc.Scan(
		&sched.ID, &sched.TicketID, &date, &sched.StartTime, &sched.EndTime,
		&minutes, &sched.TechnicianID, &sched.TechnicianName, &sched.AvatarColor,
		&sched.Address, &sched.Notes, &status, &rescheduleAt, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	sched.Status = ticket.Status(status)
	if v, ok := ticket.ParseHours(minutes); ok {
		sched.DurationMinutes = v
	}
	sched.Date, err = time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	if rescheduleAt.Valid {
		if t, err := time.Parse(time.RFC3339, rescheduleAt.String); err == nil {
			sched.RescheduleRequestedAt = &t
		}
	}
	sched.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &sched, nil
}

// UpdateScheduleTime moves an existing schedule to a new date and start
// time. The stored end time is cleared so the duration sources resolve
// fresh at the new position.
func (s *SQLite) UpdateScheduleTime(ctx context.Context, id string, date time.Time, startTime string) error {
	query := `
		UPDATE schedules
		SET date = ?, start_time = ?, end_time = '', reschedule_requested_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		date.Format("2006-01-02"), startTime, time.Now().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating schedule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update: %w", err)
	}
	if affected == 0 {
		return ticket.ErrScheduleNotFound
	}
	return nil
}

// DeleteSchedule removes a schedule outright.
func (s *SQLite) DeleteSchedule(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete: %w", err)
	}
	if affected == 0 {
		return ticket.ErrScheduleNotFound
	}
	return nil
}

// AssignTechnician (re)assigns a technician to a work item and,
// optionally, to one of its schedules.
func (s *SQLite) AssignTechnician(ctx context.Context, ticketID, techID, techName, scheduleID, avatarColor string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`UPDATE work_items SET technician_id = ?, technician_name = ? WHERE id = ?`,
		techID, techName, ticketID)
	if err != nil {
		return fmt.Errorf("updating work item assignment: %w", err)
	}

	if scheduleID != "" {
		_, err = tx.ExecContext(ctx,
			`UPDATE schedules SET technician_id = ?, technician_name = ?, avatar_color = ? WHERE id = ?`,
			techID, techName, avatarColor, scheduleID)
		if err != nil {
			return fmt.Errorf("updating schedule assignment: %w", err)
		}
	}

	return tx.Commit()
}

// ListBusyEventsByDateRange returns busy-time events in [start, end].
func (s *SQLite) ListBusyEventsByDateRange(ctx context.Context, start, end time.Time) ([]*ticket.BusyEvent, error) {
	query := `
		SELECT id, date, start_hour, end_hour, subject
		FROM busy_events
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, start_hour ASC
	`
	rows, err := s.db.QueryContext(ctx, query, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying busy events: %w", err)
	}
	defer rows.Close()

	var events []*ticket.BusyEvent
	for rows.Next() {
		var (
			ev   ticket.BusyEvent
			date string
		)
		if err := rows.Scan(&ev.ID, &date, &ev.StartHour, &ev.EndHour, &ev.Subject); err != nil {
			return nil, fmt.Errorf("scanning busy event: %w", err)
		}
		ev.Date, err = time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("parsing date: %w", err)
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}

// AddBusyEvents stores externally sourced busy-time events in a batch.
func (s *SQLite) AddBusyEvents(ctx context.Context, events []*ticket.BusyEvent) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO busy_events (id, date, start_hour, end_hour, subject) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		_, err := stmt.ExecContext(ctx,
			ev.ID, ev.Date.Format("2006-01-02"), ev.StartHour, ev.EndHour, ev.Subject)
		if err != nil {
			return fmt.Errorf("inserting busy event: %w", err)
		}
	}

	return tx.Commit()
}

// ListTechnicians returns the known technicians ordered by name.
func (s *SQLite) ListTechnicians(ctx context.Context) ([]*ticket.Technician, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, avatar_color FROM technicians ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying technicians: %w", err)
	}
	defer rows.Close()

	var techs []*ticket.Technician
	for rows.Next() {
		var t ticket.Technician
		if err := rows.Scan(&t.ID, &t.Name, &t.AvatarColor); err != nil {
			return nil, fmt.Errorf("scanning technician: %w", err)
		}
		techs = append(techs, &t)
	}
	return techs, rows.Err()
}

// UpsertTechnician inserts or updates a technician record.
func (s *SQLite) UpsertTechnician(ctx context.Context, t *ticket.Technician) error {
	query := `
		INSERT INTO technicians (id, name, avatar_color) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, avatar_color = excluded.avatar_color
	`
	if _, err := s.db.ExecContext(ctx, query, t.ID, t.Name, t.AvatarColor); err != nil {
		return fmt.Errorf("upserting technician: %w", err)
	}
	return nil
}
