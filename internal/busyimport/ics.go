// Package busyimport flattens an exported ICS calendar into busy-time
// events. Busy time is externally sourced context only: the grid
// renders it but never lets it interact, so the importer keeps just
// date, start/end hour and subject per occurrence.
package busyimport

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/fieldline/dispatch/internal/dateutil"
	"github.com/fieldline/dispatch/internal/ticket"
)

// Import errors.
var (
	ErrEmptyCalendar = errors.New("calendar contains no events")
)

// ParseFile reads an ICS file and returns its events as busy-time
// rows. Recurring events are taken as-written (the exporting calendar
// is expected to have expanded occurrences); events that span multiple
// days or cannot be timed are skipped rather than failing the import.
func ParseFile(path string) ([]*ticket.BusyEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calendar file: %w", err)
	}
	return Parse(data)
}

// Parse converts an ICS payload into busy-time events.
func Parse(data []byte) ([]*ticket.BusyEvent, error) {
	if len(data) == 0 {
		return nil, ErrEmptyCalendar
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var events []*ticket.BusyEvent
	for _, ve := range cal.Events() {
		ev, ok := flattenEvent(ve)
		if !ok {
			continue
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		return nil, ErrEmptyCalendar
	}
	return events, nil
}

// flattenEvent converts one VEVENT into a busy-time row. Returns false
// for all-day events, untimed events and multi-day spans.
func flattenEvent(ve *ical.VEvent) (*ticket.BusyEvent, bool) {
	start, err := ve.GetStartAt()
	if err != nil || start.IsZero() {
		return nil, false
	}
	end, err := ve.GetEndAt()
	if err != nil || end.IsZero() || !end.After(start) {
		return nil, false
	}

	start = start.Local()
	end = end.Local()

	// All-day events carry a DATE-valued DTSTART; they have no useful
	// position inside an hour grid.
	if isAllDay(ve) {
		return nil, false
	}
	if !dateutil.SameDay(start, end) {
		return nil, false
	}

	subject := ""
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		subject = p.Value
	}

	return ticket.NewBusyEvent(
		start,
		float64(start.Hour())+float64(start.Minute())/60,
		float64(end.Hour())+float64(end.Minute())/60,
		subject,
	), true
}

func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}

// WithinRange filters events to those falling in [start, end].
func WithinRange(events []*ticket.BusyEvent, start, end time.Time) []*ticket.BusyEvent {
	start = dateutil.TruncateToDay(start)
	end = dateutil.TruncateToDay(end)
	var result []*ticket.BusyEvent
	for _, ev := range events {
		if !ev.Date.Before(start) && !ev.Date.After(end) {
			result = append(result, ev)
		}
	}
	return result
}
