package busyimport

import (
	"errors"
	"testing"
	"time"
)

const sampleICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:timed-1
DTSTART:20260907T090000Z
DTEND:20260907T103000Z
SUMMARY:Standup
END:VEVENT
BEGIN:VEVENT
UID:allday-1
DTSTART;VALUE=DATE:20260908
DTEND;VALUE=DATE:20260909
SUMMARY:Public holiday
END:VEVENT
BEGIN:VEVENT
UID:multiday-1
DTSTART:20260909T230000Z
DTEND:20260910T010000Z
SUMMARY:Overnight maintenance
END:VEVENT
BEGIN:VEVENT
UID:timed-2
DTSTART:20260910T130000Z
DTEND:20260910T140000Z
SUMMARY:Dentist
END:VEVENT
END:VCALENDAR
`

func TestParseKeepsOnlySingleDayTimedEvents(t *testing.T) {
	events, err := Parse([]byte(sampleICS))
	if err != nil {
		t.Fatal(err)
	}

	// The all-day event is dropped; the overnight event is dropped
	// unless the local timezone happens to fold it into one day.
	if len(events) < 1 || len(events) > 3 {
		t.Fatalf("got %d events", len(events))
	}

	var found bool
	for _, ev := range events {
		if ev.Subject == "Standup" {
			found = true
			if ev.EndHour-ev.StartHour != 1.5 {
				t.Errorf("Standup span = %v..%v, want 1.5h", ev.StartHour, ev.EndHour)
			}
		}
		if ev.Subject == "Public holiday" {
			t.Error("all-day event should be skipped")
		}
	}
	if !found {
		t.Error("timed event missing from import")
	}
}

func TestParseEmptyInput(t *testing.T) {
	if _, err := Parse(nil); !errors.Is(err, ErrEmptyCalendar) {
		t.Errorf("err = %v, want ErrEmptyCalendar", err)
	}
}

func TestParseCalendarWithoutEvents(t *testing.T) {
	empty := "BEGIN:VCALENDAR\nVERSION:2.0\nPRODID:-//test//EN\nEND:VCALENDAR\n"
	if _, err := Parse([]byte(empty)); !errors.Is(err, ErrEmptyCalendar) {
		t.Errorf("err = %v, want ErrEmptyCalendar", err)
	}
}

func TestWithinRange(t *testing.T) {
	events, err := Parse([]byte(sampleICS))
	if err != nil {
		t.Fatal(err)
	}

	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.Local)
	got := WithinRange(events, day, day)
	for _, ev := range got {
		if !ev.Date.Equal(day) {
			t.Errorf("event outside range: %v", ev.Date)
		}
	}
}
