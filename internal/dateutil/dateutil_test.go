package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"monday maps to itself",
			time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC), // Monday
			time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			"wednesday maps back to monday",
			time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday maps back six days",
			time.Date(2026, 9, 6, 23, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(tt.in); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-09-07")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate = %v", got)
	}

	if _, err := ParseDate("07/09/2026"); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("err = %v, want ErrInvalidDateFormat", err)
	}

	today, err := ParseDate("")
	if err != nil {
		t.Fatal(err)
	}
	if !today.Equal(TruncateToDay(time.Now())) {
		t.Errorf("empty date should default to today, got %v", today)
	}
}

func TestNewDateRange(t *testing.T) {
	r, err := NewDateRange("2026-09-01", "2026-09-05")
	if err != nil {
		t.Fatal(err)
	}
	if r.Start.Day() != 1 || r.End.Day() != 5 {
		t.Errorf("range = %v..%v", r.Start, r.End)
	}

	// End defaults to start.
	r, err = NewDateRange("2026-09-01", "")
	if err != nil {
		t.Fatal(err)
	}
	if !r.End.Equal(r.Start) {
		t.Errorf("end should default to start, got %v", r.End)
	}

	if _, err := NewDateRange("2026-09-05", "2026-09-01"); !errors.Is(err, ErrEndDateBeforeStart) {
		t.Errorf("err = %v, want ErrEndDateBeforeStart", err)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
	b := time.Date(2026, 9, 7, 22, 0, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Error("times on the same date should match")
	}
	if SameDay(a, b.AddDate(0, 0, 1)) {
		t.Error("different dates should not match")
	}
}

func TestWeekdayShortName(t *testing.T) {
	if got := WeekdayShortName(0); got != "Mon" {
		t.Errorf("WeekdayShortName(0) = %q", got)
	}
	if got := WeekdayShortName(6); got != "Sun" {
		t.Errorf("WeekdayShortName(6) = %q", got)
	}
	if got := WeekdayShortName(7); got != "" {
		t.Errorf("WeekdayShortName(7) = %q, want empty", got)
	}
}
