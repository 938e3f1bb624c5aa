package ticket

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"urgent", PriorityUrgent},
		{"URGENT", PriorityUrgent},
		{"high", PriorityHigh},
		{"medium", PriorityMedium},
		{"normal", PriorityMedium}, // upstream synonym
		{"low", PriorityLow},
		{"", PriorityMedium},
		{"whatever", PriorityMedium},
	}
	for _, tt := range tests {
		if got := ParsePriority(tt.in); got != tt.want {
			t.Errorf("ParsePriority(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	if !(PriorityUrgent.Rank() < PriorityHigh.Rank() &&
		PriorityHigh.Rank() < PriorityMedium.Rank() &&
		PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Error("priority ranks are not strictly ordered")
	}
	if Priority("bogus").Rank() != PriorityMedium.Rank() {
		t.Error("unknown priority should rank as medium")
	}
}

func TestNewWorkItemValidation(t *testing.T) {
	if _, err := NewWorkItem("WO-1", "", "Acme"); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("empty title err = %v", err)
	}
	if _, err := NewWorkItem("WO-1", "Fix", ""); !errors.Is(err, ErrEmptyCustomer) {
		t.Errorf("empty customer err = %v", err)
	}

	w, err := NewWorkItem("WO-1", "Fix", "Acme")
	if err != nil {
		t.Fatal(err)
	}
	if w.ID == "" {
		t.Error("ID should be generated")
	}
	if w.Priority != PriorityMedium {
		t.Errorf("default priority = %v, want medium", w.Priority)
	}
}

func TestNewScheduleValidatesClock(t *testing.T) {
	date := time.Date(2026, 9, 7, 15, 30, 0, 0, time.UTC)

	s, err := NewSchedule("wi-1", date, "09:15")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Date.Equal(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date not truncated to midnight: %v", s.Date)
	}
	if s.Status != StatusDraft {
		t.Errorf("status = %v, want draft", s.Status)
	}

	for _, bad := range []string{"", "9:15", "09.15", "25:00", "09:61"} {
		if _, err := NewSchedule("wi-1", date, bad); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("NewSchedule with %q err = %v, want ErrInvalidTimeFormat", bad, err)
		}
	}
}

func TestScheduleSameDay(t *testing.T) {
	s := &Schedule{Date: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)}
	if !s.SameDay(time.Date(2026, 9, 7, 23, 59, 0, 0, time.UTC)) {
		t.Error("same calendar day should match regardless of time")
	}
	if s.SameDay(time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)) {
		t.Error("different day should not match")
	}
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3", 3, true},
		{"2.5", 2.5, true},
		{" 4 ", 4, true},
		{"0", 0, true},
		{"-1", -1, true}, // parseable; positivity is FiniteHours' job
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"+Inf", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseHours(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseHours(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFiniteHours(t *testing.T) {
	tests := []struct {
		in   float64
		want bool
	}{
		{2, true},
		{0.25, true},
		{0, false},
		{-3, false},
		{math.NaN(), false},
		{math.Inf(1), false},
	}
	for _, tt := range tests {
		if got := FiniteHours(tt.in); got != tt.want {
			t.Errorf("FiniteHours(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
