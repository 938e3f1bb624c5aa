package dragdrop

import (
	"errors"
	"testing"
	"time"

	"github.com/fieldline/dispatch/internal/ticket"
)

func testItem() *ticket.WorkItem {
	return &ticket.WorkItem{
		ID:             "wi-1",
		Number:         "WO-1042",
		Title:          "Replace compressor",
		Customer:       "Acme Foods",
		Address:        "12 Mill Rd",
		Category:       "HVAC",
		Priority:       ticket.PriorityHigh,
		EstimatedHours: 3,
		TechnicianID:   "tech-7",
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := New(testItem(), 3)

	raw, err := p.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, defaulted, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if defaulted {
		t.Error("defaulted should be false for a complete payload")
	}
	if got != p {
		t.Errorf("round trip = %+v, want %+v", got, p)
	}
}

func TestNewReplacesUnusableDuration(t *testing.T) {
	p := New(testItem(), 0)
	if p.EstimatedHours != 2 {
		t.Errorf("EstimatedHours = %v, want default 2", p.EstimatedHours)
	}
}

func TestNewReschedule(t *testing.T) {
	s := &ticket.Schedule{
		ID:        "sched-9",
		TicketID:  "wi-1",
		Date:      time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
	}
	p := NewReschedule(testItem(), s, 2.5)

	if !p.Reschedule {
		t.Error("Reschedule should be set")
	}
	if p.ScheduleID != "sched-9" {
		t.Errorf("ScheduleID = %q", p.ScheduleID)
	}
	if p.OriginalDate != "2026-09-07" {
		t.Errorf("OriginalDate = %q", p.OriginalDate)
	}
	if p.OriginalStart != "09:00" {
		t.Errorf("OriginalStart = %q", p.OriginalStart)
	}
	if p.EstimatedHours != 2.5 {
		t.Errorf("EstimatedHours = %v", p.EstimatedHours)
	}
}

func TestDecodeFailureClasses(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"empty payload", "", ErrEmptyPayload},
		{"not json", "definitely not json", ErrMalformedPayload},
		{"json array", `[1,2,3]`, ErrMalformedPayload},
		{"missing ticket id", `{"title":"x","estimated_hours":2}`, ErrMalformedPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode(%q) err = %v, want %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestDecodeDefaultsMissingDuration(t *testing.T) {
	tests := []string{
		`{"ticket_id":"wi-1"}`,
		`{"ticket_id":"wi-1","estimated_hours":0}`,
		`{"ticket_id":"wi-1","estimated_hours":-4}`,
	}
	for _, raw := range tests {
		p, defaulted, err := Decode(raw)
		if err != nil {
			t.Fatalf("Decode(%q): %v", raw, err)
		}
		if !defaulted {
			t.Errorf("Decode(%q) should report defaulted", raw)
		}
		if p.EstimatedHours != 2 {
			t.Errorf("Decode(%q) EstimatedHours = %v, want 2", raw, p.EstimatedHours)
		}
	}
}

func TestPayloadWorkItem(t *testing.T) {
	p := New(testItem(), 3)
	w := p.WorkItem()

	if w.ID != "wi-1" || w.Number != "WO-1042" || w.Customer != "Acme Foods" {
		t.Errorf("WorkItem() = %+v", w)
	}
	if w.Priority != ticket.PriorityHigh {
		t.Errorf("Priority = %v", w.Priority)
	}
	if w.EstimatedHours != 3 {
		t.Errorf("EstimatedHours = %v", w.EstimatedHours)
	}
}

func TestDecodeNormalizesLoosePriority(t *testing.T) {
	p, _, err := Decode(`{"ticket_id":"wi-1","estimated_hours":1,"priority":"normal"}`)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.WorkItem().Priority; got != ticket.PriorityMedium {
		t.Errorf("priority normal mapped to %v, want medium", got)
	}
}
