package timegrid

import (
	"math"
	"testing"

	"github.com/fieldline/dispatch/internal/ticket"
)

func TestResolveSpanCascade(t *testing.T) {
	tests := []struct {
		name     string
		schedule *ticket.Schedule
		item     *ticket.WorkItem
		want     Span
		ok       bool
	}{
		{
			name:     "explicit end time wins",
			schedule: &ticket.Schedule{StartTime: "09:00", EndTime: "11:30", DurationMinutes: 45},
			item:     &ticket.WorkItem{EstimatedHours: 1},
			want:     Span{Start: 9, End: 11.5},
			ok:       true,
		},
		{
			name:     "end before start falls through to duration",
			schedule: &ticket.Schedule{StartTime: "09:00", EndTime: "08:00", DurationMinutes: 90},
			want:     Span{Start: 9, End: 10.5},
			ok:       true,
		},
		{
			name:     "stored duration beats item estimate",
			schedule: &ticket.Schedule{StartTime: "10:00", DurationMinutes: 30},
			item:     &ticket.WorkItem{EstimatedHours: 4},
			want:     Span{Start: 10, End: 10.5},
			ok:       true,
		},
		{
			name:     "item estimate used when duration unusable",
			schedule: &ticket.Schedule{StartTime: "10:00", DurationMinutes: 0},
			item:     &ticket.WorkItem{EstimatedHours: 3},
			want:     Span{Start: 10, End: 13},
			ok:       true,
		},
		{
			name:     "NaN duration falls through",
			schedule: &ticket.Schedule{StartTime: "10:00", DurationMinutes: math.NaN()},
			item:     &ticket.WorkItem{EstimatedHours: 1.5},
			want:     Span{Start: 10, End: 11.5},
			ok:       true,
		},
		{
			name:     "default when nothing resolves",
			schedule: &ticket.Schedule{StartTime: "14:00"},
			want:     Span{Start: 14, End: 16},
			ok:       true,
		},
		{
			name:     "nil item falls to default",
			schedule: &ticket.Schedule{StartTime: "14:00", DurationMinutes: -10},
			item:     nil,
			want:     Span{Start: 14, End: 16},
			ok:       true,
		},
		{
			name:     "no start time means not positioned",
			schedule: &ticket.Schedule{StartTime: "", DurationMinutes: 60},
			ok:       false,
		},
		{
			name:     "malformed start time means not positioned",
			schedule: &ticket.Schedule{StartTime: "9am"},
			ok:       false,
		},
		{
			name: "nil schedule",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveSpan(tt.schedule, tt.item)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("span = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSpanPixels(t *testing.T) {
	m := testMetrics()

	tests := []struct {
		name       string
		span       Span
		wantTop    int
		wantHeight int
	}{
		{"two hour block", Span{9, 11}, 120, 120},
		{"short block gets the floor", Span{9, 9.1}, 120, MinBlockPixels},
		{"clamped to window top", Span{5, 9}, 0, 120},
		{"clamped to window bottom", Span{18, 21}, 660, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, height := m.SpanPixels(tt.span)
			if top != tt.wantTop || height != tt.wantHeight {
				t.Errorf("SpanPixels(%+v) = (%d, %d), want (%d, %d)",
					tt.span, top, height, tt.wantTop, tt.wantHeight)
			}
		})
	}
}

func TestSpanDuration(t *testing.T) {
	if got := (Span{Start: 9, End: 11.5}).Duration(); got != 2.5 {
		t.Errorf("Duration() = %v, want 2.5", got)
	}
}
