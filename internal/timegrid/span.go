package timegrid

import (
	"github.com/fieldline/dispatch/internal/ticket"
)

// Span is a resolved start/end hour pair for one placed schedule.
type Span struct {
	Start float64
	End   float64
}

// Duration returns the span length in hours.
func (s Span) Duration() float64 {
	return s.End - s.Start
}

// ResolveSpan computes the effective time span of a schedule from its
// three independently evolving duration sources, first match wins:
//
//  1. explicit schedule end time
//  2. stored duration-in-minutes
//  3. the work item's estimated hours
//  4. a fixed 2-hour default
//
// Non-finite or non-positive values fall through to the next source.
// Returns false when the schedule has no parseable start time: such a
// record is not a valid placed schedule and is not positioned.
func ResolveSpan(s *ticket.Schedule, item *ticket.WorkItem) (Span, bool) {
	if s == nil {
		return Span{}, false
	}
	start, ok := ParseClock(s.StartTime)
	if !ok {
		return Span{}, false
	}

	if end, ok := ParseClock(s.EndTime); ok && end > start {
		return Span{Start: start, End: end}, true
	}

	if ticket.FiniteHours(s.DurationMinutes) {
		return Span{Start: start, End: start + s.DurationMinutes/60}, true
	}

	if item != nil && ticket.FiniteHours(item.EstimatedHours) {
		return Span{Start: start, End: start + item.EstimatedHours}, true
	}

	return Span{Start: start, End: start + DefaultDurationHours}, true
}

// ClampTo clamps the span to the visible hour window. Affects only
// presentation, never the stored values.
func (s Span) ClampTo(m Metrics) Span {
	return Span{Start: m.ClampHour(s.Start), End: m.ClampHour(s.End)}
}

// SpanPixels converts a span to a top offset and height in pixels,
// clamped to the visible window and with the minimum height floor
// applied so very short appointments stay visible.
func (m Metrics) SpanPixels(s Span) (top, height int) {
	clamped := s.ClampTo(m)
	top = int(m.HourToPixel(clamped.Start))
	height = int(m.HourToPixel(clamped.End)) - top
	if height < MinBlockPixels {
		height = MinBlockPixels
	}
	return top, height
}
