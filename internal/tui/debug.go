package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DebugLogger logs TUI state, input, and drag events to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "dispatch-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{file: f, enabled: true}
	debugLog.log("DEBUG_START", map[string]any{
		"log_file": DebugLogPath,
		"time":     time.Now().Format(time.RFC3339),
	})
	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key": msg.String(),
	})
}

// LogDragStart logs the creation of a drag session.
func LogDragStart(s *dragSession) {
	if debugLog == nil || !debugLog.enabled || s == nil {
		return
	}
	origin := "panel"
	if s.origin == dragFromGrid {
		origin = "grid"
	}
	debugLog.log("DRAG_START", map[string]any{
		"origin":         origin,
		"ticket_id":      s.payload.TicketID,
		"duration_hours": s.durationHours,
		"schedule_id":    s.scheduleID,
	})
}

// LogDragOver logs a drop-preview update.
func LogDragOver(p *DropPreview) {
	if debugLog == nil || !debugLog.enabled || p == nil {
		return
	}
	debugLog.log("DRAG_OVER", map[string]any{
		"date":           p.Date.Format("2006-01-02"),
		"start_hour":     p.StartHour,
		"duration_hours": p.DurationHours,
	})
}

// LogDrop logs a completed drop on the grid.
func LogDrop(intent PlacementIntent) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("DROP", map[string]any{
		"ticket_id":  intent.Payload.TicketID,
		"date":       intent.Date.Format("2006-01-02"),
		"start_time": intent.StartTime,
		"reschedule": intent.Payload.Reschedule,
		"defaulted":  intent.Defaulted,
	})
}

// LogPayloadProblem logs malformed or duration-defaulted transfer
// payloads. The two cases are kept distinct so bad producers and
// merely incomplete ones can be told apart in the log.
func LogPayloadProblem(kind string, err error) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	data := map[string]any{"kind": kind}
	if err != nil {
		data["error"] = err.Error()
	}
	debugLog.log("PAYLOAD_PROBLEM", data)
}

// LogUnschedule logs a drop on the panel.
func LogUnschedule(scheduleID, ticketID string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("UNSCHEDULE", map[string]any{
		"schedule_id": scheduleID,
		"ticket_id":   ticketID,
	})
}

// LogLoadWeek logs a pagination request.
func LogLoadWeek(weekStart time.Time) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("LOAD_WEEK", map[string]any{
		"week_start": weekStart.Format("2006-01-02"),
	})
}

// LogError logs an error.
func LogError(context string, err error) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}
