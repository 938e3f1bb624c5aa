// Package ticket defines the core domain types for dispatch.
package ticket

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrEmptyCustomer     = errors.New("customer name cannot be empty")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
)

// Domain errors.
var (
	ErrWorkItemNotFound = errors.New("work item not found")
	ErrScheduleNotFound = errors.New("schedule not found")
)

// Priority classifies how urgently a work item needs service.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority normalizes a priority string from upstream data.
// "normal" is a legacy synonym for medium; anything unrecognized
// degrades to medium rather than failing a load.
func ParsePriority(s string) Priority {
	switch s {
	case "urgent":
		return PriorityUrgent
	case "high":
		return PriorityHigh
	case "medium", "normal":
		return PriorityMedium
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Rank returns the sort rank of the priority. Lower is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// WorkItem is a service ticket eligible for scheduling.
// Immutable from the grid's perspective: the TUI only ever replaces
// whole snapshots after a committed mutation.
type WorkItem struct {
	ID             string
	Number         string // display number, e.g. "WO-1042"
	Title          string
	Customer       string
	Address        string
	Category       string
	Priority       Priority
	EstimatedHours float64 // 0 means unset; upstream may deliver this as a numeric string
	TechnicianID   string
	TechnicianName string
	CreatedAt      time.Time
}

// NewWorkItem creates a work item with validation and a fresh ID.
func NewWorkItem(number, title, customer string) (*WorkItem, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if customer == "" {
		return nil, ErrEmptyCustomer
	}
	return &WorkItem{
		ID:        uuid.NewString(),
		Number:    number,
		Title:     title,
		Customer:  customer,
		Priority:  PriorityMedium,
		CreatedAt: time.Now(),
	}, nil
}

// Assigned returns true if a technician is assigned to the item.
func (w *WorkItem) Assigned() bool {
	return w.TechnicianID != ""
}

// Technician resolves display name and avatar color for assignment
// controls. The grid consumes it opaquely.
type Technician struct {
	ID          string
	Name        string
	AvatarColor string // hex, e.g. "#f38ba8"
}
