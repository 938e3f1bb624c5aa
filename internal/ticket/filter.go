package ticket

import "strings"

// Filter selects work items in the unscheduled panel. Zero values
// mean "no constraint"; set fields compose with logical AND.
type Filter struct {
	Search       string   // substring match on customer, title, number
	Priority     Priority // exact match
	Category     string   // exact match
	TechnicianID string   // exact match on assignment
}

// IsZero reports whether no constraint is set.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Priority == "" && f.Category == "" && f.TechnicianID == ""
}

// Matches reports whether the item passes every set constraint.
// Text search is case-insensitive.
func (f Filter) Matches(w *WorkItem) bool {
	if w == nil {
		return false
	}
	if f.Priority != "" && w.Priority != f.Priority {
		return false
	}
	if f.Category != "" && w.Category != f.Category {
		return false
	}
	if f.TechnicianID != "" && w.TechnicianID != f.TechnicianID {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(w.Customer), q) &&
			!strings.Contains(strings.ToLower(w.Title), q) &&
			!strings.Contains(strings.ToLower(w.Number), q) {
			return false
		}
	}
	return true
}

// FilterItems returns the items that pass the filter, preserving order.
func FilterItems(items []*WorkItem, f Filter) []*WorkItem {
	var result []*WorkItem
	for _, w := range items {
		if f.Matches(w) {
			result = append(result, w)
		}
	}
	return result
}

// TotalEstimatedHours sums estimated hours across items, defaulting
// unset durations to 2 hours per item. Shown as the panel's capacity
// indicator.
func TotalEstimatedHours(items []*WorkItem) float64 {
	var total float64
	for _, w := range items {
		if FiniteHours(w.EstimatedHours) {
			total += w.EstimatedHours
		} else {
			total += 2
		}
	}
	return total
}
