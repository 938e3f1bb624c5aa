package ticket

import (
	"sort"
	"strings"
)

// SortMode selects the ordering of the panel lists.
type SortMode string

const (
	SortOldest     SortMode = "oldest"
	SortNewest     SortMode = "newest"
	SortPriority   SortMode = "priority"
	SortTechnician SortMode = "technician"
)

// NextSortMode cycles through the sort modes in display order.
func NextSortMode(m SortMode) SortMode {
	switch m {
	case SortOldest:
		return SortNewest
	case SortNewest:
		return SortPriority
	case SortPriority:
		return SortTechnician
	default:
		return SortOldest
	}
}

// SortItems returns a new slice sorted by the given mode. Sorting is
// stable so equal elements keep their snapshot order.
func SortItems(items []*WorkItem, mode SortMode) []*WorkItem {
	result := make([]*WorkItem, len(items))
	copy(result, items)

	switch mode {
	case SortNewest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	case SortPriority:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Priority.Rank() < result[j].Priority.Rank()
		})
	case SortTechnician:
		sort.SliceStable(result, func(i, j int) bool {
			return techSortKey(result[i].TechnicianName) < techSortKey(result[j].TechnicianName)
		})
	default: // SortOldest
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		})
	}
	return result
}

// techSortKey sorts unassigned items last.
func techSortKey(name string) string {
	if name == "" {
		return "￿"
	}
	return strings.ToLower(name)
}

// SortSchedules returns a new slice of schedules sorted by the given
// mode, using scheduled date in place of creation date.
func SortSchedules(scheds []*Schedule, mode SortMode, items map[string]*WorkItem) []*Schedule {
	result := make([]*Schedule, len(scheds))
	copy(result, scheds)

	priorityOf := func(s *Schedule) int {
		if w, ok := items[s.TicketID]; ok {
			return w.Priority.Rank()
		}
		return PriorityMedium.Rank()
	}

	switch mode {
	case SortNewest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Date.After(result[j].Date)
		})
	case SortPriority:
		sort.SliceStable(result, func(i, j int) bool {
			return priorityOf(result[i]) < priorityOf(result[j])
		})
	case SortTechnician:
		sort.SliceStable(result, func(i, j int) bool {
			return techSortKey(result[i].TechnicianName) < techSortKey(result[j].TechnicianName)
		})
	default: // SortOldest
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Date.Before(result[j].Date)
		})
	}
	return result
}

// DedupSchedules keeps one schedule per work item: the one with the
// earliest scheduled date. Guards against an item appearing twice when
// the backing store holds stale duplicate schedules.
func DedupSchedules(scheds []*Schedule) []*Schedule {
	earliest := make(map[string]*Schedule)
	var order []string

	for _, s := range scheds {
		if s == nil {
			continue
		}
		existing, ok := earliest[s.TicketID]
		if !ok {
			earliest[s.TicketID] = s
			order = append(order, s.TicketID)
			continue
		}
		if s.Date.Before(existing.Date) {
			earliest[s.TicketID] = s
		}
	}

	result := make([]*Schedule, 0, len(order))
	for _, id := range order {
		result = append(result, earliest[id])
	}
	return result
}
