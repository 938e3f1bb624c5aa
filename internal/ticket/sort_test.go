package ticket

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

func sortFixture() []*WorkItem {
	return []*WorkItem{
		{ID: "a", Priority: PriorityLow, TechnicianName: "Zoe", CreatedAt: day(1)},
		{ID: "b", Priority: PriorityUrgent, CreatedAt: day(3)},
		{ID: "c", Priority: PriorityMedium, TechnicianName: "alice", CreatedAt: day(2)},
		{ID: "d", Priority: PriorityUrgent, TechnicianName: "Bob", CreatedAt: day(4)},
	}
}

func ids(items []*WorkItem) []string {
	out := make([]string, len(items))
	for i, w := range items {
		out[i] = w.ID
	}
	return out
}

func assertOrder(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSortItems(t *testing.T) {
	items := sortFixture()

	tests := []struct {
		mode SortMode
		want []string
	}{
		{SortOldest, []string{"a", "c", "b", "d"}},
		{SortNewest, []string{"d", "b", "c", "a"}},
		{SortPriority, []string{"b", "d", "c", "a"}}, // urgent pair keeps input order
		{SortTechnician, []string{"c", "d", "a", "b"}}, // unassigned last
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assertOrder(t, ids(SortItems(items, tt.mode)), tt.want)
		})
	}

	// Input must not be mutated.
	if items[0].ID != "a" {
		t.Error("SortItems mutated its input")
	}
}

func TestNextSortModeCycles(t *testing.T) {
	m := SortOldest
	seen := map[SortMode]bool{m: true}
	for i := 0; i < 3; i++ {
		m = NextSortMode(m)
		if seen[m] {
			t.Fatalf("mode %s repeated before cycle completed", m)
		}
		seen[m] = true
	}
	if NextSortMode(m) != SortOldest {
		t.Error("cycle should return to oldest")
	}
}

func TestSortSchedulesByPriorityUsesItemLookup(t *testing.T) {
	scheds := []*Schedule{
		{ID: "s1", TicketID: "low", Date: day(1)},
		{ID: "s2", TicketID: "urgent", Date: day(2)},
		{ID: "s3", TicketID: "unknown", Date: day(3)}, // missing item: medium
	}
	items := map[string]*WorkItem{
		"low":    {Priority: PriorityLow},
		"urgent": {Priority: PriorityUrgent},
	}

	got := SortSchedules(scheds, SortPriority, items)
	want := []string{"s2", "s3", "s1"}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestDedupSchedulesKeepsEarliestPerTicket(t *testing.T) {
	scheds := []*Schedule{
		{ID: "s1", TicketID: "a", Date: day(5)},
		{ID: "s2", TicketID: "b", Date: day(2)},
		{ID: "s3", TicketID: "a", Date: day(3)}, // earlier than s1
		nil,
		{ID: "s4", TicketID: "b", Date: day(9)},
	}

	got := DedupSchedules(scheds)
	if len(got) != 2 {
		t.Fatalf("got %d schedules, want 2", len(got))
	}
	// First-seen ticket order is preserved; per ticket the earliest wins.
	if got[0].ID != "s3" || got[1].ID != "s2" {
		t.Errorf("got [%s %s], want [s3 s2]", got[0].ID, got[1].ID)
	}
}
