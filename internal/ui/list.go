package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldline/dispatch/internal/ticket"
)

func (a *App) listCmd() *cobra.Command {
	var (
		priority string
		category string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List unscheduled work orders",
		Long: `List open work orders that have no upcoming schedule entry.

Items are sorted by priority, then by age.`,
		Example: `  dispatch list
  dispatch list --priority=urgent
  dispatch list --category=HVAC`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			items, err := a.repo.ListWorkItems(ctx)
			if err != nil {
				return fmt.Errorf("listing work orders: %w", err)
			}

			upcoming, err := a.repo.ListUpcomingSchedules(ctx, today())
			if err != nil {
				return fmt.Errorf("listing schedules: %w", err)
			}
			scheduled := make(map[string]bool, len(upcoming))
			for _, s := range upcoming {
				scheduled[s.TicketID] = true
			}

			f := ticket.Filter{Category: category}
			if priority != "" {
				f.Priority = ticket.ParsePriority(priority)
			}
			var open []*ticket.WorkItem
			for _, it := range ticket.FilterItems(items, f) {
				if !scheduled[it.ID] {
					open = append(open, it)
				}
			}
			open = ticket.SortItems(open, ticket.SortPriority)

			if len(open) == 0 {
				fmt.Println("No unscheduled work orders.")
				return nil
			}

			width := termWidth()
			for _, it := range open {
				hours := "—"
				if ticket.FiniteHours(it.EstimatedHours) {
					hours = fmt.Sprintf("%gh", it.EstimatedHours)
				}
				tech := ""
				if it.TechnicianName != "" {
					tech = " " + colorMuted.Sprint("@"+it.TechnicianName)
				}
				line := fmt.Sprintf("%s %s %s — %s (%s)%s",
					formatPriority(it.Priority), it.Number, it.Customer, it.Title, hours, tech)
				fmt.Println(truncate(line, width))
			}

			colorStats.Printf("\n%d open · %.1fh estimated\n",
				len(open), ticket.TotalEstimatedHours(open))
			return nil
		},
	}

	cmd.Flags().StringVar(&priority, "priority", "", "Filter by priority (urgent, high, medium, low)")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")

	return cmd
}
