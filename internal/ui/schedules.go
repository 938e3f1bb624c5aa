package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldline/dispatch/internal/dateutil"
	"github.com/fieldline/dispatch/internal/ticket"
	"github.com/fieldline/dispatch/internal/timegrid"
)

func (a *App) schedulesCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "schedules",
		Short: "List schedule entries in a date range",
		Long: `List scheduled visits within a date range.

If no dates are specified, lists today's schedule.
If only --start is specified, lists that single day.
If both --start and --end are specified, lists the range (inclusive).`,
		Example: `  dispatch schedules
  dispatch schedules --start=2026-09-01
  dispatch schedules --start=2026-09-01 --end=2026-09-05`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			ctx := context.Background()
			scheds, err := a.repo.ListSchedulesByDateRange(ctx, dateRange.Start, dateRange.End)
			if err != nil {
				return fmt.Errorf("listing schedules: %w", err)
			}

			if len(scheds) == 0 {
				fmt.Println("No schedules found in the specified date range.")
				return nil
			}

			items, err := a.repo.ListWorkItems(ctx)
			if err != nil {
				return fmt.Errorf("listing work orders: %w", err)
			}
			byID := make(map[string]*ticket.WorkItem, len(items))
			for _, it := range items {
				byID[it.ID] = it
			}

			// Print schedules grouped by date.
			var currentDate string
			for _, s := range scheds {
				date := s.Date.Format("2006-01-02")
				if date != currentDate {
					if currentDate != "" {
						fmt.Println()
					}
					colorHeader.Printf("=== %s ===\n", date)
					currentDate = date
				}

				span, ok := timegrid.ResolveSpan(s, byID[s.TicketID])
				timeRange := s.StartTime + "–?"
				if ok {
					timeRange = s.StartTime + "–" + timegrid.HourToTimeString(span.End)
				}

				desc := s.TicketID
				if it := byID[s.TicketID]; it != nil {
					desc = fmt.Sprintf("%s %s — %s", it.Number, it.Customer, it.Title)
				}
				tech := ""
				if s.TechnicianName != "" {
					tech = colorMuted.Sprint(" @" + s.TechnicianName)
				}
				fmt.Printf("  %s [%s] %s%s\n", timeRange, s.Status, desc, tech)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")

	return cmd
}

// today returns midnight of the current day.
func today() time.Time {
	return dateutil.TruncateToDay(time.Now())
}
