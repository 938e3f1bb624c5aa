package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldline/dispatch/internal/busyimport"
	"github.com/fieldline/dispatch/internal/dateutil"
)

func (a *App) importBusyCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "import-busy <calendar.ics>",
		Short: "Import busy time from an ICS calendar export",
		Long: `Import events from an exported ICS calendar as busy-time overlays.

Busy time is shown on the week grid so visits are not scheduled over
existing appointments. All-day and multi-day events are skipped.`,
		Example: `  dispatch import-busy calendar.ics
  dispatch import-busy calendar.ics --start=2026-09-01 --end=2026-09-30`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			events, err := busyimport.ParseFile(path)
			if err != nil {
				return fmt.Errorf("importing calendar: %w", err)
			}

			if startDate != "" || endDate != "" {
				dateRange, err := dateutil.NewDateRange(startDate, endDate)
				if err != nil {
					return err
				}
				events = busyimport.WithinRange(events, dateRange.Start, dateRange.End)
			}

			if len(events) == 0 {
				fmt.Println("No importable events found.")
				return nil
			}

			if err := a.repo.AddBusyEvents(context.Background(), events); err != nil {
				return fmt.Errorf("saving busy events: %w", err)
			}

			colorStats.Printf("Imported %d busy events.\n", len(events))
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Only import events on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "Only import events on or before this date (YYYY-MM-DD)")

	return cmd
}

// resolvePath expands ~ and returns an absolute path.
func resolvePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(path)
}
