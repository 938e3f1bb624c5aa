package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldline/dispatch/internal/ticket"
)

func (a *App) addCmd() *cobra.Command {
	var (
		number   string
		customer string
		category string
		priority string
		address  string
		hours    float64
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a work order to the unscheduled pool",
		Long: `Add a new work order. It appears in the unscheduled panel and can
be dragged onto the week grid to schedule a visit.`,
		Example: `  dispatch add "Replace compressor" --customer="Acme Foods" --priority=high
  dispatch add "Annual inspection" --customer=Brightside --category=HVAC --hours=1.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			w, err := ticket.NewWorkItem(number, args[0], customer)
			if err != nil {
				return err
			}
			if number == "" {
				w.Number = shortNumber(w.ID)
			}
			w.Category = category
			w.Address = address
			if priority != "" {
				w.Priority = ticket.ParsePriority(priority)
			}
			if hours > 0 {
				w.EstimatedHours = hours
			}

			if err := a.repo.CreateWorkItem(context.Background(), w); err != nil {
				return fmt.Errorf("adding work order: %w", err)
			}

			colorStats.Printf("Added %s %s — %s\n", w.Number, w.Customer, w.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&number, "number", "", "Work order number (generated when empty)")
	cmd.Flags().StringVar(&customer, "customer", "", "Customer name (required)")
	cmd.Flags().StringVar(&category, "category", "", "Category, e.g. HVAC")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (urgent, high, medium, low)")
	cmd.Flags().StringVar(&address, "address", "", "Service address")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated duration in hours")
	_ = cmd.MarkFlagRequired("customer")

	return cmd
}

// shortNumber derives a display number from a fresh record id.
func shortNumber(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "WO-" + id
}
