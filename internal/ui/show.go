package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldline/dispatch/internal/ticket"
)

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <id-or-number>",
		Short:   "Show a work order's details",
		Example: `  dispatch show WO-1042`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			w, err := a.repo.GetWorkItem(ctx, args[0])
			if err != nil {
				return fmt.Errorf("loading work order: %w", err)
			}
			if w == nil {
				w, err = a.findByNumber(ctx, args[0])
				if err != nil {
					return err
				}
			}
			if w == nil {
				return fmt.Errorf("no work order matching %q", args[0])
			}

			printWorkItem(w)
			return nil
		},
	}
}

// findByNumber scans for a work order by its display number.
func (a *App) findByNumber(ctx context.Context, number string) (*ticket.WorkItem, error) {
	items, err := a.repo.ListWorkItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing work orders: %w", err)
	}
	for _, it := range items {
		if it.Number == number {
			return it, nil
		}
	}
	return nil, nil
}

func printWorkItem(w *ticket.WorkItem) {
	colorHeader.Printf("%s — %s\n", w.Number, w.Title)
	fmt.Printf("  customer:  %s\n", w.Customer)
	if w.Address != "" {
		fmt.Printf("  address:   %s\n", w.Address)
	}
	if w.Category != "" {
		fmt.Printf("  category:  %s\n", w.Category)
	}
	fmt.Printf("  priority:  %s\n", formatPriority(w.Priority))
	if ticket.FiniteHours(w.EstimatedHours) {
		fmt.Printf("  estimate:  %gh\n", w.EstimatedHours)
	}
	if w.TechnicianName != "" {
		fmt.Printf("  assigned:  %s\n", w.TechnicianName)
	}
	fmt.Printf("  created:   %s\n", w.CreatedAt.Format("2006-01-02"))
	fmt.Printf("  id:        %s\n", w.ID)
}
