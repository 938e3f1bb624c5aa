package ui

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fieldline/dispatch/internal/ticket"
)

func (a *App) techCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tech",
		Short: "Manage technicians",
		Long: `Manage the technicians available for assignment.

Registered technicians show up in the assignment picker and can be
attached to work orders and schedule entries.`,
	}
	cmd.AddCommand(a.techAddCmd())
	cmd.AddCommand(a.techListCmd())
	return cmd
}

func (a *App) techAddCmd() *cobra.Command {
	var (
		id          string
		avatarColor string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a technician",
		Example: `  dispatch tech add Alice --color="#f38ba8"
  dispatch tech add "Bob R" --id=bob --color="#89b4fa"`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			techID := id
			if techID == "" {
				techID = uuid.NewString()
			}
			t := &ticket.Technician{ID: techID, Name: args[0], AvatarColor: avatarColor}
			if err := a.repo.UpsertTechnician(context.Background(), t); err != nil {
				return fmt.Errorf("registering technician: %w", err)
			}

			colorStats.Printf("Registered %s (%s)\n", t.Name, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Technician id (generated when empty; reuse an id to update)")
	cmd.Flags().StringVar(&avatarColor, "color", "", `Avatar color hex, e.g. "#f38ba8"`)

	return cmd
}

func (a *App) techListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered technicians",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			techs, err := a.repo.ListTechnicians(context.Background())
			if err != nil {
				return fmt.Errorf("listing technicians: %w", err)
			}
			if len(techs) == 0 {
				fmt.Println("No technicians registered.")
				return nil
			}

			for _, t := range techs {
				line := fmt.Sprintf("%s  %s", t.Name, colorMuted.Sprint(t.ID))
				if t.AvatarColor != "" {
					line += " " + colorMuted.Sprint(t.AvatarColor)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
