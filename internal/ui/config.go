package ui

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldline/dispatch/internal/config"
	"github.com/fieldline/dispatch/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or initialize configuration",
	}
	cmd.AddCommand(a.configShowCmd())
	cmd.AddCommand(a.configInitCmd())
	return cmd
}

func (a *App) configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			printConfig(a.config)
			return nil
		},
	}
}

func (a *App) configInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a config file with default values",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := config.DefaultConfigPath()
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists: %s", path)
			}

			if err := config.Default().SaveTo(path); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Printf("Created %s\n", path)
			return nil
		},
	}
}

func printConfig(cfg *config.Config) {
	colorHeader.Println("Schedule")
	fmt.Printf("  day_start:    %s\n", cfg.Schedule.DayStart)
	fmt.Printf("  day_end:      %s\n", cfg.Schedule.DayEnd)
	fmt.Printf("  hour_height:  %d\n", cfg.Schedule.HourHeight)

	colorHeader.Println("UI")
	fmt.Printf("  theme:            %s (available: %v)\n", cfg.UI.Theme, theme.Available())
	fmt.Printf("  work_week_only:   %t\n", cfg.UI.WorkWeekOnly)
	fmt.Printf("  show_tech_badges: %t\n", cfg.UI.ShowTechBadges)
	fmt.Printf("  pixels_per_row:   %d\n", cfg.UI.PixelsPerRow)

	colorHeader.Println("Storage")
	fmt.Printf("  db_path:  %s\n", cfg.Storage.DBPath)
}
