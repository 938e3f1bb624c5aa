// Package ui provides the command-line interface for dispatch.
package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fieldline/dispatch/internal/config"
	"github.com/fieldline/dispatch/internal/store"
	"github.com/fieldline/dispatch/internal/ticket"
	"github.com/fieldline/dispatch/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   ticket.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given repository and config.
// repo may be nil; it is then opened on demand from the configured path.
func NewApp(repo ticket.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "dispatch",
		Short: "A TUI scheduler for field-service work orders",
		Long: `Dispatch is a drag-and-drop week planner for field-service work.

Unscheduled work orders live in a side panel; drag them onto the week
grid to schedule a visit, drag blocks around to reschedule, or drag
them back to the panel to unschedule.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to dispatch-debug.log)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.schedulesCmd())
	a.root.AddCommand(a.techCmd())
	a.root.AddCommand(a.importBusyCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("dispatch %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the SQLite store on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	if dir := filepath.Dir(a.config.Storage.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	repo, err := store.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// Close releases the store, if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
