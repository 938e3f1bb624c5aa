package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/fieldline/dispatch/internal/ticket"
)

// Color definitions for consistent styling across the UI.
var (
	colorUrgent = color.New(color.FgRed, color.Bold)
	colorHigh   = color.New(color.FgYellow, color.Bold)
	colorMedium = color.New(color.FgYellow)
	colorLow    = color.New(color.FgGreen)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Stats: green for positive metrics
	colorStats = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatPriority formats a priority label with its color.
func formatPriority(p ticket.Priority) string {
	switch p {
	case ticket.PriorityUrgent:
		return colorUrgent.Sprint("URGENT")
	case ticket.PriorityHigh:
		return colorHigh.Sprint("high")
	case ticket.PriorityLow:
		return colorLow.Sprint("low")
	default:
		return colorMedium.Sprint("medium")
	}
}

// truncate shortens a string to max runes for single-line output.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
