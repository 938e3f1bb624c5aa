// Package tui provides the terminal user interface for dispatch.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldline/dispatch/internal/ticket"
	"github.com/fieldline/dispatch/internal/tui/theme"
)

// Fixed layout geometry (rows and columns, not pixels).
const (
	gutterWidth = 6 // hour labels, "07:00"
	headerRows  = 2 // day name row + date row
	panelWidth  = 34
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color

	// Title and chrome
	TitleStyle  lipgloss.Style
	FooterStyle lipgloss.Style
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	// Grid furniture
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style
	TimeColumnStyle     lipgloss.Style
	GridlineStyle       lipgloss.Style
	EmptyCellStyle      lipgloss.Style
	NowMarkerStyle      lipgloss.Style
	BusyStyle           lipgloss.Style
	PreviewStyle        lipgloss.Style

	// Schedule blocks, by status
	BlockDraftStyle     lipgloss.Style
	BlockPendingStyle   lipgloss.Style
	BlockConfirmedStyle lipgloss.Style
	BlockCancelledStyle lipgloss.Style
	BlockSelectedStyle  lipgloss.Style
	BlockDraggingStyle  lipgloss.Style

	// Panel
	PanelBorderStyle     lipgloss.Style
	PanelDropStyle       lipgloss.Style
	PanelTitleStyle      lipgloss.Style
	PanelItemStyle       lipgloss.Style
	PanelItemMetaStyle   lipgloss.Style
	PanelSelectedStyle   lipgloss.Style
	PanelFilterStyle     lipgloss.Style
	PanelStatsStyle      lipgloss.Style
	PanelEmptyStyle      lipgloss.Style
	PanelSectionStyle    lipgloss.Style
	PanelScheduledStyle  lipgloss.Style
	PanelDropHintStyle   lipgloss.Style

	// Priority dot colors
	priorityColors map[ticket.Priority]lipgloss.Color
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{
		colorBg:          theme.Color(t.Bg),
		colorBgHighlight: theme.Color(t.BgHighlight),
		colorFg:          theme.Color(t.Fg),
		colorFgMuted:     theme.Color(t.FgMuted),
		colorAccent:      theme.Color(t.Accent),
		colorWarning:     theme.Color(t.Warning),
	}

	s.priorityColors = map[ticket.Priority]lipgloss.Color{
		ticket.PriorityUrgent: theme.Color(t.Urgent),
		ticket.PriorityHigh:   theme.Color(t.High),
		ticket.PriorityMedium: theme.Color(t.Medium),
		ticket.PriorityLow:    theme.Color(t.Low),
	}

	s.TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorAccent)
	s.FooterStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)
	s.StatusStyle = lipgloss.NewStyle().Foreground(s.colorAccent)
	s.ErrorStyle = lipgloss.NewStyle().Foreground(theme.Color(t.Urgent)).Bold(true)

	s.DayHeaderStyle = lipgloss.NewStyle().Foreground(s.colorFg).Bold(true).Align(lipgloss.Center)
	s.DayHeaderTodayStyle = s.DayHeaderStyle.Foreground(s.colorAccent).Underline(true)
	s.TimeColumnStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted).Align(lipgloss.Right)
	s.GridlineStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted).Faint(true)
	s.EmptyCellStyle = lipgloss.NewStyle()
	s.NowMarkerStyle = lipgloss.NewStyle().Foreground(theme.Color(t.Now)).Bold(true)
	s.BusyStyle = lipgloss.NewStyle().Foreground(theme.Color(t.Busy)).Faint(true)
	s.PreviewStyle = lipgloss.NewStyle().Foreground(theme.Color(t.Preview)).Bold(true)

	block := lipgloss.NewStyle().Foreground(s.colorBg).Bold(true)
	s.BlockDraftStyle = block.Background(theme.Color(t.Draft)).Foreground(s.colorFg)
	s.BlockPendingStyle = block.Background(theme.Color(t.Pending))
	s.BlockConfirmedStyle = block.Background(theme.Color(t.Confirmed))
	s.BlockCancelledStyle = lipgloss.NewStyle().Background(theme.Color(t.Cancelled)).Foreground(s.colorFgMuted).Strikethrough(true)
	s.BlockSelectedStyle = block.Background(s.colorAccent)
	s.BlockDraggingStyle = lipgloss.NewStyle().Background(s.colorBgHighlight).Foreground(s.colorFgMuted).Faint(true)

	s.PanelBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorFgMuted)
	s.PanelDropStyle = s.PanelBorderStyle.BorderForeground(s.colorAccent)
	s.PanelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorAccent)
	s.PanelItemStyle = lipgloss.NewStyle().Foreground(s.colorFg)
	s.PanelItemMetaStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)
	s.PanelSelectedStyle = lipgloss.NewStyle().Background(s.colorBgHighlight).Foreground(s.colorFg)
	s.PanelFilterStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)
	s.PanelStatsStyle = lipgloss.NewStyle().Foreground(s.colorAccent)
	s.PanelEmptyStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted).Italic(true)
	s.PanelSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorFg)
	s.PanelScheduledStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)
	s.PanelDropHintStyle = lipgloss.NewStyle().Foreground(s.colorAccent).Italic(true)

	return s
}

// BlockStyle returns the style for a schedule block by status.
func (s *Styles) BlockStyle(status ticket.Status) lipgloss.Style {
	switch status {
	case ticket.StatusPending:
		return s.BlockPendingStyle
	case ticket.StatusConfirmed:
		return s.BlockConfirmedStyle
	case ticket.StatusCancelled:
		return s.BlockCancelledStyle
	default:
		return s.BlockDraftStyle
	}
}

// PriorityColor returns the color for a priority dot.
func (s *Styles) PriorityColor(p ticket.Priority) lipgloss.Color {
	if c, ok := s.priorityColors[p]; ok {
		return c
	}
	return s.colorFgMuted
}
