package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fieldline/dispatch/internal/config"
	"github.com/fieldline/dispatch/internal/dateutil"
	"github.com/fieldline/dispatch/internal/ticket"
	"github.com/fieldline/dispatch/internal/timegrid"
	"github.com/fieldline/dispatch/internal/tui/commands"
	"github.com/fieldline/dispatch/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch      // search input focused
	ModeConfirmDelete
	ModeAssignTech
)

// focusArea identifies which pane receives keyboard navigation.
type focusArea int

const (
	focusPanel focusArea = iota
	focusGrid
)

// initialWeeks is how many weeks are loaded up front.
const initialWeeks = 3

// statusDuration is how long a status message stays visible.
const statusDuration = 3 * time.Second

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   ticket.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Components
	grid  *WeekGrid
	panel *Panel

	// State
	firstWeekStart time.Time
	mode           Mode
	focus          focusArea
	loading        bool

	// Drag state: nil when no drag is in flight.
	drag *dragSession

	// Modal targets
	deleteTarget *ticket.Schedule
	assignTarget *ticket.WorkItem
	technicians  []*ticket.Technician

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg string
	err       error

	now func() time.Time
}

// New creates a new TUI model.
func New(repo ticket.Repository, cfg *config.Config) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	startHour, ok := timegrid.ParseClock(cfg.Schedule.DayStart)
	if !ok {
		startHour = timegrid.DefaultStartHour
	}
	endHour, ok := timegrid.ParseClock(cfg.Schedule.DayEnd)
	if !ok {
		endHour = timegrid.DefaultEndHour
	}
	metrics := timegrid.NewMetrics(startHour, endHour, cfg.Schedule.HourHeight)

	grid := NewWeekGrid(metrics, cfg.UI.PixelsPerRow, cfg.VisibleDays(), styles)
	grid.SetShowTech(cfg.UI.ShowTechBadges)

	return &Model{
		repo:           repo,
		config:         cfg,
		theme:          t,
		styles:         styles,
		grid:           grid,
		panel:          NewPanel(styles),
		firstWeekStart: dateutil.StartOfWeek(time.Now()),
		mode:           ModeNormal,
		focus:          focusPanel,
		loading:        true,
		now:            time.Now,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return commands.LoadSnapshot(m.repo, m.firstWeekStart, initialWeeks)
}

// setStatus sets a transient status message.
func (m *Model) setStatus(format string, args ...any) tea.Cmd {
	m.statusMsg = fmt.Sprintf(format, args...)
	return commands.ClearStatusAfter(statusDuration)
}

// Run starts the TUI.
func Run(repo ticket.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo ticket.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	p := tea.NewProgram(New(repo, cfg), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
