package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/engine"
	"github.com/vovakirdan/tui-raycaster/internal/raycast"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

// statusTicks is how long a status message stays in the footer.
const statusTicks = 60

// Options carries what every screen of the UI needs.
type Options struct {
	Config        config.RaycasterConfig
	MapsDir       string         // extra map directory, may be empty
	Store         *storage.Store // nil disables saved poses
	TickRate      int
	ScreenshotDir string // empty uses ~/.raycaster/screenshots
}

// Model is the Bubble Tea model for walking one map.
type Model struct {
	session  *engine.Session
	screen   *core.Screen
	opts     Options
	config   core.RuntimeConfig
	input    core.InputFrame
	state    core.SessionState
	keys     KeyMap
	help     help.Model
	status   string
	statusN  int
	embedded bool // back returns to a menu instead of quitting
	loop     uint64

	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given session.
// One terminal row is kept for the footer.
func NewModel(s *engine.Session, opts Options, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = opts.TickRate
	}
	h := help.New()
	h.Width = cfg.ScreenW
	return Model{
		session: s,
		screen:  core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		opts:    opts,
		config:  cfg,
		input:   core.NewInputFrame(),
		state:   s.State(),
		keys:    DefaultKeyMap(),
		help:    h,
		loop:    newLoop(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.setStatus(m.saveScreenshot())
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.input.Set(a)
	}
	return m, nil
}

// handleTick advances the session with the input collected since the last tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.session.Step(m.input)
	m.state = result.State

	if m.input.Has(core.ActionSavePose) {
		m.setStatus(m.savePose())
	}
	m.input.Clear()

	if m.statusN > 0 {
		m.statusN--
		if m.statusN == 0 {
			m.status = ""
		}
	}
	return m, tickCmd(m.config.TickRate, m.loop)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusN = statusTicks
}

// savePose bookmarks the current pose and returns a status line.
func (m *Model) savePose() string {
	if m.opts.Store == nil {
		return "no database: pose not saved"
	}
	if _, err := m.opts.Store.SavePose(m.session.ID(), "", m.session.Pose()); err != nil {
		return "save failed: " + err.Error()
	}
	return "pose saved"
}

// saveScreenshot writes the plain text of the current view to a file.
func (m *Model) saveScreenshot() string {
	if err := m.session.Render(m.screen); err != nil {
		return "screenshot failed: " + err.Error()
	}

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "screenshot failed: " + err.Error()
		}
		dir = filepath.Join(home, ".raycaster", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "screenshot failed: " + err.Error()
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.session.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "screenshot failed: " + err.Error()
	}
	return "screenshot: " + path
}

// hud describes the pose and session flags.
func (m Model) hud() string {
	p := m.session.Pose()
	s := fmt.Sprintf(" %s  x %.0f  y %.0f  %3.0f° ", m.session.Title(), p.X, p.Y, raycast.Degrees(p.Angle))
	if m.state.Paused {
		s += "[paused] "
	}
	return s
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	footer := dimStyle.Render(m.help.View(m.keys))
	if m.status != "" {
		footer = statusStyle.Render(m.status)
	}
	// The view shrinks while the full help is open.
	rows := strings.Count(footer, "\n") + 1
	m.screen.Resize(m.config.ScreenW, max(m.config.ScreenH-rows, 1))

	if err := m.session.Render(m.screen); err != nil {
		m.screen.DrawText(0, 0, err.Error(), core.ColorBrightRed)
	}
	hud := m.hud()
	m.screen.DrawText(m.screen.Width()-len([]rune(hud)), m.screen.Height()-1, hud, core.ColorBrightWhite)

	return RenderScreen(m.screen) + "\n" + footer
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Session returns the running session.
func (m Model) Session() *engine.Session {
	return m.session
}

// Run starts the Bubble Tea program for a single session.
func Run(s *engine.Session, opts Options, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(s, opts, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
