package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/engine"
	"github.com/vovakirdan/tui-raycaster/internal/maps"
	"github.com/vovakirdan/tui-raycaster/internal/raycast"
)

type screen int

const (
	screenMenu screen = iota
	screenPoses
	screenPlay
)

// AppModel manages the full flow: menu -> poses -> play -> menu.
// It is the top-level model for local menus and SSH sessions.
type AppModel struct {
	opts     Options
	config   core.RuntimeConfig
	screen   screen
	menu     MenuModel
	poses    PosesModel
	play     *Model
	quitting bool
}

// NewAppModel creates the app starting at the map menu.
func NewAppModel(opts Options, cfg core.RuntimeConfig) AppModel {
	return AppModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts.MapsDir, cfg),
	}
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen. Child screens end with
// tea.Quit; the app swallows it and switches screens instead.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenPoses:
		return m.updatePoses(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsPoses():
		startID := ""
		if c := m.menu.Cursor(); c != nil {
			startID = c.ID
		}
		m.poses = NewPosesModel(m.opts.Store, m.menu.Items(), startID, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenPoses
		return m, m.poses.Init()

	case m.menu.Selected() != nil:
		return m.startPlay(m.menu.Selected().ID, nil)
	}

	return m, cmd
}

func (m AppModel) updatePoses(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPoses, cmd := m.poses.Update(msg)
	if posesModel, ok := newPoses.(PosesModel); ok {
		m.poses = posesModel
	}

	switch {
	case m.poses.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.poses.IsGoingBack():
		return m.backToMenu(nil)

	case m.poses.Selected() != nil:
		sel := m.poses.Selected()
		return m.startPlay(sel.MapID, &sel.Pose)
	}

	return m, cmd
}

func (m AppModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if playModel, ok := newModel.(Model); ok {
		m.play = &playModel
	}

	switch {
	case m.play.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.play.BackToMenu():
		return m.backToMenu(nil)
	}
	return m, cmd
}

// startPlay opens a session on mapID, optionally at a saved pose.
func (m AppModel) startPlay(mapID string, at *raycast.Pose) (tea.Model, tea.Cmd) {
	mp, err := maps.Resolve(mapID, m.opts.MapsDir)
	if err != nil {
		return m.backToMenu(err)
	}
	s, err := engine.NewSession(mp, m.opts.Config)
	if err != nil {
		return m.backToMenu(err)
	}
	if at != nil {
		if err := s.SetPose(*at); err != nil {
			return m.backToMenu(fmt.Errorf("saved pose no longer fits %s: %w", mapID, err))
		}
	}

	play := NewModel(s, m.opts, m.config)
	play.embedded = true
	m.play = &play
	m.screen = screenPlay
	return m, m.play.Init()
}

func (m AppModel) backToMenu(err error) (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.opts.MapsDir, m.config)
	if err != nil {
		m.menu.SetError(err)
	}
	m.play = nil
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenPoses:
		return m.poses.View()
	default:
		return m.menu.View()
	}
}

// RunApp runs the menu-driven app until the user quits.
func RunApp(opts Options, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewAppModel(opts, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
