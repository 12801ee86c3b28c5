package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/maps"
)

// MenuModel is the Bubble Tea model for the map picker.
type MenuModel struct {
	items     []maps.Info
	cursor    int
	width     int
	height    int
	keys      MenuKeyMap
	help      help.Model
	err       string
	quitting  bool
	selected  *maps.Info // set when user picks a map
	openPoses bool       // set when user pressed Tab for saved poses
}

// NewMenuModel creates a menu listing the built-in maps and those in mapsDir.
func NewMenuModel(mapsDir string, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	items, err := maps.ListAll(mapsDir)
	if err != nil {
		m.err = err.Error()
		items = maps.List()
	}
	m.items = items
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionPoses:
		m.openPoses = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  R A Y C A S T E R  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a map", m.width))
	b.WriteString("\n\n")

	nameW := 0
	for _, item := range m.items {
		nameW = max(nameW, len(item.Name))
	}
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-*s  %3dx%-3d", cursor, nameW, item.Name, item.Width, item.Height)
		if item.Source != "builtin" {
			line += " *"
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	if len(m.items) == 0 {
		b.WriteString(centerText(dimStyle.Render("No maps found."), m.width))
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(centerText(errorStyle.Render(m.err), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// SetError shows an error line under the map list.
func (m *MenuModel) SetError(err error) {
	if err == nil {
		m.err = ""
		return
	}
	m.err = err.Error()
}

// Selected returns the selected map, or nil if none selected.
func (m MenuModel) Selected() *maps.Info {
	return m.selected
}

// Cursor returns the highlighted map, or nil for an empty menu.
func (m MenuModel) Cursor() *maps.Info {
	if len(m.items) == 0 {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsPoses returns true if user requested the saved poses screen.
func (m MenuModel) WantsPoses() bool {
	return m.openPoses
}

// Items returns the listed maps.
func (m MenuModel) Items() []maps.Info {
	return m.items
}
