package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-raycaster/internal/maps"
	"github.com/vovakirdan/tui-raycaster/internal/raycast"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

// Poses screen layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the map list sidebar
	sidebarWidth       = 20  // Width of the map list sidebar
	maxPoses           = 100 // Max poses to load
)

// PosesKeyMap defines the key bindings for the saved poses screen.
type PosesKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextMap key.Binding
	PrevMap key.Binding
	Select  key.Binding
	Delete  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PosesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMap, k.Select, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k PosesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMap, k.PrevMap},
		{k.Select, k.Delete, k.Back, k.Quit},
	}
}

// DefaultPosesKeyMap returns default key bindings.
func DefaultPosesKeyMap() PosesKeyMap {
	return PosesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMap: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next map"),
		),
		PrevMap: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev map"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go there"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PosesModel is the Bubble Tea model for browsing saved poses.
type PosesModel struct {
	maps        []maps.Info
	mapCursor   int
	store       *storage.Store
	poses       []storage.PoseEntry
	table       table.Model
	help        help.Model
	keys        PosesKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	selected    *storage.PoseEntry
	showSidebar bool
}

// NewPosesModel creates the saved poses screen, starting on startMapID
// when it is listed.
func NewPosesModel(store *storage.Store, items []maps.Info, startMapID string, width, height int) PosesModel {
	h := help.New()
	h.ShowAll = false

	m := PosesModel{
		maps:        items,
		store:       store,
		keys:        DefaultPosesKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, info := range items {
		if info.ID == startMapID {
			m.mapCursor = i
		}
	}

	m.table = m.createTable()
	if len(m.maps) > 0 {
		m.loadPoses(m.maps[m.mapCursor].ID)
	}
	return m
}

// createTable creates a new table with appropriate columns.
func (m *PosesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "X", Width: 8},
		{Title: "Y", Width: 8},
		{Title: "Angle", Width: 7},
		{Title: "Saved", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadPoses loads poses for the given map ID.
func (m *PosesModel) loadPoses(mapID string) {
	m.poses = nil
	if m.store != nil {
		if poses, err := m.store.ListPoses(mapID, maxPoses); err == nil {
			m.poses = poses
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current poses.
func (m *PosesModel) updateTableRows() {
	rows := make([]table.Row, len(m.poses))
	for i, p := range m.poses {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.1f", p.Pose.X),
			fmt.Sprintf("%.1f", p.Pose.Y),
			fmt.Sprintf("%.0f°", raycast.Degrees(p.Pose.Angle)),
			p.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the poses model.
func (m PosesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the poses screen.
func (m PosesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMap):
			if len(m.maps) > 0 {
				m.mapCursor = (m.mapCursor + 1) % len(m.maps)
				m.loadPoses(m.maps[m.mapCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMap):
			if len(m.maps) > 0 {
				m.mapCursor = (m.mapCursor - 1 + len(m.maps)) % len(m.maps)
				m.loadPoses(m.maps[m.mapCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if i := m.table.Cursor(); i >= 0 && i < len(m.poses) {
				p := m.poses[i]
				m.selected = &p
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if i := m.table.Cursor(); i >= 0 && i < len(m.poses) && m.store != nil {
				if err := m.store.DeletePose(m.poses[i].ID); err == nil {
					m.loadPoses(m.maps[m.mapCursor].ID)
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the poses screen.
func (m PosesModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "SAVED POSES"
	if len(m.maps) > 0 {
		title = fmt.Sprintf("SAVED POSES - %s", m.maps[m.mapCursor].Name)
	}
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the table with a sidebar for map selection.
func (m PosesModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Maps\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, info := range m.maps {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.mapCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := info.Name
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the current map name above the table.
func (m PosesModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.maps) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.maps[m.mapCursor].Name), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m PosesModel) renderTableContent() string {
	if len(m.poses) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		if m.store == nil {
			return emptyStyle.Render("No database open.")
		}
		return emptyStyle.Render("No poses saved yet.\nPress v while walking to save one.")
	}
	return m.table.View()
}

// Selected returns the chosen pose, or nil.
func (m PosesModel) Selected() *storage.PoseEntry {
	return m.selected
}

// IsGoingBack returns true if user wants to go back to menu.
func (m PosesModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m PosesModel) IsQuitting() bool {
	return m.quitting
}
