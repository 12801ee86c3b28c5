package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// KeyMap defines the key bindings while walking a map.
// Terminals report presses, not releases, so each press (or key repeat)
// becomes one action on the next tick.
type KeyMap struct {
	Forward     key.Binding
	Backward    key.Binding
	TurnLeft    key.Binding
	TurnRight   key.Binding
	StrafeLeft  key.Binding
	StrafeRight key.Binding
	Minimap     key.Binding
	Pause       key.Binding
	SavePose    key.Binding
	Screenshot  key.Binding
	Help        key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default walking bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Forward: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/↑", "forward"),
		),
		Backward: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/↓", "back"),
		),
		TurnLeft: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "turn left"),
		),
		TurnRight: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "turn right"),
		),
		StrafeLeft: key.NewBinding(
			key.WithKeys("q", ","),
			key.WithHelp("q/,", "strafe left"),
		),
		StrafeRight: key.NewBinding(
			key.WithKeys("e", "."),
			key.WithHelp("e/.", "strafe right"),
		),
		Minimap: key.NewBinding(
			key.WithKeys("m", "tab"),
			key.WithHelp("m", "minimap"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		SavePose: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "save pose"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.TurnLeft, k.TurnRight, k.Minimap, k.Help, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Backward, k.TurnLeft, k.TurnRight},
		{k.StrafeLeft, k.StrafeRight, k.Minimap, k.Pause},
		{k.SavePose, k.Screenshot, k.Back, k.Quit},
	}
}

// Action translates a key message to a session action.
// Keys handled by the platform itself (help, screenshot) map to ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Forward):
		return core.ActionForward
	case key.Matches(msg, k.Backward):
		return core.ActionBackward
	case key.Matches(msg, k.TurnLeft):
		return core.ActionTurnLeft
	case key.Matches(msg, k.TurnRight):
		return core.ActionTurnRight
	case key.Matches(msg, k.StrafeLeft):
		return core.ActionStrafeLeft
	case key.Matches(msg, k.StrafeRight):
		return core.ActionStrafeRight
	case key.Matches(msg, k.Minimap):
		return core.ActionToggleMinimap
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.SavePose):
		return core.ActionSavePose
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionPoses
	MenuActionBack
	MenuActionQuit
)

// MenuKeyMap defines the key bindings of the map menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Poses  key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns the default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Poses: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "saved poses"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Poses, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// MenuAction translates a key to a menu action.
func (k MenuKeyMap) MenuAction(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.Select):
		return MenuActionSelect
	case key.Matches(msg, k.Poses):
		return MenuActionPoses
	case key.Matches(msg, k.Back):
		return MenuActionBack
	}
	return MenuActionNone
}
