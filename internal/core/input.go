package core

// Action represents a semantic input action, abstracted from physical key presses.
// This allows sessions to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone          Action = iota
	ActionForward              // W, Up arrow - walk forward
	ActionBackward             // S, Down arrow - walk backward
	ActionTurnLeft             // A, Left arrow - rotate counter-clockwise
	ActionTurnRight            // D, Right arrow - rotate clockwise
	ActionStrafeLeft           // Q, comma - sidestep left
	ActionStrafeRight          // E, period - sidestep right
	ActionToggleMinimap        // M - show/hide the minimap overlay
	ActionSavePose             // V - bookmark the current pose
	ActionBack                 // B, Escape - go back to menu
	ActionQuit                 // Ctrl+C - exit session
	ActionPause                // P - pause/unpause input
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionForward:
		return "Forward"
	case ActionBackward:
		return "Backward"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTurnRight:
		return "TurnRight"
	case ActionStrafeLeft:
		return "StrafeLeft"
	case ActionStrafeRight:
		return "StrafeRight"
	case ActionToggleMinimap:
		return "ToggleMinimap"
	case ActionSavePose:
		return "SavePose"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// ParseAction maps a wire name ("forward", "turn_left", ...) to an Action.
// Used by the websocket surface.
func ParseAction(name string) Action {
	switch name {
	case "forward":
		return ActionForward
	case "backward":
		return ActionBackward
	case "turn_left":
		return ActionTurnLeft
	case "turn_right":
		return ActionTurnRight
	case "strafe_left":
		return ActionStrafeLeft
	case "strafe_right":
		return ActionStrafeRight
	case "minimap":
		return ActionToggleMinimap
	case "pause":
		return ActionPause
	case "save_pose":
		return ActionSavePose
	default:
		return ActionNone
	}
}

// InputFrame represents the input state during one tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
