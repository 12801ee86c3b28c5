package core

// RuntimeConfig contains configuration passed to a session at initialization.
// Sessions use this to adapt the viewport to the terminal size.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second (default 30)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// SessionState represents the current state of a session.
// Returned by Session.State() to communicate status to the platform.
type SessionState struct {
	Frame       uint64 // Ticks stepped since the last reset
	Paused      bool   // Whether input is ignored
	ShowMinimap bool   // Whether the minimap overlay is drawn
}

// StepResult is returned by Session.Step() after each tick.
type StepResult struct {
	State SessionState
	Moved bool // Whether the pose changed this tick
}
