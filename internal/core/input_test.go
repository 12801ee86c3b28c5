package core

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		name string
		want Action
	}{
		{"forward", ActionForward},
		{"backward", ActionBackward},
		{"turn_left", ActionTurnLeft},
		{"turn_right", ActionTurnRight},
		{"strafe_left", ActionStrafeLeft},
		{"strafe_right", ActionStrafeRight},
		{"minimap", ActionToggleMinimap},
		{"pause", ActionPause},
		{"save_pose", ActionSavePose},
		{"quit", ActionNone},
		{"", ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAction(tt.name); got != tt.want {
				t.Errorf("ParseAction(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}
	f.Set(ActionForward)
	c := f.Clone()
	f.Clear()

	if f.Has(ActionForward) || !f.Empty() {
		t.Error("Clear left actions behind")
	}
	if !c.Has(ActionForward) {
		t.Error("clone lost an action after Clear")
	}

	var zero InputFrame
	if zero.Has(ActionForward) {
		t.Error("zero frame reports an action")
	}
	zero.Set(ActionPause)
	if !zero.Has(ActionPause) {
		t.Error("Set on a zero frame was lost")
	}
}
