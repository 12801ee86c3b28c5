// Package engine runs a raycaster session: it owns the player, steps it
// with platform input and turns each tick into draw commands. It contains
// no Bubble Tea code so every surface can drive it.
package engine

import (
	"fmt"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/maps"
	"github.com/vovakirdan/tui-raycaster/internal/raster"
	"github.com/vovakirdan/tui-raycaster/internal/raycast"
)

// Frame is one rendered view of the world.
type Frame struct {
	Number   uint64                `json:"frame"`
	Width    int                   `json:"width"`
	Height   int                   `json:"height"`
	Pose     raycast.Pose          `json:"pose"`
	Rays     raycast.RayField      `json:"-"`
	Commands []raycast.DrawCommand `json:"commands"`
}

// Session is a player walking one map.
type Session struct {
	m    maps.Map
	grid *raycast.Grid
	cfg  config.RaycasterConfig
	proj raycast.Config

	player      Player
	frame       uint64
	paused      bool
	showMinimap bool

	raster *raster.Rasterizer
	cmds   []raycast.DrawCommand // reused by Render
}

// NewSession builds a session for m. The map's cell size wins over the
// configured one when the map sets it.
func NewSession(m maps.Map, cfg config.RaycasterConfig) (*Session, error) {
	if m.CellSize <= 0 {
		m.CellSize = cfg.Projection.CellSize
	}
	g, err := m.Grid()
	if err != nil {
		return nil, err
	}
	cfg.Projection.CellSize = g.CellSize()
	if cfg.Player.Radius*2 >= g.CellSize() {
		return nil, fmt.Errorf("engine: player radius %v does not fit map %s", cfg.Player.Radius, m.ID)
	}

	s := &Session{
		m:      m,
		grid:   g,
		cfg:    cfg,
		raster: raster.New(raster.GlyphsFor(cfg.Colors.Palette())),
	}
	if err := s.Reset(core.RuntimeConfig{}); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the map identifier.
func (s *Session) ID() string {
	return s.m.ID
}

// Title returns the map display name.
func (s *Session) Title() string {
	return s.m.Name
}

// Grid returns the session's grid.
func (s *Session) Grid() *raycast.Grid {
	return s.grid
}

// Projection returns the current projection config.
func (s *Session) Projection() raycast.Config {
	return s.proj
}

// Reset puts the player back at the map start and sizes the viewport.
// Zero screen dimensions fall back to the configured screen.
func (s *Session) Reset(rc core.RuntimeConfig) error {
	if err := s.Resize(rc.ScreenW, rc.ScreenH); err != nil {
		return err
	}
	s.player = Player{Pose: s.m.StartPose().Normalized(), Movement: MovementFrom(s.cfg.Player)}
	s.frame = 0
	s.paused = false
	s.showMinimap = s.cfg.Minimap.Enabled
	return nil
}

// Resize changes the viewport; one ray is cast per column.
func (s *Session) Resize(width, height int) error {
	proj, err := s.cfg.ToRaycast(width, height)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	s.proj = proj
	return nil
}

// Pose returns the player's pose.
func (s *Session) Pose() raycast.Pose {
	return s.player.Pose
}

// SetPose moves the player, for example to a saved pose.
// Poses inside walls or off the map are rejected.
func (s *Session) SetPose(p raycast.Pose) error {
	if s.player.blocked(p.X, p.Y, s.grid) {
		return fmt.Errorf("engine: pose (%.1f, %.1f) collides with a wall on %s", p.X, p.Y, s.m.ID)
	}
	s.player.Pose = p.Normalized()
	return nil
}

// Step advances the session by one tick.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if in.Has(core.ActionToggleMinimap) {
		s.showMinimap = !s.showMinimap
	}
	s.frame++

	moved := false
	if !s.paused {
		moved = s.player.Step(in, s.grid)
	}
	return core.StepResult{State: s.State(), Moved: moved}
}

// State returns the session flags.
func (s *Session) State() core.SessionState {
	return core.SessionState{
		Frame:       s.frame,
		Paused:      s.paused,
		ShowMinimap: s.showMinimap,
	}
}

// Frame casts the rays for the current pose and returns the draw
// commands in painting order: scene, then the minimap when shown.
// The returned slices are owned by the caller.
func (s *Session) Frame() Frame {
	pose := s.player.Pose
	field := raycast.Rays(pose, s.grid, s.proj.FOV, s.proj.ScreenWidth)
	return Frame{
		Number:   s.frame,
		Width:    s.proj.ScreenWidth,
		Height:   s.proj.ScreenHeight,
		Pose:     pose,
		Rays:     field,
		Commands: s.appendCommands(nil, field, pose),
	}
}

// Render draws the current view into dst, reusing internal buffers.
// The projection follows the screen size. When the projection cannot be
// resized, dst is cleared and the error returned.
func (s *Session) Render(dst *core.Screen) error {
	if dst.Width() != s.proj.ScreenWidth || dst.Height() != s.proj.ScreenHeight {
		if err := s.Resize(dst.Width(), dst.Height()); err != nil {
			dst.Clear()
			return err
		}
	}
	pose := s.player.Pose
	field := raycast.Rays(pose, s.grid, s.proj.FOV, s.proj.ScreenWidth)
	s.cmds = s.appendCommands(s.cmds[:0], field, pose)
	s.raster.Draw(dst, s.cmds)
	return nil
}

func (s *Session) appendCommands(dst []raycast.DrawCommand, field raycast.RayField, pose raycast.Pose) []raycast.DrawCommand {
	dst = raycast.AppendScene(dst, field, pose, s.proj)
	if !s.showMinimap {
		return dst
	}
	mm := s.cfg.Minimap
	scale := mm.CellChars / s.grid.CellSize()
	w, h := raycast.MinimapSize(s.grid, scale)
	dst = append(dst, raycast.FilledRect(mm.OriginX, mm.OriginY, w, h, s.proj.Colors.Ceiling))
	return raycast.AppendMinimap(dst, mm.OriginX, mm.OriginY, scale, field, s.grid, pose, s.proj.Colors)
}
