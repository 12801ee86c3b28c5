package engine

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-raycaster/internal/raycast"
)

// BenchResult summarizes a benchmark run.
type BenchResult struct {
	MapID    string
	Width    int
	Height   int
	Frames   int
	Rays     int
	Commands int
	Elapsed  time.Duration
}

// PerFrame returns the mean time per frame.
func (r BenchResult) PerFrame() time.Duration {
	if r.Frames == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Frames)
}

// FPS returns frames per second, or 0 when nothing was timed.
func (r BenchResult) FPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Elapsed.Seconds()
}

// Bench renders frames while spinning the player one full turn in place,
// so every direction of the map is cast. The session pose is restored.
func Bench(s *Session, frames int) BenchResult {
	res := BenchResult{
		MapID:  s.ID(),
		Width:  s.proj.ScreenWidth,
		Height: s.proj.ScreenHeight,
	}
	if frames <= 0 {
		return res
	}

	start := s.player.Pose
	defer func() { s.player.Pose = start }()

	step := 2 * math.Pi / float64(frames)
	began := time.Now()
	for i := 0; i < frames; i++ {
		s.player.Pose.Angle = raycast.NormalizeAngle(start.Angle + float64(i)*step)
		f := s.Frame()
		res.Rays += len(f.Rays)
		res.Commands += len(f.Commands)
	}
	res.Elapsed = time.Since(began)
	res.Frames = frames
	return res
}
