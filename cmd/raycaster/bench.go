package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/engine"
	"github.com/vovakirdan/tui-raycaster/internal/maps"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

var (
	flagBenchFrames int
	flagBenchWidth  int
	flagBenchHeight int
	flagBenchNoSave bool
)

var benchCmd = &cobra.Command{
	Use:   "bench <map>",
	Short: "Time frame generation for a map",
	Long: `Generate frames while turning the player one full circle at the map
start, then print the timing. Results are recorded in the database.

Examples:
  raycaster bench arena
  raycaster bench maze --frames 1000 --width 320 --height 200`,
	Args: cobra.ExactArgs(1),
	Run:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchFrames, "frames", 360, "Number of frames to generate")
	benchCmd.Flags().IntVar(&flagBenchWidth, "width", 320, "Frame width (rays per frame)")
	benchCmd.Flags().IntVar(&flagBenchHeight, "height", 200, "Frame height")
	benchCmd.Flags().BoolVar(&flagBenchNoSave, "no-save", false, "Do not record the run")
}

func runBench(_ *cobra.Command, args []string) {
	if flagBenchFrames <= 0 {
		fail("--frames must be positive")
	}

	cfg := loadConfig()
	m, err := maps.Resolve(args[0], flagMapsDir)
	if err != nil {
		fail("%v", err)
	}
	s, err := engine.NewSession(m, cfg)
	if err != nil {
		fail("%v", err)
	}
	if err := s.Reset(core.RuntimeConfig{ScreenW: flagBenchWidth, ScreenH: flagBenchHeight}); err != nil {
		fail("%v", err)
	}

	res := engine.Bench(s, flagBenchFrames)

	fmt.Printf("Benchmark - %s (%dx%d)\n", m.Name, res.Width, res.Height)
	fmt.Println()
	fmt.Printf("  Frames:    %d\n", res.Frames)
	fmt.Printf("  Rays:      %d\n", res.Rays)
	fmt.Printf("  Commands:  %d\n", res.Commands)
	fmt.Printf("  Elapsed:   %s\n", res.Elapsed)
	fmt.Printf("  Per frame: %s\n", res.PerFrame())
	fmt.Printf("  FPS:       %.0f\n", res.FPS())

	if flagBenchNoSave {
		return
	}
	store := openStore()
	if store == nil {
		return
	}
	defer store.Close()
	if _, err := store.SaveBench(storage.BenchRun{
		MapID:   res.MapID,
		Width:   res.Width,
		Height:  res.Height,
		Frames:  res.Frames,
		Rays:    res.Rays,
		Elapsed: res.Elapsed,
	}); err != nil {
		fmt.Printf("Warning: could not record run: %v\n", err)
	}
}
