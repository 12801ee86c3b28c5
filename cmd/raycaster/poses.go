package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/maps"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

var (
	flagPosesLimit int
	flagPosesClear bool
)

var posesCmd = &cobra.Command{
	Use:   "poses <map>",
	Short: "Show saved poses for a map",
	Long: `Display the most recent saved poses for the specified map, newest
first, with recent benchmark runs.

Examples:
  raycaster poses arena
  raycaster poses maze --limit 5
  raycaster poses maze --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runPoses,
}

func init() {
	posesCmd.Flags().IntVar(&flagPosesLimit, "limit", 10, "Number of poses to show")
	posesCmd.Flags().BoolVar(&flagPosesClear, "clear", false, "Delete all saved poses for the map")
}

func runPoses(_ *cobra.Command, args []string) {
	m, err := maps.Resolve(args[0], flagMapsDir)
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer store.Close()

	if flagPosesClear {
		if err := store.ClearPoses(m.ID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared saved poses for %s.\n", m.ID)
		return
	}

	poses, err := store.ListPoses(m.ID, flagPosesLimit)
	if err != nil {
		fail("retrieving poses: %v", err)
	}

	fmt.Printf("Saved Poses - %s\n", m.Name)
	fmt.Println()

	if len(poses) == 0 {
		fmt.Println("No poses saved yet.")
		fmt.Println()
		fmt.Printf("Press V while playing 'raycaster play %s' to save one.\n", m.ID)
	} else {
		cs := m.EffectiveCellSize()
		fmt.Printf("  %-5s  %-7s  %-7s  %-6s  %-8s  %s\n", "ID", "X", "Y", "Angle", "Label", "Saved")
		fmt.Printf("  %-5s  %-7s  %-7s  %-6s  %-8s  %s\n", "--", "-", "-", "-----", "-----", "-----")
		for _, p := range poses {
			fmt.Printf("  %-5d  %-7.2f  %-7.2f  %-6.0f  %-8s  %s\n",
				p.ID, p.Pose.X/cs, p.Pose.Y/cs, p.Pose.Angle*180/math.Pi,
				p.Label, p.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	runs, err := store.RecentBench(m.ID, 3)
	if err == nil && len(runs) > 0 {
		fmt.Println()
		fmt.Println("Recent benchmarks:")
		for _, r := range runs {
			fmt.Printf("  %dx%d  %d frames  %.0f fps  %s\n",
				r.Width, r.Height, r.Frames, r.FPS(), r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}
}
