package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/engine"
	"github.com/vovakirdan/tui-raycaster/internal/maps"
	"github.com/vovakirdan/tui-raycaster/internal/platform/tui"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

var flagResume bool

var playCmd = &cobra.Command{
	Use:   "play [map]",
	Short: "Walk a map",
	Long: `Start walking the specified map (default: arena). The map may be a
built-in id, an id from the --maps directory, or a path to a map file.

Controls:
  W/S, Up/Down     - Walk forward/backward
  A/D, Left/Right  - Turn
  Q/E              - Strafe
  M/Tab            - Toggle minimap
  P/Space          - Pause
  V                - Save pose
  Ctrl+S           - Screenshot
  ?                - Help
  Esc/Ctrl+C       - Quit

Examples:
  raycaster play
  raycaster play maze --resume
  raycaster play ./my-map.yaml --preset classic`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Start from the last saved pose")
}

func runPlay(_ *cobra.Command, args []string) {
	mapID := "arena"
	if len(args) == 1 {
		mapID = args[0]
	}

	cfg := loadConfig()
	m, err := maps.Resolve(mapID, flagMapsDir)
	if err != nil {
		fail("%v", err)
	}
	s, err := engine.NewSession(m, cfg)
	if err != nil {
		fail("%v", err)
	}

	width, height := terminalSize(cfg)
	rc := core.RuntimeConfig{ScreenW: width, ScreenH: height, TickRate: flagFPS}

	store := openStore()
	if flagResume && store != nil {
		resume(s, store)
	}

	runErr := tui.Run(s, tui.Options{Config: cfg, MapsDir: flagMapsDir, Store: store, TickRate: flagFPS}, rc)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("%v", runErr)
	}
}

// resume moves the session to the last saved pose for its map.
func resume(s *engine.Session, store *storage.Store) {
	entry, err := store.LastPose(s.ID())
	if errors.Is(err, storage.ErrNoPose) {
		fmt.Fprintf(os.Stderr, "No saved pose for %s, starting at the map start.\n", s.ID())
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	if err := s.SetPose(entry.Pose); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}
