package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a map picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to walk a map.
Tab opens the saved poses of the selected map; Enter on a pose
starts the map there. Esc returns to the menu from a map.

Examples:
  raycaster menu
  raycaster menu --maps ./maps --fps 20`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	width, height := terminalSize(cfg)

	store := openStore()
	opts := tui.Options{Config: cfg, MapsDir: flagMapsDir, Store: store, TickRate: flagFPS}
	err := tui.RunApp(opts, core.RuntimeConfig{ScreenW: width, ScreenH: height, TickRate: flagFPS})

	if store != nil {
		store.Close()
	}
	if err != nil {
		fail("%v", err)
	}
}
