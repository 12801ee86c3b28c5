// raycaster walks grid maps in the terminal, over SSH or in a browser.
//
// Usage:
//
//	raycaster maps                - List available maps
//	raycaster play [map]          - Walk a map
//	raycaster menu                - Pick maps interactively
//	raycaster render <map>        - Print one frame as text
//	raycaster poses <map>         - Show saved poses for a map
//	raycaster bench <map>         - Time frame generation
//	raycaster serve               - Start SSH server for remote play
//	raycaster web                 - Start WebSocket server for browsers
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 30)
//	--config <path>    - Load settings from a YAML file
//	--preset <name>    - Apply a projection preset
//	--maps <dir>       - Directory with extra map files
//	--db <path>        - Set database path (default: ~/.raycaster/raycaster.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagConfig  string
	flagPreset  string
	flagMapsDir string
	flagDBPath  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "raycaster",
	Short: "Raycaster - walk grid maps in your terminal",
	Long: `Raycaster renders a first-person view of a 2D grid map by casting
one ray per screen column. It runs in the terminal, over SSH, or in a
browser through a WebSocket.

Available commands:
  maps     - Show all available maps
  play     - Walk a specific map
  menu     - Interactive map picker
  render   - Print a single frame
  poses    - View saved poses
  bench    - Measure frame generation
  serve    - Start SSH server for remote play
  web      - Start WebSocket server

Examples:
  raycaster maps
  raycaster play maze
  raycaster render arena --angle 45
  raycaster serve --ssh :2222
  raycaster web --addr :8080`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom raycaster config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Projection preset: terminal, classic, wide, narrow")
	rootCmd.PersistentFlags().StringVar(&flagMapsDir, "maps", "", "Directory with extra map files")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.raycaster/raycaster.db", "Path to poses database")

	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(posesCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig reads the config file chain and applies --preset.
func loadConfig() config.RaycasterConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagPreset != "" {
		if err := config.ApplyPreset(&cfg, config.Preset(flagPreset)); err != nil {
			fail("%v", err)
		}
	}
	return cfg
}

// openStore opens the database, or returns nil with a warning so the
// caller can continue without saved poses.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, or the configured screen
// when stdout is not a terminal.
func terminalSize(cfg config.RaycasterConfig) (int, int) {
	width, height := cfg.Screen.Width, cfg.Screen.Height
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		if width <= 0 {
			width = w
		}
		if height <= 0 {
			height = h
		}
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return width, height
}
