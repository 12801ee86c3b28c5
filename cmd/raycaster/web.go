package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/platform/web"
)

var (
	flagWebAddr      string
	flagWebMap       string
	flagWebWidth     int
	flagWebHeight    int
	flagWallScale    float64
	flagMinimapScale float64
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the WebSocket server for browsers",
	Long: `Start an HTTP server with a canvas page. Each browser tab opens a
WebSocket, gets its own session and receives the draw commands of every
tick as JSON.

Examples:
  raycaster web
  raycaster web --addr :9000 --map maze
  raycaster web --width 640 --height 400 --wall-scale 400`,
	Run: runWeb,
}

func init() {
	defaults := web.DefaultServerConfig()
	webCmd.Flags().StringVar(&flagWebAddr, "addr", defaults.Address, "HTTP listen address (host:port)")
	webCmd.Flags().StringVar(&flagWebMap, "map", defaults.MapID, "Map used when the page does not pick one")
	webCmd.Flags().IntVar(&flagWebWidth, "width", defaults.Width, "Canvas width in pixels")
	webCmd.Flags().IntVar(&flagWebHeight, "height", defaults.Height, "Canvas height in pixels")
	webCmd.Flags().Float64Var(&flagWallScale, "wall-scale", defaults.App.Projection.WallScale, "Wall height scale")
	webCmd.Flags().Float64Var(&flagMinimapScale, "minimap-scale", defaults.App.Minimap.CellChars, "Minimap pixels per map cell")
}

func runWeb(cmd *cobra.Command, _ []string) {
	cfg := web.DefaultServerConfig()
	cfg.Address = flagWebAddr
	cfg.MapID = flagWebMap
	cfg.MapsDir = flagMapsDir
	cfg.Width = flagWebWidth
	cfg.Height = flagWebHeight
	cfg.TickRate = flagFPS

	if flagConfig != "" {
		app, err := config.Load(flagConfig)
		if err != nil {
			fail("%v", err)
		}
		cfg.App = app
	}
	if flagPreset != "" {
		if err := config.ApplyPreset(&cfg.App, config.Preset(flagPreset)); err != nil {
			fail("%v", err)
		}
	}
	if cmd.Flags().Changed("wall-scale") {
		cfg.App.Projection.WallScale = flagWallScale
	}
	if cmd.Flags().Changed("minimap-scale") {
		cfg.App.Minimap.CellChars = flagMinimapScale
		cfg.App.Minimap.OriginX = flagMinimapScale
		cfg.App.Minimap.OriginY = flagMinimapScale
	}
	if err := cfg.App.Validate(); err != nil {
		fail("%v", err)
	}

	if store := openStore(); store != nil {
		cfg.Store = store
		defer store.Close()
	}

	server := web.NewServer(cfg)
	fmt.Printf("Starting raycaster web server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
