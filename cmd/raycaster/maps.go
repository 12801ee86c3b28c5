package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycaster/internal/maps"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List all available maps",
	Long: `Shows the built-in maps and any maps found in the --maps directory.
A map file in the directory shadows a built-in map with the same id.`,
	Run: runMaps,
}

func runMaps(_ *cobra.Command, _ []string) {
	infos, err := maps.ListAll(flagMapsDir)
	if err != nil {
		fail("%v", err)
	}

	if len(infos) == 0 {
		fmt.Println("No maps available.")
		return
	}

	fmt.Println("Available maps:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, m := range infos {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Size", "Name")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "----", "----")
	for _, m := range infos {
		size := fmt.Sprintf("%dx%d", m.Width, m.Height)
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, m.ID, size, m.Name)
	}

	fmt.Println()
	fmt.Println("Run 'raycaster play <id>' to walk a map.")
}
