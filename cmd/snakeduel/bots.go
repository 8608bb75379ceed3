package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-duel/internal/registry"
)

var botsCmd = &cobra.Command{
	Use:   "bots",
	Short: "List all available bot strategies",
	Long:  `Shows the bot strategies that can drive snake B in play, or either snake in the arena.`,
	Run:   runBots,
}

func runBots(cmd *cobra.Command, args []string) {
	bots := registry.List()

	if len(bots) == 0 {
		fmt.Println("No bots available.")
		return
	}

	fmt.Println("Available bots:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, b := range bots {
		if len(b.ID) > maxIDLen {
			maxIDLen = len(b.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, b := range bots {
		fmt.Printf("  %-*s  %s\n", maxIDLen, b.ID, b.Title)
	}

	fmt.Println()
	fmt.Println("Run 'snakeduel play --opponent <id>' to play against one.")
}
