package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/prestige/internal/progression"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all games in the catalog",
	Long: `Shows every game in the loaded catalog with the shape of its curve.

The catalog is read from --config, ~/.prestige/games.yaml or
./configs/games.yaml, falling back to the built-in defaults.`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func runList(cmd *cobra.Command, args []string) {
	a := loadApp()
	games := a.games.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %6s  %5s  %12s\n", maxIDLen, "ID", maxTitleLen, "Title", "Levels", "Tiers", "Total score")
	fmt.Printf("  %-*s  %-*s  %6s  %5s  %12s\n", maxIDLen, "--", maxTitleLen, "-----", "------", "-----", "-----------")

	// Print games
	for _, info := range games {
		game := a.lookupGame(info.ID)
		table, err := progression.BuildTable(game.Curve)
		if err != nil {
			fail("Error building table for %s: %v", info.ID, err)
		}
		fmt.Printf("  %-*s  %-*s  %6d  %5d  %12d\n",
			maxIDLen, info.ID, maxTitleLen, info.Title,
			game.Curve.LevelsPerTier, table.TierCount(), table.TotalPossibleScore())
	}

	fmt.Println()
	fmt.Println("Run 'prestige table <id>' to see a game's thresholds.")
}
