package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/prestige/internal/progression"
)

var flagLeaderboardLimit int

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard <game>",
	Short: "Show standings for a game",
	Long: `Display players ranked by global score, the score over all tiers.

Examples:
  prestige leaderboard tetris
  prestige leaderboard tetris --limit 3`,
	Args: cobra.ExactArgs(1),
	Run:  runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVar(&flagLeaderboardLimit, "limit", 10, "Number of players to show (0 = all)")
}

func runLeaderboard(cmd *cobra.Command, args []string) {
	gameID := args[0]

	a := loadApp()
	game := a.lookupGame(gameID)

	t, store := a.openTracker()
	defer store.Close()

	ctx := context.Background()
	standings, err := t.Leaderboard(ctx, gameID, flagLeaderboardLimit)
	if err != nil {
		store.Close()
		fail("Error retrieving standings: %v", err)
	}

	fmt.Printf("Leaderboard - %s\n", game.Title)
	fmt.Println()

	if len(standings) == 0 {
		fmt.Println("No progress recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'prestige add %s <player> <points>' to get started.\n", gameID)
		return
	}

	// Calculate column widths
	maxNameLen := 6 // "Player" header
	for _, s := range standings {
		maxNameLen = max(maxNameLen, len(s.Player))
	}

	// Print header
	fmt.Printf("  %-4s  %-*s  %-12s  %5s  %12s  %8s\n", "Rank", maxNameLen, "Player", "Tier", "Level", "Global", "Overall")
	fmt.Printf("  %-4s  %-*s  %-12s  %5s  %12s  %8s\n", "----", maxNameLen, "------", "----", "-----", "------", "-------")

	for i, s := range standings {
		fmt.Printf("  %-4d  %-*s  %-12s  %5d  %12d  %7.2f%%\n",
			i+1, maxNameLen, s.Player, progression.TierName(s.Tier), s.Level, s.GlobalScore, s.ProgressGlobal)
	}

	stats, err := store.Stats(ctx, gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("%d players, %d updates, %d points recorded", stats.Players, stats.Events, stats.PointsTotal)
		if !stats.LastPlayed.IsZero() {
			fmt.Printf(", last on %s", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}
}
