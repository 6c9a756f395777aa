package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/prestige/internal/progression"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history <game> <player>",
	Short: "Show a player's recent score changes",
	Long: `Display the latest recorded changes of a player, newest first.

Examples:
  prestige history tetris ana
  prestige history tetris ana --limit 50`,
	Args: cobra.ExactArgs(2),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of changes to show")
}

func runHistory(cmd *cobra.Command, args []string) {
	gameID, player := args[0], args[1]

	a := loadApp()
	game := a.lookupGame(gameID)

	t, store := a.openTracker()
	defer store.Close()

	events, err := t.History(context.Background(), gameID, player, flagHistoryLimit)
	if err != nil {
		store.Close()
		fail("Error retrieving history: %v", err)
	}

	fmt.Printf("History - %s - %s\n", game.Title, player)
	fmt.Println()

	if len(events) == 0 {
		fmt.Println("No changes recorded yet.")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %10s  %-24s  %-24s\n", "Date", "Points", "Before", "After")
	fmt.Printf("  %-16s  %10s  %-24s  %-24s\n", "----", "------", "------", "-----")

	for _, e := range events {
		fmt.Printf("  %-16s  %10d  %-24s  %-24s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Delta,
			fmt.Sprintf("%s, %d", progression.TierName(e.TierBefore), e.ScoreBefore),
			fmt.Sprintf("%s, %d", progression.TierName(e.TierAfter), e.ScoreAfter),
		)
	}
}
