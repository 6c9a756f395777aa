package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/prestige/internal/platform/tui"
)

var statusCmd = &cobra.Command{
	Use:   "status <game> <player>",
	Short: "Show a player's stored progress",
	Long: `Show the level, tier and progress of a player.

Players without recorded progress are shown at the start of the first tier.

Examples:
  prestige status tetris ana`,
	Args: cobra.ExactArgs(2),
	Run:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) {
	gameID, player := args[0], args[1]

	a := loadApp()
	game := a.lookupGame(gameID)

	t, store := a.openTracker()
	defer store.Close()

	st, err := t.Status(context.Background(), gameID, player)
	if err != nil {
		store.Close()
		fail("Error: %s", describeError(err))
	}

	fmt.Printf("%s - %s\n", game.Title, player)
	fmt.Println(tui.RenderStanding(st, terminalWidth()))
	if !st.UpdatedAt.IsZero() {
		fmt.Printf("Last updated %s\n", st.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}
