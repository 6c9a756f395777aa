package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <game> <player>",
	Short: "Delete a player's progress and history",
	Args:  cobra.ExactArgs(2),
	Run:   runReset,
}

func runReset(cmd *cobra.Command, args []string) {
	gameID, player := args[0], args[1]

	a := loadApp()
	a.lookupGame(gameID)

	_, store := a.openTracker()
	defer store.Close()

	if err := store.ResetPlayer(context.Background(), gameID, player); err != nil {
		store.Close()
		fail("Error: %s", describeError(err))
	}
	a.logger.Info("player reset", "game", gameID, "player", player)
	fmt.Printf("Progress of %s in %s deleted.\n", player, gameID)
}
