package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/prestige/internal/progression"
)

var addCmd = &cobra.Command{
	Use:   "add <game> <player> <points>",
	Short: "Record points for a player",
	Long: `Add points to a player's progress and report level and tier changes.

Points past the end of a tier carry over into the next tier.

Examples:
  prestige add tetris ana 1500
  prestige add random_number bob 42`,
	Args: cobra.ExactArgs(3),
	Run:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) {
	gameID, player := args[0], args[1]
	delta, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		fail("Error: points must be a whole number, got %q", args[2])
	}

	a := loadApp()
	a.lookupGame(gameID)

	t, store := a.openTracker()
	defer store.Close()

	upd, err := t.AddScore(context.Background(), gameID, player, delta)
	if err != nil {
		store.Close()
		fail("Error: %s", describeError(err))
	}

	fmt.Printf("%s: +%d points\n", player, delta)
	fmt.Printf("  %s level %d -> %s level %d (%.2f%%)\n",
		progression.TierName(upd.Before.Tier), upd.Before.Level,
		progression.TierName(upd.After.Tier), upd.After.Level,
		upd.After.ProgressWithinLevel)

	switch {
	case upd.TierUps == 1:
		fmt.Printf("  Reached %s!\n", progression.TierName(upd.After.Tier))
	case upd.TierUps > 1:
		fmt.Printf("  Climbed %d tiers to %s!\n", upd.TierUps, progression.TierName(upd.After.Tier))
	case upd.LevelChanged():
		fmt.Printf("  Level up!\n")
	}

	fmt.Printf("  Global score %d / %d (%.2f%%)\n",
		upd.After.GlobalScore, upd.After.TotalPossibleScore, upd.After.ProgressGlobal)
}
