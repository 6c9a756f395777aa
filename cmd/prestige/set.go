package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/prestige/internal/progression"
)

var (
	flagSetTier  int
	flagSetScore int64
)

var setCmd = &cobra.Command{
	Use:   "set <game> <player>",
	Short: "Overwrite a player's tier and score",
	Long: `Replace a player's stored progress, e.g. to repair a record.

The score is resolved from --tier first, so a score past the tier's end is
stored in the tier it carries over into.

Examples:
  prestige set tetris ana --tier 2 --score 0`,
	Args: cobra.ExactArgs(2),
	Run:  runSet,
}

func init() {
	setCmd.Flags().IntVar(&flagSetTier, "tier", 1, "Tier to store")
	setCmd.Flags().Int64Var(&flagSetScore, "score", 0, "Score within the tier")
}

func runSet(cmd *cobra.Command, args []string) {
	gameID, player := args[0], args[1]

	a := loadApp()
	a.lookupGame(gameID)

	t, store := a.openTracker()
	defer store.Close()

	st, err := t.SetProgress(context.Background(), gameID, player, flagSetTier, flagSetScore)
	if err != nil {
		store.Close()
		fail("Error: %s", describeError(err))
	}

	fmt.Printf("%s set to %s level %d with %d points in tier\n",
		player, progression.TierName(st.Tier), st.Level, st.ScoreWithinTier)
}
