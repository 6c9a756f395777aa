package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/prestige/internal/platform/tui"
	"github.com/vovakirdan/prestige/internal/progression"
	"github.com/vovakirdan/prestige/internal/tracker"
)

var (
	flagResolveTier  int
	flagResolveScore int64
	flagResolveTable string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [game]",
	Short: "Evaluate a tier and score without storing anything",
	Long: `Resolve a score into a level and show its progress.

The score is counted from the start of --tier. A score past the tier's
last threshold carries over into the following tiers; on the last tier it
is capped at the final level.

The table comes from the game's curve, or from a JSON file exported with
'prestige table --json' when --table is given.

Examples:
  prestige resolve tetris --score 101
  prestige resolve tetris --tier 2 --score 250000
  prestige resolve --table tetris_levels.json --tier 1 --score 5000`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResolve,
}

func init() {
	resolveCmd.Flags().IntVar(&flagResolveTier, "tier", 1, "Tier the score starts from")
	resolveCmd.Flags().Int64Var(&flagResolveScore, "score", 0, "Score within the tier")
	resolveCmd.Flags().StringVar(&flagResolveTable, "table", "", "Read thresholds from a JSON table file")
}

func runResolve(cmd *cobra.Command, args []string) {
	var table *progression.Table
	switch {
	case flagResolveTable != "":
		table = readTableFile(flagResolveTable)
	case len(args) == 1:
		a := loadApp()
		game := a.lookupGame(args[0])
		t, err := progression.BuildTable(game.Curve)
		if err != nil {
			fail("Error building table: %v", err)
		}
		table = t
	default:
		fail("Error: give a game or --table")
	}

	status, err := progression.Evaluate(table, flagResolveTier, flagResolveScore)
	if err != nil {
		fail("Error: %s", describeError(err))
	}

	fmt.Println(tui.RenderStanding(tracker.Standing{Status: status}, terminalWidth()))
	if status.Clamped(table) {
		fmt.Println("Score is capped at the final level of the last tier.")
	}
}

func readTableFile(path string) *progression.Table {
	f, err := os.Open(path)
	if err != nil {
		fail("Error opening table: %v", err)
	}
	defer f.Close()

	table, err := progression.DecodeTable(f)
	if err != nil {
		fail("Error reading table %s: %v", path, err)
	}
	return table
}
