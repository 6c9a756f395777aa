package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/prestige/internal/progression"
)

var (
	flagTableTier int
	flagTableJSON bool
	flagTableOut  string
)

var tableCmd = &cobra.Command{
	Use:   "table <game>",
	Short: "Print or export a game's threshold table",
	Long: `Print the level thresholds of a game.

Without --tier a summary of every tier is printed. With --json the whole
table is written as JSON keyed by tier name, the format accepted by
'prestige resolve --table'.

Examples:
  prestige table tetris
  prestige table tetris --tier 3
  prestige table tetris --json --out tetris_levels.json`,
	Args: cobra.ExactArgs(1),
	Run:  runTable,
}

func init() {
	tableCmd.Flags().IntVar(&flagTableTier, "tier", 0, "Print every threshold of this tier")
	tableCmd.Flags().BoolVar(&flagTableJSON, "json", false, "Export the table as JSON")
	tableCmd.Flags().StringVar(&flagTableOut, "out", "", "Write JSON to this file instead of stdout")
}

func runTable(cmd *cobra.Command, args []string) {
	a := loadApp()
	game := a.lookupGame(args[0])

	table, err := progression.BuildTable(game.Curve)
	if err != nil {
		fail("Error building table: %v", err)
	}

	if flagTableJSON {
		exportTable(table)
		return
	}

	if flagTableTier != 0 {
		printTier(table, flagTableTier)
		return
	}

	fmt.Printf("Thresholds - %s\n", game.Title)
	fmt.Println()
	fmt.Printf("  %-12s  %6s  %10s  %10s  %12s\n", "Tier", "Levels", "Level 1", "Ceiling", "Cumulative")
	fmt.Printf("  %-12s  %6s  %10s  %10s  %12s\n", "----", "------", "-------", "-------", "----------")
	for tier := 1; tier <= table.TierCount(); tier++ {
		thresholds, _ := table.Thresholds(tier)
		ceiling, _ := table.Ceiling(tier)
		fmt.Printf("  %-12s  %6d  %10d  %10d  %12d\n",
			progression.TierName(tier), len(thresholds), thresholds[0], ceiling,
			table.CompletedScore(tier)+ceiling)
	}
	fmt.Println()
	fmt.Printf("Total possible score: %d\n", table.TotalPossibleScore())
}

func printTier(table *progression.Table, tier int) {
	thresholds, err := table.Thresholds(tier)
	if err != nil {
		fail("Error: %s", describeError(err))
	}

	fmt.Printf("%s\n\n", progression.TierName(tier))
	fmt.Printf("  %-5s  %10s  %10s\n", "Level", "From", "To")
	fmt.Printf("  %-5s  %10s  %10s\n", "-----", "----", "--")
	var lower int64
	for i, upper := range thresholds {
		fmt.Printf("  %-5d  %10d  %10d\n", i+1, lower, upper)
		lower = upper
	}
}

func exportTable(table *progression.Table) {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		fail("Error encoding table: %v", err)
	}
	data = append(data, '\n')

	if flagTableOut == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(flagTableOut, data, 0o644); err != nil {
		fail("Error writing %s: %v", flagTableOut, err)
	}
	fmt.Printf("Wrote %s\n", flagTableOut)
}
