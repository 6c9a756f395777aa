// prestige tracks multi-tier level progression for games.
//
// Usage:
//
//	prestige list                          - List games in the catalog
//	prestige table <game>                  - Print or export a threshold table
//	prestige resolve <game> --score <n>    - Evaluate a score without storing it
//	prestige status <game> <player>        - Show a player's stored progress
//	prestige add <game> <player> <points>  - Record points for a player
//	prestige set <game> <player>           - Overwrite a player's tier and score
//	prestige reset <game> <player>         - Delete a player's progress
//	prestige leaderboard <game>            - Show standings for a game
//	prestige history <game> <player>       - Show recent score changes
//	prestige view [player]                 - Interactive dashboard
//	prestige serve                         - Serve the dashboard over SSH
//
// Global flags:
//
//	--db <path>         - Set database path (default: ~/.prestige/progress.db)
//	--config <path>     - Use a custom games catalog YAML
//	--log-level <lvl>   - debug, info, warn or error
//	--env <file>        - Environment file to load (default: .env)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagEnvFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "prestige",
	Short: "Prestige - multi-tier level progression for games",
	Long: `Prestige turns raw game scores into levels and prestige tiers.

Each game has a curve of level thresholds repeated over several tiers.
Points that pass the last level of a tier carry over into the next tier;
the last tier is capped at its final level.

Available commands:
  list         - Show the games in the catalog
  table        - Print or export a game's threshold table
  resolve      - Evaluate a tier and score without storing anything
  status       - Show a player's stored progress
  add          - Record points for a player
  set          - Overwrite a player's tier and score
  reset        - Delete a player's progress
  leaderboard  - Show standings for a game
  history      - Show a player's recent score changes
  view         - Interactive progress dashboard
  serve        - Serve the dashboard over SSH

Examples:
  prestige list
  prestige table tetris --tier 2
  prestige resolve tetris --tier 1 --score 101
  prestige add tetris ana 1500
  prestige view ana`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags; empty values fall back to the environment.
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database (env PRESTIGE_DB)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to games catalog YAML (env PRESTIGE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (env PRESTIGE_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env", ".env", "Environment file to load if present")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(serveCmd)
}
