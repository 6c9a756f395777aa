package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/prestige/internal/platform/tui"
)

var flagViewGame string

var viewCmd = &cobra.Command{
	Use:   "view [player]",
	Short: "Interactive progress dashboard",
	Long: `Open a dashboard with a player's progress in every game and each
game's leaderboard. Without a player only leaderboards are shown.

Controls:
  Left/Right  - Switch game
  Tab         - Toggle status and leaderboard
  R           - Refresh
  Q/Esc       - Quit

Examples:
  prestige view ana
  prestige view ana --game tetris
  prestige view`,
	Args: cobra.MaximumNArgs(1),
	Run:  runView,
}

func init() {
	viewCmd.Flags().StringVar(&flagViewGame, "game", "", "Game to show first")
}

func runView(cmd *cobra.Command, args []string) {
	var player string
	if len(args) == 1 {
		player = args[0]
	}

	a := loadApp()
	if flagViewGame != "" {
		a.lookupGame(flagViewGame)
	}

	t, store := a.openTracker()
	defer store.Close()

	width, height := terminalSize()
	if err := tui.RunDashboard(t, player, flagViewGame, width, height); err != nil {
		store.Close()
		fail("Error running dashboard: %v", err)
	}
}

// terminalSize returns the size of stdout, or 80x24 if it is not a terminal.
func terminalSize() (width, height int) {
	width, height = 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func terminalWidth() int {
	w, _ := terminalSize()
	return w
}
