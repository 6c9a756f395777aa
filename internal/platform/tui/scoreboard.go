package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/prestige/internal/progression"
	"github.com/vovakirdan/prestige/internal/tracker"
)

// Leaderboard layout constants
const (
	maxStandings    = 100 // Max standings to load
	tableMinHeight  = 3
	reservedHeight  = 10 // Title, tabs, help and margins
	rankColWidth    = 6
	tierColWidth    = 12
	levelColWidth   = 7
	percentColWidth = 9
)

// newLeaderboardTable creates the leaderboard table sized for the terminal.
func newLeaderboardTable(width, height int) table.Model {
	playerWidth := 16
	scoreWidth := 12

	// Give spare width to the player column
	spare := width - 8 - (rankColWidth + playerWidth + tierColWidth + levelColWidth + scoreWidth + percentColWidth)
	if spare > 0 {
		playerWidth += min(spare, 16)
	}

	columns := []table.Column{
		{Title: "Rank", Width: rankColWidth},
		{Title: "Player", Width: playerWidth},
		{Title: "Tier", Width: tierColWidth},
		{Title: "Level", Width: levelColWidth},
		{Title: "Global", Width: scoreWidth},
		{Title: "Overall", Width: percentColWidth},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-reservedHeight, tableMinHeight)),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// leaderboardRows converts standings to table rows, ranked in order.
func leaderboardRows(standings []tracker.Standing) []table.Row {
	rows := make([]table.Row, len(standings))
	for i, s := range standings {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.Player,
			progression.TierName(s.Tier),
			fmt.Sprintf("%d", s.Level),
			fmt.Sprintf("%d", s.GlobalScore),
			fmt.Sprintf("%.2f%%", s.ProgressGlobal),
		}
	}
	return rows
}

// renderLeaderboard renders the table or an empty message.
func renderLeaderboard(t table.Model, count int) string {
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if count == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return tableStyle.Render(emptyStyle.Render("No progress recorded yet.\nAdd some points to get on the board!"))
	}

	return tableStyle.Render(t.View())
}
