package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/prestige/internal/progression"
	"github.com/vovakirdan/prestige/internal/tracker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	tierStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(9)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
)

// newBar creates a progress bar that shows no percentage of its own;
// the card prints the rounded value next to it.
func newBar(width int) progress.Model {
	return progress.New(
		progress.WithDefaultGradient(),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
}

// barWidth picks a bar width that fits a card inside the terminal width.
func barWidth(termWidth int) int {
	w := termWidth - 30
	switch {
	case w > 50:
		return 50
	case w < 10:
		return 10
	default:
		return w
	}
}

// RenderStanding renders a player's standing as a card with level and
// overall progress bars.
func RenderStanding(st tracker.Standing, width int) string {
	bar := newBar(barWidth(width))

	var b strings.Builder
	b.WriteString(tierStyle.Render(progression.TierName(st.Tier)))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  level %d", st.Level)))
	if st.Player != "" {
		b.WriteString(mutedStyle.Render("  " + st.Player))
	}
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Score"))
	b.WriteString(fmt.Sprintf("%d in tier, level range %d-%d\n",
		st.ScoreWithinTier, st.LowerBound, st.UpperBound))

	b.WriteString(labelStyle.Render("Level"))
	b.WriteString(bar.ViewAs(st.ProgressWithinLevel / 100))
	b.WriteString(fmt.Sprintf(" %6.2f%%\n", st.ProgressWithinLevel))

	b.WriteString(labelStyle.Render("Overall"))
	b.WriteString(bar.ViewAs(st.ProgressGlobal / 100))
	b.WriteString(fmt.Sprintf(" %6.2f%%\n", st.ProgressGlobal))

	b.WriteString(labelStyle.Render("Global"))
	b.WriteString(fmt.Sprintf("%d / %d", st.GlobalScore, st.TotalPossibleScore))

	if st.Degenerate {
		b.WriteString("\n\n")
		b.WriteString(warnStyle.Render("This level has an empty score range."))
	}

	return cardStyle.Render(b.String())
}

// centerText pads text on the left to center it in width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
