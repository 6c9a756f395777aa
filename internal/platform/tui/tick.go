package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RefreshInterval is how often the dashboard reloads its data.
const RefreshInterval = 5 * time.Second

// RefreshMsg triggers a periodic reload of the dashboard.
type RefreshMsg time.Time

// refreshCmd returns a command that sends a RefreshMsg after interval.
// A non-positive interval disables automatic refresh.
func refreshCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return RefreshMsg(t)
	})
}
