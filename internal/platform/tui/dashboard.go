// Package tui provides the Bubble Tea dashboard for prestige progress and
// the SSH server that serves it.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/prestige/internal/registry"
	"github.com/vovakirdan/prestige/internal/tracker"
)

// Source provides the data shown by the dashboard. *tracker.Tracker implements it.
type Source interface {
	Games() []registry.GameInfo
	Status(ctx context.Context, gameID, player string) (tracker.Standing, error)
	Leaderboard(ctx context.Context, gameID string, limit int) ([]tracker.Standing, error)
}

// Tab selects what the dashboard shows.
type Tab int

const (
	TabStatus Tab = iota
	TabLeaderboard
)

// loadTimeout bounds a single data reload.
const loadTimeout = 5 * time.Second

// dataMsg carries freshly loaded data for one game.
type dataMsg struct {
	gameID    string
	standing  tracker.Standing
	standings []tracker.Standing
	err       error
}

// DashboardModel is the Bubble Tea model showing one player's progress
// across the registered games plus each game's leaderboard.
type DashboardModel struct {
	source     Source
	player     string
	games      []registry.GameInfo
	gameCursor int
	tab        Tab
	interval   time.Duration

	standing  tracker.Standing
	standings []tracker.Standing
	err       error
	loaded    bool

	table    table.Model
	help     help.Model
	keys     DashboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewDashboardModel creates a dashboard for player. With an empty player
// only the leaderboard is available.
func NewDashboardModel(source Source, player string, width, height int) DashboardModel {
	h := help.New()
	h.Width = width

	m := DashboardModel{
		source:   source,
		player:   player,
		games:    source.Games(),
		interval: RefreshInterval,
		table:    newLeaderboardTable(width, height),
		help:     h,
		keys:     DefaultDashboardKeyMap(),
		width:    width,
		height:   height,
	}
	if player == "" {
		m.tab = TabLeaderboard
	}
	return m
}

// WithRefreshInterval sets the automatic refresh interval; zero disables it.
func (m DashboardModel) WithRefreshInterval(d time.Duration) DashboardModel {
	m.interval = d
	return m
}

// SelectGame moves the cursor to gameID if it is registered.
func (m DashboardModel) SelectGame(gameID string) DashboardModel {
	for i, g := range m.games {
		if g.ID == gameID {
			m.gameCursor = i
			break
		}
	}
	return m
}

// CurrentGame returns the selected game, or false when no games are registered.
func (m DashboardModel) CurrentGame() (registry.GameInfo, bool) {
	if len(m.games) == 0 {
		return registry.GameInfo{}, false
	}
	return m.games[m.gameCursor], true
}

// CurrentTab returns the active tab.
func (m DashboardModel) CurrentTab() Tab {
	return m.tab
}

// Init loads the first game and starts the refresh loop.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.load(), refreshCmd(m.interval))
}

// load fetches status and leaderboard for the selected game.
func (m DashboardModel) load() tea.Cmd {
	game, ok := m.CurrentGame()
	if !ok {
		return nil
	}
	source, player := m.source, m.player

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		msg := dataMsg{gameID: game.ID}
		if player != "" {
			msg.standing, msg.err = source.Status(ctx, game.ID, player)
			if msg.err != nil {
				return msg
			}
		}
		msg.standings, msg.err = source.Leaderboard(ctx, game.ID, maxStandings)
		return msg
	}
}

// Update handles messages for the dashboard.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			return m.moveGame(1)

		case key.Matches(msg, m.keys.PrevGame):
			return m.moveGame(-1)

		case key.Matches(msg, m.keys.Switch):
			if m.player != "" {
				if m.tab == TabStatus {
					m.tab = TabLeaderboard
				} else {
					m.tab = TabStatus
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			return m, m.load()

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = newLeaderboardTable(m.width, m.height)
		m.table.SetRows(leaderboardRows(m.standings))
		m.help.Width = msg.Width
		return m, nil

	case RefreshMsg:
		return m, tea.Batch(m.load(), refreshCmd(m.interval))

	case dataMsg:
		// Drop results for a game the user already switched away from
		if game, ok := m.CurrentGame(); !ok || game.ID != msg.gameID {
			return m, nil
		}
		m.loaded = true
		m.err = msg.err
		if msg.err == nil {
			m.standing = msg.standing
			m.standings = msg.standings
			m.table.SetRows(leaderboardRows(m.standings))
		}
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// moveGame switches the selected game by step and reloads.
func (m DashboardModel) moveGame(step int) (tea.Model, tea.Cmd) {
	if len(m.games) == 0 {
		return m, nil
	}
	m.gameCursor = (m.gameCursor + step + len(m.games)) % len(m.games)
	m.loaded = false
	m.err = nil
	m.standing = tracker.Standing{}
	m.standings = nil
	m.table.SetRows(nil)
	m.table.GotoTop()
	return m, m.load()
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	game, ok := m.CurrentGame()
	if !ok {
		b.WriteString(titleStyle.Render("PRESTIGE"))
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("No games registered."))
		return b.String()
	}

	title := fmt.Sprintf("PRESTIGE - %s", game.Title)
	if m.player != "" {
		title += " - " + m.player
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case !m.loaded:
		b.WriteString(mutedStyle.Render("Loading..."))
	case m.tab == TabStatus:
		b.WriteString(RenderStanding(m.standing, m.width))
	default:
		b.WriteString(renderLeaderboard(m.table, len(m.standings)))
	}

	// Help bar
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders the game list with the selected game highlighted.
func (m DashboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.gameCursor {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(" " + g.Title + " ")
		}
	}

	line := strings.Join(tabs, " ")
	if m.width > 0 && lipgloss.Width(line) > m.width-4 {
		// Just show current game with arrows
		line = fmt.Sprintf("< %s >", m.games[m.gameCursor].Title)
	}
	return line
}

// IsQuitting returns true if user wants to quit.
func (m DashboardModel) IsQuitting() bool {
	return m.quitting
}

// RunDashboard runs the dashboard in the current terminal.
func RunDashboard(source Source, player, gameID string, width, height int) error {
	model := NewDashboardModel(source, player, width, height).SelectGame(gameID)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
