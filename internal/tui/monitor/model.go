// Package monitor is the live sync dashboard TUI: current status from the
// engine's broadcaster, collection counts from the snapshot, and a key to
// trigger a refresh.
package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"homeroom/internal/engine"
	"homeroom/internal/version"
)

// refreshInterval controls how often collection counts are re-read.
const refreshInterval = 2 * time.Second

// Model is the Bubble Tea model for the sync monitor
type Model struct {
	Engine *engine.Engine

	Width  int
	Height int

	Status   engine.Status
	LastSync *time.Time
	Counts   engine.Stats

	// AppVersion feeds the background update check; empty disables it.
	AppVersion   string
	updateNotice string

	spinner     spinner.Model
	statusCh    chan engine.State
	unsubscribe func()
}

// TickMsg triggers a counts refresh
type TickMsg time.Time

// statusMsg carries a broadcaster transition into the TUI loop
type statusMsg engine.State

// countsMsg carries refreshed collection counts
type countsMsg engine.Stats

// NewModel creates a monitor attached to the engine's status broadcaster.
func NewModel(e *engine.Engine, appVersion string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		Engine:     e,
		AppVersion: appVersion,
		spinner:    sp,
		statusCh:   make(chan engine.State, 16),
	}
	// The listener runs under the broadcaster lock: hand the transition
	// off to the TUI loop without blocking, dropping when the buffer is
	// full (a later transition supersedes anyway).
	m.unsubscribe = e.Subscribe(func(status engine.Status, lastSync *time.Time) {
		select {
		case m.statusCh <- engine.State{Status: status, LastSync: lastSync}:
		default:
		}
	})
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		m.waitForStatus(),
		m.fetchCounts(),
		m.scheduleTick(),
	}
	if m.AppVersion != "" {
		cmds = append(cmds, version.CheckAsync(m.AppVersion))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.unsubscribe()
			return m, tea.Quit
		case "s":
			go m.Engine.Refresh(context.Background())
			return m, nil
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case statusMsg:
		m.Status = msg.Status
		m.LastSync = msg.LastSync
		return m, m.waitForStatus()

	case TickMsg:
		return m, tea.Batch(m.fetchCounts(), m.scheduleTick())

	case countsMsg:
		m.Counts = engine.Stats(msg)
		return m, nil

	case version.UpdateAvailableMsg:
		m.updateNotice = "update available: " + msg.LatestVersion
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	return m.renderView()
}

func (m Model) waitForStatus() tea.Cmd {
	return func() tea.Msg {
		return statusMsg(<-m.statusCh)
	}
}

func (m Model) fetchCounts() tea.Cmd {
	e := m.Engine
	return func() tea.Msg {
		return countsMsg(e.Stats())
	}
}

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
