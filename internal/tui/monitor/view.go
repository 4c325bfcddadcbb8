package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"homeroom/internal/engine"
)

// renderView renders the complete monitor view
func (m Model) renderView() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}

	status := m.renderStatusPanel()
	counts := m.renderCountsPanel()
	footer := helpStyle.Render("  s sync · q quit")
	if m.updateNotice != "" {
		footer += helpStyle.Render("  ·  " + m.updateNotice)
	}

	return lipgloss.JoinVertical(lipgloss.Left, status, counts, footer)
}

func (m Model) renderStatusPanel() string {
	style, ok := statusStyles[m.Status]
	if !ok {
		style = labelStyle
	}
	status := string(m.Status)
	if status == "" {
		status = string(engine.StatusIdle)
	}
	line := style.Render(status)
	if m.Status == engine.StatusSyncing {
		line = m.spinner.View() + " " + line
	}

	lines := []string{
		panelTitleStyle.Render("Sync"),
		"",
		labelStyle.Render("status    ") + line,
		labelStyle.Render("last sync ") + formatLastSync(m.LastSync),
	}
	return panelStyle.Width(m.Width - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderCountsPanel() string {
	rows := []struct {
		label string
		n     int
	}{
		{"classes", m.Counts.Classes},
		{"students", m.Counts.Students},
		{"parents", m.Counts.Parents},
		{"attendance", m.Counts.Attendance},
		{"behaviors", m.Counts.Behaviors},
		{"announcements", m.Counts.Announcements},
		{"documents", m.Counts.Documents},
		{"tasks", m.Counts.Tasks},
		{"task replies", m.Counts.TaskReplies},
		{"threads", m.Counts.Threads},
		{"messages", m.Counts.Messages},
		{"questions", m.Counts.Questions},
	}

	lines := []string{panelTitleStyle.Render("Snapshot"), ""}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s %s",
			labelStyle.Render(fmt.Sprintf("%-14s", row.label)),
			numberStyle.Render(fmt.Sprintf("%d", row.n))))
	}
	return panelStyle.Width(m.Width - 2).Render(strings.Join(lines, "\n"))
}

func formatLastSync(t *time.Time) string {
	if t == nil {
		return labelStyle.Render("never")
	}
	d := time.Since(*t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return t.Format("2006-01-02 15:04")
	}
}
