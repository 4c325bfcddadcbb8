package version

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// UpdateAvailableMsg is delivered to the TUI when a newer release exists.
type UpdateAvailableMsg struct {
	CurrentVersion string
	LatestVersion  string
	UpdateURL      string
}

// CheckAsync returns a Bubble Tea command that checks for updates in the
// background, consulting the on-disk cache before touching the network.
func CheckAsync(currentVersion string) tea.Cmd {
	return func() tea.Msg {
		if cached, err := LoadCache(); err == nil && IsCacheValid(cached, currentVersion) {
			if cached.HasUpdate {
				return UpdateAvailableMsg{
					CurrentVersion: currentVersion,
					LatestVersion:  cached.LatestVersion,
				}
			}
			return nil
		}

		result := Check(currentVersion)

		// Network errors are not cached; the next run retries.
		if result.Error == nil {
			_ = SaveCache(&CacheEntry{
				LatestVersion:  result.LatestVersion,
				CurrentVersion: currentVersion,
				CheckedAt:      time.Now(),
				HasUpdate:      result.HasUpdate,
			})
		}

		if result.HasUpdate {
			return UpdateAvailableMsg{
				CurrentVersion: currentVersion,
				LatestVersion:  result.LatestVersion,
				UpdateURL:      result.UpdateURL,
			}
		}
		return nil
	}
}
