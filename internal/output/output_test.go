package output

import (
	"strings"
	"testing"
	"time"

	"homeroom/internal/engine"
)

func TestFormatLastSync(t *testing.T) {
	if got := FormatLastSync(nil); got != "never" {
		t.Errorf("nil = %q, want never", got)
	}

	now := time.Now()
	if got := FormatLastSync(&now); got != "just now" {
		t.Errorf("now = %q, want just now", got)
	}

	fiveMin := now.Add(-5 * time.Minute)
	if got := FormatLastSync(&fiveMin); got != "5m ago" {
		t.Errorf("5 min = %q, want 5m ago", got)
	}

	threeHours := now.Add(-3 * time.Hour)
	if got := FormatLastSync(&threeHours); got != "3h ago" {
		t.Errorf("3 hours = %q, want 3h ago", got)
	}

	lastWeek := now.Add(-7 * 24 * time.Hour)
	if got := FormatLastSync(&lastWeek); !strings.Contains(got, lastWeek.Format("2006-01-02")) {
		t.Errorf("last week = %q, want a date", got)
	}
}

func TestStatusBadge(t *testing.T) {
	for _, s := range []engine.Status{
		engine.StatusIdle, engine.StatusSyncing, engine.StatusError, engine.StatusNotConfigured,
	} {
		if got := StatusBadge(s); !strings.Contains(got, string(s)) {
			t.Errorf("badge for %s = %q, label lost", s, got)
		}
	}
}
