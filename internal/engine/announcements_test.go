package engine

import (
	"testing"

	"homeroom/internal/models"
)

func TestAnnouncementsPinnedFirst(t *testing.T) {
	e := newTestEngine(t, newFakeGateway())

	e.AddAnnouncement(models.Announcement{ID: "a1", ClassID: "c1", Title: "Old", CreatedAt: "2024-03-01T08:00:00Z"})
	e.AddAnnouncement(models.Announcement{ID: "a2", ClassID: "c1", Title: "Pinned", Pinned: true, CreatedAt: "2024-02-01T08:00:00Z"})
	e.AddAnnouncement(models.Announcement{ID: "a3", ClassID: "c1", Title: "New", CreatedAt: "2024-03-10T08:00:00Z"})
	e.AddAnnouncement(models.Announcement{ID: "a4", ClassID: "c2", Title: "Other class", CreatedAt: "2024-03-11T08:00:00Z"})

	got := e.Announcements("c1")
	if len(got) != 3 {
		t.Fatalf("announcements = %d, want 3", len(got))
	}
	if got[0].Title != "Pinned" {
		t.Errorf("first = %q, want pinned entry", got[0].Title)
	}
	if got[1].Title != "New" || got[2].Title != "Old" {
		t.Errorf("unpinned order = %q, %q, want newest first", got[1].Title, got[2].Title)
	}
}

func TestUpdateAnnouncement(t *testing.T) {
	e := newTestEngine(t, newFakeGateway())

	e.AddAnnouncement(models.Announcement{ID: "a1", ClassID: "c1", Title: "Draft"})

	err := e.UpdateAnnouncement(models.Announcement{ID: "a1", ClassID: "c1", Title: "Final", Pinned: true})
	if err != nil {
		t.Fatalf("UpdateAnnouncement failed: %v", err)
	}

	got := e.Announcements("c1")
	if len(got) != 1 || got[0].Title != "Final" || !got[0].Pinned {
		t.Errorf("announcement = %+v", got)
	}
}
