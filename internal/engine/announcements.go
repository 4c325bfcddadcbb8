package engine

import (
	"sort"

	"homeroom/internal/models"
)

// Announcements returns a class's notices: pinned first, then newest first.
func (e *Engine) Announcements(classID string) []models.Announcement {
	out := []models.Announcement{}
	e.read(func(snap *models.Snapshot) {
		for _, a := range snap.Announcements {
			if a.ClassID == classID {
				out = append(out, a)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// AddAnnouncement stores the notice locally and best-effort creates it
// remotely.
func (e *Engine) AddAnnouncement(a models.Announcement) error {
	if a.ID == "" {
		a.ID = e.newID()
	}
	if a.CreatedAt == "" {
		a.CreatedAt = e.nowStamp()
	}
	err := e.update(func(snap *models.Snapshot) {
		snap.Announcements = append([]models.Announcement{a}, snap.Announcements...)
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("announcements.create", a)
	return nil
}

// UpdateAnnouncement replaces the notice locally and best-effort remotely.
func (e *Engine) UpdateAnnouncement(a models.Announcement) error {
	err := e.update(func(snap *models.Snapshot) {
		for i := range snap.Announcements {
			if snap.Announcements[i].ID == a.ID {
				snap.Announcements[i] = a
				break
			}
		}
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("announcements.update", a)
	return nil
}

// RemoveAnnouncement deletes the notice locally and best-effort remotely.
func (e *Engine) RemoveAnnouncement(id string) error {
	err := e.update(func(snap *models.Snapshot) {
		snap.Announcements = deleteByID(snap.Announcements, id, func(a models.Announcement) string { return a.ID })
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("announcements.delete", map[string]string{"id": id})
	return nil
}
