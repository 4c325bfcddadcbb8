package engine

import (
	"fmt"

	"homeroom/internal/models"
)

// xpPerLevel is the experience needed to advance one level.
const xpPerLevel = 100

// Students returns every student in the snapshot.
func (e *Engine) Students() []models.Student {
	var out []models.Student
	e.read(func(snap *models.Snapshot) {
		out = append([]models.Student{}, snap.Students...)
	})
	return out
}

// StudentsByClass returns the students enrolled in classID.
func (e *Engine) StudentsByClass(classID string) []models.Student {
	out := []models.Student{}
	e.read(func(snap *models.Snapshot) {
		for _, s := range snap.Students {
			if s.ClassID == classID {
				out = append(out, s)
			}
		}
	})
	return out
}

// AddStudent stores the student locally (with xp/level defaults) and
// best-effort creates them remotely.
func (e *Engine) AddStudent(s models.Student) error {
	if s.ID == "" {
		s.ID = e.newID()
	}
	if s.Level == 0 {
		s.Level = 1
	}
	err := e.update(func(snap *models.Snapshot) {
		snap.Students = append(snap.Students, s)
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("students.create", s)
	return nil
}

// UpdateStudent replaces the student locally and best-effort remotely.
func (e *Engine) UpdateStudent(s models.Student) error {
	err := e.update(func(snap *models.Snapshot) {
		for i := range snap.Students {
			if snap.Students[i].ID == s.ID {
				snap.Students[i] = s
				break
			}
		}
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("students.update", s)
	return nil
}

// RemoveStudent deletes the student locally and best-effort remotely.
func (e *Engine) RemoveStudent(id string) error {
	err := e.update(func(snap *models.Snapshot) {
		snap.Students = deleteByID(snap.Students, id, func(s models.Student) string { return s.ID })
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("students.delete", map[string]string{"id": id})
	return nil
}

// AwardXP adds delta (which may be negative) to the student's experience
// points, recomputes the level, persists, and best-effort pushes the
// update. Returns ErrNotFound when the student is not in the snapshot.
func (e *Engine) AwardXP(studentID string, delta int) (*models.Student, error) {
	var updated *models.Student
	err := e.update(func(snap *models.Snapshot) {
		for i := range snap.Students {
			if snap.Students[i].ID != studentID {
				continue
			}
			xp := int(snap.Students[i].XP) + delta
			snap.Students[i].XP = models.FlexInt(xp)
			snap.Students[i].Level = models.FlexInt(levelForXP(xp))
			s := snap.Students[i]
			updated = &s
			return
		}
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("student %s: %w", studentID, ErrNotFound)
	}
	e.tasks.Submit("students.update", *updated)
	return updated, nil
}

// levelForXP is floor(xp/100)+1, including for negative xp.
func levelForXP(xp int) int {
	lvl := xp / xpPerLevel
	if xp < 0 && xp%xpPerLevel != 0 {
		lvl--
	}
	return lvl + 1
}
