package engine

import (
	"sort"

	"homeroom/internal/models"
)

// Behaviors returns a class's behavior log, optionally bounded by from/to
// (date-only strings, empty for unbounded), newest first.
func (e *Engine) Behaviors(classID, from, to string) []models.Behavior {
	out := []models.Behavior{}
	e.read(func(snap *models.Snapshot) {
		for _, b := range snap.Behaviors {
			day := dateOnly(b.Date)
			if b.ClassID != classID {
				continue
			}
			if from != "" && day < from {
				continue
			}
			if to != "" && day > to {
				continue
			}
			out = append(out, b)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// StudentBehaviors returns every logged entry for one student.
func (e *Engine) StudentBehaviors(studentID string) []models.Behavior {
	out := []models.Behavior{}
	e.read(func(snap *models.Snapshot) {
		for _, b := range snap.Behaviors {
			if b.StudentID == studentID {
				out = append(out, b)
			}
		}
	})
	return out
}

// AddBehavior stores the entry locally and best-effort creates it remotely.
func (e *Engine) AddBehavior(b models.Behavior) error {
	if b.ID == "" {
		b.ID = e.newID()
	}
	b.Date = dateOnly(b.Date)
	err := e.update(func(snap *models.Snapshot) {
		snap.Behaviors = append(snap.Behaviors, b)
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("behavior.create", b)
	return nil
}

// UpdateBehavior replaces the entry locally and best-effort remotely.
func (e *Engine) UpdateBehavior(b models.Behavior) error {
	err := e.update(func(snap *models.Snapshot) {
		for i := range snap.Behaviors {
			if snap.Behaviors[i].ID == b.ID {
				snap.Behaviors[i] = b
				break
			}
		}
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("behavior.update", b)
	return nil
}

// RemoveBehavior deletes the entry locally and best-effort remotely.
func (e *Engine) RemoveBehavior(id string) error {
	err := e.update(func(snap *models.Snapshot) {
		snap.Behaviors = deleteByID(snap.Behaviors, id, func(b models.Behavior) string { return b.ID })
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("behavior.delete", map[string]string{"id": id})
	return nil
}
