package engine

import "homeroom/internal/models"

// Classes returns every class in the snapshot.
func (e *Engine) Classes() []models.ClassInfo {
	var out []models.ClassInfo
	e.read(func(snap *models.Snapshot) {
		out = append([]models.ClassInfo{}, snap.Classes...)
	})
	return out
}

// AddClass stores the class locally and best-effort creates it remotely.
func (e *Engine) AddClass(c models.ClassInfo) error {
	if c.ID == "" {
		c.ID = e.newID()
	}
	err := e.update(func(snap *models.Snapshot) {
		snap.Classes = append(snap.Classes, c)
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("classes.create", c)
	return nil
}

// UpdateClass replaces the class locally and best-effort remotely.
func (e *Engine) UpdateClass(c models.ClassInfo) error {
	err := e.update(func(snap *models.Snapshot) {
		for i := range snap.Classes {
			if snap.Classes[i].ID == c.ID {
				snap.Classes[i] = c
				break
			}
		}
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("classes.update", c)
	return nil
}

// RemoveClass deletes the class locally and best-effort remotely.
func (e *Engine) RemoveClass(id string) error {
	err := e.update(func(snap *models.Snapshot) {
		snap.Classes = deleteByID(snap.Classes, id, func(c models.ClassInfo) string { return c.ID })
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("classes.delete", map[string]string{"id": id})
	return nil
}
