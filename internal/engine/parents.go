package engine

import "homeroom/internal/models"

// Parents returns every guardian record in the snapshot.
func (e *Engine) Parents() []models.Parent {
	var out []models.Parent
	e.read(func(snap *models.Snapshot) {
		out = append([]models.Parent{}, snap.Parents...)
	})
	return out
}

// AddParent stores the record locally and best-effort creates it remotely.
func (e *Engine) AddParent(p models.Parent) error {
	if p.ID == "" {
		p.ID = e.newID()
	}
	err := e.update(func(snap *models.Snapshot) {
		snap.Parents = append(snap.Parents, p)
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("parents.create", p)
	return nil
}

// UpdateParent replaces the record locally and best-effort remotely.
func (e *Engine) UpdateParent(p models.Parent) error {
	err := e.update(func(snap *models.Snapshot) {
		for i := range snap.Parents {
			if snap.Parents[i].ID == p.ID {
				snap.Parents[i] = p
				break
			}
		}
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("parents.update", p)
	return nil
}

// RemoveParent deletes the record locally and best-effort remotely.
func (e *Engine) RemoveParent(id string) error {
	err := e.update(func(snap *models.Snapshot) {
		snap.Parents = deleteByID(snap.Parents, id, func(p models.Parent) string { return p.ID })
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("parents.delete", map[string]string{"id": id})
	return nil
}
