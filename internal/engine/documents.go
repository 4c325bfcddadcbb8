package engine

import "homeroom/internal/models"

// Documents returns the shared files for a class.
func (e *Engine) Documents(classID string) []models.Document {
	out := []models.Document{}
	e.read(func(snap *models.Snapshot) {
		for _, d := range snap.Documents {
			if d.ClassID == classID {
				out = append(out, d)
			}
		}
	})
	return out
}

// AddDocument stores the record locally and best-effort creates it remotely.
func (e *Engine) AddDocument(d models.Document) error {
	if d.ID == "" {
		d.ID = e.newID()
	}
	if d.UploadDate == "" {
		d.UploadDate = e.nowStamp()
	}
	err := e.update(func(snap *models.Snapshot) {
		snap.Documents = append([]models.Document{d}, snap.Documents...)
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("documents.create", d)
	return nil
}

// UpdateDocument replaces the record locally and best-effort remotely.
func (e *Engine) UpdateDocument(d models.Document) error {
	err := e.update(func(snap *models.Snapshot) {
		for i := range snap.Documents {
			if snap.Documents[i].ID == d.ID {
				snap.Documents[i] = d
				break
			}
		}
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("documents.update", d)
	return nil
}

// RemoveDocument deletes the record locally and best-effort remotely.
func (e *Engine) RemoveDocument(id string) error {
	err := e.update(func(snap *models.Snapshot) {
		snap.Documents = deleteByID(snap.Documents, id, func(d models.Document) string { return d.ID })
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("documents.delete", map[string]string{"id": id})
	return nil
}
