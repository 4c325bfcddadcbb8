package engine

import "homeroom/internal/models"

// Questions returns the full quiz bank.
func (e *Engine) Questions() []models.Question {
	var out []models.Question
	e.read(func(snap *models.Snapshot) {
		out = append([]models.Question{}, snap.Questions...)
	})
	return out
}

// AddQuestion stores the question locally and best-effort creates it
// remotely.
func (e *Engine) AddQuestion(q models.Question) error {
	if q.ID == "" {
		q.ID = e.newID()
	}
	err := e.update(func(snap *models.Snapshot) {
		snap.Questions = append(snap.Questions, q)
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("questions.create", q)
	return nil
}

// UpdateQuestion replaces the question locally and best-effort remotely.
func (e *Engine) UpdateQuestion(q models.Question) error {
	err := e.update(func(snap *models.Snapshot) {
		for i := range snap.Questions {
			if snap.Questions[i].ID == q.ID {
				snap.Questions[i] = q
				break
			}
		}
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("questions.update", q)
	return nil
}

// RemoveQuestion deletes the question locally and best-effort remotely.
func (e *Engine) RemoveQuestion(id string) error {
	err := e.update(func(snap *models.Snapshot) {
		snap.Questions = deleteByID(snap.Questions, id, func(q models.Question) string { return q.ID })
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("questions.delete", map[string]string{"id": id})
	return nil
}
