package engine

import "homeroom/internal/models"

// Tasks returns the assignments for a class.
func (e *Engine) Tasks(classID string) []models.Task {
	out := []models.Task{}
	e.read(func(snap *models.Snapshot) {
		for _, t := range snap.Tasks {
			if t.ClassID == classID {
				out = append(out, t)
			}
		}
	})
	return out
}

// AddTask stores the assignment locally and best-effort creates it remotely.
func (e *Engine) AddTask(t models.Task) error {
	if t.ID == "" {
		t.ID = e.newID()
	}
	if t.CreatedAt == "" {
		t.CreatedAt = e.nowStamp()
	}
	err := e.update(func(snap *models.Snapshot) {
		snap.Tasks = append([]models.Task{t}, snap.Tasks...)
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("tasks.create", t)
	return nil
}

// UpdateTask replaces the assignment locally and best-effort remotely.
func (e *Engine) UpdateTask(t models.Task) error {
	err := e.update(func(snap *models.Snapshot) {
		for i := range snap.Tasks {
			if snap.Tasks[i].ID == t.ID {
				snap.Tasks[i] = t
				break
			}
		}
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("tasks.update", t)
	return nil
}

// RemoveTask deletes the assignment locally and best-effort remotely.
func (e *Engine) RemoveTask(id string) error {
	err := e.update(func(snap *models.Snapshot) {
		snap.Tasks = deleteByID(snap.Tasks, id, func(t models.Task) string { return t.ID })
	})
	if err != nil {
		return err
	}
	e.tasks.Submit("tasks.delete", map[string]string{"id": id})
	return nil
}

// TaskReplies returns the responses recorded for one assignment.
func (e *Engine) TaskReplies(taskID string) []models.TaskReply {
	out := []models.TaskReply{}
	e.read(func(snap *models.Snapshot) {
		for _, r := range snap.TaskReplies {
			if r.TaskID == taskID {
				out = append(out, r)
			}
		}
	})
	return out
}

// ReplyTask upserts a reply keyed by task+student: a student's second reply
// overwrites the first, keeping the original reply ID so the remote side
// updates the same row.
func (e *Engine) ReplyTask(r models.TaskReply) error {
	if r.ID == "" {
		r.ID = e.newID()
	}
	if r.CreatedAt == "" {
		r.CreatedAt = e.nowStamp()
	}

	var existing bool
	err := e.update(func(snap *models.Snapshot) {
		for i := range snap.TaskReplies {
			if snap.TaskReplies[i].TaskID == r.TaskID && snap.TaskReplies[i].StudentID == r.StudentID {
				r.ID = snap.TaskReplies[i].ID
				snap.TaskReplies[i] = r
				existing = true
				return
			}
		}
		snap.TaskReplies = append(snap.TaskReplies, r)
	})
	if err != nil {
		return err
	}

	if existing {
		e.tasks.Submit("taskReplies.update", r)
	} else {
		e.tasks.Submit("taskReplies.create", r)
	}
	return nil
}
