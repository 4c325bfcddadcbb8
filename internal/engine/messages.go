package engine

import (
	"encoding/json"

	"homeroom/internal/models"
)

// Threads returns every message thread in the snapshot.
func (e *Engine) Threads() []models.MessageThread {
	var out []models.MessageThread
	e.read(func(snap *models.Snapshot) {
		out = append([]models.MessageThread{}, snap.Threads...)
	})
	return out
}

// ThreadByStudent returns the thread keyed by studentID, synthesizing it
// from cached student/class metadata on first access. Lookup and synthesis
// happen under the engine lock, so concurrent first lookups for the same
// student still yield one thread with one identifier.
func (e *Engine) ThreadByStudent(studentID string) (*models.MessageThread, error) {
	var thread models.MessageThread
	var created bool

	err := e.update(func(snap *models.Snapshot) {
		for _, t := range snap.Threads {
			if t.ThreadKey == studentID {
				thread = t
				return
			}
		}

		var student *models.Student
		for i := range snap.Students {
			if snap.Students[i].ID == studentID {
				student = &snap.Students[i]
				break
			}
		}
		var class *models.ClassInfo
		if student != nil {
			for i := range snap.Classes {
				if snap.Classes[i].ID == student.ClassID {
					class = &snap.Classes[i]
					break
				}
			}
		}

		participants := map[string]string{"parentName": "parent"}
		if student != nil {
			participants["studentName"] = student.FullName
		}
		if class != nil {
			participants["className"] = class.ClassName
			participants["teacherName"] = class.HomeroomTeacher
		}
		blob, _ := json.Marshal(participants)

		thread = models.MessageThread{
			ID:               e.newID(),
			ThreadKey:        studentID,
			ParticipantsJSON: string(blob),
			LastMessageAt:    e.nowStamp(),
		}
		snap.Threads = append(snap.Threads, thread)
		created = true
	})
	if err != nil {
		return nil, err
	}

	if created {
		e.tasks.Submit("messageThreads.create", thread)
	}
	return &thread, nil
}

// Messages returns the messages in one thread.
func (e *Engine) Messages(threadID string) []models.Message {
	out := []models.Message{}
	e.read(func(snap *models.Snapshot) {
		for _, m := range snap.Messages {
			if m.ThreadID == threadID {
				out = append(out, m)
			}
		}
	})
	return out
}

// SendMessage appends a message to a thread, bumps the thread's
// last-message time, persists both, and best-effort creates the message
// (and thread update) remotely.
func (e *Engine) SendMessage(threadID string, fromRole models.Role, content string) (*models.Message, error) {
	msg := models.Message{
		ID:        e.newID(),
		ThreadID:  threadID,
		FromRole:  fromRole,
		Content:   content,
		CreatedAt: e.nowStamp(),
	}

	var bumped *models.MessageThread
	err := e.update(func(snap *models.Snapshot) {
		snap.Messages = append(snap.Messages, msg)
		for i := range snap.Threads {
			if snap.Threads[i].ID == threadID {
				snap.Threads[i].LastMessageAt = msg.CreatedAt
				t := snap.Threads[i]
				bumped = &t
				break
			}
		}
	})
	if err != nil {
		return nil, err
	}

	e.tasks.Submit("messages.create", map[string]any{
		"threadId": threadID,
		"fromRole": fromRole,
		"content":  content,
	})
	if bumped != nil {
		e.tasks.Submit("messageThreads.update", *bumped)
	}
	return &msg, nil
}
