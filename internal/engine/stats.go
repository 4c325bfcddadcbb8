package engine

import "homeroom/internal/models"

// Stats reports per-collection record counts from the snapshot.
type Stats struct {
	Users         int
	Classes       int
	Students      int
	Parents       int
	Attendance    int
	Behaviors     int
	Announcements int
	Documents     int
	Tasks         int
	TaskReplies   int
	Threads       int
	Messages      int
	Questions     int
}

// Stats returns record counts for every collection.
func (e *Engine) Stats() Stats {
	var st Stats
	e.read(func(snap *models.Snapshot) {
		st = Stats{
			Users:         len(snap.Users),
			Classes:       len(snap.Classes),
			Students:      len(snap.Students),
			Parents:       len(snap.Parents),
			Attendance:    len(snap.Attendance),
			Behaviors:     len(snap.Behaviors),
			Announcements: len(snap.Announcements),
			Documents:     len(snap.Documents),
			Tasks:         len(snap.Tasks),
			TaskReplies:   len(snap.TaskReplies),
			Threads:       len(snap.Threads),
			Messages:      len(snap.Messages),
			Questions:     len(snap.Questions),
		}
	})
	return st
}
