package engine

import (
	"fmt"

	"homeroom/internal/models"
)

// Attendance returns the records for one class on one day, deduplicated by
// student (a later record for the same student wins). Duplicates can occur
// when the remote sheet was edited out-of-band.
func (e *Engine) Attendance(classID, date string) []models.Attendance {
	day := dateOnly(date)
	byStudent := map[string]models.Attendance{}
	var order []string
	e.read(func(snap *models.Snapshot) {
		for _, a := range snap.Attendance {
			if a.ClassID != classID || dateOnly(a.Date) != day {
				continue
			}
			if _, seen := byStudent[a.StudentID]; !seen {
				order = append(order, a.StudentID)
			}
			byStudent[a.StudentID] = a
		}
	})
	out := make([]models.Attendance, 0, len(order))
	for _, id := range order {
		out = append(out, byStudent[id])
	}
	return out
}

// AttendanceRange returns a class's records between from and to inclusive
// (date-only strings), deduplicated by student and day.
func (e *Engine) AttendanceRange(classID, from, to string) []models.Attendance {
	byKey := map[string]models.Attendance{}
	var order []string
	e.read(func(snap *models.Snapshot) {
		for _, a := range snap.Attendance {
			day := dateOnly(a.Date)
			if a.ClassID != classID || day < from || day > to {
				continue
			}
			key := a.StudentID + "_" + day
			if _, seen := byKey[key]; !seen {
				order = append(order, key)
			}
			byKey[key] = a
		}
	})
	out := make([]models.Attendance, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out
}

// StudentAttendance returns one student's records for a calendar month,
// deduplicated by day.
func (e *Engine) StudentAttendance(studentID string, month, year int) []models.Attendance {
	prefix := fmt.Sprintf("%04d-%02d", year, month)
	byDay := map[string]models.Attendance{}
	var order []string
	e.read(func(snap *models.Snapshot) {
		for _, a := range snap.Attendance {
			day := dateOnly(a.Date)
			if a.StudentID != studentID || len(day) < len(prefix) || day[:len(prefix)] != prefix {
				continue
			}
			if _, seen := byDay[day]; !seen {
				order = append(order, day)
			}
			byDay[day] = a
		}
	})
	out := make([]models.Attendance, 0, len(order))
	for _, day := range order {
		out = append(out, byDay[day])
	}
	return out
}

// SaveAttendance upserts one day's roll call for a class: an existing
// record per student is updated in place, otherwise a new record is
// created. One remote mutation is dispatched per student.
func (e *Engine) SaveAttendance(classID, date string, items []models.AttendanceItem) error {
	day := dateOnly(date)
	var creates []models.Attendance
	var updates []models.Attendance

	err := e.update(func(snap *models.Snapshot) {
		for _, item := range items {
			idx := -1
			for i, a := range snap.Attendance {
				if a.ClassID == classID && a.StudentID == item.StudentID && dateOnly(a.Date) == day {
					idx = i
					break
				}
			}
			if idx >= 0 {
				snap.Attendance[idx].Status = item.Status
				snap.Attendance[idx].Note = item.Note
				updates = append(updates, snap.Attendance[idx])
				continue
			}
			rec := models.Attendance{
				ID:        e.newID(),
				ClassID:   classID,
				StudentID: item.StudentID,
				Date:      day,
				Status:    item.Status,
				Note:      item.Note,
			}
			snap.Attendance = append(snap.Attendance, rec)
			creates = append(creates, rec)
		}
	})
	if err != nil {
		return err
	}

	for _, rec := range updates {
		e.tasks.Submit("attendance.update", rec)
	}
	for _, rec := range creates {
		e.tasks.Submit("attendance.create", rec)
	}
	return nil
}
