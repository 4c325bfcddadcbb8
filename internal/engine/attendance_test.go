package engine

import (
	"testing"

	"homeroom/internal/models"
)

func seedAttendance(t *testing.T, e *Engine, records ...models.Attendance) {
	t.Helper()
	err := e.update(func(snap *models.Snapshot) {
		snap.Attendance = append(snap.Attendance, records...)
	})
	if err != nil {
		t.Fatalf("seed attendance: %v", err)
	}
}

func TestAttendanceDedupLastWins(t *testing.T) {
	e := newTestEngine(t, newFakeGateway())
	seedAttendance(t, e,
		models.Attendance{ID: "a1", ClassID: "c1", StudentID: "s1", Date: "2024-03-11", Status: models.AttendancePresent},
		models.Attendance{ID: "a2", ClassID: "c1", StudentID: "s2", Date: "2024-03-11", Status: models.AttendanceAbsent},
		models.Attendance{ID: "a3", ClassID: "c1", StudentID: "s1", Date: "2024-03-11", Status: models.AttendanceLate},
	)

	got := e.Attendance("c1", "2024-03-11")
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2 after dedup", len(got))
	}
	// Insertion order kept, later duplicate wins.
	if got[0].StudentID != "s1" || got[0].Status != models.AttendanceLate {
		t.Errorf("record[0] = %+v, want s1 late", got[0])
	}
	if got[1].StudentID != "s2" || got[1].Status != models.AttendanceAbsent {
		t.Errorf("record[1] = %+v, want s2 absent", got[1])
	}
}

func TestAttendanceMatchesDateWithTimeComponent(t *testing.T) {
	e := newTestEngine(t, newFakeGateway())
	seedAttendance(t, e,
		models.Attendance{ID: "a1", ClassID: "c1", StudentID: "s1", Date: "2024-03-11T00:00:00Z", Status: models.AttendancePresent},
	)

	if got := e.Attendance("c1", "2024-03-11"); len(got) != 1 {
		t.Errorf("records = %d, want 1 (time component ignored)", len(got))
	}
}

func TestSaveAttendanceUpsert(t *testing.T) {
	gw := newFakeGateway()
	e := newTestEngine(t, gw)

	err := e.SaveAttendance("c1", "2024-03-11", []models.AttendanceItem{
		{StudentID: "s1", Status: models.AttendancePresent},
		{StudentID: "s2", Status: models.AttendanceAbsent, Note: "sick"},
	})
	if err != nil {
		t.Fatalf("first SaveAttendance failed: %v", err)
	}

	// Re-marking the same day updates in place.
	err = e.SaveAttendance("c1", "2024-03-11", []models.AttendanceItem{
		{StudentID: "s2", Status: models.AttendanceLate},
	})
	if err != nil {
		t.Fatalf("second SaveAttendance failed: %v", err)
	}

	got := e.Attendance("c1", "2024-03-11")
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2", len(got))
	}
	for _, a := range got {
		if a.StudentID == "s2" {
			if a.Status != models.AttendanceLate {
				t.Errorf("s2 status = %s, want late", a.Status)
			}
			if a.Note != "" {
				t.Errorf("s2 note = %q, want cleared", a.Note)
			}
		}
	}

	e.Close()
	if n := gw.countCalls("attendance.create"); n != 2 {
		t.Errorf("attendance.create dispatched %d times, want 2", n)
	}
	if n := gw.countCalls("attendance.update"); n != 1 {
		t.Errorf("attendance.update dispatched %d times, want 1", n)
	}
}

func TestAttendanceRange(t *testing.T) {
	e := newTestEngine(t, newFakeGateway())
	seedAttendance(t, e,
		models.Attendance{ID: "a1", ClassID: "c1", StudentID: "s1", Date: "2024-03-10", Status: models.AttendancePresent},
		models.Attendance{ID: "a2", ClassID: "c1", StudentID: "s1", Date: "2024-03-12", Status: models.AttendanceAbsent},
		models.Attendance{ID: "a3", ClassID: "c1", StudentID: "s1", Date: "2024-03-20", Status: models.AttendanceLate},
		models.Attendance{ID: "a4", ClassID: "c2", StudentID: "s9", Date: "2024-03-12", Status: models.AttendancePresent},
	)

	got := e.AttendanceRange("c1", "2024-03-10", "2024-03-15")
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2", len(got))
	}
}

func TestStudentAttendanceByMonth(t *testing.T) {
	e := newTestEngine(t, newFakeGateway())
	seedAttendance(t, e,
		models.Attendance{ID: "a1", ClassID: "c1", StudentID: "s1", Date: "2024-03-11", Status: models.AttendancePresent},
		models.Attendance{ID: "a2", ClassID: "c1", StudentID: "s1", Date: "2024-04-02", Status: models.AttendanceAbsent},
		models.Attendance{ID: "a3", ClassID: "c1", StudentID: "s2", Date: "2024-03-11", Status: models.AttendanceLate},
	)

	got := e.StudentAttendance("s1", 3, 2024)
	if len(got) != 1 || got[0].Date != "2024-03-11" {
		t.Errorf("records = %+v, want only March s1", got)
	}
}
