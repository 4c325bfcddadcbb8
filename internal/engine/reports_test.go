package engine

import (
	"testing"

	"homeroom/internal/models"
)

func seedReportData(t *testing.T, e *Engine) {
	t.Helper()
	err := e.update(func(snap *models.Snapshot) {
		snap.Students = []models.Student{
			{ID: "s1", ClassID: "c1", FullName: "An"},
			{ID: "s2", ClassID: "c1", FullName: "Binh"},
			{ID: "s3", ClassID: "c1", FullName: "Chi"},
		}
		snap.Attendance = []models.Attendance{
			{ID: "a1", ClassID: "c1", StudentID: "s1", Date: "2024-03-11", Status: models.AttendancePresent},
			{ID: "a2", ClassID: "c1", StudentID: "s2", Date: "2024-03-11", Status: models.AttendanceAbsent},
			{ID: "a3", ClassID: "c1", StudentID: "s3", Date: "2024-03-11", Status: models.AttendanceLate},
			{ID: "a4", ClassID: "c1", StudentID: "s1", Date: "2024-03-12", Status: models.AttendancePresent},
		}
		snap.Behaviors = []models.Behavior{
			{ID: "b1", ClassID: "c1", StudentID: "s1", Date: "2024-03-11", Type: models.BehaviorPraise, Title: "Helped"},
			{ID: "b2", ClassID: "c1", StudentID: "s1", Date: "2024-03-12", Type: models.BehaviorPraise, Title: "Helped again"},
			{ID: "b3", ClassID: "c1", StudentID: "s2", Date: "2024-03-12", Type: models.BehaviorWarn, Title: "Late homework"},
		}
		snap.Tasks = []models.Task{{ID: "t1", ClassID: "c1", Title: "Homework"}}
		snap.TaskReplies = []models.TaskReply{
			{ID: "r1", TaskID: "t1", StudentID: "s1"},
			{ID: "r2", TaskID: "t1", StudentID: "s3"},
		}
	})
	if err != nil {
		t.Fatalf("seed report data: %v", err)
	}
}

func TestWeeklyReport(t *testing.T) {
	e := newTestEngine(t, newFakeGateway())
	seedReportData(t, e)

	r := e.WeeklyReport("c1", "2024-03-11", "2024-03-17")

	if r.Type != "WEEKLY" {
		t.Errorf("type = %q, want WEEKLY", r.Type)
	}
	if r.Content.TotalStudents != 3 {
		t.Errorf("totalStudents = %d, want 3", r.Content.TotalStudents)
	}
	if r.Content.TotalAbsences != 1 || r.Content.TotalLates != 1 {
		t.Errorf("absences/lates = %d/%d, want 1/1", r.Content.TotalAbsences, r.Content.TotalLates)
	}
	// 4 records, 1 absence: (4-1)*100/4 = 75.
	if r.Content.AttendanceRate != 75 {
		t.Errorf("attendanceRate = %d, want 75", r.Content.AttendanceRate)
	}
	if r.Content.TaskReplyCount != 2 {
		t.Errorf("taskReplyCount = %d, want 2", r.Content.TaskReplyCount)
	}
	if len(r.Content.TopPraise) != 1 || r.Content.TopPraise[0] != "An" {
		t.Errorf("topPraise = %v, want [An]", r.Content.TopPraise)
	}
	if len(r.Content.TopWarn) != 1 || r.Content.TopWarn[0] != "Binh" {
		t.Errorf("topWarn = %v, want [Binh]", r.Content.TopWarn)
	}
}

func TestWeeklyReportEmptyClass(t *testing.T) {
	e := newTestEngine(t, newFakeGateway())

	r := e.WeeklyReport("c9", "2024-03-11", "2024-03-17")

	if r.Content.AttendanceRate != 100 {
		t.Errorf("attendanceRate = %d, want 100 with no records", r.Content.AttendanceRate)
	}
	if r.Content.TotalStudents != 0 {
		t.Errorf("totalStudents = %d, want 0", r.Content.TotalStudents)
	}
}

func TestMonthlyReportCoversCalendarMonth(t *testing.T) {
	e := newTestEngine(t, newFakeGateway())
	seedReportData(t, e)

	r := e.MonthlyReport("c1", 3, 2024)

	if r.Type != "MONTHLY" {
		t.Errorf("type = %q, want MONTHLY", r.Type)
	}
	if r.StartDate != "2024-03-01" || r.EndDate != "2024-03-31" {
		t.Errorf("range = %s to %s, want full March", r.StartDate, r.EndDate)
	}
	if r.Content.TotalAbsences != 1 {
		t.Errorf("absences = %d, want 1", r.Content.TotalAbsences)
	}

	// February 2024 is a leap month.
	feb := e.MonthlyReport("c1", 2, 2024)
	if feb.EndDate != "2024-02-29" {
		t.Errorf("february end = %s, want 2024-02-29", feb.EndDate)
	}
}
