package engine

import (
	"fmt"
	"sort"
	"time"

	"homeroom/internal/models"
)

// Reports are computed entirely from the snapshot; no network involved.

// WeeklyReport summarizes one class between from and to inclusive
// (date-only strings): attendance rate, absence/late counts, top praised
// and warned students, and task reply volume.
func (e *Engine) WeeklyReport(classID, from, to string) models.Report {
	att := e.AttendanceRange(classID, from, to)
	behaviors := e.Behaviors(classID, from, to)
	students := e.StudentsByClass(classID)

	var replies int
	for _, t := range e.Tasks(classID) {
		replies += len(e.TaskReplies(t.ID))
	}

	var absences, lates int
	for _, a := range att {
		switch a.Status {
		case models.AttendanceAbsent:
			absences++
		case models.AttendanceLate:
			lates++
		}
	}
	total := len(att)
	if total == 0 {
		total = 1
	}
	rate := (total - absences) * 100 / total

	names := map[string]string{}
	for _, s := range students {
		names[s.ID] = s.FullName
	}

	return models.Report{
		ID:            "r_local",
		Title:         fmt.Sprintf("Weekly report %s to %s", from, to),
		Type:          "WEEKLY",
		StartDate:     from,
		EndDate:       to,
		GeneratedDate: e.nowStamp(),
		Content: models.ReportContent{
			AttendanceRate: rate,
			TotalAbsences:  absences,
			TotalLates:     lates,
			TopPraise:      topStudents(behaviors, models.BehaviorPraise, names),
			TopWarn:        topStudents(behaviors, models.BehaviorWarn, names),
			TaskReplyCount: replies,
			TotalStudents:  len(students),
		},
	}
}

// MonthlyReport summarizes one calendar month.
func (e *Engine) MonthlyReport(classID string, month, year int) models.Report {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	r := e.WeeklyReport(classID, first.Format("2006-01-02"), last.Format("2006-01-02"))
	r.Type = "MONTHLY"
	r.Title = fmt.Sprintf("Monthly report %04d-%02d", year, month)
	return r
}

// topStudents returns up to three student names ranked by entry count for
// the given behavior type.
func topStudents(behaviors []models.Behavior, typ models.BehaviorType, names map[string]string) []string {
	counts := map[string]int{}
	for _, b := range behaviors {
		if b.Type == typ {
			counts[b.StudentID]++
		}
	}
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > 3 {
		ids = ids[:3]
	}
	out := []string{}
	for _, id := range ids {
		if name := names[id]; name != "" {
			out = append(out, name)
		} else {
			out = append(out, id)
		}
	}
	return out
}
