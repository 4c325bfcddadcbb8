package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"homeroom/internal/models"
	"homeroom/internal/output"
)

var attendanceCmd = &cobra.Command{
	Use:     "attendance",
	GroupID: "collections",
	Short:   "Take and review roll call",
}

var attendanceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show attendance for a class on one day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		classID, _ := cmd.Flags().GetString("class")
		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			date = time.Now().UTC().Format("2006-01-02")
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		records := e.Attendance(classID, date)
		if len(records) == 0 {
			output.Subtle("No attendance recorded for %s on %s", classID, date)
			return nil
		}
		for _, a := range records {
			line := fmt.Sprintf("%s  %-8s", a.StudentID, a.Status)
			if a.Note != "" {
				line += "  " + a.Note
			}
			output.Info("%s", line)
		}
		return nil
	},
}

var attendanceMarkCmd = &cobra.Command{
	Use:   "mark <student-id=status> ...",
	Short: "Record a day's roll call for a class",
	Long: `Record attendance for one or more students in a single day.
Each argument is student-id=status where status is one of
present, absent, or late. Unlisted students keep whatever was
recorded before; re-marking a student overwrites the earlier entry.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		classID, _ := cmd.Flags().GetString("class")
		date, _ := cmd.Flags().GetString("date")
		note, _ := cmd.Flags().GetString("note")
		if date == "" {
			date = time.Now().UTC().Format("2006-01-02")
		}

		items := make([]models.AttendanceItem, 0, len(args))
		for _, arg := range args {
			id, status, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("expected student-id=status, got %q", arg)
			}
			st, err := parseStatus(status)
			if err != nil {
				return err
			}
			items = append(items, models.AttendanceItem{StudentID: id, Status: st, Note: note})
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.SaveAttendance(classID, date, items); err != nil {
			return err
		}
		output.Success("Recorded attendance for %d student(s) on %s", len(items), date)
		return nil
	},
}

var attendanceStudentCmd = &cobra.Command{
	Use:   "student <student-id>",
	Short: "Show one student's attendance for a month",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		month, _ := cmd.Flags().GetInt("month")
		year, _ := cmd.Flags().GetInt("year")
		now := time.Now()
		if month == 0 {
			month = int(now.Month())
		}
		if year == 0 {
			year = now.Year()
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		records := e.StudentAttendance(args[0], month, year)
		if len(records) == 0 {
			output.Subtle("No attendance for %s in %04d-%02d", args[0], year, month)
			return nil
		}
		for _, a := range records {
			output.Info("%s  %s", a.Date, a.Status)
		}
		return nil
	},
}

func parseStatus(s string) (models.AttendanceStatus, error) {
	switch strings.ToLower(s) {
	case "present", "p":
		return models.AttendancePresent, nil
	case "absent", "a":
		return models.AttendanceAbsent, nil
	case "late", "l":
		return models.AttendanceLate, nil
	}
	return "", fmt.Errorf("unknown attendance status %q (want present, absent, or late)", s)
}

func init() {
	attendanceShowCmd.Flags().String("class", "", "class ID")
	attendanceShowCmd.Flags().String("date", "", "day to show (YYYY-MM-DD, default today)")
	attendanceShowCmd.MarkFlagRequired("class")

	attendanceMarkCmd.Flags().String("class", "", "class ID")
	attendanceMarkCmd.Flags().String("date", "", "day to record (YYYY-MM-DD, default today)")
	attendanceMarkCmd.Flags().String("note", "", "note attached to each entry")
	attendanceMarkCmd.MarkFlagRequired("class")

	attendanceStudentCmd.Flags().Int("month", 0, "month 1-12 (default current)")
	attendanceStudentCmd.Flags().Int("year", 0, "year (default current)")

	attendanceCmd.AddCommand(attendanceShowCmd, attendanceMarkCmd, attendanceStudentCmd)
	rootCmd.AddCommand(attendanceCmd)
}
