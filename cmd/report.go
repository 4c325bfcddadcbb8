package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"homeroom/internal/models"
	"homeroom/internal/output"
)

var reportCmd = &cobra.Command{
	Use:     "report",
	GroupID: "collections",
	Short:   "Generate class summary reports",
}

var reportWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Summarize the current week for a class",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		classID, _ := cmd.Flags().GetString("class")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		asJSON, _ := cmd.Flags().GetBool("json")

		if from == "" || to == "" {
			start, end := currentWeek(time.Now())
			if from == "" {
				from = start
			}
			if to == "" {
				to = end
			}
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		r := e.WeeklyReport(classID, from, to)
		if asJSON {
			return output.JSON(r)
		}
		return renderReport(r)
	},
}

var reportMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Summarize a month for a class",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		classID, _ := cmd.Flags().GetString("class")
		month, _ := cmd.Flags().GetInt("month")
		year, _ := cmd.Flags().GetInt("year")
		asJSON, _ := cmd.Flags().GetBool("json")

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

		r := e.MonthlyReport(classID, month, year)
		if asJSON {
			return output.JSON(r)
		}
		return renderReport(r)
	},
}

// currentWeek returns the Monday and Sunday bracketing t.
func currentWeek(t time.Time) (string, string) {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := t.AddDate(0, 0, 1-weekday)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format("2006-01-02"), sunday.Format("2006-01-02")
}

func renderReport(r models.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "%s to %s · generated %s\n\n", r.StartDate, r.EndDate, r.GeneratedDate)
	fmt.Fprintf(&b, "- Students: %d\n", r.Content.TotalStudents)
	fmt.Fprintf(&b, "- Attendance rate: %d%%\n", r.Content.AttendanceRate)
	fmt.Fprintf(&b, "- Absences: %d · Lates: %d\n", r.Content.TotalAbsences, r.Content.TotalLates)
	fmt.Fprintf(&b, "- Task replies: %d\n", r.Content.TaskReplyCount)
	if len(r.Content.TopPraise) > 0 {
		fmt.Fprintf(&b, "\n## Most praised\n\n")
		for _, name := range r.Content.TopPraise {
			fmt.Fprintf(&b, "1. %s\n", name)
		}
	}
	if len(r.Content.TopWarn) > 0 {
		fmt.Fprintf(&b, "\n## Most warned\n\n")
		for _, name := range r.Content.TopWarn {
			fmt.Fprintf(&b, "1. %s\n", name)
		}
	}

	md, err := output.Markdown(b.String())
	if err != nil {
		return err
	}
	fmt.Print(md)
	return nil
}

func init() {
	reportWeekCmd.Flags().String("class", "", "class ID")
	reportWeekCmd.Flags().String("from", "", "start date (default Monday of this week)")
	reportWeekCmd.Flags().String("to", "", "end date (default Sunday of this week)")
	reportWeekCmd.Flags().Bool("json", false, "emit raw JSON")
	reportWeekCmd.MarkFlagRequired("class")

	reportMonthCmd.Flags().String("class", "", "class ID")
	reportMonthCmd.Flags().Int("month", 0, "month 1-12 (default current)")
	reportMonthCmd.Flags().Int("year", 0, "year (default current)")
	reportMonthCmd.Flags().Bool("json", false, "emit raw JSON")
	reportMonthCmd.MarkFlagRequired("class")

	reportCmd.AddCommand(reportWeekCmd, reportMonthCmd)
	rootCmd.AddCommand(reportCmd)
}
