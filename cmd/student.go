package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"homeroom/internal/engine"
	"homeroom/internal/models"
	"homeroom/internal/output"
)

var studentCmd = &cobra.Command{
	Use:     "student",
	GroupID: "collections",
	Short:   "Manage students",
}

var studentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List students, optionally by class",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		classID, _ := cmd.Flags().GetString("class")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		students := e.Students()
		if classID != "" {
			students = e.StudentsByClass(classID)
		}
		for _, s := range students {
			output.Info("%s  %-24s class=%s xp=%d lvl=%d", s.ID, s.FullName, s.ClassID, s.XP, s.Level)
		}
		return nil
	},
}

var studentAddCmd = &cobra.Command{
	Use:   "add <full-name>",
	Short: "Add a student to a class",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		classID, _ := cmd.Flags().GetString("class")
		if classID == "" {
			return fmt.Errorf("--class is required")
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.AddStudent(models.Student{ClassID: classID, FullName: args[0]}); err != nil {
			return err
		}
		output.Success("Student %s added", args[0])
		return nil
	},
}

var studentRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a student",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.RemoveStudent(args[0]); err != nil {
			return err
		}
		output.Info("Student %s removed", args[0])
		return nil
	},
}

var awardCmd = &cobra.Command{
	Use:     "award <student-id> <points>",
	GroupID: "collections",
	Short:   "Award (or deduct) experience points",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("points must be an integer: %q", args[1])
		}

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		s, err := e.AwardXP(args[0], delta)
		if err != nil {
			if errors.Is(err, engine.ErrNotFound) {
				return fmt.Errorf("no student %s in the local snapshot (try 'homeroom sync')", args[0])
			}
			return err
		}
		output.Success("%s now has %d XP (level %d)", s.FullName, s.XP, s.Level)
		return nil
	},
}

func init() {
	studentListCmd.Flags().String("class", "", "filter by class ID")
	studentAddCmd.Flags().String("class", "", "class ID (required)")

	studentCmd.AddCommand(studentListCmd, studentAddCmd, studentRmCmd)
	rootCmd.AddCommand(studentCmd, awardCmd)
}
