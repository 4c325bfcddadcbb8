package cmd

import (
	"github.com/spf13/cobra"

	"homeroom/internal/models"
	"homeroom/internal/output"
)

var classCmd = &cobra.Command{
	Use:     "class",
	GroupID: "collections",
	Short:   "Manage classes",
}

var classListCmd = &cobra.Command{
	Use:   "list",
	Short: "List classes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		for _, c := range e.Classes() {
			output.Info("%s  %-12s %-10s %s", c.ID, c.ClassName, c.SchoolYear, c.HomeroomTeacher)
		}
		return nil
	},
}

var classAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a class",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetString("year")
		teacher, _ := cmd.Flags().GetString("teacher")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		c := models.ClassInfo{ClassName: args[0], SchoolYear: year, HomeroomTeacher: teacher}
		if err := e.AddClass(c); err != nil {
			return err
		}
		output.Success("Class %s created", args[0])
		return nil
	},
}

var classRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a class",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.RemoveClass(args[0]); err != nil {
			return err
		}
		output.Info("Class %s removed", args[0])
		return nil
	},
}

func init() {
	classAddCmd.Flags().String("year", "", "school year, e.g. 2025-2026")
	classAddCmd.Flags().String("teacher", "", "homeroom teacher name")

	classCmd.AddCommand(classListCmd, classAddCmd, classRmCmd)
	rootCmd.AddCommand(classCmd)
}
