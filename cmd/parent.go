package cmd

import (
	"github.com/spf13/cobra"

	"homeroom/internal/models"
	"homeroom/internal/output"
)

var parentCmd = &cobra.Command{
	Use:     "parent",
	GroupID: "collections",
	Short:   "Manage parent contacts",
}

var parentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List parent contacts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		for _, p := range e.Parents() {
			line := p.ID + "  " + p.FullName + "  student=" + p.StudentID
			if p.Phone != "" {
				line += "  " + p.Phone
			}
			output.Info("%s", line)
		}
		return nil
	},
}

var parentAddCmd = &cobra.Command{
	Use:   "add <full-name>",
	Short: "Add a parent contact for a student",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetString("student")
		phone, _ := cmd.Flags().GetString("phone")
		email, _ := cmd.Flags().GetString("email")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		p := models.Parent{
			StudentID: studentID,
			FullName:  args[0],
			Phone:     phone,
			Email:     email,
		}
		if err := e.AddParent(p); err != nil {
			return err
		}
		output.Success("Parent %s added", args[0])
		return nil
	},
}

var parentRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a parent contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.RemoveParent(args[0]); err != nil {
			return err
		}
		output.Info("Parent %s removed", args[0])
		return nil
	},
}

func init() {
	parentAddCmd.Flags().String("student", "", "linked student ID")
	parentAddCmd.Flags().String("phone", "", "phone number")
	parentAddCmd.Flags().String("email", "", "email address")
	parentAddCmd.MarkFlagRequired("student")

	parentCmd.AddCommand(parentListCmd, parentAddCmd, parentRmCmd)
	rootCmd.AddCommand(parentCmd)
}
