package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"homeroom/internal/models"
	"homeroom/internal/output"
)

var userCmd = &cobra.Command{
	Use:     "user",
	GroupID: "collections",
	Short:   "Manage user accounts",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		for _, u := range e.Users() {
			output.Info("%s  %-16s %-8s %s", u.ID, u.Username, u.Role, u.FullName)
		}
		return nil
	},
}

var userAddCmd = &cobra.Command{
	Use:   "add <username> <password>",
	Short: "Create a user account on the server",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		u, err := e.AddUser(cmd.Context(), models.User{
			Username: args[0],
			Password: args[1],
			FullName: name,
			Role:     models.Role(role),
		})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		output.Success("User %s created (%s)", u.Username, u.ID)
		return nil
	},
}

var userRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.RemoveUser(args[0]); err != nil {
			return err
		}
		output.Info("User %s removed", args[0])
		return nil
	},
}

func init() {
	userAddCmd.Flags().String("name", "", "full display name")
	userAddCmd.Flags().String("role", "teacher", "account role: admin, teacher, parent, student")

	userCmd.AddCommand(userListCmd, userAddCmd, userRmCmd)
	rootCmd.AddCommand(userCmd)
}
