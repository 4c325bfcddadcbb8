package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"homeroom/internal/models"
	"homeroom/internal/output"
)

var loginCmd = &cobra.Command{
	Use:     "login <username>",
	GroupID: "sync",
	Short:   "Authenticate and store the session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		user, err := e.Login(cmd.Context(), args[0], password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if user == nil {
			return fmt.Errorf("invalid username or password")
		}

		output.Success("Logged in as %s (%s)", user.FullName, user.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	GroupID: "sync",
	Short:   "Clear the stored session",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.Logout(); err != nil {
			return err
		}
		output.Info("Logged out")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:     "register <username>",
	GroupID: "sync",
	Short:   "Create an account and log in",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fullName, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")

		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		user, err := e.Register(cmd.Context(), models.User{
			Username: args[0],
			Password: password,
			FullName: fullName,
			Role:     models.Role(role),
		})
		if err != nil {
			return fmt.Errorf("register failed: %w", err)
		}

		output.Success("Registered %s (%s)", user.Username, user.Role)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	GroupID: "sync",
	Short:   "Show the current session",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		user, err := e.CurrentUser()
		if err != nil {
			return err
		}
		if user == nil {
			output.Info("Not logged in")
			return nil
		}
		output.Info("%s (%s, %s)", user.FullName, user.Username, user.Role)
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:     "ping",
	GroupID: "sync",
	Short:   "Check connectivity to the remote backend",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("ping failed: %w", err)
		}
		output.Success("Backend reachable")
		return nil
	},
}

func init() {
	registerCmd.Flags().String("name", "", "full display name")
	registerCmd.Flags().String("role", string(models.RoleTeacher), "account role (admin, teacher, parent, student)")

	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, whoamiCmd, pingCmd)
}

// readPassword prompts without echo when stdin is a terminal, and falls
// back to a plain line read otherwise (piped input in scripts/tests).
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
